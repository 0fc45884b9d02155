package entity

import (
	"time"

	"syncup/pkg/pagination"
)

type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
)

// Notification is addressed to UserID about an action ActorID took on one of
// their posts.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	UserID    int64            `json:"user_id"`
	ActorID   int64            `json:"actor_id"`
	ActorName string           `json:"actor_name"`
	PostID    int64            `json:"post_id"`
	CommentID *int64           `json:"comment_id,omitempty"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}

type NotificationPage struct {
	Notifications []Notification
	Pagination    pagination.Envelope
}
