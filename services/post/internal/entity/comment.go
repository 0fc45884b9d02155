package entity

import (
	"time"

	"syncup/pkg/pagination"
)

type Comment struct {
	ID        int64     `json:"comment_id"`
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	User      Author    `json:"user"`
}

type CommentPage struct {
	Comments   []Comment
	Pagination pagination.Envelope
}
