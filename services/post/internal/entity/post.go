package entity

import (
	"time"

	"syncup/pkg/pagination"
)

type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityClubOnly Visibility = "club_only"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityClubOnly
}

// Author is the snapshot of a user embedded in posts and comments.
type Author struct {
	Name          string  `json:"name"`
	ProfilePicURL *string `json:"profile_pic_url"`
}

type Post struct {
	ID         int64      `json:"post_id"`
	UserID     int64      `json:"user_id"`
	Content    string     `json:"content"`
	ClubID     *int64     `json:"club_id"`
	Visibility Visibility `json:"visibility"`
	ImageURL   *string    `json:"image_url"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	User       Author     `json:"user"`
}

func (p *Post) IsPublic() bool {
	return p.Visibility == VisibilityPublic
}

// FeedPost is a post annotated with live engagement counts for a viewer.
type FeedPost struct {
	Post
	LikesCount    int64 `json:"likes_count"`
	CommentsCount int64 `json:"comments_count"`
	LikedByUser   bool  `json:"liked_by_user"`
}

type FeedPage struct {
	Posts      []FeedPost
	Pagination pagination.Envelope
}

type NewPost struct {
	UserID     int64
	Content    string
	ClubID     *int64
	Visibility Visibility
	ImageURL   *string
}
