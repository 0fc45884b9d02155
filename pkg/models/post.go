package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityClubOnly Visibility = "club_only"
)

type Post struct {
	ID         int64      `gorm:"column:post_id;primaryKey;autoIncrement" json:"post_id"`
	UserID     int64      `gorm:"not null;index" json:"user_id"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	ClubID     *int64     `json:"club_id"`
	Visibility Visibility `gorm:"type:varchar(20);not null;default:public" json:"visibility"`
	ImageURL   *string    `gorm:"type:text" json:"image_url"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.Visibility == "" {
		p.Visibility = VisibilityPublic
	}
	if p.Visibility != VisibilityPublic && p.Visibility != VisibilityClubOnly {
		return fmt.Errorf("invalid visibility %q", p.Visibility)
	}
	return nil
}

type Comment struct {
	ID        int64     `gorm:"column:comment_id;primaryKey;autoIncrement" json:"comment_id"`
	PostID    int64     `gorm:"not null" json:"post_id"`
	UserID    int64     `gorm:"not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}
