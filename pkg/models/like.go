package models

import "time"

// Like is keyed by (user_id, post_id); a user likes a post at most once.
type Like struct {
	UserID    int64     `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	PostID    int64     `gorm:"primaryKey;autoIncrement:false;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}
