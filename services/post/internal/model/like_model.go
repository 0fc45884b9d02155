package model

import "time"

// LikeModel has a composite primary key, so the store rejects a second
// like by the same user on the same post.
type LikeModel struct {
	UserID    int64 `gorm:"primaryKey;autoIncrement:false"`
	PostID    int64 `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time
}

func (LikeModel) TableName() string {
	return "likes"
}
