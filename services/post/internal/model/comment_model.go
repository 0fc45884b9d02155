package model

import "time"

type CommentModel struct {
	ID        int64     `gorm:"column:comment_id;primaryKey;autoIncrement"`
	PostID    int64     `gorm:"not null;index"`
	UserID    int64     `gorm:"not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time
	User      UserModel `gorm:"foreignKey:UserID;references:ID"`
}

func (CommentModel) TableName() string {
	return "comments"
}
