package model

import "time"

type UserModel struct {
	ID            int64     `gorm:"column:user_id;primaryKey;autoIncrement"`
	Name          string    `gorm:"type:varchar(100);not null"`
	Email         string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email"`
	PasswordHash  string    `gorm:"column:password_hash;type:varchar(255);not null"`
	ProfilePicURL *string   `gorm:"column:profile_pic_url;type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (UserModel) TableName() string {
	return "users"
}
