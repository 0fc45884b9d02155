package model

import "time"

type UserModel struct {
	ID            int64     `gorm:"column:user_id;primaryKey"`
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

type PostModel struct {
	ID         int64     `gorm:"column:post_id;primaryKey;autoIncrement"`
	UserID     int64     `gorm:"not null;index"`
	Content    string    `gorm:"type:text;not null"`
	ClubID     *int64    `gorm:"column:club_id"`
	Visibility string    `gorm:"type:varchar(20);not null;default:public"`
	ImageURL   *string   `gorm:"column:image_url;type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	User       UserModel `gorm:"foreignKey:UserID;references:ID"`
}

func (PostModel) TableName() string {
	return "posts"
}
