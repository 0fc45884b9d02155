// Package models mirrors the SQL schema in migrations/ for tooling that
// writes across every table, such as cmd/seed. Services keep their own
// narrower models.
package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID            int64     `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Name          string    `gorm:"type:varchar(100);not null" json:"name"`
	Email         string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email" json:"email"`
	PasswordHash  string    `gorm:"type:varchar(255);not null" json:"-"`
	ProfilePicURL *string   `gorm:"type:text" json:"profile_pic_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate stores emails lower-cased so the unique index matches how
// logins look them up.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}
