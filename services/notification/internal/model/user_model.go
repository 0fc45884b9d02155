package model

// UserModel is a read-only view of users used to resolve actor names.
type UserModel struct {
	ID   int64  `gorm:"column:user_id;primaryKey"`
	Name string `gorm:"column:name"`
}

func (UserModel) TableName() string {
	return "users"
}
