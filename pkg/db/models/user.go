package models

import "time"

// User is an account that can authenticate against the API.
type User struct {
	ID           uint       `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string     `gorm:"column:username;type:varchar(150);not null;uniqueIndex"`
	Email        string     `gorm:"column:email;type:varchar(254);not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	IsStaff      bool       `gorm:"column:is_staff;not null"`
	IsActive     bool       `gorm:"column:is_active;not null"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
