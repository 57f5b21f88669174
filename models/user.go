package models

import (
	"time"
)

// User represents a registered user
type User struct {
	ID           string     `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null" bson:"email" json:"email"`
	PasswordHash string     `gorm:"not null" bson:"password_hash" json:"-"` // never returned in JSON
	FullName     string     `gorm:"not null" bson:"full_name" json:"full_name"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	LastLogin    *time.Time `bson:"last_login,omitempty" json:"last_login,omitempty"`
}

// Session is a bearer token issued at signup or login.
// Expired rows are kept; they are only rejected on lookup.
type Session struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	UserID    string    `gorm:"index;size:36;not null" bson:"user_id" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null" bson:"token" json:"-"`
	ExpiresAt time.Time `gorm:"not null" bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

func (Session) TableName() string { return "user_sessions" }
