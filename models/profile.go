package models

import (
	"time"
)

// UserProfile holds the style profile of a user, one per user.
// JSON blob columns are stored as opaque serialized text.
type UserProfile struct {
	UserID       string    `gorm:"primaryKey;size:36" bson:"_id" json:"user_id"`
	Gender       string    `bson:"gender" json:"gender"`
	BodyType     string    `bson:"body_type" json:"body_type"`
	Measurements string    `bson:"measurements" json:"-"`
	Undertone    string    `bson:"undertone" json:"undertone"`
	Season       string    `bson:"season" json:"season"`
	ColorPalette string    `bson:"color_palette" json:"-"`
	SkinAnalysis string    `bson:"skin_analysis" json:"-"`
	Preferences  string    `bson:"preferences" json:"-"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profiles" }
