package model

import "encoding/json"

type UserRole string

const (
	Student    UserRole = "student"
	Instructor UserRole = "instructor"
	Admin      UserRole = "admin"
)

// swagger:model User
type User struct {
	UUIDBase
	Email       string          `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password    string          `gorm:"size:255;not null" json:"-"`
	DisplayName string          `gorm:"size:100" json:"displayName"`
	Role        UserRole        `gorm:"size:20;default:'student'" json:"role"`
	AvatarURL   string          `gorm:"size:512" json:"avatarUrl,omitempty"`
	// Accessibility preferences chosen by the user (font scale, captions,
	// reduced motion, screen-reader hints). Opaque to the server.
	Accessibility json.RawMessage `gorm:"type:json" json:"accessibility,omitempty"`
}

func (User) TableName() string {
	return "users"
}
