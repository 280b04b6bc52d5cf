package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents a Cinnect account and its social-graph counters
type User struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Username    string `json:"username" gorm:"size:30;uniqueIndex"`
	Email       string `json:"email" gorm:"uniqueIndex"`
	Password    string `json:"-"` // bcrypt hash, never serialized
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
	IsPrivate   bool   `json:"is_private" gorm:"default:false"`

	FollowersCount int `json:"followers_count" gorm:"default:0"`
	FollowingCount int `json:"following_count" gorm:"default:0"`

	// Gamification
	Points int `json:"points" gorm:"default:0"`
	Level  int `json:"level" gorm:"default:1"`

	// Preferences
	NotifyFollows    bool   `json:"notify_follows" gorm:"default:true"`
	NotifyEngagement bool   `json:"notify_engagement" gorm:"default:true"`
	Theme            string `json:"theme" gorm:"size:20;default:dark"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserCompact is the embedded author/actor representation used in listings
type UserCompact struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	IsPrivate   bool   `json:"is_private"`
}

// ToCompact strips a User down to what listings embed
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		IsPrivate:   u.IsPrivate,
	}
}

// RegisterRequest defines the request body for account registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the request body for signing in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for profile edits
type UpdateProfileRequest struct {
	DisplayName      *string `json:"display_name,omitempty" validate:"omitempty,max=50"`
	Bio              *string `json:"bio,omitempty" validate:"omitempty,max=300"`
	AvatarURL        *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	IsPrivate        *bool   `json:"is_private,omitempty"`
	NotifyFollows    *bool   `json:"notify_follows,omitempty"`
	NotifyEngagement *bool   `json:"notify_engagement,omitempty"`
	Theme            *string `json:"theme,omitempty" validate:"omitempty,oneof=dark light"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
