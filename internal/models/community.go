package models

import "time"

// Membership roles and states for community_members rows
const (
	RoleMember    = "member"
	RoleModerator = "moderator"

	MemberStatusPending = "pending"
	MemberStatusActive  = "active"
)

// Community represents a discussion community around movies/TV
type Community struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Slug        string    `json:"slug" gorm:"size:60;uniqueIndex"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorID   uint      `json:"creator_id" gorm:"index"`
	IsPrivate   bool      `json:"is_private" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CommunityMember links a user to a community. A join request is a row
// with status "pending"; accepting flips it to "active".
type CommunityMember struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CommunityID uint      `json:"community_id" gorm:"index;uniqueIndex:idx_community_user"`
	UserID      uint      `json:"user_id" gorm:"index;uniqueIndex:idx_community_user"`
	Role        string    `json:"role" gorm:"type:varchar(20);default:'member'"`
	Status      string    `json:"status" gorm:"type:varchar(20);default:'active'"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCommunityRequest defines the request body for creating a community
type CreateCommunityRequest struct {
	Slug        string `json:"slug" validate:"required,min=3,max=60,lowercase,excludesall= "`
	Name        string `json:"name" validate:"required,min=3,max=80"`
	Description string `json:"description" validate:"omitempty,max=500"`
	IsPrivate   bool   `json:"is_private"`
}
