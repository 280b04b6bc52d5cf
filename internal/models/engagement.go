package models

import "time"

// Engagement directions
const (
	DirectionLike    = "like"
	DirectionDislike = "dislike"
)

// Engagement is one user's reaction to one subject. The unique index on
// (subject_type, subject_id, user_id) is what makes like/dislike mutually
// exclusive: a user has at most one row per subject, and the direction
// column says which side it is on.
type Engagement struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SubjectType string    `json:"subject_type" gorm:"size:10;uniqueIndex:idx_subject_user"`
	SubjectID   string    `json:"subject_id" gorm:"size:40;uniqueIndex:idx_subject_user"`
	UserID      uint      `json:"user_id" gorm:"index;uniqueIndex:idx_subject_user"`
	Direction   string    `json:"direction" gorm:"type:varchar(10)"`
	CreatedAt   time.Time `json:"created_at"`
}

// EngagementState reports membership and counts after a toggle
type EngagementState struct {
	UserLiked     bool `json:"user_liked"`
	UserDisliked  bool `json:"user_disliked"`
	LikesCount    int  `json:"likes_count"`
	DislikesCount int  `json:"dislikes_count"`
}

// ToggleEngagementRequest defines the request body for like/dislike toggles
type ToggleEngagementRequest struct {
	Action string `json:"action" validate:"required,oneof=like dislike"`
}
