package models

import "time"

// Subject types shared by comments and engagements
const (
	SubjectPost    = "post"
	SubjectComment = "comment"
	SubjectReview  = "review"
)

// Comment is a normalized comment or reply row. SubjectID is the Mongo hex
// ID for posts and the decimal row ID for reviews. A reply carries the
// ParentID of its comment; replies never nest further.
type Comment struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	SubjectType   string    `json:"subject_type" gorm:"size:10;index:idx_comment_subject"`
	SubjectID     string    `json:"subject_id" gorm:"size:40;index:idx_comment_subject"`
	ParentID      *uint     `json:"parent_id,omitempty" gorm:"index"`
	AuthorID      uint      `json:"author_id" gorm:"index"`
	Content       string    `json:"content"`
	IsSpoiler     bool      `json:"is_spoiler" gorm:"default:false"`
	LikesCount    int       `json:"likes_count" gorm:"default:0"`
	DislikesCount int       `json:"dislikes_count" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for comments and replies
type CreateCommentRequest struct {
	Content   string `json:"content" validate:"required,max=2000"`
	IsSpoiler bool   `json:"is_spoiler"`
}
