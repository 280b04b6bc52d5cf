package models

import "time"

// Media types a review can target
const (
	MediaMovie = "movie"
	MediaTV    = "tv"
)

// Review is a rating+text artifact for one (media_id, media_type) pair.
// One review per author per media item, enforced by the unique index.
type Review struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	AuthorID  uint   `json:"author_id" gorm:"index;uniqueIndex:idx_author_media"`
	MediaID   string `json:"media_id" gorm:"size:40;index;uniqueIndex:idx_author_media"`
	MediaType string `json:"media_type" gorm:"size:10;uniqueIndex:idx_author_media"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Content   string `json:"content"`

	LikesCount    int `json:"likes_count" gorm:"default:0"`
	DislikesCount int `json:"dislikes_count" gorm:"default:0"`
	RepliesCount  int `json:"replies_count" gorm:"default:0"`

	IsApproved bool `json:"is_approved" gorm:"default:true"`
	IsLocked   bool `json:"is_locked" gorm:"default:false"`
	IsFlagged  bool `json:"is_flagged" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateReviewRequest defines the request body for posting a review
type CreateReviewRequest struct {
	MediaID   string `json:"media_id" validate:"required,max=40"`
	MediaType string `json:"media_type" validate:"required,oneof=movie tv"`
	Rating    int    `json:"rating" validate:"required,min=1,max=10"`
	Title     string `json:"title" validate:"omitempty,max=200"`
	Content   string `json:"content" validate:"required,max=10000"`
}
