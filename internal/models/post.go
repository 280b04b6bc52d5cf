package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a community submission stored in MongoDB. Engagement and
// comments live in normalized Postgres tables; the counters here are
// denormalized copies maintained with $inc so ranking never joins.
type Post struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID    uint               `json:"author_id" bson:"author_id"`
	CommunityID uint               `json:"community_id" bson:"community_id"`
	Title       string             `json:"title" bson:"title"`
	Content     string             `json:"content" bson:"content"`
	ImageURLs   []string           `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	VideoURLs   []string           `json:"video_urls,omitempty" bson:"video_urls,omitempty"`

	LikesCount    int `json:"likes_count" bson:"likes_count"`
	DislikesCount int `json:"dislikes_count" bson:"dislikes_count"`
	CommentsCount int `json:"comments_count" bson:"comments_count"`
	ViewsCount    int `json:"views_count" bson:"views_count"`

	// Moderation flags; a locked post rejects new comments
	IsApproved bool `json:"is_approved" bson:"is_approved"`
	IsLocked   bool `json:"is_locked" bson:"is_locked"`
	IsFlagged  bool `json:"is_flagged" bson:"is_flagged"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title     string   `json:"title" validate:"required,min=1,max=300"`
	Content   string   `json:"content" validate:"omitempty,max=10000"`
	ImageURLs []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
	VideoURLs []string `json:"video_urls,omitempty" validate:"omitempty,dive,url"`
}
