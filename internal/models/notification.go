package models

import "time"

// Notification types
const (
	NotificationFollowRequest = "follow_request"
	NotificationCommunityJoin = "community_join_request"
	NotificationAIGenerated   = "ai_generated"
	NotificationNewFollower   = "new_follower"
	NotificationLostFollower  = "lost_follower"
	NotificationReviewLike    = "review_like"
	NotificationReviewReply   = "review_reply"
)

// Action outcomes recorded on request-type notifications
const (
	ActionAccepted = "accepted"
	ActionRejected = "rejected"
)

// Notification is an at-most-once materialized event for a recipient.
// For request-derived types, SourceID identifies the requesting user and
// the partial unique index on (recipient_id, type, source_id) WHERE
// action_taken = false keeps the synchronizer idempotent under concurrent
// fetches. The index is partial, so re-requesting after a reject can
// materialize a fresh notification.
type Notification struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	RecipientID uint   `json:"recipient_id" gorm:"index"`
	Type        string `json:"type" gorm:"size:30;index"`
	ActorID     uint   `json:"actor_id"`
	SourceID    string `json:"source_id" gorm:"size:40"`
	CommunityID uint   `json:"community_id,omitempty"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	ImageURL    string `json:"image_url,omitempty"`
	Link        string `json:"link,omitempty"`

	IsRead      bool   `json:"is_read" gorm:"default:false;index"`
	ActionTaken bool   `json:"action_taken" gorm:"default:false"`
	ActionType  string `json:"action_type,omitempty" gorm:"size:10"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// NotificationActionRequest defines the accept/reject request body
type NotificationActionRequest struct {
	NotificationID uint   `json:"notification_id" validate:"required"`
	Action         string `json:"action" validate:"required,oneof=accept reject"`
}

// MarkReadRequest marks one notification read, or all when ID is omitted
type MarkReadRequest struct {
	NotificationID uint `json:"notification_id,omitempty"`
}
