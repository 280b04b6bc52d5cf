package models

import "time"

// Follow is a single edge in the follow graph. A follow exists iff the row
// exists, so follow/unfollow are one insert/delete each.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}

// FollowRequest is a pending inbound follow request against a private
// account. Accepting deletes the row and inserts the Follow edge in the
// same transaction.
type FollowRequest struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RequesterID uint      `json:"requester_id" gorm:"index;uniqueIndex:idx_requester_target"`
	TargetID    uint      `json:"target_id" gorm:"index;uniqueIndex:idx_requester_target"`
	CreatedAt   time.Time `json:"created_at"`
}
