package repositories

import (
	"errors"

	"github.com/KrishTanna28/cinnect-backend/internal/models"
	"gorm.io/gorm"
)

// ErrNoPendingRequest is returned when accepting/rejecting a follow
// request that no longer exists.
var ErrNoPendingRequest = errors.New("follow request not found")

// FollowRepository defines the interface for follow-graph operations.
// Multi-row mutations (follow, unfollow, accept) run inside a single
// transaction so the edge and both counters never diverge.
type FollowRepository interface {
	IsFollowing(followerID, followingID uint) (bool, error)
	CreateFollow(followerID, followingID uint) error
	DeleteFollow(followerID, followingID uint) error
	GetFollowers(userID uint, search string, offset, limit int) ([]models.User, int64, error)
	GetFollowing(userID uint, search string, offset, limit int) ([]models.User, int64, error)
	GetFollowingIDs(followerID uint, candidates []uint) (map[uint]bool, error)

	CreateFollowRequest(requesterID, targetID uint) error
	HasPendingRequest(requesterID, targetID uint) (bool, error)
	GetPendingRequestsForTarget(targetID uint) ([]models.FollowRequest, error)
	AcceptFollowRequest(requesterID, targetID uint) error
	RejectFollowRequest(requesterID, targetID uint) error
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

func (r *PostgresFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

// CreateFollow inserts the edge and bumps both counters in one transaction
func (r *PostgresFollowRepository) CreateFollow(followerID, followingID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Follow{FollowerID: followerID, FollowingID: followingID}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", followerID).
			UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", followingID).
			UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error
	})
}

// DeleteFollow removes the edge and decrements both counters in one transaction
func (r *PostgresFollowRepository) DeleteFollow(followerID, followingID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Delete(&models.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Model(&models.User{}).Where("id = ? AND following_count > 0", followerID).
			UpdateColumn("following_count", gorm.Expr("following_count - 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ? AND followers_count > 0", followingID).
			UpdateColumn("followers_count", gorm.Expr("followers_count - 1")).Error
	})
}

func (r *PostgresFollowRepository) GetFollowers(userID uint, search string, offset, limit int) ([]models.User, int64, error) {
	return r.followListing(userID, "follower_id", "following_id", search, offset, limit)
}

func (r *PostgresFollowRepository) GetFollowing(userID uint, search string, offset, limit int) ([]models.User, int64, error) {
	return r.followListing(userID, "following_id", "follower_id", search, offset, limit)
}

func (r *PostgresFollowRepository) followListing(userID uint, selectCol, whereCol, search string, offset, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	sub := r.db.Table("follows").Select(selectCol).Where(whereCol+" = ?", userID)
	q := r.db.Model(&models.User{}).Where("id IN (?)", sub)
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("LOWER(username) LIKE LOWER(?) OR LOWER(display_name) LIKE LOWER(?)", pattern, pattern)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("username ASC").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

// GetFollowingIDs reports which of the candidate users the follower
// already follows, for per-row "isFollowedByMe" flags.
func (r *PostgresFollowRepository) GetFollowingIDs(followerID uint, candidates []uint) (map[uint]bool, error) {
	followed := make(map[uint]bool, len(candidates))
	if len(candidates) == 0 {
		return followed, nil
	}
	var ids []uint
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id IN ?", followerID, candidates).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		followed[id] = true
	}
	return followed, nil
}

func (r *PostgresFollowRepository) CreateFollowRequest(requesterID, targetID uint) error {
	return r.db.Create(&models.FollowRequest{RequesterID: requesterID, TargetID: targetID}).Error
}

func (r *PostgresFollowRepository) HasPendingRequest(requesterID, targetID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.FollowRequest{}).
		Where("requester_id = ? AND target_id = ?", requesterID, targetID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresFollowRepository) GetPendingRequestsForTarget(targetID uint) ([]models.FollowRequest, error) {
	var requests []models.FollowRequest
	err := r.db.Where("target_id = ?", targetID).Order("created_at ASC").Find(&requests).Error
	return requests, err
}

// AcceptFollowRequest atomically turns a pending request into a follow
// edge: the request row is deleted, the edge inserted and both counters
// bumped, all in one transaction.
func (r *PostgresFollowRepository) AcceptFollowRequest(requesterID, targetID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("requester_id = ? AND target_id = ?", requesterID, targetID).
			Delete(&models.FollowRequest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoPendingRequest
		}
		if err := tx.Create(&models.Follow{FollowerID: requesterID, FollowingID: targetID}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", requesterID).
			UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", targetID).
			UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error
	})
}

// RejectFollowRequest drops the pending request without touching the graph
func (r *PostgresFollowRepository) RejectFollowRequest(requesterID, targetID uint) error {
	res := r.db.Where("requester_id = ? AND target_id = ?", requesterID, targetID).
		Delete(&models.FollowRequest{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoPendingRequest
	}
	return nil
}
