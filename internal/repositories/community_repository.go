package repositories

import (
	"errors"

	"github.com/KrishTanna28/cinnect-backend/internal/models"
	"gorm.io/gorm"
)

// ErrNoPendingJoin is returned when resolving a join request that no
// longer exists or is already active.
var ErrNoPendingJoin = errors.New("join request not found")

// CommunityRepository defines the interface for community data operations
type CommunityRepository interface {
	CreateCommunity(community *models.Community) error
	GetCommunityBySlug(slug string) (*models.Community, error)
	GetCommunityByID(id uint) (*models.Community, error)
	ListCommunities(offset, limit int) ([]models.Community, int64, error)

	AddMember(member *models.CommunityMember) error
	GetMember(communityID, userID uint) (*models.CommunityMember, error)
	IsActiveMember(communityID, userID uint) (bool, error)
	IsModerator(communityID, userID uint) (bool, error)
	GetModeratedCommunityIDs(userID uint) ([]uint, error)
	GetPendingMembers(communityID uint) ([]models.CommunityMember, error)
	ApproveMember(communityID, userID uint) error
	RemovePendingMember(communityID, userID uint) error
}

// PostgresCommunityRepository implements CommunityRepository for PostgreSQL
type PostgresCommunityRepository struct {
	db *gorm.DB
}

// NewPostgresCommunityRepository creates a new PostgresCommunityRepository
func NewPostgresCommunityRepository(db *gorm.DB) *PostgresCommunityRepository {
	return &PostgresCommunityRepository{db: db}
}

// CreateCommunity inserts the community and its creator's moderator
// membership in one transaction
func (r *PostgresCommunityRepository) CreateCommunity(community *models.Community) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(community).Error; err != nil {
			return err
		}
		return tx.Create(&models.CommunityMember{
			CommunityID: community.ID,
			UserID:      community.CreatorID,
			Role:        models.RoleModerator,
			Status:      models.MemberStatusActive,
		}).Error
	})
}

func (r *PostgresCommunityRepository) GetCommunityBySlug(slug string) (*models.Community, error) {
	var community models.Community
	if err := r.db.Where("slug = ?", slug).First(&community).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *PostgresCommunityRepository) GetCommunityByID(id uint) (*models.Community, error) {
	var community models.Community
	if err := r.db.First(&community, id).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *PostgresCommunityRepository) ListCommunities(offset, limit int) ([]models.Community, int64, error) {
	var communities []models.Community
	var total int64
	if err := r.db.Model(&models.Community{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&communities).Error
	return communities, total, err
}

func (r *PostgresCommunityRepository) AddMember(member *models.CommunityMember) error {
	return r.db.Create(member).Error
}

func (r *PostgresCommunityRepository) GetMember(communityID, userID uint) (*models.CommunityMember, error) {
	var member models.CommunityMember
	err := r.db.Where("community_id = ? AND user_id = ?", communityID, userID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *PostgresCommunityRepository) IsActiveMember(communityID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.CommunityMember{}).
		Where("community_id = ? AND user_id = ? AND status = ?", communityID, userID, models.MemberStatusActive).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresCommunityRepository) IsModerator(communityID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.CommunityMember{}).
		Where("community_id = ? AND user_id = ? AND role = ? AND status = ?",
			communityID, userID, models.RoleModerator, models.MemberStatusActive).
		Count(&count).Error
	return count > 0, err
}

// GetModeratedCommunityIDs lists communities where the user moderates,
// the scan set for the join-request notification sync
func (r *PostgresCommunityRepository) GetModeratedCommunityIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.CommunityMember{}).
		Where("user_id = ? AND role = ? AND status = ?", userID, models.RoleModerator, models.MemberStatusActive).
		Pluck("community_id", &ids).Error
	return ids, err
}

func (r *PostgresCommunityRepository) GetPendingMembers(communityID uint) ([]models.CommunityMember, error) {
	var members []models.CommunityMember
	err := r.db.Where("community_id = ? AND status = ?", communityID, models.MemberStatusPending).
		Order("created_at ASC").Find(&members).Error
	return members, err
}

// ApproveMember flips a pending membership to active
func (r *PostgresCommunityRepository) ApproveMember(communityID, userID uint) error {
	res := r.db.Model(&models.CommunityMember{}).
		Where("community_id = ? AND user_id = ? AND status = ?", communityID, userID, models.MemberStatusPending).
		Update("status", models.MemberStatusActive)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoPendingJoin
	}
	return nil
}

func (r *PostgresCommunityRepository) RemovePendingMember(communityID, userID uint) error {
	res := r.db.Where("community_id = ? AND user_id = ? AND status = ?",
		communityID, userID, models.MemberStatusPending).
		Delete(&models.CommunityMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoPendingJoin
	}
	return nil
}
