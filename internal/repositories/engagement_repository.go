package repositories

import (
	"errors"

	"github.com/KrishTanna28/cinnect-backend/internal/models"
	"gorm.io/gorm"
)

// EngagementRepository defines the interface for like/dislike row operations
type EngagementRepository interface {
	Get(subjectType, subjectID string, userID uint) (*models.Engagement, error)
	Insert(engagement *models.Engagement) error
	UpdateDirection(id uint, direction string) error
	Delete(id uint) error
	Counts(subjectType, subjectID string) (likes, dislikes int64, err error)
	GetForUser(subjectType string, subjectIDs []string, userID uint) (map[string]string, error)
}

// PostgresEngagementRepository implements EngagementRepository for PostgreSQL
type PostgresEngagementRepository struct {
	db *gorm.DB
}

// NewPostgresEngagementRepository creates a new PostgresEngagementRepository
func NewPostgresEngagementRepository(db *gorm.DB) *PostgresEngagementRepository {
	return &PostgresEngagementRepository{db: db}
}

// Get returns the user's engagement row for a subject, or nil when absent
func (r *PostgresEngagementRepository) Get(subjectType, subjectID string, userID uint) (*models.Engagement, error) {
	var engagement models.Engagement
	err := r.db.Where("subject_type = ? AND subject_id = ? AND user_id = ?", subjectType, subjectID, userID).
		First(&engagement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &engagement, nil
}

func (r *PostgresEngagementRepository) Insert(engagement *models.Engagement) error {
	return r.db.Create(engagement).Error
}

func (r *PostgresEngagementRepository) UpdateDirection(id uint, direction string) error {
	return r.db.Model(&models.Engagement{}).Where("id = ?", id).
		Update("direction", direction).Error
}

func (r *PostgresEngagementRepository) Delete(id uint) error {
	return r.db.Delete(&models.Engagement{}, id).Error
}

// Counts returns the like and dislike totals for a subject
func (r *PostgresEngagementRepository) Counts(subjectType, subjectID string) (int64, int64, error) {
	var likes, dislikes int64
	err := r.db.Model(&models.Engagement{}).
		Where("subject_type = ? AND subject_id = ? AND direction = ?", subjectType, subjectID, models.DirectionLike).
		Count(&likes).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.db.Model(&models.Engagement{}).
		Where("subject_type = ? AND subject_id = ? AND direction = ?", subjectType, subjectID, models.DirectionDislike).
		Count(&dislikes).Error
	return likes, dislikes, err
}

// GetForUser maps subject IDs to the user's engagement direction, for
// per-row viewer flags in listings
func (r *PostgresEngagementRepository) GetForUser(subjectType string, subjectIDs []string, userID uint) (map[string]string, error) {
	directions := make(map[string]string, len(subjectIDs))
	if len(subjectIDs) == 0 || userID == 0 {
		return directions, nil
	}
	var rows []models.Engagement
	err := r.db.Where("subject_type = ? AND subject_id IN ? AND user_id = ?", subjectType, subjectIDs, userID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		directions[row.SubjectID] = row.Direction
	}
	return directions, nil
}
