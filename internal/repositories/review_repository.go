package repositories

import (
	"github.com/KrishTanna28/cinnect-backend/internal/models"
	"gorm.io/gorm"
)

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	CreateReview(review *models.Review) error
	GetReviewByID(id uint) (*models.Review, error)
	GetReviewByAuthorAndMedia(authorID uint, mediaID, mediaType string) (*models.Review, error)
	GetReviewsByMedia(mediaID, mediaType string, offset, limit int) ([]models.Review, int64, error)
	AdjustCounter(reviewID uint, column string, delta int) error
}

// PostgresReviewRepository implements ReviewRepository for PostgreSQL
type PostgresReviewRepository struct {
	db *gorm.DB
}

// NewPostgresReviewRepository creates a new PostgresReviewRepository
func NewPostgresReviewRepository(db *gorm.DB) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

func (r *PostgresReviewRepository) CreateReview(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *PostgresReviewRepository) GetReviewByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *PostgresReviewRepository) GetReviewByAuthorAndMedia(authorID uint, mediaID, mediaType string) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("author_id = ? AND media_id = ? AND media_type = ?", authorID, mediaID, mediaType).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *PostgresReviewRepository) GetReviewsByMedia(mediaID, mediaType string, offset, limit int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	q := r.db.Model(&models.Review{}).Where("media_id = ? AND media_type = ?", mediaID, mediaType)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&reviews).Error
	return reviews, total, err
}

// AdjustCounter bumps one of the denormalized counters on a review row
func (r *PostgresReviewRepository) AdjustCounter(reviewID uint, column string, delta int) error {
	return r.db.Model(&models.Review{}).Where("id = ?", reviewID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}
