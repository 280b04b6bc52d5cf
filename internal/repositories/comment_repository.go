package repositories

import (
	"github.com/KrishTanna28/cinnect-backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment/reply data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsBySubject(subjectType, subjectID string, offset, limit int) ([]models.Comment, int64, error)
	GetRepliesByParent(parentID uint) ([]models.Comment, error)
	AdjustCounter(commentID uint, column string, delta int) error
	CountBySubject(subjectType, subjectID string) (int64, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsBySubject returns top-level comments in insertion order.
// Replies are fetched per parent; storage order is never rewritten.
func (r *PostgresCommentRepository) GetCommentsBySubject(subjectType, subjectID string, offset, limit int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	q := r.db.Model(&models.Comment{}).
		Where("subject_type = ? AND subject_id = ? AND parent_id IS NULL", subjectType, subjectID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at ASC, id ASC").Offset(offset).Limit(limit).Find(&comments).Error
	return comments, total, err
}

func (r *PostgresCommentRepository) GetRepliesByParent(parentID uint) ([]models.Comment, error) {
	var replies []models.Comment
	err := r.db.Where("parent_id = ?", parentID).Order("created_at ASC, id ASC").Find(&replies).Error
	return replies, err
}

// AdjustCounter bumps likes_count/dislikes_count on a comment row
func (r *PostgresCommentRepository) AdjustCounter(commentID uint, column string, delta int) error {
	return r.db.Model(&models.Comment{}).Where("id = ?", commentID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}

func (r *PostgresCommentRepository) CountBySubject(subjectType, subjectID string) (int64, error) {
	var total int64
	err := r.db.Model(&models.Comment{}).
		Where("subject_type = ? AND subject_id = ?", subjectType, subjectID).
		Count(&total).Error
	return total, err
}
