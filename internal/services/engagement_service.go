package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/KrishTanna28/cinnect-backend/internal/models"
	"github.com/KrishTanna28/cinnect-backend/internal/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrInvalidAction is returned for actions other than like/dislike
	ErrInvalidAction = errors.New("invalid engagement action")
	// ErrSubjectNotFound is returned when the toggled entity does not exist
	ErrSubjectNotFound = errors.New("engagement subject not found")
)

// EngagementService toggles like/dislike rows. Mutual exclusion between
// the two directions is structural: a user has at most one engagement row
// per subject, so switching sides is an UPDATE, never a second row.
type EngagementService struct {
	engagements repositories.EngagementRepository
	posts       repositories.PostRepository
	comments    repositories.CommentRepository
	reviews     repositories.ReviewRepository
	logger      *zap.Logger
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(
	engagements repositories.EngagementRepository,
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	reviews repositories.ReviewRepository,
	logger *zap.Logger,
) *EngagementService {
	return &EngagementService{
		engagements: engagements,
		posts:       posts,
		comments:    comments,
		reviews:     reviews,
		logger:      logger,
	}
}

// Toggle applies one like/dislike press. No row inserts the action's
// direction; a row on the opposite side switches; a row on the same side
// is an undo and deletes. Toggling twice is identity on membership.
func (s *EngagementService) Toggle(ctx context.Context, subjectType, subjectID string, userID uint, action string) (*models.EngagementState, error) {
	if action != models.DirectionLike && action != models.DirectionDislike {
		return nil, ErrInvalidAction
	}
	if err := s.verifySubject(ctx, subjectType, subjectID); err != nil {
		return nil, err
	}

	current, err := s.engagements.Get(subjectType, subjectID, userID)
	if err != nil {
		return nil, err
	}

	likeDelta, dislikeDelta := 0, 0
	switch {
	case current == nil:
		err = s.engagements.Insert(&models.Engagement{
			SubjectType: subjectType,
			SubjectID:   subjectID,
			UserID:      userID,
			Direction:   action,
		})
		if action == models.DirectionLike {
			likeDelta = 1
		} else {
			dislikeDelta = 1
		}
	case current.Direction == action:
		err = s.engagements.Delete(current.ID)
		if action == models.DirectionLike {
			likeDelta = -1
		} else {
			dislikeDelta = -1
		}
	default:
		err = s.engagements.UpdateDirection(current.ID, action)
		if action == models.DirectionLike {
			likeDelta, dislikeDelta = 1, -1
		} else {
			likeDelta, dislikeDelta = -1, 1
		}
	}
	if err != nil {
		return nil, err
	}

	s.applyCounterDeltas(ctx, subjectType, subjectID, likeDelta, dislikeDelta)

	likes, dislikes, err := s.engagements.Counts(subjectType, subjectID)
	if err != nil {
		return nil, err
	}
	final, err := s.engagements.Get(subjectType, subjectID, userID)
	if err != nil {
		return nil, err
	}

	state := &models.EngagementState{
		LikesCount:    int(likes),
		DislikesCount: int(dislikes),
	}
	if final != nil {
		state.UserLiked = final.Direction == models.DirectionLike
		state.UserDisliked = final.Direction == models.DirectionDislike
	}
	return state, nil
}

func (s *EngagementService) verifySubject(ctx context.Context, subjectType, subjectID string) error {
	switch subjectType {
	case models.SubjectPost:
		if _, err := s.posts.GetPostByID(ctx, subjectID); err != nil {
			return ErrSubjectNotFound
		}
	case models.SubjectComment:
		id, err := strconv.ParseUint(subjectID, 10, 32)
		if err != nil {
			return ErrSubjectNotFound
		}
		if _, err := s.comments.GetCommentByID(uint(id)); err != nil {
			return ErrSubjectNotFound
		}
	case models.SubjectReview:
		id, err := strconv.ParseUint(subjectID, 10, 32)
		if err != nil {
			return ErrSubjectNotFound
		}
		if _, err := s.reviews.GetReviewByID(uint(id)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubjectNotFound
			}
			return err
		}
	default:
		return ErrSubjectNotFound
	}
	return nil
}

// applyCounterDeltas keeps the denormalized counters on the owning entity
// in step. Counter drift is tolerable; the engagement rows stay the source
// of truth, so failures are logged and swallowed.
func (s *EngagementService) applyCounterDeltas(ctx context.Context, subjectType, subjectID string, likeDelta, dislikeDelta int) {
	adjust := func(err error) {
		if err != nil {
			s.logger.Warn("engagement counter update failed",
				zap.String("subject_type", subjectType),
				zap.String("subject_id", subjectID),
				zap.Error(err))
		}
	}

	switch subjectType {
	case models.SubjectPost:
		if likeDelta != 0 {
			adjust(s.posts.AdjustCounter(ctx, subjectID, repositories.PostFieldLikes, likeDelta))
		}
		if dislikeDelta != 0 {
			adjust(s.posts.AdjustCounter(ctx, subjectID, repositories.PostFieldDislikes, dislikeDelta))
		}
	case models.SubjectComment:
		id, err := strconv.ParseUint(subjectID, 10, 32)
		if err != nil {
			return
		}
		if likeDelta != 0 {
			adjust(s.comments.AdjustCounter(uint(id), "likes_count", likeDelta))
		}
		if dislikeDelta != 0 {
			adjust(s.comments.AdjustCounter(uint(id), "dislikes_count", dislikeDelta))
		}
	case models.SubjectReview:
		id, err := strconv.ParseUint(subjectID, 10, 32)
		if err != nil {
			return
		}
		if likeDelta != 0 {
			adjust(s.reviews.AdjustCounter(uint(id), "likes_count", likeDelta))
		}
		if dislikeDelta != 0 {
			adjust(s.reviews.AdjustCounter(uint(id), "dislikes_count", dislikeDelta))
		}
	}
}
