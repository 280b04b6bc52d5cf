package services

import (
	"context"
	"testing"

	"github.com/KrishTanna28/cinnect-backend/internal/models"
	"github.com/KrishTanna28/cinnect-backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestEngagementService(posts *MockPostRepository, comments *MockCommentRepository, reviews *MockReviewRepository) (*EngagementService, *fakeEngagementRepo) {
	engagements := newFakeEngagementRepo()
	service := NewEngagementService(engagements, posts, comments, reviews, zap.NewNop())
	return service, engagements
}

func TestToggleLikeInsertsRow(t *testing.T) {
	posts := new(MockPostRepository)
	posts.On("GetPostByID", mock.Anything, "post-1").Return(&models.Post{}, nil)
	posts.On("AdjustCounter", mock.Anything, "post-1", repositories.PostFieldLikes, 1).Return(nil)

	service, engagements := newTestEngagementService(posts, new(MockCommentRepository), new(MockReviewRepository))

	state, err := service.Toggle(context.Background(), models.SubjectPost, "post-1", 7, models.DirectionLike)

	assert.NoError(t, err)
	assert.True(t, state.UserLiked)
	assert.False(t, state.UserDisliked)
	assert.Equal(t, 1, state.LikesCount)
	assert.Equal(t, 0, state.DislikesCount)

	row, _ := engagements.Get(models.SubjectPost, "post-1", 7)
	assert.NotNil(t, row)
	assert.Equal(t, models.DirectionLike, row.Direction)
	posts.AssertExpectations(t)
}

func TestToggleSameDirectionTwiceIsUndo(t *testing.T) {
	posts := new(MockPostRepository)
	posts.On("GetPostByID", mock.Anything, "post-1").Return(&models.Post{}, nil)
	posts.On("AdjustCounter", mock.Anything, "post-1", repositories.PostFieldLikes, 1).Return(nil)
	posts.On("AdjustCounter", mock.Anything, "post-1", repositories.PostFieldLikes, -1).Return(nil)

	service, engagements := newTestEngagementService(posts, new(MockCommentRepository), new(MockReviewRepository))

	_, err := service.Toggle(context.Background(), models.SubjectPost, "post-1", 7, models.DirectionLike)
	assert.NoError(t, err)
	state, err := service.Toggle(context.Background(), models.SubjectPost, "post-1", 7, models.DirectionLike)
	assert.NoError(t, err)

	assert.False(t, state.UserLiked)
	assert.False(t, state.UserDisliked)
	assert.Equal(t, 0, state.LikesCount)
	assert.Equal(t, 0, state.DislikesCount)

	row, _ := engagements.Get(models.SubjectPost, "post-1", 7)
	assert.Nil(t, row)
}

func TestToggleOppositeDirectionSwitchesRow(t *testing.T) {
	posts := new(MockPostRepository)
	posts.On("GetPostByID", mock.Anything, "post-1").Return(&models.Post{}, nil)
	posts.On("AdjustCounter", mock.Anything, "post-1", repositories.PostFieldLikes, mock.Anything).Return(nil)
	posts.On("AdjustCounter", mock.Anything, "post-1", repositories.PostFieldDislikes, mock.Anything).Return(nil)

	service, engagements := newTestEngagementService(posts, new(MockCommentRepository), new(MockReviewRepository))

	_, err := service.Toggle(context.Background(), models.SubjectPost, "post-1", 7, models.DirectionLike)
	assert.NoError(t, err)
	state, err := service.Toggle(context.Background(), models.SubjectPost, "post-1", 7, models.DirectionDislike)
	assert.NoError(t, err)

	// Switching sides never leaves the user counted on both
	assert.False(t, state.UserLiked)
	assert.True(t, state.UserDisliked)
	assert.Equal(t, 0, state.LikesCount)
	assert.Equal(t, 1, state.DislikesCount)

	likes, dislikes, _ := engagements.Counts(models.SubjectPost, "post-1")
	assert.Equal(t, int64(0), likes)
	assert.Equal(t, int64(1), dislikes)
}

func TestToggleCountsAreAcrossUsers(t *testing.T) {
	posts := new(MockPostRepository)
	posts.On("GetPostByID", mock.Anything, "post-1").Return(&models.Post{}, nil)
	posts.On("AdjustCounter", mock.Anything, "post-1", mock.Anything, mock.Anything).Return(nil)

	service, _ := newTestEngagementService(posts, new(MockCommentRepository), new(MockReviewRepository))

	_, err := service.Toggle(context.Background(), models.SubjectPost, "post-1", 1, models.DirectionLike)
	assert.NoError(t, err)
	_, err = service.Toggle(context.Background(), models.SubjectPost, "post-1", 2, models.DirectionLike)
	assert.NoError(t, err)
	state, err := service.Toggle(context.Background(), models.SubjectPost, "post-1", 3, models.DirectionDislike)
	assert.NoError(t, err)

	assert.Equal(t, 2, state.LikesCount)
	assert.Equal(t, 1, state.DislikesCount)
	assert.False(t, state.UserLiked)
	assert.True(t, state.UserDisliked)
}

func TestToggleRejectsUnknownAction(t *testing.T) {
	service, _ := newTestEngagementService(new(MockPostRepository), new(MockCommentRepository), new(MockReviewRepository))

	_, err := service.Toggle(context.Background(), models.SubjectPost, "post-1", 7, "love")

	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestToggleMissingPost(t *testing.T) {
	posts := new(MockPostRepository)
	posts.On("GetPostByID", mock.Anything, "missing").Return(nil, repositories.ErrPostNotFound)

	service, engagements := newTestEngagementService(posts, new(MockCommentRepository), new(MockReviewRepository))

	_, err := service.Toggle(context.Background(), models.SubjectPost, "missing", 7, models.DirectionLike)

	assert.ErrorIs(t, err, ErrSubjectNotFound)
	likes, dislikes, _ := engagements.Counts(models.SubjectPost, "missing")
	assert.Equal(t, int64(0), likes)
	assert.Equal(t, int64(0), dislikes)
}

func TestToggleMissingReview(t *testing.T) {
	reviews := new(MockReviewRepository)
	reviews.On("GetReviewByID", uint(42)).Return(nil, gorm.ErrRecordNotFound)

	service, _ := newTestEngagementService(new(MockPostRepository), new(MockCommentRepository), reviews)

	_, err := service.Toggle(context.Background(), models.SubjectReview, "42", 7, models.DirectionLike)

	assert.ErrorIs(t, err, ErrSubjectNotFound)
}

func TestToggleCommentAdjustsCommentCounters(t *testing.T) {
	comments := new(MockCommentRepository)
	comments.On("GetCommentByID", uint(9)).Return(&models.Comment{ID: 9}, nil)
	comments.On("AdjustCounter", uint(9), "likes_count", 1).Return(nil)

	service, _ := newTestEngagementService(new(MockPostRepository), comments, new(MockReviewRepository))

	state, err := service.Toggle(context.Background(), models.SubjectComment, "9", 7, models.DirectionLike)

	assert.NoError(t, err)
	assert.True(t, state.UserLiked)
	comments.AssertExpectations(t)
}

func TestToggleCounterFailureDoesNotFailToggle(t *testing.T) {
	posts := new(MockPostRepository)
	posts.On("GetPostByID", mock.Anything, "post-1").Return(&models.Post{}, nil)
	posts.On("AdjustCounter", mock.Anything, "post-1", repositories.PostFieldLikes, 1).Return(assert.AnError)

	service, _ := newTestEngagementService(posts, new(MockCommentRepository), new(MockReviewRepository))

	state, err := service.Toggle(context.Background(), models.SubjectPost, "post-1", 7, models.DirectionLike)

	assert.NoError(t, err)
	assert.True(t, state.UserLiked)
	assert.Equal(t, 1, state.LikesCount)
}
