package services

import (
	"context"
	"sync"

	"github.com/KrishTanna28/cinnect-backend/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockPostRepository is a mock implementation of repositories.PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetRecentByCommunity(ctx context.Context, communityID uint, skip, limit int64) ([]models.Post, error) {
	args := m.Called(ctx, communityID, skip, limit)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) GetAllByCommunity(ctx context.Context, communityID uint) ([]models.Post, error) {
	args := m.Called(ctx, communityID)
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) CountByCommunity(ctx context.Context, communityID uint) (int64, error) {
	args := m.Called(ctx, communityID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) AdjustCounter(ctx context.Context, postID, field string, delta int) error {
	args := m.Called(ctx, postID, field, delta)
	return args.Error(0)
}

func (m *MockPostRepository) DeletePost(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommentRepository is a mock implementation of repositories.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) CreateComment(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetCommentsBySubject(subjectType, subjectID string, offset, limit int) ([]models.Comment, int64, error) {
	args := m.Called(subjectType, subjectID, offset, limit)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) GetRepliesByParent(parentID uint) ([]models.Comment, error) {
	args := m.Called(parentID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) AdjustCounter(commentID uint, column string, delta int) error {
	args := m.Called(commentID, column, delta)
	return args.Error(0)
}

func (m *MockCommentRepository) CountBySubject(subjectType, subjectID string) (int64, error) {
	args := m.Called(subjectType, subjectID)
	return args.Get(0).(int64), args.Error(1)
}

// MockReviewRepository is a mock implementation of repositories.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) CreateReview(review *models.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetReviewByID(id uint) (*models.Review, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) GetReviewByAuthorAndMedia(authorID uint, mediaID, mediaType string) (*models.Review, error) {
	args := m.Called(authorID, mediaID, mediaType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) GetReviewsByMedia(mediaID, mediaType string, offset, limit int) ([]models.Review, int64, error) {
	args := m.Called(mediaID, mediaType, offset, limit)
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) AdjustCounter(reviewID uint, column string, delta int) error {
	args := m.Called(reviewID, column, delta)
	return args.Error(0)
}

// MockFollowRepository is a mock implementation of repositories.FollowRepository
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	args := m.Called(followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) CreateFollow(followerID, followingID uint) error {
	args := m.Called(followerID, followingID)
	return args.Error(0)
}

func (m *MockFollowRepository) DeleteFollow(followerID, followingID uint) error {
	args := m.Called(followerID, followingID)
	return args.Error(0)
}

func (m *MockFollowRepository) GetFollowers(userID uint, search string, offset, limit int) ([]models.User, int64, error) {
	args := m.Called(userID, search, offset, limit)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockFollowRepository) GetFollowing(userID uint, search string, offset, limit int) ([]models.User, int64, error) {
	args := m.Called(userID, search, offset, limit)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockFollowRepository) GetFollowingIDs(followerID uint, candidates []uint) (map[uint]bool, error) {
	args := m.Called(followerID, candidates)
	return args.Get(0).(map[uint]bool), args.Error(1)
}

func (m *MockFollowRepository) CreateFollowRequest(requesterID, targetID uint) error {
	args := m.Called(requesterID, targetID)
	return args.Error(0)
}

func (m *MockFollowRepository) HasPendingRequest(requesterID, targetID uint) (bool, error) {
	args := m.Called(requesterID, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) GetPendingRequestsForTarget(targetID uint) ([]models.FollowRequest, error) {
	args := m.Called(targetID)
	return args.Get(0).([]models.FollowRequest), args.Error(1)
}

func (m *MockFollowRepository) AcceptFollowRequest(requesterID, targetID uint) error {
	args := m.Called(requesterID, targetID)
	return args.Error(0)
}

func (m *MockFollowRepository) RejectFollowRequest(requesterID, targetID uint) error {
	args := m.Called(requesterID, targetID)
	return args.Error(0)
}

// MockCommunityRepository is a mock implementation of repositories.CommunityRepository
type MockCommunityRepository struct {
	mock.Mock
}

func (m *MockCommunityRepository) CreateCommunity(community *models.Community) error {
	args := m.Called(community)
	return args.Error(0)
}

func (m *MockCommunityRepository) GetCommunityBySlug(slug string) (*models.Community, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Community), args.Error(1)
}

func (m *MockCommunityRepository) GetCommunityByID(id uint) (*models.Community, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Community), args.Error(1)
}

func (m *MockCommunityRepository) ListCommunities(offset, limit int) ([]models.Community, int64, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]models.Community), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommunityRepository) AddMember(member *models.CommunityMember) error {
	args := m.Called(member)
	return args.Error(0)
}

func (m *MockCommunityRepository) GetMember(communityID, userID uint) (*models.CommunityMember, error) {
	args := m.Called(communityID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CommunityMember), args.Error(1)
}

func (m *MockCommunityRepository) IsActiveMember(communityID, userID uint) (bool, error) {
	args := m.Called(communityID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommunityRepository) IsModerator(communityID, userID uint) (bool, error) {
	args := m.Called(communityID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommunityRepository) GetModeratedCommunityIDs(userID uint) ([]uint, error) {
	args := m.Called(userID)
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockCommunityRepository) GetPendingMembers(communityID uint) ([]models.CommunityMember, error) {
	args := m.Called(communityID)
	return args.Get(0).([]models.CommunityMember), args.Error(1)
}

func (m *MockCommunityRepository) ApproveMember(communityID, userID uint) error {
	args := m.Called(communityID, userID)
	return args.Error(0)
}

func (m *MockCommunityRepository) RemovePendingMember(communityID, userID uint) error {
	args := m.Called(communityID, userID)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) SearchUsers(query string, limit int) ([]models.User, error) {
	args := m.Called(query, limit)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) GetUsersByIDs(ids []uint) ([]models.User, error) {
	args := m.Called(ids)
	return args.Get(0).([]models.User), args.Error(1)
}

// MockNotificationRepository is a mock implementation of
// repositories.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) CreateNotification(notification *models.Notification) error {
	args := m.Called(notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) CreateIfAbsent(notification *models.Notification) error {
	args := m.Called(notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetByID(id uint) (*models.Notification, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) GetByRecipientID(recipientID uint, offset, limit int) ([]models.Notification, int64, error) {
	args := m.Called(recipientID, offset, limit)
	return args.Get(0).([]models.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	args := m.Called(recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAsRead(recipientID, notificationID uint) error {
	args := m.Called(recipientID, notificationID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllAsRead(recipientID uint) error {
	args := m.Called(recipientID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkActioned(id uint, actionType string) error {
	args := m.Called(id, actionType)
	return args.Error(0)
}

// fakeEngagementRepo is an in-memory EngagementRepository that mirrors the
// unique-row-per-(subject, user) behavior of the real table
type fakeEngagementRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*models.Engagement
}

func newFakeEngagementRepo() *fakeEngagementRepo {
	return &fakeEngagementRepo{nextID: 1, rows: make(map[uint]*models.Engagement)}
}

func (f *fakeEngagementRepo) Get(subjectType, subjectID string, userID uint) (*models.Engagement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.SubjectType == subjectType && row.SubjectID == subjectID && row.UserID == userID {
			copied := *row
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeEngagementRepo) Insert(engagement *models.Engagement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	engagement.ID = f.nextID
	f.nextID++
	copied := *engagement
	f.rows[engagement.ID] = &copied
	return nil
}

func (f *fakeEngagementRepo) UpdateDirection(id uint, direction string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[id].Direction = direction
	return nil
}

func (f *fakeEngagementRepo) Delete(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakeEngagementRepo) Counts(subjectType, subjectID string) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var likes, dislikes int64
	for _, row := range f.rows {
		if row.SubjectType != subjectType || row.SubjectID != subjectID {
			continue
		}
		if row.Direction == models.DirectionLike {
			likes++
		} else {
			dislikes++
		}
	}
	return likes, dislikes, nil
}

func (f *fakeEngagementRepo) GetForUser(subjectType string, subjectIDs []string, userID uint) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	directions := make(map[string]string)
	for _, row := range f.rows {
		if row.SubjectType == subjectType && row.UserID == userID {
			directions[row.SubjectID] = row.Direction
		}
	}
	return directions, nil
}
