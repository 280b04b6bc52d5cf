package handlers

import (
	"net/http"
	"testing"

	"github.com/KrishTanna28/cinnect-backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

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

func newFollowHandler(follows *MockFollowRepository, users *MockUserRepository, notifications *MockNotificationRepository) *FollowHandler {
	return NewFollowHandler(follows, users, notifications, zap.NewNop())
}

func TestFollowSelf(t *testing.T) {
	handler := newFollowHandler(new(MockFollowRepository), new(MockUserRepository), new(MockNotificationRepository))

	c, _ := newCommentTestContext(t, http.MethodPost, "/api/users/7/follow", "", 7)
	c.SetParamNames("id")
	c.SetParamValues("7")

	err := handler.FollowUser(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestFollowPublicUserCreatesEdge(t *testing.T) {
	follows := new(MockFollowRepository)
	users := new(MockUserRepository)
	notifications := new(MockNotificationRepository)

	users.On("GetUserByID", uint(9)).Return(&models.User{ID: 9, Username: "erin", NotifyFollows: true}, nil)
	users.On("GetUserByID", uint(7)).Return(&models.User{ID: 7, Username: "sam"}, nil)
	follows.On("IsFollowing", uint(7), uint(9)).Return(false, nil)
	follows.On("CreateFollow", uint(7), uint(9)).Return(nil)
	notifications.On("CreateNotification", mock.MatchedBy(func(n *models.Notification) bool {
		return n.RecipientID == 9 && n.Type == models.NotificationNewFollower && n.ActorID == 7
	})).Return(nil)

	handler := newFollowHandler(follows, users, notifications)

	c, rec := newCommentTestContext(t, http.MethodPost, "/api/users/9/follow", "", 7)
	c.SetParamNames("id")
	c.SetParamValues("9")

	err := handler.FollowUser(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"following":true`)
	follows.AssertExpectations(t)
	notifications.AssertExpectations(t)
}

func TestFollowPrivateUserFilesRequest(t *testing.T) {
	follows := new(MockFollowRepository)
	users := new(MockUserRepository)

	users.On("GetUserByID", uint(9)).Return(&models.User{ID: 9, IsPrivate: true}, nil)
	follows.On("IsFollowing", uint(7), uint(9)).Return(false, nil)
	follows.On("HasPendingRequest", uint(7), uint(9)).Return(false, nil)
	follows.On("CreateFollowRequest", uint(7), uint(9)).Return(nil)

	handler := newFollowHandler(follows, users, new(MockNotificationRepository))

	c, rec := newCommentTestContext(t, http.MethodPost, "/api/users/9/follow", "", 7)
	c.SetParamNames("id")
	c.SetParamValues("9")

	err := handler.FollowUser(c)

	assert.NoError(t, err)
	assert.Contains(t, rec.Body.String(), `"requested":true`)
	assert.Contains(t, rec.Body.String(), `"following":false`)
	// A private target never gets a direct edge
	follows.AssertNotCalled(t, "CreateFollow", uint(7), uint(9))
}

func TestFollowPrivateUserWithPendingRequest(t *testing.T) {
	follows := new(MockFollowRepository)
	users := new(MockUserRepository)

	users.On("GetUserByID", uint(9)).Return(&models.User{ID: 9, IsPrivate: true}, nil)
	follows.On("IsFollowing", uint(7), uint(9)).Return(false, nil)
	follows.On("HasPendingRequest", uint(7), uint(9)).Return(true, nil)

	handler := newFollowHandler(follows, users, new(MockNotificationRepository))

	c, _ := newCommentTestContext(t, http.MethodPost, "/api/users/9/follow", "", 7)
	c.SetParamNames("id")
	c.SetParamValues("9")

	err := handler.FollowUser(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
	follows.AssertNotCalled(t, "CreateFollowRequest", uint(7), uint(9))
}

func TestFollowAlreadyFollowing(t *testing.T) {
	follows := new(MockFollowRepository)
	users := new(MockUserRepository)

	users.On("GetUserByID", uint(9)).Return(&models.User{ID: 9}, nil)
	follows.On("IsFollowing", uint(7), uint(9)).Return(true, nil)

	handler := newFollowHandler(follows, users, new(MockNotificationRepository))

	c, _ := newCommentTestContext(t, http.MethodPost, "/api/users/9/follow", "", 7)
	c.SetParamNames("id")
	c.SetParamValues("9")

	err := handler.FollowUser(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestFollowRespectsNotificationOptOut(t *testing.T) {
	follows := new(MockFollowRepository)
	users := new(MockUserRepository)
	notifications := new(MockNotificationRepository)

	users.On("GetUserByID", uint(9)).Return(&models.User{ID: 9, NotifyFollows: false}, nil)
	follows.On("IsFollowing", uint(7), uint(9)).Return(false, nil)
	follows.On("CreateFollow", uint(7), uint(9)).Return(nil)

	handler := newFollowHandler(follows, users, notifications)

	c, _ := newCommentTestContext(t, http.MethodPost, "/api/users/9/follow", "", 7)
	c.SetParamNames("id")
	c.SetParamValues("9")

	err := handler.FollowUser(c)

	assert.NoError(t, err)
	notifications.AssertNotCalled(t, "CreateNotification", mock.Anything)
}
