package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/KrishTanna28/cinnect-backend/internal/models"
	"github.com/KrishTanna28/cinnect-backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository       repositories.FollowRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	logger                 *zap.Logger
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(
	followRepo repositories.FollowRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
	logger *zap.Logger,
) *FollowHandler {
	return &FollowHandler{
		followRepository:       followRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
		logger:                 logger,
	}
}

// RegisterFollowRoutes registers follow-related routes on the
// authenticated group
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
}

// RegisterFollowListRoutes registers the public, optionally-authenticated
// follower/following listings
func (h *FollowHandler) RegisterFollowListRoutes(g *echo.Group) {
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// FollowUser follows a public user directly, or files a follow request
// against a private one
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if currentUserID == uint(targetID) {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	target, err := h.userRepository.GetUserByID(uint(targetID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load user")
	}

	isFollowing, err := h.followRepository.IsFollowing(currentUserID, target.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check follow state")
	}
	if isFollowing {
		return echo.NewHTTPError(http.StatusConflict, "Already following this user")
	}

	if target.IsPrivate {
		hasPending, err := h.followRepository.HasPendingRequest(currentUserID, target.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check follow state")
		}
		if hasPending {
			return echo.NewHTTPError(http.StatusConflict, "Follow request already pending")
		}
		if err := h.followRepository.CreateFollowRequest(currentUserID, target.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create follow request")
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"data":    echo.Map{"following": false, "requested": true},
		})
	}

	if err := h.followRepository.CreateFollow(currentUserID, target.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to follow user")
	}

	h.notifyFollowChange(currentUserID, target, models.NotificationNewFollower, " started following you")

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"following": true, "requested": false},
	})
}

// UnfollowUser removes the follow edge
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.followRepository.DeleteFollow(currentUserID, uint(targetID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Not following this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to unfollow user")
	}

	if target, err := h.userRepository.GetUserByID(uint(targetID)); err == nil {
		h.notifyFollowChange(currentUserID, target, models.NotificationLostFollower, " unfollowed you")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": false}})
}

// notifyFollowChange creates a follower-change notification when the
// target opted in. Best effort only.
func (h *FollowHandler) notifyFollowChange(actorID uint, target *models.User, notifType, suffix string) {
	if !target.NotifyFollows {
		return
	}
	actor, err := h.userRepository.GetUserByID(actorID)
	if err != nil {
		return
	}
	err = h.notificationRepository.CreateNotification(&models.Notification{
		RecipientID: target.ID,
		Type:        notifType,
		ActorID:     actorID,
		SourceID:    strconv.FormatUint(uint64(actorID), 10),
		Title:       "Followers",
		Message:     actor.Username + suffix,
		ImageURL:    actor.AvatarURL,
	})
	if err != nil {
		h.logger.Warn("follower notification failed",
			zap.Uint("recipient_id", target.ID),
			zap.Error(err))
	}
}

// GetFollowers lists a user's followers with search and viewer flags
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	return h.followListing(c, h.followRepository.GetFollowers)
}

// GetFollowing lists who a user follows with search and viewer flags
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	return h.followListing(c, h.followRepository.GetFollowing)
}

type followRow struct {
	models.UserCompact
	IsFollowedByMe bool `json:"isFollowedByMe"`
}

func (h *FollowHandler) followListing(c echo.Context, fetch func(uint, string, int, int) ([]models.User, int64, error)) error {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	page, limit := getPagination(c, 20, 50)
	search := c.QueryParam("search")

	users, total, err := fetch(uint(targetID), search, (page-1)*limit, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load list")
	}

	viewerID := getUserIDFromContext(c)
	followed := map[uint]bool{}
	if viewerID != 0 {
		ids := make([]uint, len(users))
		for i, u := range users {
			ids[i] = u.ID
		}
		if followed, err = h.followRepository.GetFollowingIDs(viewerID, ids); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load list")
		}
	}

	rows := make([]followRow, len(users))
	for i, u := range users {
		rows[i] = followRow{UserCompact: u.ToCompact(), IsFollowedByMe: followed[u.ID]}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"users": rows},
		"meta":    paginationMeta(page, limit, total),
	})
}
