package handlers

import (
	"errors"
	"net/http"

	"github.com/KrishTanna28/cinnect-backend/internal/models"
	"github.com/KrishTanna28/cinnect-backend/internal/repositories"
	"github.com/KrishTanna28/cinnect-backend/internal/services"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
	syncer                 *services.NotificationSyncer
	actions                *services.NotificationActionService
	logger                 *zap.Logger
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(
	notifRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	syncer *services.NotificationSyncer,
	actions *services.NotificationActionService,
	logger *zap.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		userRepository:         userRepo,
		syncer:                 syncer,
		actions:                actions,
		logger:                 logger,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.PATCH("/notifications", h.MarkRead)
	g.POST("/notifications/action", h.ActOnNotification)
}

// EnrichedNotification includes actor info
type EnrichedNotification struct {
	models.Notification
	Actor models.UserCompact `json:"actor"`
}

// GetNotifications synchronizes pending-request notifications, then
// returns a page plus the unread count. A failed sync is logged and never
// blocks the read.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.syncer.Sync(currentUserID); err != nil {
		h.logger.Warn("notification sync failed",
			zap.Uint("user_id", currentUserID),
			zap.Error(err))
	}

	page, limit := getPagination(c, 20, 50)
	notifications, total, err := h.notificationRepository.GetByRecipientID(currentUserID, (page-1)*limit, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load notifications")
	}

	unreadCount, err := h.notificationRepository.GetUnreadCount(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load notifications")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"notifications": h.enrichNotifications(notifications),
			"unreadCount":   unreadCount,
		},
		"meta": paginationMeta(page, limit, total),
	})
}

// MarkRead marks one notification read, or all when no ID is given
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.MarkReadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	if req.NotificationID == 0 {
		if err := h.notificationRepository.MarkAllAsRead(currentUserID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to mark notifications read")
		}
	} else {
		err := h.notificationRepository.MarkAsRead(currentUserID, req.NotificationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to mark notification read")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"read": true}})
}

// ActOnNotification applies accept/reject to a request-type notification
func (h *NotificationHandler) ActOnNotification(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.NotificationActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	notification, err := h.actions.Act(currentUserID, req.NotificationID, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		case errors.Is(err, services.ErrNotRecipient):
			return echo.NewHTTPError(http.StatusForbidden, "Not your notification")
		case errors.Is(err, services.ErrAlreadyActioned):
			return echo.NewHTTPError(http.StatusConflict, "Notification already actioned")
		case errors.Is(err, services.ErrNotActionable):
			return echo.NewHTTPError(http.StatusBadRequest, "Notification cannot be actioned")
		case errors.Is(err, repositories.ErrNoPendingRequest), errors.Is(err, repositories.ErrNoPendingJoin):
			return echo.NewHTTPError(http.StatusConflict, "The underlying request no longer exists")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to apply action")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"notification": notification}})
}

func (h *NotificationHandler) enrichNotifications(notifications []models.Notification) []EnrichedNotification {
	enriched := make([]EnrichedNotification, len(notifications))
	userCache := make(map[uint]models.UserCompact)

	for i, n := range notifications {
		enriched[i] = EnrichedNotification{Notification: n}
		if n.ActorID == 0 {
			continue
		}
		if actor, ok := userCache[n.ActorID]; ok {
			enriched[i].Actor = actor
		} else if user, err := h.userRepository.GetUserByID(n.ActorID); err == nil {
			compact := user.ToCompact()
			userCache[n.ActorID] = compact
			enriched[i].Actor = compact
		}
	}
	return enriched
}
