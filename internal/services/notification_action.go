package services

import (
	"errors"
	"strconv"
	"strings"

	"github.com/KrishTanna28/cinnect-backend/internal/models"
	"github.com/KrishTanna28/cinnect-backend/internal/repositories"
	"go.uber.org/zap"
)

var (
	// ErrNotRecipient is returned when acting on another user's notification
	ErrNotRecipient = errors.New("notification belongs to another user")
	// ErrAlreadyActioned is returned on a repeated accept/reject attempt
	ErrAlreadyActioned = errors.New("notification already actioned")
	// ErrNotActionable is returned for notification types without an
	// accept/reject transition
	ErrNotActionable = errors.New("notification type is not actionable")
)

// NotificationActionService drives the pending -> accepted|rejected state
// machine for request-type notifications. The graph/membership mutation
// runs first and is itself transactional; only a successful mutation marks
// the notification actioned. A repeated accept cannot double-count a
// follower because the underlying request row is gone by then.
type NotificationActionService struct {
	notifications repositories.NotificationRepository
	follows       repositories.FollowRepository
	communities   repositories.CommunityRepository
	logger        *zap.Logger
}

// NewNotificationActionService creates a new NotificationActionService
func NewNotificationActionService(
	notifications repositories.NotificationRepository,
	follows repositories.FollowRepository,
	communities repositories.CommunityRepository,
	logger *zap.Logger,
) *NotificationActionService {
	return &NotificationActionService{
		notifications: notifications,
		follows:       follows,
		communities:   communities,
		logger:        logger,
	}
}

// Act applies an accept or reject to a request-type notification
func (s *NotificationActionService) Act(recipientID, notificationID uint, action string) (*models.Notification, error) {
	notification, err := s.notifications.GetByID(notificationID)
	if err != nil {
		return nil, err
	}
	if notification.RecipientID != recipientID {
		return nil, ErrNotRecipient
	}
	if notification.ActionTaken {
		return nil, ErrAlreadyActioned
	}

	accept := action == "accept"

	switch notification.Type {
	case models.NotificationFollowRequest:
		requesterID, err := parseUintID(notification.SourceID)
		if err != nil {
			return nil, err
		}
		if accept {
			err = s.follows.AcceptFollowRequest(requesterID, recipientID)
		} else {
			err = s.follows.RejectFollowRequest(requesterID, recipientID)
		}
		if err != nil {
			return nil, err
		}
	case models.NotificationCommunityJoin:
		communityID, memberID, err := parseJoinSourceID(notification.SourceID)
		if err != nil {
			return nil, err
		}
		if accept {
			err = s.communities.ApproveMember(communityID, memberID)
		} else {
			err = s.communities.RemovePendingMember(communityID, memberID)
		}
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrNotActionable
	}

	actionType := models.ActionRejected
	if accept {
		actionType = models.ActionAccepted
	}
	if err := s.notifications.MarkActioned(notification.ID, actionType); err != nil {
		// The request itself resolved; a stale pending row only risks a
		// failed retry, never a double apply.
		s.logger.Warn("failed to mark notification actioned",
			zap.Uint("notification_id", notification.ID),
			zap.Error(err))
	}

	notification.ActionTaken = true
	notification.ActionType = actionType
	notification.IsRead = true
	return notification, nil
}

func parseUintID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.New("malformed notification source")
	}
	return uint(id), nil
}

func parseJoinSourceID(s string) (uint, uint, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, errors.New("malformed notification source")
	}
	communityID, err := parseUintID(parts[0])
	if err != nil {
		return 0, 0, err
	}
	memberID, err := parseUintID(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return communityID, memberID, nil
}
