package services

import (
	"fmt"
	"strconv"

	"github.com/KrishTanna28/cinnect-backend/internal/models"
	"github.com/KrishTanna28/cinnect-backend/internal/repositories"
	"go.uber.org/zap"
)

// NotificationSyncer lazily materializes request-type notifications from
// the live pending-request tables. It runs on every notification-list
// read, so the notifications table is an eventually-consistent view of
// follow_requests and pending community memberships. Idempotence comes
// from the partial unique index behind CreateIfAbsent, not from the
// read-before-write the caller might expect.
type NotificationSyncer struct {
	notifications repositories.NotificationRepository
	follows       repositories.FollowRepository
	communities   repositories.CommunityRepository
	users         repositories.UserRepository
	logger        *zap.Logger
}

// NewNotificationSyncer creates a new NotificationSyncer
func NewNotificationSyncer(
	notifications repositories.NotificationRepository,
	follows repositories.FollowRepository,
	communities repositories.CommunityRepository,
	users repositories.UserRepository,
	logger *zap.Logger,
) *NotificationSyncer {
	return &NotificationSyncer{
		notifications: notifications,
		follows:       follows,
		communities:   communities,
		users:         users,
		logger:        logger,
	}
}

// JoinRequestSourceID keys a community join notification by both the
// community and the requesting user, so one user requesting two
// communities with the same moderator yields two notifications.
func JoinRequestSourceID(communityID, userID uint) string {
	return fmt.Sprintf("%d:%d", communityID, userID)
}

// Sync materializes missing follow-request and join-request notifications
// for the user. Per-entry failures are logged and skipped; a sync error
// never blocks the notification read that triggered it.
func (s *NotificationSyncer) Sync(userID uint) error {
	if err := s.syncFollowRequests(userID); err != nil {
		return err
	}
	return s.syncJoinRequests(userID)
}

func (s *NotificationSyncer) syncFollowRequests(userID uint) error {
	requests, err := s.follows.GetPendingRequestsForTarget(userID)
	if err != nil {
		return err
	}
	for _, req := range requests {
		message := "Someone wants to follow you"
		if requester, err := s.users.GetUserByID(req.RequesterID); err == nil {
			message = requester.Username + " wants to follow you"
		}
		err := s.notifications.CreateIfAbsent(&models.Notification{
			RecipientID: userID,
			Type:        models.NotificationFollowRequest,
			ActorID:     req.RequesterID,
			SourceID:    strconv.FormatUint(uint64(req.RequesterID), 10),
			Title:       "Follow request",
			Message:     message,
		})
		if err != nil {
			s.logger.Warn("follow request notification sync failed",
				zap.Uint("recipient_id", userID),
				zap.Uint("requester_id", req.RequesterID),
				zap.Error(err))
		}
	}
	return nil
}

func (s *NotificationSyncer) syncJoinRequests(userID uint) error {
	communityIDs, err := s.communities.GetModeratedCommunityIDs(userID)
	if err != nil {
		return err
	}
	for _, communityID := range communityIDs {
		pending, err := s.communities.GetPendingMembers(communityID)
		if err != nil {
			s.logger.Warn("pending member scan failed",
				zap.Uint("community_id", communityID),
				zap.Error(err))
			continue
		}
		for _, member := range pending {
			message := "A user requested to join your community"
			if requester, err := s.users.GetUserByID(member.UserID); err == nil {
				message = requester.Username + " requested to join your community"
			}
			err := s.notifications.CreateIfAbsent(&models.Notification{
				RecipientID: userID,
				Type:        models.NotificationCommunityJoin,
				ActorID:     member.UserID,
				SourceID:    JoinRequestSourceID(communityID, member.UserID),
				CommunityID: communityID,
				Title:       "Join request",
				Message:     message,
			})
			if err != nil {
				s.logger.Warn("join request notification sync failed",
					zap.Uint("recipient_id", userID),
					zap.Uint("community_id", communityID),
					zap.Uint("requester_id", member.UserID),
					zap.Error(err))
			}
		}
	}
	return nil
}
