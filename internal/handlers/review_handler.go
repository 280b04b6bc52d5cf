package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/KrishTanna28/cinnect-backend/internal/models"
	"github.com/KrishTanna28/cinnect-backend/internal/repositories"
	"github.com/KrishTanna28/cinnect-backend/internal/services"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReviewHandler handles media review HTTP requests
type ReviewHandler struct {
	reviewRepository       repositories.ReviewRepository
	commentRepository      repositories.CommentRepository
	userRepository         repositories.UserRepository
	engagementRepository   repositories.EngagementRepository
	notificationRepository repositories.NotificationRepository
	engagementService      *services.EngagementService
	logger                 *zap.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(
	reviewRepo repositories.ReviewRepository,
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
	engagementRepo repositories.EngagementRepository,
	notifRepo repositories.NotificationRepository,
	engagementService *services.EngagementService,
	logger *zap.Logger,
) *ReviewHandler {
	return &ReviewHandler{
		reviewRepository:       reviewRepo,
		commentRepository:      commentRepo,
		userRepository:         userRepo,
		engagementRepository:   engagementRepo,
		notificationRepository: notifRepo,
		engagementService:      engagementService,
		logger:                 logger,
	}
}

// RegisterReviewRoutes registers authenticated review routes
func (h *ReviewHandler) RegisterReviewRoutes(g *echo.Group) {
	g.POST("/reviews", h.CreateReview)
	g.POST("/reviews/:id/like", h.ToggleReviewLike)
	g.POST("/reviews/:id/replies", h.CreateReviewReply)
}

// RegisterPublicReviewRoutes registers public review listings
func (h *ReviewHandler) RegisterPublicReviewRoutes(g *echo.Group) {
	g.GET("/reviews", h.GetReviewsByMedia)
	g.GET("/reviews/:id/replies", h.GetReviewReplies)
}

// CreateReview posts a rating+text review for one media item. One review
// per author per (media_id, media_type).
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.reviewRepository.GetReviewByAuthorAndMedia(currentUserID, req.MediaID, req.MediaType); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "You already reviewed this title")
	}

	review := &models.Review{
		AuthorID:   currentUserID,
		MediaID:    req.MediaID,
		MediaType:  req.MediaType,
		Rating:     req.Rating,
		Title:      req.Title,
		Content:    req.Content,
		IsApproved: true,
	}
	if err := h.reviewRepository.CreateReview(review); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create review")
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"review": review}})
}

// GetReviewsByMedia lists reviews for one media item with viewer flags
func (h *ReviewHandler) GetReviewsByMedia(c echo.Context) error {
	mediaID := c.QueryParam("mediaId")
	mediaType := c.QueryParam("mediaType")
	if mediaID == "" || (mediaType != models.MediaMovie && mediaType != models.MediaTV) {
		return echo.NewHTTPError(http.StatusBadRequest, "mediaId and mediaType (movie|tv) are required")
	}

	page, limit := getPagination(c, 20, 50)
	reviews, total, err := h.reviewRepository.GetReviewsByMedia(mediaID, mediaType, (page-1)*limit, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load reviews")
	}

	viewerID := getUserIDFromContext(c)
	reviewIDs := make([]string, len(reviews))
	authorIDs := make([]uint, 0, len(reviews))
	seen := make(map[uint]bool)
	for i, review := range reviews {
		reviewIDs[i] = strconv.FormatUint(uint64(review.ID), 10)
		if !seen[review.AuthorID] {
			seen[review.AuthorID] = true
			authorIDs = append(authorIDs, review.AuthorID)
		}
	}

	users, err := h.userRepository.GetUsersByIDs(authorIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load reviews")
	}
	userMap := make(map[uint]models.UserCompact, len(users))
	for _, u := range users {
		userMap[u.ID] = u.ToCompact()
	}

	directions, err := h.engagementRepository.GetForUser(models.SubjectReview, reviewIDs, viewerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load reviews")
	}

	type enrichedReview struct {
		models.Review
		Author       models.UserCompact `json:"author"`
		UserLiked    bool               `json:"user_liked"`
		UserDisliked bool               `json:"user_disliked"`
	}
	rows := make([]enrichedReview, len(reviews))
	for i, review := range reviews {
		direction := directions[strconv.FormatUint(uint64(review.ID), 10)]
		rows[i] = enrichedReview{
			Review:       review,
			Author:       userMap[review.AuthorID],
			UserLiked:    direction == models.DirectionLike,
			UserDisliked: direction == models.DirectionDislike,
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"reviews": rows},
		"meta":    paginationMeta(page, limit, total),
	})
}

// ToggleReviewLike toggles the viewer's like on a review and notifies the
// author on a fresh like, unless they liked their own review
func (h *ReviewHandler) ToggleReviewLike(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid review ID")
	}
	review, err := h.reviewRepository.GetReviewByID(uint(reviewID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Review not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load review")
	}

	state, err := h.engagementService.Toggle(c.Request().Context(), models.SubjectReview, c.Param("id"), currentUserID, models.DirectionLike)
	if err != nil {
		return mapEngagementError(err)
	}

	if state.UserLiked && review.AuthorID != currentUserID {
		h.notifyReview(review, currentUserID, models.NotificationReviewLike, " liked your review")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": state})
}

// CreateReviewReply appends a reply to a review (one level only) and
// notifies the author unless self-reply
func (h *ReviewHandler) CreateReviewReply(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid review ID")
	}
	review, err := h.reviewRepository.GetReviewByID(uint(reviewID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Review not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load review")
	}
	if review.IsLocked {
		return echo.NewHTTPError(http.StatusForbidden, "Review is locked")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Content) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Content cannot be empty")
	}

	reply := &models.Comment{
		SubjectType: models.SubjectReview,
		SubjectID:   strconv.FormatUint(uint64(review.ID), 10),
		AuthorID:    currentUserID,
		Content:     strings.TrimSpace(req.Content),
		IsSpoiler:   req.IsSpoiler,
	}
	if err := h.commentRepository.CreateComment(reply); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create reply")
	}

	if err := h.reviewRepository.AdjustCounter(review.ID, "replies_count", 1); err != nil {
		h.logger.Warn("reply counter update failed", zap.Uint("review_id", review.ID), zap.Error(err))
	}

	if review.AuthorID != currentUserID {
		h.notifyReview(review, currentUserID, models.NotificationReviewReply, " replied to your review")
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"reply": reply}})
}

// GetReviewReplies lists a review's replies in insertion order
func (h *ReviewHandler) GetReviewReplies(c echo.Context) error {
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid review ID")
	}
	if _, err := h.reviewRepository.GetReviewByID(uint(reviewID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Review not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load review")
	}

	page, limit := getPagination(c, 20, 100)
	replies, total, err := h.commentRepository.GetCommentsBySubject(
		models.SubjectReview, strconv.FormatUint(reviewID, 10), (page-1)*limit, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load replies")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"replies": replies},
		"meta":    paginationMeta(page, limit, total),
	})
}

// notifyReview creates a review engagement notification, best effort
func (h *ReviewHandler) notifyReview(review *models.Review, actorID uint, notifType, suffix string) {
	author, err := h.userRepository.GetUserByID(review.AuthorID)
	if err != nil || !author.NotifyEngagement {
		return
	}
	actor, err := h.userRepository.GetUserByID(actorID)
	if err != nil {
		return
	}
	err = h.notificationRepository.CreateNotification(&models.Notification{
		RecipientID: review.AuthorID,
		Type:        notifType,
		ActorID:     actorID,
		SourceID:    strconv.FormatUint(uint64(review.ID), 10),
		Title:       "Your review",
		Message:     actor.Username + suffix,
		ImageURL:    actor.AvatarURL,
	})
	if err != nil {
		h.logger.Warn("review notification failed",
			zap.Uint("recipient_id", review.AuthorID),
			zap.Error(err))
	}
}
