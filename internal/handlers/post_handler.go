package handlers

import (
	"net/http"
	"time"

	"github.com/KrishTanna28/cinnect-backend/internal/models"
	"github.com/KrishTanna28/cinnect-backend/internal/ranking"
	"github.com/KrishTanna28/cinnect-backend/internal/repositories"
	"github.com/KrishTanna28/cinnect-backend/internal/services"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PostHandler handles community post HTTP requests
type PostHandler struct {
	postRepository       repositories.PostRepository
	communityRepository  repositories.CommunityRepository
	userRepository       repositories.UserRepository
	engagementRepository repositories.EngagementRepository
	engagementService    *services.EngagementService
	logger               *zap.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	communityRepo repositories.CommunityRepository,
	userRepo repositories.UserRepository,
	engagementRepo repositories.EngagementRepository,
	engagementService *services.EngagementService,
	logger *zap.Logger,
) *PostHandler {
	return &PostHandler{
		postRepository:       postRepo,
		communityRepository:  communityRepo,
		userRepository:       userRepo,
		engagementRepository: engagementRepo,
		engagementService:    engagementService,
		logger:               logger,
	}
}

// RegisterPostRoutes registers authenticated post routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/communities/:slug/posts", h.CreatePost)
	g.POST("/posts/:id/engagement", h.TogglePostEngagement)
}

// RegisterPublicPostRoutes registers public (optionally authenticated)
// post routes
func (h *PostHandler) RegisterPublicPostRoutes(g *echo.Group) {
	g.GET("/communities/:slug/posts", h.GetCommunityPosts)
	g.GET("/posts/:id", h.GetPost)
}

// EnrichedPost is a post with author info and viewer-specific flags
type EnrichedPost struct {
	models.Post
	Author       models.UserCompact `json:"author"`
	UserLiked    bool               `json:"user_liked"`
	UserDisliked bool               `json:"user_disliked"`
}

// CreatePost creates a post in a community; active membership required
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	community, err := h.communityRepository.GetCommunityBySlug(c.Param("slug"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Community not found")
	}

	isMember, err := h.communityRepository.IsActiveMember(community.ID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check membership")
	}
	if !isMember {
		return echo.NewHTTPError(http.StatusForbidden, "Must be a community member to post")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post := &models.Post{
		AuthorID:    currentUserID,
		CommunityID: community.ID,
		Title:       req.Title,
		Content:     req.Content,
		ImageURLs:   req.ImageURLs,
		VideoURLs:   req.VideoURLs,
		IsApproved:  true,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create post")
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"post": post}})
}

// GetCommunityPosts returns a ranked page of community posts. Recent
// pages in Mongo; popular and hot rank the community's posts at read time.
func (h *PostHandler) GetCommunityPosts(c echo.Context) error {
	community, err := h.communityRepository.GetCommunityBySlug(c.Param("slug"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Community not found")
	}

	sortMode := c.QueryParam("sort")
	if sortMode == "" {
		sortMode = ranking.SortRecent
	}
	if !ranking.IsValidSort(sortMode) {
		return echo.NewHTTPError(http.StatusBadRequest, "Sort must be recent, popular or hot")
	}

	page, limit := getPagination(c, 10, 50)
	ctx := c.Request().Context()

	var posts []models.Post
	var total int64

	if sortMode == ranking.SortRecent {
		posts, err = h.postRepository.GetRecentByCommunity(ctx, community.ID, int64((page-1)*limit), int64(limit))
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load posts")
		}
		total, err = h.postRepository.CountByCommunity(ctx, community.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load posts")
		}
	} else {
		all, err := h.postRepository.GetAllByCommunity(ctx, community.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load posts")
		}
		total = int64(len(all))
		ranking.SortPosts(all, sortMode, time.Now())
		posts = ranking.Page(all, page, limit)
	}

	enriched, err := h.enrichPosts(c, posts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load posts")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"posts": enriched, "sort": sortMode},
		"meta":    paginationMeta(page, limit, total),
	})
}

// GetPost returns one post and bumps its view counter
func (h *PostHandler) GetPost(c echo.Context) error {
	postID := c.Param("id")
	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	if err := h.postRepository.AdjustCounter(c.Request().Context(), postID, repositories.PostFieldViews, 1); err != nil {
		h.logger.Warn("view counter update failed", zap.String("post_id", postID), zap.Error(err))
	}

	enriched, err := h.enrichPosts(c, []models.Post{*post})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load post")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"post": enriched[0]}})
}

// TogglePostEngagement toggles the viewer's like/dislike on a post
func (h *PostHandler) TogglePostEngagement(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.ToggleEngagementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	state, err := h.engagementService.Toggle(c.Request().Context(), models.SubjectPost, c.Param("id"), currentUserID, req.Action)
	if err != nil {
		return mapEngagementError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": state})
}

func (h *PostHandler) enrichPosts(c echo.Context, posts []models.Post) ([]EnrichedPost, error) {
	authorIDs := make([]uint, 0, len(posts))
	seen := make(map[uint]bool)
	postIDs := make([]string, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID.Hex()
		if !seen[p.AuthorID] {
			seen[p.AuthorID] = true
			authorIDs = append(authorIDs, p.AuthorID)
		}
	}

	users, err := h.userRepository.GetUsersByIDs(authorIDs)
	if err != nil {
		return nil, err
	}
	userMap := make(map[uint]models.UserCompact, len(users))
	for _, u := range users {
		userMap[u.ID] = u.ToCompact()
	}

	directions, err := h.engagementRepository.GetForUser(models.SubjectPost, postIDs, getUserIDFromContext(c))
	if err != nil {
		return nil, err
	}

	enriched := make([]EnrichedPost, len(posts))
	for i, p := range posts {
		direction := directions[p.ID.Hex()]
		enriched[i] = EnrichedPost{
			Post:         p,
			Author:       userMap[p.AuthorID],
			UserLiked:    direction == models.DirectionLike,
			UserDisliked: direction == models.DirectionDislike,
		}
	}
	return enriched, nil
}

// mapEngagementError converts engagement service errors to HTTP errors
func mapEngagementError(err error) error {
	switch err {
	case services.ErrInvalidAction:
		return echo.NewHTTPError(http.StatusBadRequest, "Action must be like or dislike")
	case services.ErrSubjectNotFound:
		return echo.NewHTTPError(http.StatusNotFound, "Target not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to toggle engagement")
	}
}
