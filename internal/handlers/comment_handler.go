package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/KrishTanna28/cinnect-backend/internal/models"
	"github.com/KrishTanna28/cinnect-backend/internal/repositories"
	"github.com/KrishTanna28/cinnect-backend/internal/services"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CommentHandler handles post comment and reply HTTP requests
type CommentHandler struct {
	commentRepository    repositories.CommentRepository
	postRepository       repositories.PostRepository
	userRepository       repositories.UserRepository
	engagementRepository repositories.EngagementRepository
	engagementService    *services.EngagementService
	logger               *zap.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	engagementRepo repositories.EngagementRepository,
	engagementService *services.EngagementService,
	logger *zap.Logger,
) *CommentHandler {
	return &CommentHandler{
		commentRepository:    commentRepo,
		postRepository:       postRepo,
		userRepository:       userRepo,
		engagementRepository: engagementRepo,
		engagementService:    engagementService,
		logger:               logger,
	}
}

// RegisterCommentRoutes registers authenticated comment routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateComment)
	g.POST("/posts/:id/comments/:commentId/replies", h.CreateReply)
	g.POST("/comments/:id/engagement", h.ToggleCommentEngagement)
}

// RegisterPublicCommentRoutes registers the public comment listing
func (h *CommentHandler) RegisterPublicCommentRoutes(g *echo.Group) {
	g.GET("/posts/:id/comments", h.GetComments)
}

// CommentWithReplies is a comment enriched with author, viewer flags and
// its replies in insertion order
type CommentWithReplies struct {
	models.Comment
	Author       models.UserCompact   `json:"author"`
	UserLiked    bool                 `json:"user_liked"`
	UserDisliked bool                 `json:"user_disliked"`
	Replies      []CommentWithReplies `json:"replies,omitempty"`
}

// CreateComment appends a comment to a post. Locked posts reject new
// comments; whitespace-only content is a validation error.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID := c.Param("id")
	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if post.IsLocked {
		return echo.NewHTTPError(http.StatusForbidden, "Post is locked")
	}

	req, err := h.bindCommentRequest(c)
	if err != nil {
		return err
	}

	comment := &models.Comment{
		SubjectType: models.SubjectPost,
		SubjectID:   postID,
		AuthorID:    currentUserID,
		Content:     strings.TrimSpace(req.Content),
		IsSpoiler:   req.IsSpoiler,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create comment")
	}

	if err := h.postRepository.AdjustCounter(c.Request().Context(), postID, repositories.PostFieldComments, 1); err != nil {
		h.logger.Warn("comment counter update failed", zap.String("post_id", postID), zap.Error(err))
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"comment": comment}})
}

// CreateReply appends a reply below a comment. The parent must be a
// top-level comment of the named post; replies never nest further.
func (h *CommentHandler) CreateReply(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID := c.Param("id")
	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if post.IsLocked {
		return echo.NewHTTPError(http.StatusForbidden, "Post is locked")
	}

	commentID, err := strconv.ParseUint(c.Param("commentId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}
	parent, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil || parent.SubjectType != models.SubjectPost || parent.SubjectID != postID {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found on this post")
	}
	if parent.ParentID != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot reply to a reply")
	}

	req, err := h.bindCommentRequest(c)
	if err != nil {
		return err
	}

	parentID := parent.ID
	reply := &models.Comment{
		SubjectType: models.SubjectPost,
		SubjectID:   postID,
		ParentID:    &parentID,
		AuthorID:    currentUserID,
		Content:     strings.TrimSpace(req.Content),
		IsSpoiler:   req.IsSpoiler,
	}
	if err := h.commentRepository.CreateComment(reply); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create reply")
	}

	if err := h.postRepository.AdjustCounter(c.Request().Context(), postID, repositories.PostFieldComments, 1); err != nil {
		h.logger.Warn("comment counter update failed", zap.String("post_id", postID), zap.Error(err))
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"reply": reply}})
}

// GetComments lists a post's comments with replies, authors and viewer flags
func (h *CommentHandler) GetComments(c echo.Context) error {
	postID := c.Param("id")
	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	page, limit := getPagination(c, 20, 100)
	comments, total, err := h.commentRepository.GetCommentsBySubject(models.SubjectPost, postID, (page-1)*limit, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load comments")
	}

	enriched, err := h.enrichComments(c, comments, true)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load comments")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"comments": enriched},
		"meta":    paginationMeta(page, limit, total),
	})
}

// ToggleCommentEngagement toggles the viewer's like/dislike on a comment
// or reply
func (h *CommentHandler) ToggleCommentEngagement(c echo.Context) error {
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

	state, err := h.engagementService.Toggle(c.Request().Context(), models.SubjectComment, c.Param("id"), currentUserID, req.Action)
	if err != nil {
		return mapEngagementError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": state})
}

func (h *CommentHandler) bindCommentRequest(c echo.Context) (*models.CreateCommentRequest, error) {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Content cannot be empty")
	}
	return &req, nil
}

func (h *CommentHandler) enrichComments(c echo.Context, comments []models.Comment, withReplies bool) ([]CommentWithReplies, error) {
	viewerID := getUserIDFromContext(c)

	all := make([]models.Comment, 0, len(comments))
	all = append(all, comments...)

	repliesByParent := make(map[uint][]models.Comment)
	if withReplies {
		for _, comment := range comments {
			replies, err := h.commentRepository.GetRepliesByParent(comment.ID)
			if err != nil {
				return nil, err
			}
			repliesByParent[comment.ID] = replies
			all = append(all, replies...)
		}
	}

	authorIDs := make([]uint, 0, len(all))
	seen := make(map[uint]bool)
	commentIDs := make([]string, len(all))
	for i, comment := range all {
		commentIDs[i] = strconv.FormatUint(uint64(comment.ID), 10)
		if !seen[comment.AuthorID] {
			seen[comment.AuthorID] = true
			authorIDs = append(authorIDs, comment.AuthorID)
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

	directions, err := h.engagementRepository.GetForUser(models.SubjectComment, commentIDs, viewerID)
	if err != nil {
		return nil, err
	}

	build := func(comment models.Comment) CommentWithReplies {
		direction := directions[strconv.FormatUint(uint64(comment.ID), 10)]
		return CommentWithReplies{
			Comment:      comment,
			Author:       userMap[comment.AuthorID],
			UserLiked:    direction == models.DirectionLike,
			UserDisliked: direction == models.DirectionDislike,
		}
	}

	enriched := make([]CommentWithReplies, len(comments))
	for i, comment := range comments {
		row := build(comment)
		for _, reply := range repliesByParent[comment.ID] {
			row.Replies = append(row.Replies, build(reply))
		}
		enriched[i] = row
	}
	return enriched, nil
}
