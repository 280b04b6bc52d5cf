package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/KrishTanna28/cinnect-backend/internal/models"
	"github.com/KrishTanna28/cinnect-backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CommunityHandler handles community and membership HTTP requests
type CommunityHandler struct {
	communityRepository repositories.CommunityRepository
	userRepository      repositories.UserRepository
}

// NewCommunityHandler creates a new CommunityHandler
func NewCommunityHandler(communityRepo repositories.CommunityRepository, userRepo repositories.UserRepository) *CommunityHandler {
	return &CommunityHandler{
		communityRepository: communityRepo,
		userRepository:      userRepo,
	}
}

// RegisterCommunityRoutes registers authenticated community routes
func (h *CommunityHandler) RegisterCommunityRoutes(g *echo.Group) {
	g.POST("/communities", h.CreateCommunity)
	g.POST("/communities/:slug/join", h.JoinCommunity)
	g.GET("/communities/:slug/requests", h.GetPendingRequests)
	g.POST("/communities/:slug/requests/:userId", h.ResolveJoinRequest)
}

// RegisterPublicCommunityRoutes registers unauthenticated community routes
func (h *CommunityHandler) RegisterPublicCommunityRoutes(g *echo.Group) {
	g.GET("/communities", h.ListCommunities)
	g.GET("/communities/:slug", h.GetCommunity)
}

// CreateCommunity creates a community; the creator becomes its first
// active moderator
func (h *CommunityHandler) CreateCommunity(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateCommunityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.communityRepository.GetCommunityBySlug(req.Slug); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Slug already in use")
	}

	community := &models.Community{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		CreatorID:   currentUserID,
		IsPrivate:   req.IsPrivate,
	}
	if err := h.communityRepository.CreateCommunity(community); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create community")
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"community": community}})
}

// ListCommunities lists communities with pagination
func (h *CommunityHandler) ListCommunities(c echo.Context) error {
	page, limit := getPagination(c, 20, 50)

	communities, total, err := h.communityRepository.ListCommunities((page-1)*limit, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load communities")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"communities": communities},
		"meta":    paginationMeta(page, limit, total),
	})
}

// GetCommunity returns one community by slug
func (h *CommunityHandler) GetCommunity(c echo.Context) error {
	community, err := h.loadCommunity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"community": community}})
}

// JoinCommunity joins a public community immediately, or files a pending
// join request against a private one
func (h *CommunityHandler) JoinCommunity(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	community, err := h.loadCommunity(c)
	if err != nil {
		return err
	}

	if _, err := h.communityRepository.GetMember(community.ID, currentUserID); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Already a member or request pending")
	}

	status := models.MemberStatusActive
	if community.IsPrivate {
		status = models.MemberStatusPending
	}
	member := &models.CommunityMember{
		CommunityID: community.ID,
		UserID:      currentUserID,
		Role:        models.RoleMember,
		Status:      status,
	}
	if err := h.communityRepository.AddMember(member); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to join community")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"member": status == models.MemberStatusActive, "requested": status == models.MemberStatusPending},
	})
}

// GetPendingRequests lists pending join requests; moderators only
func (h *CommunityHandler) GetPendingRequests(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	community, err := h.loadCommunity(c)
	if err != nil {
		return err
	}
	if err := h.requireModerator(community.ID, currentUserID); err != nil {
		return err
	}

	pending, err := h.communityRepository.GetPendingMembers(community.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load requests")
	}

	ids := make([]uint, len(pending))
	for i, m := range pending {
		ids[i] = m.UserID
	}
	users, err := h.userRepository.GetUsersByIDs(ids)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load requests")
	}
	compact := make([]models.UserCompact, len(users))
	for i, u := range users {
		compact[i] = u.ToCompact()
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"requests": compact}})
}

// ResolveJoinRequest accepts or rejects a pending join request directly,
// the same transition the notification action drives
func (h *CommunityHandler) ResolveJoinRequest(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	community, err := h.loadCommunity(c)
	if err != nil {
		return err
	}
	if err := h.requireModerator(community.ID, currentUserID); err != nil {
		return err
	}

	memberID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	action := c.QueryParam("action")
	switch action {
	case "accept":
		err = h.communityRepository.ApproveMember(community.ID, uint(memberID))
	case "reject":
		err = h.communityRepository.RemovePendingMember(community.ID, uint(memberID))
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Action must be accept or reject")
	}
	if err != nil {
		if errors.Is(err, repositories.ErrNoPendingJoin) {
			return echo.NewHTTPError(http.StatusNotFound, "Join request not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve request")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"action": action}})
}

func (h *CommunityHandler) loadCommunity(c echo.Context) (*models.Community, error) {
	community, err := h.communityRepository.GetCommunityBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Community not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Failed to load community")
	}
	return community, nil
}

func (h *CommunityHandler) requireModerator(communityID, userID uint) error {
	isModerator, err := h.communityRepository.IsModerator(communityID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check permissions")
	}
	if !isModerator {
		return echo.NewHTTPError(http.StatusForbidden, "Moderator access required")
	}
	return nil
}
