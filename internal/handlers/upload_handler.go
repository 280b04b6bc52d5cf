package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/KrishTanna28/cinnect-backend/internal/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UploadHandler handles media uploads. An upload only stores the file and
// returns the URL; posts reference uploaded URLs independently.
type UploadHandler struct {
	storage storage.Storage
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(store storage.Storage) *UploadHandler {
	return &UploadHandler{storage: store}
}

// RegisterUploadRoutes registers upload routes
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/uploads", h.Upload)
}

// Upload stores one multipart file under a random object key
func (h *UploadHandler) Upload(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing file")
	}

	path := uuid.NewString() + filepath.Ext(file.Filename)
	url, err := h.storage.UploadFile(file, path)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Upload failed")
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"url": url}})
}
