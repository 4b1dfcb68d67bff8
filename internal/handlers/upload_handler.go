package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UploadHandler handles poem image uploads
type UploadHandler struct {
	uploadDir string
	maxBytes  int64
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploadDir string, maxUploadMB int64) *UploadHandler {
	return &UploadHandler{
		uploadDir: uploadDir,
		maxBytes:  maxUploadMB << 20,
	}
}

// RegisterUploadRoutes registers upload-related routes
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/uploads", h.UploadImage)
}

// UploadImage accepts a multipart "image" part, image mime types only and
// size-capped, stores it under a generated filename and returns its URL
func (h *UploadHandler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Multipart field 'image' is required")
	}

	if fileHeader.Size > h.maxBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "Image exceeds the maximum upload size")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return echo.NewHTTPError(http.StatusBadRequest, "Only image uploads are allowed")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer src.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	filename := uuid.NewString() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	dst, err := os.Create(filepath.Join(h.uploadDir, filename))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"url": "/uploads/" + filename})
}
