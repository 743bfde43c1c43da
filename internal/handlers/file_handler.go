package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"cars2customer_backend/internal/logger"
	"cars2customer_backend/internal/storage"
	"cars2customer_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FileHandler serves uploaded car images kept in local storage.
type FileHandler struct {
	*BaseHandler
	storage storage.Storage
}

func NewFileHandler(base *BaseHandler, storage storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		storage:     storage,
	}
}

func (h *FileHandler) RegisterRoutes(r *gin.RouterGroup) {
	files := r.Group("/files")
	{
		files.GET("/*path", h.ServeFile)
		files.HEAD("/*path", h.CheckFileExists)
	}
}

// ServeFile godoc
// @Summary  Download a stored image
// @Tags     files
// @Produce  octet-stream
// @Param    path  path  string  true  "Storage path"
// @Success  200
// @Failure  404  {object}  apperrors.ErrorResponse
// @Router   /files/{path} [get]
func (h *FileHandler) ServeFile(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")

	reader, err := h.storage.Get(c.Request.Context(), path)
	if err != nil {
		h.fileError(c, path, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", contentTypeOf(path))
	c.Header("Cache-Control", "public, max-age=31536000")
	c.Header("Content-Disposition", "inline")
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, reader); err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to stream file", err, "path", path)
	}
}

func (h *FileHandler) CheckFileExists(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")

	exists, err := h.storage.Exists(c.Request.Context(), path)
	if err != nil {
		h.fileError(c, path, err)
		return
	}
	if !exists {
		c.Status(http.StatusNotFound)
		return
	}

	c.Header("Content-Type", contentTypeOf(path))
	c.Status(http.StatusOK)
}

func (h *FileHandler) fileError(c *gin.Context, path string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrInvalidPath):
		apperrors.HandleError(c, apperrors.NewNotFoundError("File not found"))
	default:
		logger.CtxWithError(c.Request.Context(), "Failed to read file", err, "path", path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

func contentTypeOf(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
