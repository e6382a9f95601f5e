package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwire.app/newsroom/internal/service"
)

type FileHandler struct {
	fileService service.FileService
}

func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

type registerFileRequest struct {
	ProjectID     *int64 `json:"project_id,omitempty"`
	ContentItemID *int64 `json:"content_item_id,omitempty"`
	Name          string `json:"name" binding:"required"`
	ContentType   string `json:"content_type" binding:"required"`
	SizeBytes     int64  `json:"size_bytes" binding:"required"`
	StorageKey    string `json:"storage_key" binding:"required"`
	UploadedBy    *int64 `json:"uploaded_by,omitempty"`
}

// Register answers POST /files. The bytes live in object storage; this
// records the metadata row against a project or a content item.
func (h *FileHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req registerFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: name, content_type, size_bytes and storage_key are required"})
		return
	}

	file, err := h.fileService.Register(ctx, service.RegisterFileParams{
		ProjectID:     req.ProjectID,
		ContentItemID: req.ContentItemID,
		Name:          req.Name,
		ContentType:   req.ContentType,
		SizeBytes:     req.SizeBytes,
		StorageKey:    req.StorageKey,
		UploadedBy:    req.UploadedBy,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileUnattached):
			c.JSON(http.StatusBadRequest, gin.H{"error": "file must attach to a project or a content item"})
		case errors.Is(err, service.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		case errors.Is(err, service.ErrContentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "content item not found"})
		default:
			slog.ErrorContext(ctx, "failed to register file", "error", err, "name", req.Name)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register file"})
		}
		return
	}

	c.JSON(http.StatusCreated, file)
}

// ListByProject answers GET /projects/:id/files.
func (h *FileHandler) ListByProject(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	files, err := h.fileService.ListByProject(ctx, projectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list files", "error", err, "project_id", projectID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list files"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": files})
}

// ListByContentItem answers GET /content/:id/files.
func (h *FileHandler) ListByContentItem(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	files, err := h.fileService.ListByContentItem(ctx, itemID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list files", "error", err, "content_item_id", itemID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list files"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": files})
}

func (h *FileHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	fileID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.fileService.Delete(ctx, fileID); err != nil {
		if errors.Is(err, service.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to delete file", "error", err, "file_id", fileID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete file"})
		return
	}

	c.Status(http.StatusNoContent)
}
