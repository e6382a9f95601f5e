package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwire.app/newsroom/internal/model"
	"inkwire.app/newsroom/internal/service"
)

type ContentHandler struct {
	contentService service.ContentService
}

func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

type createContentItemRequest struct {
	Title     string `json:"title" binding:"required"`
	Kind      string `json:"kind" binding:"required"`
	CreatedBy *int64 `json:"created_by,omitempty"`
}

// CreateItem answers POST /projects/:id/content.
func (h *ContentHandler) CreateItem(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req createContentItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: title and kind are required"})
		return
	}

	item, err := h.contentService.CreateItem(ctx, service.CreateItemParams{
		ProjectID: projectID,
		Title:     req.Title,
		Kind:      model.ContentKind(req.Kind),
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidKind):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid content kind"})
		case errors.Is(err, service.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		default:
			slog.ErrorContext(ctx, "failed to create content item", "error", err, "project_id", projectID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create content item"})
		}
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Get answers GET /content/:id with the item and its current version.
// The version is null until the first autosave lands.
func (h *ContentHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, version, err := h.contentService.GetWithVersion(ctx, itemID)
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "content item not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to get content item", "error", err, "content_item_id", itemID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get content item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item, "current_version": version})
}

// ListByProject answers GET /projects/:id/content.
func (h *ContentHandler) ListByProject(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	items, err := h.contentService.ListByProject(ctx, projectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list content items", "error", err, "project_id", projectID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list content items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

type saveVersionRequest struct {
	Document  json.RawMessage `json:"document" binding:"required"`
	CreatedBy *int64          `json:"created_by,omitempty"`
}

// SaveVersion answers POST /content/:id/versions, the autosave endpoint.
func (h *ContentHandler) SaveVersion(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req saveVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: document is required"})
		return
	}

	version, err := h.contentService.SaveVersion(ctx, service.SaveVersionParams{
		ContentItemID: itemID,
		Document:      req.Document,
		CreatedBy:     req.CreatedBy,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDocument):
			c.JSON(http.StatusBadRequest, gin.H{"error": "document has no usable content"})
		case errors.Is(err, service.ErrContentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "content item not found"})
		default:
			slog.ErrorContext(ctx, "failed to save content version", "error", err, "content_item_id", itemID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save content version"})
		}
		return
	}

	c.JSON(http.StatusCreated, version)
}

// ListVersions answers GET /content/:id/versions, newest first.
func (h *ContentHandler) ListVersions(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	versions, err := h.contentService.ListVersions(ctx, itemID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list content versions", "error", err, "content_item_id", itemID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list content versions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"versions": versions})
}

type submitContentRequest struct {
	ActorID *int64 `json:"actor_id,omitempty"`
}

// Submit answers POST /content/:id/submit. The body is optional; it only
// carries the acting user for notification attribution.
func (h *ContentHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req submitContentRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.contentService.Submit(ctx, itemID, req.ActorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "content item not found"})
		case errors.Is(err, service.ErrNoVersion):
			c.JSON(http.StatusConflict, gin.H{"error": "content has no saved version"})
		case errors.Is(err, service.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "invalid status transition"})
		default:
			slog.ErrorContext(ctx, "failed to submit content item", "error", err, "content_item_id", itemID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit content item"})
		}
		return
	}

	c.JSON(http.StatusOK, item)
}

type reviewContentRequest struct {
	Approve *bool  `json:"approve" binding:"required"`
	ActorID *int64 `json:"actor_id,omitempty"`
}

// Review answers POST /content/:id/review: approve moves the item to
// approved, otherwise it goes back to needs_changes.
func (h *ContentHandler) Review(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req reviewContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: approve is required"})
		return
	}

	item, err := h.contentService.Review(ctx, service.ReviewParams{
		ContentItemID: itemID,
		Approve:       *req.Approve,
		ActorID:       req.ActorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "content item not found"})
		case errors.Is(err, service.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "invalid status transition"})
		default:
			slog.ErrorContext(ctx, "failed to review content item", "error", err, "content_item_id", itemID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to review content item"})
		}
		return
	}

	c.JSON(http.StatusOK, item)
}
