package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwire.app/newsroom/internal/model"
	"inkwire.app/newsroom/internal/service"
)

type SuggestionHandler struct {
	suggestionService service.SuggestionService
}

func NewSuggestionHandler(suggestionService service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestionService: suggestionService}
}

type createSuggestionRequest struct {
	AuthorUserID int64   `json:"author_user_id" binding:"required"`
	Excerpt      string  `json:"excerpt" binding:"required"`
	Replacement  string  `json:"replacement" binding:"required"`
	Note         *string `json:"note,omitempty"`
}

// Create answers POST /content/:id/suggestions. Only client reviewers
// can suggest edits.
func (h *SuggestionHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req createSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: author_user_id, excerpt and replacement are required"})
		return
	}

	suggestion, err := h.suggestionService.Create(ctx, service.CreateSuggestionParams{
		ContentItemID: itemID,
		AuthorUserID:  req.AuthorUserID,
		Excerpt:       req.Excerpt,
		Replacement:   req.Replacement,
		Note:          req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotReviewer):
			c.JSON(http.StatusForbidden, gin.H{"error": "only client reviewers can create suggestions"})
		case errors.Is(err, service.ErrContentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "content item not found"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "author not found"})
		default:
			slog.ErrorContext(ctx, "failed to create suggestion", "error", err, "content_item_id", itemID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create suggestion"})
		}
		return
	}

	c.JSON(http.StatusCreated, suggestion)
}

// List answers GET /content/:id/suggestions with an optional ?status=
// filter.
func (h *SuggestionHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var status *model.SuggestionStatus
	if raw := c.Query("status"); raw != "" {
		s := model.SuggestionStatus(raw)
		if !s.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
			return
		}
		status = &s
	}

	suggestions, err := h.suggestionService.List(ctx, itemID, status)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list suggestions", "error", err, "content_item_id", itemID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list suggestions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

type resolveSuggestionRequest struct {
	Status     string `json:"status" binding:"required"`
	ResolvedBy int64  `json:"resolved_by" binding:"required"`
}

// Resolve answers POST /suggestions/:id/resolve with accepted or
// rejected.
func (h *SuggestionHandler) Resolve(c *gin.Context) {
	ctx := c.Request.Context()

	suggestionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req resolveSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: status and resolved_by are required"})
		return
	}

	suggestion, err := h.suggestionService.Resolve(ctx, suggestionID, model.SuggestionStatus(req.Status), req.ResolvedBy)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidResolution):
			c.JSON(http.StatusBadRequest, gin.H{"error": "suggestions resolve to accepted or rejected"})
		case errors.Is(err, service.ErrSuggestionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "suggestion not found"})
		case errors.Is(err, service.ErrAlreadyResolved):
			c.JSON(http.StatusConflict, gin.H{"error": "suggestion is already resolved"})
		default:
			slog.ErrorContext(ctx, "failed to resolve suggestion", "error", err, "suggestion_id", suggestionID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve suggestion"})
		}
		return
	}

	c.JSON(http.StatusOK, suggestion)
}
