package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwire.app/newsroom/internal/service"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type createCommentRequest struct {
	AuthorUserID int64  `json:"author_user_id" binding:"required"`
	Body         string `json:"body" binding:"required"`
}

// Create answers POST /content/:id/comments.
func (h *CommentHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: author_user_id and body are required"})
		return
	}

	comment, err := h.commentService.Create(ctx, itemID, req.AuthorUserID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "content item not found"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "author not found"})
		default:
			slog.ErrorContext(ctx, "failed to create comment", "error", err, "content_item_id", itemID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create comment"})
		}
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// List answers GET /content/:id/comments.
func (h *CommentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	comments, err := h.commentService.List(ctx, itemID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list comments", "error", err, "content_item_id", itemID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

type resolveCommentRequest struct {
	ResolvedBy int64 `json:"resolved_by" binding:"required"`
}

// Resolve answers POST /comments/:id/resolve.
func (h *CommentHandler) Resolve(c *gin.Context) {
	ctx := c.Request.Context()

	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req resolveCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: resolved_by is required"})
		return
	}

	comment, err := h.commentService.Resolve(ctx, commentID, req.ResolvedBy)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		case errors.Is(err, service.ErrAlreadyResolved):
			c.JSON(http.StatusConflict, gin.H{"error": "comment is already resolved"})
		default:
			slog.ErrorContext(ctx, "failed to resolve comment", "error", err, "comment_id", commentID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve comment"})
		}
		return
	}

	c.JSON(http.StatusOK, comment)
}
