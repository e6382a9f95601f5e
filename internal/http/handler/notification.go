package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"inkwire.app/newsroom/internal/service"
)

const defaultNotificationLimit = 50

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListByUser answers GET /users/:id/notifications. Supports
// ?unread=true and ?limit=N; the unread count always rides along so
// the dashboard badge needs no second request.
func (h *NotificationHandler) ListByUser(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	unreadOnly := c.Query("unread") == "true"

	limit := int32(defaultNotificationLimit)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = int32(parsed)
	}

	notifications, err := h.notificationService.ListByUser(ctx, userID, unreadOnly, limit)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list notifications", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}

	unreadCount, err := h.notificationService.CountUnread(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to count unread notifications", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "unread_count": unreadCount})
}

// MarkRead answers POST /notifications/:id/read. Marking twice is
// harmless.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	ctx := c.Request.Context()

	notificationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	notification, err := h.notificationService.MarkRead(ctx, notificationID)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to mark notification read", "error", err, "notification_id", notificationID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notification read"})
		return
	}

	c.JSON(http.StatusOK, notification)
}

// MarkAllRead answers POST /users/:id/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllRead(ctx, userID); err != nil {
		slog.ErrorContext(ctx, "failed to mark notifications read", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notifications read"})
		return
	}

	c.Status(http.StatusNoContent)
}
