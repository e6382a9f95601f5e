package router

import (
	"github.com/gin-gonic/gin"

	"inkwire.app/newsroom/internal/http/handler"
)

// NotificationRouter holds the single-notification route; the listing
// and read-all routes live under /users.
func NotificationRouter(rg *gin.RouterGroup, h *handler.NotificationHandler) {
	rg.POST("/:id/read", h.MarkRead)
}
