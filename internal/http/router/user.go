package router

import (
	"github.com/gin-gonic/gin"

	"inkwire.app/newsroom/internal/http/handler"
)

func UserRouter(rg *gin.RouterGroup, h *handler.UserHandler, notifications *handler.NotificationHandler) {
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)

	rg.GET("/:id/notifications", notifications.ListByUser)
	rg.POST("/:id/notifications/read-all", notifications.MarkAllRead)
}
