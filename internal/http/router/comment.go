package router

import (
	"github.com/gin-gonic/gin"

	"inkwire.app/newsroom/internal/http/handler"
)

func CommentRouter(rg *gin.RouterGroup, h *handler.CommentHandler) {
	rg.POST("/:id/resolve", h.Resolve)
}
