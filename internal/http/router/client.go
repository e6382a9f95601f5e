package router

import (
	"github.com/gin-gonic/gin"

	"inkwire.app/newsroom/internal/http/handler"
)

func ClientRouter(rg *gin.RouterGroup, h *handler.ClientHandler, projects *handler.ProjectHandler) {
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)

	rg.GET("/:id/projects", projects.ListByClient)
}
