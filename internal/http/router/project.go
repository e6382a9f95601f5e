package router

import (
	"github.com/gin-gonic/gin"

	"inkwire.app/newsroom/internal/http/handler"
)

// ProjectRouter owns the project CRUD and workflow routes plus the
// project-scoped content and file listings.
func ProjectRouter(rg *gin.RouterGroup, h *handler.ProjectHandler, contents *handler.ContentHandler, files *handler.FileHandler) {
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/status", h.Transition)

	rg.POST("/:id/content", contents.CreateItem)
	rg.GET("/:id/content", contents.ListByProject)
	rg.GET("/:id/files", files.ListByProject)
}
