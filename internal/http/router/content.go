package router

import (
	"github.com/gin-gonic/gin"

	"inkwire.app/newsroom/internal/http/handler"
)

// ContentRouter covers the item lifecycle (versions, submit, review)
// and the item-scoped comment, suggestion, and file routes.
func ContentRouter(rg *gin.RouterGroup, h *handler.ContentHandler, comments *handler.CommentHandler, suggestions *handler.SuggestionHandler, files *handler.FileHandler) {
	rg.GET("/:id", h.Get)
	rg.POST("/:id/versions", h.SaveVersion)
	rg.GET("/:id/versions", h.ListVersions)
	rg.POST("/:id/submit", h.Submit)
	rg.POST("/:id/review", h.Review)

	rg.POST("/:id/comments", comments.Create)
	rg.GET("/:id/comments", comments.List)
	rg.POST("/:id/suggestions", suggestions.Create)
	rg.GET("/:id/suggestions", suggestions.List)
	rg.GET("/:id/files", files.ListByContentItem)
}
