package router

import (
	"github.com/gin-gonic/gin"

	"inkwire.app/newsroom/internal/http/handler"
)

func SuggestionRouter(rg *gin.RouterGroup, h *handler.SuggestionHandler) {
	rg.POST("/:id/resolve", h.Resolve)
}
