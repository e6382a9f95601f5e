package router

import (
	"github.com/gin-gonic/gin"

	"inkwire.app/newsroom/internal/http/handler"
)

func FileRouter(rg *gin.RouterGroup, h *handler.FileHandler) {
	rg.POST("", h.Register)
	rg.DELETE("/:id", h.Delete)
}
