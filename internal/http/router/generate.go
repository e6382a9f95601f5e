package router

import (
	"github.com/gin-gonic/gin"

	"inkwire.app/newsroom/internal/http/handler"
)

// GenerateRouter mounts the generation and compliance endpoints
// directly on the versioned group; they span clients rather than
// belonging to one resource.
func GenerateRouter(v1 *gin.RouterGroup, h *handler.GenerateHandler) {
	v1.POST("/generate/variants", h.Variants)
	v1.POST("/generate/title", h.Title)
	v1.POST("/compliance/check", h.ComplianceCheck)
}
