package router

import (
	"github.com/gin-gonic/gin"

	"inkwire.app/newsroom/internal/http/handler"
)

// OrganizationRouter also mounts the per-organization listing routes
// for users, clients, and projects.
func OrganizationRouter(rg *gin.RouterGroup, h *handler.OrganizationHandler, users *handler.UserHandler, clients *handler.ClientHandler, projects *handler.ProjectHandler) {
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)

	rg.GET("/:id/users", users.ListByOrganization)
	rg.GET("/:id/clients", clients.ListByOrganization)
	rg.GET("/:id/projects", projects.ListByOrganization)
}
