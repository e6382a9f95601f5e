package router

import (
	"github.com/gin-gonic/gin"

	"inkwire.app/newsroom/internal/generate"
	"inkwire.app/newsroom/internal/http/handler"
	"inkwire.app/newsroom/internal/http/middleware"
	"inkwire.app/newsroom/internal/service"
)

type RouterConfig struct {
	// AdminAPIKey guards the API surface when set; an empty key leaves
	// the surface open for local development.
	AdminAPIKey string
}

func SetupRoutes(router *gin.Engine, services *service.Services, gen generate.Service, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	if cfg.AdminAPIKey != "" {
		v1.Use(middleware.RequireAdminAPIKey(cfg.AdminAPIKey))
	}

	orgHandler := handler.NewOrganizationHandler(services.Organizations())
	userHandler := handler.NewUserHandler(services.Users())
	clientHandler := handler.NewClientHandler(services.Clients())
	projectHandler := handler.NewProjectHandler(services.Projects())
	contentHandler := handler.NewContentHandler(services.Content())
	commentHandler := handler.NewCommentHandler(services.Comments())
	suggestionHandler := handler.NewSuggestionHandler(services.Suggestions())
	notificationHandler := handler.NewNotificationHandler(services.Notifications())
	fileHandler := handler.NewFileHandler(services.Files())
	generateHandler := handler.NewGenerateHandler(gen, services.Clients())

	{
		OrganizationRouter(v1.Group("/organizations"), orgHandler, userHandler, clientHandler, projectHandler)
		UserRouter(v1.Group("/users"), userHandler, notificationHandler)
		ClientRouter(v1.Group("/clients"), clientHandler, projectHandler)
		ProjectRouter(v1.Group("/projects"), projectHandler, contentHandler, fileHandler)
		ContentRouter(v1.Group("/content"), contentHandler, commentHandler, suggestionHandler, fileHandler)
		CommentRouter(v1.Group("/comments"), commentHandler)
		SuggestionRouter(v1.Group("/suggestions"), suggestionHandler)
		NotificationRouter(v1.Group("/notifications"), notificationHandler)
		FileRouter(v1.Group("/files"), fileHandler)
		GenerateRouter(v1, generateHandler)
	}
}
