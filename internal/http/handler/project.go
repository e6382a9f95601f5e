package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"inkwire.app/newsroom/internal/model"
	"inkwire.app/newsroom/internal/service"
)

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type createProjectRequest struct {
	OrganizationID int64      `json:"organization_id" binding:"required"`
	ClientID       int64      `json:"client_id" binding:"required"`
	OwnerUserID    *int64     `json:"owner_user_id,omitempty"`
	Title          string     `json:"title" binding:"required"`
	Brief          string     `json:"brief,omitempty"`
	DueAt          *time.Time `json:"due_at,omitempty"`
}

func (h *ProjectHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: organization_id, client_id and title are required"})
		return
	}

	project, err := h.projectService.Create(ctx, service.CreateProjectParams{
		OrganizationID: req.OrganizationID,
		ClientID:       req.ClientID,
		OwnerUserID:    req.OwnerUserID,
		Title:          req.Title,
		Brief:          req.Brief,
		DueAt:          req.DueAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrganizationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
		case errors.Is(err, service.ErrClientNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "owner not found"})
		default:
			slog.ErrorContext(ctx, "failed to create project", "error", err, "title", req.Title)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		}
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to get project", "error", err, "project_id", projectID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get project"})
		return
	}

	c.JSON(http.StatusOK, project)
}

type updateProjectRequest struct {
	OwnerUserID *int64     `json:"owner_user_id,omitempty"`
	Title       string     `json:"title" binding:"required"`
	Brief       string     `json:"brief,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
}

func (h *ProjectHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: title is required"})
		return
	}

	project, err := h.projectService.Update(ctx, projectID, service.UpdateProjectParams{
		OwnerUserID: req.OwnerUserID,
		Title:       req.Title,
		Brief:       req.Brief,
		DueAt:       req.DueAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "owner not found"})
		default:
			slog.ErrorContext(ctx, "failed to update project", "error", err, "project_id", projectID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update project"})
		}
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.Delete(ctx, projectID); err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to delete project", "error", err, "project_id", projectID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete project"})
		return
	}

	c.Status(http.StatusNoContent)
}

type transitionProjectRequest struct {
	Status  string `json:"status" binding:"required"`
	ActorID *int64 `json:"actor_id,omitempty"`
}

// Transition answers POST /projects/:id/status. Skipping steps in the
// workflow chain is rejected with a conflict.
func (h *ProjectHandler) Transition(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req transitionProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: status is required"})
		return
	}

	project, err := h.projectService.Transition(ctx, projectID, model.ProjectStatus(req.Status), req.ActorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		case errors.Is(err, service.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "invalid status transition"})
		default:
			slog.ErrorContext(ctx, "failed to transition project", "error", err, "project_id", projectID, "status", req.Status)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to transition project"})
		}
		return
	}

	c.JSON(http.StatusOK, project)
}

// ListByOrganization answers GET /organizations/:id/projects.
func (h *ProjectHandler) ListByOrganization(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}

	projects, err := h.projectService.ListByOrganization(ctx, orgID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list projects", "error", err, "organization_id", orgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// ListByClient answers GET /clients/:id/projects.
func (h *ProjectHandler) ListByClient(c *gin.Context) {
	ctx := c.Request.Context()

	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}

	projects, err := h.projectService.ListByClient(ctx, clientID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list projects", "error", err, "client_id", clientID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}
