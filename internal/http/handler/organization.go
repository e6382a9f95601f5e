package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"inkwire.app/newsroom/internal/service"
)

type OrganizationHandler struct {
	orgService service.OrganizationService
}

func NewOrganizationHandler(orgService service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

type createOrganizationRequest struct {
	Name string  `json:"name" binding:"required"`
	Slug *string `json:"slug,omitempty"`
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req createOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: name is required"})
		return
	}

	org, err := h.orgService.Create(ctx, req.Name, req.Slug)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create organization", "error", err, "name", req.Name)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create organization"})
		return
	}

	c.JSON(http.StatusCreated, org)
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}

	org, err := h.orgService.Get(ctx, orgID)
	if err != nil {
		if errors.Is(err, service.ErrOrganizationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to get organization", "error", err, "organization_id", orgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get organization"})
		return
	}

	c.JSON(http.StatusOK, org)
}

type updateOrganizationRequest struct {
	Name string  `json:"name" binding:"required"`
	Slug *string `json:"slug,omitempty"`
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req updateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: name is required"})
		return
	}

	org, err := h.orgService.Update(ctx, orgID, req.Name, req.Slug)
	if err != nil {
		if errors.Is(err, service.ErrOrganizationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to update organization", "error", err, "organization_id", orgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update organization"})
		return
	}

	c.JSON(http.StatusOK, org)
}

func (h *OrganizationHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.orgService.Delete(ctx, orgID); err != nil {
		if errors.Is(err, service.ErrOrganizationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to delete organization", "error", err, "organization_id", orgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete organization"})
		return
	}

	c.Status(http.StatusNoContent)
}

// pathID parses a numeric path parameter, answering 400 itself when the
// value is not a valid ID.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
