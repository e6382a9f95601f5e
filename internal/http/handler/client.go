package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwire.app/newsroom/internal/service"
)

type ClientHandler struct {
	clientService service.ClientService
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

type createClientRequest struct {
	OrganizationID     int64    `json:"organization_id" binding:"required"`
	Name               string   `json:"name" binding:"required"`
	Slug               *string  `json:"slug,omitempty"`
	ContactName        *string  `json:"contact_name,omitempty"`
	ContactEmail       *string  `json:"contact_email,omitempty"`
	BannedPhrases      []string `json:"banned_phrases,omitempty"`
	RequiredDisclaimer *string  `json:"required_disclaimer,omitempty"`
}

func (h *ClientHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: organization_id and name are required"})
		return
	}

	client, err := h.clientService.Create(ctx, service.CreateClientParams{
		OrganizationID:     req.OrganizationID,
		Name:               req.Name,
		Slug:               req.Slug,
		ContactName:        req.ContactName,
		ContactEmail:       req.ContactEmail,
		BannedPhrases:      req.BannedPhrases,
		RequiredDisclaimer: req.RequiredDisclaimer,
	})
	if err != nil {
		if errors.Is(err, service.ErrOrganizationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to create client", "error", err, "name", req.Name)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create client"})
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.Get(ctx, clientID)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to get client", "error", err, "client_id", clientID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get client"})
		return
	}

	c.JSON(http.StatusOK, client)
}

type updateClientRequest struct {
	Name               string   `json:"name" binding:"required"`
	ContactName        *string  `json:"contact_name,omitempty"`
	ContactEmail       *string  `json:"contact_email,omitempty"`
	BannedPhrases      []string `json:"banned_phrases,omitempty"`
	RequiredDisclaimer *string  `json:"required_disclaimer,omitempty"`
}

func (h *ClientHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req updateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: name is required"})
		return
	}

	client, err := h.clientService.Update(ctx, clientID, service.UpdateClientParams{
		Name:               req.Name,
		ContactName:        req.ContactName,
		ContactEmail:       req.ContactEmail,
		BannedPhrases:      req.BannedPhrases,
		RequiredDisclaimer: req.RequiredDisclaimer,
	})
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to update client", "error", err, "client_id", clientID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update client"})
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.clientService.Delete(ctx, clientID); err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to delete client", "error", err, "client_id", clientID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete client"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListByOrganization answers GET /organizations/:id/clients.
func (h *ClientHandler) ListByOrganization(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}

	clients, err := h.clientService.ListByOrganization(ctx, orgID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list clients", "error", err, "organization_id", orgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list clients"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clients": clients})
}
