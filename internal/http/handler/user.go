package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwire.app/newsroom/internal/model"
	"inkwire.app/newsroom/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type createUserRequest struct {
	OrganizationID int64  `json:"organization_id" binding:"required"`
	ClientID       *int64 `json:"client_id,omitempty"`
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Role           string `json:"role" binding:"required"`
}

func (h *UserHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: organization_id, name, email, and role are required"})
		return
	}

	user, err := h.userService.Create(ctx, service.CreateUserParams{
		OrganizationID: req.OrganizationID,
		ClientID:       req.ClientID,
		Name:           req.Name,
		Email:          req.Email,
		Role:           model.Role(req.Role),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole),
			errors.Is(err, service.ErrClientRequired),
			errors.Is(err, service.ErrClientNotAllowed):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrOrganizationNotFound), errors.Is(err, service.ErrClientNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			slog.ErrorContext(ctx, "failed to create user", "error", err, "email", req.Email)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		}
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to get user", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

type updateUserRequest struct {
	ClientID *int64 `json:"client_id,omitempty"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required"`
}

func (h *UserHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: name, email, and role are required"})
		return
	}

	user, err := h.userService.Update(ctx, userID, service.UpdateUserParams{
		ClientID: req.ClientID,
		Name:     req.Name,
		Email:    req.Email,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole),
			errors.Is(err, service.ErrClientRequired),
			errors.Is(err, service.ErrClientNotAllowed):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrClientNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			slog.ErrorContext(ctx, "failed to update user", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(ctx, userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to delete user", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListByOrganization answers GET /organizations/:id/users.
func (h *UserHandler) ListByOrganization(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := pathID(c, "id")
	if !ok {
		return
	}

	users, err := h.userService.ListByOrganization(ctx, orgID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list users", "error", err, "organization_id", orgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}
