package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"inkwire.app/newsroom/common/id"
	"inkwire.app/newsroom/internal/model"
	"inkwire.app/newsroom/internal/store"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("a user with this email already exists in the organization")
	ErrInvalidRole      = errors.New("invalid role")
	ErrClientRequired   = errors.New("client reviewers must belong to a client")
	ErrClientNotAllowed = errors.New("agency users cannot belong to a client")
)

type CreateUserParams struct {
	OrganizationID int64
	ClientID       *int64
	Name           string
	Email          string
	Role           model.Role
}

type UpdateUserParams struct {
	ClientID *int64
	Name     string
	Email    string
	Role     model.Role
}

type UserService interface {
	Create(ctx context.Context, params CreateUserParams) (*model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	Update(ctx context.Context, id int64, params UpdateUserParams) (*model.User, error)
	Delete(ctx context.Context, id int64) error
	ListByOrganization(ctx context.Context, orgID int64) ([]model.User, error)
}

type userService struct {
	userStore   store.UserStore
	orgStore    store.OrganizationStore
	clientStore store.ClientStore
}

func NewUserService(userStore store.UserStore, orgStore store.OrganizationStore, clientStore store.ClientStore) UserService {
	return &userService{
		userStore:   userStore,
		orgStore:    orgStore,
		clientStore: clientStore,
	}
}

func (s *userService) Create(ctx context.Context, params CreateUserParams) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))

	if err := s.validateRole(ctx, params.OrganizationID, params.Role, params.ClientID); err != nil {
		return nil, err
	}

	if _, err := s.orgStore.GetByID(ctx, params.OrganizationID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("getting organization: %w", err)
	}

	if _, err := s.userStore.GetByEmail(ctx, params.OrganizationID, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking email availability: %w", err)
	}

	user := &model.User{
		ID:             id.New(),
		OrganizationID: params.OrganizationID,
		ClientID:       params.ClientID,
		Name:           params.Name,
		Email:          email,
		Role:           params.Role,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		slog.ErrorContext(ctx, "failed to create user",
			"error", err,
			"email", email,
		)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	slog.InfoContext(ctx, "user created", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, userID int64, params UpdateUserParams) (*model.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(params.Email))

	if err := s.validateRole(ctx, user.OrganizationID, params.Role, params.ClientID); err != nil {
		return nil, err
	}

	if email != user.Email {
		if existing, err := s.userStore.GetByEmail(ctx, user.OrganizationID, email); err == nil && existing.ID != userID {
			return nil, ErrEmailTaken
		} else if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("checking email availability: %w", err)
		}
	}

	user.ClientID = params.ClientID
	user.Name = params.Name
	user.Email = email
	user.Role = params.Role

	if err := s.userStore.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.userStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	slog.InfoContext(ctx, "user deleted", "user_id", id)
	return nil
}

func (s *userService) ListByOrganization(ctx context.Context, orgID int64) ([]model.User, error) {
	return s.userStore.ListByOrganization(ctx, orgID)
}

// validateRole enforces the role/client pairing: reviewers sit on the
// client side of the fence and must name their client, agency roles
// must not.
func (s *userService) validateRole(ctx context.Context, orgID int64, role model.Role, clientID *int64) error {
	if !role.IsValid() {
		return ErrInvalidRole
	}

	if role == model.RoleClientReviewer {
		if clientID == nil {
			return ErrClientRequired
		}
		client, err := s.clientStore.GetByID(ctx, *clientID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrClientNotFound
			}
			return fmt.Errorf("getting client: %w", err)
		}
		if client.OrganizationID != orgID {
			return ErrClientNotFound
		}
		return nil
	}

	if clientID != nil {
		return ErrClientNotAllowed
	}
	return nil
}
