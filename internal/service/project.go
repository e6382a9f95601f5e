package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"inkwire.app/newsroom/common/id"
	"inkwire.app/newsroom/internal/model"
	"inkwire.app/newsroom/internal/queue"
	"inkwire.app/newsroom/internal/store"
)

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type CreateProjectParams struct {
	OrganizationID int64
	ClientID       int64
	OwnerUserID    *int64
	Title          string
	Brief          string
	DueAt          *time.Time
}

type UpdateProjectParams struct {
	OwnerUserID *int64
	Title       string
	Brief       string
	DueAt       *time.Time
}

type ProjectService interface {
	Create(ctx context.Context, params CreateProjectParams) (*model.Project, error)
	Get(ctx context.Context, id int64) (*model.Project, error)
	Update(ctx context.Context, id int64, params UpdateProjectParams) (*model.Project, error)
	Delete(ctx context.Context, id int64) error
	ListByOrganization(ctx context.Context, orgID int64) ([]model.Project, error)
	ListByClient(ctx context.Context, clientID int64) ([]model.Project, error)
	// Transition advances the project along the workflow chain. The
	// status row update is a compare-and-swap, so two concurrent
	// transitions cannot both win.
	Transition(ctx context.Context, projectID int64, to model.ProjectStatus, actorID *int64) (*model.Project, error)
}

type projectService struct {
	projectStore store.ProjectStore
	clientStore  store.ClientStore
	userStore    store.UserStore
	producer     queue.Producer
}

func NewProjectService(projectStore store.ProjectStore, clientStore store.ClientStore, userStore store.UserStore, producer queue.Producer) ProjectService {
	return &projectService{
		projectStore: projectStore,
		clientStore:  clientStore,
		userStore:    userStore,
		producer:     producer,
	}
}

func (s *projectService) Create(ctx context.Context, params CreateProjectParams) (*model.Project, error) {
	client, err := s.clientStore.GetByID(ctx, params.ClientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("getting client: %w", err)
	}
	if client.OrganizationID != params.OrganizationID {
		return nil, ErrClientNotFound
	}

	if params.OwnerUserID != nil {
		owner, err := s.userStore.GetByID(ctx, *params.OwnerUserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("getting owner: %w", err)
		}
		if owner.OrganizationID != params.OrganizationID {
			return nil, ErrUserNotFound
		}
	}

	project := &model.Project{
		ID:             id.New(),
		OrganizationID: params.OrganizationID,
		ClientID:       params.ClientID,
		OwnerUserID:    params.OwnerUserID,
		Title:          params.Title,
		Brief:          params.Brief,
		Status:         model.ProjectStatusRequested,
		DueAt:          params.DueAt,
	}

	if err := s.projectStore.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	slog.InfoContext(ctx, "project created",
		"project_id", project.ID,
		"client_id", project.ClientID,
		"organization_id", project.OrganizationID,
	)
	return project, nil
}

func (s *projectService) Get(ctx context.Context, id int64) (*model.Project, error) {
	project, err := s.projectStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, projectID int64, params UpdateProjectParams) (*model.Project, error) {
	project, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if params.OwnerUserID != nil {
		owner, err := s.userStore.GetByID(ctx, *params.OwnerUserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("getting owner: %w", err)
		}
		if owner.OrganizationID != project.OrganizationID {
			return nil, ErrUserNotFound
		}
	}

	project.OwnerUserID = params.OwnerUserID
	project.Title = params.Title
	project.Brief = params.Brief
	project.DueAt = params.DueAt

	if err := s.projectStore.Update(ctx, project); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}

	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.projectStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	slog.InfoContext(ctx, "project deleted", "project_id", id)
	return nil
}

func (s *projectService) ListByOrganization(ctx context.Context, orgID int64) ([]model.Project, error) {
	return s.projectStore.ListByOrganization(ctx, orgID)
}

func (s *projectService) ListByClient(ctx context.Context, clientID int64) ([]model.Project, error) {
	return s.projectStore.ListByClient(ctx, clientID)
}

func (s *projectService) Transition(ctx context.Context, projectID int64, to model.ProjectStatus, actorID *int64) (*model.Project, error) {
	project, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !to.IsValid() || !project.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, project.Status, to)
	}

	from := project.Status
	updated, err := s.projectStore.UpdateStatus(ctx, projectID, from, to)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Lost a race with another transition.
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
		}
		return nil, fmt.Errorf("updating project status: %w", err)
	}

	slog.InfoContext(ctx, "project status changed",
		"project_id", projectID,
		"from", from,
		"to", to,
	)

	// Notification fanout is best-effort: the transition has committed,
	// so a queue hiccup must not turn it into a client-visible failure.
	if err := s.producer.Enqueue(ctx, queue.TaskMessage{
		TaskType:       queue.TaskTypeNotifyEvent,
		EventKind:      string(model.NotificationKindProjectStatusChanged),
		OrganizationID: &updated.OrganizationID,
		ProjectID:      &updated.ID,
		ActorID:        actorID,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to enqueue notify event",
			"error", err,
			"project_id", projectID,
			"event_kind", model.NotificationKindProjectStatusChanged,
		)
	}

	return updated, nil
}
