package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"inkwire.app/newsroom/common/id"
	"inkwire.app/newsroom/internal/model"
	"inkwire.app/newsroom/internal/queue"
	"inkwire.app/newsroom/internal/store"
)

var (
	ErrSuggestionNotFound = errors.New("suggestion not found")
	ErrNotReviewer        = errors.New("only client reviewers can create suggestions")
	ErrInvalidResolution  = errors.New("suggestions resolve to accepted or rejected")
)

type CreateSuggestionParams struct {
	ContentItemID int64
	AuthorUserID  int64
	Excerpt       string
	Replacement   string
	Note          *string
}

type SuggestionService interface {
	Create(ctx context.Context, params CreateSuggestionParams) (*model.ClientSuggestion, error)
	List(ctx context.Context, itemID int64, status *model.SuggestionStatus) ([]model.ClientSuggestion, error)
	Resolve(ctx context.Context, suggestionID int64, status model.SuggestionStatus, resolvedBy int64) (*model.ClientSuggestion, error)
}

type suggestionService struct {
	suggestionStore store.SuggestionStore
	itemStore       store.ContentItemStore
	userStore       store.UserStore
	producer        queue.Producer
}

func NewSuggestionService(suggestionStore store.SuggestionStore, itemStore store.ContentItemStore, userStore store.UserStore, producer queue.Producer) SuggestionService {
	return &suggestionService{
		suggestionStore: suggestionStore,
		itemStore:       itemStore,
		userStore:       userStore,
		producer:        producer,
	}
}

func (s *suggestionService) Create(ctx context.Context, params CreateSuggestionParams) (*model.ClientSuggestion, error) {
	item, err := s.itemStore.GetByID(ctx, params.ContentItemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("getting content item: %w", err)
	}

	author, err := s.userStore.GetByID(ctx, params.AuthorUserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting author: %w", err)
	}
	if author.Role != model.RoleClientReviewer {
		return nil, ErrNotReviewer
	}

	suggestion := &model.ClientSuggestion{
		ID:            id.New(),
		ContentItemID: params.ContentItemID,
		AuthorUserID:  params.AuthorUserID,
		Excerpt:       params.Excerpt,
		Replacement:   params.Replacement,
		Note:          params.Note,
		Status:        model.SuggestionStatusPending,
	}

	if err := s.suggestionStore.Create(ctx, suggestion); err != nil {
		return nil, fmt.Errorf("creating suggestion: %w", err)
	}

	slog.InfoContext(ctx, "suggestion created",
		"suggestion_id", suggestion.ID,
		"content_item_id", params.ContentItemID,
	)

	s.notify(ctx, item, model.NotificationKindSuggestionAdded, params.AuthorUserID)
	return suggestion, nil
}

func (s *suggestionService) List(ctx context.Context, itemID int64, status *model.SuggestionStatus) ([]model.ClientSuggestion, error) {
	return s.suggestionStore.ListByItem(ctx, itemID, status)
}

func (s *suggestionService) Resolve(ctx context.Context, suggestionID int64, status model.SuggestionStatus, resolvedBy int64) (*model.ClientSuggestion, error) {
	if status != model.SuggestionStatusAccepted && status != model.SuggestionStatusRejected {
		return nil, ErrInvalidResolution
	}

	suggestion, err := s.suggestionStore.GetByID(ctx, suggestionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSuggestionNotFound
		}
		return nil, fmt.Errorf("getting suggestion: %w", err)
	}
	if suggestion.Status != model.SuggestionStatusPending {
		return nil, ErrAlreadyResolved
	}

	resolved, err := s.suggestionStore.Resolve(ctx, suggestionID, status, resolvedBy)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Resolved between the read and the update.
			return nil, ErrAlreadyResolved
		}
		return nil, fmt.Errorf("resolving suggestion: %w", err)
	}

	slog.InfoContext(ctx, "suggestion resolved",
		"suggestion_id", suggestionID,
		"status", status,
		"resolved_by", resolvedBy,
	)

	if item, err := s.itemStore.GetByID(ctx, resolved.ContentItemID); err == nil {
		s.notify(ctx, item, model.NotificationKindSuggestionResolved, resolvedBy)
	}

	return resolved, nil
}

func (s *suggestionService) notify(ctx context.Context, item *model.ContentItem, kind model.NotificationKind, actorID int64) {
	if err := s.producer.Enqueue(ctx, queue.TaskMessage{
		TaskType:       queue.TaskTypeNotifyEvent,
		EventKind:      string(kind),
		OrganizationID: &item.OrganizationID,
		ProjectID:      &item.ProjectID,
		ContentItemID:  &item.ID,
		ActorID:        &actorID,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to enqueue notify event",
			"error", err,
			"content_item_id", item.ID,
			"event_kind", kind,
		)
	}
}
