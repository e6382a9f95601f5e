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
	ErrCommentNotFound = errors.New("comment not found")
	ErrAlreadyResolved = errors.New("already resolved")
)

type CommentService interface {
	Create(ctx context.Context, itemID, authorID int64, body string) (*model.Comment, error)
	List(ctx context.Context, itemID int64) ([]model.Comment, error)
	Resolve(ctx context.Context, commentID, resolvedBy int64) (*model.Comment, error)
}

type commentService struct {
	commentStore store.CommentStore
	itemStore    store.ContentItemStore
	userStore    store.UserStore
	producer     queue.Producer
}

func NewCommentService(commentStore store.CommentStore, itemStore store.ContentItemStore, userStore store.UserStore, producer queue.Producer) CommentService {
	return &commentService{
		commentStore: commentStore,
		itemStore:    itemStore,
		userStore:    userStore,
		producer:     producer,
	}
}

func (s *commentService) Create(ctx context.Context, itemID, authorID int64, body string) (*model.Comment, error) {
	item, err := s.itemStore.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("getting content item: %w", err)
	}

	if _, err := s.userStore.GetByID(ctx, authorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting author: %w", err)
	}

	comment := &model.Comment{
		ID:            id.New(),
		ContentItemID: itemID,
		AuthorUserID:  authorID,
		Body:          body,
	}

	if err := s.commentStore.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	slog.InfoContext(ctx, "comment created",
		"comment_id", comment.ID,
		"content_item_id", itemID,
	)

	if err := s.producer.Enqueue(ctx, queue.TaskMessage{
		TaskType:       queue.TaskTypeNotifyEvent,
		EventKind:      string(model.NotificationKindCommentAdded),
		OrganizationID: &item.OrganizationID,
		ProjectID:      &item.ProjectID,
		ContentItemID:  &item.ID,
		ActorID:        &authorID,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to enqueue notify event",
			"error", err,
			"comment_id", comment.ID,
		)
	}

	return comment, nil
}

func (s *commentService) List(ctx context.Context, itemID int64) ([]model.Comment, error) {
	return s.commentStore.ListByItem(ctx, itemID)
}

func (s *commentService) Resolve(ctx context.Context, commentID, resolvedBy int64) (*model.Comment, error) {
	comment, err := s.commentStore.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("getting comment: %w", err)
	}
	if comment.IsResolved() {
		return nil, ErrAlreadyResolved
	}

	resolved, err := s.commentStore.Resolve(ctx, commentID, resolvedBy)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Resolved between the read and the update.
			return nil, ErrAlreadyResolved
		}
		return nil, fmt.Errorf("resolving comment: %w", err)
	}

	slog.InfoContext(ctx, "comment resolved",
		"comment_id", commentID,
		"resolved_by", resolvedBy,
	)
	return resolved, nil
}
