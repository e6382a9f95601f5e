package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"inkwire.app/newsroom/common/id"
	"inkwire.app/newsroom/internal/compliance"
	"inkwire.app/newsroom/internal/content"
	"inkwire.app/newsroom/internal/model"
	"inkwire.app/newsroom/internal/queue"
	"inkwire.app/newsroom/internal/store"
)

var (
	ErrContentNotFound = errors.New("content item not found")
	ErrVersionNotFound = errors.New("content version not found")
	ErrInvalidKind     = errors.New("invalid content kind")
	ErrInvalidDocument = errors.New("document has no usable content")
	ErrNoVersion       = errors.New("content has no saved version")
)

// recheckDebounceTTL is the window that collapses rapid successive
// saves into one compliance recheck task.
const recheckDebounceTTL = 5 * time.Second

type CreateItemParams struct {
	ProjectID int64
	Title     string
	Kind      model.ContentKind
	CreatedBy *int64
}

type SaveVersionParams struct {
	ContentItemID int64
	// Document is the raw structured-content JSON as authored; keys are
	// normalized during decoding.
	Document  json.RawMessage
	CreatedBy *int64
}

type ReviewParams struct {
	ContentItemID int64
	Approve       bool
	ActorID       *int64
}

type ContentService interface {
	CreateItem(ctx context.Context, params CreateItemParams) (*model.ContentItem, error)
	Get(ctx context.Context, id int64) (*model.ContentItem, error)
	// GetWithVersion loads the item together with its current version;
	// the version is nil when nothing has been saved yet.
	GetWithVersion(ctx context.Context, id int64) (*model.ContentItem, *model.ContentVersion, error)
	ListByProject(ctx context.Context, projectID int64) ([]model.ContentItem, error)
	// SaveVersion normalizes, renders, and scores the document, then
	// persists the new version and the item's denormalized pointers in
	// one transaction. A debounced compliance recheck task follows.
	SaveVersion(ctx context.Context, params SaveVersionParams) (*model.ContentVersion, error)
	ListVersions(ctx context.Context, itemID int64) ([]model.ContentVersion, error)
	GetVersion(ctx context.Context, versionID int64) (*model.ContentVersion, error)
	Submit(ctx context.Context, itemID int64, actorID *int64) (*model.ContentItem, error)
	Review(ctx context.Context, params ReviewParams) (*model.ContentItem, error)
}

type contentService struct {
	stores    StoreProvider
	txRunner  TxRunner
	producer  queue.Producer
	debouncer queue.Debouncer
	logger    *slog.Logger
}

func NewContentService(stores StoreProvider, txRunner TxRunner, producer queue.Producer, debouncer queue.Debouncer, logger *slog.Logger) ContentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &contentService{
		stores:    stores,
		txRunner:  txRunner,
		producer:  producer,
		debouncer: debouncer,
		logger:    logger,
	}
}

func (s *contentService) CreateItem(ctx context.Context, params CreateItemParams) (*model.ContentItem, error) {
	if !params.Kind.IsValid() {
		return nil, ErrInvalidKind
	}

	project, err := s.stores.Projects().GetByID(ctx, params.ProjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}

	item := &model.ContentItem{
		ID:             id.New(),
		OrganizationID: project.OrganizationID,
		ProjectID:      project.ID,
		Title:          params.Title,
		Kind:           params.Kind,
		Status:         model.ContentStatusDraft,
		CreatedBy:      params.CreatedBy,
	}

	if err := s.stores.ContentItems().Create(ctx, item); err != nil {
		return nil, fmt.Errorf("creating content item: %w", err)
	}

	s.logger.InfoContext(ctx, "content item created",
		"content_item_id", item.ID,
		"project_id", item.ProjectID,
		"kind", item.Kind,
	)
	return item, nil
}

func (s *contentService) Get(ctx context.Context, id int64) (*model.ContentItem, error) {
	item, err := s.stores.ContentItems().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("getting content item: %w", err)
	}
	return item, nil
}

func (s *contentService) GetWithVersion(ctx context.Context, id int64) (*model.ContentItem, *model.ContentVersion, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if item.CurrentVersionID == nil {
		return item, nil, nil
	}

	version, err := s.stores.ContentVersions().GetByID(ctx, *item.CurrentVersionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Pointer is stale; treat as unversioned rather than failing the read.
			return item, nil, nil
		}
		return nil, nil, fmt.Errorf("getting current version: %w", err)
	}
	return item, version, nil
}

func (s *contentService) ListByProject(ctx context.Context, projectID int64) ([]model.ContentItem, error) {
	return s.stores.ContentItems().ListByProject(ctx, projectID)
}

func (s *contentService) SaveVersion(ctx context.Context, params SaveVersionParams) (*model.ContentVersion, error) {
	doc, err := content.Decode(params.Document)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, err)
	}

	html := content.ToHTML(doc)

	var version *model.ContentVersion
	if err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		item, err := sp.ContentItems().GetForUpdate(ctx, params.ContentItemID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrContentNotFound
			}
			return fmt.Errorf("locking content item: %w", err)
		}

		checker, err := s.checkerForItem(ctx, sp, item)
		if err != nil {
			return err
		}

		result := checker.CheckDocument(doc)
		score := int32(result.Score)

		version = &model.ContentVersion{
			ID:              id.New(),
			ContentItemID:   item.ID,
			Document:        doc,
			HTML:            html,
			ComplianceScore: &score,
			CreatedBy:       params.CreatedBy,
		}

		if err := sp.ContentVersions().Create(ctx, version); err != nil {
			return fmt.Errorf("creating content version: %w", err)
		}

		if err := sp.ContentItems().SetCurrentVersion(ctx, item.ID, version.ID, &score); err != nil {
			return fmt.Errorf("updating current version: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "content version saved",
		"content_item_id", version.ContentItemID,
		"version_id", version.ID,
		"version_number", version.VersionNumber,
		"compliance_score", *version.ComplianceScore,
	)

	s.enqueueRecheck(ctx, params.ContentItemID)

	return version, nil
}

func (s *contentService) ListVersions(ctx context.Context, itemID int64) ([]model.ContentVersion, error) {
	if _, err := s.Get(ctx, itemID); err != nil {
		return nil, err
	}
	return s.stores.ContentVersions().ListByItem(ctx, itemID)
}

func (s *contentService) GetVersion(ctx context.Context, versionID int64) (*model.ContentVersion, error) {
	version, err := s.stores.ContentVersions().GetByID(ctx, versionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, fmt.Errorf("getting content version: %w", err)
	}
	return version, nil
}

func (s *contentService) Submit(ctx context.Context, itemID int64, actorID *int64) (*model.ContentItem, error) {
	item, err := s.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.CurrentVersionID == nil {
		return nil, ErrNoVersion
	}
	if !item.Status.CanTransitionTo(model.ContentStatusInReview) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, item.Status, model.ContentStatusInReview)
	}

	updated, err := s.stores.ContentItems().UpdateStatus(ctx, itemID, item.Status, model.ContentStatusInReview)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, item.Status, model.ContentStatusInReview)
		}
		return nil, fmt.Errorf("updating content status: %w", err)
	}

	s.logger.InfoContext(ctx, "content submitted for review",
		"content_item_id", itemID,
		"from", item.Status,
	)

	s.notifyEvent(ctx, updated, model.NotificationKindContentSubmitted, actorID)
	return updated, nil
}

func (s *contentService) Review(ctx context.Context, params ReviewParams) (*model.ContentItem, error) {
	item, err := s.Get(ctx, params.ContentItemID)
	if err != nil {
		return nil, err
	}

	to := model.ContentStatusNeedsChanges
	if params.Approve {
		to = model.ContentStatusApproved
	}

	if !item.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, item.Status, to)
	}

	updated, err := s.stores.ContentItems().UpdateStatus(ctx, params.ContentItemID, item.Status, to)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, item.Status, to)
		}
		return nil, fmt.Errorf("updating content status: %w", err)
	}

	s.logger.InfoContext(ctx, "content reviewed",
		"content_item_id", params.ContentItemID,
		"decision", to,
	)

	s.notifyEvent(ctx, updated, model.NotificationKindContentDecided, params.ActorID)
	return updated, nil
}

// checkerForItem compiles the effective rule set for the item's client.
func (s *contentService) checkerForItem(ctx context.Context, sp StoreProvider, item *model.ContentItem) (*compliance.Checker, error) {
	project, err := sp.Projects().GetByID(ctx, item.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}

	client, err := sp.Clients().GetByID(ctx, project.ClientID)
	if err != nil {
		return nil, fmt.Errorf("getting client: %w", err)
	}

	checker, err := compliance.NewChecker(compliance.DefaultRuleSet().Merge(clientRuleSet(client)))
	if err != nil {
		return nil, fmt.Errorf("compiling compliance rules: %w", err)
	}
	return checker, nil
}

// enqueueRecheck schedules a debounced compliance recheck. The recheck
// re-scores the latest version against the rules in effect when the
// worker runs, catching rule edits that land mid-save. Best-effort.
func (s *contentService) enqueueRecheck(ctx context.Context, itemID int64) {
	won, err := s.debouncer.TryAcquire(ctx, queue.RecheckDebounceKey(itemID), recheckDebounceTTL)
	if err != nil {
		s.logger.WarnContext(ctx, "recheck debounce unavailable",
			"error", err,
			"content_item_id", itemID,
		)
		return
	}
	if !won {
		s.logger.DebugContext(ctx, "recheck already pending", "content_item_id", itemID)
		return
	}

	if err := s.producer.Enqueue(ctx, queue.TaskMessage{
		TaskType:      queue.TaskTypeComplianceRecheck,
		ContentItemID: &itemID,
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to enqueue compliance recheck",
			"error", err,
			"content_item_id", itemID,
		)
	}
}

func (s *contentService) notifyEvent(ctx context.Context, item *model.ContentItem, kind model.NotificationKind, actorID *int64) {
	if err := s.producer.Enqueue(ctx, queue.TaskMessage{
		TaskType:       queue.TaskTypeNotifyEvent,
		EventKind:      string(kind),
		OrganizationID: &item.OrganizationID,
		ProjectID:      &item.ProjectID,
		ContentItemID:  &item.ID,
		ActorID:        actorID,
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to enqueue notify event",
			"error", err,
			"content_item_id", item.ID,
			"event_kind", kind,
		)
	}
}
