package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"inkwire.app/newsroom/internal/compliance"
	"inkwire.app/newsroom/internal/model"
	"inkwire.app/newsroom/internal/queue"
	"inkwire.app/newsroom/internal/service"
	"inkwire.app/newsroom/internal/store"
)

// TaskProcessor dispatches queue messages to the task handlers. Every
// handler tolerates replays: a deleted item, a vanished client, or an
// already-applied score all resolve to a clean skip rather than a retry.
type TaskProcessor struct {
	stores        service.StoreProvider
	txRunner      service.TxRunner
	clients       service.ClientService
	notifications service.NotificationService
}

func NewTaskProcessor(stores service.StoreProvider, txRunner service.TxRunner, clients service.ClientService, notifications service.NotificationService) *TaskProcessor {
	return &TaskProcessor{
		stores:        stores,
		txRunner:      txRunner,
		clients:       clients,
		notifications: notifications,
	}
}

func (p *TaskProcessor) Process(ctx context.Context, msg queue.Message) error {
	switch msg.TaskType {
	case queue.TaskTypeComplianceRecheck:
		return p.recheckCompliance(ctx, msg)
	case queue.TaskTypeNotifyEvent:
		return p.notifyEvent(ctx, msg)
	default:
		// ParseMessage rejects unknown types before they get here.
		return fmt.Errorf("unknown task type %q", msg.TaskType)
	}
}

// recheckCompliance rescores the latest version of a content item under
// the client's current rule set and refreshes the item's denormalized
// score. Runs debounced: a burst of saves collapses into one task.
func (p *TaskProcessor) recheckCompliance(ctx context.Context, msg queue.Message) error {
	if msg.ContentItemID == nil {
		return fmt.Errorf("recheck task missing content_item_id")
	}
	itemID := *msg.ContentItemID

	item, err := p.stores.ContentItems().GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.InfoContext(ctx, "content item deleted before recheck, skipping")
			return nil
		}
		return fmt.Errorf("getting content item: %w", err)
	}

	project, err := p.stores.Projects().GetByID(ctx, item.ProjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.InfoContext(ctx, "project deleted before recheck, skipping")
			return nil
		}
		return fmt.Errorf("getting project: %w", err)
	}

	rules, err := p.clients.ComplianceRules(ctx, project.ClientID)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			slog.InfoContext(ctx, "client deleted before recheck, skipping")
			return nil
		}
		return fmt.Errorf("loading compliance rules: %w", err)
	}

	checker, err := compliance.NewChecker(rules)
	if err != nil {
		return fmt.Errorf("compiling compliance rules: %w", err)
	}

	var result compliance.Result
	err = p.txRunner.WithTx(ctx, func(tx service.StoreProvider) error {
		version, err := tx.ContentVersions().GetLatest(ctx, itemID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				slog.InfoContext(ctx, "content item has no versions, skipping recheck")
				return nil
			}
			return fmt.Errorf("getting latest version: %w", err)
		}

		result = checker.CheckDocument(version.Document)
		score := int32(result.Score)

		if err := tx.ContentVersions().UpdateScore(ctx, version.ID, score); err != nil {
			return fmt.Errorf("updating version score: %w", err)
		}
		if err := tx.ContentItems().SetCurrentVersion(ctx, itemID, version.ID, &score); err != nil {
			return fmt.Errorf("updating item score: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "compliance rescored",
		"score", result.Score,
		"matches", len(result.Matches),
		"disclaimer_found", result.DisclaimerFound)
	return nil
}

// notifyEvent fans a workflow event out to its audience. Malformed
// events are dropped rather than retried: the payload will not improve
// with another attempt.
func (p *TaskProcessor) notifyEvent(ctx context.Context, msg queue.Message) error {
	if msg.OrganizationID == nil {
		return fmt.Errorf("notify task missing organization_id")
	}

	count, err := p.notifications.FanoutEvent(ctx, service.FanoutParams{
		Kind:           model.NotificationKind(msg.EventKind),
		OrganizationID: *msg.OrganizationID,
		ProjectID:      msg.ProjectID,
		ContentItemID:  msg.ContentItemID,
		ActorID:        msg.ActorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidNotificationKind):
			slog.WarnContext(ctx, "dropping event with unknown kind", "event_kind", msg.EventKind)
			return nil
		case errors.Is(err, service.ErrContentNotFound), errors.Is(err, service.ErrProjectNotFound):
			slog.InfoContext(ctx, "event subject deleted before fanout, skipping")
			return nil
		default:
			return fmt.Errorf("fanning out event: %w", err)
		}
	}

	slog.InfoContext(ctx, "event fanned out",
		"event_kind", msg.EventKind,
		"notifications", count)
	return nil
}
