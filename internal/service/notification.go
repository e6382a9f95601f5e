package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"inkwire.app/newsroom/common/id"
	"inkwire.app/newsroom/internal/mailer"
	"inkwire.app/newsroom/internal/model"
	"inkwire.app/newsroom/internal/store"
)

var (
	ErrNotificationNotFound    = errors.New("notification not found")
	ErrInvalidNotificationKind = errors.New("invalid notification kind")
)

type FanoutParams struct {
	Kind           model.NotificationKind
	OrganizationID int64
	ProjectID      *int64
	ContentItemID  *int64
	ActorID        *int64
}

type NotificationService interface {
	Create(ctx context.Context, notification *model.Notification) error
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int32) ([]model.Notification, error)
	// MarkRead is idempotent: marking an already-read notification
	// returns it unchanged.
	MarkRead(ctx context.Context, notificationID int64) (*model.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) error
	CountUnread(ctx context.Context, userID int64) (int64, error)
	// FanoutEvent resolves the audience for a workflow event, writes one
	// notification per recipient, and emails each of them. Returns the
	// number of notifications created.
	FanoutEvent(ctx context.Context, params FanoutParams) (int, error)
}

type notificationService struct {
	stores          StoreProvider
	txRunner        TxRunner
	mail            *mailer.Mailer
	dashboardURL    string
	clientPortalURL string
	logger          *slog.Logger
}

func NewNotificationService(stores StoreProvider, txRunner TxRunner, mail *mailer.Mailer, dashboardURL, clientPortalURL string, logger *slog.Logger) NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &notificationService{
		stores:          stores,
		txRunner:        txRunner,
		mail:            mail,
		dashboardURL:    dashboardURL,
		clientPortalURL: clientPortalURL,
		logger:          logger,
	}
}

func (s *notificationService) Create(ctx context.Context, notification *model.Notification) error {
	if !notification.Kind.IsValid() {
		return ErrInvalidNotificationKind
	}
	if notification.ID == 0 {
		notification.ID = id.New()
	}
	if err := s.stores.Notifications().Create(ctx, notification); err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}
	return nil
}

func (s *notificationService) ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int32) ([]model.Notification, error) {
	return s.stores.Notifications().ListByUser(ctx, userID, unreadOnly, limit)
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID int64) (*model.Notification, error) {
	marked, err := s.stores.Notifications().MarkRead(ctx, notificationID)
	if err == nil {
		return marked, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("marking notification read: %w", err)
	}

	// Either missing or already read; a second read settles which.
	notification, err := s.stores.Notifications().GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("getting notification: %w", err)
	}
	return notification, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int64) error {
	if err := s.stores.Notifications().MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("marking notifications read: %w", err)
	}
	return nil
}

func (s *notificationService) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return s.stores.Notifications().CountUnread(ctx, userID)
}

func (s *notificationService) FanoutEvent(ctx context.Context, params FanoutParams) (int, error) {
	if !params.Kind.IsValid() {
		return 0, ErrInvalidNotificationKind
	}

	subject, err := s.loadSubject(ctx, params)
	if err != nil {
		return 0, err
	}

	recipients, err := s.resolveRecipients(ctx, params, subject)
	if err != nil {
		return 0, err
	}
	if len(recipients) == 0 {
		s.logger.InfoContext(ctx, "notify event has no recipients",
			"event_kind", params.Kind,
			"organization_id", params.OrganizationID,
		)
		return 0, nil
	}

	title, body := composeNotification(params.Kind, subject)

	notifications := make([]*model.Notification, 0, len(recipients))
	for _, recipient := range recipients {
		notifications = append(notifications, &model.Notification{
			ID:            id.New(),
			UserID:        recipient.ID,
			Kind:          params.Kind,
			Title:         title,
			Body:          body,
			ProjectID:     subject.projectID(),
			ContentItemID: params.ContentItemID,
		})
	}

	if err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		for _, notification := range notifications {
			if err := sp.Notifications().Create(ctx, notification); err != nil {
				return fmt.Errorf("creating notification: %w", err)
			}
		}
		return nil
	}); err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "notifications fanned out",
		"event_kind", params.Kind,
		"recipients", len(notifications),
	)

	// Email delivery is per-recipient best-effort; emailed_at records
	// which sends actually succeeded.
	for i, notification := range notifications {
		recipient := recipients[i]
		url := s.actionURL(recipient, notification)
		if err := s.mail.SendNotification(ctx, recipient.Email, recipient.Name, params.Kind, title, body, url); err != nil {
			s.logger.WarnContext(ctx, "notification email failed",
				"error", err,
				"notification_id", notification.ID,
				"user_id", recipient.ID,
			)
			continue
		}
		if err := s.stores.Notifications().MarkEmailed(ctx, notification.ID); err != nil {
			s.logger.WarnContext(ctx, "failed to stamp emailed_at",
				"error", err,
				"notification_id", notification.ID,
			)
		}
	}

	return len(notifications), nil
}

// eventSubject is the project/item pair an event is about. Item may be
// nil for project-level events.
type eventSubject struct {
	project *model.Project
	item    *model.ContentItem
}

func (s eventSubject) projectID() *int64 {
	if s.project == nil {
		return nil
	}
	return &s.project.ID
}

// title returns the human name of whatever the event is about.
func (s eventSubject) title() string {
	if s.item != nil {
		return s.item.Title
	}
	if s.project != nil {
		return s.project.Title
	}
	return ""
}

func (s *notificationService) loadSubject(ctx context.Context, params FanoutParams) (eventSubject, error) {
	var subject eventSubject

	if params.ContentItemID != nil {
		item, err := s.stores.ContentItems().GetByID(ctx, *params.ContentItemID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return subject, ErrContentNotFound
			}
			return subject, fmt.Errorf("getting content item: %w", err)
		}
		subject.item = item
	}

	projectID := params.ProjectID
	if projectID == nil && subject.item != nil {
		projectID = &subject.item.ProjectID
	}
	if projectID == nil {
		return subject, fmt.Errorf("notify event has no project or content item")
	}

	project, err := s.stores.Projects().GetByID(ctx, *projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return subject, ErrProjectNotFound
		}
		return subject, fmt.Errorf("getting project: %w", err)
	}
	subject.project = project

	return subject, nil
}

// resolveRecipients picks the audience on the other side of the fence
// from the actor: client-originated events go to the agency (project
// owner plus org admins), agency-originated events go to the client's
// reviewers. The actor never notifies themselves.
func (s *notificationService) resolveRecipients(ctx context.Context, params FanoutParams, subject eventSubject) ([]model.User, error) {
	clientOriginated := false
	if params.ActorID != nil {
		actor, err := s.stores.Users().GetByID(ctx, *params.ActorID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("getting actor: %w", err)
		}
		if err == nil {
			clientOriginated = actor.Role == model.RoleClientReviewer
		}
	}

	var candidates []model.User
	if clientOriginated {
		if subject.project.OwnerUserID != nil {
			owner, err := s.stores.Users().GetByID(ctx, *subject.project.OwnerUserID)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return nil, fmt.Errorf("getting project owner: %w", err)
			}
			if err == nil {
				candidates = append(candidates, *owner)
			}
		}
		admins, err := s.stores.Users().ListByRole(ctx, params.OrganizationID, model.RoleAdmin)
		if err != nil {
			return nil, fmt.Errorf("listing admins: %w", err)
		}
		candidates = append(candidates, admins...)
	} else {
		reviewers, err := s.stores.Users().ListByClient(ctx, subject.project.ClientID)
		if err != nil {
			return nil, fmt.Errorf("listing reviewers: %w", err)
		}
		for _, reviewer := range reviewers {
			if reviewer.Role == model.RoleClientReviewer {
				candidates = append(candidates, reviewer)
			}
		}
	}

	seen := make(map[int64]bool, len(candidates))
	recipients := make([]model.User, 0, len(candidates))
	for _, candidate := range candidates {
		if seen[candidate.ID] {
			continue
		}
		if params.ActorID != nil && candidate.ID == *params.ActorID {
			continue
		}
		seen[candidate.ID] = true
		recipients = append(recipients, candidate)
	}
	return recipients, nil
}

func (s *notificationService) actionURL(recipient model.User, notification *model.Notification) string {
	base := s.dashboardURL
	if recipient.Role == model.RoleClientReviewer {
		base = s.clientPortalURL
	}
	if base == "" {
		return ""
	}
	if notification.ContentItemID != nil {
		return fmt.Sprintf("%s/content/%d", base, *notification.ContentItemID)
	}
	if notification.ProjectID != nil {
		return fmt.Sprintf("%s/projects/%d", base, *notification.ProjectID)
	}
	return base
}

// composeNotification yields the stored title/body pair; the title is
// the subject's display name so lists scan well, the body carries the
// event sentence.
func composeNotification(kind model.NotificationKind, subject eventSubject) (string, string) {
	title := subject.title()

	switch kind {
	case model.NotificationKindProjectStatusChanged:
		return title, fmt.Sprintf("The project moved to %s.", subject.project.Status)
	case model.NotificationKindContentSubmitted:
		return title, "A draft is ready for your review."
	case model.NotificationKindContentDecided:
		if subject.item != nil && subject.item.Status == model.ContentStatusApproved {
			return title, "The draft was approved."
		}
		return title, "The draft needs changes."
	case model.NotificationKindCommentAdded:
		return title, "A new comment was added."
	case model.NotificationKindSuggestionAdded:
		return title, "A reviewer suggested an edit."
	case model.NotificationKindSuggestionResolved:
		return title, "A suggested edit was resolved."
	default:
		return title, string(kind)
	}
}
