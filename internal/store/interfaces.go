package store

import (
	"context"
	"errors"

	"inkwire.app/newsroom/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// OrganizationStore defines the contract for organization data access
type OrganizationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	GetBySlug(ctx context.Context, slug string) (*model.Organization, error)
	Create(ctx context.Context, org *model.Organization) error
	Update(ctx context.Context, org *model.Organization) error
	Delete(ctx context.Context, id int64) error // soft delete
}

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, orgID int64, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
	ListByOrganization(ctx context.Context, orgID int64) ([]model.User, error)
	ListByClient(ctx context.Context, clientID int64) ([]model.User, error)
	ListByRole(ctx context.Context, orgID int64, role model.Role) ([]model.User, error)
}

// ClientStore defines the contract for client data access
type ClientStore interface {
	GetByID(ctx context.Context, id int64) (*model.Client, error)
	GetBySlug(ctx context.Context, orgID int64, slug string) (*model.Client, error)
	Create(ctx context.Context, client *model.Client) error
	Update(ctx context.Context, client *model.Client) error
	Delete(ctx context.Context, id int64) error // soft delete
	ListByOrganization(ctx context.Context, orgID int64) ([]model.Client, error)
}

// ProjectStore defines the contract for project data access
type ProjectStore interface {
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, project *model.Project) error
	// UpdateStatus is a compare-and-swap: it fails with ErrNotFound
	// unless the row still has the expected current status.
	UpdateStatus(ctx context.Context, id int64, from, to model.ProjectStatus) (*model.Project, error)
	Delete(ctx context.Context, id int64) error // soft delete
	ListByOrganization(ctx context.Context, orgID int64) ([]model.Project, error)
	ListByClient(ctx context.Context, clientID int64) ([]model.Project, error)
}

// ContentItemStore defines the contract for content item data access
type ContentItemStore interface {
	GetByID(ctx context.Context, id int64) (*model.ContentItem, error)
	// GetForUpdate locks the row for the rest of the transaction; used
	// to serialize version-number allocation per item.
	GetForUpdate(ctx context.Context, id int64) (*model.ContentItem, error)
	Create(ctx context.Context, item *model.ContentItem) error
	Update(ctx context.Context, item *model.ContentItem) error
	UpdateStatus(ctx context.Context, id int64, from, to model.ContentStatus) (*model.ContentItem, error)
	// SetCurrentVersion updates the denormalized version pointer and
	// compliance score together.
	SetCurrentVersion(ctx context.Context, id, versionID int64, score *int32) error
	Delete(ctx context.Context, id int64) error // soft delete
	ListByProject(ctx context.Context, projectID int64) ([]model.ContentItem, error)
}

// ContentVersionStore defines the contract for content version data access
type ContentVersionStore interface {
	GetByID(ctx context.Context, id int64) (*model.ContentVersion, error)
	GetLatest(ctx context.Context, itemID int64) (*model.ContentVersion, error)
	// Create allocates the next sequential version number for the item.
	// Callers must hold the item row lock (GetForUpdate) to keep the
	// numbers gapless under concurrency.
	Create(ctx context.Context, version *model.ContentVersion) error
	UpdateScore(ctx context.Context, id int64, score int32) error
	ListByItem(ctx context.Context, itemID int64) ([]model.ContentVersion, error)
}

// CommentStore defines the contract for comment data access
type CommentStore interface {
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	Create(ctx context.Context, comment *model.Comment) error
	// Resolve stamps the resolution onto an unresolved comment; it
	// fails with ErrNotFound when the comment is missing or already
	// resolved.
	Resolve(ctx context.Context, id, resolvedBy int64) (*model.Comment, error)
	ListByItem(ctx context.Context, itemID int64) ([]model.Comment, error)
}

// SuggestionStore defines the contract for client suggestion data access
type SuggestionStore interface {
	GetByID(ctx context.Context, id int64) (*model.ClientSuggestion, error)
	Create(ctx context.Context, suggestion *model.ClientSuggestion) error
	// Resolve moves a pending suggestion to accepted or rejected; it
	// fails with ErrNotFound when the suggestion is missing or no
	// longer pending.
	Resolve(ctx context.Context, id int64, status model.SuggestionStatus, resolvedBy int64) (*model.ClientSuggestion, error)
	ListByItem(ctx context.Context, itemID int64, status *model.SuggestionStatus) ([]model.ClientSuggestion, error)
}

// NotificationStore defines the contract for notification data access
type NotificationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Notification, error)
	Create(ctx context.Context, notification *model.Notification) error
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int32) ([]model.Notification, error)
	MarkRead(ctx context.Context, id int64) (*model.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) error
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkEmailed(ctx context.Context, id int64) error
}

// FileStore defines the contract for file metadata access
type FileStore interface {
	GetByID(ctx context.Context, id int64) (*model.File, error)
	Create(ctx context.Context, file *model.File) error
	Delete(ctx context.Context, id int64) error
	ListByProject(ctx context.Context, projectID int64) ([]model.File, error)
	ListByContentItem(ctx context.Context, itemID int64) ([]model.File, error)
}
