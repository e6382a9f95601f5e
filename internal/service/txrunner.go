package service

import (
	"context"

	"inkwire.app/newsroom/core/db"
	"inkwire.app/newsroom/internal/store"
)

// StoreProvider exposes only the stores needed by a transactional operation.
type StoreProvider interface {
	Organizations() store.OrganizationStore
	Users() store.UserStore
	Clients() store.ClientStore
	Projects() store.ProjectStore
	ContentItems() store.ContentItemStore
	ContentVersions() store.ContentVersionStore
	Comments() store.CommentStore
	Suggestions() store.SuggestionStore
	Notifications() store.NotificationStore
	Files() store.FileStore
}

// TxRunner runs functions within a transaction and provides stores bound to that transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

// NewTxRunner builds a TxRunner backed by the core DB.
func NewTxRunner(db *db.DB) TxRunner {
	return &dbTxRunner{db: db}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(q db.Querier) error {
		stores := store.NewStores(q)
		return fn(stores)
	})
}
