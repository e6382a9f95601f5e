package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"inkwire.app/newsroom/core/db"
	"inkwire.app/newsroom/internal/model"
)

type suggestionStore struct {
	q db.Querier
}

func newSuggestionStore(q db.Querier) SuggestionStore {
	return &suggestionStore{q: q}
}

const suggestionColumns = `id, content_item_id, author_user_id, excerpt, replacement, note,
	status, resolved_by, resolved_at, created_at, updated_at`

func (s *suggestionStore) GetByID(ctx context.Context, id int64) (*model.ClientSuggestion, error) {
	const query = `SELECT ` + suggestionColumns + ` FROM client_suggestions WHERE id = $1`
	suggestion, err := scanSuggestion(s.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return suggestion, nil
}

func (s *suggestionStore) Create(ctx context.Context, suggestion *model.ClientSuggestion) error {
	const query = `
		INSERT INTO client_suggestions (id, content_item_id, author_user_id, excerpt, replacement, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + suggestionColumns
	created, err := scanSuggestion(s.q.QueryRow(ctx, query,
		suggestion.ID, suggestion.ContentItemID, suggestion.AuthorUserID,
		suggestion.Excerpt, suggestion.Replacement, suggestion.Note))
	if err != nil {
		return err
	}
	*suggestion = *created
	return nil
}

func (s *suggestionStore) Resolve(ctx context.Context, id int64, status model.SuggestionStatus, resolvedBy int64) (*model.ClientSuggestion, error) {
	const query = `
		UPDATE client_suggestions
		SET status = $2, resolved_by = $3, resolved_at = now(), updated_at = now()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + suggestionColumns
	suggestion, err := scanSuggestion(s.q.QueryRow(ctx, query, id, status, resolvedBy))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return suggestion, nil
}

func (s *suggestionStore) ListByItem(ctx context.Context, itemID int64, status *model.SuggestionStatus) ([]model.ClientSuggestion, error) {
	const query = `
		SELECT ` + suggestionColumns + `
		FROM client_suggestions
		WHERE content_item_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at`
	rows, err := s.q.Query(ctx, query, itemID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var suggestions []model.ClientSuggestion
	for rows.Next() {
		suggestion, err := scanSuggestion(rows)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, *suggestion)
	}
	return suggestions, rows.Err()
}

func scanSuggestion(row pgx.Row) (*model.ClientSuggestion, error) {
	var suggestion model.ClientSuggestion
	err := row.Scan(&suggestion.ID, &suggestion.ContentItemID, &suggestion.AuthorUserID,
		&suggestion.Excerpt, &suggestion.Replacement, &suggestion.Note,
		&suggestion.Status, &suggestion.ResolvedBy, &suggestion.ResolvedAt,
		&suggestion.CreatedAt, &suggestion.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &suggestion, nil
}
