package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"inkwire.app/newsroom/core/db"
	"inkwire.app/newsroom/internal/model"
)

type contentItemStore struct {
	q db.Querier
}

func newContentItemStore(q db.Querier) ContentItemStore {
	return &contentItemStore{q: q}
}

const contentItemColumns = `id, organization_id, project_id, title, kind, status,
	current_version_id, compliance_score, created_by, created_at, updated_at, is_deleted`

func (s *contentItemStore) GetByID(ctx context.Context, id int64) (*model.ContentItem, error) {
	const query = `SELECT ` + contentItemColumns + ` FROM content_items WHERE id = $1 AND NOT is_deleted`
	item, err := scanContentItem(s.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *contentItemStore) GetForUpdate(ctx context.Context, id int64) (*model.ContentItem, error) {
	const query = `SELECT ` + contentItemColumns + ` FROM content_items WHERE id = $1 AND NOT is_deleted FOR UPDATE`
	item, err := scanContentItem(s.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *contentItemStore) Create(ctx context.Context, item *model.ContentItem) error {
	const query = `
		INSERT INTO content_items (id, organization_id, project_id, title, kind, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + contentItemColumns
	created, err := scanContentItem(s.q.QueryRow(ctx, query,
		item.ID, item.OrganizationID, item.ProjectID, item.Title, item.Kind, item.Status, item.CreatedBy))
	if err != nil {
		return err
	}
	*item = *created
	return nil
}

func (s *contentItemStore) Update(ctx context.Context, item *model.ContentItem) error {
	const query = `
		UPDATE content_items
		SET title = $2, kind = $3, updated_at = now()
		WHERE id = $1 AND NOT is_deleted
		RETURNING ` + contentItemColumns
	updated, err := scanContentItem(s.q.QueryRow(ctx, query, item.ID, item.Title, item.Kind))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*item = *updated
	return nil
}

func (s *contentItemStore) UpdateStatus(ctx context.Context, id int64, from, to model.ContentStatus) (*model.ContentItem, error) {
	const query = `
		UPDATE content_items
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2 AND NOT is_deleted
		RETURNING ` + contentItemColumns
	item, err := scanContentItem(s.q.QueryRow(ctx, query, id, from, to))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *contentItemStore) SetCurrentVersion(ctx context.Context, id, versionID int64, score *int32) error {
	const query = `
		UPDATE content_items
		SET current_version_id = $2, compliance_score = $3, updated_at = now()
		WHERE id = $1 AND NOT is_deleted`
	tag, err := s.q.Exec(ctx, query, id, versionID, score)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *contentItemStore) Delete(ctx context.Context, id int64) error {
	const query = `UPDATE content_items SET is_deleted = TRUE, updated_at = now() WHERE id = $1`
	_, err := s.q.Exec(ctx, query, id)
	return err
}

func (s *contentItemStore) ListByProject(ctx context.Context, projectID int64) ([]model.ContentItem, error) {
	const query = `SELECT ` + contentItemColumns + ` FROM content_items WHERE project_id = $1 AND NOT is_deleted ORDER BY created_at DESC`
	rows, err := s.q.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.ContentItem
	for rows.Next() {
		item, err := scanContentItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func scanContentItem(row pgx.Row) (*model.ContentItem, error) {
	var item model.ContentItem
	err := row.Scan(&item.ID, &item.OrganizationID, &item.ProjectID,
		&item.Title, &item.Kind, &item.Status,
		&item.CurrentVersionID, &item.ComplianceScore, &item.CreatedBy,
		&item.CreatedAt, &item.UpdatedAt, &item.IsDeleted)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
