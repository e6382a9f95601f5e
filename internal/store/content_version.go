package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"inkwire.app/newsroom/core/db"
	"inkwire.app/newsroom/internal/model"
)

type contentVersionStore struct {
	q db.Querier
}

func newContentVersionStore(q db.Querier) ContentVersionStore {
	return &contentVersionStore{q: q}
}

const contentVersionColumns = `id, content_item_id, version_number, document, html,
	compliance_score, created_by, created_at`

func (s *contentVersionStore) GetByID(ctx context.Context, id int64) (*model.ContentVersion, error) {
	const query = `SELECT ` + contentVersionColumns + ` FROM content_versions WHERE id = $1`
	version, err := scanContentVersion(s.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return version, nil
}

func (s *contentVersionStore) GetLatest(ctx context.Context, itemID int64) (*model.ContentVersion, error) {
	const query = `
		SELECT ` + contentVersionColumns + `
		FROM content_versions
		WHERE content_item_id = $1
		ORDER BY version_number DESC
		LIMIT 1`
	version, err := scanContentVersion(s.q.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return version, nil
}

func (s *contentVersionStore) Create(ctx context.Context, version *model.ContentVersion) error {
	const query = `
		INSERT INTO content_versions (id, content_item_id, version_number, document, html, compliance_score, created_by)
		VALUES ($1, $2,
			(SELECT COALESCE(MAX(version_number), 0) + 1 FROM content_versions WHERE content_item_id = $2),
			$3, $4, $5, $6)
		RETURNING ` + contentVersionColumns
	created, err := scanContentVersion(s.q.QueryRow(ctx, query,
		version.ID, version.ContentItemID, version.Document, version.HTML,
		version.ComplianceScore, version.CreatedBy))
	if err != nil {
		return err
	}
	*version = *created
	return nil
}

func (s *contentVersionStore) UpdateScore(ctx context.Context, id int64, score int32) error {
	const query = `UPDATE content_versions SET compliance_score = $2 WHERE id = $1`
	tag, err := s.q.Exec(ctx, query, id, score)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *contentVersionStore) ListByItem(ctx context.Context, itemID int64) ([]model.ContentVersion, error) {
	const query = `
		SELECT ` + contentVersionColumns + `
		FROM content_versions
		WHERE content_item_id = $1
		ORDER BY version_number DESC`
	rows, err := s.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var versions []model.ContentVersion
	for rows.Next() {
		version, err := scanContentVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, *version)
	}
	return versions, rows.Err()
}

func scanContentVersion(row pgx.Row) (*model.ContentVersion, error) {
	var version model.ContentVersion
	err := row.Scan(&version.ID, &version.ContentItemID, &version.VersionNumber,
		&version.Document, &version.HTML,
		&version.ComplianceScore, &version.CreatedBy, &version.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &version, nil
}
