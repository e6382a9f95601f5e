package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"inkwire.app/newsroom/core/db"
	"inkwire.app/newsroom/internal/model"
)

type fileStore struct {
	q db.Querier
}

func newFileStore(q db.Querier) FileStore {
	return &fileStore{q: q}
}

const fileColumns = `id, organization_id, project_id, content_item_id, name, content_type,
	size_bytes, storage_key, uploaded_by, created_at`

func (s *fileStore) GetByID(ctx context.Context, id int64) (*model.File, error) {
	const query = `SELECT ` + fileColumns + ` FROM files WHERE id = $1`
	file, err := scanFile(s.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return file, nil
}

func (s *fileStore) Create(ctx context.Context, file *model.File) error {
	const query = `
		INSERT INTO files (id, organization_id, project_id, content_item_id, name, content_type, size_bytes, storage_key, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + fileColumns
	created, err := scanFile(s.q.QueryRow(ctx, query,
		file.ID, file.OrganizationID, file.ProjectID, file.ContentItemID,
		file.Name, file.ContentType, file.SizeBytes, file.StorageKey, file.UploadedBy))
	if err != nil {
		return err
	}
	*file = *created
	return nil
}

func (s *fileStore) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM files WHERE id = $1`
	tag, err := s.q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *fileStore) ListByProject(ctx context.Context, projectID int64) ([]model.File, error) {
	const query = `SELECT ` + fileColumns + ` FROM files WHERE project_id = $1 ORDER BY created_at DESC`
	rows, err := s.q.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	return collectFiles(rows)
}

func (s *fileStore) ListByContentItem(ctx context.Context, itemID int64) ([]model.File, error) {
	const query = `SELECT ` + fileColumns + ` FROM files WHERE content_item_id = $1 ORDER BY created_at DESC`
	rows, err := s.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	return collectFiles(rows)
}

func scanFile(row pgx.Row) (*model.File, error) {
	var file model.File
	err := row.Scan(&file.ID, &file.OrganizationID, &file.ProjectID, &file.ContentItemID,
		&file.Name, &file.ContentType, &file.SizeBytes, &file.StorageKey,
		&file.UploadedBy, &file.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func collectFiles(rows pgx.Rows) ([]model.File, error) {
	defer rows.Close()
	var files []model.File
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, *file)
	}
	return files, rows.Err()
}
