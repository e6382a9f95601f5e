package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"inkwire.app/newsroom/core/db"
	"inkwire.app/newsroom/internal/model"
)

type commentStore struct {
	q db.Querier
}

func newCommentStore(q db.Querier) CommentStore {
	return &commentStore{q: q}
}

const commentColumns = `id, content_item_id, author_user_id, body, resolved_by, resolved_at,
	created_at, updated_at`

func (s *commentStore) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	const query = `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`
	comment, err := scanComment(s.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentStore) Create(ctx context.Context, comment *model.Comment) error {
	const query = `
		INSERT INTO comments (id, content_item_id, author_user_id, body)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + commentColumns
	created, err := scanComment(s.q.QueryRow(ctx, query,
		comment.ID, comment.ContentItemID, comment.AuthorUserID, comment.Body))
	if err != nil {
		return err
	}
	*comment = *created
	return nil
}

func (s *commentStore) Resolve(ctx context.Context, id, resolvedBy int64) (*model.Comment, error) {
	const query = `
		UPDATE comments
		SET resolved_by = $2, resolved_at = now(), updated_at = now()
		WHERE id = $1 AND resolved_at IS NULL
		RETURNING ` + commentColumns
	comment, err := scanComment(s.q.QueryRow(ctx, query, id, resolvedBy))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentStore) ListByItem(ctx context.Context, itemID int64) ([]model.Comment, error) {
	const query = `SELECT ` + commentColumns + ` FROM comments WHERE content_item_id = $1 ORDER BY created_at`
	rows, err := s.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var comments []model.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *comment)
	}
	return comments, rows.Err()
}

func scanComment(row pgx.Row) (*model.Comment, error) {
	var comment model.Comment
	err := row.Scan(&comment.ID, &comment.ContentItemID, &comment.AuthorUserID,
		&comment.Body, &comment.ResolvedBy, &comment.ResolvedAt,
		&comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
