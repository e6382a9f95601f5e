package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"inkwire.app/newsroom/core/db"
	"inkwire.app/newsroom/internal/model"
)

type notificationStore struct {
	q db.Querier
}

func newNotificationStore(q db.Querier) NotificationStore {
	return &notificationStore{q: q}
}

const notificationColumns = `id, user_id, kind, title, body, project_id, content_item_id,
	read_at, emailed_at, created_at`

func (s *notificationStore) GetByID(ctx context.Context, id int64) (*model.Notification, error) {
	const query = `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`
	notification, err := scanNotification(s.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return notification, nil
}

func (s *notificationStore) Create(ctx context.Context, notification *model.Notification) error {
	const query = `
		INSERT INTO notifications (id, user_id, kind, title, body, project_id, content_item_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + notificationColumns
	created, err := scanNotification(s.q.QueryRow(ctx, query,
		notification.ID, notification.UserID, notification.Kind,
		notification.Title, notification.Body,
		notification.ProjectID, notification.ContentItemID))
	if err != nil {
		return err
	}
	*notification = *created
	return nil
}

func (s *notificationStore) ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int32) ([]model.Notification, error) {
	const query = `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE user_id = $1 AND (NOT $2::boolean OR read_at IS NULL)
		ORDER BY created_at DESC
		LIMIT $3`
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.q.Query(ctx, query, userID, unreadOnly, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var notifications []model.Notification
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, *notification)
	}
	return notifications, rows.Err()
}

func (s *notificationStore) MarkRead(ctx context.Context, id int64) (*model.Notification, error) {
	const query = `
		UPDATE notifications
		SET read_at = now()
		WHERE id = $1 AND read_at IS NULL
		RETURNING ` + notificationColumns
	notification, err := scanNotification(s.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return notification, nil
}

func (s *notificationStore) MarkAllRead(ctx context.Context, userID int64) error {
	const query = `UPDATE notifications SET read_at = now() WHERE user_id = $1 AND read_at IS NULL`
	_, err := s.q.Exec(ctx, query, userID)
	return err
}

func (s *notificationStore) CountUnread(ctx context.Context, userID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read_at IS NULL`
	var count int64
	if err := s.q.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *notificationStore) MarkEmailed(ctx context.Context, id int64) error {
	const query = `UPDATE notifications SET emailed_at = now() WHERE id = $1`
	tag, err := s.q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanNotification(row pgx.Row) (*model.Notification, error) {
	var notification model.Notification
	err := row.Scan(&notification.ID, &notification.UserID, &notification.Kind,
		&notification.Title, &notification.Body,
		&notification.ProjectID, &notification.ContentItemID,
		&notification.ReadAt, &notification.EmailedAt, &notification.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &notification, nil
}
