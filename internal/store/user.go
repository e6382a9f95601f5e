package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"inkwire.app/newsroom/core/db"
	"inkwire.app/newsroom/internal/model"
)

type userStore struct {
	q db.Querier
}

func newUserStore(q db.Querier) UserStore {
	return &userStore{q: q}
}

const userColumns = `id, organization_id, client_id, name, email, role, created_at, updated_at`

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(s.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userStore) GetByEmail(ctx context.Context, orgID int64, email string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE organization_id = $1 AND email = $2`
	user, err := scanUser(s.q.QueryRow(ctx, query, orgID, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	const query = `
		INSERT INTO users (id, organization_id, client_id, name, email, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns
	created, err := scanUser(s.q.QueryRow(ctx, query,
		user.ID, user.OrganizationID, user.ClientID, user.Name, user.Email, user.Role))
	if err != nil {
		return err
	}
	*user = *created
	return nil
}

func (s *userStore) Update(ctx context.Context, user *model.User) error {
	const query = `
		UPDATE users
		SET client_id = $2, name = $3, email = $4, role = $5, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns
	updated, err := scanUser(s.q.QueryRow(ctx, query,
		user.ID, user.ClientID, user.Name, user.Email, user.Role))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*user = *updated
	return nil
}

func (s *userStore) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM users WHERE id = $1`
	_, err := s.q.Exec(ctx, query, id)
	return err
}

func (s *userStore) ListByOrganization(ctx context.Context, orgID int64) ([]model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE organization_id = $1 ORDER BY name`
	rows, err := s.q.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (s *userStore) ListByClient(ctx context.Context, clientID int64) ([]model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE client_id = $1 ORDER BY name`
	rows, err := s.q.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (s *userStore) ListByRole(ctx context.Context, orgID int64, role model.Role) ([]model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE organization_id = $1 AND role = $2 ORDER BY name`
	rows, err := s.q.Query(ctx, query, orgID, role)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(&user.ID, &user.OrganizationID, &user.ClientID,
		&user.Name, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func collectUsers(rows pgx.Rows) ([]model.User, error) {
	defer rows.Close()
	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}
