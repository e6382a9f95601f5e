package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"inkwire.app/newsroom/core/db"
	"inkwire.app/newsroom/internal/model"
)

type organizationStore struct {
	q db.Querier
}

func newOrganizationStore(q db.Querier) OrganizationStore {
	return &organizationStore{q: q}
}

const organizationColumns = `id, name, slug, created_at, updated_at, is_deleted`

func (s *organizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	const query = `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1 AND NOT is_deleted`
	org, err := scanOrganization(s.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return org, nil
}

func (s *organizationStore) GetBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	const query = `SELECT ` + organizationColumns + ` FROM organizations WHERE slug = $1 AND NOT is_deleted`
	org, err := scanOrganization(s.q.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return org, nil
}

func (s *organizationStore) Create(ctx context.Context, org *model.Organization) error {
	const query = `
		INSERT INTO organizations (id, name, slug)
		VALUES ($1, $2, $3)
		RETURNING ` + organizationColumns
	created, err := scanOrganization(s.q.QueryRow(ctx, query, org.ID, org.Name, org.Slug))
	if err != nil {
		return err
	}
	*org = *created
	return nil
}

func (s *organizationStore) Update(ctx context.Context, org *model.Organization) error {
	const query = `
		UPDATE organizations
		SET name = $2, slug = $3, updated_at = now()
		WHERE id = $1 AND NOT is_deleted
		RETURNING ` + organizationColumns
	updated, err := scanOrganization(s.q.QueryRow(ctx, query, org.ID, org.Name, org.Slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*org = *updated
	return nil
}

func (s *organizationStore) Delete(ctx context.Context, id int64) error {
	const query = `UPDATE organizations SET is_deleted = TRUE, updated_at = now() WHERE id = $1`
	_, err := s.q.Exec(ctx, query, id)
	return err
}

func scanOrganization(row pgx.Row) (*model.Organization, error) {
	var org model.Organization
	err := row.Scan(&org.ID, &org.Name, &org.Slug, &org.CreatedAt, &org.UpdatedAt, &org.IsDeleted)
	if err != nil {
		return nil, err
	}
	return &org, nil
}
