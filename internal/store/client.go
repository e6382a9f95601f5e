package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"inkwire.app/newsroom/core/db"
	"inkwire.app/newsroom/internal/model"
)

type clientStore struct {
	q db.Querier
}

func newClientStore(q db.Querier) ClientStore {
	return &clientStore{q: q}
}

const clientColumns = `id, organization_id, name, slug, contact_name, contact_email,
	banned_phrases, required_disclaimer, created_at, updated_at, is_deleted`

func (s *clientStore) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	const query = `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND NOT is_deleted`
	client, err := scanClient(s.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *clientStore) GetBySlug(ctx context.Context, orgID int64, slug string) (*model.Client, error) {
	const query = `SELECT ` + clientColumns + ` FROM clients WHERE organization_id = $1 AND slug = $2 AND NOT is_deleted`
	client, err := scanClient(s.q.QueryRow(ctx, query, orgID, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *clientStore) Create(ctx context.Context, client *model.Client) error {
	const query = `
		INSERT INTO clients (id, organization_id, name, slug, contact_name, contact_email,
			banned_phrases, required_disclaimer)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + clientColumns
	created, err := scanClient(s.q.QueryRow(ctx, query,
		client.ID, client.OrganizationID, client.Name, client.Slug,
		client.ContactName, client.ContactEmail,
		client.BannedPhrases, client.RequiredDisclaimer))
	if err != nil {
		return err
	}
	*client = *created
	return nil
}

func (s *clientStore) Update(ctx context.Context, client *model.Client) error {
	const query = `
		UPDATE clients
		SET name = $2, slug = $3, contact_name = $4, contact_email = $5,
			banned_phrases = $6, required_disclaimer = $7, updated_at = now()
		WHERE id = $1 AND NOT is_deleted
		RETURNING ` + clientColumns
	updated, err := scanClient(s.q.QueryRow(ctx, query,
		client.ID, client.Name, client.Slug,
		client.ContactName, client.ContactEmail,
		client.BannedPhrases, client.RequiredDisclaimer))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*client = *updated
	return nil
}

func (s *clientStore) Delete(ctx context.Context, id int64) error {
	const query = `UPDATE clients SET is_deleted = TRUE, updated_at = now() WHERE id = $1`
	_, err := s.q.Exec(ctx, query, id)
	return err
}

func (s *clientStore) ListByOrganization(ctx context.Context, orgID int64) ([]model.Client, error) {
	const query = `SELECT ` + clientColumns + ` FROM clients WHERE organization_id = $1 AND NOT is_deleted ORDER BY name`
	rows, err := s.q.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var clients []model.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *client)
	}
	return clients, rows.Err()
}

func scanClient(row pgx.Row) (*model.Client, error) {
	var client model.Client
	err := row.Scan(&client.ID, &client.OrganizationID, &client.Name, &client.Slug,
		&client.ContactName, &client.ContactEmail,
		&client.BannedPhrases, &client.RequiredDisclaimer,
		&client.CreatedAt, &client.UpdatedAt, &client.IsDeleted)
	if err != nil {
		return nil, err
	}
	return &client, nil
}
