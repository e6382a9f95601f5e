package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"inkwire.app/newsroom/core/db"
	"inkwire.app/newsroom/internal/model"
)

type projectStore struct {
	q db.Querier
}

func newProjectStore(q db.Querier) ProjectStore {
	return &projectStore{q: q}
}

const projectColumns = `id, organization_id, client_id, owner_user_id, title, brief,
	status, due_at, created_at, updated_at, is_deleted`

func (s *projectStore) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	const query = `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 AND NOT is_deleted`
	project, err := scanProject(s.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

func (s *projectStore) Create(ctx context.Context, project *model.Project) error {
	const query = `
		INSERT INTO projects (id, organization_id, client_id, owner_user_id, title, brief, status, due_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + projectColumns
	created, err := scanProject(s.q.QueryRow(ctx, query,
		project.ID, project.OrganizationID, project.ClientID, project.OwnerUserID,
		project.Title, project.Brief, project.Status, project.DueAt))
	if err != nil {
		return err
	}
	*project = *created
	return nil
}

func (s *projectStore) Update(ctx context.Context, project *model.Project) error {
	const query = `
		UPDATE projects
		SET owner_user_id = $2, title = $3, brief = $4, due_at = $5, updated_at = now()
		WHERE id = $1 AND NOT is_deleted
		RETURNING ` + projectColumns
	updated, err := scanProject(s.q.QueryRow(ctx, query,
		project.ID, project.OwnerUserID, project.Title, project.Brief, project.DueAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*project = *updated
	return nil
}

func (s *projectStore) UpdateStatus(ctx context.Context, id int64, from, to model.ProjectStatus) (*model.Project, error) {
	const query = `
		UPDATE projects
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2 AND NOT is_deleted
		RETURNING ` + projectColumns
	project, err := scanProject(s.q.QueryRow(ctx, query, id, from, to))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

func (s *projectStore) Delete(ctx context.Context, id int64) error {
	const query = `UPDATE projects SET is_deleted = TRUE, updated_at = now() WHERE id = $1`
	_, err := s.q.Exec(ctx, query, id)
	return err
}

func (s *projectStore) ListByOrganization(ctx context.Context, orgID int64) ([]model.Project, error) {
	const query = `SELECT ` + projectColumns + ` FROM projects WHERE organization_id = $1 AND NOT is_deleted ORDER BY created_at DESC`
	rows, err := s.q.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	return collectProjects(rows)
}

func (s *projectStore) ListByClient(ctx context.Context, clientID int64) ([]model.Project, error) {
	const query = `SELECT ` + projectColumns + ` FROM projects WHERE client_id = $1 AND NOT is_deleted ORDER BY created_at DESC`
	rows, err := s.q.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	return collectProjects(rows)
}

func scanProject(row pgx.Row) (*model.Project, error) {
	var project model.Project
	err := row.Scan(&project.ID, &project.OrganizationID, &project.ClientID,
		&project.OwnerUserID, &project.Title, &project.Brief,
		&project.Status, &project.DueAt,
		&project.CreatedAt, &project.UpdatedAt, &project.IsDeleted)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func collectProjects(rows pgx.Rows) ([]model.Project, error) {
	defer rows.Close()
	var projects []model.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}
