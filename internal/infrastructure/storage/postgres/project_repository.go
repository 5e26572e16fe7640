package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"credvault/internal/domain/project"
	"credvault/internal/domain/rbac"
)

type ProjectRepository struct {
	storage *Storage
	log     *slog.Logger
}

func NewProjectRepository(storage *Storage, log *slog.Logger) *ProjectRepository {
	return &ProjectRepository{
		storage: storage,
		log:     log.With("component", "project_repository"),
	}
}

func (r *ProjectRepository) Get(ctx context.Context, projectID string) (*project.Project, error) {
	const query = `
		SELECT id, name, kind
		FROM projects
		WHERE id = $1`

	var p project.Project
	err := r.storage.conn(ctx).QueryRow(ctx, query, projectID).Scan(&p.ID, &p.Name, &p.Kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, project.ErrNotFound
		}
		r.log.Error("failed to get project", "project_id", projectID, "error", err)
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &p, nil
}

func (r *ProjectRepository) RelationsForUser(ctx context.Context, userID string) ([]project.Relation, error) {
	const query = `
		SELECT project_id, user_id, role
		FROM project_relations
		WHERE user_id = $1`

	rows, err := r.storage.conn(ctx).Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to list relations", "user_id", userID, "error", err)
		return nil, fmt.Errorf("relations for user: %w", err)
	}
	defer rows.Close()

	var relations []project.Relation
	for rows.Next() {
		var rel project.Relation
		if err := rows.Scan(&rel.ProjectID, &rel.UserID, &rel.Role); err != nil {
			return nil, fmt.Errorf("scan relation: %w", err)
		}
		relations = append(relations, rel)
	}
	return relations, rows.Err()
}

func (r *ProjectRepository) PersonalProjectFor(ctx context.Context, userID string) (*project.Project, error) {
	const query = `
		SELECT p.id, p.name, p.kind
		FROM projects p
		JOIN project_relations pr ON pr.project_id = p.id
		WHERE p.kind = $1 AND pr.user_id = $2 AND pr.role = $3`

	var p project.Project
	err := r.storage.conn(ctx).QueryRow(ctx, query,
		project.KindPersonal, userID, rbac.ProjectPersonalOwner).Scan(&p.ID, &p.Name, &p.Kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, project.ErrNoPersonalProject
		}
		r.log.Error("failed to get personal project", "user_id", userID, "error", err)
		return nil, fmt.Errorf("personal project for user: %w", err)
	}

	return &p, nil
}

func (r *ProjectRepository) PersonalProjectIDs(ctx context.Context) ([]string, error) {
	const query = `SELECT id FROM projects WHERE kind = $1`

	rows, err := r.storage.conn(ctx).Query(ctx, query, project.KindPersonal)
	if err != nil {
		r.log.Error("failed to list personal projects", "error", err)
		return nil, fmt.Errorf("personal project ids: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

func (r *ProjectRepository) Owner(ctx context.Context, projectID string) (string, error) {
	const query = `
		SELECT pr.user_id
		FROM project_relations pr
		JOIN projects p ON p.id = pr.project_id
		WHERE pr.project_id = $1
		  AND pr.role = CASE WHEN p.kind = $2 THEN $3::text ELSE $4::text END
		ORDER BY pr.created_at
		LIMIT 1`

	var userID string
	err := r.storage.conn(ctx).QueryRow(ctx, query,
		projectID, project.KindPersonal, rbac.ProjectPersonalOwner, rbac.ProjectAdmin).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", project.ErrNotFound
		}
		r.log.Error("failed to get project owner", "project_id", projectID, "error", err)
		return "", fmt.Errorf("project owner: %w", err)
	}

	return userID, nil
}

func (r *ProjectRepository) WorkflowProjects(ctx context.Context, workflowID string) ([]string, error) {
	const query = `SELECT project_id FROM workflows WHERE id = $1`

	rows, err := r.storage.conn(ctx).Query(ctx, query, workflowID)
	if err != nil {
		r.log.Error("failed to list workflow projects", "workflow_id", workflowID, "error", err)
		return nil, fmt.Errorf("workflow projects: %w", err)
	}
	defer rows.Close()

	ids, err := scanIDs(rows)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, project.ErrWorkflowNotFound
	}
	return ids, nil
}

func (r *ProjectRepository) WorkflowOwner(ctx context.Context, workflowID string) (string, error) {
	projectIDs, err := r.WorkflowProjects(ctx, workflowID)
	if err != nil {
		return "", err
	}
	return r.Owner(ctx, projectIDs[0])
}

func scanIDs(rows pgx.Rows) ([]string, error) {
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
