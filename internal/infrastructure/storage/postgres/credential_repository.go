package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"credvault/internal/domain/credential"
)

type CredentialRepository struct {
	storage *Storage
	log     *slog.Logger
}

func NewCredentialRepository(storage *Storage, log *slog.Logger) *CredentialRepository {
	return &CredentialRepository{
		storage: storage,
		log:     log.With("component", "credential_repository"),
	}
}

func (r *CredentialRepository) Create(ctx context.Context, cred *credential.Credential) error {
	const query = `
		INSERT INTO credentials (id, name, type, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.storage.conn(ctx).Exec(ctx, query,
		cred.ID, cred.Name, cred.Type, cred.Data, cred.CreatedAt, cred.UpdatedAt)
	if err != nil {
		r.log.Error("failed to create credential", "credential_id", cred.ID, "error", err)
		return fmt.Errorf("create credential: %w", err)
	}

	return nil
}

func (r *CredentialRepository) Get(ctx context.Context, id string) (*credential.Credential, error) {
	const query = `
		SELECT id, name, type, data, created_at, updated_at
		FROM credentials
		WHERE id = $1`

	row := r.storage.conn(ctx).QueryRow(ctx, query, id)

	cred, err := scanCredential(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, credential.ErrNotFound
		}
		r.log.Error("failed to get credential", "credential_id", id, "error", err)
		return nil, fmt.Errorf("get credential: %w", err)
	}

	return cred, nil
}

func (r *CredentialRepository) Update(ctx context.Context, cred *credential.Credential) error {
	const query = `
		UPDATE credentials
		SET name = $1, data = $2, updated_at = $3
		WHERE id = $4`

	result, err := r.storage.conn(ctx).Exec(ctx, query,
		cred.Name, cred.Data, cred.UpdatedAt, cred.ID)
	if err != nil {
		r.log.Error("failed to update credential", "credential_id", cred.ID, "error", err)
		return fmt.Errorf("update credential: %w", err)
	}
	if result.RowsAffected() == 0 {
		return credential.ErrNotFound
	}

	return nil
}

func (r *CredentialRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM credentials WHERE id = $1`

	result, err := r.storage.conn(ctx).Exec(ctx, query, id)
	if err != nil {
		r.log.Error("failed to delete credential", "credential_id", id, "error", err)
		return fmt.Errorf("delete credential: %w", err)
	}
	if result.RowsAffected() == 0 {
		return credential.ErrNotFound
	}

	return nil
}

func (r *CredentialRepository) List(ctx context.Context) ([]credential.Credential, error) {
	const query = `
		SELECT id, name, type, data, created_at, updated_at
		FROM credentials
		ORDER BY name`

	rows, err := r.storage.conn(ctx).Query(ctx, query)
	if err != nil {
		r.log.Error("failed to list credentials", "error", err)
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	defer rows.Close()

	return scanCredentials(rows)
}

func (r *CredentialRepository) ListByIDs(ctx context.Context, ids []string) ([]credential.Credential, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	const query = `
		SELECT id, name, type, data, created_at, updated_at
		FROM credentials
		WHERE id = ANY($1)
		ORDER BY name`

	rows, err := r.storage.conn(ctx).Query(ctx, query, ids)
	if err != nil {
		r.log.Error("failed to list credentials by ids", "error", err)
		return nil, fmt.Errorf("list credentials by ids: %w", err)
	}
	defer rows.Close()

	return scanCredentials(rows)
}

func (r *CredentialRepository) CreateSharing(ctx context.Context, sharing *credential.Sharing) error {
	const query = `
		INSERT INTO credential_sharings (credential_id, project_id, role)
		VALUES ($1, $2, $3)`

	_, err := r.storage.conn(ctx).Exec(ctx, query,
		sharing.CredentialID, sharing.ProjectID, sharing.Role)
	if err != nil {
		r.log.Error("failed to create sharing",
			"credential_id", sharing.CredentialID, "project_id", sharing.ProjectID, "error", err)
		return fmt.Errorf("create sharing: %w", err)
	}

	return nil
}

func (r *CredentialRepository) DeleteSharing(ctx context.Context, credentialID, projectID string) error {
	const query = `
		DELETE FROM credential_sharings
		WHERE credential_id = $1 AND project_id = $2`

	_, err := r.storage.conn(ctx).Exec(ctx, query, credentialID, projectID)
	if err != nil {
		return fmt.Errorf("delete sharing: %w", err)
	}
	return nil
}

func (r *CredentialRepository) DeleteSharingsForCredential(ctx context.Context, credentialID string) error {
	const query = `DELETE FROM credential_sharings WHERE credential_id = $1`

	_, err := r.storage.conn(ctx).Exec(ctx, query, credentialID)
	if err != nil {
		return fmt.Errorf("delete sharings for credential: %w", err)
	}
	return nil
}

func (r *CredentialRepository) DeleteSharingsForProject(ctx context.Context, projectID string) error {
	const query = `DELETE FROM credential_sharings WHERE project_id = $1`

	_, err := r.storage.conn(ctx).Exec(ctx, query, projectID)
	if err != nil {
		return fmt.Errorf("delete sharings for project: %w", err)
	}
	return nil
}

func (r *CredentialRepository) SharingsForCredential(ctx context.Context, credentialID string) ([]credential.Sharing, error) {
	const query = `
		SELECT credential_id, project_id, role, created_at
		FROM credential_sharings
		WHERE credential_id = $1`

	rows, err := r.storage.conn(ctx).Query(ctx, query, credentialID)
	if err != nil {
		return nil, fmt.Errorf("sharings for credential: %w", err)
	}
	defer rows.Close()

	return scanSharings(rows)
}

func (r *CredentialRepository) SharingsForCredentials(ctx context.Context, credentialIDs []string) ([]credential.Sharing, error) {
	if len(credentialIDs) == 0 {
		return nil, nil
	}

	const query = `
		SELECT credential_id, project_id, role, created_at
		FROM credential_sharings
		WHERE credential_id = ANY($1)`

	rows, err := r.storage.conn(ctx).Query(ctx, query, credentialIDs)
	if err != nil {
		return nil, fmt.Errorf("sharings for credentials: %w", err)
	}
	defer rows.Close()

	return scanSharings(rows)
}

func (r *CredentialRepository) SharingsForProjects(ctx context.Context, projectIDs []string) ([]credential.Sharing, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}

	const query = `
		SELECT credential_id, project_id, role, created_at
		FROM credential_sharings
		WHERE project_id = ANY($1)`

	rows, err := r.storage.conn(ctx).Query(ctx, query, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("sharings for projects: %w", err)
	}
	defer rows.Close()

	return scanSharings(rows)
}

func (r *CredentialRepository) ReassignSharingProject(ctx context.Context, credentialID, fromProjectID, toProjectID string) error {
	const query = `
		UPDATE credential_sharings
		SET project_id = $1
		WHERE credential_id = $2 AND project_id = $3`

	result, err := r.storage.conn(ctx).Exec(ctx, query, toProjectID, credentialID, fromProjectID)
	if err != nil {
		r.log.Error("failed to reassign sharing",
			"credential_id", credentialID, "from_project", fromProjectID, "to_project", toProjectID, "error", err)
		return fmt.Errorf("reassign sharing: %w", err)
	}
	if result.RowsAffected() == 0 {
		return credential.ErrNotFound
	}

	return nil
}

func scanCredentials(rows pgx.Rows) ([]credential.Credential, error) {
	var creds []credential.Credential
	for rows.Next() {
		cred, err := scanCredential(rows)
		if err != nil {
			return nil, err
		}
		creds = append(creds, *cred)
	}
	return creds, rows.Err()
}

func scanCredential(row pgx.Row) (*credential.Credential, error) {
	var cred credential.Credential
	err := row.Scan(
		&cred.ID, &cred.Name, &cred.Type, &cred.Data,
		&cred.CreatedAt, &cred.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

func scanSharings(rows pgx.Rows) ([]credential.Sharing, error) {
	var sharings []credential.Sharing
	for rows.Next() {
		var s credential.Sharing
		if err := rows.Scan(&s.CredentialID, &s.ProjectID, &s.Role, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sharing: %w", err)
		}
		sharings = append(sharings, s)
	}
	return sharings, rows.Err()
}
