package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"credvault/internal/domain/user"
)

type UserRepository struct {
	storage *Storage
	log     *slog.Logger
}

func NewUserRepository(storage *Storage, log *slog.Logger) *UserRepository {
	return &UserRepository{
		storage: storage,
		log:     log.With("component", "user_repository"),
	}
}

func (r *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	const query = `
		SELECT id, email, role, token_hash, created_at
		FROM users
		WHERE id = $1`

	return r.scanOne(ctx, query, id)
}

func (r *UserRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*user.User, error) {
	const query = `
		SELECT id, email, role, token_hash, created_at
		FROM users
		WHERE token_hash = $1`

	return r.scanOne(ctx, query, tokenHash)
}

func (r *UserRepository) scanOne(ctx context.Context, query string, arg any) (*user.User, error) {
	var u user.User
	err := r.storage.conn(ctx).QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.Role, &u.TokenHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		r.log.Error("failed to get user", "error", err)
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
