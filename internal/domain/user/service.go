package user

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Authenticate(ctx context.Context, token string) (*User, error)
	Get(ctx context.Context, id string) (*User, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "user_service"),
	}
}

// Authenticate resolves a bearer API token to a user. Tokens are stored as
// SHA-256 hashes; the plaintext never touches the database.
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrInvalidAuth
	}

	usr, err := s.repo.FindByTokenHash(ctx, HashToken(token))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidAuth
		}
		s.log.Error("failed to authenticate token", "error", err)
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	return usr, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	usr, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to get user", "user_id", id, "error", err)
		return nil, fmt.Errorf("get user: %w", err)
	}
	return usr, nil
}

// HashToken returns the hex SHA-256 digest under which a token is stored.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
