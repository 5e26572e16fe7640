package user

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, id string) (*User, error)
	FindByTokenHash(ctx context.Context, tokenHash string) (*User, error)
}
