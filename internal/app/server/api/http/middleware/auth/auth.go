package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"credvault/internal/domain/user"
)

type Auth struct {
	users user.Servicer
	log   *slog.Logger
}

func New(users user.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		users: users,
		log:   log.With("component", "auth_middleware"),
	}
}

type contextKey string

const userKey contextKey = "user"

// Middleware resolves the bearer token to a user and stores it in the request
// context. Requests without a valid token never reach the handler.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			a.reject(ctx)
			return
		}

		usr, err := a.users.Authenticate(ctx.Context(), token)
		if err != nil {
			a.log.Debug("token rejected", "error", err)
			a.reject(ctx)
			return
		}

		next(huma.WithContext(ctx, WithUser(ctx.Context(), usr)))
	}
}

func (a *Auth) reject(ctx huma.Context) {
	ctx.SetStatus(http.StatusUnauthorized)
	ctx.SetHeader("Content-Type", "application/json")
	if err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
		"error": "Unauthorized",
	}); err != nil {
		a.log.Error("failed to write unauthorized response", "error", err)
	}
}

func WithUser(ctx context.Context, usr *user.User) context.Context {
	return context.WithValue(ctx, userKey, usr)
}

func GetUser(ctx context.Context) (*user.User, bool) {
	usr, ok := ctx.Value(userKey).(*user.User)
	return usr, ok
}
