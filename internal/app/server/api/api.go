// Credential vault HTTP API.
//
// GET    /api/v1/health                   # Liveness (public)
// GET    /api/v1/credentials              # List visible credentials (auth)
// POST   /api/v1/credentials              # Create a credential (auth)
// GET    /api/v1/credentials/{id}         # Get, redacted or decrypted (auth)
// PATCH  /api/v1/credentials/{id}         # Update with sentinel restore (auth)
// DELETE /api/v1/credentials/{id}         # Delete with sharings (auth)
// GET    /api/v1/credentials/{id}/scopes  # Caller's scopes on it (auth)
// POST   /api/v1/credentials/test         # Live connectivity check (auth)
// POST   /api/v1/credentials/transfer     # Bulk ownership move (auth)
// GET    /api/v1/credentials/usable       # Usable ids in a context (auth)

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	credentialAPI "credvault/internal/app/server/api/http/credential"
	healthAPI "credvault/internal/app/server/api/http/health"
	"credvault/internal/app/server/api/http/middleware"
	"credvault/internal/app/server/api/http/middleware/auth"
	"credvault/internal/app/server/api/http/middleware/logger"
	"credvault/internal/domain/credential"
	"credvault/internal/domain/schema"
	"credvault/internal/domain/user"
	"credvault/internal/infrastructure/storage/postgres"
)

type Handlers struct {
	Health     *healthAPI.Handler
	Credential *credentialAPI.Handler
}

// Deps are the externally constructed pieces the API wires together.
type Deps struct {
	Storage  *postgres.Storage
	Cipher   credential.Cipher
	Registry schema.Registry
	Tester   credential.Tester
}

// New builds a *chi.Mux with every operation registered through huma.
func New(deps Deps, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("CredVault API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(deps, log)
	h.Health.SetupRoutes(API)
	h.Credential.SetupRoutes(API)

	return mux
}

func handlers(deps Deps, log *slog.Logger) *Handlers {
	userRepo := postgres.NewUserRepository(deps.Storage, log)
	userService := user.NewService(userRepo, log)
	authMW := auth.New(userService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	credentialRepo := postgres.NewCredentialRepository(deps.Storage, log)
	projectRepo := postgres.NewProjectRepository(deps.Storage, log)
	resolver := schema.NewResolver(deps.Registry, log)
	access := credential.NewAccess(credentialRepo, projectRepo, userRepo, log)
	redactor := credential.NewRedactor(resolver, log)
	transfer := credential.NewTransfer(credentialRepo, deps.Storage, log)
	credentialService := credential.NewService(
		credentialRepo, deps.Storage, deps.Cipher,
		access, redactor, transfer,
		projectRepo, deps.Tester, log,
	)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	credentialHandler := credentialAPI.NewHandler(credentialService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:     healthHandler,
		Credential: credentialHandler,
	}
}
