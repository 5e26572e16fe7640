package credential

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"credvault/internal/app/server/api/http/middleware/auth"
	"credvault/internal/domain/credential"
)

type Handler struct {
	service    credential.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service credential.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.usableOp(), h.usable)
	huma.Register(api, h.testOp(), h.test)
	huma.Register(api, h.transferOp(), h.transfer)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.scopesOp(), h.scopes)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	usr, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	items, err := h.service.GetMany(ctx, usr, credential.ListOptions{
		ProjectID:     input.ProjectID,
		IncludeScopes: input.IncludeScopes,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &listOutput{Body: items}, nil
}

func (h *Handler) find(ctx context.Context, input *findInput) (*findOutput, error) {
	usr, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	cred, data, err := h.service.GetOne(ctx, usr, input.ID, input.IncludeData)
	if err != nil {
		return nil, mapError(err)
	}

	return &findOutput{
		Body: credentialResponse{
			Credential: *cred,
			Data:       data,
		},
	}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*findOutput, error) {
	usr, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	cred, err := h.service.Create(ctx, usr, credential.CreateRequest{
		Name:      input.Body.Name,
		Type:      input.Body.Type,
		Data:      input.Body.Data,
		ProjectID: input.Body.ProjectID,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &findOutput{
		Body: credentialResponse{Credential: *cred},
	}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*findOutput, error) {
	usr, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	cred, err := h.service.Update(ctx, usr, input.ID, credential.UpdateRequest{
		Name: input.Body.Name,
		Data: input.Body.Data,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &findOutput{
		Body: credentialResponse{Credential: *cred},
	}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	usr, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, usr, input.ID); err != nil {
		return nil, mapError(err)
	}

	return &deleteOutput{Body: statusResponse{Status: "Ok"}}, nil
}

func (h *Handler) test(ctx context.Context, input *testInput) (*testOutput, error) {
	usr, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	result := h.service.Test(ctx, usr, input.Body.Type, input.Body.Data)
	return &testOutput{Body: result}, nil
}

func (h *Handler) scopes(ctx context.Context, input *scopesInput) (*scopesOutput, error) {
	usr, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	scopes, err := h.service.ScopesFor(ctx, usr, input.ID)
	if err != nil {
		return nil, mapError(err)
	}

	return &scopesOutput{
		Body: scopesResponse{
			CredentialID: input.ID,
			Scopes:       scopes,
		},
	}, nil
}

func (h *Handler) transfer(ctx context.Context, input *transferInput) (*deleteOutput, error) {
	usr, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	err := h.service.TransferAll(ctx, usr, input.Body.FromProjectID, input.Body.ToProjectID)
	if err != nil {
		return nil, mapError(err)
	}

	return &deleteOutput{Body: statusResponse{Status: "Ok"}}, nil
}

func (h *Handler) usable(ctx context.Context, input *usableInput) (*usableOutput, error) {
	usr, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	ids, err := h.service.UsableInContext(ctx, usr, credential.ContextRef{
		WorkflowID: input.WorkflowID,
		ProjectID:  input.ProjectID,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &usableOutput{Body: usableResponse{CredentialIDs: ids}}, nil
}

// mapError translates domain errors into HTTP status errors. Anything
// unrecognized becomes a 500 via huma's default handling.
func mapError(err error) error {
	switch {
	case errors.Is(err, credential.ErrNotFound):
		return huma.Error404NotFound("credential not found")
	case errors.Is(err, credential.ErrForbidden):
		return huma.Error403Forbidden("missing required scope")
	case errors.Is(err, credential.ErrInvalidData):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, credential.ErrBadRequest):
		return huma.Error400BadRequest(err.Error())
	default:
		return err
	}
}
