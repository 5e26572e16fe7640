package credential

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/credentials",
		Summary:     "List credentials visible to the caller",
		Tags:        []string{"credentials"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) findOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-find",
		Method:      http.MethodGet,
		Path:        "/api/v1/credentials/{id}",
		Summary:     "Get a credential",
		Description: "Returns the credential with a redacted payload. Pass include_data to receive the decrypted payload instead; that requires the update scope.",
		Tags:        []string{"credentials"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-create",
		Method:      http.MethodPost,
		Path:        "/api/v1/credentials",
		Summary:     "Create a credential",
		Tags:        []string{"credentials"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-update",
		Method:      http.MethodPatch,
		Path:        "/api/v1/credentials/{id}",
		Summary:     "Update a credential",
		Description: "Redaction sentinels in the submitted payload are replaced with the previously saved values before re-encryption.",
		Tags:        []string{"credentials"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/credentials/{id}",
		Summary:     "Delete a credential",
		Tags:        []string{"credentials"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) testOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-test",
		Method:      http.MethodPost,
		Path:        "/api/v1/credentials/test",
		Summary:     "Test credential data against the live service",
		Tags:        []string{"credentials"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) scopesOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-scopes",
		Method:      http.MethodGet,
		Path:        "/api/v1/credentials/{id}/scopes",
		Summary:     "List the caller's scopes on a credential",
		Tags:        []string{"credentials"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) transferOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-transfer",
		Method:      http.MethodPost,
		Path:        "/api/v1/credentials/transfer",
		Summary:     "Move all credentials owned by one project to another",
		Tags:        []string{"credentials"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) usableOp() huma.Operation {
	return huma.Operation{
		OperationID: "credentials-usable",
		Method:      http.MethodGet,
		Path:        "/api/v1/credentials/usable",
		Summary:     "List credential ids usable in an execution context",
		Description: "Exactly one of workflow_id or project_id must be given.",
		Tags:        []string{"credentials"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
