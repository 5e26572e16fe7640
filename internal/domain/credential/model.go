package credential

import (
	"time"

	"credvault/internal/domain/project"
	"credvault/internal/domain/rbac"
)

// Data is a decrypted credential payload. Values are what encoding/json
// produces for an object: strings, numbers, booleans and nested maps.
type Data = map[string]any

type Credential struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	// Data is the encrypted payload blob, hex encoded in transit.
	Data      string    `json:"data,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Sharing is an edge granting a project a role over a credential. At most one
// owner sharing exists per credential at any committed instant; the store
// enforces this with a partial unique index.
type Sharing struct {
	CredentialID string    `json:"credential_id"`
	ProjectID    string    `json:"project_id"`
	Role         rbac.Role `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (s *Sharing) IsOwner() bool {
	return s.Role == rbac.SharingOwner
}

// ListOptions filters and shapes a GetMany call.
type ListOptions struct {
	ProjectID     string
	IncludeScopes bool
}

// ListItem is a credential annotated with its owning and shared-with project
// metadata for listing. The encrypted blob is never included.
type ListItem struct {
	Credential
	HomeProject *project.Project  `json:"home_project,omitempty"`
	SharedWith  []project.Project `json:"shared_with,omitempty"`
	Scopes      []rbac.Scope      `json:"scopes,omitempty"`
}

type CreateRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data Data   `json:"data"`
	// ProjectID selects the owning project; empty means the caller's
	// personal project.
	ProjectID string `json:"project_id,omitempty"`
}

type UpdateRequest struct {
	Name string `json:"name,omitempty"`
	// Data may be partially redacted: sentinel values are restored from the
	// previously saved payload.
	Data Data `json:"data,omitempty"`
}
