package credential

import (
	"credvault/internal/domain/credential"
	"credvault/internal/domain/rbac"
)

type listInput struct {
	ProjectID     string `query:"project_id" doc:"Only credentials shared with this project"`
	IncludeScopes bool   `query:"include_scopes" doc:"Annotate each credential with the caller's scopes"`
}

type listOutput struct {
	Body []credential.ListItem
}

type findInput struct {
	ID          string `path:"id" doc:"Credential id"`
	IncludeData bool   `query:"include_data" doc:"Include the decrypted payload (requires update scope)"`
}

type findOutput struct {
	Body credentialResponse
}

type createInput struct {
	Body createRequest
}

type createRequest struct {
	Name      string          `json:"name" minLength:"1" doc:"Display name"`
	Type      string          `json:"type" minLength:"1" doc:"Credential type name"`
	Data      credential.Data `json:"data" doc:"Plain credential payload"`
	ProjectID string          `json:"project_id,omitempty" doc:"Owning project; defaults to the caller's personal project"`
}

type updateInput struct {
	ID   string `path:"id" doc:"Credential id"`
	Body updateRequest
}

type updateRequest struct {
	Name string          `json:"name,omitempty" doc:"New display name"`
	Data credential.Data `json:"data,omitempty" doc:"Payload, possibly containing redaction sentinels"`
}

type deleteInput struct {
	ID string `path:"id" doc:"Credential id"`
}

type deleteOutput struct {
	Body statusResponse
}

type testInput struct {
	Body testRequest
}

type testRequest struct {
	Type string          `json:"type" minLength:"1" doc:"Credential type name"`
	Data credential.Data `json:"data" doc:"Payload to verify"`
}

type testOutput struct {
	Body credential.TestResult
}

type scopesInput struct {
	ID string `path:"id" doc:"Credential id"`
}

type scopesOutput struct {
	Body scopesResponse
}

type scopesResponse struct {
	CredentialID string       `json:"credential_id"`
	Scopes       []rbac.Scope `json:"scopes"`
}

type transferInput struct {
	Body transferRequest
}

type transferRequest struct {
	FromProjectID string `json:"from_project_id" minLength:"1" doc:"Source project"`
	ToProjectID   string `json:"to_project_id" minLength:"1" doc:"Destination project"`
}

type usableInput struct {
	WorkflowID string `query:"workflow_id" doc:"Workflow execution context"`
	ProjectID  string `query:"project_id" doc:"Project execution context"`
}

type usableOutput struct {
	Body usableResponse
}

type usableResponse struct {
	CredentialIDs []string `json:"credential_ids"`
}

type credentialResponse struct {
	credential.Credential
	Data credential.Data `json:"data,omitempty"`
}

type statusResponse struct {
	Status string `json:"status"`
}
