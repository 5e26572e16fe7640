package credential

import (
	"context"
	"fmt"

	"credvault/internal/domain/project"
	"credvault/internal/domain/rbac"
	"credvault/internal/domain/user"

	"golang.org/x/exp/slog"
)

// ContextRef identifies the execution context a credential is used in.
// Exactly one of WorkflowID or ProjectID is set.
type ContextRef struct {
	WorkflowID string
	ProjectID  string
}

// Access computes which credentials are usable in a context and which scopes
// a user holds over a credential.
type Access struct {
	repo     Repository
	projects project.Directory
	users    user.Repository
	log      *slog.Logger
}

func NewAccess(repo Repository, projects project.Directory, users user.Repository, log *slog.Logger) *Access {
	return &Access{
		repo:     repo,
		projects: projects,
		users:    users,
		log:      log.With("component", "credential_access"),
	}
}

// UsableIDs returns the credential ids the user may use in the given context:
// the intersection of the user's directly readable set and the set reachable
// by the context's owning user. The two-sided check keeps a shared workflow
// from laundering credentials its owner cannot read, and vice versa.
func (a *Access) UsableIDs(ctx context.Context, usr *user.User, ref ContextRef) ([]string, error) {
	userIDs, err := a.ReadableIDs(ctx, usr.ID, usr.HasGlobalScope(rbac.ScopeCredentialRead))
	if err != nil {
		return nil, fmt.Errorf("resolve user-readable credentials: %w", err)
	}

	var (
		contextProjects []string
		ownerID         string
	)
	switch {
	case ref.WorkflowID != "":
		contextProjects, err = a.projects.WorkflowProjects(ctx, ref.WorkflowID)
		if err != nil {
			return nil, fmt.Errorf("resolve workflow projects: %w", err)
		}
		ownerID, err = a.projects.WorkflowOwner(ctx, ref.WorkflowID)
		if err != nil {
			return nil, fmt.Errorf("resolve workflow owner: %w", err)
		}
	case ref.ProjectID != "":
		contextProjects = []string{ref.ProjectID}
		ownerID, err = a.projects.Owner(ctx, ref.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("resolve project owner: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: context requires a workflow or project id", ErrBadRequest)
	}

	owner, err := a.users.Get(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("resolve context owner: %w", err)
	}

	contextIDs, err := a.reachableIDs(ctx, contextProjects, owner.HasGlobalScope(rbac.ScopeCredentialRead))
	if err != nil {
		return nil, fmt.Errorf("resolve context-reachable credentials: %w", err)
	}

	return intersect(userIDs, contextIDs), nil
}

// ReadableIDs returns the ids the user can read through project memberships
// whose role grants credential:read. With the global bypass every credential
// shared into any personal project is included as well.
func (a *Access) ReadableIDs(ctx context.Context, userID string, globalRead bool) ([]string, error) {
	relations, err := a.projects.RelationsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve project relations: %w", err)
	}

	var projectIDs []string
	for _, rel := range relations {
		if rbac.ScopesFor(rel.Role).Has(rbac.ScopeCredentialRead) {
			projectIDs = append(projectIDs, rel.ProjectID)
		}
	}

	return a.reachableIDs(ctx, projectIDs, globalRead)
}

// reachableIDs collects the credential ids shared into the given projects,
// extended with every personal-project credential when the global bypass
// applies.
func (a *Access) reachableIDs(ctx context.Context, projectIDs []string, globalRead bool) ([]string, error) {
	if globalRead {
		personal, err := a.projects.PersonalProjectIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve personal projects: %w", err)
		}
		projectIDs = append(projectIDs, personal...)
	}
	if len(projectIDs) == 0 {
		return nil, nil
	}

	sharings, err := a.repo.SharingsForProjects(ctx, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve sharings: %w", err)
	}

	seen := make(map[string]bool, len(sharings))
	var ids []string
	for _, s := range sharings {
		if !seen[s.CredentialID] {
			seen[s.CredentialID] = true
			ids = append(ids, s.CredentialID)
		}
	}
	return ids, nil
}

// ScopesFor merges the user's global scopes with the resource-level scopes
// derived from sharings held via the user's project memberships. A sharing
// contributes the intersection of its role's scopes and the membership
// role's scopes, so a viewer never inherits owner rights through the team.
func (a *Access) ScopesFor(ctx context.Context, usr *user.User, credentialID string) (rbac.ScopeSet, error) {
	set := usr.GlobalScopes()

	relations, err := a.projects.RelationsForUser(ctx, usr.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve project relations: %w", err)
	}
	roleByProject := make(map[string]rbac.Role, len(relations))
	for _, rel := range relations {
		roleByProject[rel.ProjectID] = rel.Role
	}

	sharings, err := a.repo.SharingsForCredential(ctx, credentialID)
	if err != nil {
		return nil, fmt.Errorf("resolve sharings: %w", err)
	}
	for _, s := range sharings {
		memberRole, ok := roleByProject[s.ProjectID]
		if !ok {
			continue
		}
		set.Merge(rbac.ScopesFor(s.Role).Intersect(rbac.ScopesFor(memberRole)))
	}

	return set, nil
}

func intersect(a, b []string) []string {
	inA := make(map[string]bool, len(a))
	for _, id := range a {
		inA[id] = true
	}
	var out []string
	for _, id := range b {
		if inA[id] {
			out = append(out, id)
			inA[id] = false
		}
	}
	return out
}
