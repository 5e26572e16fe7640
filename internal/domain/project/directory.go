package project

import (
	"context"
)

// Directory resolves project memberships, ownership and the workflow→project
// association. Backed by postgres in production.
type Directory interface {
	Get(ctx context.Context, projectID string) (*Project, error)
	RelationsForUser(ctx context.Context, userID string) ([]Relation, error)

	// PersonalProjectFor returns the user's single personal project, or
	// ErrNoPersonalProject when the invariant is broken.
	PersonalProjectFor(ctx context.Context, userID string) (*Project, error)
	// PersonalProjectIDs returns the ids of every personal project. Feeds
	// the global-read bypass in access resolution.
	PersonalProjectIDs(ctx context.Context) ([]string, error)
	// Owner returns the user owning a project: the personalOwner member for
	// personal projects, the first admin for team projects.
	Owner(ctx context.Context, projectID string) (string, error)

	// WorkflowProjects returns the ids of the projects a workflow is
	// associated with.
	WorkflowProjects(ctx context.Context, workflowID string) ([]string, error)
	// WorkflowOwner returns the owner of the workflow's home project.
	WorkflowOwner(ctx context.Context, workflowID string) (string, error)
}
