package credential

import (
	"context"
	"testing"

	"credvault/internal/domain/project"
	"credvault/internal/domain/rbac"
	"credvault/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func newTestAccess() (*Access, *MockRepository, *MockDirectory, *MockUserRepository) {
	repo := new(MockRepository)
	dir := new(MockDirectory)
	users := new(MockUserRepository)
	return NewAccess(repo, dir, users, slog.Default()), repo, dir, users
}

func member(id string) *user.User {
	return &user.User{ID: id, Role: rbac.GlobalMember}
}

func TestAccess_UsableIDs_Intersection(t *testing.T) {
	access, repo, dir, users := newTestAccess()

	// Caller reads c1 and c2 through project p1.
	dir.On("RelationsForUser", mock.Anything, "u1").
		Return([]project.Relation{{ProjectID: "p1", UserID: "u1", Role: rbac.ProjectEditor}}, nil)
	repo.On("SharingsForProjects", mock.Anything, []string{"p1"}).
		Return([]Sharing{
			{CredentialID: "c1", ProjectID: "p1", Role: rbac.SharingUser},
			{CredentialID: "c2", ProjectID: "p1", Role: rbac.SharingUser},
		}, nil)

	// The workflow's home project p2 reaches c2 and c3.
	dir.On("WorkflowProjects", mock.Anything, "w1").Return([]string{"p2"}, nil)
	dir.On("WorkflowOwner", mock.Anything, "w1").Return("u2", nil)
	users.On("Get", mock.Anything, "u2").Return(member("u2"), nil)
	repo.On("SharingsForProjects", mock.Anything, []string{"p2"}).
		Return([]Sharing{
			{CredentialID: "c2", ProjectID: "p2", Role: rbac.SharingOwner},
			{CredentialID: "c3", ProjectID: "p2", Role: rbac.SharingOwner},
		}, nil)

	ids, err := access.UsableIDs(context.Background(), member("u1"), ContextRef{WorkflowID: "w1"})
	require.NoError(t, err)

	// Only the credential both sides can reach survives.
	assert.Equal(t, []string{"c2"}, ids)

	repo.AssertExpectations(t)
	dir.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestAccess_UsableIDs_ProjectContext(t *testing.T) {
	access, repo, dir, users := newTestAccess()

	dir.On("RelationsForUser", mock.Anything, "u1").
		Return([]project.Relation{{ProjectID: "p9", UserID: "u1", Role: rbac.ProjectViewer}}, nil)
	repo.On("SharingsForProjects", mock.Anything, []string{"p9"}).
		Return([]Sharing{{CredentialID: "c1", ProjectID: "p9", Role: rbac.SharingUser}}, nil)

	dir.On("Owner", mock.Anything, "p9").Return("u1", nil)
	users.On("Get", mock.Anything, "u1").Return(member("u1"), nil)

	ids, err := access.UsableIDs(context.Background(), member("u1"), ContextRef{ProjectID: "p9"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, ids)
}

func TestAccess_UsableIDs_MissingContext(t *testing.T) {
	access, _, _, _ := newTestAccess()

	_, err := access.UsableIDs(context.Background(), member("u1"), ContextRef{})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestAccess_ReadableIDs_GlobalBypass(t *testing.T) {
	access, repo, dir, _ := newTestAccess()

	// No memberships at all, but the global read bypass pulls in every
	// personal-project credential.
	dir.On("RelationsForUser", mock.Anything, "admin").Return([]project.Relation{}, nil)
	dir.On("PersonalProjectIDs", mock.Anything).Return([]string{"pp1", "pp2"}, nil)
	repo.On("SharingsForProjects", mock.Anything, []string{"pp1", "pp2"}).
		Return([]Sharing{
			{CredentialID: "c7", ProjectID: "pp1", Role: rbac.SharingOwner},
			{CredentialID: "c8", ProjectID: "pp2", Role: rbac.SharingOwner},
			{CredentialID: "c7", ProjectID: "pp2", Role: rbac.SharingUser},
		}, nil)

	ids, err := access.ReadableIDs(context.Background(), "admin", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"c7", "c8"}, ids) // deduplicated

	repo.AssertExpectations(t)
	dir.AssertExpectations(t)
}

func TestAccess_ReadableIDs_NoMemberships(t *testing.T) {
	access, _, dir, _ := newTestAccess()

	dir.On("RelationsForUser", mock.Anything, "u1").Return([]project.Relation{}, nil)

	ids, err := access.ReadableIDs(context.Background(), "u1", false)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestAccess_ScopesFor_MembershipLimitsSharing(t *testing.T) {
	access, repo, dir, _ := newTestAccess()

	// Viewer membership in p1; the team holds the owner sharing, but the
	// viewer only inherits the overlap.
	dir.On("RelationsForUser", mock.Anything, "u1").
		Return([]project.Relation{{ProjectID: "p1", UserID: "u1", Role: rbac.ProjectViewer}}, nil)
	repo.On("SharingsForCredential", mock.Anything, "c1").
		Return([]Sharing{
			{CredentialID: "c1", ProjectID: "p1", Role: rbac.SharingOwner},
			{CredentialID: "c1", ProjectID: "p2", Role: rbac.SharingEditor}, // not a member
		}, nil)

	scopes, err := access.ScopesFor(context.Background(), member("u1"), "c1")
	require.NoError(t, err)

	assert.True(t, scopes.Has(rbac.ScopeCredentialRead))
	assert.False(t, scopes.Has(rbac.ScopeCredentialUpdate))
	assert.False(t, scopes.Has(rbac.ScopeCredentialDelete))
}

func TestAccess_ScopesFor_GlobalAdmin(t *testing.T) {
	access, repo, dir, _ := newTestAccess()

	dir.On("RelationsForUser", mock.Anything, "root").Return([]project.Relation{}, nil)
	repo.On("SharingsForCredential", mock.Anything, "c1").Return([]Sharing{}, nil)

	admin := &user.User{ID: "root", Role: rbac.GlobalAdmin}
	scopes, err := access.ScopesFor(context.Background(), admin, "c1")
	require.NoError(t, err)

	assert.True(t, scopes.Has(rbac.ScopeCredentialRead))
	assert.True(t, scopes.Has(rbac.ScopeCredentialDelete))
	assert.True(t, scopes.Has(rbac.ScopeCredentialMove))
}
