package rbac

// Role classifies a grant holder. Three families share the type: global roles
// attached to a user, project roles attached to a membership and sharing roles
// attached to a credential-project edge.
type Role string

const (
	GlobalOwner  Role = "global:owner"
	GlobalAdmin  Role = "global:admin"
	GlobalMember Role = "global:member"

	ProjectPersonalOwner Role = "project:personalOwner"
	ProjectAdmin         Role = "project:admin"
	ProjectEditor        Role = "project:editor"
	ProjectViewer        Role = "project:viewer"

	SharingOwner  Role = "credential:owner"
	SharingEditor Role = "credential:editor"
	SharingUser   Role = "credential:user"
)

// roleScopes maps each role onto the credential scopes it grants. The tables
// are read-only after init and therefore need no synchronization.
var roleScopes = map[Role][]Scope{
	GlobalOwner: {
		ScopeCredentialCreate, ScopeCredentialRead, ScopeCredentialUpdate,
		ScopeCredentialDelete, ScopeCredentialList, ScopeCredentialShare,
		ScopeCredentialMove,
	},
	GlobalAdmin: {
		ScopeCredentialCreate, ScopeCredentialRead, ScopeCredentialUpdate,
		ScopeCredentialDelete, ScopeCredentialList, ScopeCredentialShare,
		ScopeCredentialMove,
	},
	GlobalMember: {},

	ProjectPersonalOwner: {
		ScopeCredentialCreate, ScopeCredentialRead, ScopeCredentialUpdate,
		ScopeCredentialDelete, ScopeCredentialList, ScopeCredentialShare,
		ScopeCredentialMove,
	},
	ProjectAdmin: {
		ScopeCredentialCreate, ScopeCredentialRead, ScopeCredentialUpdate,
		ScopeCredentialDelete, ScopeCredentialList, ScopeCredentialShare,
		ScopeCredentialMove,
	},
	ProjectEditor: {
		ScopeCredentialRead, ScopeCredentialUpdate, ScopeCredentialList,
	},
	ProjectViewer: {
		ScopeCredentialRead, ScopeCredentialList,
	},

	SharingOwner: {
		ScopeCredentialRead, ScopeCredentialUpdate, ScopeCredentialDelete,
		ScopeCredentialShare, ScopeCredentialMove,
	},
	SharingEditor: {
		ScopeCredentialRead, ScopeCredentialUpdate,
	},
	SharingUser: {
		ScopeCredentialRead,
	},
}

// ScopesFor returns the scopes granted by a role. Unknown roles grant nothing.
func ScopesFor(role Role) ScopeSet {
	return NewScopeSet(roleScopes[role]...)
}

// CombineScopes merges the scopes of all given roles into one set.
func CombineScopes(roles ...Role) ScopeSet {
	set := NewScopeSet()
	for _, role := range roles {
		set.Add(roleScopes[role]...)
	}
	return set
}
