package user

import (
	"time"

	"credvault/internal/domain/rbac"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      rbac.Role `json:"role"`
	TokenHash string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// GlobalScopes returns the scopes granted by the user's global role.
func (u *User) GlobalScopes() rbac.ScopeSet {
	return rbac.ScopesFor(u.Role)
}

// HasGlobalScope reports whether the user's global role grants the scope
// regardless of any project membership.
func (u *User) HasGlobalScope(scope rbac.Scope) bool {
	return u.GlobalScopes().Has(scope)
}
