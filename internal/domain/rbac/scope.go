package rbac

import "sort"

// Scope is an atomic permission grant, either global or resource-bound.
type Scope string

const (
	ScopeCredentialCreate Scope = "credential:create"
	ScopeCredentialRead   Scope = "credential:read"
	ScopeCredentialUpdate Scope = "credential:update"
	ScopeCredentialDelete Scope = "credential:delete"
	ScopeCredentialList   Scope = "credential:list"
	ScopeCredentialShare  Scope = "credential:share"
	ScopeCredentialMove   Scope = "credential:move"
)

// ScopeSet is a deduplicated collection of scopes.
type ScopeSet map[Scope]struct{}

func NewScopeSet(scopes ...Scope) ScopeSet {
	set := make(ScopeSet, len(scopes))
	for _, s := range scopes {
		set[s] = struct{}{}
	}
	return set
}

func (s ScopeSet) Has(scope Scope) bool {
	_, ok := s[scope]
	return ok
}

func (s ScopeSet) Add(scopes ...Scope) {
	for _, scope := range scopes {
		s[scope] = struct{}{}
	}
}

// Merge adds every scope of other into s and returns s.
func (s ScopeSet) Merge(other ScopeSet) ScopeSet {
	for scope := range other {
		s[scope] = struct{}{}
	}
	return s
}

// Intersect returns a new set holding the scopes present in both s and other.
func (s ScopeSet) Intersect(other ScopeSet) ScopeSet {
	out := NewScopeSet()
	for scope := range s {
		if other.Has(scope) {
			out[scope] = struct{}{}
		}
	}
	return out
}

// Slice returns the scopes sorted, for stable serialization.
func (s ScopeSet) Slice() []Scope {
	out := make([]Scope, 0, len(s))
	for scope := range s {
		out = append(out, scope)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
