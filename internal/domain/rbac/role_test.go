package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopesFor(t *testing.T) {
	assert.True(t, ScopesFor(GlobalAdmin).Has(ScopeCredentialList))
	assert.True(t, ScopesFor(SharingOwner).Has(ScopeCredentialMove))
	assert.False(t, ScopesFor(SharingUser).Has(ScopeCredentialUpdate))
	assert.False(t, ScopesFor(GlobalMember).Has(ScopeCredentialRead))

	// Unknown role grants nothing
	assert.Empty(t, ScopesFor(Role("bogus")))
}

func TestCombineScopes(t *testing.T) {
	set := CombineScopes(ProjectViewer, SharingEditor)

	assert.True(t, set.Has(ScopeCredentialRead))
	assert.True(t, set.Has(ScopeCredentialUpdate))
	assert.True(t, set.Has(ScopeCredentialList))
	assert.False(t, set.Has(ScopeCredentialDelete))
}

func TestScopeSet_MergeAndSlice(t *testing.T) {
	a := NewScopeSet(ScopeCredentialRead, ScopeCredentialUpdate)
	b := NewScopeSet(ScopeCredentialRead, ScopeCredentialDelete)

	merged := a.Merge(b)
	assert.Len(t, merged, 3)

	// Slice is sorted and deduplicated
	assert.Equal(t, []Scope{
		ScopeCredentialDelete, ScopeCredentialRead, ScopeCredentialUpdate,
	}, merged.Slice())
}
