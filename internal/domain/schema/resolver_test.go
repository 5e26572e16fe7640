package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func newTestResolver(types ...*Type) *Resolver {
	return NewResolver(NewMemRegistry(types...), slog.Default())
}

func TestResolver_Flat(t *testing.T) {
	resolver := newTestResolver(&Type{
		Name: "httpBasicAuth",
		Properties: []Property{
			{Name: "user"},
			{Name: "password", IsPassword: true},
		},
	})

	props, err := resolver.Resolve("httpBasicAuth")
	require.NoError(t, err)
	require.Len(t, props, 2)
	assert.Equal(t, "user", props[0].Name)
	assert.True(t, props[1].IsPassword)
}

func TestResolver_ExtendsOverride(t *testing.T) {
	resolver := newTestResolver(
		&Type{
			Name: "oAuth2Api",
			Properties: []Property{
				{Name: "clientId"},
				{Name: "x", IsPassword: true},
				{Name: "clientSecret", IsPassword: true},
			},
		},
		&Type{
			Name:    "googleOAuth2Api",
			Extends: []string{"oAuth2Api"},
			Properties: []Property{
				// Redeclared as non-sensitive at the more specific level
				{Name: "x", IsPassword: false},
				{Name: "scope"},
			},
		},
	)

	props, err := resolver.Resolve("googleOAuth2Api")
	require.NoError(t, err)

	// Ordering by point of first appearance, override in place
	names := make([]string, len(props))
	for i, p := range props {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"clientId", "x", "clientSecret", "scope"}, names)
	assert.False(t, props[1].IsPassword, "override must win over inherited descriptor")
}

func TestResolver_DeepChain(t *testing.T) {
	resolver := newTestResolver(
		&Type{Name: "base", Properties: []Property{{Name: "host"}}},
		&Type{Name: "mid", Extends: []string{"base"}, Properties: []Property{{Name: "token", IsPassword: true}}},
		&Type{Name: "leaf", Extends: []string{"mid"}, Properties: []Property{{Name: "region"}}},
	)

	props, err := resolver.Resolve("leaf")
	require.NoError(t, err)
	require.Len(t, props, 3)
	assert.Equal(t, "host", props[0].Name)
	assert.Equal(t, "token", props[1].Name)
	assert.Equal(t, "region", props[2].Name)

	// Memoized second call returns the same flattened schema
	again, err := resolver.Resolve("leaf")
	require.NoError(t, err)
	assert.Equal(t, props, again)
}

func TestResolver_UnknownType(t *testing.T) {
	resolver := newTestResolver()

	_, err := resolver.Resolve("removedNodeApi")
	assert.ErrorIs(t, err, ErrTypeNotFound)
}

func TestResolver_CyclicExtends(t *testing.T) {
	resolver := newTestResolver(
		&Type{Name: "a", Extends: []string{"b"}},
		&Type{Name: "b", Extends: []string{"a"}},
	)

	_, err := resolver.Resolve("a")
	assert.ErrorIs(t, err, ErrCyclicExtends)
}

func TestMemRegistry_Get(t *testing.T) {
	reg := NewMemRegistry(&Type{Name: "known"})

	_, err := reg.Get("known")
	assert.NoError(t, err)

	_, err = reg.Get("unknown")
	assert.ErrorIs(t, err, ErrTypeNotFound)
}
