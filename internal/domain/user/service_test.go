package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"credvault/internal/domain/rbac"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Get(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*User, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("ValidToken", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, slog.Default())

		expected := &User{ID: "u1", Email: "alice@example.com", Role: rbac.GlobalMember}
		repo.On("FindByTokenHash", ctx, HashToken("secret-token")).Return(expected, nil)

		usr, err := svc.Authenticate(ctx, "secret-token")

		require.NoError(t, err)
		assert.Equal(t, "u1", usr.ID)
		repo.AssertExpectations(t)
	})

	t.Run("UnknownToken", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, slog.Default())

		repo.On("FindByTokenHash", ctx, mock.Anything).Return(nil, ErrNotFound)

		_, err := svc.Authenticate(ctx, "wrong")

		assert.ErrorIs(t, err, ErrInvalidAuth)
	})

	t.Run("EmptyToken", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, slog.Default())

		_, err := svc.Authenticate(ctx, "")

		assert.ErrorIs(t, err, ErrInvalidAuth)
		repo.AssertNotCalled(t, "FindByTokenHash")
	})
}

func TestUser_GlobalScopes(t *testing.T) {
	admin := &User{ID: "u1", Role: rbac.GlobalAdmin}
	member := &User{ID: "u2", Role: rbac.GlobalMember}

	assert.True(t, admin.HasGlobalScope(rbac.ScopeCredentialList))
	assert.False(t, member.HasGlobalScope(rbac.ScopeCredentialList))
	assert.False(t, member.HasGlobalScope(rbac.ScopeCredentialRead))
}

func TestHashToken(t *testing.T) {
	a := HashToken("token")
	b := HashToken("token")
	c := HashToken("other")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
