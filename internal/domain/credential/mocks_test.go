package credential

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"credvault/internal/domain/project"
	"credvault/internal/domain/user"

	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the Repository interface.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, cred *Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}

func (m *MockRepository) Get(ctx context.Context, id string) (*Credential, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Credential), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, cred *Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context) ([]Credential, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Credential), args.Error(1)
}

func (m *MockRepository) ListByIDs(ctx context.Context, ids []string) ([]Credential, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Credential), args.Error(1)
}

func (m *MockRepository) CreateSharing(ctx context.Context, sharing *Sharing) error {
	args := m.Called(ctx, sharing)
	return args.Error(0)
}

func (m *MockRepository) DeleteSharing(ctx context.Context, credentialID, projectID string) error {
	args := m.Called(ctx, credentialID, projectID)
	return args.Error(0)
}

func (m *MockRepository) DeleteSharingsForCredential(ctx context.Context, credentialID string) error {
	args := m.Called(ctx, credentialID)
	return args.Error(0)
}

func (m *MockRepository) DeleteSharingsForProject(ctx context.Context, projectID string) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

func (m *MockRepository) SharingsForCredential(ctx context.Context, credentialID string) ([]Sharing, error) {
	args := m.Called(ctx, credentialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Sharing), args.Error(1)
}

func (m *MockRepository) SharingsForCredentials(ctx context.Context, credentialIDs []string) ([]Sharing, error) {
	args := m.Called(ctx, credentialIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Sharing), args.Error(1)
}

func (m *MockRepository) SharingsForProjects(ctx context.Context, projectIDs []string) ([]Sharing, error) {
	args := m.Called(ctx, projectIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Sharing), args.Error(1)
}

func (m *MockRepository) ReassignSharingProject(ctx context.Context, credentialID, fromProjectID, toProjectID string) error {
	args := m.Called(ctx, credentialID, fromProjectID, toProjectID)
	return args.Error(0)
}

// MockDirectory is a mock implementation of project.Directory.
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) Get(ctx context.Context, projectID string) (*project.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockDirectory) RelationsForUser(ctx context.Context, userID string) ([]project.Relation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]project.Relation), args.Error(1)
}

func (m *MockDirectory) PersonalProjectFor(ctx context.Context, userID string) (*project.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockDirectory) PersonalProjectIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDirectory) Owner(ctx context.Context, projectID string) (string, error) {
	args := m.Called(ctx, projectID)
	return args.String(0), args.Error(1)
}

func (m *MockDirectory) WorkflowProjects(ctx context.Context, workflowID string) ([]string, error) {
	args := m.Called(ctx, workflowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDirectory) WorkflowOwner(ctx context.Context, workflowID string) (string, error) {
	args := m.Called(ctx, workflowID)
	return args.String(0), args.Error(1)
}

// MockUserRepository is a mock implementation of user.Repository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*user.User, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

// stubTx runs the unit directly; transactional behavior is covered by the
// postgres layer.
type stubTx struct{}

func (stubTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (stubTx) WithinSerializableTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeCipher is a reversible stand-in: the blob is the JSON payload with a
// prefix, so tests can assert on encrypted writes and round-trips.
type fakeCipher struct{}

func (fakeCipher) Encrypt(data Data, credentialID, typeName string) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return "enc:" + string(raw), nil
}

func (fakeCipher) Decrypt(blob string) (Data, error) {
	if !strings.HasPrefix(blob, "enc:") {
		return nil, fmt.Errorf("bad blob")
	}
	var data Data
	if err := json.Unmarshal([]byte(blob[4:]), &data); err != nil {
		return nil, err
	}
	return data, nil
}
