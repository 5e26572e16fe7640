package credential

import (
	"context"
)

// Repository persists credentials and their sharings. Implementations honor a
// transaction carried in the context by a TxRunner, so multi-row mutations
// compose into one atomic write.
type Repository interface {
	Create(ctx context.Context, cred *Credential) error
	Get(ctx context.Context, id string) (*Credential, error)
	Update(ctx context.Context, cred *Credential) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Credential, error)
	ListByIDs(ctx context.Context, ids []string) ([]Credential, error)

	CreateSharing(ctx context.Context, sharing *Sharing) error
	DeleteSharing(ctx context.Context, credentialID, projectID string) error
	DeleteSharingsForCredential(ctx context.Context, credentialID string) error
	DeleteSharingsForProject(ctx context.Context, projectID string) error
	SharingsForCredential(ctx context.Context, credentialID string) ([]Sharing, error)
	SharingsForCredentials(ctx context.Context, credentialIDs []string) ([]Sharing, error)
	SharingsForProjects(ctx context.Context, projectIDs []string) ([]Sharing, error)
	// ReassignSharingProject moves one sharing row to another project,
	// keeping its role.
	ReassignSharingProject(ctx context.Context, credentialID, fromProjectID, toProjectID string) error
}

// TxRunner scopes a function to a database transaction. The transaction rides
// in the derived context; any error rolls the whole unit back.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
	// WithinSerializableTx is used where a cross-row invariant must hold
	// under concurrency, such as ownership transfer.
	WithinSerializableTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Cipher encrypts and decrypts credential payloads. The credential id and
// type are bound into the blob so a blob cannot be replayed onto another
// credential.
type Cipher interface {
	Encrypt(data Data, credentialID, typeName string) (string, error)
	Decrypt(blob string) (Data, error)
}
