package credential

import (
	"context"
	"errors"
	"fmt"
	"time"

	"credvault/internal/domain/project"
	"credvault/internal/domain/rbac"
	"credvault/internal/domain/user"
	"credvault/internal/utils/random"

	"golang.org/x/exp/slog"
)

// Servicer defines the credential operations exposed to the transport layer.
type Servicer interface {
	GetMany(ctx context.Context, usr *user.User, opts ListOptions) ([]ListItem, error)
	GetOne(ctx context.Context, usr *user.User, id string, includeDecrypted bool) (*Credential, Data, error)
	Create(ctx context.Context, usr *user.User, req CreateRequest) (*Credential, error)
	Update(ctx context.Context, usr *user.User, id string, req UpdateRequest) (*Credential, error)
	Delete(ctx context.Context, usr *user.User, id string) error
	Test(ctx context.Context, usr *user.User, typeName string, data Data) TestResult
	TransferAll(ctx context.Context, usr *user.User, fromProjectID, toProjectID string) error
	ScopesFor(ctx context.Context, usr *user.User, id string) ([]rbac.Scope, error)
	UsableInContext(ctx context.Context, usr *user.User, ref ContextRef) ([]string, error)
}

type Service struct {
	repo     Repository
	tx       TxRunner
	cipher   Cipher
	access   *Access
	redactor *Redactor
	transfer *Transfer
	projects project.Directory
	tester   Tester
	log      *slog.Logger
}

func NewService(
	repo Repository,
	tx TxRunner,
	cipher Cipher,
	access *Access,
	redactor *Redactor,
	transfer *Transfer,
	projects project.Directory,
	tester Tester,
	log *slog.Logger,
) Servicer {
	return &Service{
		repo:     repo,
		tx:       tx,
		cipher:   cipher,
		access:   access,
		redactor: redactor,
		transfer: transfer,
		projects: projects,
		tester:   tester,
		log:      log.With("component", "credential_service"),
	}
}

// GetMany lists credentials visible to the user. Holders of a global list
// scope see everything; everyone else sees only what their own memberships
// make readable. A filter naming another user's personal project is silently
// rewritten to the caller's own personal project.
func (s *Service) GetMany(ctx context.Context, usr *user.User, opts ListOptions) ([]ListItem, error) {
	if opts.ProjectID != "" {
		rewritten, err := s.rewritePersonalFilter(ctx, usr, opts.ProjectID)
		if err != nil {
			return nil, err
		}
		opts.ProjectID = rewritten
	}

	var (
		creds []Credential
		err   error
	)
	if usr.HasGlobalScope(rbac.ScopeCredentialList) {
		creds, err = s.listAll(ctx, opts.ProjectID)
	} else {
		creds, err = s.listReadable(ctx, usr, opts.ProjectID)
	}
	if err != nil {
		s.log.Error("failed to list credentials", "user_id", usr.ID, "error", err)
		return nil, fmt.Errorf("list credentials: %w", err)
	}

	return s.annotate(ctx, usr, creds, opts.IncludeScopes)
}

func (s *Service) listAll(ctx context.Context, projectID string) ([]Credential, error) {
	if projectID == "" {
		return s.repo.List(ctx)
	}
	ids, err := s.sharedCredentialIDs(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByIDs(ctx, ids)
}

func (s *Service) listReadable(ctx context.Context, usr *user.User, projectID string) ([]Credential, error) {
	ids, err := s.access.ReadableIDs(ctx, usr.ID, false)
	if err != nil {
		return nil, err
	}
	if projectID != "" {
		inProject, err := s.sharedCredentialIDs(ctx, projectID)
		if err != nil {
			return nil, err
		}
		ids = intersect(ids, inProject)
	}
	return s.repo.ListByIDs(ctx, ids)
}

func (s *Service) sharedCredentialIDs(ctx context.Context, projectID string) ([]string, error) {
	sharings, err := s.repo.SharingsForProjects(ctx, []string{projectID})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(sharings))
	for _, sh := range sharings {
		ids = append(ids, sh.CredentialID)
	}
	return ids, nil
}

// rewritePersonalFilter guards raw project-id filtering: collaborators must
// never be shown another user's personal credentials.
func (s *Service) rewritePersonalFilter(ctx context.Context, usr *user.User, projectID string) (string, error) {
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("resolve filter project: %w", err)
	}
	if !p.IsPersonal() {
		return projectID, nil
	}

	ownerID, err := s.projects.Owner(ctx, p.ID)
	if err != nil {
		return "", fmt.Errorf("resolve personal owner: %w", err)
	}
	if ownerID == usr.ID {
		return projectID, nil
	}

	own, err := s.projects.PersonalProjectFor(ctx, usr.ID)
	if err != nil {
		return "", fmt.Errorf("resolve caller personal project: %w", err)
	}
	return own.ID, nil
}

func (s *Service) annotate(ctx context.Context, usr *user.User, creds []Credential, includeScopes bool) ([]ListItem, error) {
	ids := make([]string, len(creds))
	for i, c := range creds {
		ids[i] = c.ID
	}

	var byCredential map[string][]Sharing
	if len(ids) > 0 {
		sharings, err := s.repo.SharingsForCredentials(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("load sharings: %w", err)
		}
		byCredential = make(map[string][]Sharing, len(ids))
		for _, sh := range sharings {
			byCredential[sh.CredentialID] = append(byCredential[sh.CredentialID], sh)
		}
	}

	projectCache := make(map[string]*project.Project)
	lookup := func(id string) (*project.Project, error) {
		if p, ok := projectCache[id]; ok {
			return p, nil
		}
		p, err := s.projects.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		projectCache[id] = p
		return p, nil
	}

	items := make([]ListItem, 0, len(creds))
	for _, c := range creds {
		c.Data = "" // the encrypted blob never leaves the service in listings
		item := ListItem{Credential: c}

		for _, sh := range byCredential[c.ID] {
			p, err := lookup(sh.ProjectID)
			if err != nil {
				if errors.Is(err, project.ErrNotFound) {
					continue
				}
				return nil, fmt.Errorf("resolve sharing project: %w", err)
			}
			if sh.IsOwner() {
				home := *p
				item.HomeProject = &home
			} else {
				item.SharedWith = append(item.SharedWith, *p)
			}
		}

		if includeScopes {
			scopes, err := s.access.ScopesFor(ctx, usr, c.ID)
			if err != nil {
				return nil, fmt.Errorf("resolve scopes: %w", err)
			}
			item.Scopes = scopes.Slice()
		}

		items = append(items, item)
	}

	return items, nil
}

// GetOne returns a credential and its payload. Without includeDecrypted the
// payload is redacted for display; includeDecrypted additionally requires the
// update scope.
func (s *Service) GetOne(ctx context.Context, usr *user.User, id string, includeDecrypted bool) (*Credential, Data, error) {
	scopes, err := s.access.ScopesFor(ctx, usr, id)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve scopes: %w", err)
	}
	if !scopes.Has(rbac.ScopeCredentialRead) {
		return nil, nil, ErrNotFound
	}
	if includeDecrypted && !scopes.Has(rbac.ScopeCredentialUpdate) {
		return nil, nil, ErrForbidden
	}

	cred, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		s.log.Error("failed to get credential", "credential_id", id, "error", err)
		return nil, nil, fmt.Errorf("get credential: %w", err)
	}

	data, err := s.cipher.Decrypt(cred.Data)
	if err != nil {
		// Possible data corruption or key mismatch; surfaced, never swallowed.
		s.log.Error("failed to decrypt credential", "credential_id", id, "error", err)
		return nil, nil, fmt.Errorf("decrypt credential %s: %w", id, err)
	}

	if !includeDecrypted {
		data = s.redactor.Redact(data, cred.Type)
	}

	out := *cred
	out.Data = ""
	return &out, data, nil
}

// Create validates, encrypts and persists a credential together with its
// owner sharing in one transaction.
func (s *Service) Create(ctx context.Context, usr *user.User, req CreateRequest) (*Credential, error) {
	if req.Name == "" || req.Type == "" || req.Data == nil {
		return nil, ErrInvalidData
	}

	projectID := req.ProjectID
	if projectID == "" {
		personal, err := s.projects.PersonalProjectFor(ctx, usr.ID)
		if err != nil {
			s.log.Error("no personal project", "user_id", usr.ID, "error", err)
			return nil, fmt.Errorf("resolve personal project: %w", err)
		}
		projectID = personal.ID
	} else {
		scopes, err := s.projectScopes(ctx, usr, projectID)
		if err != nil {
			return nil, err
		}
		if !scopes.Has(rbac.ScopeCredentialCreate) {
			return nil, ErrForbidden
		}
	}

	now := time.Now()
	cred := &Credential{
		ID:        random.ID(),
		Name:      req.Name,
		Type:      req.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}

	blob, err := s.cipher.Encrypt(req.Data, cred.ID, cred.Type)
	if err != nil {
		return nil, fmt.Errorf("encrypt credential: %w", err)
	}
	cred.Data = blob

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, cred); err != nil {
			return fmt.Errorf("create credential: %w", err)
		}
		sharing := &Sharing{
			CredentialID: cred.ID,
			ProjectID:    projectID,
			Role:         rbac.SharingOwner,
		}
		if err := s.repo.CreateSharing(ctx, sharing); err != nil {
			return fmt.Errorf("create owner sharing: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Error("failed to create credential", "user_id", usr.ID, "type", req.Type, "error", err)
		return nil, err
	}

	s.log.Info("credential created",
		"credential_id", cred.ID, "user_id", usr.ID, "type", cred.Type, "project_id", projectID)

	out := *cred
	out.Data = ""
	return &out, nil
}

// Update merges the possibly redacted submission with the saved payload,
// re-encrypts and persists. Stored OAuth token data survives unrelated field
// edits; it is only replaced when the caller submits genuinely new token data.
func (s *Service) Update(ctx context.Context, usr *user.User, id string, req UpdateRequest) (*Credential, error) {
	scopes, err := s.access.ScopesFor(ctx, usr, id)
	if err != nil {
		return nil, fmt.Errorf("resolve scopes: %w", err)
	}
	if !scopes.Has(rbac.ScopeCredentialRead) {
		return nil, ErrNotFound
	}
	if !scopes.Has(rbac.ScopeCredentialUpdate) {
		return nil, ErrForbidden
	}

	cred, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get credential for update: %w", err)
	}

	if req.Data != nil {
		saved, err := s.cipher.Decrypt(cred.Data)
		if err != nil {
			s.log.Error("failed to decrypt credential for update", "credential_id", id, "error", err)
			return nil, fmt.Errorf("decrypt credential %s: %w", id, err)
		}

		merged := Unredact(req.Data, saved)
		if token, ok := saved["oauthTokenData"]; ok {
			if _, submitted := merged["oauthTokenData"]; !submitted {
				merged["oauthTokenData"] = token
			}
		}

		blob, err := s.cipher.Encrypt(merged, cred.ID, cred.Type)
		if err != nil {
			return nil, fmt.Errorf("encrypt credential: %w", err)
		}
		cred.Data = blob
	}

	if req.Name != "" {
		cred.Name = req.Name
	}
	cred.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, cred); err != nil {
		s.log.Error("failed to update credential", "credential_id", id, "error", err)
		return nil, fmt.Errorf("update credential: %w", err)
	}

	s.log.Info("credential updated", "credential_id", id, "user_id", usr.ID)

	out := *cred
	out.Data = ""
	return &out, nil
}

// Delete removes a credential and cascades its sharing rows in one
// transaction.
func (s *Service) Delete(ctx context.Context, usr *user.User, id string) error {
	scopes, err := s.access.ScopesFor(ctx, usr, id)
	if err != nil {
		return fmt.Errorf("resolve scopes: %w", err)
	}
	if !scopes.Has(rbac.ScopeCredentialRead) {
		return ErrNotFound
	}
	if !scopes.Has(rbac.ScopeCredentialDelete) {
		return ErrForbidden
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteSharingsForCredential(ctx, id); err != nil {
			return fmt.Errorf("delete sharings: %w", err)
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete credential: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Error("failed to delete credential", "credential_id", id, "error", err)
		return err
	}

	s.log.Info("credential deleted", "credential_id", id, "user_id", usr.ID)
	return nil
}

// Test relays decrypted data to the external tester collaborator.
func (s *Service) Test(ctx context.Context, usr *user.User, typeName string, data Data) TestResult {
	s.log.Debug("credential test requested", "user_id", usr.ID, "type", typeName)
	return s.tester.Test(ctx, typeName, data)
}

// TransferAll moves all credentials from one project to another. The caller
// needs the move scope via the source project and the create scope via the
// destination.
func (s *Service) TransferAll(ctx context.Context, usr *user.User, fromProjectID, toProjectID string) error {
	if _, err := s.projects.Get(ctx, fromProjectID); err != nil {
		return s.projectLookupErr(err)
	}
	if _, err := s.projects.Get(ctx, toProjectID); err != nil {
		return s.projectLookupErr(err)
	}

	srcScopes, err := s.projectScopes(ctx, usr, fromProjectID)
	if err != nil {
		return err
	}
	if !srcScopes.Has(rbac.ScopeCredentialMove) {
		return ErrForbidden
	}

	dstScopes, err := s.projectScopes(ctx, usr, toProjectID)
	if err != nil {
		return err
	}
	if !dstScopes.Has(rbac.ScopeCredentialCreate) {
		return fmt.Errorf("%w: cannot create credentials in destination project", ErrBadRequest)
	}

	return s.transfer.All(ctx, fromProjectID, toProjectID)
}

// ScopesFor resolves the scopes the user holds over a credential.
func (s *Service) ScopesFor(ctx context.Context, usr *user.User, id string) ([]rbac.Scope, error) {
	scopes, err := s.access.ScopesFor(ctx, usr, id)
	if err != nil {
		return nil, fmt.Errorf("resolve scopes: %w", err)
	}
	return scopes.Slice(), nil
}

// UsableInContext returns the credential ids the user may use inside a
// workflow or project context.
func (s *Service) UsableInContext(ctx context.Context, usr *user.User, ref ContextRef) ([]string, error) {
	return s.access.UsableIDs(ctx, usr, ref)
}

// projectScopes merges the user's global scopes with those of the role held
// directly on the project, if any.
func (s *Service) projectScopes(ctx context.Context, usr *user.User, projectID string) (rbac.ScopeSet, error) {
	set := usr.GlobalScopes()

	relations, err := s.projects.RelationsForUser(ctx, usr.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve project relations: %w", err)
	}
	for _, rel := range relations {
		if rel.ProjectID == projectID {
			set.Merge(rbac.ScopesFor(rel.Role))
		}
	}
	return set, nil
}

func (s *Service) projectLookupErr(err error) error {
	if errors.Is(err, project.ErrNotFound) {
		return fmt.Errorf("%w: project does not exist", ErrBadRequest)
	}
	return fmt.Errorf("resolve project: %w", err)
}
