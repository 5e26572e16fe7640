package credential

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"
)

// Transfer atomically moves ownership and shares of all credentials from one
// project to another. The whole move runs in a serializable transaction: the
// single-owner invariant is a cross-row constraint, so a partially applied
// transfer must never commit or be observed.
type Transfer struct {
	repo Repository
	tx   TxRunner
	log  *slog.Logger
}

func NewTransfer(repo Repository, tx TxRunner, log *slog.Logger) *Transfer {
	return &Transfer{
		repo: repo,
		tx:   tx,
		log:  log.With("component", "credential_transfer"),
	}
}

// All moves every sharing of fromProjectID into toProjectID.
//
// Owner sharings are reassigned and overwrite any relation the destination
// already holds on the same credential, because ownership is exclusive.
// Non-owner sharings are copied only where the destination has no relation
// to the credential yet; an existing relation is never clobbered.
func (t *Transfer) All(ctx context.Context, fromProjectID, toProjectID string) error {
	if fromProjectID == toProjectID {
		return fmt.Errorf("%w: source and destination projects are identical", ErrBadRequest)
	}

	err := t.tx.WithinSerializableTx(ctx, func(ctx context.Context) error {
		fromRows, err := t.repo.SharingsForProjects(ctx, []string{fromProjectID})
		if err != nil {
			return fmt.Errorf("load source sharings: %w", err)
		}
		toRows, err := t.repo.SharingsForProjects(ctx, []string{toProjectID})
		if err != nil {
			return fmt.Errorf("load destination sharings: %w", err)
		}

		destHas := make(map[string]bool, len(toRows))
		for _, s := range toRows {
			destHas[s.CredentialID] = true
		}

		for _, s := range fromRows {
			if !s.IsOwner() {
				continue
			}
			if destHas[s.CredentialID] {
				if err := t.repo.DeleteSharing(ctx, s.CredentialID, toProjectID); err != nil {
					return fmt.Errorf("drop destination relation: %w", err)
				}
			}
			if err := t.repo.ReassignSharingProject(ctx, s.CredentialID, fromProjectID, toProjectID); err != nil {
				return fmt.Errorf("reassign owner sharing: %w", err)
			}
		}

		// Remaining source rows are obsolete either way: owners moved above,
		// non-owners are re-created below where the destination lacks them.
		if err := t.repo.DeleteSharingsForProject(ctx, fromProjectID); err != nil {
			return fmt.Errorf("delete source sharings: %w", err)
		}

		for _, s := range fromRows {
			if s.IsOwner() || destHas[s.CredentialID] {
				continue
			}
			err := t.repo.CreateSharing(ctx, &Sharing{
				CredentialID: s.CredentialID,
				ProjectID:    toProjectID,
				Role:         s.Role,
			})
			if err != nil {
				return fmt.Errorf("copy sharing: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		t.log.Error("credential transfer failed",
			"from_project", fromProjectID, "to_project", toProjectID, "error", err)
		return fmt.Errorf("transfer credentials: %w", err)
	}

	t.log.Info("credentials transferred",
		"from_project", fromProjectID, "to_project", toProjectID)
	return nil
}
