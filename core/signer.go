package core

import (
	"context"
	"time"
)

type (
	// Signer an identity allowed to vote on proposals of a vault
	Signer struct {
		ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
		CreatedAt time.Time `json:"created_at,omitempty"`
		VaultID   string    `sql:"size:36" json:"vault_id,omitempty"`
		Principal string    `sql:"size:128" json:"principal,omitempty"`
		Name      string    `sql:"size:64" json:"name,omitempty"`
	}

	// SignerStore signer store interface
	SignerStore interface {
		// List signers ordered as the vault lists them
		List(ctx context.Context, vaultID string) ([]*Signer, error)
		Save(ctx context.Context, signer *Signer) error
	}
)
