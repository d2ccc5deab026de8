package core

import (
	"context"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/lib/pq"
)

type (
	// Vault a multi-signature account
	Vault struct {
		ID        string         `sql:"size:36;PRIMARY_KEY" json:"id,omitempty"`
		CreatedAt time.Time      `json:"created_at,omitempty"`
		UpdatedAt time.Time      `json:"updated_at,omitempty"`
		Version   int64          `json:"version,omitempty"`
		Name      string         `sql:"size:64" json:"name,omitempty"`
		Balance   int64          `json:"balance"`
		Decimals  int32          `json:"decimals"`
		Threshold uint8          `json:"threshold"`
		Signers   pq.StringArray `sql:"type:varchar(2048)" json:"signers,omitempty"`
	}

	// VaultStore vault store interface
	VaultStore interface {
		List(ctx context.Context) ([]*Vault, error)
		// Find returns ErrVaultNotFound if no vault matches id
		Find(ctx context.Context, id string) (*Vault, error)
		Create(ctx context.Context, vault *Vault) error
		Update(ctx context.Context, vault *Vault) error
	}

	// VaultCache drops cached vault snapshots
	VaultCache interface {
		Forget(id string)
	}
)

// SignerCount number of signers
func (v *Vault) SignerCount() int {
	return len(v.Signers)
}

// IsSigner check if principal is one of the signers
func (v *Vault) IsSigner(principal string) bool {
	if principal == "" {
		return false
	}

	return govalidator.IsIn(principal, v.Signers...)
}

// EffectiveThreshold threshold clamped to the current signer count
func (v *Vault) EffectiveThreshold() int {
	return ClampThreshold(int(v.Threshold), v.SignerCount())
}

// Clone deep copy
func (v *Vault) Clone() *Vault {
	c := *v
	c.Signers = append(pq.StringArray(nil), v.Signers...)
	return &c
}
