package views

import (
	"time"

	"cosign/core"
	"cosign/pkg/number"

	"github.com/shopspring/decimal"
)

type (
	Signer struct {
		Principal string `json:"principal"`
		Name      string `json:"name,omitempty"`
	}

	Vault struct {
		ID        string          `json:"id"`
		CreatedAt time.Time       `json:"created_at"`
		Name      string          `json:"name"`
		Balance   decimal.Decimal `json:"balance"`
		Decimals  int32           `json:"decimals"`
		Threshold int             `json:"threshold"`
		Signers   []Signer        `json:"signers"`
	}
)

func SignerViews(signers []*core.Signer) []Signer {
	items := make([]Signer, len(signers))
	for i, s := range signers {
		items[i] = Signer{
			Principal: s.Principal,
			Name:      s.Name,
		}
	}

	return items
}

// VaultView signers is optional, principals of the vault are used without it
func VaultView(v *core.Vault, signers []*core.Signer) Vault {
	view := Vault{
		ID:        v.ID,
		CreatedAt: v.CreatedAt,
		Name:      v.Name,
		Balance:   number.FromMinor(v.Balance, v.Decimals),
		Decimals:  v.Decimals,
		Threshold: v.EffectiveThreshold(),
	}

	if signers != nil {
		view.Signers = SignerViews(signers)
		return view
	}

	view.Signers = make([]Signer, len(v.Signers))
	for i, p := range v.Signers {
		view.Signers[i] = Signer{Principal: p}
	}

	return view
}

func VaultViews(vaults []*core.Vault) []Vault {
	items := make([]Vault, len(vaults))
	for i, v := range vaults {
		items[i] = VaultView(v, nil)
	}

	return items
}
