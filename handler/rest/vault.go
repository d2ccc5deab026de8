package rest

import (
	"net/http"

	"cosign/core"
	"cosign/handler/param"
	"cosign/handler/render"
	"cosign/handler/views"
	"cosign/pkg/number"

	"github.com/shopspring/decimal"
)

func handleVaults(vaults core.VaultStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := vaults.List(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.VaultViews(list))
	}
}

func handleCreateVault(walletz core.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			Name      string `json:"name" valid:"required"`
			Threshold uint8  `json:"threshold"`
			Signers   []struct {
				Principal string `json:"principal"`
				Name      string `json:"name"`
			} `json:"signers"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		signers := make([]*core.Signer, 0, len(body.Signers))
		for _, s := range body.Signers {
			signers = append(signers, &core.Signer{
				Principal: s.Principal,
				Name:      s.Name,
			})
		}

		vault, err := walletz.CreateVault(ctx, body.Name, body.Threshold, signers)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.VaultView(vault, signers))
	}
}

func handleVault(vaults core.VaultStore, signers core.SignerStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		vault, err := vaults.Find(ctx, param.String(r, "vault_id"))
		if err != nil {
			render.Error(w, err)
			return
		}

		list, err := signers.List(ctx, vault.ID)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.VaultView(vault, list))
	}
}

func handleSigners(signers core.SignerStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := signers.List(r.Context(), param.String(r, "vault_id"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.SignerViews(list))
	}
}

func handleDeposit(vaults core.VaultStore, walletz core.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			Amount decimal.Decimal `json:"amount"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		vault, err := vaults.Find(ctx, param.String(r, "vault_id"))
		if err != nil {
			render.Error(w, err)
			return
		}

		amount, err := number.ToMinor(body.Amount, vault.Decimals)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		vault, err = walletz.Deposit(ctx, vault.ID, amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.VaultView(vault, nil))
	}
}

func handleRefresh(walletz core.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := walletz.Refresh(r.Context(), param.String(r, "vault_id")); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Done)
	}
}

func handleInvite(walletz core.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			Principal string `json:"principal"`
			Name      string `json:"name"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		p, err := walletz.InviteSigner(ctx, param.String(r, "vault_id"), body.Principal, body.Name)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"id":       p.ID,
			"trace_id": p.TraceID,
		})
	}
}
