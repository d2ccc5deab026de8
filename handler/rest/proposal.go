package rest

import (
	"context"
	"net/http"

	"cosign/core"
	"cosign/handler/param"
	"cosign/handler/render"
	"cosign/handler/views"
	"cosign/pkg/number"

	"github.com/shopspring/decimal"
)

func proposalView(ctx context.Context, decisionz core.DecisionService, vault *core.Vault, p *core.Proposal) (views.Proposal, error) {
	tally, err := decisionz.Tally(ctx, vault, p)
	if err != nil {
		return views.Proposal{}, err
	}

	return views.ProposalView(vault, p, tally), nil
}

func handleProposals(vaults core.VaultStore, proposals core.ProposalStore, decisionz core.DecisionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		vault, err := vaults.Find(ctx, param.String(r, "vault_id"))
		if err != nil {
			render.Error(w, err)
			return
		}

		list, err := proposals.List(ctx, vault.ID)
		if err != nil {
			render.Error(w, err)
			return
		}

		items := make([]views.Proposal, 0, len(list))
		for _, p := range list {
			view, err := proposalView(ctx, decisionz, vault, p)
			if err != nil {
				render.Error(w, err)
				return
			}

			items = append(items, view)
		}

		render.JSON(w, items)
	}
}

func handleProposal(vaults core.VaultStore, proposals core.ProposalStore, decisionz core.DecisionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		vault, err := vaults.Find(ctx, param.String(r, "vault_id"))
		if err != nil {
			render.Error(w, err)
			return
		}

		p, err := proposals.Find(ctx, vault.ID, param.Uint64(r, "proposal_id"))
		if err != nil {
			render.Error(w, err)
			return
		}

		view, err := proposalView(ctx, decisionz, vault, p)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, view)
	}
}

func handlePropose(vaults core.VaultStore, decisionz core.DecisionService, walletz core.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			Recipient string          `json:"recipient" valid:"required"`
			Amount    decimal.Decimal `json:"amount"`
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

		p, err := walletz.ProposeTransfer(ctx, vault.ID, body.Recipient, amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		view, err := proposalView(ctx, decisionz, vault, p)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, view)
	}
}

func handleDecisions(decisionz core.DecisionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decisions, err := decisionz.GetDecisions(r.Context(), param.String(r, "vault_id"), param.Uint64(r, "proposal_id"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.DecisionViews(decisions))
	}
}

func handleDecide(walletz core.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Approve bool `json:"approve"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := walletz.Decide(r.Context(), param.String(r, "vault_id"), param.Uint64(r, "proposal_id"), body.Approve); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.Done)
	}
}

func handleExecute(vaults core.VaultStore, decisionz core.DecisionService, walletz core.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vaultID := param.String(r, "vault_id")

		p, err := walletz.Execute(ctx, vaultID, param.Uint64(r, "proposal_id"))
		if err != nil {
			render.Error(w, err)
			return
		}

		vault, err := vaults.Find(ctx, vaultID)
		if err != nil {
			render.Error(w, err)
			return
		}

		view, err := proposalView(ctx, decisionz, vault, p)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, view)
	}
}
