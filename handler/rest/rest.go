package rest

import (
	"net/http"

	"cosign/core"
	"cosign/handler/auth"
	"cosign/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	vaults core.VaultStore,
	signers core.SignerStore,
	proposals core.ProposalStore,
	decisionz core.DecisionService,
	walletz core.WalletService,
) http.Handler {
	router := chi.NewRouter()
	router.Use(auth.LoginRequired)
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFound(w)
	})

	router.Route("/vaults", func(r chi.Router) {
		r.Get("/", handleVaults(vaults))
		r.Post("/", handleCreateVault(walletz))

		r.Route("/{vault_id}", func(r chi.Router) {
			r.Get("/", handleVault(vaults, signers))
			r.Post("/deposits", handleDeposit(vaults, walletz))
			r.Post("/refresh", handleRefresh(walletz))
			r.Get("/signers", handleSigners(signers))
			r.Post("/invites", handleInvite(walletz))

			r.Get("/proposals", handleProposals(vaults, proposals, decisionz))
			r.Post("/proposals", handlePropose(vaults, decisionz, walletz))
			r.Get("/proposals/{proposal_id}", handleProposal(vaults, proposals, decisionz))
			r.Get("/proposals/{proposal_id}/decisions", handleDecisions(decisionz))
			r.Post("/proposals/{proposal_id}/decisions", handleDecide(walletz))
			r.Post("/proposals/{proposal_id}/execute", handleExecute(vaults, decisionz, walletz))
		})
	})

	return router
}
