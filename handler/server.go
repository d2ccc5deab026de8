package handler

import (
	"net/http"

	"cosign/core"
	"cosign/handler/auth"
	"cosign/handler/hc"
	"cosign/handler/rest"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
)

// Server server
type Server struct {
	Version string
	Backend string

	Vaults    core.VaultStore
	Signers   core.SignerStore
	Proposals core.ProposalStore
	Decisionz core.DecisionService
	Walletz   core.WalletService
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(auth.HandleAuthentication())
	r.Mount("/", rest.Handle(s.Vaults, s.Signers, s.Proposals, s.Decisionz, s.Walletz))
	return r
}

// Handler root mux with /hc and /api mounted
func (s Server) Handler() http.Handler {
	mux := chi.NewMux()
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(cors.AllowAll().Handler)
	mux.Use(logger.WithRequestID)
	mux.Use(middleware.Logger)
	mux.Use(middleware.NewCompressor(5).Handler)

	mux.Mount("/hc", hc.Handle(s.Version, s.Backend))
	mux.Mount("/api", s.HandleRestAPI())
	return mux
}
