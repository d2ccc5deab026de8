package cmd

import (
	"cosign/config"
	"cosign/core"
	"cosign/service/decision"
	"cosign/service/ledger"
	"cosign/service/wallet"
	"cosign/store/memory"
	"cosign/store/remote"
	"cosign/worker/syncer"

	decisionstore "cosign/store/decision"
	proposalstore "cosign/store/proposal"
	signerstore "cosign/store/signer"
	vaultstore "cosign/store/vault"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

// stores one backend, picked by cfg.Backend
type stores struct {
	Vaults    core.VaultStore
	Signers   core.SignerStore
	Proposals core.ProposalStore
	Decisions core.DecisionStore
	// Property nil unless a database is configured
	Property property.Store

	close func()
}

func (s *stores) Close() {
	if s.close != nil {
		s.close()
	}
}

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideLedgerClient() core.LedgerClient {
	return ledger.New(ledger.Config{
		Endpoint: cfg.Ledger.Endpoint,
		Timeout:  cfg.LedgerTimeout(),
	})
}

func provideStores() *stores {
	var s stores

	switch cfg.Backend {
	case config.BackendDB:
		database := provideDatabase()
		s = stores{
			Vaults:    vaultstore.New(database),
			Signers:   signerstore.New(database),
			Proposals: proposalstore.New(database),
			Decisions: decisionstore.New(database),
			Property:  providePropertyStore(database),
			close: func() {
				database.Close()
			},
		}

	case config.BackendLedger:
		r := remote.New(provideLedgerClient(), cfg.Ledger.Vaults)
		s = stores{
			Vaults:    r.Vaults(),
			Signers:   r.Signers(),
			Proposals: r.Proposals(),
			Decisions: r.Decisions(),
		}

	default:
		m := memory.New()
		s = stores{
			Vaults:    m.Vaults(),
			Signers:   m.Signers(),
			Proposals: m.Proposals(),
			Decisions: m.Decisions(),
		}
	}

	s.Vaults = vaultstore.Cache(s.Vaults, cfg.Cache.Size, cfg.CacheTTL())
	return &s
}

func provideDecisionService(s *stores) core.DecisionService {
	return decision.New(s.Vaults, s.Proposals, s.Decisions, cfg.TallyPolicy())
}

func provideWalletService(s *stores, decisionz core.DecisionService) core.WalletService {
	return wallet.New(s.Vaults, s.Signers, s.Proposals, decisionz, wallet.Config{
		AllowDeposit: cfg.AllowDeposit(),
		Decimals:     cfg.Vault.Decimals,
	})
}

func provideSyncer(s *stores, decisionz core.DecisionService) *syncer.Syncer {
	return syncer.New(syncer.Config{
		Interval:  cfg.SyncInterval(),
		Location:  cfg.Location,
		Principal: cfg.Sync.Principal,
	}, s.Vaults, decisionz, s.Property)
}
