// Package remote backs the stores with the multi-sig ledger service.
// Decisions are cached locally and replaced wholesale on refresh.
package remote

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"cosign/core"
)

type proposalKey struct {
	vaultID string
	id      uint64
}

// Store ledger backed stores
type Store struct {
	client core.LedgerClient
	now    func() time.Time

	mux         sync.RWMutex
	vaultIDs    []string
	decisions   map[proposalKey][]*core.Decision
	synced      map[string]bool
	decisionSeq uint64
}

// New new remote store tracking vaultIDs
func New(client core.LedgerClient, vaultIDs []string) *Store {
	return &Store{
		client:    client,
		now:       time.Now,
		vaultIDs:  append([]string(nil), vaultIDs...),
		decisions: make(map[proposalKey][]*core.Decision),
		synced:    make(map[string]bool),
	}
}

// Vaults vault store view
func (s *Store) Vaults() core.VaultStore {
	return &vaultStore{s}
}

// Signers signer store view
func (s *Store) Signers() core.SignerStore {
	return &signerStore{s}
}

// Proposals proposal store view
func (s *Store) Proposals() core.ProposalStore {
	return &proposalStore{s}
}

// Decisions decision store view
func (s *Store) Decisions() core.DecisionStore {
	return &decisionStore{s}
}

func (s *Store) tracked() []string {
	s.mux.RLock()
	defer s.mux.RUnlock()

	return append([]string(nil), s.vaultIDs...)
}

func (s *Store) track(vaultID string) {
	s.mux.Lock()
	defer s.mux.Unlock()

	for _, id := range s.vaultIDs {
		if id == vaultID {
			return
		}
	}

	s.vaultIDs = append(s.vaultIDs, vaultID)
}

func isNotFound(err error) bool {
	var lerr *core.LedgerError
	return errors.As(err, &lerr) && lerr.Code == http.StatusNotFound
}
