// Package memory is the in-process backend used for front end development.
// Every store returned by a Store shares one lock so that executing a
// proposal updates the vault, its signers and the proposal atomically.
package memory

import (
	"sync"
	"time"

	"cosign/core"
)

type proposalKey struct {
	vaultID string
	id      uint64
}

// Store in-memory state shared by the vault, signer, proposal and decision stores
type Store struct {
	mux sync.RWMutex
	now func() time.Time

	vaults     map[string]*core.Vault
	vaultOrder []string
	signers    map[string][]*core.Signer
	proposals  map[string][]*core.Proposal
	decisions  map[proposalKey][]*core.Decision

	signerSeq   uint64
	proposalSeq uint64
	decisionSeq uint64
}

// New new in-memory store
func New() *Store {
	return &Store{
		now:       time.Now,
		vaults:    make(map[string]*core.Vault),
		signers:   make(map[string][]*core.Signer),
		proposals: make(map[string][]*core.Proposal),
		decisions: make(map[proposalKey][]*core.Decision),
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

func cloneProposal(p *core.Proposal) *core.Proposal {
	c := *p
	c.Content = append([]byte(nil), p.Content...)
	return &c
}

func cloneSigner(signer *core.Signer) *core.Signer {
	c := *signer
	return &c
}

func cloneDecision(d *core.Decision) *core.Decision {
	c := *d
	return &c
}
