package memory

import (
	"context"

	"cosign/core"

	"github.com/fox-one/pkg/uuid"
)

type proposalStore struct {
	*Store
}

func (s *proposalStore) List(ctx context.Context, vaultID string) ([]*core.Proposal, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	proposals := make([]*core.Proposal, 0, len(s.proposals[vaultID]))
	for _, p := range s.proposals[vaultID] {
		proposals = append(proposals, cloneProposal(p))
	}

	return proposals, nil
}

func (s *Store) findProposal(vaultID string, id uint64) (int, *core.Proposal, bool) {
	for idx, p := range s.proposals[vaultID] {
		if p.ID == id {
			return idx, p, true
		}
	}

	return -1, nil, false
}

func (s *proposalStore) Find(ctx context.Context, vaultID string, id uint64) (*core.Proposal, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	_, p, ok := s.findProposal(vaultID, id)
	if !ok {
		return nil, core.ErrProposalNotFound
	}

	return cloneProposal(p), nil
}

func (s *proposalStore) Create(ctx context.Context, proposal *core.Proposal) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if _, ok := s.vaults[proposal.VaultID]; !ok {
		return core.ErrVaultNotFound
	}

	if proposal.TraceID == "" {
		proposal.TraceID = uuid.New()
	}

	// same trace, same proposal
	for _, p := range s.proposals[proposal.VaultID] {
		if p.TraceID == proposal.TraceID {
			*proposal = *cloneProposal(p)
			return nil
		}
	}

	s.proposalSeq++
	now := s.now()
	proposal.ID = s.proposalSeq
	proposal.CreatedAt = now
	proposal.UpdatedAt = now

	proposals := append([]*core.Proposal(nil), s.proposals[proposal.VaultID]...)
	s.proposals[proposal.VaultID] = append(proposals, cloneProposal(proposal))
	return nil
}

func (s *proposalStore) Update(ctx context.Context, proposal *core.Proposal) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	return s.replaceProposal(proposal)
}

func (s *Store) replaceProposal(proposal *core.Proposal) error {
	idx, current, ok := s.findProposal(proposal.VaultID, proposal.ID)
	if !ok {
		return core.ErrProposalNotFound
	}

	if current.Executed && !proposal.Executed {
		return core.ErrProposalExecuted
	}

	proposal.Version = current.Version + 1
	proposal.UpdatedAt = s.now()

	proposals := append([]*core.Proposal(nil), s.proposals[proposal.VaultID]...)
	proposals[idx] = cloneProposal(proposal)
	s.proposals[proposal.VaultID] = proposals
	return nil
}

func (s *proposalStore) Execute(ctx context.Context, proposal *core.Proposal) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	_, current, ok := s.findProposal(proposal.VaultID, proposal.ID)
	if !ok {
		return core.ErrProposalNotFound
	}

	if current.Executed {
		return core.ErrProposalExecuted
	}

	vault, ok := s.vaults[proposal.VaultID]
	if !ok {
		return core.ErrVaultNotFound
	}

	vault = vault.Clone()
	p := cloneProposal(current)
	successful, signer, err := p.Apply(vault)
	if err != nil {
		return err
	}

	now := s.now()
	p.MarkExecuted(successful, now)
	if err := s.replaceProposal(p); err != nil {
		return err
	}

	if successful {
		vault.UpdatedAt = now
		vault.Version++
		s.vaults[vault.ID] = vault

		if signer != nil {
			s.saveSigner(signer)
		}
	}

	*proposal = *cloneProposal(p)
	return nil
}
