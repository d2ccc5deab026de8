package memory

import (
	"context"

	"cosign/core"
)

type decisionStore struct {
	*Store
}

func (s *decisionStore) Record(ctx context.Context, decision *core.Decision) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	key := proposalKey{vaultID: decision.VaultID, id: decision.ProposalID}

	s.decisionSeq++
	decision.ID = s.decisionSeq
	decision.CreatedAt = s.now()

	decisions := s.decisions[key]
	updated := make([]*core.Decision, 0, len(decisions)+1)
	updated = append(updated, decisions...)
	s.decisions[key] = append(updated, cloneDecision(decision))
	return nil
}

func (s *decisionStore) List(ctx context.Context, vaultID string, proposalID uint64) ([]*core.Decision, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	decisions := s.decisions[proposalKey{vaultID: vaultID, id: proposalID}]
	out := make([]*core.Decision, 0, len(decisions))
	for _, d := range decisions {
		out = append(out, cloneDecision(d))
	}

	return out, nil
}

// Refresh the in-memory store is its own authority
func (s *decisionStore) Refresh(ctx context.Context, vaultID string) error {
	return nil
}
