package remote

import (
	"context"

	"cosign/core"
)

type decisionStore struct {
	*Store
}

// Record the ledger knows confirmations only, rejections are refused
func (s *decisionStore) Record(ctx context.Context, decision *core.Decision) error {
	if !decision.Approve {
		return core.ErrOperationForbidden
	}

	if err := s.client.Confirm(ctx, decision.VaultID, decision.ProposalID); err != nil {
		if isNotFound(err) {
			return core.ErrProposalNotFound
		}

		return err
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	s.decisionSeq++
	decision.ID = s.decisionSeq
	decision.CreatedAt = s.now()

	key := proposalKey{vaultID: decision.VaultID, id: decision.ProposalID}
	decisions := s.decisions[key]
	updated := make([]*core.Decision, 0, len(decisions)+1)
	updated = append(updated, decisions...)
	c := *decision
	s.decisions[key] = append(updated, &c)
	return nil
}

func (s *decisionStore) List(ctx context.Context, vaultID string, proposalID uint64) ([]*core.Decision, error) {
	s.mux.RLock()
	synced := s.synced[vaultID]
	s.mux.RUnlock()

	if !synced {
		if err := s.Refresh(ctx, vaultID); err != nil {
			return nil, err
		}
	}

	s.mux.RLock()
	defer s.mux.RUnlock()

	decisions := s.decisions[proposalKey{vaultID: vaultID, id: proposalID}]
	out := make([]*core.Decision, 0, len(decisions))
	for _, d := range decisions {
		c := *d
		out = append(out, &c)
	}

	return out, nil
}

// Refresh replaces every cached decision of the vault with the ledger confirmations
func (s *decisionStore) Refresh(ctx context.Context, vaultID string) error {
	txs, err := s.client.GetTransactions(ctx, vaultID)
	if err != nil {
		if isNotFound(err) {
			return core.ErrVaultNotFound
		}

		return err
	}

	fresh := make(map[proposalKey][]*core.Decision, len(txs))
	for _, tx := range txs {
		fresh[proposalKey{vaultID: vaultID, id: tx.ID}] = tx.Decisions(vaultID)
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	now := s.now()
	for key := range s.decisions {
		if key.vaultID == vaultID {
			delete(s.decisions, key)
		}
	}

	for key, decisions := range fresh {
		for _, d := range decisions {
			s.decisionSeq++
			d.ID = s.decisionSeq
			d.CreatedAt = now
		}

		s.decisions[key] = decisions
	}

	s.synced[vaultID] = true
	return nil
}
