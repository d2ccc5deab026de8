package remote

import (
	"context"

	"cosign/core"
)

type proposalStore struct {
	*Store
}

func (s *proposalStore) List(ctx context.Context, vaultID string) ([]*core.Proposal, error) {
	txs, err := s.client.GetTransactions(ctx, vaultID)
	if err != nil {
		if isNotFound(err) {
			return nil, core.ErrVaultNotFound
		}

		return nil, err
	}

	proposals := make([]*core.Proposal, 0, len(txs))
	for _, tx := range txs {
		proposals = append(proposals, tx.Proposal(vaultID))
	}

	return proposals, nil
}

func (s *proposalStore) Find(ctx context.Context, vaultID string, id uint64) (*core.Proposal, error) {
	tx, err := s.client.GetTransactionDetails(ctx, vaultID, id)
	if err != nil {
		if isNotFound(err) {
			return nil, core.ErrProposalNotFound
		}

		return nil, err
	}

	return tx.Proposal(vaultID), nil
}

func (s *proposalStore) Create(ctx context.Context, proposal *core.Proposal) error {
	id, err := s.client.Propose(ctx, proposal)
	if err != nil {
		return err
	}

	now := s.now()
	proposal.ID = id
	proposal.CreatedAt = now
	proposal.UpdatedAt = now
	return nil
}

// Update proposals change on the ledger only
func (s *proposalStore) Update(ctx context.Context, proposal *core.Proposal) error {
	return core.ErrOperationForbidden
}

func (s *proposalStore) Execute(ctx context.Context, proposal *core.Proposal) error {
	tx, err := s.client.ExecuteProposal(ctx, proposal.VaultID, proposal.ID)
	if err != nil {
		if isNotFound(err) {
			return core.ErrProposalNotFound
		}

		return err
	}

	executed := tx.Proposal(proposal.VaultID)
	if !executed.Executed {
		executed.MarkExecuted(tx.Successful, s.now())
	}

	*proposal = *executed
	return nil
}
