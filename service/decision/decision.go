package decision

import (
	"context"

	"cosign/core"
)

type service struct {
	vaults    core.VaultStore
	proposals core.ProposalStore
	decisions core.DecisionStore
	policy    core.TallyPolicy
}

// New new decision service
func New(
	vaults core.VaultStore,
	proposals core.ProposalStore,
	decisions core.DecisionStore,
	policy core.TallyPolicy,
) core.DecisionService {
	return &service{
		vaults:    vaults,
		proposals: proposals,
		decisions: decisions,
		policy:    policy,
	}
}

func (s *service) RecordDecision(ctx context.Context, vaultID string, proposalID uint64, approve bool, voter string) error {
	if voter == "" {
		return core.NewValidationError("voter", "required")
	}

	return s.decisions.Record(ctx, &core.Decision{
		VaultID:    vaultID,
		ProposalID: proposalID,
		Voter:      voter,
		Approve:    approve,
	})
}

func (s *service) GetDecisions(ctx context.Context, vaultID string, proposalID uint64) ([]*core.Decision, error) {
	return s.decisions.List(ctx, vaultID, proposalID)
}

func (s *service) Refresh(ctx context.Context, vaultID string) error {
	return s.decisions.Refresh(ctx, vaultID)
}

func (s *service) ApprovalsCount(ctx context.Context, vaultID string, proposalID uint64) (int, error) {
	decisions, err := s.decisions.List(ctx, vaultID, proposalID)
	if err != nil {
		return 0, err
	}

	return s.policy.ApprovalsCount(decisions), nil
}

func (s *service) RejectionsCount(ctx context.Context, vaultID string, proposalID uint64) (int, error) {
	decisions, err := s.decisions.List(ctx, vaultID, proposalID)
	if err != nil {
		return 0, err
	}

	return s.policy.RejectionsCount(decisions), nil
}

func (s *service) HasVoterApproved(ctx context.Context, vaultID string, proposalID uint64, voter string) (bool, error) {
	decisions, err := s.decisions.List(ctx, vaultID, proposalID)
	if err != nil {
		return false, err
	}

	return s.policy.HasVoterApproved(decisions, voter), nil
}

func (s *service) Approvers(ctx context.Context, vaultID string, proposalID uint64) ([]string, error) {
	decisions, err := s.decisions.List(ctx, vaultID, proposalID)
	if err != nil {
		return nil, err
	}

	return s.policy.Approvers(decisions), nil
}

func (s *service) Rejectors(ctx context.Context, vaultID string, proposalID uint64) ([]string, error) {
	decisions, err := s.decisions.List(ctx, vaultID, proposalID)
	if err != nil {
		return nil, err
	}

	return s.policy.Rejectors(decisions), nil
}

func (s *service) IsExecutionReady(ctx context.Context, vaultID string, proposalID uint64) (bool, error) {
	vault, err := s.vaults.Find(ctx, vaultID)
	if err != nil {
		return false, err
	}

	p, err := s.proposals.Find(ctx, vaultID, proposalID)
	if err != nil {
		return false, err
	}

	decisions, err := s.decisions.List(ctx, vaultID, proposalID)
	if err != nil {
		return false, err
	}

	return s.policy.IsExecutionReady(decisions, thresholdOf(vault, p), vault.SignerCount()), nil
}

func (s *service) Tally(ctx context.Context, vault *core.Vault, p *core.Proposal) (*core.Tally, error) {
	decisions, err := s.decisions.List(ctx, vault.ID, p.ID)
	if err != nil {
		return nil, err
	}

	snapshot := *p
	snapshot.Threshold = uint8(thresholdOf(vault, p))
	return s.policy.NewTally(&snapshot, vault.SignerCount(), decisions), nil
}

// thresholdOf proposals without a snapshot fall back to the vault threshold
func thresholdOf(vault *core.Vault, p *core.Proposal) int {
	if p.Threshold > 0 {
		return int(p.Threshold)
	}

	return int(vault.Threshold)
}
