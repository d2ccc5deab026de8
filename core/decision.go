package core

import (
	"context"
	"time"
)

type (
	// Decision one signer's vote on a proposal
	Decision struct {
		ID         uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
		CreatedAt  time.Time `json:"created_at,omitempty"`
		VaultID    string    `sql:"size:36" json:"vault_id,omitempty"`
		ProposalID uint64    `json:"proposal_id,omitempty"`
		Voter      string    `sql:"size:128" json:"voter,omitempty"`
		Approve    bool      `json:"approve"`
	}

	// DecisionStore append-only decisions per (vault, proposal)
	DecisionStore interface {
		// Record appends, duplicates from the same voter are kept
		Record(ctx context.Context, decision *Decision) error
		// List decisions in record order, empty if none
		List(ctx context.Context, vaultID string, proposalID uint64) ([]*Decision, error)
		// Refresh resynchronizes decisions of the vault with the ledger
		Refresh(ctx context.Context, vaultID string) error
	}

	// DecisionService records decisions and derives approval state
	DecisionService interface {
		RecordDecision(ctx context.Context, vaultID string, proposalID uint64, approve bool, voter string) error
		GetDecisions(ctx context.Context, vaultID string, proposalID uint64) ([]*Decision, error)
		Refresh(ctx context.Context, vaultID string) error

		ApprovalsCount(ctx context.Context, vaultID string, proposalID uint64) (int, error)
		RejectionsCount(ctx context.Context, vaultID string, proposalID uint64) (int, error)
		HasVoterApproved(ctx context.Context, vaultID string, proposalID uint64, voter string) (bool, error)
		Approvers(ctx context.Context, vaultID string, proposalID uint64) ([]string, error)
		Rejectors(ctx context.Context, vaultID string, proposalID uint64) ([]string, error)
		IsExecutionReady(ctx context.Context, vaultID string, proposalID uint64) (bool, error)

		// Tally summary of p, vault must be the proposal's vault
		Tally(ctx context.Context, vault *Vault, p *Proposal) (*Tally, error)
	}
)
