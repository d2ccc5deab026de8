package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

type (
	// LedgerError structured failure returned by the ledger
	LedgerError struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Details string `json:"details,omitempty"`
	}

	// LedgerTransaction proposal as the ledger reports it
	LedgerTransaction struct {
		ID                    uint64          `json:"id"`
		Action                ActionType      `json:"action"`
		Content               json.RawMessage `json:"content"`
		Creator               string          `json:"creator"`
		CreatedAt             time.Time       `json:"created_at"`
		ExecutedAt            *time.Time      `json:"executed_at,omitempty"`
		Executed              bool            `json:"executed"`
		Successful            bool            `json:"successful"`
		RequiredConfirmations uint8           `json:"required_confirmations"`
		Threshold             uint8           `json:"threshold"`
		Confirmations         []string        `json:"confirmations"`
	}

	// LedgerClient remote multi-sig ledger
	LedgerClient interface {
		// Propose submits the proposal and returns the id assigned by the ledger
		Propose(ctx context.Context, proposal *Proposal) (uint64, error)
		Confirm(ctx context.Context, vaultID string, proposalID uint64) error
		ExecuteProposal(ctx context.Context, vaultID string, proposalID uint64) (*LedgerTransaction, error)
		GetOwners(ctx context.Context, vaultID string) ([]*Signer, error)
		GetTransactionDetails(ctx context.Context, vaultID string, proposalID uint64) (*LedgerTransaction, error)
		GetTransactions(ctx context.Context, vaultID string) ([]*LedgerTransaction, error)
		GetAccount(ctx context.Context, vaultID string) (*Vault, error)
		CreateAccount(ctx context.Context, vault *Vault) error
	}
)

func (e *LedgerError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ledger error %d: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("ledger error %d: %s", e.Code, e.Message)
}

// Proposal convert to a proposal of vault
func (tx *LedgerTransaction) Proposal(vaultID string) *Proposal {
	p := &Proposal{
		ID:                    tx.ID,
		CreatedAt:             tx.CreatedAt,
		UpdatedAt:             tx.CreatedAt,
		VaultID:               vaultID,
		Creator:               tx.Creator,
		Action:                tx.Action,
		Content:               []byte(tx.Content),
		RequiredConfirmations: tx.RequiredConfirmations,
		Threshold:             tx.Threshold,
	}

	if tx.Executed {
		at := tx.CreatedAt
		if tx.ExecutedAt != nil {
			at = *tx.ExecutedAt
		}

		p.MarkExecuted(tx.Successful, at)
	}

	return p
}

// Decisions the ledger only tracks confirmations, each one approves
func (tx *LedgerTransaction) Decisions(vaultID string) []*Decision {
	decisions := make([]*Decision, 0, len(tx.Confirmations))
	for _, voter := range tx.Confirmations {
		decisions = append(decisions, &Decision{
			VaultID:    vaultID,
			ProposalID: tx.ID,
			Voter:      voter,
			Approve:    true,
		})
	}

	return decisions
}
