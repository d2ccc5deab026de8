package core

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx/types"
)

type (
	// Proposal proposal info
	Proposal struct {
		ID         uint64         `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
		CreatedAt  time.Time      `json:"created_at,omitempty"`
		UpdatedAt  time.Time      `json:"updated_at,omitempty"`
		ExecutedAt sql.NullTime   `json:"executed_at,omitempty"`
		Version    int64          `json:"version,omitempty"`
		TraceID    string         `sql:"size:36" json:"trace_id,omitempty"`
		VaultID    string         `sql:"size:36" json:"vault_id,omitempty"`
		Creator    string         `sql:"size:128" json:"creator,omitempty"`
		Action     ActionType     `json:"action,omitempty"`
		Content    types.JSONText `sql:"type:varchar(1024)" json:"content,omitempty"`
		Executed   bool           `json:"executed"`
		Successful bool           `json:"successful"`
		// RequiredConfirmations approvals asked for when the proposal was made
		RequiredConfirmations uint8 `json:"required_confirmations,omitempty"`
		// Threshold min(vault threshold, signer count) at proposal time
		Threshold uint8 `json:"threshold,omitempty"`
	}

	// ProposalStore proposal store interface
	ProposalStore interface {
		List(ctx context.Context, vaultID string) ([]*Proposal, error)
		// Find returns ErrProposalNotFound if no proposal matches
		Find(ctx context.Context, vaultID string, id uint64) (*Proposal, error)
		Create(ctx context.Context, proposal *Proposal) error
		Update(ctx context.Context, proposal *Proposal) error
		// Execute runs the proposal action and flips Executed.
		// Successful is set on the passed proposal.
		Execute(ctx context.Context, proposal *Proposal) error
	}
)

// NewProposal new proposal with the threshold snapshot taken from vault
func NewProposal(vault *Vault, creator string, action ActionType, content interface{}) (*Proposal, error) {
	data, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}

	threshold := uint8(vault.EffectiveThreshold())
	return &Proposal{
		VaultID:               vault.ID,
		Creator:               creator,
		Action:                action,
		Content:               data,
		RequiredConfirmations: threshold,
		Threshold:             threshold,
	}, nil
}

// TransferAction decode content as transfer
func (p *Proposal) TransferAction() (TransferAction, error) {
	var action TransferAction
	err := json.Unmarshal(p.Content, &action)
	return action, err
}

// InviteAction decode content as invite
func (p *Proposal) InviteAction() (InviteAction, error) {
	var action InviteAction
	err := json.Unmarshal(p.Content, &action)
	return action, err
}

// Apply runs the proposal effect on vault. Transfers larger than the balance
// and invites of existing signers complete unsuccessfully without touching
// the vault. The returned signer is set for successful invites.
func (p *Proposal) Apply(vault *Vault) (bool, *Signer, error) {
	switch p.Action {
	case ActionTypeTransfer:
		action, err := p.TransferAction()
		if err != nil {
			return false, nil, err
		}

		if action.Amount <= 0 || action.Amount > vault.Balance {
			return false, nil, nil
		}

		vault.Balance -= action.Amount
		return true, nil, nil

	case ActionTypeInvite:
		action, err := p.InviteAction()
		if err != nil {
			return false, nil, err
		}

		if vault.IsSigner(action.Principal) {
			return false, nil, nil
		}

		vault.Signers = append(vault.Signers, action.Principal)
		return true, &Signer{
			VaultID:   vault.ID,
			Principal: action.Principal,
			Name:      action.Name,
		}, nil
	}

	return false, nil, ErrOperationForbidden
}

// MarkExecuted executed flag only moves from false to true
func (p *Proposal) MarkExecuted(successful bool, at time.Time) {
	if p.Executed {
		return
	}

	p.Executed = true
	p.Successful = successful
	p.ExecutedAt = sql.NullTime{
		Time:  at,
		Valid: true,
	}
}
