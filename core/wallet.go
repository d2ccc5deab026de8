package core

import (
	"context"
)

// WalletService dispatches user intents to the configured backend
type WalletService interface {
	CreateVault(ctx context.Context, name string, threshold uint8, signers []*Signer) (*Vault, error)
	// Deposit credits the vault, only local backends allow it
	Deposit(ctx context.Context, vaultID string, amount int64) (*Vault, error)
	ProposeTransfer(ctx context.Context, vaultID, recipient string, amount int64) (*Proposal, error)
	InviteSigner(ctx context.Context, vaultID, principal, name string) (*Proposal, error)
	Decide(ctx context.Context, vaultID string, proposalID uint64, approve bool) error
	Execute(ctx context.Context, vaultID string, proposalID uint64) (*Proposal, error)
	Refresh(ctx context.Context, vaultID string) error
}
