package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProposalSnapshotsThreshold(t *testing.T) {
	vault := &Vault{ID: "v", Threshold: 3, Signers: []string{"A", "B"}}

	p, err := NewProposal(vault, "A", ActionTypeTransfer, TransferAction{Recipient: "R", Amount: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, p.Threshold)
	assert.EqualValues(t, 2, p.RequiredConfirmations)

	action, err := p.TransferAction()
	require.NoError(t, err)
	assert.Equal(t, "R", action.Recipient)
	assert.EqualValues(t, 10, action.Amount)
}

func TestProposalApply(t *testing.T) {
	vault := &Vault{ID: "v", Balance: 100, Threshold: 1, Signers: []string{"A"}}

	transfer, _ := NewProposal(vault, "A", ActionTypeTransfer, TransferAction{Recipient: "R", Amount: 60})
	ok, _, err := transfer.Apply(vault)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.EqualValues(t, 40, vault.Balance)

	ok, _, err = transfer.Apply(vault)
	require.NoError(t, err)
	assert.False(t, ok, "insufficient balance")
	assert.EqualValues(t, 40, vault.Balance)

	invite, _ := NewProposal(vault, "A", ActionTypeInvite, InviteAction{Principal: "B", Name: "bob"})
	ok, signer, err := invite.Apply(vault)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "bob", signer.Name)
	assert.Equal(t, []string{"A", "B"}, []string(vault.Signers))

	ok, _, err = invite.Apply(vault)
	require.NoError(t, err)
	assert.False(t, ok, "already a signer")
}

func TestMarkExecutedIsIrreversible(t *testing.T) {
	p := &Proposal{}
	now := time.Now()

	p.MarkExecuted(false, now)
	p.MarkExecuted(true, now.Add(time.Hour))
	assert.True(t, p.Executed)
	assert.False(t, p.Successful)
	assert.Equal(t, now, p.ExecutedAt.Time)
}

func TestActionTypeText(t *testing.T) {
	b, err := ActionTypeInvite.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "invite", string(b))

	var a ActionType
	require.NoError(t, a.UnmarshalText([]byte("Transfer")))
	assert.Equal(t, ActionTypeTransfer, a)
	assert.Error(t, a.UnmarshalText([]byte("burn")))
}

func TestValidationErrorIsInvalidArgument(t *testing.T) {
	var err error = NewValidationError("amount", "must be positive")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.False(t, errors.Is(err, ErrNotInitialized))
	assert.Equal(t, "invalid amount: must be positive", err.Error())
}

func TestLedgerTransactionConversion(t *testing.T) {
	tx := &LedgerTransaction{
		ID:            7,
		Action:        ActionTypeTransfer,
		Content:       []byte(`{"recipient":"R","amount":5}`),
		Executed:      true,
		Successful:    true,
		Threshold:     2,
		Confirmations: []string{"A", "B"},
	}

	p := tx.Proposal("v")
	assert.EqualValues(t, 7, p.ID)
	assert.True(t, p.Executed)
	assert.True(t, p.ExecutedAt.Valid)

	decisions := tx.Decisions("v")
	assert.Len(t, decisions, 2)
	assert.True(t, TallyAll.IsExecutionReady(decisions, int(tx.Threshold), 3))
}
