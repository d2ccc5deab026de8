package wallet

import (
	"context"
	"math"
	"testing"
	"time"

	"cosign/core"
	"cosign/service/decision"
	"cosign/store/memory"
	"cosign/store/vault"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store  *memory.Store
	vaults core.VaultStore
	wallet core.WalletService
}

func newFixture() *fixture {
	s := memory.New()
	vaults := vault.Cache(s.Vaults(), 16, time.Minute)
	decisions := decision.New(vaults, s.Proposals(), s.Decisions(), core.TallyAll)

	return &fixture{
		store:  s,
		vaults: vaults,
		wallet: New(vaults, s.Signers(), s.Proposals(), decisions, Config{AllowDeposit: true, Decimals: 8}),
	}
}

func as(principal string) context.Context {
	return core.WithSession(context.Background(), &core.Session{Principal: principal})
}

func signers(principals ...string) []*core.Signer {
	out := make([]*core.Signer, 0, len(principals))
	for _, p := range principals {
		out = append(out, &core.Signer{Principal: p})
	}

	return out
}

func (f *fixture) vault(t *testing.T) *core.Vault {
	v, err := f.wallet.CreateVault(as("alice"), "ops", 2, signers("alice", "bob", "carol"))
	require.NoError(t, err)

	_, err = f.wallet.Deposit(as("alice"), v.ID, 100)
	require.NoError(t, err)
	return v
}

func TestCreateVault(t *testing.T) {
	f := newFixture()

	_, err := f.wallet.CreateVault(context.Background(), "ops", 1, signers("alice"))
	assert.ErrorIs(t, err, core.ErrNotInitialized)

	cases := []struct {
		name      string
		threshold uint8
		signers   []*core.Signer
	}{
		{"", 1, signers("alice")},
		{"ops", 1, nil},
		{"ops", 0, signers("alice")},
		{"ops", 3, signers("alice", "bob")},
		{"ops", 1, signers("alice", "alice")},
	}

	for _, c := range cases {
		_, err := f.wallet.CreateVault(as("alice"), c.name, c.threshold, c.signers)
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
	}

	_, err = f.wallet.CreateVault(as("mallory"), "ops", 1, signers("alice"))
	assert.ErrorIs(t, err, core.ErrNotSigner)

	v, err := f.wallet.CreateVault(as("alice"), "ops", 2, signers("alice", "bob"))
	require.NoError(t, err)
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, int32(8), v.Decimals)

	list, err := f.store.Signers().List(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestTransferFlow(t *testing.T) {
	f := newFixture()
	v := f.vault(t)

	p, err := f.wallet.ProposeTransfer(as("alice"), v.ID, "dave", 30)
	require.NoError(t, err)
	assert.Equal(t, uint8(2), p.Threshold)
	assert.NotEmpty(t, p.TraceID)

	require.NoError(t, f.wallet.Decide(as("alice"), v.ID, p.ID, true))
	_, err = f.wallet.Execute(as("alice"), v.ID, p.ID)
	assert.ErrorIs(t, err, core.ErrProposalNotReady)

	assert.ErrorIs(t, f.wallet.Decide(as("mallory"), v.ID, p.ID, true), core.ErrNotSigner)
	require.NoError(t, f.wallet.Decide(as("carol"), v.ID, p.ID, false))
	require.NoError(t, f.wallet.Decide(as("bob"), v.ID, p.ID, true))

	executed, err := f.wallet.Execute(as("bob"), v.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, executed.Executed)
	assert.True(t, executed.Successful)

	// the cached snapshot must reflect the debit
	current, err := f.vaults.Find(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(70), current.Balance)

	assert.ErrorIs(t, f.wallet.Decide(as("carol"), v.ID, p.ID, true), core.ErrProposalExecuted)
	_, err = f.wallet.Execute(as("bob"), v.ID, p.ID)
	assert.ErrorIs(t, err, core.ErrProposalExecuted)
}

func TestTransferShortBalance(t *testing.T) {
	f := newFixture()
	v := f.vault(t)

	p, err := f.wallet.ProposeTransfer(as("alice"), v.ID, "dave", 1000)
	require.NoError(t, err)
	require.NoError(t, f.wallet.Decide(as("alice"), v.ID, p.ID, true))
	require.NoError(t, f.wallet.Decide(as("bob"), v.ID, p.ID, true))

	executed, err := f.wallet.Execute(as("alice"), v.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, executed.Executed)
	assert.False(t, executed.Successful)

	current, err := f.vaults.Find(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), current.Balance)
}

func TestInviteSigner(t *testing.T) {
	f := newFixture()
	v := f.vault(t)

	_, err := f.wallet.InviteSigner(as("alice"), v.ID, "bob", "Bob")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = f.wallet.InviteSigner(as("alice"), v.ID, "", "")
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	p, err := f.wallet.InviteSigner(as("alice"), v.ID, "dave", "Dave")
	require.NoError(t, err)
	require.NoError(t, f.wallet.Decide(as("alice"), v.ID, p.ID, true))
	require.NoError(t, f.wallet.Decide(as("carol"), v.ID, p.ID, true))

	_, err = f.wallet.Execute(as("carol"), v.ID, p.ID)
	require.NoError(t, err)

	current, err := f.vaults.Find(context.Background(), v.ID)
	require.NoError(t, err)
	assert.True(t, current.IsSigner("dave"))
	assert.Equal(t, 4, current.SignerCount())

	// dave can now act on the vault
	_, err = f.wallet.ProposeTransfer(as("dave"), v.ID, "erin", 1)
	assert.NoError(t, err)
}

func TestValidation(t *testing.T) {
	f := newFixture()
	v := f.vault(t)

	_, err := f.wallet.ProposeTransfer(as("alice"), v.ID, "", 1)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = f.wallet.ProposeTransfer(as("alice"), v.ID, "dave", 0)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = f.wallet.ProposeTransfer(context.Background(), v.ID, "dave", 1)
	assert.ErrorIs(t, err, core.ErrNotInitialized)

	_, err = f.wallet.ProposeTransfer(as("alice"), "missing", "dave", 1)
	assert.ErrorIs(t, err, core.ErrVaultNotFound)

	_, err = f.wallet.Deposit(as("alice"), v.ID, -1)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	assert.ErrorIs(t, f.wallet.Decide(as("alice"), v.ID, 42, true), core.ErrProposalNotFound)
	assert.ErrorIs(t, f.wallet.Refresh(context.Background(), v.ID), core.ErrNotInitialized)
	assert.NoError(t, f.wallet.Refresh(as("alice"), v.ID))
}

func TestDepositForbidden(t *testing.T) {
	s := memory.New()
	decisions := decision.New(s.Vaults(), s.Proposals(), s.Decisions(), core.TallyAll)
	w := New(s.Vaults(), s.Signers(), s.Proposals(), decisions, Config{})

	v, err := w.CreateVault(as("alice"), "ops", 1, signers("alice"))
	require.NoError(t, err)

	_, err = w.Deposit(as("alice"), v.ID, 1)
	assert.ErrorIs(t, err, core.ErrOperationForbidden)
}

func TestDepositOverflow(t *testing.T) {
	f := newFixture()

	v, err := f.wallet.CreateVault(as("alice"), "ops", 1, signers("alice"))
	require.NoError(t, err)

	full, err := f.wallet.Deposit(as("alice"), v.ID, math.MaxInt64)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), full.Balance)

	_, err = f.wallet.Deposit(as("alice"), v.ID, 10)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	current, err := f.vaults.Find(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), current.Balance)
}

func TestProposeIdempotent(t *testing.T) {
	f := newFixture()
	v := f.vault(t)

	ctx := core.WithSession(context.Background(), &core.Session{Principal: "alice", RequestID: "req-1"})
	a, err := f.wallet.ProposeTransfer(ctx, v.ID, "dave", 5)
	require.NoError(t, err)

	b, err := f.wallet.ProposeTransfer(ctx, v.ID, "dave", 5)
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	c, err := f.wallet.ProposeTransfer(as("alice"), v.ID, "dave", 5)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, c.ID)

	list, err := f.store.Proposals().List(context.Background(), v.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
