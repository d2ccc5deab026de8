package remote

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"cosign/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedger struct {
	mux       sync.Mutex
	accounts  map[string]*core.Vault
	txs       map[string][]*core.LedgerTransaction
	confirmed int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		accounts: map[string]*core.Vault{
			"v1": {ID: "v1", Balance: 100, Threshold: 2, Signers: []string{"alice", "bob"}},
		},
		txs: map[string][]*core.LedgerTransaction{},
	}
}

var errNotFound = &core.LedgerError{Code: http.StatusNotFound, Message: "not found"}

func (f *fakeLedger) findTx(vaultID string, id uint64) *core.LedgerTransaction {
	for _, tx := range f.txs[vaultID] {
		if tx.ID == id {
			return tx
		}
	}

	return nil
}

func (f *fakeLedger) Propose(ctx context.Context, p *core.Proposal) (uint64, error) {
	f.mux.Lock()
	defer f.mux.Unlock()

	id := uint64(len(f.txs[p.VaultID]) + 1)
	f.txs[p.VaultID] = append(f.txs[p.VaultID], &core.LedgerTransaction{
		ID:        id,
		Action:    p.Action,
		Content:   []byte(p.Content),
		Creator:   p.Creator,
		Threshold: p.Threshold,
	})

	return id, nil
}

func (f *fakeLedger) Confirm(ctx context.Context, vaultID string, proposalID uint64) error {
	f.mux.Lock()
	defer f.mux.Unlock()

	tx := f.findTx(vaultID, proposalID)
	if tx == nil {
		return errNotFound
	}

	principal, _ := core.CurrentPrincipal(ctx)
	tx.Confirmations = append(tx.Confirmations, principal)
	f.confirmed++
	return nil
}

func (f *fakeLedger) ExecuteProposal(ctx context.Context, vaultID string, proposalID uint64) (*core.LedgerTransaction, error) {
	f.mux.Lock()
	defer f.mux.Unlock()

	tx := f.findTx(vaultID, proposalID)
	if tx == nil {
		return nil, errNotFound
	}

	tx.Executed = true
	tx.Successful = true
	c := *tx
	return &c, nil
}

func (f *fakeLedger) GetOwners(ctx context.Context, vaultID string) ([]*core.Signer, error) {
	f.mux.Lock()
	defer f.mux.Unlock()

	vault, ok := f.accounts[vaultID]
	if !ok {
		return nil, errNotFound
	}

	signers := make([]*core.Signer, 0, len(vault.Signers))
	for _, p := range vault.Signers {
		signers = append(signers, &core.Signer{VaultID: vaultID, Principal: p})
	}

	return signers, nil
}

func (f *fakeLedger) GetTransactionDetails(ctx context.Context, vaultID string, proposalID uint64) (*core.LedgerTransaction, error) {
	f.mux.Lock()
	defer f.mux.Unlock()

	tx := f.findTx(vaultID, proposalID)
	if tx == nil {
		return nil, errNotFound
	}

	c := *tx
	return &c, nil
}

func (f *fakeLedger) GetTransactions(ctx context.Context, vaultID string) ([]*core.LedgerTransaction, error) {
	f.mux.Lock()
	defer f.mux.Unlock()

	if _, ok := f.accounts[vaultID]; !ok {
		return nil, errNotFound
	}

	txs := make([]*core.LedgerTransaction, 0, len(f.txs[vaultID]))
	for _, tx := range f.txs[vaultID] {
		c := *tx
		c.Confirmations = append([]string(nil), tx.Confirmations...)
		txs = append(txs, &c)
	}

	return txs, nil
}

func (f *fakeLedger) GetAccount(ctx context.Context, vaultID string) (*core.Vault, error) {
	f.mux.Lock()
	defer f.mux.Unlock()

	vault, ok := f.accounts[vaultID]
	if !ok {
		return nil, errNotFound
	}

	return vault.Clone(), nil
}

func (f *fakeLedger) CreateAccount(ctx context.Context, vault *core.Vault) error {
	f.mux.Lock()
	defer f.mux.Unlock()

	if vault.ID == "" {
		vault.ID = "v2"
	}

	f.accounts[vault.ID] = vault.Clone()
	return nil
}

func asSigner(principal string) context.Context {
	return core.WithSession(context.Background(), &core.Session{Principal: principal})
}

func TestVaults(t *testing.T) {
	ledger := newFakeLedger()
	s := New(ledger, []string{"v1"})
	ctx := context.Background()

	vaults, err := s.Vaults().List(ctx)
	require.NoError(t, err)
	require.Len(t, vaults, 1)
	assert.Equal(t, int64(100), vaults[0].Balance)

	_, err = s.Vaults().Find(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrVaultNotFound)

	vault := &core.Vault{Name: "ops", Threshold: 1, Signers: []string{"carol"}}
	require.NoError(t, s.Vaults().Create(ctx, vault))
	assert.Equal(t, "v2", vault.ID)

	vaults, err = s.Vaults().List(ctx)
	require.NoError(t, err)
	require.Len(t, vaults, 2)
	assert.Equal(t, "v2", vaults[1].ID)

	assert.ErrorIs(t, s.Vaults().Update(ctx, vault), core.ErrOperationForbidden)
}

func TestSigners(t *testing.T) {
	s := New(newFakeLedger(), []string{"v1"})
	ctx := context.Background()

	signers, err := s.Signers().List(ctx, "v1")
	require.NoError(t, err)
	require.Len(t, signers, 2)
	assert.Equal(t, "alice", signers[0].Principal)

	assert.NoError(t, s.Signers().Save(ctx, &core.Signer{VaultID: "v1", Principal: "bob"}))
	assert.ErrorIs(t, s.Signers().Save(ctx, &core.Signer{VaultID: "v1", Principal: "mallory"}), core.ErrOperationForbidden)
}

func TestProposalsAndDecisions(t *testing.T) {
	ledger := newFakeLedger()
	s := New(ledger, []string{"v1"})
	ctx := asSigner("alice")

	p := &core.Proposal{VaultID: "v1", Creator: "alice", Action: core.ActionTypeTransfer, Content: []byte(`{"recipient":"carol","amount":5}`), Threshold: 2}
	require.NoError(t, s.Proposals().Create(ctx, p))
	assert.Equal(t, uint64(1), p.ID)

	decisions, err := s.Decisions().List(ctx, "v1", p.ID)
	require.NoError(t, err)
	assert.Empty(t, decisions)

	require.NoError(t, s.Decisions().Record(ctx, &core.Decision{VaultID: "v1", ProposalID: p.ID, Voter: "alice", Approve: true}))
	err = s.Decisions().Record(ctx, &core.Decision{VaultID: "v1", ProposalID: p.ID, Voter: "alice", Approve: false})
	assert.ErrorIs(t, err, core.ErrOperationForbidden)
	assert.Equal(t, 1, ledger.confirmed)

	decisions, err = s.Decisions().List(ctx, "v1", p.ID)
	require.NoError(t, err)
	require.Len(t, decisions, 1)
	assert.Equal(t, "alice", decisions[0].Voter)

	// bob confirms out of band, only a refresh sees it
	require.NoError(t, ledger.Confirm(asSigner("bob"), "v1", p.ID))
	decisions, _ = s.Decisions().List(ctx, "v1", p.ID)
	assert.Len(t, decisions, 1)

	require.NoError(t, s.Decisions().Refresh(ctx, "v1"))
	decisions, err = s.Decisions().List(ctx, "v1", p.ID)
	require.NoError(t, err)
	require.Len(t, decisions, 2)
	assert.Equal(t, "bob", decisions[1].Voter)
	assert.True(t, decisions[1].Approve)

	found, err := s.Proposals().Find(ctx, "v1", p.ID)
	require.NoError(t, err)
	assert.False(t, found.Executed)

	_, err = s.Proposals().Find(ctx, "v1", 42)
	assert.ErrorIs(t, err, core.ErrProposalNotFound)

	assert.ErrorIs(t, s.Proposals().Update(ctx, found), core.ErrOperationForbidden)

	require.NoError(t, s.Proposals().Execute(ctx, found))
	assert.True(t, found.Executed)
	assert.True(t, found.Successful)
	assert.True(t, found.ExecutedAt.Valid)

	list, err := s.Proposals().List(ctx, "v1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Executed)
}

func TestDecisionsMissingVault(t *testing.T) {
	s := New(newFakeLedger(), nil)
	_, err := s.Decisions().List(context.Background(), "missing", 1)
	assert.ErrorIs(t, err, core.ErrVaultNotFound)
}
