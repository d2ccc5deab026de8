package syncer

import (
	"context"
	"errors"
	"testing"
	"time"

	"cosign/core"
	"cosign/store/memory"

	"github.com/fox-one/pkg/property"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type refreshRecorder struct {
	core.DecisionService
	refreshed []string
	principal string
	err       error
	failing   string
}

func (r *refreshRecorder) Refresh(ctx context.Context, vaultID string) error {
	r.refreshed = append(r.refreshed, vaultID)
	r.principal, _ = core.CurrentPrincipal(ctx)
	if r.failing == vaultID {
		return errors.New("vault unavailable")
	}

	return r.err
}

type savedProperty struct {
	property.Store
	saved []string
}

func (p *savedProperty) Save(ctx context.Context, key string, value interface{}) error {
	p.saved = append(p.saved, key)
	return nil
}

func TestSync(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	for _, name := range []string{"a", "b"} {
		require.NoError(t, s.Vaults().Create(ctx, &core.Vault{Name: name, Threshold: 1, Signers: []string{"alice"}}))
	}

	recorder := &refreshRecorder{}
	syncer := New(Config{Interval: time.Minute, Principal: "watcher"}, s.Vaults(), recorder, nil)

	require.NoError(t, syncer.onWork(ctx))
	assert.Len(t, recorder.refreshed, 2)
	assert.Equal(t, "watcher", recorder.principal)

	checkpoint, err := syncer.Checkpoint(ctx)
	require.NoError(t, err)
	assert.True(t, checkpoint.IsZero())

	recorder.err = errors.New("ledger down")
	assert.Error(t, syncer.onWork(ctx))
	assert.Len(t, recorder.refreshed, 4)

	// a failing tick does not block the next one
	syncer.Run()
	assert.Len(t, recorder.refreshed, 6)
}

func TestSyncContinuesPastFailedVault(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Vaults().Create(ctx, &core.Vault{ID: id, Name: id, Threshold: 1, Signers: []string{"alice"}}))
	}

	recorder := &refreshRecorder{failing: "a"}
	checkpoints := &savedProperty{}
	syncer := New(Config{Interval: time.Minute}, s.Vaults(), recorder, checkpoints)

	err := syncer.Sync(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh vault a")
	assert.Equal(t, []string{"a", "b", "c"}, recorder.refreshed)
	assert.Empty(t, checkpoints.saved)

	recorder.failing = ""
	require.NoError(t, syncer.Sync(ctx))
	assert.Equal(t, []string{checkpointKey}, checkpoints.saved)
}
