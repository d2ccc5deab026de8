package syncer

import (
	"context"
	"fmt"
	"time"

	"cosign/core"
	"cosign/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/hashicorp/go-multierror"
	"github.com/robfig/cron/v3"
)

const checkpointKey = "sync_checkpoint"

// Config syncer config
type Config struct {
	Interval time.Duration
	Location string
	// Principal acts on behalf of the syncer, empty for anonymous reads
	Principal string
}

// Syncer pulls proposals and confirmations of every vault from the ledger
type Syncer struct {
	worker.BaseJob
	vaults    core.VaultStore
	decisionz core.DecisionService
	property  property.Store
	principal string
}

// New new sync worker, property may be nil
func New(
	cfg Config,
	vaults core.VaultStore,
	decisionz core.DecisionService,
	property property.Store,
) *Syncer {
	syncer := Syncer{
		vaults:    vaults,
		decisionz: decisionz,
		property:  property,
		principal: cfg.Principal,
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	l, err := time.LoadLocation(cfg.Location)
	if err != nil {
		l = time.UTC
	}

	syncer.Cron = cron.New(cron.WithLocation(l))
	spec := fmt.Sprintf("@every %s", interval)
	if _, err := syncer.Cron.AddFunc(spec, syncer.Run); err != nil {
		panic(err)
	}

	syncer.OnWork = func() error {
		return syncer.onWork(context.Background())
	}

	return &syncer
}

func (w *Syncer) onWork(ctx context.Context) error {
	if w.principal != "" {
		ctx = core.WithSession(ctx, &core.Session{Principal: w.principal})
	}

	log := logger.FromContext(ctx).WithField("worker", "syncer")
	ctx = logger.WithContext(ctx, log)

	if err := w.Sync(ctx); err != nil {
		log.WithError(err).Errorln("sync vaults")
		return err
	}

	return nil
}

// Sync refresh the decisions of every vault once
func (w *Syncer) Sync(ctx context.Context) error {
	log := logger.FromContext(ctx)

	vaults, err := w.vaults.List(ctx)
	if err != nil {
		log.WithError(err).Errorln("vaults.List")
		return err
	}

	var result *multierror.Error
	for _, vault := range vaults {
		if err := w.decisionz.Refresh(ctx, vault.ID); err != nil {
			log.WithError(err).Errorln("decisionz.Refresh", vault.ID)
			result = multierror.Append(result, fmt.Errorf("refresh vault %s: %w", vault.ID, err))
			continue
		}

		if cache, ok := w.vaults.(core.VaultCache); ok {
			cache.Forget(vault.ID)
		}
	}

	// the checkpoint only moves after a complete pass
	if err := result.ErrorOrNil(); err != nil {
		return err
	}

	if w.property == nil {
		return nil
	}

	if err := w.property.Save(ctx, checkpointKey, time.Now()); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	return nil
}

// Checkpoint time of the last complete sync, zero if never synced
func (w *Syncer) Checkpoint(ctx context.Context) (time.Time, error) {
	if w.property == nil {
		return time.Time{}, nil
	}

	v, err := w.property.Get(ctx, checkpointKey)
	if err != nil {
		return time.Time{}, err
	}

	return v.Time(), nil
}
