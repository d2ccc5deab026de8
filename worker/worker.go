package worker

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"
)

// IJob cron job
type IJob interface {
	Start() error
	Run()
	Stop() error
}

type OnWork func() error

type BaseJob struct {
	Cron   *cron.Cron
	OnWork OnWork

	running sync.Mutex
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	<-job.Cron.Stop().Done()
	return nil
}

// Run skips the tick while the previous one is still working
func (job *BaseJob) Run() {
	if !job.running.TryLock() {
		return
	}

	defer job.running.Unlock()
	_ = job.OnWork()
}

// Serve start job and stop it once ctx is done
func Serve(ctx context.Context, job IJob) error {
	if err := job.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	return job.Stop()
}
