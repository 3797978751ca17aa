package scheduler

import (
	"context"
	"fmt"
	"sync"

	"market-pulse/src/interfaces"
	"market-pulse/src/logger"

	"github.com/robfig/cron/v3"
)

// Refresher periodically rebuilds the snapshot and pushes it to stream
// listeners. Ticks are skipped while every market is closed or nobody listens.
type Refresher struct {
	Cron     *cron.Cron
	Service  interfaces.IMarketService
	Exchange interfaces.IDataExchanger
	Hours    interfaces.IMarketHours
	Logger   *logger.Logger
	Ctx      context.Context

	// running guards against overlapping ticks
	running sync.Mutex
}

func NewRefresher(ctx context.Context, svc interfaces.IMarketService, ex interfaces.IDataExchanger, hours interfaces.IMarketHours, log *logger.Logger) *Refresher {
	return &Refresher{
		Cron:     cron.New(),
		Service:  svc,
		Exchange: ex,
		Hours:    hours,
		Logger:   log,
		Ctx:      ctx,
	}
}

// Register schedules the refresh job on spec, a standard cron expression or
// descriptor such as "@every 60s".
func (r *Refresher) Register(spec string) error {
	if _, err := r.Cron.AddFunc(spec, func() { r.RunOnce() }); err != nil {
		return fmt.Errorf("register refresh job: %w", err)
	}
	return nil
}

func (r *Refresher) Start() {
	r.Cron.Start()
	r.Logger.Info("Refresher started")
}

// Stop waits for a running tick to finish.
func (r *Refresher) Stop() {
	<-r.Cron.Stop().Done()
	r.Logger.Info("Refresher stopped")
}

// -----------------------------------------------------------------------------

// RunOnce performs a single tick and reports whether a snapshot was pushed.
func (r *Refresher) RunOnce() bool {
	if !r.running.TryLock() {
		r.Logger.Debug("Previous refresh still running, skipping tick")
		return false
	}
	defer r.running.Unlock()

	if r.Exchange.Connections() == 0 {
		r.Logger.Debug("No stream listeners, skipping refresh")
		return false
	}
	if r.Hours != nil && !r.Hours.AnyMarketOpen() {
		r.Logger.Debug("All markets closed, skipping refresh")
		return false
	}

	snap := r.Service.RefreshSnapshot(r.Ctx)
	r.Exchange.Broadcast(snap)
	r.Logger.Info("Pushed snapshot with %d records (source=%q)", snap.Total, snap.Source)
	return true
}
