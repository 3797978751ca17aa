package aggregator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"market-pulse/src/helpers"
	"market-pulse/src/interfaces"
	"market-pulse/src/logger"
	"market-pulse/src/models"

	"golang.org/x/sync/errgroup"
)

// EntrySource lists the symbols to aggregate.
type EntrySource interface {
	Entries() []models.MSymbolEntry
}

// SnapshotAggregator fetches every registry entry concurrently and keeps the
// ones that succeeded. A Concurrency of 0 gives every entry its own slot, so a
// stalled symbol never holds back a healthy one.
type SnapshotAggregator struct {
	Registry    EntrySource
	Fetcher     interfaces.IQuoteFetcher
	Logger      *logger.Logger
	Concurrency int
	Now         func() time.Time

	mu      sync.RWMutex
	metrics models.MAggregationMetrics
}

// -----------------------------------------------------------------------------

func NewSnapshotAggregator(cfg *models.MConfig, reg EntrySource, fetcher interfaces.IQuoteFetcher, log *logger.Logger) *SnapshotAggregator {
	return &SnapshotAggregator{
		Registry:    reg,
		Fetcher:     fetcher,
		Logger:      log,
		Concurrency: cfg.Network.ConcurrentRequests,
		Now:         time.Now,
	}
}

// -----------------------------------------------------------------------------

// BuildSnapshot fans out one quote fetch per entry and waits for all of them.
// Individual failures only shrink the result; the error is reserved for a
// failure of the fan-out itself.
func (a *SnapshotAggregator) BuildSnapshot(ctx context.Context) (models.MMarketSnapshot, error) {
	start := time.Now()
	entries := a.Registry.Entries()

	// One slot per entry keeps registry order without locking.
	slots := make([]*models.MMarketRecord, len(entries))

	var g errgroup.Group
	if a.Concurrency > 0 {
		g.SetLimit(a.Concurrency)
	}

	for i, entry := range entries {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = helpers.NewCatastrophicAggregationError(
						fmt.Sprintf("quote task for %s panicked", entry.Code), fmt.Errorf("%v", r))
				}
			}()

			quote, ok := a.Fetcher.FetchQuote(ctx, entry.ProviderID)
			if !ok {
				return nil
			}
			rec := models.NewMarketRecord(entry, quote)
			slots[i] = &rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		a.Logger.Error("Snapshot aggregation failed: %v", err)
		return models.MMarketSnapshot{}, err
	}

	records := make([]models.MMarketRecord, 0, len(entries))
	for _, rec := range slots {
		if rec != nil {
			records = append(records, *rec)
		}
	}

	elapsed := time.Since(start).Seconds()
	now := a.Now()
	a.storeMetrics(models.MAggregationMetrics{
		AggregationTimeSeconds: elapsed,
		RequestedSymbols:       len(entries),
		ValidSymbols:           len(records),
		FailedSymbols:          len(entries) - len(records),
		Timestamp:              now.Unix(),
	})

	a.Logger.Info("Fetched %d/%d symbols successfully in %.2fs", len(records), len(entries), elapsed)
	return models.NewMarketSnapshot(records, now), nil
}

// -----------------------------------------------------------------------------

func (a *SnapshotAggregator) storeMetrics(m models.MAggregationMetrics) {
	a.mu.Lock()
	a.metrics = m
	a.mu.Unlock()
}

// LastMetrics returns the metrics of the most recent successful run.
func (a *SnapshotAggregator) LastMetrics() models.MAggregationMetrics {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.metrics
}
