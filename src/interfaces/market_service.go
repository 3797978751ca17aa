package interfaces

import (
	"context"
	"time"

	"market-pulse/src/models"
)

// -----------------------------------------------------------------------------
// IMarketService is the boundary's view of the live-or-synthetic decision
// policy. None of its methods fail.
// -----------------------------------------------------------------------------

type IMarketService interface {
	Snapshot(ctx context.Context) models.MSnapshotResponse

	// -----------------------------------------------------------------------------

	// RefreshSnapshot rebuilds the snapshot and bypasses the cache.
	RefreshSnapshot(ctx context.Context) models.MSnapshotResponse

	// -----------------------------------------------------------------------------

	Series(ctx context.Context, symbol, timeframe string) models.MSeriesResponse

	// -----------------------------------------------------------------------------

	Metrics() models.MAggregationMetrics

	// -----------------------------------------------------------------------------

	// CacheTTL is how long clients may cache a live response.
	CacheTTL() time.Duration
}

// -----------------------------------------------------------------------------
// ISymbolCatalog lists the configured symbols.
// -----------------------------------------------------------------------------

type ISymbolCatalog interface {
	ListByCategory() []models.MSymbolEntry
}

// -----------------------------------------------------------------------------
// IMarketHours reports whether any tracked trading session is open.
// -----------------------------------------------------------------------------

type IMarketHours interface {
	AnyMarketOpen() bool
}
