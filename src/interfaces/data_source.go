package interfaces

import (
	"context"

	"market-pulse/src/models"
)

// -----------------------------------------------------------------------------
// IQuoteFetcher retrieves the latest price pair for one provider symbol.
// -----------------------------------------------------------------------------

type IQuoteFetcher interface {

	// FetchQuote never fails: any failure is reported as ok == false.
	FetchQuote(ctx context.Context, providerID string) (quote models.MQuoteRaw, ok bool)
}

// -----------------------------------------------------------------------------
// ISeriesFetcher retrieves a normalized time series for one symbol.
// -----------------------------------------------------------------------------

type ISeriesFetcher interface {

	// FetchSeries returns points or a provider / insufficient-data error.
	FetchSeries(ctx context.Context, req models.MSeriesRequest) ([]models.MSeriesPoint, error)
}

// -----------------------------------------------------------------------------
// ISnapshotBuilder assembles a snapshot across the whole registry.
// -----------------------------------------------------------------------------

type ISnapshotBuilder interface {

	// BuildSnapshot returns the records that could be fetched, or a
	// catastrophic error when coordination itself failed.
	BuildSnapshot(ctx context.Context) (models.MMarketSnapshot, error)

	// -----------------------------------------------------------------------------

	// LastMetrics returns the metrics of the most recent run.
	LastMetrics() models.MAggregationMetrics
}

// -----------------------------------------------------------------------------
// ISynthesizer produces deterministic-in-shape substitute data.
// -----------------------------------------------------------------------------

type ISynthesizer interface {
	SynthesizeSnapshot() models.MMarketSnapshot

	// -----------------------------------------------------------------------------

	SynthesizeSeries(req models.MSeriesRequest) []models.MSeriesPoint
}

// -----------------------------------------------------------------------------
// ISymbolResolver maps internal codes to provider identifiers.
// -----------------------------------------------------------------------------

type ISymbolResolver interface {
	ResolveProviderID(code string) string
}
