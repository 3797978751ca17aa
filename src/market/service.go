package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"market-pulse/src/analysis/core"
	"market-pulse/src/cache"
	"market-pulse/src/helpers"
	"market-pulse/src/interfaces"
	"market-pulse/src/logger"
	"market-pulse/src/models"
)

const (
	snapshotKey   = "snapshot"
	defaultSymbol = "IBOV"
)

// Service decides between live and synthetic data for the boundary. Its
// methods never fail: every error path ends in a synthetic payload.
type Service struct {
	Aggregator  interfaces.ISnapshotBuilder
	Fetcher     interfaces.ISeriesFetcher
	Synthesizer interfaces.ISynthesizer
	Logger      *logger.Logger

	fallbackOnEmpty bool
	defaultSymbol   string
	requestTimeout  time.Duration
	ttl             time.Duration

	snapshots *cache.TTL[models.MSnapshotResponse]
	series    *cache.TTL[models.MSeriesResponse]
}

// -----------------------------------------------------------------------------

func NewService(cfg *models.MConfig, agg interfaces.ISnapshotBuilder, series interfaces.ISeriesFetcher, synth interfaces.ISynthesizer, log *logger.Logger) *Service {
	ttl := time.Duration(cfg.Market.CacheTTLSeconds) * time.Second

	def := strings.ToUpper(strings.TrimSpace(cfg.Market.DefaultSymbol))
	if def == "" {
		def = defaultSymbol
	}

	return &Service{
		Aggregator:      agg,
		Fetcher:         series,
		Synthesizer:     synth,
		Logger:          log,
		fallbackOnEmpty: cfg.Market.FallbackOnEmpty,
		defaultSymbol:   def,
		requestTimeout:  time.Duration(cfg.Market.RequestTimeoutSeconds) * time.Second,
		ttl:             ttl,
		snapshots:       cache.NewTTL[models.MSnapshotResponse](ttl, 1),
		series:          cache.NewTTL[models.MSeriesResponse](ttl, cfg.Market.CacheMaxItems),
	}
}

// CacheTTL is how long live responses stay fresh.
func (s *Service) CacheTTL() time.Duration { return s.ttl }

// -----------------------------------------------------------------------------

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.requestTimeout)
}

// -----------------------------------------------------------------------------
// Snapshot
// -----------------------------------------------------------------------------

// Snapshot returns the cached live snapshot, or builds a new one.
func (s *Service) Snapshot(ctx context.Context) models.MSnapshotResponse {
	if cached, ok := s.snapshots.Get(snapshotKey); ok {
		return cached
	}
	return s.RefreshSnapshot(ctx)
}

// RefreshSnapshot rebuilds the snapshot, bypassing the cache.
func (s *Service) RefreshSnapshot(ctx context.Context) (resp models.MSnapshotResponse) {
	defer func() {
		if r := recover(); r != nil {
			s.Logger.Error("Snapshot build panicked: %v", r)
			resp = s.fallbackSnapshot()
		}
	}()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	snap, err := s.Aggregator.BuildSnapshot(ctx)
	if err != nil {
		s.Logger.Error("Serving synthetic snapshot: %v", err)
		return s.fallbackSnapshot()
	}

	if snap.Total == 0 && s.fallbackOnEmpty {
		s.Logger.Warning("No live quotes available, serving synthetic snapshot")
		return s.fallbackSnapshot()
	}

	resp = models.MSnapshotResponse{MMarketSnapshot: snap}
	s.snapshots.Set(snapshotKey, resp)
	return resp
}

func (s *Service) fallbackSnapshot() models.MSnapshotResponse {
	return models.MSnapshotResponse{
		MMarketSnapshot: s.Synthesizer.SynthesizeSnapshot(),
		Source:          models.SourceFallback,
	}
}

// -----------------------------------------------------------------------------
// Series
// -----------------------------------------------------------------------------

// Series returns the live series for symbol, or a synthetic one when the
// provider fails or the intraday series is too thin.
func (s *Service) Series(ctx context.Context, symbol, timeframe string) (resp models.MSeriesResponse) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		symbol = s.defaultSymbol
	}
	tf := models.ResolveTimeframe(timeframe)
	req := models.MSeriesRequest{Symbol: symbol, Timeframe: tf.Key}
	key := fmt.Sprintf("series:%s:%s", symbol, tf.Key)

	if cached, ok := s.series.Get(key); ok {
		return cached
	}

	defer func() {
		if r := recover(); r != nil {
			s.Logger.Error("Series %s %s panicked: %v", symbol, tf.Key, r)
			resp = s.fallbackSeries(req)
		}
	}()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	points, err := s.Fetcher.FetchSeries(ctx, req)
	if err != nil {
		if helpers.IsInsufficientData(err) {
			s.Logger.Info("Serving synthetic series: %v", err)
		} else {
			s.Logger.Warning("Serving synthetic series for %s %s: %v", symbol, tf.Key, err)
		}
		return s.fallbackSeries(req)
	}

	resp = models.MSeriesResponse{
		Points:    points,
		Symbol:    symbol,
		Timeframe: tf.Key,
		Source:    models.SourceLive,
		Summary:   core.SummarizeSeries(points),
	}
	s.series.Set(key, resp)
	return resp
}

func (s *Service) fallbackSeries(req models.MSeriesRequest) models.MSeriesResponse {
	points := s.Synthesizer.SynthesizeSeries(req)
	return models.MSeriesResponse{
		Points:    points,
		Symbol:    req.Symbol,
		Timeframe: req.Timeframe,
		Source:    models.SourceFallback,
		Summary:   core.SummarizeSeries(points),
	}
}

// -----------------------------------------------------------------------------

// Metrics returns the last aggregation metrics.
func (s *Service) Metrics() models.MAggregationMetrics {
	return s.Aggregator.LastMetrics()
}
