package yahoo

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"market-pulse/src/helpers"
	"market-pulse/src/interfaces"
	"market-pulse/src/logger"
	"market-pulse/src/models"
)

const DefaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// YahooFinanceSource reads quotes and series from the Yahoo chart API.
type YahooFinanceSource struct {
	Config   *models.MConfig
	Network  interfaces.INetworkManager
	Symbols  interfaces.ISymbolResolver
	Logger   *logger.Logger
	BaseURL  string
	Location *time.Location
}

// -----------------------------------------------------------------------------

func NewYahooFinanceSource(cfg *models.MConfig, netMgr interfaces.INetworkManager, symbols interfaces.ISymbolResolver, log *logger.Logger) *YahooFinanceSource {
	baseURL := strings.TrimRight(cfg.Provider.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	loc := time.UTC
	if cfg.Market.LabelTimezone != "" {
		if l, err := time.LoadLocation(cfg.Market.LabelTimezone); err == nil {
			loc = l
		} else {
			log.Warning("Unknown label timezone %q, using UTC", cfg.Market.LabelTimezone)
		}
	}

	return &YahooFinanceSource{
		Config:   cfg,
		Network:  netMgr,
		Symbols:  symbols,
		Logger:   log,
		BaseURL:  baseURL,
		Location: loc,
	}
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) chartURL(providerID string) string {
	return fmt.Sprintf("%s/%s", s.BaseURL, providerID)
}

// -----------------------------------------------------------------------------

// FetchQuote returns the last price and previous close for providerID. Any
// transport or schema failure is logged and reported as ok == false.
func (s *YahooFinanceSource) FetchQuote(ctx context.Context, providerID string) (models.MQuoteRaw, bool) {
	params := map[string]string{
		"range":    "1d",
		"interval": "1d",
	}

	body, err := s.Network.Get(ctx, s.chartURL(providerID), params)
	if err != nil {
		s.Logger.Debug("Quote %s unavailable: %v", providerID, err)
		return models.MQuoteRaw{}, false
	}

	quote, err := parseQuote(providerID, body)
	if err != nil {
		s.Logger.Warning("Quote %s rejected: %v", providerID, err)
		return models.MQuoteRaw{}, false
	}
	return quote, true
}

// -----------------------------------------------------------------------------

func parseQuote(providerID string, body []byte) (models.MQuoteRaw, error) {
	result, err := decodeChart(providerID, body)
	if err != nil {
		return models.MQuoteRaw{}, err
	}

	last, prev := result.Meta.RegularMarketPrice, result.Meta.ChartPreviousClose
	if !finite(last) || !finite(prev) {
		return models.MQuoteRaw{}, helpers.NewProviderSchemaError(
			fmt.Sprintf("missing regularMarketPrice/chartPreviousClose for %s", providerID), nil)
	}
	return models.MQuoteRaw{LastPrice: *last, PreviousClose: *prev}, nil
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// -----------------------------------------------------------------------------

// FetchSeries returns the normalized series for req. Errors are provider errors
// (transport or schema) or *helpers.InsufficientDataError for a thin intraday
// series.
func (s *YahooFinanceSource) FetchSeries(ctx context.Context, req models.MSeriesRequest) ([]models.MSeriesPoint, error) {
	tf := models.ResolveTimeframe(req.Timeframe)
	providerID := s.Symbols.ResolveProviderID(req.Symbol)

	params := map[string]string{
		"range":    tf.Range,
		"interval": tf.Interval,
	}

	body, err := s.Network.Get(ctx, s.chartURL(providerID), params)
	if err != nil {
		return nil, fmt.Errorf("fetch series %s (%s): %w", req.Symbol, tf.Key, err)
	}

	points, err := s.parseSeries(providerID, tf, body)
	if err != nil {
		return nil, fmt.Errorf("fetch series %s (%s): %w", req.Symbol, tf.Key, err)
	}

	if len(points) < tf.MinPoints {
		return nil, helpers.NewInsufficientDataError(req.Symbol, len(points), tf.MinPoints)
	}
	if len(points) == 0 {
		return nil, helpers.NewProviderSchemaError(fmt.Sprintf("no valid data points for %s", providerID), nil)
	}

	s.Logger.Debug("Fetched %s %s: %d valid points", req.Symbol, tf.Key, len(points))
	return points, nil
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) parseSeries(providerID string, tf models.MTimeframe, body []byte) ([]models.MSeriesPoint, error) {
	result, err := decodeChart(providerID, body)
	if err != nil {
		return nil, err
	}

	if len(result.Timestamp) == 0 {
		return nil, helpers.NewProviderSchemaError(fmt.Sprintf("no timestamps in response for %s", providerID), nil)
	}
	if len(result.Indicators.Quote) == 0 {
		return nil, helpers.NewProviderSchemaError(fmt.Sprintf("no quote data in response for %s", providerID), nil)
	}

	quote := result.Indicators.Quote[0]
	points := make([]models.MSeriesPoint, 0, len(result.Timestamp))
	skipped := 0

	for i, ts := range result.Timestamp {
		value := valueAt(quote.Close, i)
		if value <= 0 {
			skipped++
			continue
		}

		points = append(points, models.MSeriesPoint{
			Label:     tf.Label(time.Unix(ts, 0), s.Location),
			Timestamp: ts,
			Value:     value,
			Open:      valueAt(quote.Open, i),
			High:      valueAt(quote.High, i),
			Low:       valueAt(quote.Low, i),
			Close:     value,
			Volume:    valueAt(quote.Volume, i),
		})
	}

	if skipped > 0 {
		s.Logger.Debug("Dropped %d non-positive points for %s", skipped, providerID)
	}

	return points, nil
}
