package models

import "time"

// Payloads for the dashboard frontend paths (/api/market/*). They keep the
// field names the dashboard reads, so its components work unchanged.

const (
	DashboardSourceLive = "yahoo"
	DashboardSourceMock = "mock"

	dashboardFallbackError = "live market data unavailable, serving synthetic data"
)

// -----------------------------------------------------------------------------

type MDashboardIndices struct {
	Indices    []MMarketRecord   `json:"indices"`
	Timestamp  time.Time         `json:"timestamp"`
	Total      int               `json:"total"`
	Categories map[MCategory]int `json:"categories"`
	Error      string            `json:"error,omitempty"`
}

// NewDashboardIndices reshapes a snapshot response for the dashboard.
func NewDashboardIndices(resp MSnapshotResponse) MDashboardIndices {
	out := MDashboardIndices{
		Indices:    resp.Records,
		Timestamp:  resp.Timestamp,
		Total:      resp.Total,
		Categories: resp.CategoryCounts,
	}
	if resp.Source == SourceFallback {
		out.Error = dashboardFallbackError
	}
	return out
}

// -----------------------------------------------------------------------------

type MDashboardChart struct {
	Data   []MSeriesPoint `json:"data"`
	Symbol string         `json:"symbol"`
	Period string         `json:"period"`
	Source string         `json:"source"`
	Error  string         `json:"error,omitempty"`
}

// NewDashboardChart reshapes a series response for the dashboard. period is
// echoed as the caller sent it.
func NewDashboardChart(resp MSeriesResponse, period string) MDashboardChart {
	if period == "" {
		period = resp.Timeframe
	}
	out := MDashboardChart{
		Data:   resp.Points,
		Symbol: resp.Symbol,
		Period: period,
		Source: DashboardSourceLive,
	}
	if resp.Source == SourceFallback {
		out.Source = DashboardSourceMock
		out.Error = dashboardFallbackError
	}
	if out.Data == nil {
		out.Data = []MSeriesPoint{}
	}
	return out
}
