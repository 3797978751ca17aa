package models

import (
	"strings"
	"time"
)

// MSeriesPoint is one observation of a time series. Zero OHLC/volume fields are
// omitted from the wire payload.
type MSeriesPoint struct {
	Label     string  `json:"time"`
	Timestamp int64   `json:"timestamp,omitempty"`
	Value     float64 `json:"value"`
	Open      float64 `json:"open,omitempty"`
	High      float64 `json:"high,omitempty"`
	Low       float64 `json:"low,omitempty"`
	Close     float64 `json:"close,omitempty"`
	Volume    float64 `json:"volume,omitempty"`
}

type MSeriesRequest struct {
	Symbol    string `json:"symbol"`
	Timeframe string `json:"timeframe"`
}

// MSeriesSummary describes the range covered by a series.
type MSeriesSummary struct {
	Open          float64 `json:"open"`
	Close         float64 `json:"close"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Average       float64 `json:"average"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Points        int     `json:"points"`
}

// MSeriesResponse is the boundary payload for the series endpoint.
type MSeriesResponse struct {
	Points    []MSeriesPoint  `json:"points"`
	Symbol    string          `json:"symbol"`
	Timeframe string          `json:"timeframe"`
	Source    string          `json:"source"`
	Summary   *MSeriesSummary `json:"summary,omitempty"`
}

const (
	SourceLive     = "live"
	SourceFallback = "fallback"
)

// -----------------------------------------------------------------------------
// Timeframes
// -----------------------------------------------------------------------------

// MStep is the spacing between consecutive synthetic points.
type MStep int

const (
	StepIntraday MStep = iota
	StepBusinessDay
	StepWeek
	StepMonth
	StepQuarter
	StepYear
)

type MTimeframe struct {
	Key             string
	Range           string
	Interval        string
	LabelLayout     string
	Intraday        bool
	MinPoints       int
	SyntheticPoints int
	Step            MStep
}

// IntradayMinPoints is the density floor below which an intraday series is
// considered unusable.
const IntradayMinPoints = 5

var Timeframes = []MTimeframe{
	{Key: "1D", Range: "1d", Interval: "5m", LabelLayout: "15:04", Intraday: true, MinPoints: IntradayMinPoints, SyntheticPoints: 65, Step: StepIntraday},
	{Key: "1W", Range: "5d", Interval: "1d", LabelLayout: "Mon 02", SyntheticPoints: 5, Step: StepBusinessDay},
	{Key: "1M", Range: "1mo", Interval: "1d", LabelLayout: "02/01", SyntheticPoints: 20, Step: StepBusinessDay},
	{Key: "6M", Range: "6mo", Interval: "1d", LabelLayout: "02/01", SyntheticPoints: 24, Step: StepWeek},
	{Key: "1Y", Range: "1y", Interval: "1d", LabelLayout: "Jan 06", SyntheticPoints: 12, Step: StepMonth},
	{Key: "5Y", Range: "5y", Interval: "1wk", LabelLayout: "Jan 06", SyntheticPoints: 20, Step: StepQuarter},
	{Key: "MAX", Range: "max", Interval: "1mo", LabelLayout: "Jan 06", SyntheticPoints: 10, Step: StepYear},
}

var timeframeAliases = map[string]string{
	"INTRADAY": "1D",
	"1S":       "1W",
	"WEEK":     "1W",
	"5D":       "1W",
	"MONTH":    "1M",
	"1MO":      "1M",
	"6MO":      "6M",
	"1A":       "1Y",
	"YEAR":     "1Y",
	"5A":       "5Y",
	"MÁX.":     "MAX",
	"MÁX":      "MAX",
	"MAX.":     "MAX",
}

// Label renders t with the timeframe's label layout in loc.
func (tf MTimeframe) Label(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(tf.LabelLayout)
}

// ResolveTimeframe maps a timeframe key or alias to its definition. Unknown keys
// resolve to the intraday timeframe.
func ResolveTimeframe(key string) MTimeframe {
	k := strings.ToUpper(strings.TrimSpace(key))
	if alias, ok := timeframeAliases[k]; ok {
		k = alias
	}
	for _, tf := range Timeframes {
		if tf.Key == k {
			return tf
		}
	}
	return Timeframes[0]
}
