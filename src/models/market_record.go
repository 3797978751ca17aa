package models

import (
	"math"
	"time"
)

// MQuoteRaw is the minimal pair read from the provider for one symbol.
type MQuoteRaw struct {
	LastPrice     float64 `json:"lastPrice"`
	PreviousClose float64 `json:"previousClose"`
}

// -----------------------------------------------------------------------------

type MMarketRecord struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Value         float64   `json:"value"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	IsPositive    bool      `json:"isPositive"`
	Category      MCategory `json:"category"`
}

// NewMarketRecord derives the display record for entry from a raw quote.
func NewMarketRecord(entry MSymbolEntry, quote MQuoteRaw) MMarketRecord {
	change := quote.LastPrice - quote.PreviousClose

	changePercent := 0.0
	if quote.PreviousClose != 0 {
		changePercent = math.Round(change/quote.PreviousClose*100*100) / 100
	}

	return MMarketRecord{
		Symbol:        entry.Code,
		Name:          entry.Name,
		Value:         quote.LastPrice,
		Change:        change,
		ChangePercent: changePercent,
		IsPositive:    change >= 0,
		Category:      entry.Category,
	}
}

// -----------------------------------------------------------------------------

type MMarketSnapshot struct {
	Records        []MMarketRecord   `json:"records"`
	Timestamp      time.Time         `json:"timestamp"`
	Total          int               `json:"total"`
	CategoryCounts map[MCategory]int `json:"categoryCounts"`
}

// NewMarketSnapshot builds a snapshot whose totals are derived from records.
// Every known category is present in the counts, even when empty.
func NewMarketSnapshot(records []MMarketRecord, ts time.Time) MMarketSnapshot {
	counts := make(map[MCategory]int, len(Categories))
	for _, c := range Categories {
		counts[c] = 0
	}
	for _, r := range records {
		counts[r.Category]++
	}

	if records == nil {
		records = []MMarketRecord{}
	}

	return MMarketSnapshot{
		Records:        records,
		Timestamp:      ts,
		Total:          len(records),
		CategoryCounts: counts,
	}
}

// -----------------------------------------------------------------------------

// MSnapshotResponse is the boundary payload for the snapshot endpoint.
type MSnapshotResponse struct {
	MMarketSnapshot
	Source string `json:"source,omitempty"`
}
