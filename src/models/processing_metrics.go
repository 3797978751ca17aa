package models

// MAggregationMetrics describes the last snapshot fan-out.
type MAggregationMetrics struct {
	AggregationTimeSeconds float64 `json:"aggregation_time_seconds"`
	RequestedSymbols       int     `json:"requested_symbols"`
	ValidSymbols           int     `json:"valid_symbols"`
	FailedSymbols          int     `json:"failed_symbols"`
	Timestamp              int64   `json:"timestamp"`
}
