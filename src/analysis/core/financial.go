package core

import (
	"math"

	"market-pulse/src/models"
)

// -----------------------------------------------------------------------------

// SummarizeSeries calculates the open/close/high/low range of a series and the
// change between its first and last value. It returns nil for an empty series.
func SummarizeSeries(points []models.MSeriesPoint) *models.MSeriesSummary {
	if len(points) == 0 {
		return nil
	}

	open := points[0].Value
	closePrice := points[len(points)-1].Value
	high := -math.MaxFloat64
	low := math.MaxFloat64
	sum := 0.0

	for _, p := range points {
		if p.Value > high {
			high = p.Value
		}
		if p.Value < low {
			low = p.Value
		}
		sum += p.Value
	}

	return &models.MSeriesSummary{
		Open:          open,
		Close:         closePrice,
		High:          high,
		Low:           low,
		Average:       sum / float64(len(points)),
		Change:        closePrice - open,
		ChangePercent: RoundTo(CalculateChangePercent(closePrice, open)*100, 2),
		Points:        len(points),
	}
}

// -----------------------------------------------------------------------------

// CalculateChangePercent calculates fractional change.
func CalculateChangePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0.0
	}
	return (current - previous) / previous
}

// -----------------------------------------------------------------------------

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
