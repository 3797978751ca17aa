package core_test

import (
	"testing"

	"market-pulse/src/analysis/core"
	"market-pulse/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeSeries(t *testing.T) {
	t.Parallel()

	points := []models.MSeriesPoint{
		{Label: "10:00", Value: 100},
		{Label: "10:05", Value: 104},
		{Label: "10:10", Value: 98},
		{Label: "10:15", Value: 102},
	}

	s := core.SummarizeSeries(points)
	require.NotNil(t, s)
	assert.Equal(t, 100.0, s.Open)
	assert.Equal(t, 102.0, s.Close)
	assert.Equal(t, 104.0, s.High)
	assert.Equal(t, 98.0, s.Low)
	assert.Equal(t, 101.0, s.Average)
	assert.Equal(t, 2.0, s.Change)
	assert.Equal(t, 2.0, s.ChangePercent)
	assert.Equal(t, 4, s.Points)

	assert.Nil(t, core.SummarizeSeries(nil))
}

func TestRoundTo(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.23, core.RoundTo(1.2345, 2))
	assert.Equal(t, 0.0341, core.RoundTo(0.03412, 4))
	assert.Equal(t, 5.455, core.RoundTo(5.4549, 3))
	assert.Equal(t, 1.5, core.RoundTo(1.5, -1))
	assert.Equal(t, 0.0, core.CalculateChangePercent(10, 0))
}
