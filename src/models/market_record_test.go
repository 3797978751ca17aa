package models_test

import (
	"testing"
	"time"

	"market-pulse/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMarketRecord(t *testing.T) {
	t.Parallel()

	entry := models.MSymbolEntry{Code: "SPX", Name: "S&P 500", Category: models.CategoryIndices}

	tests := []struct {
		name          string
		quote         models.MQuoteRaw
		change        float64
		changePercent float64
		positive      bool
	}{
		{"gain", models.MQuoteRaw{LastPrice: 110, PreviousClose: 100}, 10, 10.00, true},
		{"loss", models.MQuoteRaw{LastPrice: 95, PreviousClose: 100}, -5, -5.00, false},
		{"flat", models.MQuoteRaw{LastPrice: 100, PreviousClose: 100}, 0, 0, true},
		{"zero previous close", models.MQuoteRaw{LastPrice: 50, PreviousClose: 0}, 50, 0, true},
		{"rounded percent", models.MQuoteRaw{LastPrice: 149540, PreviousClose: 148780}, 760, 0.51, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := models.NewMarketRecord(entry, tc.quote)
			assert.Equal(t, "SPX", rec.Symbol)
			assert.Equal(t, "S&P 500", rec.Name)
			assert.Equal(t, models.CategoryIndices, rec.Category)
			assert.Equal(t, tc.quote.LastPrice, rec.Value)
			assert.InDelta(t, tc.change, rec.Change, 1e-9)
			assert.Equal(t, tc.changePercent, rec.ChangePercent)
			assert.Equal(t, tc.positive, rec.IsPositive)
		})
	}
}

func TestNewMarketSnapshotCounts(t *testing.T) {
	t.Parallel()

	records := []models.MMarketRecord{
		{Symbol: "IBOV", Category: models.CategoryIndices},
		{Symbol: "SPX", Category: models.CategoryIndices},
		{Symbol: "AAPL", Category: models.CategoryStocks},
	}
	ts := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)

	snap := models.NewMarketSnapshot(records, ts)
	require.Equal(t, 3, snap.Total)
	require.Equal(t, ts, snap.Timestamp)
	require.Len(t, snap.CategoryCounts, len(models.Categories))
	assert.Equal(t, 2, snap.CategoryCounts[models.CategoryIndices])
	assert.Equal(t, 0, snap.CategoryCounts[models.CategoryCurrencies])
	assert.Equal(t, 1, snap.CategoryCounts[models.CategoryStocks])

	empty := models.NewMarketSnapshot(nil, ts)
	assert.NotNil(t, empty.Records)
	assert.Zero(t, empty.Total)
}

func TestResolveTimeframe(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1D", models.ResolveTimeframe("1D").Key)
	assert.Equal(t, "1W", models.ResolveTimeframe("1S").Key)
	assert.Equal(t, "1Y", models.ResolveTimeframe("1A").Key)
	assert.Equal(t, "5Y", models.ResolveTimeframe("5a").Key)
	assert.Equal(t, "MAX", models.ResolveTimeframe("Máx.").Key)
	assert.Equal(t, "1D", models.ResolveTimeframe("bogus").Key)
	assert.Equal(t, "1D", models.ResolveTimeframe("").Key)

	intraday := models.ResolveTimeframe("intraday")
	assert.True(t, intraday.Intraday)
	assert.Equal(t, models.IntradayMinPoints, intraday.MinPoints)
	assert.Equal(t, "5m", intraday.Interval)
}

func TestTimeframeLabel(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 3, 4, 14, 35, 0, 0, time.UTC) // Wednesday
	assert.Equal(t, "14:35", models.ResolveTimeframe("1D").Label(ts, time.UTC))
	assert.Equal(t, "Wed 04", models.ResolveTimeframe("1W").Label(ts, time.UTC))
	assert.Equal(t, "04/03", models.ResolveTimeframe("1M").Label(ts, time.UTC))
	assert.Equal(t, "04/03", models.ResolveTimeframe("6M").Label(ts, time.UTC))
	assert.Equal(t, "Mar 26", models.ResolveTimeframe("1Y").Label(ts, time.UTC))
	assert.Equal(t, "Mar 26", models.ResolveTimeframe("MAX").Label(ts, nil))

	sp := time.FixedZone("BRT", -3*3600)
	assert.Equal(t, "11:35", models.ResolveTimeframe("1D").Label(ts, sp))
}
