package registry_test

import (
	"testing"

	"market-pulse/src/models"
	"market-pulse/src/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProviderID(t *testing.T) {
	t.Parallel()

	r := registry.NewDefault()
	assert.Equal(t, "^BVSP", r.ResolveProviderID("IBOV"))
	assert.Equal(t, "BRL=X", r.ResolveProviderID("usd"))
	assert.Equal(t, "PETR4.SA", r.ResolveProviderID("PETR4"))
	assert.Equal(t, "AAPL", r.ResolveProviderID("AAPL"))
	assert.Equal(t, "XYZ.UNKNOWN", r.ResolveProviderID("XYZ.UNKNOWN"))
}

func TestDefaultTable(t *testing.T) {
	t.Parallel()

	r := registry.NewDefault()
	require.Equal(t, 24, r.Len())

	perCategory := map[models.MCategory]int{}
	for _, e := range r.Entries() {
		perCategory[e.Category]++
		p := r.Profile(e.Code)
		assert.Positive(t, p.BaselineValue, e.Code)
		assert.Positive(t, p.SnapshotValue, e.Code)
		assert.Positive(t, p.VolatilityFactor, e.Code)
	}
	for _, c := range models.Categories {
		assert.Equal(t, 6, perCategory[c], c)
	}

	assert.Equal(t, 4, r.Profile("JPY").DecimalPrecision)
	assert.Equal(t, 3, r.Profile("USD").DecimalPrecision)
	assert.Equal(t, 2, r.Profile("AAPL").DecimalPrecision)
	assert.Greater(t, r.Profile("BTC").VolatilityFactor, r.Profile("GOLD").VolatilityFactor)
	assert.Greater(t, r.Profile("GOLD").VolatilityFactor, r.Profile("EUR").VolatilityFactor)
	assert.Zero(t, r.Profile("IBOV").BaseVolumeMagnitude)
	assert.Equal(t, registry.GenericProfile, r.Profile("NOPE"))
}

func TestListByCategoryKeepsRegistrationOrder(t *testing.T) {
	t.Parallel()

	r, err := registry.New([]registry.Definition{
		{Entry: models.MSymbolEntry{Code: "AAPL", Category: models.CategoryStocks}},
		{Entry: models.MSymbolEntry{Code: "SPX", Category: models.CategoryIndices, ProviderID: "^GSPC"}},
		{Entry: models.MSymbolEntry{Code: "MSFT", Category: models.CategoryStocks}},
		{Entry: models.MSymbolEntry{Code: "USD", Category: models.CategoryCurrencies, ProviderID: "BRL=X"}},
	})
	require.NoError(t, err)

	var codes []string
	for _, e := range r.ListByCategory() {
		codes = append(codes, e.Code)
	}
	assert.Equal(t, []string{"SPX", "USD", "AAPL", "MSFT"}, codes)
	assert.Equal(t, "AAPL", r.ResolveProviderID("AAPL"))
}

func TestNewRejectsInvalidTables(t *testing.T) {
	t.Parallel()

	_, err := registry.New([]registry.Definition{
		{Entry: models.MSymbolEntry{Code: "AAPL", Category: models.CategoryStocks}},
		{Entry: models.MSymbolEntry{Code: "aapl", Category: models.CategoryStocks}},
	})
	require.ErrorContains(t, err, "duplicate")

	_, err = registry.New([]registry.Definition{
		{Entry: models.MSymbolEntry{Code: "X", Category: "bonds"}},
	})
	require.ErrorContains(t, err, "unknown category")
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	r, err := registry.FromConfig(&models.MConfig{})
	require.NoError(t, err)
	assert.Equal(t, 24, r.Len())

	cfg := &models.MConfig{Registry: models.MRegistryConfig{Symbols: []models.MSymbolConfig{
		{Code: "NVDA", Category: "stocks", Baseline: 120},
		{Code: "SOL", Name: "Solana", Category: "currencies", ProviderID: "SOL-USD", Instrument: "crypto", SnapshotValue: 150, SnapshotChange: 3},
	}}}
	r, err = registry.FromConfig(cfg)
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())

	nvda, ok := r.Lookup("NVDA")
	require.True(t, ok)
	assert.Equal(t, "NVDA", nvda.ProviderID)
	assert.Equal(t, models.InstrumentEquity, nvda.Instrument)
	assert.Equal(t, 120.0, r.Profile("NVDA").SnapshotValue)

	assert.Equal(t, "SOL-USD", r.ResolveProviderID("SOL"))
	assert.Equal(t, 0.05, r.Profile("SOL").VolatilityFactor)
	assert.Equal(t, 150.0, r.Profile("SOL").BaselineValue)

	_, err = registry.FromConfig(&models.MConfig{Registry: models.MRegistryConfig{Symbols: []models.MSymbolConfig{
		{Code: "X", Category: "bonds"},
	}}})
	require.Error(t, err)
}
