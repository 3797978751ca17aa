package utils_test

import (
	"testing"
	"time"

	"market-pulse/src/logger"
	"market-pulse/src/utils"

	"github.com/stretchr/testify/assert"
)

func TestMICFor(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"^BVSP":    "bvmf",
		"PETR4.SA": "bvmf",
		"^FTSE":    "xlon",
		"^N225":    "xtks",
		"^GSPC":    "xnys",
		"AAPL":     "xnys",
		"CL=F":     "xnys",
		"BRL=X":    utils.MICAlwaysOpen,
		"eurbrl=x": utils.MICAlwaysOpen,
		"BTC-USD":  utils.MICAlwaysOpen,
	}
	for id, want := range cases {
		assert.Equal(t, want, utils.MICFor(id), id)
	}
}

func TestGetCalendarIsShared(t *testing.T) {
	t.Parallel()

	assert.Same(t, utils.GetCalendar("BRL=X"), utils.GetCalendar("BTC-USD"))
	assert.Same(t, utils.GetCalendar("AAPL"), utils.GetCalendar("MSFT"))
}

func TestAnyMarketOpen(t *testing.T) {
	t.Parallel()

	log := logger.NewLogger(nil, "SchedulerTest")
	saturday := time.Date(2026, 3, 7, 16, 0, 0, 0, time.UTC)
	// 10:00 in New York.
	wednesday := time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)

	equities := utils.NewMarketScheduler([]string{"AAPL", "MSFT"}, log)
	assert.False(t, equities.OpenAt(saturday))
	assert.True(t, equities.OpenAt(wednesday))
	assert.Equal(t, []string{"xnys"}, equities.OpenMarkets(wednesday))

	equities.Now = func() time.Time { return saturday }
	assert.False(t, equities.AnyMarketOpen())

	withCrypto := utils.NewMarketScheduler([]string{"AAPL", "BTC-USD"}, log)
	withCrypto.Now = func() time.Time { return saturday }
	assert.True(t, withCrypto.AnyMarketOpen())
	assert.Equal(t, []string{utils.MICAlwaysOpen}, withCrypto.OpenMarkets(saturday))

	empty := utils.NewMarketScheduler(nil, log)
	assert.False(t, empty.OpenAt(wednesday))
}
