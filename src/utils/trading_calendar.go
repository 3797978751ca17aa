package utils

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/scmhub/calendar"
)

// MICAlwaysOpen marks instruments that trade around the clock (FX, crypto).
const MICAlwaysOpen = "24h"

// TradingCalendar calculates trading days using scmhub/calendar.
type TradingCalendar struct {
	MIC        string
	Calendar   *calendar.Calendar
	Fallback   bool
	AlwaysOpen bool
	Timezone   *time.Location
}

var (
	calendarsMu sync.Mutex
	calendars   = map[string]*TradingCalendar{}
)

// indexMICs maps provider index tickers to their home exchange.
var indexMICs = map[string]string{
	"^BVSP":  "bvmf",
	"^FTSE":  "xlon",
	"^N225":  "xtks",
	"^GDAXI": "xetr",
	"^FCHI":  "xpar",
	"^HSI":   "xhkg",
}

// suffixMICs maps provider ticker suffixes to MIC codes (ISO 10383).
var suffixMICs = []struct {
	suffix string
	mic    string
}{
	{".SA", "bvmf"},
	{".L", "xlon"},
	{".PA", "xpar"},
	{".DE", "xfra"},
	{".AS", "xams"},
	{".MI", "xmil"},
	{".MC", "xmad"},
	{".SW", "xswx"},
	{".TO", "xtse"},
	{".T", "xtks"},
	{".HK", "xhkg"},
	{".AX", "xasx"},
}

// -----------------------------------------------------------------------------

// MICFor returns the exchange code whose session governs providerID.
func MICFor(providerID string) string {
	id := strings.ToUpper(strings.TrimSpace(providerID))

	if strings.HasSuffix(id, "=X") || strings.HasSuffix(id, "-USD") {
		return MICAlwaysOpen
	}
	if mic, ok := indexMICs[id]; ok {
		return mic
	}
	for _, s := range suffixMICs {
		if strings.HasSuffix(id, s.suffix) {
			return s.mic
		}
	}
	// US listings, US indices and CME/NYMEX futures.
	return "xnys"
}

// -----------------------------------------------------------------------------

// GetCalendar returns the shared calendar for providerID.
func GetCalendar(providerID string) *TradingCalendar {
	mic := MICFor(providerID)

	calendarsMu.Lock()
	defer calendarsMu.Unlock()

	if tc, ok := calendars[mic]; ok {
		return tc
	}
	tc := loadCalendar(mic)
	calendars[mic] = tc
	return tc
}

func loadCalendar(mic string) *TradingCalendar {
	if mic == MICAlwaysOpen {
		return &TradingCalendar{MIC: mic, AlwaysOpen: true, Timezone: time.UTC}
	}

	cal := calendar.GetCalendar(mic)
	if cal == nil {
		cal = calendar.GetCalendar("xnys")
	}

	if cal == nil {
		log.Printf("WARNING: Failed to load calendar for MIC '%s' and fallback 'xnys'. Using simple fallback (Mon-Fri 09:30-16:00 New York).", mic)
		nyLoc, _ := time.LoadLocation("America/New_York")
		if nyLoc == nil {
			nyLoc = time.UTC
		}
		return &TradingCalendar{MIC: mic, Fallback: true, Timezone: nyLoc}
	}

	return &TradingCalendar{MIC: mic, Calendar: cal, Timezone: cal.Loc}
}

// -----------------------------------------------------------------------------

func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	if tc.AlwaysOpen {
		return true
	}
	if tc.Timezone != nil {
		date = date.In(tc.Timezone)
	}

	if tc.Fallback {
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return tc.Calendar.IsBusinessDay(date)
}

// -----------------------------------------------------------------------------

// IsOpenOnMinute checks if the market is open at a specific minute.
func (tc *TradingCalendar) IsOpenOnMinute(t time.Time) bool {
	if tc.AlwaysOpen {
		return true
	}
	if tc.Timezone != nil {
		t = t.In(tc.Timezone)
	}

	if tc.Fallback {
		if !tc.IsTradingDay(t) {
			return false
		}
		hour, minute := t.Hour(), t.Minute()
		return (hour > 9 || (hour == 9 && minute >= 30)) && hour < 16
	}

	return tc.Calendar.IsOpen(t)
}
