package utils

import (
	"sync"
	"time"

	"market-pulse/src/logger"
)

// MarketScheduler tracks the trading sessions behind the registry's symbols.
type MarketScheduler struct {
	Calendars map[string]*TradingCalendar
	Logger    *logger.Logger
	Now       func() time.Time
	mu        sync.RWMutex
}

// -----------------------------------------------------------------------------

func NewMarketScheduler(providerIDs []string, l *logger.Logger) *MarketScheduler {
	ms := &MarketScheduler{
		Calendars: make(map[string]*TradingCalendar),
		Logger:    l,
		Now:       time.Now,
	}
	ms.MapSymbolsToCalendars(providerIDs)
	return ms
}

// -----------------------------------------------------------------------------

// MapSymbolsToCalendars replaces the tracked symbols.
func (ms *MarketScheduler) MapSymbolsToCalendars(providerIDs []string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.Calendars = make(map[string]*TradingCalendar, len(providerIDs))
	unique := make(map[string]struct{})

	for _, id := range providerIDs {
		cal := GetCalendar(id)
		ms.Calendars[id] = cal
		unique[cal.MIC] = struct{}{}
	}

	ms.Logger.Info("Mapped %d symbols to %d unique calendars", len(providerIDs), len(unique))
}

// -----------------------------------------------------------------------------

// AnyMarketOpen reports whether any tracked session is open right now.
func (ms *MarketScheduler) AnyMarketOpen() bool {
	return ms.OpenAt(ms.Now().UTC())
}

// OpenAt reports whether any tracked session is open at t.
func (ms *MarketScheduler) OpenAt(t time.Time) bool {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	seen := make(map[*TradingCalendar]struct{})
	for _, cal := range ms.Calendars {
		if _, ok := seen[cal]; ok {
			continue
		}
		seen[cal] = struct{}{}
		if cal.IsOpenOnMinute(t) {
			return true
		}
	}
	return false
}

// OpenMarkets returns the MIC codes open at t.
func (ms *MarketScheduler) OpenMarkets(t time.Time) []string {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	seen := make(map[string]struct{})
	var open []string
	for _, cal := range ms.Calendars {
		if _, ok := seen[cal.MIC]; ok {
			continue
		}
		seen[cal.MIC] = struct{}{}
		if cal.IsOpenOnMinute(t) {
			open = append(open, cal.MIC)
		}
	}
	return open
}
