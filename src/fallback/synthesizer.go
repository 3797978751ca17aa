package fallback

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"market-pulse/src/analysis/core"
	"market-pulse/src/models"
)

const (
	// trendScale is the amplitude of the periodic trend in units of volatility.
	trendScale = 2.0
	// trendFrequency is the trend phase advance per point, in radians.
	trendFrequency = 0.3

	intradayOpenHour  = 10
	intradayStepMins  = 6
	intradayStepsHour = 10
)

// ProfileSource supplies entries and synthetic parameters.
type ProfileSource interface {
	Entries() []models.MSymbolEntry
	Profile(code string) models.MFallbackProfile
}

// -----------------------------------------------------------------------------

// Synthesizer produces plausible substitute data when the provider is down.
// Snapshots are fully static; series draw noise from an injectable source.
type Synthesizer struct {
	Registry ProfileSource
	Location *time.Location
	Now      func() time.Time

	mu   sync.Mutex
	rand *rand.Rand
}

// -----------------------------------------------------------------------------

// NewSynthesizer returns a synthesizer drawing from src. A nil src seeds from
// the clock.
func NewSynthesizer(reg ProfileSource, loc *time.Location, src rand.Source) *Synthesizer {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>1|1)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Synthesizer{
		Registry: reg,
		Location: loc,
		Now:      time.Now,
		rand:     rand.New(src),
	}
}

// -----------------------------------------------------------------------------

// SynthesizeSnapshot returns one record per registry entry from the static
// profile values.
func (s *Synthesizer) SynthesizeSnapshot() models.MMarketSnapshot {
	entries := s.Registry.Entries()
	records := make([]models.MMarketRecord, 0, len(entries))

	for _, e := range entries {
		p := s.Registry.Profile(e.Code)
		quote := models.MQuoteRaw{
			LastPrice:     p.SnapshotValue,
			PreviousClose: p.SnapshotValue - p.SnapshotChange,
		}
		records = append(records, models.NewMarketRecord(e, quote))
	}

	return models.NewMarketSnapshot(records, s.Now())
}

// -----------------------------------------------------------------------------

// SynthesizeSeries returns the timeframe's synthetic point count around the
// symbol's baseline.
func (s *Synthesizer) SynthesizeSeries(req models.MSeriesRequest) []models.MSeriesPoint {
	tf := models.ResolveTimeframe(req.Timeframe)
	p := s.Registry.Profile(req.Symbol)
	n := tf.SyntheticPoints
	labels := s.labels(tf, n)

	vol := p.VolatilityFactor
	band := vol / 2
	prec := p.DecimalPrecision

	s.mu.Lock()
	defer s.mu.Unlock()

	points := make([]models.MSeriesPoint, n)
	for i := range n {
		trend := trendScale * vol * math.Sin(float64(i)*trendFrequency)
		noise := (s.rand.Float64() - 0.5) * vol
		closePrice := p.BaselineValue * (1 + trend + noise)

		open := closePrice * (1 + (s.rand.Float64()-0.5)*band)
		high := math.Max(open, closePrice) * (1 + s.rand.Float64()*band)
		low := math.Min(open, closePrice) * (1 - s.rand.Float64()*band)

		volume := 0.0
		if p.BaseVolumeMagnitude > 0 {
			volume = math.Floor(p.BaseVolumeMagnitude * (0.8 + s.rand.Float64()*0.4))
		}

		value := positive(core.RoundTo(closePrice, prec), prec)
		points[i] = models.MSeriesPoint{
			Label:  labels[i],
			Value:  value,
			Open:   positive(core.RoundTo(open, prec), prec),
			High:   positive(core.RoundTo(high, prec), prec),
			Low:    positive(core.RoundTo(low, prec), prec),
			Close:  value,
			Volume: volume,
		}
	}
	return points
}

// positive clamps a rounded value to the smallest representable unit.
func positive(v float64, prec int) float64 {
	if v > 0 {
		return v
	}
	return math.Pow(10, -float64(prec))
}

// -----------------------------------------------------------------------------
// Labels
// -----------------------------------------------------------------------------

func (s *Synthesizer) labels(tf models.MTimeframe, n int) []string {
	out := make([]string, n)

	if tf.Step == models.StepIntraday {
		for i := range n {
			hour := intradayOpenHour + i/intradayStepsHour
			minute := (i % intradayStepsHour) * intradayStepMins
			out[i] = fmt.Sprintf("%02d:%02d", hour, minute)
		}
		return out
	}

	now := s.Now().In(s.Location)
	anchor := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.Location)

	switch tf.Step {
	case models.StepBusinessDay:
		anchor = lastBusinessDay(anchor)
	case models.StepMonth, models.StepQuarter, models.StepYear:
		anchor = time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, s.Location)
	}

	t := anchor
	for i := n - 1; i >= 0; i-- {
		out[i] = tf.Label(t, s.Location)
		t = stepBack(t, tf.Step)
	}
	return out
}

func stepBack(t time.Time, step models.MStep) time.Time {
	switch step {
	case models.StepBusinessDay:
		return lastBusinessDay(t.AddDate(0, 0, -1))
	case models.StepWeek:
		return t.AddDate(0, 0, -7)
	case models.StepMonth:
		return t.AddDate(0, -1, 0)
	case models.StepQuarter:
		return t.AddDate(0, -3, 0)
	default:
		return t.AddDate(-1, 0, 0)
	}
}

func lastBusinessDay(t time.Time) time.Time {
	for t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		t = t.AddDate(0, 0, -1)
	}
	return t
}
