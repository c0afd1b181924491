package backtest

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/rustyeddy/backsim/market"
)

// BarFeed yields bars one at a time, in increasing timestamp order.
// Implementations should be deterministic and return (ok=false, err=nil) at
// EOF.
type BarFeed interface {
	Next() (b market.Bar, ok bool, err error)
	Close() error
}

// SliceFeed replays an in-memory bar slice. Handy for tests and parameter
// sweeps over already-loaded data.
type SliceFeed struct {
	bars []market.Bar
	idx  int
}

func NewSliceFeed(bars []market.Bar) *SliceFeed {
	return &SliceFeed{bars: bars}
}

func (f *SliceFeed) Next() (market.Bar, bool, error) {
	if f.idx >= len(f.bars) {
		return market.Bar{}, false, nil
	}
	b := f.bars[f.idx]
	f.idx++
	return b, true, nil
}

func (f *SliceFeed) Close() error { return nil }

// csvTime parses RFC3339 (or RFC3339Nano) timestamps from CSV cells.
type csvTime struct {
	time.Time
}

func (t *csvTime) UnmarshalCSV(s string) error {
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		parsed, err2 := time.Parse(time.RFC3339Nano, s)
		if err2 != nil {
			return fmt.Errorf("bad time %q: %w", s, err)
		}
		t.Time = parsed
		return nil
	}
	t.Time = parsed
	return nil
}

type csvBarRow struct {
	Time   csvTime `csv:"time"`
	Open   float64 `csv:"open"`
	High   float64 `csv:"high"`
	Low    float64 `csv:"low"`
	Close  float64 `csv:"close"`
	Volume float64 `csv:"volume"`
}

// NewCSVBarFeed loads canonical bar CSV rows:
//
//	time,open,high,low,close,volume
//
// where time is RFC3339. The whole file is read up front; bar validation is
// left to the runner so bad rows fail the run rather than being skipped.
func NewCSVBarFeed(path string) (*SliceFeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []csvBarRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse bar csv %s: %w", path, err)
	}

	bars := make([]market.Bar, 0, len(rows))
	for _, r := range rows {
		bars = append(bars, market.Bar{
			Time:   r.Time.Time,
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
		})
	}
	return NewSliceFeed(bars), nil
}

// RandomWalkConfig parameterizes synthetic bar generation.
type RandomWalkConfig struct {
	Bars       int
	Seed       int64
	Start      time.Time
	Interval   time.Duration
	StartPrice float64
	Drift      float64 // mean of per-bar log return
	Volatility float64 // stdev of per-bar log return
}

// RandomWalkDefaults matches the classic demo dataset: one year of daily
// bars starting at 100.
func RandomWalkDefaults() RandomWalkConfig {
	return RandomWalkConfig{
		Bars:       365,
		Seed:       42,
		Start:      time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		Interval:   24 * time.Hour,
		StartPrice: 100,
		Drift:      0.0005,
		Volatility: 0.02,
	}
}

// NewRandomWalkFeed generates a geometric random walk of OHLCV bars. The
// same seed always yields the same bars.
func NewRandomWalkFeed(cfg RandomWalkConfig) *SliceFeed {
	if cfg.Interval <= 0 {
		cfg.Interval = 24 * time.Hour
	}
	if cfg.StartPrice <= 0 {
		cfg.StartPrice = 100
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	bars := make([]market.Bar, 0, cfg.Bars)
	logPrice := math.Log(cfg.StartPrice)
	for i := 0; i < cfg.Bars; i++ {
		logPrice += cfg.Drift + cfg.Volatility*rng.NormFloat64()
		px := math.Exp(logPrice)
		bars = append(bars, market.Bar{
			Time:   cfg.Start.Add(time.Duration(i) * cfg.Interval),
			Open:   px * 0.995,
			High:   px * 1.015,
			Low:    px * 0.985,
			Close:  px,
			Volume: float64(1_000_000 + rng.Intn(4_000_000)),
		})
	}
	return NewSliceFeed(bars)
}
