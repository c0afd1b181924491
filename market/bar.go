// Package market defines the price data the engine consumes.
package market

import (
	"fmt"
	"time"
)

// Bar is one OHLCV observation for a fixed interval. Bars are produced by a
// feed and never mutated by the engine.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Validate checks a bar on its own: the close must be positive and the other
// fields non-negative. A zero or negative close would corrupt every equity
// value derived from it, so this is a hard error.
func (b Bar) Validate() error {
	if b.Close <= 0 {
		return fmt.Errorf("bar at %s: close must be positive, got %v",
			b.Time.Format(time.RFC3339), b.Close)
	}
	if b.Open < 0 || b.High < 0 || b.Low < 0 || b.Volume < 0 {
		return fmt.Errorf("bar at %s: negative OHLCV field",
			b.Time.Format(time.RFC3339))
	}
	return nil
}

// ValidateAfter checks ordering against the previous bar. Timestamps must be
// strictly increasing; a duplicate or out-of-order bar aborts the run.
func (b Bar) ValidateAfter(prev Bar) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if !b.Time.After(prev.Time) {
		return fmt.Errorf("bar at %s: timestamp not after previous bar %s",
			b.Time.Format(time.RFC3339), prev.Time.Format(time.RFC3339))
	}
	return nil
}
