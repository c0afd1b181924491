package strategies

import (
	"fmt"
	"math"

	"github.com/rustyeddy/backsim/indicators"
	"github.com/rustyeddy/backsim/market"
	"github.com/rustyeddy/backsim/sim"
)

// CrossoverConfig holds the parameters for the dual-SMA crossover strategy.
type CrossoverConfig struct {
	FastPeriod int `json:"fast_period" yaml:"fast_period"` // e.g. 20
	SlowPeriod int `json:"slow_period" yaml:"slow_period"` // e.g. 50

	// CashFraction is the share of current cash committed on a buy signal,
	// floored to whole units at the bar close.
	CashFraction float64 `json:"cash_fraction" yaml:"cash_fraction"` // default 0.5
}

// CrossoverDefaults returns the stock 20/50 configuration.
func CrossoverDefaults() CrossoverConfig {
	return CrossoverConfig{
		FastPeriod:   20,
		SlowPeriod:   50,
		CashFraction: 0.5,
	}
}

// Validate reports the first configuration error, if any.
func (c CrossoverConfig) Validate() error {
	if c.FastPeriod <= 0 {
		return fmt.Errorf("crossover: fast_period must be positive, got %d", c.FastPeriod)
	}
	if c.SlowPeriod <= c.FastPeriod {
		return fmt.Errorf("crossover: slow_period (%d) must exceed fast_period (%d)",
			c.SlowPeriod, c.FastPeriod)
	}
	if c.CashFraction <= 0 || c.CashFraction > 1 {
		return fmt.Errorf("crossover: cash_fraction must be in (0,1], got %v", c.CashFraction)
	}
	return nil
}

// Crossover trades a single instrument on a fast/slow SMA crossover.
//   - Signal is +1 when fast > slow, -1 when fast < slow, 0 when equal or
//     not yet defined.
//   - Only a signal *transition* acts: to +1 while flat buys, to -1 while
//     long sells the whole position. The pre-warmup signal counts as 0, so
//     a series already trending up when the slow SMA warms up enters on the
//     first defined bar.
type Crossover struct {
	cfg CrossoverConfig

	fast *indicators.SimpleMA
	slow *indicators.SimpleMA

	lastSignal int

	long bool
}

// NewCrossover builds the strategy, validating its config first.
func NewCrossover(cfg CrossoverConfig) (*Crossover, error) {
	if cfg.CashFraction == 0 {
		cfg.CashFraction = 0.5
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Crossover{
		cfg:  cfg,
		fast: indicators.NewSMA(cfg.FastPeriod),
		slow: indicators.NewSMA(cfg.SlowPeriod),
	}, nil
}

func (s *Crossover) Name() string {
	return fmt.Sprintf("crossover(%d/%d)", s.cfg.FastPeriod, s.cfg.SlowPeriod)
}

func (s *Crossover) Reset() {
	s.fast.Reset()
	s.slow.Reset()
	s.lastSignal = 0
	s.long = false
}

func (s *Crossover) OnBar(acct sim.Account, bar market.Bar) *sim.Order {
	s.fast.Update(bar)
	s.slow.Update(bar)

	if !s.fast.Ready() || !s.slow.Ready() {
		return nil
	}

	sig := 0
	switch fast, slow := s.fast.Value(), s.slow.Value(); {
	case fast > slow:
		sig = +1
	case fast < slow:
		sig = -1
	}

	changed := sig != s.lastSignal
	s.lastSignal = sig
	if !changed {
		return nil
	}

	switch {
	case sig > 0 && !s.long:
		size := math.Floor(acct.Cash * s.cfg.CashFraction / bar.Close)
		if size < 1 {
			return nil
		}
		return &sim.Order{Side: sim.Buy, Size: size, Price: bar.Close}

	case sig < 0 && s.long && acct.Position > 0:
		return &sim.Order{Side: sim.Sell, Size: acct.Position, Price: bar.Close}
	}

	return nil
}

func (s *Crossover) OnFill(t sim.Trade) {
	switch t.Side {
	case sim.Buy:
		s.long = true
	case sim.Sell:
		s.long = false
	}
}
