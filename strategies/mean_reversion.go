package strategies

import (
	"fmt"

	"github.com/rustyeddy/backsim/indicators"
	"github.com/rustyeddy/backsim/market"
	"github.com/rustyeddy/backsim/sim"
)

// Sizer converts available cash into a position size for a new entry. It is
// pluggable so the stock fixed-fractional rule can be swapped out without
// touching the signal logic.
type Sizer func(cash float64) float64

// MeanReversionConfig holds the parameters for the RSI mean-reversion
// strategy.
type MeanReversionConfig struct {
	RSIPeriod  int     `json:"rsi_period" yaml:"rsi_period"` // e.g. 14
	Oversold   float64 `json:"oversold" yaml:"oversold"`     // e.g. 30
	Overbought float64 `json:"overbought" yaml:"overbought"` // e.g. 70

	// StopLoss exits a long when the close drops this fraction below entry.
	StopLoss float64 `json:"stop_loss" yaml:"stop_loss"` // default 0.05

	// RiskFraction feeds the stock sizer: size = cash * RiskFraction / 100.
	RiskFraction float64 `json:"risk_fraction" yaml:"risk_fraction"` // default 0.02
}

// MeanReversionDefaults returns the stock 14/30/70 configuration with a 5%
// stop.
func MeanReversionDefaults() MeanReversionConfig {
	return MeanReversionConfig{
		RSIPeriod:    14,
		Oversold:     30,
		Overbought:   70,
		StopLoss:     0.05,
		RiskFraction: 0.02,
	}
}

// Validate reports the first configuration error, if any.
func (c MeanReversionConfig) Validate() error {
	if c.RSIPeriod <= 0 {
		return fmt.Errorf("mean-reversion: rsi_period must be positive, got %d", c.RSIPeriod)
	}
	if c.Oversold <= 0 || c.Oversold >= 100 {
		return fmt.Errorf("mean-reversion: oversold must be in (0,100), got %v", c.Oversold)
	}
	if c.Overbought <= c.Oversold || c.Overbought >= 100 {
		return fmt.Errorf("mean-reversion: overbought must be in (oversold,100), got %v", c.Overbought)
	}
	if c.StopLoss <= 0 || c.StopLoss >= 1 {
		return fmt.Errorf("mean-reversion: stop_loss must be in (0,1), got %v", c.StopLoss)
	}
	if c.RiskFraction <= 0 || c.RiskFraction > 1 {
		return fmt.Errorf("mean-reversion: risk_fraction must be in (0,1], got %v", c.RiskFraction)
	}
	return nil
}

// MeanReversion buys oversold RSI readings and exits on overbought readings
// or a fixed-fraction stop below the entry price. Long-only, one position at
// a time.
type MeanReversion struct {
	cfg   MeanReversionConfig
	rsi   *indicators.RSI
	sizer Sizer

	long       bool
	entryPrice float64
}

// NewMeanReversion builds the strategy with the stock fixed-fractional
// sizer, validating its config first.
func NewMeanReversion(cfg MeanReversionConfig) (*MeanReversion, error) {
	if cfg.StopLoss == 0 {
		cfg.StopLoss = 0.05
	}
	if cfg.RiskFraction == 0 {
		cfg.RiskFraction = 0.02
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &MeanReversion{
		cfg: cfg,
		rsi: indicators.NewRSI(cfg.RSIPeriod),
	}
	// Fixed-fractional placeholder: risk amount spread over a nominal 100
	// units of price. Swap via SetSizer for anything smarter.
	m.sizer = func(cash float64) float64 {
		return cash * cfg.RiskFraction / 100
	}
	return m, nil
}

// SetSizer replaces the entry sizing rule.
func (m *MeanReversion) SetSizer(s Sizer) {
	if s != nil {
		m.sizer = s
	}
}

func (m *MeanReversion) Name() string {
	return fmt.Sprintf("mean-reversion(rsi=%d)", m.cfg.RSIPeriod)
}

func (m *MeanReversion) Reset() {
	m.rsi.Reset()
	m.long = false
	m.entryPrice = 0
}

// EntryPrice returns the open lot's entry price, or 0 when flat.
func (m *MeanReversion) EntryPrice() float64 {
	return m.entryPrice
}

func (m *MeanReversion) OnBar(acct sim.Account, bar market.Bar) *sim.Order {
	m.rsi.Update(bar)
	if !m.rsi.Ready() {
		return nil
	}

	rsi := m.rsi.Value()

	if !m.long {
		if rsi < m.cfg.Oversold {
			size := m.sizer(acct.Cash)
			if size <= 0 {
				return nil
			}
			return &sim.Order{Side: sim.Buy, Size: size, Price: bar.Close}
		}
		return nil
	}

	takeProfit := rsi > m.cfg.Overbought
	stopped := bar.Close < m.entryPrice*(1-m.cfg.StopLoss)
	if (takeProfit || stopped) && acct.Position > 0 {
		return &sim.Order{Side: sim.Sell, Size: acct.Position, Price: bar.Close}
	}

	return nil
}

func (m *MeanReversion) OnFill(t sim.Trade) {
	switch t.Side {
	case sim.Buy:
		m.long = true
		m.entryPrice = t.Price
	case sim.Sell:
		m.long = false
		m.entryPrice = 0
	}
}
