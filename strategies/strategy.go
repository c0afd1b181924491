// Package strategies contains the decision units of the engine. A strategy
// sees one closed bar at a time and emits at most one order intent per bar.
package strategies

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/backsim/market"
	"github.com/rustyeddy/backsim/sim"
)

// Strategy is the minimal interface a backtest strategy must implement.
// OnBar is called once per bar with a read-only account snapshot for sizing;
// a nil return means no action this bar.
//
// The runner applies the returned intent to the ledger and reports the fill
// back through OnFill. A rejected intent produces no OnFill call, so a
// strategy's position bookkeeping can never run ahead of the account.
type Strategy interface {
	Name() string
	OnBar(acct sim.Account, bar market.Bar) *sim.Order
	OnFill(t sim.Trade)
	Reset()
}

// ByName constructs a strategy from its registered name and the variant
// configs. Unused variant configs are ignored.
func ByName(name string, cross CrossoverConfig, mr MeanReversionConfig) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "noop", "none":
		return NoopStrategy{}, nil

	case "crossover", "sma-cross":
		return NewCrossover(cross)

	case "mean-reversion", "meanrev":
		return NewMeanReversion(mr)

	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: noop, crossover, mean-reversion)", name)
	}
}

// NoopStrategy does nothing. Useful as a baseline: a run with it must end
// exactly at initial capital.
type NoopStrategy struct{}

func (NoopStrategy) Name() string                             { return "noop" }
func (NoopStrategy) OnBar(sim.Account, market.Bar) *sim.Order { return nil }
func (NoopStrategy) OnFill(sim.Trade)                         {}
func (NoopStrategy) Reset()                                   {}
