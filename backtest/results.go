package backtest

import (
	"time"

	"github.com/montanaflynn/stats"

	"github.com/rustyeddy/backsim/sim"
)

// Result is the complete summary of one backtest run: enough for reporting
// or serialization without re-running the simulation.
type Result struct {
	InitialCapital float64
	FinalEquity    float64
	TotalReturn    float64
	MaxDrawdown    float64 // <= 0, fraction off the running equity peak
	Volatility     float64 // stdev of per-bar equity returns

	TotalTrades int // both legs
	Wins        int
	Losses      int
	WinRate     float64

	TotalPnL float64
	AvgWin   float64
	AvgLoss  float64

	Start time.Time
	End   time.Time

	Trades []sim.Trade
	Equity []EquityPoint
}

// Summarize derives run analytics from the completed trade log and equity
// series. A run with zero trades is degenerate but valid: the result still
// carries the full equity series and a zero win rate.
func Summarize(initial float64, trades []sim.Trade, equity []EquityPoint) Result {
	r := Result{
		InitialCapital: initial,
		FinalEquity:    initial,
		TotalTrades:    len(trades),
		Trades:         trades,
		Equity:         equity,
	}

	if n := len(equity); n > 0 {
		r.Start = equity[0].Time
		r.End = equity[n-1].Time
		r.FinalEquity = equity[n-1].Value
	}
	if initial != 0 {
		r.TotalReturn = (r.FinalEquity - initial) / initial
	}

	r.MaxDrawdown = maxDrawdown(equity)
	r.Volatility = volatility(equity)

	var wins, losses []float64
	sells := 0
	for _, t := range trades {
		if t.Side != sim.Sell {
			continue
		}
		sells++
		pnl := t.PnL()
		r.TotalPnL += pnl
		switch {
		case pnl > 0:
			wins = append(wins, pnl)
		case pnl < 0:
			losses = append(losses, pnl)
		}
	}
	r.Wins = len(wins)
	r.Losses = len(losses)
	if sells > 0 {
		r.WinRate = float64(r.Wins) / float64(sells)
	}
	if len(wins) > 0 {
		r.AvgWin, _ = stats.Mean(wins)
	}
	if len(losses) > 0 {
		r.AvgLoss, _ = stats.Mean(losses)
	}

	return r
}

// maxDrawdown is the deepest fractional decline from the running equity
// peak. Zero when equity never falls below a prior peak.
func maxDrawdown(equity []EquityPoint) float64 {
	var dd float64
	var peak float64
	for i, p := range equity {
		if i == 0 || p.Value > peak {
			peak = p.Value
		}
		if peak <= 0 {
			continue
		}
		if d := (p.Value - peak) / peak; d < dd {
			dd = d
		}
	}
	return dd
}

func volatility(equity []EquityPoint) float64 {
	if len(equity) < 2 {
		return 0
	}
	rets := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		if equity[i-1].Value == 0 {
			continue
		}
		rets = append(rets, equity[i].Value/equity[i-1].Value-1)
	}
	if len(rets) < 2 {
		return 0
	}
	sd, err := stats.StandardDeviation(rets)
	if err != nil {
		return 0
	}
	return sd
}
