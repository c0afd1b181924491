package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/backsim/sim"
)

func equitySeries(values ...float64) []EquityPoint {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	pts := make([]EquityPoint, len(values))
	for i, v := range values {
		pts[i] = EquityPoint{Time: base.Add(time.Duration(i) * time.Hour), Value: v}
	}
	return pts
}

func TestSummarizeTotalReturn(t *testing.T) {
	r := Summarize(10_000, nil, equitySeries(10_000, 10_500, 11_000))
	assert.InDelta(t, 0.10, r.TotalReturn, 1e-9)
	assert.Equal(t, 11_000.0, r.FinalEquity)
	assert.Equal(t, 10_000.0, r.InitialCapital)
}

func TestSummarizeEmptyRun(t *testing.T) {
	r := Summarize(10_000, nil, nil)
	assert.Equal(t, 10_000.0, r.FinalEquity)
	assert.Equal(t, 0.0, r.TotalReturn)
	assert.Equal(t, 0.0, r.MaxDrawdown)
	assert.Equal(t, 0.0, r.WinRate)
	assert.Equal(t, 0, r.TotalTrades)
}

func TestMaxDrawdown(t *testing.T) {
	t.Run("single dip", func(t *testing.T) {
		r := Summarize(100, nil, equitySeries(100, 120, 90, 100))
		// deepest decline is 90 off the peak of 120
		assert.InDelta(t, (90.0-120.0)/120.0, r.MaxDrawdown, 1e-9)
	})

	t.Run("non-decreasing equity is zero", func(t *testing.T) {
		r := Summarize(100, nil, equitySeries(100, 100, 110, 120, 120))
		assert.Equal(t, 0.0, r.MaxDrawdown)
	})

	t.Run("never positive", func(t *testing.T) {
		for _, series := range [][]EquityPoint{
			equitySeries(100, 90, 80),
			equitySeries(100, 110, 105, 120, 60),
			equitySeries(50),
		} {
			r := Summarize(100, nil, series)
			assert.LessOrEqual(t, r.MaxDrawdown, 0.0)
		}
	})
}

func TestSummarizeWinRate(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	trades := []sim.Trade{
		{Time: base, Side: sim.Buy, Price: 100, Size: 10, Cash: 1001},
		{Time: base.Add(time.Hour), Side: sim.Sell, Price: 110, Size: 10, Cash: 1098.9, EntryCost: 1001},
		{Time: base.Add(2 * time.Hour), Side: sim.Buy, Price: 105, Size: 10, Cash: 1051.05},
		{Time: base.Add(3 * time.Hour), Side: sim.Sell, Price: 100, Size: 10, Cash: 999, EntryCost: 1051.05},
	}

	r := Summarize(10_000, trades, equitySeries(10_000, 10_100, 10_050, 10_040))

	// Both legs count toward the trade total; only sells score.
	assert.Equal(t, 4, r.TotalTrades)
	assert.Equal(t, 1, r.Wins)
	assert.Equal(t, 1, r.Losses)
	assert.InDelta(t, 0.5, r.WinRate, 1e-9)
	assert.InDelta(t, (1098.9-1001)+(999-1051.05), r.TotalPnL, 1e-9)
	assert.InDelta(t, 1098.9-1001, r.AvgWin, 1e-9)
	assert.InDelta(t, 999-1051.05, r.AvgLoss, 1e-9)
}

func TestSummarizeNoSellsZeroWinRate(t *testing.T) {
	trades := []sim.Trade{
		{Side: sim.Buy, Price: 100, Size: 10, Cash: 1000},
	}
	r := Summarize(10_000, trades, equitySeries(10_000, 10_000))
	assert.Equal(t, 1, r.TotalTrades)
	assert.Equal(t, 0.0, r.WinRate)
}

func TestVolatility(t *testing.T) {
	// Constant equity has zero volatility.
	r := Summarize(100, nil, equitySeries(100, 100, 100, 100))
	assert.Equal(t, 0.0, r.Volatility)

	r = Summarize(100, nil, equitySeries(100, 110, 99, 120))
	assert.Greater(t, r.Volatility, 0.0)
}
