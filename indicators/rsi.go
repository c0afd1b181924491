package indicators

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/rustyeddy/backsim/market"
)

// RSI is a streaming Relative Strength Index over the trailing period.
//
//	RSI = 100 - (100 / (1 + RS))
//	RS  = average gain / average loss over the period
//
// It needs period+1 closes before it is ready (period deltas). When the
// average loss over the period is exactly zero the RSI is defined as 100.
type RSI struct {
	period int
	closes []float64
}

// NewRSI creates an RSI indicator with the given period.
func NewRSI(period int) *RSI {
	return &RSI{
		period: period,
		closes: make([]float64, 0, period+1),
	}
}

func (r *RSI) Name() string {
	return fmt.Sprintf("RSI(%d)", r.period)
}

func (r *RSI) Warmup() int {
	return r.period + 1
}

func (r *RSI) Reset() {
	r.closes = r.closes[:0]
}

func (r *RSI) Update(b market.Bar) {
	r.closes = append(r.closes, b.Close)
	if len(r.closes) > r.period+1 {
		r.closes = r.closes[1:]
	}
}

func (r *RSI) Ready() bool {
	return len(r.closes) >= r.period+1
}

func (r *RSI) Value() float64 {
	if !r.Ready() {
		return 0
	}

	gains := make([]float64, 0, r.period)
	losses := make([]float64, 0, r.period)
	for i := 1; i < len(r.closes); i++ {
		delta := r.closes[i] - r.closes[i-1]
		if delta > 0 {
			gains = append(gains, delta)
			losses = append(losses, 0)
		} else {
			gains = append(gains, 0)
			losses = append(losses, -delta)
		}
	}

	avgGain, err := stats.Mean(gains)
	if err != nil {
		return 0
	}
	avgLoss, err := stats.Mean(losses)
	if err != nil {
		return 0
	}

	if avgLoss == 0 {
		return 100
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs))
}
