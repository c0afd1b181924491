package indicators

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/rustyeddy/backsim/market"
)

// SimpleMA is a streaming Simple Moving Average over the trailing window of
// closes.
type SimpleMA struct {
	window int
	closes []float64
}

// NewSMA creates a Simple Moving Average indicator with the given window.
func NewSMA(window int) *SimpleMA {
	return &SimpleMA{
		window: window,
		closes: make([]float64, 0, window),
	}
}

func (m *SimpleMA) Name() string {
	return fmt.Sprintf("SMA(%d)", m.window)
}

func (m *SimpleMA) Warmup() int {
	return m.window
}

func (m *SimpleMA) Reset() {
	m.closes = m.closes[:0]
}

func (m *SimpleMA) Update(b market.Bar) {
	m.closes = append(m.closes, b.Close)
	// Keep only the last 'window' closes
	if len(m.closes) > m.window {
		m.closes = m.closes[1:]
	}
}

func (m *SimpleMA) Ready() bool {
	return len(m.closes) >= m.window
}

func (m *SimpleMA) Value() float64 {
	if !m.Ready() {
		return 0
	}
	mean, err := stats.Mean(m.closes)
	if err != nil {
		return 0
	}
	return mean
}
