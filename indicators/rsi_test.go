package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRSIWarmup(t *testing.T) {
	rsi := NewRSI(14)
	assert.Equal(t, "RSI(14)", rsi.Name())
	assert.Equal(t, 15, rsi.Warmup())

	bars := barsFromCloses(100, 101, 102, 103, 104, 105, 106, 107, 108, 109, 110, 111, 112, 113)
	for _, b := range bars {
		rsi.Update(b)
		assert.False(t, rsi.Ready())
	}
	rsi.Update(barsFromCloses(114)[0])
	assert.True(t, rsi.Ready())
}

func TestRSIAllGainsIsHundred(t *testing.T) {
	// Average loss is exactly zero, so RSI is defined as 100.
	rsi := NewRSI(3)
	for _, b := range barsFromCloses(100, 101, 102, 103) {
		rsi.Update(b)
	}
	assert.True(t, rsi.Ready())
	assert.Equal(t, 100.0, rsi.Value())
}

func TestRSIAllLossesIsZero(t *testing.T) {
	rsi := NewRSI(3)
	for _, b := range barsFromCloses(103, 102, 101, 100) {
		rsi.Update(b)
	}
	assert.InDelta(t, 0.0, rsi.Value(), 1e-9)
}

func TestRSIBalancedGainsLosses(t *testing.T) {
	// One +1 delta and one -1 delta: RS = 1, RSI = 50.
	rsi := NewRSI(2)
	for _, b := range barsFromCloses(100, 101, 100) {
		rsi.Update(b)
	}
	assert.InDelta(t, 50.0, rsi.Value(), 1e-9)
}

func TestRSIKnownValue(t *testing.T) {
	// Deltas over period 4: +2, -1, +2, -1.
	// avg gain = 1.0, avg loss = 0.5, RS = 2, RSI = 100 - 100/3.
	rsi := NewRSI(4)
	for _, b := range barsFromCloses(100, 102, 101, 103, 102) {
		rsi.Update(b)
	}
	assert.InDelta(t, 100.0-100.0/3.0, rsi.Value(), 1e-9)
}

func TestRSISlidingWindow(t *testing.T) {
	rsi := NewRSI(2)
	for _, b := range barsFromCloses(100, 90, 80, 81, 82) {
		rsi.Update(b)
	}
	// Trailing closes are 80, 81, 82: all gains.
	assert.Equal(t, 100.0, rsi.Value())
}

func TestRSIReset(t *testing.T) {
	rsi := NewRSI(2)
	for _, b := range barsFromCloses(100, 101, 102) {
		rsi.Update(b)
	}
	assert.True(t, rsi.Ready())

	rsi.Reset()
	assert.False(t, rsi.Ready())
	assert.Equal(t, 0.0, rsi.Value())
}
