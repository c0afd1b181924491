package backtest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backsim/market"
)

func TestSliceFeed(t *testing.T) {
	bars := barsFromCloses(10, 11, 12)
	feed := NewSliceFeed(bars)

	for i := 0; i < len(bars); i++ {
		b, ok, err := feed.Next()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, bars[i], b)
	}

	_, ok, err := feed.Next()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, feed.Close())
}

func TestCSVBarFeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bars.csv")
	data := `time,open,high,low,close,volume
2024-01-01T00:00:00Z,100,102,99,101,5000
2024-01-02T00:00:00Z,101,103,100,102,6000
2024-01-03T00:00:00Z,102,104,101,103,7000
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	feed, err := NewCSVBarFeed(path)
	require.NoError(t, err)
	defer feed.Close()

	var bars []market.Bar
	for {
		b, ok, err := feed.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		bars = append(bars, b)
	}

	require.Len(t, bars, 3)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), bars[0].Time)
	assert.Equal(t, 101.0, bars[0].Close)
	assert.Equal(t, 104.0, bars[2].High)
	assert.Equal(t, 7000.0, bars[2].Volume)
}

func TestCSVBarFeedMissingFile(t *testing.T) {
	_, err := NewCSVBarFeed(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestCSVBarFeedBadTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bars.csv")
	data := `time,open,high,low,close,volume
notatime,100,102,99,101,5000
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	_, err := NewCSVBarFeed(path)
	assert.Error(t, err)
}

func TestRandomWalkFeedDeterministic(t *testing.T) {
	collect := func(seed int64) []market.Bar {
		cfg := RandomWalkDefaults()
		cfg.Bars = 100
		cfg.Seed = seed
		feed := NewRandomWalkFeed(cfg)

		var bars []market.Bar
		for {
			b, ok, err := feed.Next()
			require.NoError(t, err)
			if !ok {
				break
			}
			bars = append(bars, b)
		}
		return bars
	}

	assert.Equal(t, collect(42), collect(42))
	assert.NotEqual(t, collect(42), collect(43))
}

func TestRandomWalkFeedBarsAreValid(t *testing.T) {
	cfg := RandomWalkDefaults()
	cfg.Bars = 250
	feed := NewRandomWalkFeed(cfg)

	var prev market.Bar
	havePrev := false
	n := 0
	for {
		b, ok, err := feed.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		if havePrev {
			require.NoError(t, b.ValidateAfter(prev))
		} else {
			require.NoError(t, b.Validate())
		}
		prev = b
		havePrev = true
		n++
	}
	assert.Equal(t, 250, n)
}
