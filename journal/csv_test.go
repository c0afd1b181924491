package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/backsim/sim"
)

func TestCSVJournal(t *testing.T) {
	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	equityPath := filepath.Join(dir, "equity.csv")

	j, err := NewCSV(tradesPath, equityPath)
	require.NoError(t, err)

	t0 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(NewTradeRecord(sim.Trade{
		Time: t0, Side: sim.Buy, Price: 100, Size: 10, Cash: 1001,
	})))
	require.NoError(t, j.RecordEquity(EquitySnapshot{
		Time: t0, Cash: 8999, Position: 10, Equity: 9999,
	}))
	require.NoError(t, j.Close())

	tf, err := os.Open(tradesPath)
	require.NoError(t, err)
	defer tf.Close()

	rows, err := csv.NewReader(tf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"trade_id", "time", "side", "price", "size", "cash", "entry_cost", "pnl"}, rows[0])
	assert.Equal(t, "BUY", rows[1][2])
	assert.Equal(t, "100", rows[1][3])

	ef, err := os.Open(equityPath)
	require.NoError(t, err)
	defer ef.Close()

	erows, err := csv.NewReader(ef).ReadAll()
	require.NoError(t, err)
	require.Len(t, erows, 2)
	assert.Equal(t, "2024-01-01T09:00:00Z", erows[1][0])
	assert.Equal(t, "9999", erows[1][3])
}
