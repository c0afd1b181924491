// Package journal persists fills and equity snapshots as a run progresses.
package journal

import (
	"time"

	"github.com/rustyeddy/backsim/pkg/id"
	"github.com/rustyeddy/backsim/sim"
)

// TradeRecord is the persisted form of a fill. The ID is assigned at
// journaling time (ULID, time-sortable); the core trade log itself carries
// no IDs so identical runs stay bit-identical.
type TradeRecord struct {
	TradeID   string
	Time      time.Time
	Side      string
	Price     float64
	Size      float64
	Cash      float64
	EntryCost float64
	PnL       float64
}

// NewTradeRecord wraps a fill for persistence, assigning it a fresh ID.
func NewTradeRecord(t sim.Trade) TradeRecord {
	return TradeRecord{
		TradeID:   id.New(),
		Time:      t.Time,
		Side:      t.Side.String(),
		Price:     t.Price,
		Size:      t.Size,
		Cash:      t.Cash,
		EntryCost: t.EntryCost,
		PnL:       t.PnL(),
	}
}

// EquitySnapshot is the persisted per-bar account state.
type EquitySnapshot struct {
	Time     time.Time
	Cash     float64
	Position float64
	Equity   float64
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}

// Nop discards everything. Useful for pure in-memory runs and tests.
type Nop struct{}

func (Nop) RecordTrade(TradeRecord) error     { return nil }
func (Nop) RecordEquity(EquitySnapshot) error { return nil }
func (Nop) Close() error                      { return nil }
