package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, time, side, price, size, cash, entry_cost, pnl)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.Time, t.Side, t.Price, t.Size, t.Cash, t.EntryCost, t.PnL,
	)
	return err
}

func (j *SQLiteJournal) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity
		(time, cash, position, equity)
		VALUES (?, ?, ?, ?)`,
		e.Time, e.Cash, e.Position, e.Equity,
	)
	return err
}

// ListTrades returns all recorded trades in time order.
func (j *SQLiteJournal) ListTrades() ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, time, side, price, size, cash, entry_cost, pnl
		FROM trades ORDER BY time, trade_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []TradeRecord
	for rows.Next() {
		var r TradeRecord
		if err := rows.Scan(&r.TradeID, &r.Time, &r.Side, &r.Price, &r.Size,
			&r.Cash, &r.EntryCost, &r.PnL); err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// ListTradesBetween returns trades with from <= time < to, in time order.
func (j *SQLiteJournal) ListTradesBetween(from, to time.Time) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, time, side, price, size, cash, entry_cost, pnl
		FROM trades WHERE time >= ? AND time < ? ORDER BY time, trade_id`,
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []TradeRecord
	for rows.Next() {
		var r TradeRecord
		if err := rows.Scan(&r.TradeID, &r.Time, &r.Side, &r.Price, &r.Size,
			&r.Cash, &r.EntryCost, &r.PnL); err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// ListEquity returns the recorded equity series in time order.
func (j *SQLiteJournal) ListEquity() ([]EquitySnapshot, error) {
	rows, err := j.db.Query(`
		SELECT time, cash, position, equity FROM equity ORDER BY time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []EquitySnapshot
	for rows.Next() {
		var s EquitySnapshot
		if err := rows.Scan(&s.Time, &s.Cash, &s.Position, &s.Equity); err != nil {
			return nil, err
		}
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
