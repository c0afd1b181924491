// Package backtest drives a strategy over a bar feed and summarizes the run.
package backtest

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rustyeddy/backsim/journal"
	"github.com/rustyeddy/backsim/market"
	"github.com/rustyeddy/backsim/sim"
	"github.com/rustyeddy/backsim/strategies"
)

// EquityPoint is the portfolio value (cash + position marked at the bar
// close) after one bar. The equity series has exactly one point per bar and
// is the single source of truth for return and drawdown analytics.
type EquityPoint struct {
	Time  time.Time
	Value float64
}

// Runner drives a ledger forward using a feed and strategy. One Runner runs
// one backtest; build a fresh one per run, there is no reset.
type Runner struct {
	Ledger   *sim.Ledger
	Feed     BarFeed
	Strategy strategies.Strategy

	// Journal, when set, receives every fill and equity point as the run
	// progresses. Nil disables journaling.
	Journal journal.Journal
}

// Run executes the backtest loop:
//  1. validate the next bar (ordering, positive close)
//  2. strategy.OnBar -> optional order intent
//  3. ledger.Apply, fills reported back via strategy.OnFill
//  4. record one equity point
//
// Order rejections are silent: the intent is dropped and the loop moves on.
// Malformed bars abort the run with an error; the partial result is not
// returned.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if r.Ledger == nil {
		return Result{}, fmt.Errorf("backtest: Ledger is required")
	}
	if r.Feed == nil {
		return Result{}, fmt.Errorf("backtest: Feed is required")
	}
	if r.Strategy == nil {
		return Result{}, fmt.Errorf("backtest: Strategy is required")
	}
	defer r.Feed.Close()

	initial := r.Ledger.Account().Cash

	var (
		equity   []EquityPoint
		prev     market.Bar
		havePrev bool
	)

	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		bar, ok, err := r.Feed.Next()
		if err != nil {
			return Result{}, fmt.Errorf("backtest: feed: %w", err)
		}
		if !ok {
			break
		}

		if havePrev {
			err = bar.ValidateAfter(prev)
		} else {
			err = bar.Validate()
		}
		if err != nil {
			return Result{}, fmt.Errorf("backtest: %w", err)
		}
		prev = bar
		havePrev = true

		if order := r.Strategy.OnBar(r.Ledger.Account(), bar); order != nil {
			trade, filled := r.Ledger.Apply(*order, bar.Time)
			if filled {
				r.Strategy.OnFill(trade)
				log.WithFields(log.Fields{
					"time":  trade.Time.Format(time.RFC3339),
					"side":  trade.Side.String(),
					"price": trade.Price,
					"size":  trade.Size,
				}).Debug("fill")
				if r.Journal != nil {
					if err := r.Journal.RecordTrade(journal.NewTradeRecord(trade)); err != nil {
						return Result{}, fmt.Errorf("backtest: journal trade: %w", err)
					}
				}
			} else if err := r.Ledger.Check(*order); err != nil {
				log.WithField("time", bar.Time.Format(time.RFC3339)).
					WithError(err).Debug("order rejected")
			}
		}

		acct := r.Ledger.Account()
		pt := EquityPoint{Time: bar.Time, Value: r.Ledger.Equity(bar.Close)}
		equity = append(equity, pt)

		if r.Journal != nil {
			if err := r.Journal.RecordEquity(journal.EquitySnapshot{
				Time:     pt.Time,
				Cash:     acct.Cash,
				Position: acct.Position,
				Equity:   pt.Value,
			}); err != nil {
				return Result{}, fmt.Errorf("backtest: journal equity: %w", err)
			}
		}
	}

	return Summarize(initial, r.Ledger.Trades(), equity), nil
}
