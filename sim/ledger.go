// Package sim implements the execution and accounting state machine: orders
// are applied against cash and position under long-only, cash-solvent rules.
package sim

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInsufficientCash reports a buy whose commission-inclusive cost
	// exceeds available cash.
	ErrInsufficientCash = errors.New("insufficient cash for buy")

	// ErrOversizedSell reports a sell for more units than are held.
	ErrOversizedSell = errors.New("sell size exceeds position")
)

// Account is the live cash/position state of one run. Cash and Position are
// never negative; only the Ledger mutates an Account, once per fill.
type Account struct {
	Cash     float64
	Position float64
}

// Ledger applies order intents against an account, enforcing solvency and
// inventory constraints, and appends every fill to an ordered trade log.
//
// Rejections are silent: the intent is dropped with no state change and no
// trade recorded. This is deliberate risk control, not a fault; callers that
// want to know why can ask Check before applying.
type Ledger struct {
	acct       Account
	commission float64
	trades     []Trade

	// cost basis of the open lot, commission included; long-only with one
	// lot at a time, so proration on partial sells is exact
	basis float64
}

// NewLedger creates a ledger with the given starting cash and fractional
// commission rate (e.g. 0.001 for 10 bps per leg).
func NewLedger(initialCash, commission float64) *Ledger {
	return &Ledger{
		acct:       Account{Cash: initialCash},
		commission: commission,
	}
}

// Account returns a snapshot of the current cash and position.
func (l *Ledger) Account() Account {
	return l.acct
}

// Commission returns the fractional per-leg commission rate.
func (l *Ledger) Commission() float64 {
	return l.commission
}

// Trades returns the ordered, append-only log of fills.
func (l *Ledger) Trades() []Trade {
	return l.trades
}

// Check reports why an order would be rejected, or nil if it would fill at
// the current account state.
func (l *Ledger) Check(o Order) error {
	if o.Size <= 0 {
		return fmt.Errorf("order size must be positive, got %v", o.Size)
	}
	switch o.Side {
	case Buy:
		cost := o.Size * o.Price * (1 + l.commission)
		if cost > l.acct.Cash {
			return fmt.Errorf("%w: need %.2f, have %.2f", ErrInsufficientCash, cost, l.acct.Cash)
		}
	case Sell:
		if o.Size > l.acct.Position {
			return fmt.Errorf("%w: requested %v, holding %v", ErrOversizedSell, o.Size, l.acct.Position)
		}
	default:
		return fmt.Errorf("unknown order side %d", o.Side)
	}
	return nil
}

// Apply fills an order at its reference price, or drops it. The returned
// bool reports whether a trade was recorded; on false the account and the
// trade log are untouched.
func (l *Ledger) Apply(o Order, now time.Time) (Trade, bool) {
	if err := l.Check(o); err != nil {
		return Trade{}, false
	}

	var t Trade
	switch o.Side {
	case Buy:
		cost := o.Size * o.Price * (1 + l.commission)
		l.acct.Cash -= cost
		l.acct.Position += o.Size
		l.basis += cost
		t = Trade{
			Time:  now,
			Side:  Buy,
			Price: o.Price,
			Size:  o.Size,
			Cash:  cost,
		}

	case Sell:
		proceeds := o.Size * o.Price * (1 - l.commission)
		entryCost := l.basis
		if o.Size < l.acct.Position {
			entryCost = l.basis * (o.Size / l.acct.Position)
		}
		l.acct.Cash += proceeds
		l.acct.Position -= o.Size
		l.basis -= entryCost
		if l.acct.Position == 0 {
			l.basis = 0
		}
		t = Trade{
			Time:      now,
			Side:      Sell,
			Price:     o.Price,
			Size:      o.Size,
			Cash:      proceeds,
			EntryCost: entryCost,
		}
	}

	l.trades = append(l.trades, t)
	return t, true
}

// Equity returns total portfolio value at the given mark price.
func (l *Ledger) Equity(markPrice float64) float64 {
	return l.acct.Cash + l.acct.Position*markPrice
}
