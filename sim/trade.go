package sim

import "time"

// Side is the direction of an order or trade.
type Side int8

const (
	Buy  Side = +1
	Sell Side = -1
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Order is an intent produced by a strategy: direction, requested size and
// the reference price. Orders are not persisted; the ledger either fills one
// into a Trade or drops it.
type Order struct {
	Side  Side
	Size  float64
	Price float64
}

// Trade is the immutable record of a filled order.
//
// Cash is the total cash delta of the fill: for buys the full cost including
// commission, for sells the net proceeds after commission.
//
// EntryCost is set on sell trades only: the commission-inclusive cost basis
// of the lot being closed, prorated by size. It lets analytics decide
// winners without reaching into strategy state.
type Trade struct {
	Time      time.Time
	Side      Side
	Price     float64
	Size      float64
	Cash      float64
	EntryCost float64
}

// PnL returns the realized profit of a sell trade (proceeds minus the cost
// basis it closed). Zero for buys.
func (t Trade) PnL() float64 {
	if t.Side != Sell {
		return 0
	}
	return t.Cash - t.EntryCost
}
