package microcap

import (
	"errors"
	"fmt"
	"sort"

	"github.com/niksbanna/Gemini-Micro-Cap-Trader/date"
)

// Trade validation errors. They are recoverable: a rejected trade leaves
// the ledger, the history and the transaction log untouched.
var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrNoPosition         = errors.New("no position")
	ErrInsufficientShares = errors.New("insufficient shares")
)

// StartingCash is the opening balance of the experiment.
func StartingCash() Money { return M(100) }

// Holding is a currently open position. Shares are always strictly
// positive: a position reduced to zero is removed, not kept as a zero
// record.
type Holding struct {
	Ticker       string   `json:"ticker"`
	Shares       Quantity `json:"shares"`
	AvgCost      Money    `json:"avgCost"`
	CurrentPrice Money    `json:"currentPrice"`
}

// MarketValue returns shares times the last-known price.
func (h Holding) MarketValue() Money { return h.CurrentPrice.Mul(h.Shares) }

// UnrealizedGain returns the gain over the weighted-average cost basis.
func (h Holding) UnrealizedGain() Money {
	return h.CurrentPrice.Sub(h.AvgCost).Mul(h.Shares)
}

// Ledger owns the cash balance, the open holdings, the valuation
// history and the transaction log of one portfolio. It is the only
// component allowed to mutate them, and assumes a single writer.
type Ledger struct {
	cash     Money
	holdings map[string]*Holding
	history  *History
	log      []Transaction // most recent first
}

// NewLedger creates a fresh portfolio: the fixed starting cash and a
// single opening snapshot valued at that cash.
func NewLedger(on date.Day) *Ledger {
	return NewLedgerWith(StartingCash(), on)
}

// NewLedgerWith is like NewLedger with an explicit opening balance.
func NewLedgerWith(cash Money, on date.Day) *Ledger {
	return &Ledger{
		cash:     cash,
		holdings: make(map[string]*Holding),
		history:  NewHistory(on, cash),
	}
}

// Cash returns the current cash balance.
func (l *Ledger) Cash() Money { return l.cash }

// History returns the valuation history of the portfolio.
func (l *Ledger) History() *History { return l.history }

// Position returns the open holding for ticker, if any.
func (l *Ledger) Position(ticker string) (Holding, bool) {
	h, ok := l.holdings[ticker]
	if !ok {
		return Holding{}, false
	}
	return *h, true
}

// Holdings returns all open positions sorted by ticker.
func (l *Ledger) Holdings() []Holding {
	out := make([]Holding, 0, len(l.holdings))
	for _, h := range l.holdings {
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out
}

// Transactions returns a copy of the trade log, most recent first.
func (l *Ledger) Transactions() []Transaction {
	out := make([]Transaction, len(l.log))
	copy(out, l.log)
	return out
}

// MaxBuyShares returns the largest whole number of shares the current
// cash balance can buy at the given price.
func (l *Ledger) MaxBuyShares(price Money) Quantity {
	if !price.IsPositive() {
		return Q(0)
	}
	return l.cash.DivPrice(price).Floor()
}

// ExecuteTrade validates and executes one trade on the given day.
//
// A buy fails with ErrInsufficientFunds when cash cannot cover
// price*shares; on success the position is merged at weighted-average
// cost and the cost is deducted from cash. A sell fails with
// ErrNoPosition for an unknown ticker and ErrInsufficientShares when
// selling more than held; on success the shares are removed (the whole
// holding when it reaches zero) and the proceeds credited.
//
// A successful trade also appends the transaction to the log and
// records a new actual snapshot of the post-trade total value, which
// drops any outstanding prediction suffix. The operation is atomic:
// on error no state changes at all.
func (l *Ledger) ExecuteTrade(side Side, ticker string, price Money, shares Quantity, on date.Day) (Transaction, error) {
	if ticker == "" {
		return Transaction{}, errors.New("trade ticker is missing")
	}
	if !shares.IsPositive() {
		return Transaction{}, fmt.Errorf("trade shares must be positive, got %s", shares)
	}
	if price.IsNegative() {
		return Transaction{}, fmt.Errorf("trade price must not be negative, got %s", price)
	}

	amount := price.Mul(shares)

	switch side {
	case Buy:
		if l.cash.LessThan(amount) {
			return Transaction{}, fmt.Errorf("on %s, cannot buy %s %s for %s: cash balance is %s: %w",
				on, shares, ticker, amount, l.cash, ErrInsufficientFunds)
		}
		if h, ok := l.holdings[ticker]; ok {
			// Weighted-average cost merge.
			newShares := h.Shares.Add(shares)
			totalCost := h.AvgCost.Mul(h.Shares).Add(amount)
			h.AvgCost = totalCost.Div(newShares)
			h.Shares = newShares
			h.CurrentPrice = price
		} else {
			l.holdings[ticker] = &Holding{
				Ticker:       ticker,
				Shares:       shares,
				AvgCost:      price,
				CurrentPrice: price,
			}
		}
		l.cash = l.cash.Sub(amount)

	case Sell:
		h, ok := l.holdings[ticker]
		if !ok {
			return Transaction{}, fmt.Errorf("on %s, cannot sell %s: %w", on, ticker, ErrNoPosition)
		}
		if shares.GreaterThan(h.Shares) {
			return Transaction{}, fmt.Errorf("on %s, cannot sell %s %s holding only %s: %w",
				on, shares, ticker, h.Shares, ErrInsufficientShares)
		}
		h.Shares = h.Shares.Sub(shares)
		h.CurrentPrice = price
		if h.Shares.IsZero() {
			// Fully closed positions are removed; their cost basis is
			// intentionally discarded (the log keeps the raw trades).
			delete(l.holdings, ticker)
		}
		l.cash = l.cash.Add(amount)

	default:
		return Transaction{}, fmt.Errorf("unsupported trade side %q", side)
	}

	tx := newTransaction(side, ticker, shares, price, on)
	l.log = append([]Transaction{tx}, l.log...)
	l.history.AppendActual(on, l.TotalValue())
	return tx, nil
}
