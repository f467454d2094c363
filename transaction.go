package microcap

import (
	"github.com/google/uuid"

	"github.com/niksbanna/Gemini-Micro-Cap-Trader/date"
)

// Side identifies the direction of a trade.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Transaction is the immutable record of one executed trade. Records are
// created exactly once per successful trade and never mutated; the
// ledger keeps them most recent first.
type Transaction struct {
	ID     string   `json:"id"`
	Side   Side     `json:"side"`
	Ticker string   `json:"ticker"`
	Shares Quantity `json:"shares"`
	Price  Money    `json:"price"`
	Day    date.Day `json:"date"`
}

// Amount returns the cash moved by the trade: cost for a buy, proceeds
// for a sell.
func (t Transaction) Amount() Money { return t.Price.Mul(t.Shares) }

func newTransaction(side Side, ticker string, shares Quantity, price Money, on date.Day) Transaction {
	return Transaction{
		ID:     uuid.NewString(),
		Side:   side,
		Ticker: ticker,
		Shares: shares,
		Price:  price,
		Day:    on,
	}
}
