package renderer

import (
	"fmt"
	"strings"

	microcap "github.com/niksbanna/Gemini-Micro-Cap-Trader"
)

// SummaryMarkdown renders the portfolio summary: cash, holdings with
// cost basis and unrealized gains, total value and P&L.
func SummaryMarkdown(r *microcap.SummaryReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolio on %s\n\n", r.Day)

	if len(r.Holdings) == 0 {
		b.WriteString("No open positions.\n\n")
	} else {
		t := newTable("Ticker", "Shares", "Avg Cost", "Price", "Value", "Unrealized").
			alignRight(1, 2, 3, 4, 5)
		for _, h := range r.Holdings {
			t.row(h.Ticker,
				h.Shares.String(),
				h.AvgCost.String(),
				h.CurrentPrice.String(),
				h.MarketValue().String(),
				h.UnrealizedGain().SignedString())
		}
		t.writeTo(&b)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "- Cash: %s\n", r.Cash)
	fmt.Fprintf(&b, "- Total value: %s\n", r.TotalValue)
	fmt.Fprintf(&b, "- P&L: %s\n", r.PnL.SignedString())
	return b.String()
}

// HistoryMarkdown renders the valuation series, predicted rows marked.
func HistoryMarkdown(r *microcap.HistoryReport) string {
	var b strings.Builder
	if r.User != "" {
		fmt.Fprintf(&b, "# Valuation history for %s\n\n", r.User)
	} else {
		b.WriteString("# Valuation history\n\n")
	}

	t := newTable("Date", "Total Value", "").alignRight(1)
	for _, s := range r.Entries {
		mark := ""
		if s.Prediction {
			mark = "forecast"
		}
		t.row(s.Day.String(), s.TotalValue.String(), mark)
	}
	t.writeTo(&b)
	return b.String()
}

// TransactionsMarkdown renders the trade log, most recent first.
func TransactionsMarkdown(txs []microcap.Transaction) string {
	var b strings.Builder
	b.WriteString("# Transactions\n\n")
	if len(txs) == 0 {
		b.WriteString("No trades yet.\n")
		return b.String()
	}
	t := newTable("Date", "Side", "Ticker", "Shares", "Price", "Amount").
		alignRight(3, 4, 5)
	for _, tx := range txs {
		t.row(tx.Day.String(), string(tx.Side), tx.Ticker,
			tx.Shares.String(), tx.Price.String(), tx.Amount().String())
	}
	t.writeTo(&b)
	return b.String()
}
