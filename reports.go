package microcap

import "github.com/niksbanna/Gemini-Micro-Cap-Trader/date"

// SummaryReport is a view of the portfolio at one day, ready for
// rendering.
type SummaryReport struct {
	Day        date.Day
	Cash       Money
	Holdings   []Holding
	TotalValue Money
	PnL        Money
}

// HistoryReport is the valuation series ready for rendering, predicted
// rows included.
type HistoryReport struct {
	User    string
	Entries []Snapshot
}

// NewSummaryReport builds the summary view of the ledger against the
// given initial balance.
func (l *Ledger) NewSummaryReport(on date.Day, initial Money) *SummaryReport {
	return &SummaryReport{
		Day:        on,
		Cash:       l.Cash(),
		Holdings:   l.Holdings(),
		TotalValue: l.TotalValue(),
		PnL:        l.ProfitAndLoss(initial),
	}
}
