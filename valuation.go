package microcap

// TotalValue returns cash plus the market value of every open holding
// at its last-known price. Pure with respect to ledger state: it is
// used both to build trade snapshots and to display live totals.
func (l *Ledger) TotalValue() Money {
	total := l.cash
	for _, h := range l.holdings {
		total = total.Add(h.MarketValue())
	}
	return total
}

// ProfitAndLoss returns the total value minus the initial balance.
func (l *Ledger) ProfitAndLoss(initial Money) Money {
	return l.TotalValue().Sub(initial)
}
