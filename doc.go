// Package microcap implements the ledger and valuation engine of a $100
// micro-cap trading experiment.
//
// The Ledger owns the cash balance, the open holdings at weighted-average
// cost, the valuation History and the immutable transaction log. Trades
// are validated and executed atomically; every successful trade records
// an actual valuation snapshot and invalidates any outstanding forecast.
//
// The History keeps actual observations in a permanent chronological
// prefix and AI-forecast values in a volatile suffix that each forecast
// refresh replaces wholesale, so charts can redraw projections without
// ever disturbing the audit trail of realized values.
//
// AI research, discovery and forecasting live behind the advisor
// package; persistence lives behind the session package. Both are
// capabilities injected from the outside: this package never performs
// I/O of its own.
package microcap
