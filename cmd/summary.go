package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	microcap "github.com/niksbanna/Gemini-Micro-Cap-Trader"
	"github.com/niksbanna/Gemini-Micro-Cap-Trader/date"
	"github.com/niksbanna/Gemini-Micro-Cap-Trader/renderer"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show cash, holdings and P&L" }
func (*summaryCmd) Usage() string {
	return `mct summary

  Shows the current cash balance, open positions at weighted-average
  cost, total portfolio value and P&L against the $100 start.
`
}

func (*summaryCmd) SetFlags(_ *flag.FlagSet) {}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	s, err := a.openSession()
	if err != nil {
		return fail(err)
	}

	report := s.Ledger.NewSummaryReport(date.Today(), microcap.StartingCash())
	printMarkdown(renderer.SummaryMarkdown(report))
	return subcommands.ExitSuccess
}

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "show the valuation history, forecasts included" }
func (*historyCmd) Usage() string {
	return `mct history

  Shows the portfolio valuation time series: recorded actuals followed
  by the current forecast, if one is outstanding.
`
}

func (*historyCmd) SetFlags(_ *flag.FlagSet) {}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	s, err := a.openSession()
	if err != nil {
		return fail(err)
	}

	report := &microcap.HistoryReport{User: s.Profile.User, Entries: s.Ledger.History().Series()}
	printMarkdown(renderer.HistoryMarkdown(report))
	return subcommands.ExitSuccess
}
