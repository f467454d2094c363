package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	microcap "github.com/niksbanna/Gemini-Micro-Cap-Trader"
	"github.com/niksbanna/Gemini-Micro-Cap-Trader/date"
)

type sellCmd struct {
	ticker string
	price  float64
	shares float64
	all    bool
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares of a held stock" }
func (*sellCmd) Usage() string {
	return `mct sell -t <ticker> -p <price> [-s <shares> | -all]

  Executes a simulated sell at the given price. With -all, closes the
  whole position.

Usage Examples:
$ mct sell -t ABEO -p 6.10 -s 4
$ mct sell -t ABEO -p 6.10 -all
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker to sell.")
	f.Float64Var(&c.price, "p", 0, "Price per share.")
	f.Float64Var(&c.shares, "s", 0, "Number of shares.")
	f.BoolVar(&c.all, "all", false, "Sell the entire position.")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	s, err := a.openSession()
	if err != nil {
		return fail(err)
	}

	shares := microcap.Q(c.shares)
	if c.all {
		h, ok := s.Ledger.Position(c.ticker)
		if !ok {
			fmt.Fprintf(os.Stderr, "Trade rejected: no position in %s\n", c.ticker)
			return subcommands.ExitFailure
		}
		shares = h.Shares
	}

	tx, err := s.Ledger.ExecuteTrade(microcap.Sell, c.ticker, microcap.M(c.price), shares, date.Today())
	if isTradeRejection(err) {
		fmt.Fprintln(os.Stderr, "Trade rejected:", err)
		return subcommands.ExitFailure
	}
	if err != nil {
		return fail(err)
	}
	if err := s.Commit(); err != nil {
		return fail(err)
	}

	fmt.Printf("Sold %s %s at %s for %s. Cash: %s, total value: %s\n",
		tx.Shares, tx.Ticker, tx.Price, tx.Amount(), s.Ledger.Cash(), s.Ledger.TotalValue())
	return subcommands.ExitSuccess
}
