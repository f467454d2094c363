package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	microcap "github.com/niksbanna/Gemini-Micro-Cap-Trader"
	"github.com/niksbanna/Gemini-Micro-Cap-Trader/date"
)

type buyCmd struct {
	ticker string
	price  float64
	shares float64
	max    bool
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy shares of a stock" }
func (*buyCmd) Usage() string {
	return `mct buy -t <ticker> -p <price> [-s <shares> | -max]

  Executes a simulated buy at the given price. With -max, buys as many
  whole shares as the cash balance allows.

Usage Examples:
$ mct buy -t ABEO -p 5.75 -s 8
$ mct buy -t ABEO -p 5.75 -max
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker to buy.")
	f.Float64Var(&c.price, "p", 0, "Price per share.")
	f.Float64Var(&c.shares, "s", 0, "Number of shares.")
	f.BoolVar(&c.max, "max", false, "Buy the maximum affordable whole shares.")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	s, err := a.openSession()
	if err != nil {
		return fail(err)
	}

	price := microcap.M(c.price)
	shares := microcap.Q(c.shares)
	if c.max {
		shares = s.Ledger.MaxBuyShares(price)
	}

	tx, err := s.Ledger.ExecuteTrade(microcap.Buy, c.ticker, price, shares, date.Today())
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

	fmt.Printf("Bought %s %s at %s for %s. Cash: %s, total value: %s\n",
		tx.Shares, tx.Ticker, tx.Price, tx.Amount(), s.Ledger.Cash(), s.Ledger.TotalValue())
	return subcommands.ExitSuccess
}

// isTradeRejection tells a recoverable trade-validation failure from a
// real error. Rejections leave the ledger untouched and only deserve a
// notice.
func isTradeRejection(err error) bool {
	return errors.Is(err, microcap.ErrInsufficientFunds) ||
		errors.Is(err, microcap.ErrNoPosition) ||
		errors.Is(err, microcap.ErrInsufficientShares)
}
