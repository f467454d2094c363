package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// login is a stub: there is no authentication, the user id is simply
// the session store key.
type loginCmd struct{}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "create or open a user session (no authentication)" }
func (*loginCmd) Usage() string {
	return `mct login <user>

  Creates the user's session with the $100 starting balance if it does
  not exist yet, and prints its current state. Pass the same id to the
  other commands with -user, or set it in the config file.
`
}

func (*loginCmd) SetFlags(_ *flag.FlagSet) {}

func (c *loginCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one user id argument.")
		return subcommands.ExitUsageError
	}
	*userFlag = f.Arg(0)

	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	s, err := a.openSession()
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Welcome %s. Cash: %s, total value: %s, trades: %d\n",
		s.Profile.User, s.Ledger.Cash(), s.Ledger.TotalValue(), len(s.Ledger.Transactions()))
	return subcommands.ExitSuccess
}
