package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	microcap "github.com/niksbanna/Gemini-Micro-Cap-Trader"
	"github.com/niksbanna/Gemini-Micro-Cap-Trader/advisor"
	"github.com/niksbanna/Gemini-Micro-Cap-Trader/date"
	"github.com/niksbanna/Gemini-Micro-Cap-Trader/renderer"
)

type discoverCmd struct{}

func (*discoverCmd) Name() string     { return "discover" }
func (*discoverCmd) Synopsis() string { return "ask the advisor for micro-cap candidates" }
func (*discoverCmd) Usage() string {
	return `mct discover

  Asks the advisor for a list of interesting micro-cap stocks with
  sources. Informational: nothing is traded.
`
}

func (*discoverCmd) SetFlags(_ *flag.FlagSet) {}

func (c *discoverCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	svc, err := a.newAdvisor(ctx)
	if err != nil {
		return fail(err)
	}

	d, err := svc.Discover(ctx)
	if err != nil {
		// The feed has a meaningful empty state, degrade rather than fail.
		fmt.Fprintln(os.Stderr, "Discovery unavailable:", err)
		d = &advisor.Discovery{}
	}
	printMarkdown(renderer.DiscoveryMarkdown(d))
	return subcommands.ExitSuccess
}

type overviewCmd struct{}

func (*overviewCmd) Name() string     { return "overview" }
func (*overviewCmd) Synopsis() string { return "show the major market indices" }
func (*overviewCmd) Usage() string {
	return `mct overview

  Shows the advisor's view of the major US indices. Informational only.
`
}

func (*overviewCmd) SetFlags(_ *flag.FlagSet) {}

func (c *overviewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	svc, err := a.newAdvisor(ctx)
	if err != nil {
		return fail(err)
	}

	o, err := svc.MarketOverview(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Market overview unavailable:", err)
		o = &advisor.Overview{}
	}
	printMarkdown(renderer.OverviewMarkdown(o))
	return subcommands.ExitSuccess
}

type analyzeCmd struct {
	apply bool
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "deep analysis of one ticker, optionally acted on" }
func (*analyzeCmd) Usage() string {
	return `mct analyze [-apply] <ticker>

  Asks the advisor for a deep analysis of the ticker. With -apply, a
  BUY recommendation buys the maximum affordable whole shares at the
  advised price, and a SELL closes the position; HOLD does nothing.
  Confidence and analysis text are display only.

Usage Examples:
$ mct analyze ABEO
$ mct analyze -apply ABEO
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.apply, "apply", false, "Execute the max-buy or exit-all shortcut for the recommendation.")
}

func (c *analyzeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one ticker argument.")
		return subcommands.ExitUsageError
	}
	ticker := f.Arg(0)

	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	svc, err := a.newAdvisor(ctx)
	if err != nil {
		return fail(err)
	}

	// Deep analysis has no meaningful empty state: failures are hard.
	analysis, err := svc.Analyze(ctx, ticker)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.AnalysisMarkdown(analysis))

	if !c.apply {
		return subcommands.ExitSuccess
	}
	return c.applyRecommendation(a, analysis)
}

// applyRecommendation executes the max-buy / exit-all shortcut. Only
// the recommendation, ticker and price feed the trade; confidence never
// does.
func (c *analyzeCmd) applyRecommendation(a *app, analysis *advisor.Analysis) subcommands.ExitStatus {
	s, err := a.openSession()
	if err != nil {
		return fail(err)
	}

	price := microcap.M(analysis.CurrentPrice)
	var side microcap.Side
	var shares microcap.Quantity

	switch analysis.Recommendation {
	case advisor.RecommendBuy:
		side, shares = microcap.Buy, s.Ledger.MaxBuyShares(price)
		if shares.IsZero() {
			fmt.Fprintln(os.Stderr, "Not enough cash for a single share, nothing done.")
			return subcommands.ExitSuccess
		}
	case advisor.RecommendSell:
		h, ok := s.Ledger.Position(analysis.Ticker)
		if !ok {
			fmt.Fprintf(os.Stderr, "No position in %s, nothing done.\n", analysis.Ticker)
			return subcommands.ExitSuccess
		}
		side, shares = microcap.Sell, h.Shares
	default:
		fmt.Println("HOLD: nothing done.")
		return subcommands.ExitSuccess
	}

	tx, err := s.Ledger.ExecuteTrade(side, analysis.Ticker, price, shares, date.Today())
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
	fmt.Printf("Applied %s: %s %s at %s. Cash: %s\n",
		analysis.Recommendation, tx.Shares, tx.Ticker, tx.Price, s.Ledger.Cash())
	return subcommands.ExitSuccess
}

type predictCmd struct{}

func (*predictCmd) Name() string     { return "predict" }
func (*predictCmd) Synopsis() string { return "refresh the portfolio value forecast" }
func (*predictCmd) Usage() string {
	return `mct predict

  Asks the advisor to project the total portfolio value over the next
  days and folds the projection into the history, replacing any earlier
  forecast. On failure the forecast is cleared, never left stale.
`
}

func (*predictCmd) SetFlags(_ *flag.FlagSet) {}

func (c *predictCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	s, err := a.openSession()
	if err != nil {
		return fail(err)
	}
	svc, err := a.newAdvisor(ctx)
	if err != nil {
		return fail(err)
	}

	forecast, err := svc.Predict(ctx, s.Ledger.Holdings(), s.Ledger.Cash())
	if err != nil {
		// An empty forecast with a rationale, not a stale suffix.
		fmt.Fprintln(os.Stderr, "Forecast unavailable:", err)
		forecast = &advisor.Forecast{Rationale: "Forecast unavailable: " + err.Error()}
	}

	s.Ledger.History().ReplacePredictions(forecast.Points)
	if err := s.Commit(); err != nil {
		return fail(err)
	}

	printMarkdown(renderer.ForecastMarkdown(forecast))
	printMarkdown(renderer.HistoryMarkdown(&microcap.HistoryReport{
		User:    s.Profile.User,
		Entries: s.Ledger.History().Series(),
	}))
	return subcommands.ExitSuccess
}
