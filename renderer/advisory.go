package renderer

import (
	"fmt"
	"strings"

	"github.com/niksbanna/Gemini-Micro-Cap-Trader/advisor"
)

// DiscoveryMarkdown renders the candidate feed.
func DiscoveryMarkdown(d *advisor.Discovery) string {
	var b strings.Builder
	b.WriteString("# Discovery\n\n")
	if len(d.Stocks) == 0 {
		b.WriteString("No candidates today.\n")
	} else {
		t := newTable("Ticker", "Name", "Price", "Market Cap", "Why").alignRight(2)
		for _, s := range d.Stocks {
			t.row(s.Ticker, s.Name, fmt.Sprintf("$%.2f", s.Price), s.MarketCap, s.Reason)
		}
		t.writeTo(&b)
	}
	writeSources(&b, d.Sources)
	return b.String()
}

// AnalysisMarkdown renders a deep analysis. Confidence and the analysis
// text are shown verbatim, they carry no meaning for the ledger.
func AnalysisMarkdown(a *advisor.Analysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s: %s\n\n", a.Ticker, a.Recommendation)
	fmt.Fprintf(&b, "- Current price: $%.2f\n", a.CurrentPrice)
	fmt.Fprintf(&b, "- Confidence: %d/100\n\n", a.Confidence)
	b.WriteString(a.Analysis)
	b.WriteString("\n")
	writeSources(&b, a.Sources)
	return b.String()
}

// ForecastMarkdown renders the forecast rationale; the projected points
// themselves land in the history report.
func ForecastMarkdown(f *advisor.Forecast) string {
	var b strings.Builder
	b.WriteString("# Forecast\n\n")
	fmt.Fprintf(&b, "%d projected points folded into the history.\n\n", len(f.Points))
	if f.Rationale != "" {
		b.WriteString(f.Rationale)
		b.WriteString("\n")
	}
	writeSources(&b, f.Sources)
	return b.String()
}

// OverviewMarkdown renders the market indices table.
func OverviewMarkdown(o *advisor.Overview) string {
	var b strings.Builder
	b.WriteString("# Market overview\n\n")
	t := newTable("Index", "Value", "Change").alignRight(1, 2)
	for _, idx := range o.Indices {
		t.row(idx.Name, fmt.Sprintf("%.2f", idx.Value), fmt.Sprintf("%+.2f%%", idx.ChangePercent))
	}
	t.writeTo(&b)
	writeSources(&b, o.Sources)
	return b.String()
}

func writeSources(b *strings.Builder, sources []advisor.Source) {
	if len(sources) == 0 {
		return
	}
	b.WriteString("\n## Sources\n\n")
	for _, s := range sources {
		title := s.Title
		if title == "" {
			title = s.URI
		}
		fmt.Fprintf(b, "- [%s](%s)\n", title, s.URI)
	}
}
