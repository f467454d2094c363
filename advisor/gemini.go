package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	microcap "github.com/niksbanna/Gemini-Micro-Cap-Trader"
	"github.com/niksbanna/Gemini-Micro-Cap-Trader/date"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// ForecastHorizonDays is how many days ahead Predict asks for.
const ForecastHorizonDays = 7

// Gemini is the production Service implementation, backed by the Gemini
// API with Google Search grounding. It is safe for concurrent calls;
// responses are applied by the caller in arrival order.
type Gemini struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

// NewGemini creates the Gemini-backed advisory service. The API key is
// read from the environment (GEMINI_API_KEY) by the client.
func NewGemini(ctx context.Context, model string, log *zap.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not initialize Gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gemini{client: client, model: model, log: log}, nil
}

// generate sends one grounded request and returns the decoded JSON
// document, validated against the declared schema, plus the provenance
// extracted from the grounding metadata.
func (g *Gemini) generate(ctx context.Context, instruction string, schema *genai.Schema) (any, []Source, error) {
	prompt := instruction +
		"\n\nRespond with exactly one JSON document and nothing else, matching this schema:\n" +
		renderSchema(schema)

	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return nil, nil, fmt.Errorf("model %s: %v: %w", g.model, err, ErrLookupFailed)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, nil, fmt.Errorf("model %s returned no candidates: %w", g.model, ErrMalformedResponse)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	var doc any
	if err := json.Unmarshal([]byte(extractJSON(text.String())), &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing response document: %v: %w", err, ErrMalformedResponse)
	}
	if err := validateSchema(doc, schema, "$"); err != nil {
		return nil, nil, fmt.Errorf("%v: %w", err, ErrMalformedResponse)
	}

	sources := groundingSources(resp.Candidates[0])
	g.log.Debug("advisory response",
		zap.String("model", g.model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("sources", len(sources)))
	return doc, sources, nil
}

// extractJSON strips markdown code fences and any surrounding prose,
// keeping the first JSON value in the text.
func extractJSON(s string) string {
	start := strings.IndexAny(s, "{[")
	end := strings.LastIndexAny(s, "}]")
	if start < 0 || end < start {
		return s
	}
	return s[start : end+1]
}

// groundingSources extracts {title, uri} provenance from the grounding
// metadata, when the provider attached any.
func groundingSources(c *genai.Candidate) []Source {
	if c.GroundingMetadata == nil {
		return nil
	}
	var sources []Source
	for _, chunk := range c.GroundingMetadata.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		sources = append(sources, Source{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}
	return sources
}

// Discover implements Service.
func (g *Gemini) Discover(ctx context.Context) (*Discovery, error) {
	instruction := `Find 5 promising US micro-cap stocks (market cap under $300M) that are
currently interesting for a small speculative portfolio. Use recent news
and filings. Report the latest known share price for each.`

	doc, sources, err := g.generate(ctx, instruction, discoverSchema)
	if err != nil {
		return nil, err
	}
	stocks, err := decodeDiscovery(doc)
	if err != nil {
		return nil, err
	}
	return &Discovery{Stocks: stocks, Sources: sources}, nil
}

// Analyze implements Service.
func (g *Gemini) Analyze(ctx context.Context, ticker string) (*Analysis, error) {
	if ticker == "" {
		return nil, fmt.Errorf("ticker is missing: %w", ErrLookupFailed)
	}
	instruction := fmt.Sprintf(`Research the stock %q in depth: recent news, fundamentals,
liquidity and risks. Give a single BUY, SELL or HOLD recommendation with
a 0-100 confidence, and report the latest known share price.`, ticker)

	doc, sources, err := g.generate(ctx, instruction, analyzeSchema)
	if err != nil {
		return nil, err
	}
	a, err := decodeAnalysis(doc)
	if err != nil {
		return nil, err
	}
	a.Sources = sources
	return a, nil
}

// Predict implements Service.
func (g *Gemini) Predict(ctx context.Context, holdings []microcap.Holding, cash microcap.Money) (*Forecast, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "A simulated portfolio holds %s in cash", cash)
	for _, h := range holdings {
		fmt.Fprintf(&b, ", %s shares of %s (last price %s)", h.Shares, h.Ticker, h.CurrentPrice)
	}
	today := date.Today()
	fmt.Fprintf(&b, `.
Project the total portfolio value for each of the next %d days, from %s
through %s, based on current market conditions and momentum. Explain
your reasoning in a short rationale.`,
		ForecastHorizonDays, today.Add(1), today.Add(ForecastHorizonDays))

	doc, sources, err := g.generate(ctx, b.String(), predictSchema)
	if err != nil {
		return nil, err
	}
	points, rationale, err := decodeForecast(doc)
	if err != nil {
		return nil, err
	}
	return &Forecast{Points: points, Rationale: rationale, Sources: sources}, nil
}

// MarketOverview implements Service.
func (g *Gemini) MarketOverview(ctx context.Context) (*Overview, error) {
	instruction := `Report the current value and daily percentage change of the major US
market indices: S&P 500, Nasdaq Composite, Dow Jones Industrial Average
and Russell 2000.`

	doc, sources, err := g.generate(ctx, instruction, overviewSchema)
	if err != nil {
		return nil, err
	}
	indices, err := decodeOverview(doc)
	if err != nil {
		return nil, err
	}
	return &Overview{Indices: indices, Sources: sources}, nil
}

var _ Service = (*Gemini)(nil)
