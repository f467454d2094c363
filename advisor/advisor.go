// Package advisor is the gateway to the AI research service.
//
// It exposes four typed operations: candidate discovery, deep analysis
// of one ticker, a market overview, and a forward valuation forecast.
// Each request carries a natural-language instruction plus a declared
// JSON response schema; each response is a single JSON document
// validated against that schema, with provenance extracted from the
// provider's grounding metadata when present.
//
// The ledger core only depends on the Service interface and the payload
// shapes, never on the Gemini client, so unit tests run against the
// deterministic Stub.
package advisor

import (
	"context"
	"errors"

	microcap "github.com/niksbanna/Gemini-Micro-Cap-Trader"
)

// Gateway failure taxonomy. ErrLookupFailed covers transport and model
// failures; ErrMalformedResponse covers documents that cannot be parsed
// or do not satisfy the declared schema. Neither is fatal: call sites
// decide between an empty-payload fallback and a hard failure.
var (
	ErrLookupFailed      = errors.New("advisory lookup failed")
	ErrMalformedResponse = errors.New("malformed advisory response")
)

// Source is one provenance record attached to a payload.
type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Stock is one discovery candidate. The core does not validate or
// dedupe candidates, it only offers them.
type Stock struct {
	Ticker    string  `json:"ticker"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	MarketCap string  `json:"marketCap"`
	Reason    string  `json:"reason"`
}

// Discovery is the candidate feed payload.
type Discovery struct {
	Stocks  []Stock
	Sources []Source
}

// Recommendation is the advised action for one ticker.
type Recommendation string

const (
	RecommendBuy  Recommendation = "BUY"
	RecommendSell Recommendation = "SELL"
	RecommendHold Recommendation = "HOLD"
)

// Analysis is the deep-analysis payload for one ticker. Confidence and
// the analysis text are opaque display data: they must never drive
// control flow. Ticker and CurrentPrice may serve as trade parameters
// for the max-buy and exit-all shortcuts.
type Analysis struct {
	Ticker         string
	Recommendation Recommendation
	CurrentPrice   float64
	Confidence     int // 0-100
	Analysis       string
	Sources        []Source
}

// Forecast is the forward valuation payload. Points carry the days the
// forecaster chose; the caller folds them into the history via
// ReplacePredictions which flags them as predictions.
type Forecast struct {
	Points    []microcap.Snapshot
	Rationale string
	Sources   []Source
}

// MarketIndex is one line of the market overview.
type MarketIndex struct {
	Name          string  `json:"name"`
	Value         float64 `json:"value"`
	ChangePercent float64 `json:"changePercent"`
}

// Overview is the informational market snapshot. It never touches the
// ledger.
type Overview struct {
	Indices []MarketIndex
	Sources []Source
}

// Service is the advisory capability the application depends on.
type Service interface {
	// Discover returns micro-cap candidates for the discovery feed.
	Discover(ctx context.Context) (*Discovery, error)
	// Analyze researches a single ticker in depth.
	Analyze(ctx context.Context, ticker string) (*Analysis, error)
	// Predict forecasts the total portfolio value over the coming days
	// given the open holdings and cash balance.
	Predict(ctx context.Context, holdings []microcap.Holding, cash microcap.Money) (*Forecast, error)
	// MarketOverview reports the state of the major indices.
	MarketOverview(ctx context.Context) (*Overview, error)
}
