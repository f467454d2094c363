package advisor

import (
	"context"

	microcap "github.com/niksbanna/Gemini-Micro-Cap-Trader"
	"github.com/niksbanna/Gemini-Micro-Cap-Trader/date"
)

// Stub is a deterministic Service for tests and offline use. Model
// responses are non-deterministic, so ledger and CLI behavior is always
// exercised against this implementation.
type Stub struct {
	// Today anchors forecast days; zero means date.Today().
	Today date.Day
	// Err, when set, is returned by every operation.
	Err error
}

func (s *Stub) today() date.Day {
	if s.Today.IsZero() {
		return date.Today()
	}
	return s.Today
}

// Discover implements Service with a fixed candidate list.
func (s *Stub) Discover(ctx context.Context) (*Discovery, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return &Discovery{
		Stocks: []Stock{
			{Ticker: "ABEO", Name: "Abeona Therapeutics", Price: 5.75, MarketCap: "$240M", Reason: "Gene therapy catalyst ahead."},
			{Ticker: "CADL", Name: "Candel Therapeutics", Price: 4.90, MarketCap: "$210M", Reason: "Positive phase 2 readout."},
			{Ticker: "ATYR", Name: "aTyr Pharma", Price: 3.26, MarketCap: "$280M", Reason: "Undervalued pipeline."},
		},
		Sources: []Source{{Title: "stub", URI: "https://example.com/discover"}},
	}, nil
}

// Analyze implements Service: a BUY at a fixed price for any ticker.
func (s *Stub) Analyze(ctx context.Context, ticker string) (*Analysis, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return &Analysis{
		Ticker:         ticker,
		Recommendation: RecommendBuy,
		CurrentPrice:   4.00,
		Confidence:     72,
		Analysis:       "Stub analysis for " + ticker + ".",
		Sources:        []Source{{Title: "stub", URI: "https://example.com/" + ticker}},
	}, nil
}

// Predict implements Service with a flat forecast at the current total
// value, one point per day over the horizon.
func (s *Stub) Predict(ctx context.Context, holdings []microcap.Holding, cash microcap.Money) (*Forecast, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	total := cash
	for _, h := range holdings {
		total = total.Add(h.MarketValue())
	}
	today := s.today()
	points := make([]microcap.Snapshot, 0, ForecastHorizonDays)
	for i := 1; i <= ForecastHorizonDays; i++ {
		points = append(points, microcap.Snapshot{Day: today.Add(i), TotalValue: total})
	}
	return &Forecast{
		Points:    points,
		Rationale: "Stub forecast: flat at the current total value.",
	}, nil
}

// MarketOverview implements Service with fixed index values.
func (s *Stub) MarketOverview(ctx context.Context) (*Overview, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return &Overview{
		Indices: []MarketIndex{
			{Name: "S&P 500", Value: 6460.26, ChangePercent: 0.32},
			{Name: "Nasdaq Composite", Value: 21455.55, ChangePercent: -0.12},
			{Name: "Russell 2000", Value: 2366.41, ChangePercent: 0.85},
		},
	}, nil
}

var _ Service = (*Stub)(nil)
