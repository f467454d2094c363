package advisor

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"

	microcap "github.com/niksbanna/Gemini-Micro-Cap-Trader"
	"github.com/niksbanna/Gemini-Micro-Cap-Trader/date"
)

// reshape extracts the value at path from a decoded JSON document and
// re-decodes it into out, a typed destination.
func reshape(doc any, path string, out any) error {
	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return fmt.Errorf("extracting %q: %v: %w", path, err, ErrMalformedResponse)
	}
	raw, err := json.Marshal(jval)
	if err != nil {
		return fmt.Errorf("reshaping %q: %v: %w", path, err, ErrMalformedResponse)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("reshaping %q: %v: %w", path, err, ErrMalformedResponse)
	}
	return nil
}

func decodeDiscovery(doc any) ([]Stock, error) {
	var stocks []Stock
	if err := reshape(doc, "$.stocks", &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}

func decodeAnalysis(doc any) (*Analysis, error) {
	var wire struct {
		Ticker         string  `json:"ticker"`
		Recommendation string  `json:"recommendation"`
		CurrentPrice   float64 `json:"currentPrice"`
		Confidence     float64 `json:"confidence"`
		Analysis       string  `json:"analysis"`
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("reshaping analysis: %v: %w", err, ErrMalformedResponse)
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("reshaping analysis: %v: %w", err, ErrMalformedResponse)
	}
	return &Analysis{
		Ticker:         wire.Ticker,
		Recommendation: Recommendation(wire.Recommendation),
		CurrentPrice:   wire.CurrentPrice,
		Confidence:     int(wire.Confidence),
		Analysis:       wire.Analysis,
	}, nil
}

func decodeForecast(doc any) ([]microcap.Snapshot, string, error) {
	var wire []struct {
		Date       string  `json:"date"`
		TotalValue float64 `json:"totalValue"`
	}
	if err := reshape(doc, "$.predictions", &wire); err != nil {
		return nil, "", err
	}
	points := make([]microcap.Snapshot, 0, len(wire))
	for _, p := range wire {
		day, err := date.Parse(p.Date)
		if err != nil {
			return nil, "", fmt.Errorf("prediction day: %v: %w", err, ErrMalformedResponse)
		}
		points = append(points, microcap.Snapshot{Day: day, TotalValue: microcap.M(p.TotalValue)})
	}
	var rationale string
	if err := reshape(doc, "$.rationale", &rationale); err != nil {
		return nil, "", err
	}
	return points, rationale, nil
}

func decodeOverview(doc any) ([]MarketIndex, error) {
	var indices []MarketIndex
	if err := reshape(doc, "$.indices", &indices); err != nil {
		return nil, err
	}
	return indices, nil
}
