package advisor

import (
	"errors"
	"testing"

	microcap "github.com/niksbanna/Gemini-Micro-Cap-Trader"
	"github.com/niksbanna/Gemini-Micro-Cap-Trader/date"
)

func TestDecodeDiscovery(t *testing.T) {
	stocks, err := decodeDiscovery(doc(t, `{"stocks":[
		{"ticker":"ABEO","name":"Abeona Therapeutics","price":5.75,"marketCap":"$240M","reason":"catalyst"},
		{"ticker":"CADL","name":"Candel Therapeutics","price":4.9}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(stocks) != 2 {
		t.Fatalf("got %d stocks, want 2", len(stocks))
	}
	if stocks[0].Ticker != "ABEO" || stocks[0].Price != 5.75 || stocks[0].MarketCap != "$240M" {
		t.Errorf("first stock = %+v", stocks[0])
	}
	if stocks[1].MarketCap != "" {
		t.Errorf("optional field not left empty: %+v", stocks[1])
	}
}

func TestDecodeAnalysis(t *testing.T) {
	a, err := decodeAnalysis(doc(t, `{"ticker":"ABEO","recommendation":"HOLD","currentPrice":5.75,"confidence":64.0,"analysis":"thin volume"}`))
	if err != nil {
		t.Fatal(err)
	}
	if a.Recommendation != RecommendHold || a.Confidence != 64 || a.CurrentPrice != 5.75 {
		t.Errorf("analysis = %+v", a)
	}
}

func TestDecodeForecast(t *testing.T) {
	points, rationale, err := decodeForecast(doc(t, `{
		"predictions":[
			{"date":"2025-01-11","totalValue":101.5},
			{"date":"2025-01-12","totalValue":103.0}
		],
		"rationale":"momentum"
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if rationale != "momentum" {
		t.Errorf("rationale = %q", rationale)
	}
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if !points[0].Day.Equal(date.MustParse("2025-01-11")) || !points[0].TotalValue.Equal(microcap.M(101.5)) {
		t.Errorf("first point = %+v", points[0])
	}
}

func TestDecodeForecast_BadDayIsMalformed(t *testing.T) {
	_, _, err := decodeForecast(doc(t, `{"predictions":[{"date":"tomorrow","totalValue":101}],"rationale":"r"}`))
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("error = %v, want ErrMalformedResponse", err)
	}
}

func TestDecodeOverview(t *testing.T) {
	indices, err := decodeOverview(doc(t, `{"indices":[{"name":"S&P 500","value":6460.26,"changePercent":0.32}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(indices) != 1 || indices[0].Name != "S&P 500" || indices[0].ChangePercent != 0.32 {
		t.Errorf("indices = %+v", indices)
	}
}

func TestStubForecastFoldsIntoHistory(t *testing.T) {
	day0 := date.MustParse("2025-01-10")
	l := microcap.NewLedger(day0)
	stub := &Stub{Today: day0}

	f, err := stub.Predict(t.Context(), l.Holdings(), l.Cash())
	if err != nil {
		t.Fatal(err)
	}
	l.History().ReplacePredictions(f.Points)
	l.History().ReplacePredictions(f.Points) // refresh must replace, not append
	if got, want := l.History().Len(), 1+ForecastHorizonDays; got != want {
		t.Errorf("history length = %d, want %d", got, want)
	}
}
