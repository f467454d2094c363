package microcap

import (
	"testing"

	"github.com/niksbanna/Gemini-Micro-Cap-Trader/date"
)

func forecast(from date.Day, days int, base float64) []Snapshot {
	points := make([]Snapshot, 0, days)
	for i := 1; i <= days; i++ {
		points = append(points, Snapshot{Day: from.Add(i), TotalValue: M(base + float64(i))})
	}
	return points
}

func TestHistory_ReplaceNotAppend(t *testing.T) {
	h := NewHistory(day0, M(100))
	h.AppendActual(day0.Add(1), M(104))

	h.ReplacePredictions(forecast(day0.Add(1), 7, 104))
	h.ReplacePredictions(forecast(day0.Add(1), 7, 110))

	if got, want := h.Len(), h.Actuals()+7; got != want {
		t.Fatalf("history length after two forecasts = %d, want %d", got, want)
	}
	series := h.Series()
	// The second forecast is authoritative.
	if last := series[len(series)-1]; !last.TotalValue.Equal(M(117)) {
		t.Errorf("last prediction = %s, want 117", last.TotalValue)
	}
}

func TestHistory_ReplaceWithEmptyClearsSuffix(t *testing.T) {
	h := NewHistory(day0, M(100))
	h.ReplacePredictions(forecast(day0, 7, 100))
	h.ReplacePredictions(nil)
	if got := h.Len(); got != 1 {
		t.Errorf("history length = %d, want 1 actual only", got)
	}
}

func TestHistory_AppendActualDropsSuffix(t *testing.T) {
	h := NewHistory(day0, M(100))
	h.ReplacePredictions(forecast(day0, 7, 100))

	h.AppendActual(day0.Add(1), M(95))

	series := h.Series()
	if len(series) != 2 {
		t.Fatalf("series = %v, want opening plus one actual", series)
	}
	for _, s := range series {
		if s.Prediction {
			t.Errorf("prediction %v survived AppendActual", s)
		}
	}
}

func TestHistory_SameDayOverwrites(t *testing.T) {
	h := NewHistory(day0, M(100))
	h.AppendActual(day0.Add(1), M(95))
	h.AppendActual(day0.Add(1), M(97))
	if got := h.Len(); got != 2 {
		t.Fatalf("length = %d, want 2, one snapshot per day", got)
	}
	last, _ := h.Latest()
	if !last.TotalValue.Equal(M(97)) {
		t.Errorf("last value = %s, want the later observation 97", last.TotalValue)
	}
}

func TestHistory_ActualPrefixStaysChronological(t *testing.T) {
	h := NewHistory(day0, M(100))
	h.AppendActual(day0.Add(3), M(103))
	h.AppendActual(day0.Add(1), M(101))
	h.AppendActual(day0.Add(2), M(102))

	series := h.Series()
	for i := 1; i < len(series); i++ {
		if series[i].Day.Before(series[i-1].Day) {
			t.Fatalf("series out of order: %v", series)
		}
	}
}

func TestHistory_PredictionTimestampsNotValidated(t *testing.T) {
	// The forecaster is trusted: points are kept in arrival order even
	// if their days are not contiguous with the actual prefix.
	h := NewHistory(day0, M(100))
	h.ReplacePredictions([]Snapshot{
		{Day: day0.Add(5), TotalValue: M(105)},
		{Day: day0.Add(2), TotalValue: M(102)},
	})
	series := h.Series()
	if len(series) != 3 {
		t.Fatalf("series length = %d, want 3", len(series))
	}
	if !series[1].Day.Equal(day0.Add(5)) || !series[2].Day.Equal(day0.Add(2)) {
		t.Errorf("prediction suffix reordered: %v", series[1:])
	}
	for _, s := range series[1:] {
		if !s.Prediction {
			t.Errorf("suffix entry %v not flagged as prediction", s)
		}
	}
}

func TestHistory_Latest(t *testing.T) {
	h := &History{}
	if _, ok := h.Latest(); ok {
		t.Error("empty history reported a latest snapshot")
	}
	h = NewHistory(day0, M(100))
	h.ReplacePredictions(forecast(day0, 3, 100))
	last, ok := h.Latest()
	if !ok || last.Prediction || !last.TotalValue.Equal(M(100)) {
		t.Errorf("Latest() = %v, %v, want the opening actual", last, ok)
	}
}
