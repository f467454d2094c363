package microcap

import (
	"sort"

	"github.com/niksbanna/Gemini-Micro-Cap-Trader/date"
)

// Snapshot is a single total-portfolio-value observation. Actual
// snapshots are permanent; predicted ones live in a replaceable suffix
// of the history.
type Snapshot struct {
	Day        date.Day `json:"date"`
	TotalValue Money    `json:"totalValue"`
	Prediction bool     `json:"isPrediction,omitempty"`
}

// History is the valuation time series of a portfolio. It is always a
// chronologically ordered prefix of actual snapshots, optionally
// followed by a suffix of predicted snapshots. The prefix is append-only;
// the suffix is replaced wholesale on every forecast refresh and dropped
// on every trade.
type History struct {
	snapshots []Snapshot
}

// NewHistory creates a history with a single actual snapshot, the
// opening observation of a fresh portfolio.
func NewHistory(on date.Day, value Money) *History {
	return &History{snapshots: []Snapshot{{Day: on, TotalValue: value}}}
}

// Len returns the number of snapshots, actual and predicted.
func (h *History) Len() int { return len(h.snapshots) }

// Actuals returns the number of actual (non-predicted) snapshots.
func (h *History) Actuals() int {
	n := 0
	for _, s := range h.snapshots {
		if !s.Prediction {
			n++
		}
	}
	return n
}

// Series returns a copy of the full snapshot sequence in order:
// the actual prefix followed by the prediction suffix.
func (h *History) Series() []Snapshot {
	out := make([]Snapshot, len(h.snapshots))
	copy(out, h.snapshots)
	return out
}

// Latest returns the most recent actual snapshot, if any.
func (h *History) Latest() (Snapshot, bool) {
	for i := len(h.snapshots) - 1; i >= 0; i-- {
		if !h.snapshots[i].Prediction {
			return h.snapshots[i], true
		}
	}
	return Snapshot{}, false
}

// AppendActual records a new actual observation. Any prediction suffix
// is dropped first: a realized valuation invalidates stale forecasts.
// An observation on a day already present in the actual prefix
// overwrites that day's value, keeping one snapshot per day.
func (h *History) AppendActual(on date.Day, value Money) {
	h.DropPredictions()
	for i := range h.snapshots {
		if h.snapshots[i].Day.Equal(on) {
			h.snapshots[i].TotalValue = value
			return
		}
	}
	h.snapshots = append(h.snapshots, Snapshot{Day: on, TotalValue: value})
	sort.SliceStable(h.snapshots, func(i, j int) bool {
		return h.snapshots[i].Day.Before(h.snapshots[j].Day)
	})
}

// DropPredictions removes the prediction suffix, leaving the actual
// prefix untouched.
func (h *History) DropPredictions() {
	kept := h.snapshots[:0]
	for _, s := range h.snapshots {
		if !s.Prediction {
			kept = append(kept, s)
		}
	}
	h.snapshots = kept
}

// ReplacePredictions drops the current prediction suffix and appends
// the supplied points, in the order received, flagged as predictions.
// Timestamps are taken as supplied: the forecaster is trusted to emit
// forward-looking days. Replacing with an empty list clears the suffix.
func (h *History) ReplacePredictions(points []Snapshot) {
	h.DropPredictions()
	for _, p := range points {
		p.Prediction = true
		h.snapshots = append(h.snapshots, p)
	}
}

// restoreHistory rebuilds a history from a persisted snapshot sequence.
func restoreHistory(snapshots []Snapshot) *History {
	h := &History{snapshots: make([]Snapshot, len(snapshots))}
	copy(h.snapshots, snapshots)
	return h
}
