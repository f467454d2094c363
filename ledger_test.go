package microcap

import (
	"errors"
	"testing"

	"github.com/niksbanna/Gemini-Micro-Cap-Trader/date"
)

var day0 = date.MustParse("2025-01-10")

func TestExecuteTrade_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		side    Side
		ticker  string
		price   Money
		shares  Quantity
		wantErr error
	}{
		{
			name:   "buy more than cash",
			side:   Buy,
			ticker: "ABEO",
			price:  M(30), shares: Q(4), // 120 > 100
			wantErr: ErrInsufficientFunds,
		},
		{
			name:   "sell without position",
			side:   Sell,
			ticker: "ABEO",
			price:  M(10), shares: Q(1),
			wantErr: ErrNoPosition,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLedger(day0)
			_, err := l.ExecuteTrade(tc.side, tc.ticker, tc.price, tc.shares, day0.Add(1))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("ExecuteTrade error = %v, want %v", err, tc.wantErr)
			}
			// A rejected trade must leave no trace.
			if !l.Cash().Equal(StartingCash()) {
				t.Errorf("cash = %s, want untouched %s", l.Cash(), StartingCash())
			}
			if len(l.Holdings()) != 0 {
				t.Errorf("holdings = %v, want none", l.Holdings())
			}
			if len(l.Transactions()) != 0 {
				t.Errorf("transaction log = %v, want empty", l.Transactions())
			}
			if got := l.History().Len(); got != 1 {
				t.Errorf("history length = %d, want 1 (opening snapshot only)", got)
			}
		})
	}
}

func TestExecuteTrade_RejectsBadParameters(t *testing.T) {
	l := NewLedger(day0)
	if _, err := l.ExecuteTrade(Buy, "ABEO", M(10), Q(0), day0); err == nil {
		t.Error("zero shares accepted")
	}
	if _, err := l.ExecuteTrade(Buy, "ABEO", M(10), Q(-1), day0); err == nil {
		t.Error("negative shares accepted")
	}
	if _, err := l.ExecuteTrade(Buy, "ABEO", M(-1), Q(1), day0); err == nil {
		t.Error("negative price accepted")
	}
	if _, err := l.ExecuteTrade(Buy, "", M(10), Q(1), day0); err == nil {
		t.Error("empty ticker accepted")
	}
	if _, err := l.ExecuteTrade(Side("SHORT"), "ABEO", M(10), Q(1), day0); err == nil {
		t.Error("unknown side accepted")
	}
}

func TestExecuteTrade_AverageCostMerge(t *testing.T) {
	l := NewLedgerWith(M(1000), day0)
	if _, err := l.ExecuteTrade(Buy, "CADL", M(5), Q(10), day0); err != nil {
		t.Fatal(err)
	}
	if _, err := l.ExecuteTrade(Buy, "CADL", M(7), Q(10), day0.Add(1)); err != nil {
		t.Fatal(err)
	}
	h, ok := l.Position("CADL")
	if !ok {
		t.Fatal("position CADL missing after two buys")
	}
	if !h.Shares.Equal(Q(20)) {
		t.Errorf("shares = %s, want 20", h.Shares)
	}
	if !h.AvgCost.Equal(M(6)) {
		t.Errorf("avgCost = %s, want 6", h.AvgCost)
	}
	if !h.CurrentPrice.Equal(M(7)) {
		t.Errorf("currentPrice = %s, want last trade price 7", h.CurrentPrice)
	}
}

func TestExecuteTrade_FullCloseRemovesPosition(t *testing.T) {
	l := NewLedger(day0)
	if _, err := l.ExecuteTrade(Buy, "ATYR", M(4), Q(10), day0); err != nil {
		t.Fatal(err)
	}
	if _, err := l.ExecuteTrade(Sell, "ATYR", M(5), Q(10), day0.Add(1)); err != nil {
		t.Fatal(err)
	}
	if _, ok := l.Position("ATYR"); ok {
		t.Error("position ATYR still present after selling all shares")
	}
	_, err := l.ExecuteTrade(Sell, "ATYR", M(5), Q(1), day0.Add(2))
	if !errors.Is(err, ErrNoPosition) {
		t.Errorf("further sell error = %v, want ErrNoPosition", err)
	}
}

func TestExecuteTrade_InsufficientShares(t *testing.T) {
	l := NewLedger(day0)
	if _, err := l.ExecuteTrade(Buy, "ATYR", M(4), Q(10), day0); err != nil {
		t.Fatal(err)
	}
	_, err := l.ExecuteTrade(Sell, "ATYR", M(5), Q(11), day0.Add(1))
	if !errors.Is(err, ErrInsufficientShares) {
		t.Fatalf("error = %v, want ErrInsufficientShares", err)
	}
	h, _ := l.Position("ATYR")
	if !h.Shares.Equal(Q(10)) {
		t.Errorf("shares = %s, want untouched 10", h.Shares)
	}
}

// Conservation: the snapshot recorded by each trade equals cash plus
// the market value of the holdings right after that trade.
func TestExecuteTrade_SnapshotConservation(t *testing.T) {
	l := NewLedger(day0)
	trades := []struct {
		side   Side
		ticker string
		price  Money
		shares Quantity
	}{
		{Buy, "ABEO", M(10), Q(5)},
		{Buy, "CADL", M(2), Q(10)},
		{Sell, "ABEO", M(12), Q(3)},
		{Buy, "ABEO", M(11), Q(2)},
		{Sell, "CADL", M(1), Q(10)},
	}
	on := day0
	for i, tr := range trades {
		on = on.Add(1)
		if _, err := l.ExecuteTrade(tr.side, tr.ticker, tr.price, tr.shares, on); err != nil {
			t.Fatalf("trade %d: %v", i, err)
		}
		last, ok := l.History().Latest()
		if !ok {
			t.Fatalf("trade %d: no snapshot recorded", i)
		}
		if !last.TotalValue.Equal(l.TotalValue()) {
			t.Errorf("trade %d: snapshot %s != total value %s", i, last.TotalValue, l.TotalValue())
		}
		if last.Prediction {
			t.Errorf("trade %d: trade snapshot flagged as prediction", i)
		}
	}
}

func TestExecuteTrade_InvalidatesForecast(t *testing.T) {
	l := NewLedger(day0)
	points := make([]Snapshot, 0, 7)
	for i := 1; i <= 7; i++ {
		points = append(points, Snapshot{Day: day0.Add(i), TotalValue: M(100 + i)})
	}
	l.History().ReplacePredictions(points)
	if got := l.History().Len(); got != 8 {
		t.Fatalf("history length = %d, want 8", got)
	}

	if _, err := l.ExecuteTrade(Buy, "ABEO", M(10), Q(5), day0.Add(1)); err != nil {
		t.Fatal(err)
	}
	series := l.History().Series()
	if len(series) != 2 {
		t.Fatalf("history after trade = %d snapshots, want 2 (opening + trade)", len(series))
	}
	for _, s := range series {
		if s.Prediction {
			t.Errorf("prediction snapshot %v survived a trade", s)
		}
	}
}

func TestMaxBuyShares(t *testing.T) {
	l := NewLedger(day0)
	if got := l.MaxBuyShares(M(3)); !got.Equal(Q(33)) {
		t.Errorf("MaxBuyShares(3) = %s, want 33", got)
	}
	if got := l.MaxBuyShares(M(0)); !got.IsZero() {
		t.Errorf("MaxBuyShares(0) = %s, want 0", got)
	}
}

// End-to-end scenario: the canonical experiment walkthrough.
func TestLedger_EndToEnd(t *testing.T) {
	l := NewLedger(day0)
	if !l.TotalValue().Equal(M(100)) {
		t.Fatalf("opening total = %s, want 100", l.TotalValue())
	}
	if got := l.History().Len(); got != 1 {
		t.Fatalf("opening history length = %d, want 1", got)
	}

	if _, err := l.ExecuteTrade(Buy, "ABEO", M(10), Q(5), day0.Add(1)); err != nil {
		t.Fatal(err)
	}
	if !l.Cash().Equal(M(50)) {
		t.Errorf("cash after buy = %s, want 50", l.Cash())
	}
	h, ok := l.Position("ABEO")
	if !ok || !h.Shares.Equal(Q(5)) || !h.AvgCost.Equal(M(10)) {
		t.Errorf("holding after buy = %+v, want 5 shares at avg cost 10", h)
	}
	series := l.History().Series()
	if len(series) != 2 || !series[1].TotalValue.Equal(M(100)) {
		t.Errorf("history after buy = %v, want [...,{%s,100}]", series, day0.Add(1))
	}

	if _, err := l.ExecuteTrade(Sell, "ABEO", M(12), Q(5), day0.Add(2)); err != nil {
		t.Fatal(err)
	}
	if !l.Cash().Equal(M(110)) {
		t.Errorf("cash after sell = %s, want 110", l.Cash())
	}
	if holdings := l.Holdings(); len(holdings) != 0 {
		t.Errorf("holdings after sell = %v, want none", holdings)
	}
	last, _ := l.History().Latest()
	if !last.TotalValue.Equal(M(110)) {
		t.Errorf("last snapshot = %s, want 110", last.TotalValue)
	}
	if pnl := l.ProfitAndLoss(StartingCash()); !pnl.Equal(M(10)) {
		t.Errorf("pnl = %s, want +10", pnl)
	}
	if txs := l.Transactions(); len(txs) != 2 || txs[0].Side != Sell || txs[1].Side != Buy {
		t.Errorf("transaction log = %v, want sell then buy (most recent first)", txs)
	}
}
