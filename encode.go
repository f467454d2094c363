package microcap

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/niksbanna/Gemini-Micro-Cap-Trader/date"
)

// Profile is the user entry of the session record. Login is a stub:
// the user id is whatever the user claims it is.
type Profile struct {
	User    string   `json:"user"`
	Created date.Day `json:"created"`
}

// PortfolioState is the portfolio entry of the session record: the full
// ledger state minus the transaction log, which is persisted as its own
// entry.
type PortfolioState struct {
	Cash     Money      `json:"cash"`
	Holdings []Holding  `json:"holdings"`
	History  []Snapshot `json:"history"`
}

// SessionRecord is the complete persistence document for one user:
// profile, portfolio state and transaction log. It is written in full
// on every mutation, never as a delta.
type SessionRecord struct {
	Profile      Profile        `json:"profile"`
	Portfolio    PortfolioState `json:"portfolio"`
	Transactions []Transaction  `json:"transactions"`
}

// NewSessionRecord captures the current ledger state into a record.
func NewSessionRecord(profile Profile, l *Ledger) SessionRecord {
	return SessionRecord{
		Profile: profile,
		Portfolio: PortfolioState{
			Cash:     l.Cash(),
			Holdings: l.Holdings(),
			History:  l.History().Series(),
		},
		Transactions: l.Transactions(),
	}
}

// Ledger rebuilds a ledger from the record.
func (r SessionRecord) Ledger() (*Ledger, error) {
	if len(r.Portfolio.History) == 0 {
		return nil, fmt.Errorf("session record for %q has an empty history", r.Profile.User)
	}
	l := &Ledger{
		cash:     r.Portfolio.Cash,
		holdings: make(map[string]*Holding, len(r.Portfolio.Holdings)),
		history:  restoreHistory(r.Portfolio.History),
		log:      append([]Transaction(nil), r.Transactions...),
	}
	for _, h := range r.Portfolio.Holdings {
		if !h.Shares.IsPositive() {
			return nil, fmt.Errorf("session record for %q holds %s shares of %s", r.Profile.User, h.Shares, h.Ticker)
		}
		held := h
		l.holdings[h.Ticker] = &held
	}
	return l, nil
}

// EncodeSessionRecord writes the record as an indented JSON document.
func EncodeSessionRecord(w io.Writer, r SessionRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("could not encode session record: %w", err)
	}
	return nil
}

// DecodeSessionRecord reads a record previously written by
// EncodeSessionRecord.
func DecodeSessionRecord(r io.Reader) (SessionRecord, error) {
	var rec SessionRecord
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return SessionRecord{}, fmt.Errorf("could not decode session record: %w", err)
	}
	return rec, nil
}
