package session

import (
	"bytes"
	"fmt"

	"go.uber.org/zap"

	microcap "github.com/niksbanna/Gemini-Micro-Cap-Trader"
	"github.com/niksbanna/Gemini-Micro-Cap-Trader/date"
)

// Session binds one user's ledger to its persisted record for the
// lifetime of a CLI invocation. The ledger is exclusively owned by the
// session: mutate it, then Commit.
type Session struct {
	Profile microcap.Profile
	Ledger  *microcap.Ledger

	store Store
	log   *zap.Logger
}

// Open loads the user's session from the store, or creates a fresh
// portfolio with the fixed starting cash when none exists yet.
func Open(store Store, user string, log *zap.Logger) (*Session, error) {
	if user == "" {
		return nil, fmt.Errorf("user id is missing")
	}
	if log == nil {
		log = zap.NewNop()
	}

	data, found, err := store.Load(user)
	if err != nil {
		return nil, err
	}
	if !found {
		today := date.Today()
		s := &Session{
			Profile: microcap.Profile{User: user, Created: today},
			Ledger:  microcap.NewLedger(today),
			store:   store,
			log:     log,
		}
		log.Info("new session", zap.String("user", user), zap.String("cash", s.Ledger.Cash().String()))
		if err := s.Commit(); err != nil {
			return nil, err
		}
		return s, nil
	}

	rec, err := microcap.DecodeSessionRecord(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("session %q: %w", user, err)
	}
	ledger, err := rec.Ledger()
	if err != nil {
		return nil, fmt.Errorf("session %q: %w", user, err)
	}
	log.Debug("session loaded", zap.String("user", user), zap.Int("transactions", len(rec.Transactions)))
	return &Session{Profile: rec.Profile, Ledger: ledger, store: store, log: log}, nil
}

// Commit writes the full session record back to the store.
func (s *Session) Commit() error {
	var buf bytes.Buffer
	if err := microcap.EncodeSessionRecord(&buf, microcap.NewSessionRecord(s.Profile, s.Ledger)); err != nil {
		return err
	}
	return s.store.Save(s.Profile.User, buf.Bytes())
}
