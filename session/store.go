// Package session persists one user's experiment state: profile,
// portfolio and transaction log, keyed by user id.
//
// The core never assumes a storage medium: it depends on the Store
// capability, loads once at session start and overwrites the full
// record after every mutation. There is a single writer per portfolio,
// so no locking is needed.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Store is an opaque key-value persistence capability. Values are
// written in full, never as deltas.
type Store interface {
	// Load returns the value for key. The boolean reports whether the
	// key exists; a missing key is not an error.
	Load(key string) ([]byte, bool, error)
	// Save overwrites the value for key.
	Save(key string, value []byte) error
}

// FileStore keeps one JSON document per key under a directory.
type FileStore struct {
	dir string
	log *zap.Logger
}

// NewFileStore creates a store rooted at dir, creating it if needed.
func NewFileStore(dir string, log *zap.Logger) (*FileStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create session directory %q: %w", dir, err)
	}
	return &FileStore{dir: dir, log: log}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load implements Store.
func (s *FileStore) Load(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("could not load session %q: %w", key, err)
	}
	return data, true, nil
}

// Save implements Store. The value is written to a temporary file and
// renamed into place, so a crash never leaves a half-written record.
func (s *FileStore) Save(key string, value []byte) error {
	target := s.path(key)
	tmp, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("could not save session %q: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("could not save session %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not save session %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("could not save session %q: %w", key, err)
	}
	s.log.Debug("session saved", zap.String("user", key), zap.Int("bytes", len(value)))
	return nil
}

var _ Store = (*FileStore)(nil)
