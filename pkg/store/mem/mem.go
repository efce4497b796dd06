// Package mem provides an in-memory Store for tests and simulation.
package mem

import (
	"github.com/robotalks/framlog.go/pkg/store"
)

// DefaultTransferLimit matches the payload of one bus write transaction.
const DefaultTransferLimit = 30

// Store implements store.Store on a byte slice.
type Store struct {
	data  []byte
	limit int
}

// New creates a Store with the given capacity.
func New(capacity int) *Store {
	return &Store{data: make([]byte, capacity), limit: DefaultTransferLimit}
}

// WithTransferLimit overrides the write transfer limit.
func (s *Store) WithTransferLimit(n int) *Store {
	s.limit = n
	return s
}

// WriteAt implements store.Store.
func (s *Store) WriteAt(off int, p []byte) error {
	if len(p) > s.limit {
		return store.ErrTransferTooLong
	}
	if off < 0 || off+len(p) > len(s.data) {
		return store.ErrOutOfRange
	}
	copy(s.data[off:], p)
	return nil
}

// ReadAt implements store.Store.
func (s *Store) ReadAt(off int, p []byte) error {
	if off < 0 || off+len(p) > len(s.data) {
		return store.ErrOutOfRange
	}
	copy(p, s.data[off:])
	return nil
}

// TransferLimit implements store.Store.
func (s *Store) TransferLimit() int {
	return s.limit
}

// Capacity implements store.Store.
func (s *Store) Capacity() int {
	return len(s.data)
}

// Snapshot returns a copy of the stored bytes.
func (s *Store) Snapshot() []byte {
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}
