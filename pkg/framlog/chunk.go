package framlog

import (
	"errors"

	"github.com/robotalks/framlog.go/pkg/store"
)

var errNoTransferLimit = errors.New("store has no transfer limit")

// WriteChunked writes p at off, split into transfers no longer than the
// store transfer limit. Transfers are issued at ascending offsets and
// the first failure aborts the rest.
func WriteChunked(s store.Store, off int, p []byte) error {
	limit := s.TransferLimit()
	if limit <= 0 {
		return errNoTransferLimit
	}
	for i := 0; i < len(p); i += limit {
		j := i + limit
		if j > len(p) {
			j = len(p)
		}
		if err := s.WriteAt(off+i, p[i:j]); err != nil {
			return err
		}
	}
	return nil
}
