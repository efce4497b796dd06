// Package store defines the byte store capability backing the persistent log.
package store

import "errors"

// Store is a small byte-addressable nonvolatile memory reached through
// bounded transfers.
type Store interface {
	// WriteAt writes len(p) bytes at offset off in a single transfer.
	// len(p) must not exceed TransferLimit.
	WriteAt(off int, p []byte) error
	// ReadAt fills p starting at offset off.
	ReadAt(off int, p []byte) error
	// TransferLimit is the largest payload a single WriteAt accepts.
	TransferLimit() int
	// Capacity is the total number of addressable bytes.
	Capacity() int
}

var (
	// ErrOutOfRange indicates an access beyond the addressable range.
	ErrOutOfRange = errors.New("address out of range")
	// ErrTransferTooLong indicates a write larger than the transfer limit.
	ErrTransferTooLong = errors.New("transfer exceeds limit")
	// ErrClosed indicates an access after the store was closed.
	ErrClosed = errors.New("store closed")
)
