// Package i2cfram provides a Store backed by an FRAM chip on an I2C bus.
//
// The chip is addressed with a 16-bit big-endian memory offset carried in
// the first two bytes of every write transaction. Reads address the chip
// the same way, then transfer bytes in a second segment.
package i2cfram

import (
	"encoding/binary"
	"io"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/i2c"

	"github.com/robotalks/framlog.go/pkg/store"
)

const (
	// DefaultAddr is the bus address of MB85RC256V compatible chips.
	DefaultAddr uint16 = 0x50
	// DefaultCapacity is the size of MB85RC256V, 32 KiB.
	DefaultCapacity = 0x8000
	// TransactionLimit is the largest write transaction the bus accepts.
	TransactionLimit = 32
	// addrLen is the size of the memory offset header.
	addrLen = 2
	// maxCapacity is the reach of the 16-bit offset header.
	maxCapacity = 0x10000
)

// Store implements store.Store over an I2C FRAM device.
type Store struct {
	bus      i2c.Bus
	dev      i2c.Dev
	capacity int
	closed   bool
}

// New creates a Store for the FRAM device at addr on bus.
func New(bus i2c.Bus, addr uint16) *Store {
	return &Store{
		bus:      bus,
		dev:      i2c.Dev{Bus: bus, Addr: addr},
		capacity: DefaultCapacity,
	}
}

// WithCapacity overrides the device capacity for other chip sizes.
func (s *Store) WithCapacity(n int) *Store {
	if n > maxCapacity {
		n = maxCapacity
	}
	s.capacity = n
	return s
}

// WriteAt implements store.Store. The offset header and payload share one
// bus transaction, so len(p) is bounded by TransferLimit.
func (s *Store) WriteAt(off int, p []byte) error {
	if s.closed {
		return store.ErrClosed
	}
	if len(p) > s.TransferLimit() {
		return store.ErrTransferTooLong
	}
	if off < 0 || off+len(p) > s.capacity {
		return store.ErrOutOfRange
	}
	buf := make([]byte, addrLen+len(p))
	binary.BigEndian.PutUint16(buf, uint16(off))
	copy(buf[addrLen:], p)
	if glog.V(3) {
		glog.Infof("FRAM WR %#04x %dB", off, len(p))
	}
	return s.dev.Tx(buf, nil)
}

// ReadAt implements store.Store. Reads are not bounded by TransferLimit.
func (s *Store) ReadAt(off int, p []byte) error {
	if s.closed {
		return store.ErrClosed
	}
	if off < 0 || off+len(p) > s.capacity {
		return store.ErrOutOfRange
	}
	var addr [addrLen]byte
	binary.BigEndian.PutUint16(addr[:], uint16(off))
	if glog.V(3) {
		glog.Infof("FRAM RD %#04x %dB", off, len(p))
	}
	return s.dev.Tx(addr[:], p)
}

// TransferLimit implements store.Store.
func (s *Store) TransferLimit() int {
	return TransactionLimit - addrLen
}

// Capacity implements store.Store.
func (s *Store) Capacity() int {
	return s.capacity
}

// String identifies the device for display.
func (s *Store) String() string {
	return "fram:" + s.dev.String()
}

// Close implements io.Closer. It closes the bus when the bus is closable.
// Later accesses fail with store.ErrClosed.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if closer, ok := s.bus.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
