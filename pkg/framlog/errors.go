package framlog

import (
	"errors"
	"fmt"
)

var (
	// ErrRecordTooLong indicates a record that cannot fit the window.
	ErrRecordTooLong = errors.New("record longer than window")
	// ErrNoStore indicates a logger without a store attached.
	ErrNoStore = errors.New("store not attached")
	// ErrCaptureActive indicates a capture hook is already installed.
	ErrCaptureActive = errors.New("capture already installed")
)

// EncodingError reports stored bytes that are not valid UTF-8.
type EncodingError struct {
	Offset int
}

// Error implements error.
func (e *EncodingError) Error() string {
	return fmt.Sprintf("invalid UTF-8 at offset %d", e.Offset)
}
