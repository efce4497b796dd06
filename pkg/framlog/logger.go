package framlog

import (
	"fmt"

	"github.com/robotalks/framlog.go/pkg/store"
)

// WindowSize is the default size of the circular log window.
const WindowSize = 0x2000

// terminator marks the end of valid log data.
const terminator byte = 0x00

// Logger appends text records to the circular window of a store.
// The log has a single writer; Logger is not safe for concurrent use.
type Logger struct {
	Store store.Store

	cursor Cursor
}

// New creates a Logger over the first WindowSize bytes of s.
func New(s store.Store) *Logger {
	return &Logger{Store: s, cursor: Cursor{window: WindowSize}}
}

// WithWindow overrides the window size and moves the cursor back to the
// origin. The window must fit the store capacity.
func (l *Logger) WithWindow(n int) *Logger {
	l.cursor = Cursor{window: n}
	return l
}

// Offset returns the current write offset inside the window.
func (l *Logger) Offset() int {
	return l.cursor.Offset()
}

// Window returns the window size.
func (l *Logger) Window() int {
	return l.cursor.Window()
}

// Append writes text at the cursor, advances the cursor past it and
// terminates the log at the new position. A record crossing the window
// end is split, its tail rewritten from the origin. The cursor advances
// past the record even when a write fails.
func (l *Logger) Append(text string) error {
	if l.Store == nil {
		return ErrNoStore
	}
	p := []byte(text)
	if len(p) >= l.cursor.Window() {
		return ErrRecordTooLong
	}
	err := l.writeWrapped(l.cursor.Offset(), p)
	end := l.cursor.Advance(len(p))
	if err != nil {
		return err
	}
	return WriteChunked(l.Store, end, []byte{terminator})
}

func (l *Logger) writeWrapped(off int, p []byte) error {
	if head := l.cursor.Window() - off; len(p) > head {
		if err := WriteChunked(l.Store, off, p[:head]); err != nil {
			return err
		}
		return WriteChunked(l.Store, 0, p[head:])
	}
	return WriteChunked(l.Store, off, p)
}

// Printf appends a formatted record.
func (l *Logger) Printf(format string, args ...interface{}) error {
	return l.Append(fmt.Sprintf(format, args...))
}

// Println appends a formatted record with a trailing newline.
func (l *Logger) Println(format string, args ...interface{}) error {
	return l.Append(fmt.Sprintf(format, args...) + "\n")
}

// Reset forgets the stored log. The cursor moves back to the origin and
// the log is terminated there.
func (l *Logger) Reset() error {
	if l.Store == nil {
		return ErrNoStore
	}
	l.cursor.Reset()
	return WriteChunked(l.Store, 0, []byte{terminator})
}
