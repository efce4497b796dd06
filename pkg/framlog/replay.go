package framlog

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"
)

// BlockLen is the read block size used when scanning the window.
const BlockLen = 32

const (
	bannerHead = "Log - - - - - - - - - - - - - - -"
	bannerTail = "- - - - - - - - - - - - - - - - -"
)

// ReadAll returns the stored log text, scanning from the window origin
// up to the terminator. A window without a terminator yields the whole
// window as text.
func (l *Logger) ReadAll() (string, error) {
	if l.Store == nil {
		return "", ErrNoStore
	}
	window := l.cursor.Window()
	var buf bytes.Buffer
	block := make([]byte, BlockLen)
	for off := 0; off < window; off += BlockLen {
		n := window - off
		if n > BlockLen {
			n = BlockLen
		}
		if err := l.Store.ReadAt(off, block[:n]); err != nil {
			return "", err
		}
		if i := bytes.IndexByte(block[:n], terminator); i >= 0 {
			buf.Write(block[:i])
			return decode(buf.Bytes())
		}
		buf.Write(block[:n])
	}
	return decode(buf.Bytes())
}

// Replay writes the previous session's log to w framed by banner lines.
func (l *Logger) Replay(w io.Writer) error {
	text, err := l.ReadAll()
	if err != nil {
		return err
	}
	return Render(w, text)
}

// Render writes recovered log text to w framed by banner lines.
func Render(w io.Writer, text string) error {
	_, err := fmt.Fprintf(w, "\n\n%s\n%s%s\n", bannerHead, text, bannerTail)
	return err
}

func decode(p []byte) (string, error) {
	if !utf8.Valid(p) {
		return "", &EncodingError{Offset: invalidOffset(p)}
	}
	return string(p), nil
}

// invalidOffset finds the first byte where UTF-8 decoding fails.
func invalidOffset(p []byte) int {
	for i := 0; i < len(p); {
		r, size := utf8.DecodeRune(p[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(p)
}
