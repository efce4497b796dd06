package framlog

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level is the severity of a sink record.
type Level int

// Severity levels, least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

// String implements fmt.Stringer.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel maps a case-insensitive level name to a Level.
// Unknown names map to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return LevelDebug
	case "WARNING", "WARN":
		return LevelWarning
	case "ERROR":
		return LevelError
	}
	return LevelInfo
}

// Sink forwards leveled log calls into the persistent log, one record
// per call, formatted as "LEVEL - message".
type Sink struct {
	Logger *Logger
	// Min is the lowest severity that gets persisted.
	Min Level
	// Mirror duplicates every persisted line, nil for none.
	Mirror io.Writer
}

// NewSink creates a Sink persisting LevelInfo and above, mirrored to
// standard output.
func NewSink(l *Logger) *Sink {
	return &Sink{Logger: l, Min: LevelInfo, Mirror: os.Stdout}
}

// Enabled reports whether records at level get persisted.
func (s *Sink) Enabled(level Level) bool {
	return level >= s.Min
}

// Logf formats and persists one record. Records below the minimum
// severity are dropped. Store failures are dropped as well, the mirror
// still gets the line.
func (s *Sink) Logf(level Level, format string, args ...interface{}) {
	if !s.Enabled(level) {
		return
	}
	line := fmt.Sprintf("%s - %s", level, fmt.Sprintf(format, args...))
	if l := s.Logger; l != nil {
		l.Append(line + "\n")
	}
	if w := s.Mirror; w != nil {
		fmt.Fprintln(w, line)
	}
}

// Debugf persists a record at LevelDebug.
func (s *Sink) Debugf(format string, args ...interface{}) {
	s.Logf(LevelDebug, format, args...)
}

// Infof persists a record at LevelInfo.
func (s *Sink) Infof(format string, args ...interface{}) {
	s.Logf(LevelInfo, format, args...)
}

// Warningf persists a record at LevelWarning.
func (s *Sink) Warningf(format string, args ...interface{}) {
	s.Logf(LevelWarning, format, args...)
}

// Errorf persists a record at LevelError.
func (s *Sink) Errorf(format string, args ...interface{}) {
	s.Logf(LevelError, format, args...)
}

// Flush is a no-op. Records are persisted synchronously.
func (s *Sink) Flush() {}

// Writer returns an io.Writer persisting each write as one record at
// the given level.
func (s *Sink) Writer(level Level) io.Writer {
	return &sinkWriter{sink: s, level: level}
}

type sinkWriter struct {
	sink  *Sink
	level Level
}

func (w *sinkWriter) Write(p []byte) (int, error) {
	w.sink.Logf(w.level, "%s", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// Use routes the standard log package through s at LevelInfo.
func Use(s *Sink) {
	log.SetFlags(0)
	log.SetOutput(s.Writer(LevelInfo))
}
