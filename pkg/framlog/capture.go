package framlog

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Capture persists panic diagnostics through a Logger and then parks the
// process so the stored trail survives into the next boot.
type Capture struct {
	Logger *Logger
	// Out mirrors diagnostics for an attached console.
	// Defaults to os.Stderr.
	Out io.Writer
	// SleepInterval paces the halt loop. Defaults to one second.
	SleepInterval time.Duration

	sleep func(time.Duration)
}

// NewCapture creates a Capture writing through l.
func NewCapture(l *Logger) *Capture {
	return &Capture{Logger: l}
}

// Recover captures a pending panic, persists the diagnostic and halts
// instead of crashing. Defer it directly at the top of the function
// whose panics must leave a trail.
func (c *Capture) Recover() {
	if r := recover(); r != nil {
		c.Capture(r)
		c.Halt()
	}
}

// Capture formats and persists the diagnostic for a recovered value.
// Store and mirror failures are dropped, a capture in flight must not
// raise again.
func (c *Capture) Capture(v interface{}) {
	defer func() { recover() }()
	if file, line, ok := panicSite(); ok {
		c.emit(fmt.Sprintf("Panic occurred in file '%s' at line %d", file, line))
	} else {
		c.emit("Panic occurred but can't get location information...")
	}
	c.emit(fmt.Sprintf("panic: %v", v))
}

// Halt parks the process in an endless sleep loop. It never returns.
func (c *Capture) Halt() {
	interval := c.SleepInterval
	if interval <= 0 {
		interval = time.Second
	}
	sleep := c.sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	for {
		sleep(interval)
	}
}

func (c *Capture) emit(line string) {
	if l := c.Logger; l != nil {
		l.Append(line + "\n")
	}
	out := c.Out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintln(out, line)
}

// panicSite walks the stack for the frame that raised the panic being
// recovered: the first non-runtime frame after the runtime panic frames.
func panicSite() (file string, line int, ok bool) {
	var pcs [64]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	inRuntime := false
	for {
		f, more := frames.Next()
		if strings.HasPrefix(f.Function, "runtime.") {
			inRuntime = true
		} else if inRuntime {
			return f.File, f.Line, true
		}
		if !more {
			return "", 0, false
		}
	}
}

var (
	captureLock   sync.Mutex
	activeCapture *Capture
)

// Install registers c as the process-wide capture hook. At most one hook
// may be active at a time.
func Install(c *Capture) error {
	captureLock.Lock()
	defer captureLock.Unlock()
	if activeCapture != nil {
		return ErrCaptureActive
	}
	activeCapture = c
	return nil
}

// Uninstall removes the process-wide capture hook.
func Uninstall() {
	captureLock.Lock()
	activeCapture = nil
	captureLock.Unlock()
}

// Installed returns the active capture hook, nil when none.
func Installed() *Capture {
	captureLock.Lock()
	defer captureLock.Unlock()
	return activeCapture
}

// Recover runs the installed capture hook on a pending panic and is a
// no-op otherwise. Defer it directly at the top of main and of every
// goroutine whose panics must leave a trail.
func Recover() {
	c := Installed()
	if c == nil {
		return
	}
	if r := recover(); r != nil {
		c.Capture(r)
		c.Halt()
	}
}
