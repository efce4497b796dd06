package framlog

import (
	"bytes"
	"io"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/framlog.go/pkg/store/mem"
)

func TestCaptureWritesDiagnostic(t *testing.T) {
	l := New(mem.New(WindowSize))
	var console bytes.Buffer
	c := NewCapture(l)
	c.Out = &console

	func() {
		defer func() {
			if r := recover(); r != nil {
				c.Capture(r)
			}
		}()
		idx := 3
		data := []byte{1, 2, 3}
		_ = data[idx]
	}()

	text, err := l.ReadAll()
	require.NoError(t, err)
	require.Contains(t, text, "Panic occurred in file '")
	require.Contains(t, text, "capture_test.go' at line ")
	require.Contains(t, text, "panic: runtime error: index out of range")
	require.Contains(t, console.String(), "capture_test.go")
}

func TestCaptureLocationUnknown(t *testing.T) {
	l := New(mem.New(WindowSize))
	c := NewCapture(l)
	c.Out = io.Discard

	c.Capture("nope")

	text, err := l.ReadAll()
	require.NoError(t, err)
	require.Contains(t, text, "Panic occurred but can't get location information...")
	require.Contains(t, text, "panic: nope")
}

func TestCaptureSurvivesStoreFailure(t *testing.T) {
	st := newTestStore(WindowSize)
	st.failAt = 1
	var console bytes.Buffer
	c := NewCapture(New(st))
	c.Out = &console

	require.NotPanics(t, func() { c.Capture("lost") })
	require.Contains(t, console.String(), "panic: lost")
}

func TestRecoverHaltsOnStoreFailure(t *testing.T) {
	st := newTestStore(WindowSize)
	st.failAt = 1
	c := NewCapture(New(st))
	c.Out = io.Discard
	halted := make(chan struct{})
	c.sleep = func(time.Duration) {
		close(halted)
		runtime.Goexit()
	}

	go func() {
		defer c.Recover()
		panic("on a dead store")
	}()

	select {
	case <-halted:
	case <-time.After(2 * time.Second):
		t.Fatal("halt loop not entered")
	}
}

func TestCaptureNoLogger(t *testing.T) {
	var console bytes.Buffer
	c := &Capture{Out: &console}
	require.NotPanics(t, func() { c.Capture("bare") })
	require.Contains(t, console.String(), "panic: bare")
}

func TestRecoverHalts(t *testing.T) {
	l := New(mem.New(WindowSize))
	c := NewCapture(l)
	c.Out = io.Discard
	halted := make(chan struct{})
	c.sleep = func(time.Duration) {
		close(halted)
		runtime.Goexit()
	}

	go func() {
		defer c.Recover()
		panic("fatal fault")
	}()

	select {
	case <-halted:
	case <-time.After(2 * time.Second):
		t.Fatal("halt loop not entered")
	}
	text, err := l.ReadAll()
	require.NoError(t, err)
	require.Contains(t, text, "panic: fatal fault")
	require.Contains(t, text, "capture_test.go' at line ")
}

func TestHaltKeepsSleeping(t *testing.T) {
	c := NewCapture(nil)
	c.SleepInterval = 5 * time.Millisecond
	var intervals []time.Duration
	done := make(chan struct{})
	c.sleep = func(d time.Duration) {
		intervals = append(intervals, d)
		if len(intervals) == 3 {
			close(done)
			runtime.Goexit()
		}
	}

	go c.Halt()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("halt loop stopped early")
	}
	require.Equal(t, []time.Duration{
		5 * time.Millisecond, 5 * time.Millisecond, 5 * time.Millisecond,
	}, intervals)
}

func TestInstall(t *testing.T) {
	defer Uninstall()
	c := NewCapture(New(mem.New(WindowSize)))
	require.NoError(t, Install(c))
	require.Equal(t, c, Installed())
	require.Equal(t, ErrCaptureActive, Install(NewCapture(nil)))
	Uninstall()
	require.Nil(t, Installed())
	require.NoError(t, Install(c))
}

func TestRecoverWithoutHook(t *testing.T) {
	Uninstall()
	require.NotPanics(t, Recover)
}

func TestRecoverPackageHook(t *testing.T) {
	defer Uninstall()
	l := New(mem.New(WindowSize))
	c := NewCapture(l)
	c.Out = io.Discard
	halted := make(chan struct{})
	c.sleep = func(time.Duration) {
		close(halted)
		runtime.Goexit()
	}
	require.NoError(t, Install(c))

	go func() {
		defer Recover()
		panic("hooked")
	}()

	select {
	case <-halted:
	case <-time.After(2 * time.Second):
		t.Fatal("halt loop not entered")
	}
	text, err := l.ReadAll()
	require.NoError(t, err)
	require.Contains(t, text, "panic: hooked")
}
