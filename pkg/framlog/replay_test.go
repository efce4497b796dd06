package framlog

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/framlog.go/pkg/store/mem"
)

func TestReadAllRoundtrip(t *testing.T) {
	l := New(mem.New(WindowSize))
	require.NoError(t, l.Append("hello fram\n"))
	text, err := l.ReadAll()
	require.NoError(t, err)
	require.Equal(t, "hello fram\n", text)
}

func TestReadAllMultiBlock(t *testing.T) {
	l := New(mem.New(WindowSize))
	long := strings.Repeat("0123456789", 10)
	require.NoError(t, l.Append(long))
	text, err := l.ReadAll()
	require.NoError(t, err)
	require.Equal(t, long, text)
}

func TestReadAllStopsAtTerminator(t *testing.T) {
	st := mem.New(WindowSize)
	l := New(st)
	require.NoError(t, l.Append("keep\n"))
	// stale bytes beyond the terminator are not part of the log
	require.NoError(t, st.WriteAt(20, []byte("stale session")))
	text, err := l.ReadAll()
	require.NoError(t, err)
	require.Equal(t, "keep\n", text)
}

func TestReadAllEmpty(t *testing.T) {
	l := New(mem.New(WindowSize))
	text, err := l.ReadAll()
	require.NoError(t, err)
	require.Equal(t, "", text)
}

func TestReadAllNoTerminator(t *testing.T) {
	st := mem.New(64)
	l := New(st).WithWindow(64)
	fill := strings.Repeat("a", 64)
	require.NoError(t, WriteChunked(st, 0, []byte(fill)))
	text, err := l.ReadAll()
	require.NoError(t, err)
	require.Equal(t, fill, text)
}

func TestReadAllInvalidEncoding(t *testing.T) {
	st := mem.New(WindowSize)
	l := New(st)
	require.NoError(t, st.WriteAt(0, []byte{'h', 'i', 0xff, 0xfe, 'x', 0}))
	_, err := l.ReadAll()
	var encErr *EncodingError
	require.True(t, errors.As(err, &encErr))
	require.Equal(t, 2, encErr.Offset)
}

func TestReadAllReadError(t *testing.T) {
	st := newTestStore(WindowSize)
	st.readErr = errors.New("bus gone")
	_, err := New(st).ReadAll()
	require.Equal(t, st.readErr, err)
}

func TestReplayFraming(t *testing.T) {
	l := New(mem.New(WindowSize))
	require.NoError(t, l.Append("boot ok\n"))
	var out bytes.Buffer
	require.NoError(t, l.Replay(&out))
	require.Equal(t,
		"\n\nLog - - - - - - - - - - - - - - -\n"+
			"boot ok\n"+
			"- - - - - - - - - - - - - - - - -\n",
		out.String())
}

func TestReplayEmptyLog(t *testing.T) {
	l := New(mem.New(WindowSize))
	var out bytes.Buffer
	require.NoError(t, l.Replay(&out))
	require.Equal(t,
		"\n\nLog - - - - - - - - - - - - - - -\n"+
			"- - - - - - - - - - - - - - - - -\n",
		out.String())
}
