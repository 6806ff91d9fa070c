package sink

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closableBuffer struct {
	*bytes.Buffer
	closed bool
}

func (c *closableBuffer) Close() error {
	c.closed = true

	return nil
}

// throttledWriter declares non-blocking capability and accepts at most
// `accept` bytes per write call.
type throttledWriter struct {
	buf    bytes.Buffer
	accept int
}

func (w *throttledWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *throttledWriter) NonblockingCapable() bool {
	return true
}

func (w *throttledWriter) WriteNonblock(p []byte) (int, error) {
	if w.accept <= 0 || w.accept >= len(p) {
		return w.buf.Write(p)
	}

	return w.buf.Write(p[:w.accept])
}

func TestOpenAdoptsWriter(t *testing.T) {
	buf := &bytes.Buffer{}

	s, err := Open(buf, Options{Environment: "test"})
	require.NoError(t, err)

	n, err := s.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", buf.String())
	assert.Empty(t, s.Path())
}

func TestOpenRejectsUnsupportedDestination(t *testing.T) {
	_, err := Open(42, Options{Environment: "test"})
	require.ErrorIs(t, err, ErrUnsupportedDestination)

	_, err = Open(nil, Options{Environment: "test"})
	require.ErrorIs(t, err, ErrUnsupportedDestination)

	_, err = Open("", Options{Environment: "test"})
	require.Error(t, err)
}

func TestOpenCreatesFileWithHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "app.log")
	stamp := time.Date(2026, time.January, 2, 15, 4, 5, 0, time.UTC)

	s, err := Open(path, Options{
		Environment: "test",
		Delimiter:   " ~ ",
		Clock:       func() time.Time { return stamp },
	})
	require.NoError(t, err)

	require.NoError(t, s.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	want := stamp.Format(http.TimeFormat) + " ~ info ~ Logfile created\n"
	assert.Equal(t, want, string(content))
}

func TestOpenAppendsToExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	require.NoError(t, os.WriteFile(path, []byte("existing\n"), 0o644))

	s, err := Open(path, Options{Environment: "test"})
	require.NoError(t, err)

	_, err = s.Write([]byte("appended\n"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "existing\nappended\n", string(content),
		"an existing file is opened for append without a new header")
}

func TestOpenFailsOnUnwritableDirectory(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("not a directory"), 0o644))

	_, err := Open(filepath.Join(blocked, "deeper", "app.log"), Options{Environment: "test"})
	require.Error(t, err, "directory creation failure is a configuration error")
}

func TestModeSelection(t *testing.T) {
	tests := []struct {
		name        string
		destination any
		environment string
		want        WriteMode
	}{
		{
			name:        "development forces blocking",
			destination: &throttledWriter{},
			environment: "development",
			want:        ModeBlocking,
		},
		{
			name:        "test forces blocking",
			destination: &throttledWriter{},
			environment: "test",
			want:        ModeBlocking,
		},
		{
			name:        "stdout forces blocking",
			destination: os.Stdout,
			environment: "production",
			want:        ModeBlocking,
		},
		{
			name:        "stderr forces blocking",
			destination: os.Stderr,
			environment: "production",
			want:        ModeBlocking,
		},
		{
			name:        "incapable writer stays blocking",
			destination: &bytes.Buffer{},
			environment: "production",
			want:        ModeBlocking,
		},
		{
			name:        "capable writer in production goes non-blocking",
			destination: &throttledWriter{},
			environment: "production",
			want:        ModeNonblocking,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.want == ModeNonblocking && !platformSupportsNonblocking {
				t.Skip("platform has no non-blocking write support")
			}

			s, err := Open(tt.destination, Options{Environment: tt.environment})
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Mode())
		})
	}
}

func TestNonblockingPartialWrite(t *testing.T) {
	if !platformSupportsNonblocking {
		t.Skip("platform has no non-blocking write support")
	}

	dest := &throttledWriter{accept: 4}

	s, err := Open(dest, Options{Environment: "production"})
	require.NoError(t, err)
	require.Equal(t, ModeNonblocking, s.Mode())

	n, err := s.Write([]byte("hello world"))
	require.ErrorIs(t, err, ErrWouldBlock)
	assert.Equal(t, 4, n)
	assert.Equal(t, "hell", dest.buf.String())

	dest.accept = 0

	n, err = s.Write([]byte("o world"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, "hello world", dest.buf.String())
}

func TestWriteAfterCloseFails(t *testing.T) {
	s, err := Open(&bytes.Buffer{}, Options{Environment: "test"})
	require.NoError(t, err)

	require.NoError(t, s.Close())

	_, err = s.Write([]byte("late"))
	require.ErrorIs(t, err, ErrClosed)
}

func TestCloseForwardsToClosableHandle(t *testing.T) {
	cb := &closableBuffer{Buffer: bytes.NewBuffer(nil)}

	s, err := Open(cb, Options{Environment: "test"})
	require.NoError(t, err)

	require.NoError(t, s.Close())
	assert.True(t, cb.closed, "close must be forwarded to the underlying handle")

	require.NoError(t, s.Close(), "closing twice is a no-op")
}

func TestCloseNeverClosesStandardStreams(t *testing.T) {
	s, err := Open(os.Stdout, Options{Environment: "test"})
	require.NoError(t, err)

	require.NoError(t, s.Close())

	// os.Stdout must still be usable after the sink is torn down.
	_, err = os.Stdout.Stat()
	require.NoError(t, err)
}

func TestWriteModeString(t *testing.T) {
	assert.Equal(t, "blocking", ModeBlocking.String())
	assert.Equal(t, "non-blocking", ModeNonblocking.String())
}

func TestEmptyWriteIsNoop(t *testing.T) {
	buf := &bytes.Buffer{}

	s, err := Open(buf, Options{Environment: "test"})
	require.NoError(t, err)

	n, err := s.Write(nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.True(t, strings.TrimSpace(buf.String()) == "")
}
