// Package sink manages the writable resource behind a logger: resolving a
// destination value into an open handle, selecting the write strategy, and
// tearing the handle down again.
//
// A destination is either an already-open io.Writer, adopted as-is, or a
// filesystem path. Paths are opened for append; missing files are created
// together with their parent directories and stamped with a single header
// line carrying the creation timestamp.
//
// The write mode (blocking or non-blocking) is selected exactly once at
// open time and cached, so the steady-state write path dispatches on a stored
// enum rather than re-probing the handle per write. Non-blocking mode is only
// selected when the platform supports it, the deployment environment is
// neither development nor test, the handle is not a console stream, and the
// handle itself declares non-blocking capability.
package sink

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hyp3rd/ewrap"
	"github.com/mattn/go-isatty"

	"github.com/tildelog/tildelog/internal/constants"
)

// WriteMode identifies the write strategy cached at open time.
type WriteMode uint8

const (
	// ModeBlocking waits for each write to complete fully.
	ModeBlocking WriteMode = iota
	// ModeNonblocking returns as soon as possible and may write fewer bytes
	// than requested.
	ModeNonblocking
)

// String returns a human-readable name for the write mode.
func (m WriteMode) String() string {
	if m == ModeNonblocking {
		return "non-blocking"
	}

	return "blocking"
}

// NonblockingWriter is implemented by adopted handles that can perform
// non-blocking writes. Capability is declared, never probed: a handle that
// does not implement this interface (and is not an os file) is written to in
// blocking mode.
type NonblockingWriter interface {
	io.Writer
	// NonblockingCapable reports whether the handle accepts non-blocking writes.
	NonblockingCapable() bool
	// WriteNonblock attempts a single write without waiting for completion.
	// It may write fewer bytes than requested; when nothing more can be
	// accepted it returns the count written so far and ErrWouldBlock.
	WriteNonblock(p []byte) (int, error)
}

// Options carries the collaborators consulted when opening a sink.
type Options struct {
	// Environment is the deployment-context name ("development", "test",
	// "production", ...) used for non-blocking eligibility.
	Environment string
	// Delimiter separates the fields of the file-creation header line.
	Delimiter string
	// Clock supplies the wall-clock time stamped into the creation header.
	// Defaults to time.Now.
	Clock func() time.Time
}

// Sink owns a single writable resource and the write strategy chosen for it.
type Sink struct {
	writer io.Writer
	file   *os.File // non-nil when the handle is file-descriptor backed
	nbw    NonblockingWriter
	mode   WriteMode
	path   string // empty when the handle was adopted
	closed bool
}

// Open resolves a destination value into an open sink.
//
// An io.Writer is adopted directly. A string is treated as a file path: an
// existing file is opened for append; a missing one is created along with any
// missing parent directories, and a header line of the form
//
//	<HTTP-date><delimiter>info<delimiter>Logfile created
//
// is written to it. Any directory-creation or open failure is returned
// synchronously as a configuration error with no partial state left open.
func Open(destination any, opts Options) (*Sink, error) {
	if opts.Delimiter == "" {
		opts.Delimiter = constants.DefaultDelimiter
	}

	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	switch dest := destination.(type) {
	case io.Writer:
		return adopt(dest, opts), nil
	case string:
		return openPath(dest, opts)
	default:
		return nil, ErrUnsupportedDestination
	}
}

// adopt wraps an already-open handle without taking ownership of its lifetime
// beyond close forwarding.
func adopt(w io.Writer, opts Options) *Sink {
	s := &Sink{writer: w}

	if f, ok := w.(*os.File); ok {
		s.file = f
	}

	if nbw, ok := w.(NonblockingWriter); ok {
		s.nbw = nbw
	}

	s.selectMode(opts.Environment)

	return s
}

// openPath opens or creates the log file at the given path.
func openPath(path string, opts Options) (*Sink, error) {
	if path == "" {
		return nil, ewrap.New("log file path is required")
	}

	path = filepath.Clean(path)

	_, statErr := os.Stat(path)
	created := os.IsNotExist(statErr)

	if created {
		err := os.MkdirAll(filepath.Dir(path), constants.LogDirPermissions)
		if err != nil {
			return nil, ewrap.Wrapf(err, "creating log directory").
				WithMetadata("path", filepath.Dir(path))
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.LogFilePermissions)
	if err != nil {
		return nil, ewrap.Wrapf(err, "opening log file").
			WithMetadata("path", path)
	}

	s := &Sink{writer: file, file: file, path: path}
	s.selectMode(opts.Environment)

	if created {
		err = s.writeHeader(opts)
		if err != nil {
			ioErr := file.Close()
			if ioErr != nil {
				return nil, ewrap.Wrapf(ioErr, "closing log file after failed header write").
					WithMetadata("path", path).
					WithMetadata("err", err)
			}

			return nil, err
		}
	}

	return s, nil
}

// writeHeader stamps a freshly created log file with its creation line.
// The header is written in blocking mode regardless of the selected strategy.
func (s *Sink) writeHeader(opts Options) error {
	stamp := opts.Clock().UTC().Format(http.TimeFormat)
	header := stamp + opts.Delimiter + "info" + opts.Delimiter + constants.HeaderMessage + "\n"

	_, err := s.file.WriteString(header)
	if err != nil {
		return ewrap.Wrapf(err, "writing log file header").
			WithMetadata("path", s.path)
	}

	return nil
}

// selectMode picks the write strategy for the sink. Performed exactly once
// at open; the result is cached so Write never re-evaluates it.
func (s *Sink) selectMode(environment string) {
	s.mode = ModeBlocking

	if !platformSupportsNonblocking {
		return
	}

	if environment == constants.DevelopmentEnvironment || environment == constants.TestEnvironment {
		return
	}

	if s.isConsoleStream() {
		return
	}

	if !s.declaresNonblocking() {
		return
	}

	if s.file != nil {
		// Shift the descriptor out of blocking mode once, up front. A
		// descriptor that refuses stays on the blocking path.
		err := configureNonblock(s.file)
		if err != nil {
			return
		}
	}

	s.mode = ModeNonblocking
}

// isConsoleStream reports whether the handle is a standard console stream or
// an interactive terminal. Console streams always take the blocking path.
func (s *Sink) isConsoleStream() bool {
	if s.file == nil {
		return false
	}

	if s.file == os.Stdout || s.file == os.Stderr {
		return true
	}

	return isatty.IsTerminal(s.file.Fd()) || isatty.IsCygwinTerminal(s.file.Fd())
}

// declaresNonblocking reports whether the handle declared non-blocking
// capability. File-descriptor backed handles are implicitly capable; other
// writers must implement NonblockingWriter.
func (s *Sink) declaresNonblocking() bool {
	if s.nbw != nil {
		return s.nbw.NonblockingCapable()
	}

	return s.file != nil
}

// Mode returns the write strategy cached at open time.
func (s *Sink) Mode() WriteMode {
	return s.mode
}

// Path returns the file path backing the sink, or "" for adopted handles.
func (s *Sink) Path() string {
	return s.path
}

// Write sends the payload through the cached write mode.
//
// In blocking mode the call returns only after the full payload is written,
// or with a write error. In non-blocking mode the call may write only part of
// the payload: it returns the count written together with ErrWouldBlock, and
// the unwritten remainder is the caller's to keep.
func (s *Sink) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}

	if len(p) == 0 {
		return 0, nil
	}

	if s.mode == ModeNonblocking {
		return s.writeNonblocking(p)
	}

	n, err := s.writer.Write(p)
	if err != nil {
		return n, ewrap.Wrap(err, "writing to destination")
	}

	if n < len(p) {
		return n, ewrap.Wrap(io.ErrShortWrite, "writing to destination")
	}

	return n, nil
}

func (s *Sink) writeNonblocking(p []byte) (int, error) {
	var (
		n   int
		err error
	)

	switch {
	case s.nbw != nil:
		n, err = s.nbw.WriteNonblock(p)
	case s.file != nil:
		n, err = writeNonblock(s.file, p)
	default:
		n, err = s.writer.Write(p)
	}

	if err != nil {
		return n, err
	}

	if n < len(p) {
		return n, ErrWouldBlock
	}

	return n, nil
}

// Close closes the underlying handle if it is closable, then marks the sink
// unset. Standard console streams are never closed. Closing an already
// closed sink is a no-op.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true

	if s.file != nil && isStandardStream(s.file) {
		return nil
	}

	closer, ok := s.writer.(io.Closer)
	if !ok {
		return nil
	}

	err := closer.Close()
	if err != nil {
		return ewrap.Wrap(err, "closing destination")
	}

	return nil
}

func isStandardStream(f *os.File) bool {
	return f == os.Stdout || f == os.Stderr
}
