package tildelog

import (
	"errors"
	"strings"

	"github.com/hyp3rd/ewrap"

	"github.com/tildelog/tildelog/internal/buffer"
	"github.com/tildelog/tildelog/internal/constants"
	"github.com/tildelog/tildelog/internal/sink"
)

// SuffixFunc produces a trailing block for a log line. It is invoked lazily,
// only after the message has passed the threshold check, so callers never pay
// for formatting a message that would be discarded.
type SuffixFunc func() string

// Logger orchestrates level filtering, message formatting, buffering, and
// the destination lifecycle. It owns exactly one destination and one buffer
// at a time.
//
// A Logger assumes a single logical writer. When shared between goroutines,
// callers must serialize every buffer- or destination-mutating operation
// (leveled ops, Push, Flush, Close, Configure) themselves.
type Logger struct {
	dest        *sink.Sink
	buf         *buffer.Buffer
	threshold   Level
	delimiter   string
	autoFlush   bool
	environment string
}

// New creates a logger, applies cfg, and publishes the result as the
// process-wide active logger.
func New(cfg Config) (*Logger, error) {
	logger := &Logger{buf: buffer.New()}

	err := logger.Configure(cfg)
	if err != nil {
		return nil, err
	}

	return logger, nil
}

// Configure applies cfg to the logger: it resolves the effective threshold,
// opens the new destination, flushes and closes any prior destination before
// the swap, resets the buffer, and publishes the logger as the process-wide
// active logger.
//
// A directory-creation or file-open failure is returned synchronously and
// leaves the prior destination untouched.
func (l *Logger) Configure(cfg Config) error {
	environment := resolveEnvironment(cfg)

	delimiter := cfg.Delimiter
	if delimiter == "" {
		delimiter = constants.DefaultDelimiter
	}

	dest, err := sink.Open(cfg.Destination, sink.Options{
		Environment: environment,
		Delimiter:   delimiter,
		Clock:       cfg.Clock,
	})
	if err != nil {
		return ewrap.Wrap(err, "configuring logger destination")
	}

	if l.dest != nil {
		err = l.Close()
		if err != nil {
			closeErr := dest.Close()
			if closeErr != nil {
				return ewrap.Wrap(closeErr, "closing fresh destination after failed replacement")
			}

			return ewrap.Wrap(err, "replacing logger destination")
		}
	}

	if l.buf == nil {
		l.buf = buffer.New()
	} else {
		l.buf.Reset()
	}

	l.dest = dest
	l.threshold = resolveThreshold(cfg.Level, environment)
	l.delimiter = delimiter
	l.autoFlush = cfg.AutoFlush
	l.environment = environment

	setActive(l)

	return nil
}

// Fatal logs a message at the fatal rank.
func (l *Logger) Fatal(msg string, suffix ...SuffixFunc) error {
	return l.log(FatalLevel, msg, suffix)
}

// Error logs a message at the error rank.
func (l *Logger) Error(msg string, suffix ...SuffixFunc) error {
	return l.log(ErrorLevel, msg, suffix)
}

// Warn logs a message at the warn rank.
func (l *Logger) Warn(msg string, suffix ...SuffixFunc) error {
	return l.log(WarnLevel, msg, suffix)
}

// Info logs a message at the info rank.
func (l *Logger) Info(msg string, suffix ...SuffixFunc) error {
	return l.log(InfoLevel, msg, suffix)
}

// Debug logs a message at the debug rank.
func (l *Logger) Debug(msg string, suffix ...SuffixFunc) error {
	return l.log(DebugLevel, msg, suffix)
}

// FatalEnabled reports whether fatal messages currently pass the threshold.
func (l *Logger) FatalEnabled() bool { return l.enabled(FatalLevel) }

// ErrorEnabled reports whether error messages currently pass the threshold.
func (l *Logger) ErrorEnabled() bool { return l.enabled(ErrorLevel) }

// WarnEnabled reports whether warn messages currently pass the threshold.
func (l *Logger) WarnEnabled() bool { return l.enabled(WarnLevel) }

// InfoEnabled reports whether info messages currently pass the threshold.
func (l *Logger) InfoEnabled() bool { return l.enabled(InfoLevel) }

// DebugEnabled reports whether debug messages currently pass the threshold.
func (l *Logger) DebugEnabled() bool { return l.enabled(DebugLevel) }

// Level returns the current threshold rank.
func (l *Logger) Level() Level {
	return l.threshold
}

// SetLevel sets the threshold rank. Invalid ranks are ignored so that the
// threshold always holds a defined level.
func (l *Logger) SetLevel(level Level) {
	if level.IsValid() {
		l.threshold = level
	}
}

// Delimiter returns the field separator applied to formatted lines.
func (l *Logger) Delimiter() string {
	return l.delimiter
}

// Environment returns the deployment-context name the logger was configured
// with.
func (l *Logger) Environment() string {
	return l.environment
}

// Push appends a message to the buffer regardless of rank. The constructed
// line is the delimiter followed by the message, then one delimiter-prefixed
// block per suffix producer, with a trailing newline ensured. Producers run
// at this point and not before. When auto-flush is enabled the buffer is
// flushed before Push returns.
//
// Push returns the constructed line along with any flush error. After Close,
// and until a subsequent Configure, it fails with ErrNoDestination.
func (l *Logger) Push(msg string, suffix ...SuffixFunc) (string, error) {
	if l.dest == nil {
		return "", ErrNoDestination
	}

	var line strings.Builder

	line.WriteString(l.delimiter)
	line.WriteString(msg)

	for _, produce := range suffix {
		if produce == nil {
			continue
		}

		line.WriteString(l.delimiter)
		line.WriteString(produce())
	}

	entry := line.String()
	if !strings.HasSuffix(entry, "\n") {
		entry += "\n"
	}

	l.buf.Append(entry)

	if l.autoFlush {
		err := l.Flush()
		if err != nil {
			return entry, err
		}
	}

	return entry, nil
}

// Flush drains the buffer and issues its contents as a single write through
// the destination's cached write mode. Flushing an empty buffer performs no
// write. When a non-blocking write accepts only part of the payload, the
// unwritten remainder is put back at the head of the buffer and the
// would-block error is returned; nothing is retried automatically.
func (l *Logger) Flush() error {
	if l.dest == nil {
		return ErrNoDestination
	}

	if l.buf.Len() == 0 {
		return nil
	}

	payload := buffer.Join(l.buf.Drain())

	n, err := l.dest.Write([]byte(payload))
	if err != nil {
		if errors.Is(err, sink.ErrWouldBlock) && n < len(payload) {
			l.buf.Requeue(payload[n:])
		}

		return err
	}

	return nil
}

// Close flushes the buffer, closes the destination, and unsets it. Closing
// an already closed (or never configured) logger is a no-op. Any append or
// flush issued afterwards, without an intervening Configure, fails with
// ErrNoDestination.
func (l *Logger) Close() error {
	if l.dest == nil {
		return nil
	}

	flushErr := l.Flush()
	closeErr := l.dest.Close()
	l.dest = nil

	if flushErr != nil {
		return flushErr
	}

	if closeErr != nil {
		return closeErr
	}

	return nil
}

// log is the shared rank gate for the leveled operations. Below the
// threshold it returns immediately with no formatting, allocation, or
// buffering.
func (l *Logger) log(rank Level, msg string, suffix []SuffixFunc) error {
	if rank < l.threshold {
		return nil
	}

	_, err := l.Push(msg, suffix...)

	return err
}

func (l *Logger) enabled(rank Level) bool {
	return rank >= l.threshold
}
