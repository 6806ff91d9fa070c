package sink

import (
	"github.com/hyp3rd/ewrap"
)

// Common errors for the sink package.
var (
	// ErrClosed is returned when attempting to write to a closed sink.
	ErrClosed = ewrap.New("destination is closed")

	// ErrWouldBlock is returned when a non-blocking write cannot complete
	// without waiting. The count returned alongside it reports how many
	// bytes were written before the sink stopped accepting data.
	ErrWouldBlock = ewrap.New("write would block")

	// ErrUnsupportedDestination is returned when Open receives a value that
	// is neither a writable handle nor a filesystem path.
	ErrUnsupportedDestination = ewrap.New("destination must be an io.Writer or a file path")
)
