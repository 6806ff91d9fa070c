//go:build unix

package sink

import (
	"errors"
	"os"

	"github.com/hyp3rd/ewrap"
	"golang.org/x/sys/unix"
)

// platformSupportsNonblocking reports whether this build target can perform
// non-blocking descriptor writes at all.
const platformSupportsNonblocking = true

// configureNonblock shifts the descriptor into non-blocking mode. Called once
// at open when the non-blocking strategy is selected.
func configureNonblock(f *os.File) error {
	err := unix.SetNonblock(int(f.Fd()), true)
	if err != nil {
		return ewrap.Wrapf(err, "setting descriptor non-blocking").
			WithMetadata("name", f.Name())
	}

	return nil
}

// writeNonblock issues a single non-blocking write on the descriptor. It
// returns the number of bytes accepted; when the descriptor cannot take more
// data without waiting it returns ErrWouldBlock alongside the partial count.
func writeNonblock(f *os.File, p []byte) (int, error) {
	fd := int(f.Fd())

	for {
		n, err := unix.Write(fd, p)
		if n < 0 {
			n = 0
		}

		switch {
		case err == nil:
			return n, nil
		case errors.Is(err, unix.EINTR) && n == 0:
			continue
		case errors.Is(err, unix.EAGAIN):
			return n, ErrWouldBlock
		default:
			return n, ewrap.Wrapf(err, "non-blocking write").
				WithMetadata("name", f.Name())
		}
	}
}
