//go:build !unix

package sink

import "os"

// Non-unix targets have no usable non-blocking descriptor write, so mode
// selection never leaves the blocking path and these helpers are unreachable.
const platformSupportsNonblocking = false

func configureNonblock(*os.File) error {
	return nil
}

func writeNonblock(f *os.File, p []byte) (int, error) {
	return f.Write(p)
}
