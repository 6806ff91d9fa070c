package tildelog

import "sync/atomic"

// active is the single process-wide logger slot. Configure publishes into it
// unconditionally; there is no coordination or drain handshake with a
// previously published logger beyond the flush-and-close its replacement
// already performed on its own destination.
var active atomic.Pointer[Logger]

// Configure creates a logger from cfg and publishes it as the process-wide
// active logger, overwriting any previous registration.
func Configure(cfg Config) (*Logger, error) {
	return New(cfg)
}

// Active returns the current process-wide logger, or nil when none has been
// configured.
func Active() *Logger {
	return active.Load()
}

func setActive(l *Logger) {
	active.Store(l)
}
