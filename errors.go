package tildelog

import (
	"github.com/hyp3rd/ewrap"
)

// Common errors for the tildelog package.
var (
	// ErrNoDestination is returned when an append or flush is attempted on a
	// logger that has been closed or never configured.
	ErrNoDestination = ewrap.New("logger has no destination")
)
