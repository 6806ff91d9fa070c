// Package tildelog implements a level-filtered, buffered logger that writes to
// a replaceable destination.
//
// The package provides:
// - Five severity levels (Debug, Info, Warn, Error, Fatal) with gapped integer ranks
// - A cheap rank comparison that discards below-threshold messages before any formatting
// - An append-only buffer drained to the destination in a single write per flush
// - A destination lifecycle that flushes and closes the previous sink before a swap
// - One-time write-mode selection (blocking or non-blocking) performed at open
// - Lazily evaluated message suffixes that only run when a message is actually logged
//
// A Logger owns exactly one destination and one buffer at a time. The
// destination is either an already-open writable handle adopted as-is, or a
// filesystem path that is opened for append, created on demand together with
// its parent directories, and stamped with a creation header line.
//
// Basic usage:
//
//	log, err := tildelog.New(tildelog.Config{Destination: "app.log"})
//	if err != nil {
//		panic(err)
//	}
//	defer log.Close()
//
//	log.Info("service started")
//	log.Debug("cache warmed", func() string { return expensiveSummary() })
//
// Messages accumulate in the buffer until Flush, Close, or a reconfigure;
// enable Config.AutoFlush to write every message as it is logged.
package tildelog

import (
	"strings"

	"github.com/hyp3rd/ewrap"
)

// Level represents the severity rank of a log message. Ranks are
// deliberately non-contiguous so that levels can be inserted later without
// renumbering: higher means more severe, and a message is logged only when
// its rank is at or above the configured threshold.
type Level int

const (
	// DebugLevel represents debugging information.
	DebugLevel Level = 0
	// InfoLevel represents general operational information.
	InfoLevel Level = 3
	// WarnLevel represents warning messages.
	WarnLevel Level = 4
	// ErrorLevel represents error messages.
	ErrorLevel Level = 6
	// FatalLevel represents fatal error messages.
	FatalLevel Level = 7

	// levelUnset is the rank returned alongside a ParseLevel error.
	levelUnset Level = -1
)

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	case FatalLevel:
		return "fatal"
	default:
		return "unknown"
	}
}

// IsValid reports whether the level is one of the five defined ranks.
func (l Level) IsValid() bool {
	switch l {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel:
		return true
	default:
		return false
	}
}

// ParseLevel resolves a level name to its rank. Matching is
// case-insensitive and accepts "warning" as an alias for "warn".
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	default:
		return levelUnset, ewrap.New("invalid log level: " + name)
	}
}
