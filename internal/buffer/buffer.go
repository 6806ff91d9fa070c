// Package buffer implements the ordered message buffer owned by a Logger.
//
// The buffer is an append-only sequence of fully formatted log lines. It only
// shrinks by draining: Drain removes every entry present at the moment of the
// call in one step, so entries appended while the drained batch is being
// written are held for the next flush. Growth is unbounded between flushes.
package buffer

import "strings"

// Buffer holds formatted log lines in append order.
type Buffer struct {
	entries []string
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// Append adds a formatted line to the end of the buffer.
func (b *Buffer) Append(line string) {
	b.entries = append(b.entries, line)
}

// Len returns the number of buffered lines.
func (b *Buffer) Len() int {
	return len(b.entries)
}

// Drain removes and returns all currently buffered lines as one snapshot.
// The buffer is empty afterwards.
func (b *Buffer) Drain() []string {
	if len(b.entries) == 0 {
		return nil
	}

	snapshot := b.entries
	b.entries = nil

	return snapshot
}

// Requeue puts a line back at the head of the buffer, ahead of anything
// appended since the snapshot it came from was taken. Used when a
// non-blocking write leaves part of a drained batch unwritten.
func (b *Buffer) Requeue(line string) {
	if line == "" {
		return
	}

	b.entries = append([]string{line}, b.entries...)
}

// Reset discards all buffered lines.
func (b *Buffer) Reset() {
	b.entries = nil
}

// Join concatenates lines into the single payload handed to a write call.
func Join(lines []string) string {
	switch len(lines) {
	case 0:
		return ""
	case 1:
		return lines[0]
	default:
		return strings.Join(lines, "")
	}
}
