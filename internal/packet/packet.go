// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

// Package packet provides a writer that either accumulates bytes in to a
// fixed size buffer, or counts them without storing anything. The latter is
// used to compute the size of the buffer that a subsequent pass needs.
package packet

import (
	"errors"

	"golang.org/x/crypto/cryptobyte"
)

var (
	// ErrFinished is returned when a writer is used after Finish or Cleanup.
	ErrFinished = errors.New("packet writer is finished")

	// ErrTooLarge is returned when a write would exceed the writer's limit.
	ErrTooLarge = errors.New("packet exceeds its maximum size")
)

// Writer accumulates a packet.
type Writer struct {
	b       *cryptobyte.Builder // nil for a null writer
	limited bool
	max     int
	written int
	done    bool
}

// NewNull returns a writer that counts the bytes written to it without
// storing them. If max is not zero, writes that take the total beyond max
// fail.
func NewNull(max int) *Writer {
	return &Writer{limited: max > 0, max: max}
}

// NewFixed returns a writer that stores the bytes written to it in buf, which
// is never resized. Writes that don't fit in to buf fail.
func NewFixed(buf []byte) *Writer {
	return &Writer{
		b:       cryptobyte.NewFixedBuilder(buf[:0:len(buf)]),
		limited: true,
		max:     len(buf)}
}

// Write appends data to the packet.
func (w *Writer) Write(data []byte) error {
	if w.done {
		return ErrFinished
	}
	if w.limited && len(data) > w.max-w.written {
		return ErrTooLarge
	}
	if w.b != nil {
		w.b.AddBytes(data)
		if _, err := w.b.Bytes(); err != nil {
			return err
		}
	}
	w.written += len(data)
	return nil
}

// Written returns the number of bytes written so far.
func (w *Writer) Written() int {
	return w.written
}

// Finish completes the packet and returns its contents. For a null writer,
// the returned slice is nil.
func (w *Writer) Finish() ([]byte, error) {
	if w.done {
		return nil, ErrFinished
	}
	w.done = true
	if w.b == nil {
		return nil, nil
	}
	return w.b.Bytes()
}

// Cleanup releases the writer without completing the packet.
func (w *Writer) Cleanup() {
	w.done = true
	w.b = nil
}
