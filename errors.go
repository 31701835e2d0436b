// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package params

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Library identifies the library that raised an error.
type Library int

const (
	// LibCrypto is the core crypto library, which owns parameter handling.
	LibCrypto Library = 15
)

func (l Library) String() string {
	switch l {
	case LibCrypto:
		return "crypto"
	default:
		return fmt.Sprintf("Library(%d)", int(l))
	}
}

// Reason describes why an operation on a parameter failed. Reason values
// are themselves errors, so that they can be tested for with errors.Is.
type Reason int

const (
	// ErrNullArgument indicates that a required parameter, key, buffer or
	// output reference was absent.
	ErrNullArgument Reason = iota + 1

	// ErrIncompatibleType indicates that the parameter's type is not one
	// that the accessor accepts and no implicit conversion exists.
	ErrIncompatibleType

	// ErrNotIntegerType indicates that a general purpose integer accessor
	// was used with a parameter that isn't an integer.
	ErrNotIntegerType

	// ErrNegativeUnsignedValue indicates an attempt to store a negative
	// value in, or read a negative value as, an unsigned integer.
	ErrNegativeUnsignedValue

	// ErrValueTooLarge indicates that the destination is too narrow to
	// hold the value without truncation.
	ErrValueTooLarge

	// ErrInexactValue indicates that a conversion between an integer and
	// a real would lose a fractional part or precision.
	ErrInexactValue

	// ErrBufferTooSmall indicates that the supplied buffer is too small.
	// The number of bytes required is reported alongside.
	ErrBufferTooSmall

	// ErrUnsupportedRealFormat indicates that the parameter holds a real
	// of a width this package can't interpret.
	ErrUnsupportedRealFormat

	// ErrNoSpaceForTerminator indicates that a UTF-8 string fits in to
	// the supplied buffer but its NUL terminator doesn't. It matches
	// ErrBufferTooSmall with errors.Is.
	ErrNoSpaceForTerminator

	// ErrBadDataSize indicates a malformed parameter, where the declared
	// data size is negative or larger than its buffer.
	ErrBadDataSize

	// ErrAllocationFailed indicates that the configured allocator could not
	// supply a buffer.
	ErrAllocationFailed
)

var reasonStrings = map[Reason]string{
	ErrNullArgument:          "passed a null parameter",
	ErrIncompatibleType:      "param of incompatible type",
	ErrNotIntegerType:        "param not integer type",
	ErrNegativeUnsignedValue: "param unsigned integer negative value unsupported",
	ErrValueTooLarge:         "param value too large for destination",
	ErrInexactValue:          "param cannot be represented exactly",
	ErrBufferTooSmall:        "too small buffer",
	ErrUnsupportedRealFormat: "param unsupported floating point format",
	ErrNoSpaceForTerminator:  "no space for terminating null",
	ErrBadDataSize:           "param data size larger than its buffer",
	ErrAllocationFailed:      "malloc failure",
}

func (r Reason) Error() string {
	if s, ok := reasonStrings[r]; ok {
		return s
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// Is allows ErrNoSpaceForTerminator to match ErrBufferTooSmall.
func (r Reason) Is(target error) bool {
	return r == ErrNoSpaceForTerminator && target == ErrBufferTooSmall
}

// Error is returned from every function in this package that fails. It
// records the library and reason, as well as the operation and the key of
// the parameter on which it occurred.
type Error struct {
	Lib    Library
	Reason Reason
	Op     string
	Key    string
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("cannot %s: %v", e.Op, e.Reason)
	}
	return fmt.Sprintf("cannot %s for parameter %q: %v", e.Op, e.Key, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Reason
}

// ErrorSink receives a report of every error raised by this package.
type ErrorSink interface {
	Report(err *Error)
}

type logSink struct{}

func (logSink) Report(err *Error) {
	Logger().Debug("parameter operation failed",
		zap.Stringer("lib", err.Lib),
		zap.String("reason", err.Reason.Error()),
		zap.String("op", err.Op),
		zap.String("key", err.Key))
}

var (
	sinkMu sync.RWMutex
	sink   ErrorSink = logSink{}
)

// SetErrorSink configures the sink that receives reports of errors raised by
// this package. Passing nil restores the default sink, which writes every
// report to the package logger at debug level.
func SetErrorSink(s ErrorSink) {
	if s == nil {
		s = logSink{}
	}
	sinkMu.Lock()
	defer sinkMu.Unlock()
	sink = s
}

func raise(op, key string, reason Reason) error {
	err := &Error{Lib: LibCrypto, Reason: reason, Op: op, Key: key}

	sinkMu.RLock()
	s := sink
	sinkMu.RUnlock()
	s.Report(err)

	return err
}

// ErrorQueue is an ErrorSink that records reports so they can be inspected
// later. It is safe to use from multiple goroutines.
type ErrorQueue struct {
	mu   sync.Mutex
	errs []*Error
}

// Report implements ErrorSink.
func (q *ErrorQueue) Report(err *Error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.errs = append(q.errs, err)
}

// Len returns the number of recorded reports.
func (q *ErrorQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.errs)
}

// Peek returns the oldest recorded report without removing it, or nil if
// there are none.
func (q *ErrorQueue) Peek() *Error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.errs) == 0 {
		return nil
	}
	return q.errs[0]
}

// Pop removes and returns the oldest recorded report, or nil if there are
// none.
func (q *ErrorQueue) Pop() *Error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.errs) == 0 {
		return nil
	}
	err := q.errs[0]
	q.errs = q.errs[1:]
	return err
}

// Errors returns a copy of all recorded reports, oldest first.
func (q *ErrorQueue) Errors() []*Error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]*Error(nil), q.errs...)
}

// Clear discards all recorded reports.
func (q *ErrorQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.errs = nil
}
