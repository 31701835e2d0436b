// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

/*
Package secmem provides an allocator for buffers that hold sensitive
parameter values, such as key material.

On Linux, buffers are allocated outside of the Go heap with mmap, locked in
to physical memory with mlock so that they are never written to swap, and
excluded from core dumps. The garbage collector never sees these buffers, so
it cannot leave copies of their contents behind. Every buffer is zeroed
before it is released.

On other platforms, buffers are allocated from the Go heap and are only
zeroed before they are released.

An Allocator can be installed for use by the aggregate helpers in the params
package:

	params.SetAllocator(secmem.New())
*/
package secmem

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/canonical/go-params"
)

// Allocator supplies protected buffers. It implements params.Allocator and
// is safe to use from multiple goroutines.
type Allocator struct {
	mu      sync.Mutex
	regions map[*byte][]byte
}

var _ params.Allocator = (*Allocator)(nil)

// New returns a new allocator.
func New() *Allocator {
	return &Allocator{regions: make(map[*byte][]byte)}
}

// Alloc returns a protected buffer of n bytes. Memory returned by mmap is
// already zeroed.
func (a *Allocator) Alloc(n int) ([]byte, error) {
	if n < 0 {
		return nil, xerrors.Errorf("invalid size %d", n)
	}
	if n == 0 {
		return []byte{}, nil
	}

	b, err := mapRegion(n)
	if err != nil {
		return nil, xerrors.Errorf("cannot allocate protected buffer: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.regions[&b[0]] = b
	return b[:n:n], nil
}

// Zalloc returns a protected buffer of n zero bytes.
func (a *Allocator) Zalloc(n int) ([]byte, error) {
	b, err := a.Alloc(n)
	if err != nil {
		return nil, err
	}
	clear(b)
	return b, nil
}

// ClearFree zeroes b up to its capacity. If b was returned from Alloc or
// Zalloc, its memory is then released and b must not be used again.
func (a *Allocator) ClearFree(b []byte) {
	if cap(b) == 0 {
		return
	}
	b = b[:cap(b)]
	clear(b)

	a.mu.Lock()
	region, ok := a.regions[&b[0]]
	if ok {
		delete(a.regions, &b[0])
	}
	a.mu.Unlock()

	if !ok {
		return
	}
	if err := unmapRegion(region); err != nil {
		params.Logger().Warn("cannot release protected buffer", zap.Int("size", len(region)), zap.Error(err))
	}
}

// Outstanding returns the number of buffers that have been allocated and
// not yet released.
func (a *Allocator) Outstanding() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.regions)
}

// Close zeroes and releases every outstanding buffer.
func (a *Allocator) Close() error {
	a.mu.Lock()
	regions := a.regions
	a.regions = make(map[*byte][]byte)
	a.mu.Unlock()

	var firstErr error
	for _, region := range regions {
		clear(region)
		if err := unmapRegion(region); err != nil && firstErr == nil {
			firstErr = xerrors.Errorf("cannot release protected buffer: %w", err)
		}
	}
	return firstErr
}
