// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package params

import "sync"

// Allocator supplies the buffers returned from the aggregate helpers, which
// may hold sensitive data such as key material.
type Allocator interface {
	// Alloc returns a buffer of n bytes.
	Alloc(n int) ([]byte, error)

	// Zalloc returns a zeroed buffer of n bytes.
	Zalloc(n int) ([]byte, error)

	// ClearFree zeroes the whole of the buffer previously returned from
	// Alloc or Zalloc, up to its capacity, and releases it.
	ClearFree(b []byte)
}

type heapAllocator struct{}

func (heapAllocator) Alloc(n int) ([]byte, error) {
	return make([]byte, n), nil
}

func (heapAllocator) Zalloc(n int) ([]byte, error) {
	return make([]byte, n), nil
}

func (heapAllocator) ClearFree(b []byte) {
	clear(b[:cap(b)])
}

var (
	allocatorMu sync.RWMutex
	allocator   Allocator = heapAllocator{}
)

// SetAllocator configures the allocator used by the aggregate helpers.
// Passing nil restores the default, which allocates from the Go heap and
// zeroes buffers when they are released.
func SetAllocator(a Allocator) {
	if a == nil {
		a = heapAllocator{}
	}
	allocatorMu.Lock()
	defer allocatorMu.Unlock()
	allocator = a
}

func currentAllocator() Allocator {
	allocatorMu.RLock()
	defer allocatorMu.RUnlock()
	return allocator
}
