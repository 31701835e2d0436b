// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package params

import (
	"github.com/canonical/go-params/internal/packet"
)

func releaseInto(alloc Allocator, out *[]byte, b []byte) {
	if *out != nil {
		alloc.ClearFree(*out)
	}
	*out = b
}

// Get1OctetStringFromParam stores a copy of the contents of the
// OctetString parameter p in *out, using a buffer from the configured
// allocator. Any previous buffer in *out is cleared and released. A
// parameter without storage or with no contents results in a nil buffer.
//
// If p is nil, this returns false and no error, so that a missing parameter
// can be distinguished from a malformed one. *out is only modified if this
// returns true.
func Get1OctetStringFromParam(p *Param, out *[]byte) (found bool, err error) {
	const op = "Get1OctetStringFromParam"

	if out == nil {
		return false, raise(op, keyOf(p), ErrNullArgument)
	}
	if p == nil {
		return false, nil
	}

	alloc := currentAllocator()

	var b []byte
	if p.Data != nil && p.DataSize > 0 {
		data, err := p.stringContents(op, OctetString)
		if err != nil {
			return false, err
		}
		b, err = alloc.Alloc(len(data))
		if err != nil {
			return false, p.fail(op, ErrAllocationFailed)
		}
		copy(b, data)
	}

	releaseInto(alloc, out, b)
	return true, nil
}

// Get1OctetString locates the parameter with the specified key and stores a
// copy of its contents in *out, as Get1OctetStringFromParam does.
func (s Sequence) Get1OctetString(key string, out *[]byte) (found bool, err error) {
	return Get1OctetStringFromParam(s.Locate(key), out)
}

// writeOctetStrings writes the contents of every parameter in ps to w.
func writeOctetStrings(op string, w *packet.Writer, ps []*Param) error {
	for _, p := range ps {
		if p == nil {
			return raise(op, "", ErrNullArgument)
		}
		if p.Type != OctetString {
			return p.fail(op, ErrIncompatibleType)
		}
		data, err := p.buffer(op)
		if err != nil {
			return err
		}
		if len(data) == 0 {
			continue
		}
		if err := w.Write(data); err != nil {
			return p.fail(op, ErrBufferTooSmall)
		}
	}
	return nil
}

// ConcatOctetStrings concatenates the contents of the OctetString
// parameters in ps in to a single buffer from the configured allocator, and
// stores it in *out after clearing and releasing any previous buffer.
//
// If ps is empty, this succeeds and *out is not modified. If the parameters
// have no contents, *out is set to an empty buffer which is
// not nil. On failure, *out is not modified.
func ConcatOctetStrings(ps []*Param, out *[]byte) error {
	const op = "ConcatOctetStrings"

	if out == nil {
		return raise(op, "", ErrNullArgument)
	}

	alloc := currentAllocator()

	if len(ps) == 0 {
		return nil
	}

	// Compute the size without copying anything.
	counter := packet.NewNull(0)
	if err := writeOctetStrings(op, counter, ps); err != nil {
		counter.Cleanup()
		return err
	}
	sz := counter.Written()
	counter.Finish()

	if sz == 0 {
		b, err := alloc.Zalloc(1)
		if err != nil {
			return raise(op, "", ErrAllocationFailed)
		}
		releaseInto(alloc, out, b[:0])
		return nil
	}

	b, err := alloc.Alloc(sz)
	if err != nil {
		return raise(op, "", ErrAllocationFailed)
	}
	w := packet.NewFixed(b)
	if err := writeOctetStrings(op, w, ps); err != nil {
		w.Cleanup()
		alloc.ClearFree(b)
		return err
	}
	if _, err := w.Finish(); err != nil {
		alloc.ClearFree(b)
		return raise(op, "", ErrBufferTooSmall)
	}

	releaseInto(alloc, out, b[:sz])
	return nil
}
