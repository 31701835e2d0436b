// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

/*
Package wire serializes parameter sequences so that they can cross a process
boundary.

Two encodings are provided. The binary encoding (Marshal and Unmarshal) is a
compact length-prefixed big-endian format. The CBOR encoding (MarshalCBOR and
UnmarshalCBOR) carries the same entries using Core Deterministic Encoding, so
the same sequence always produces the same bytes.

Only the parameters up to the first end marker are encoded. For each one, the
key, the type, the data size, the return size and the contents are recorded,
along with whether the parameter had storage at all. An UTF8Ptr or OctetPtr
parameter is encoded with the contents of its referent.

The contents of Integer, UnsignedInteger and Real parameters are held in the
native byte order of the host. They are converted to big-endian when encoded
and back to the native byte order when decoded, so encodings can be exchanged
between hosts of different byte order.

Decoding always copies contents in to fresh storage. Pointer parameters
decode in to views of that storage.
*/
package wire

import (
	"fmt"
	"math"

	"github.com/canonical/go-params"
	"github.com/canonical/go-params/internal/convert"
)

const (
	flagStorage  uint8 = 1 << 0 // the parameter has storage
	flagReferent uint8 = 1 << 1 // the pointer parameter references something

	knownFlags = flagStorage | flagReferent
)

// FormatError is returned when an encoding is malformed.
type FormatError struct {
	Index int // the index of the affected entry, or -1 for the header
	msg   string
}

func (e *FormatError) Error() string {
	if e.Index < 0 {
		return "invalid parameter encoding: " + e.msg
	}
	return fmt.Sprintf("invalid parameter encoding for entry %d: %s", e.Index, e.msg)
}

func formatError(index int, format string, args ...any) *FormatError {
	return &FormatError{Index: index, msg: fmt.Sprintf(format, args...)}
}

// entry is the encoding independent form of a parameter.
type entry struct {
	key        string
	typ        params.DataType
	flags      uint8
	dataSize   uint64
	returnSize int64
	content    []byte // numeric contents are big-endian
}

func isNumeric(t params.DataType) bool {
	switch t {
	case params.Integer, params.UnsignedInteger, params.Real:
		return true
	default:
		return false
	}
}

func entryOf(index int, p *params.Param) (*entry, error) {
	if !p.Type.IsValid() {
		return nil, formatError(index, "invalid type %d", uint8(p.Type))
	}
	if p.DataSize < 0 {
		return nil, formatError(index, "invalid data size %d", p.DataSize)
	}
	if p.ReturnSize < params.Unmodified {
		return nil, formatError(index, "invalid return size %d", p.ReturnSize)
	}

	e := &entry{
		key:        p.Key,
		typ:        p.Type,
		dataSize:   uint64(p.DataSize),
		returnSize: int64(p.ReturnSize)}

	switch {
	case p.Type.IsPtr():
		if p.Ref == nil {
			break
		}
		e.flags |= flagStorage
		if !p.Ref.IsNil() {
			e.flags |= flagReferent
			e.content = p.Ref.Bytes()
		}
	case p.Data != nil:
		if p.DataSize > len(p.Data) {
			return nil, formatError(index, "data size %d exceeds storage of %d bytes", p.DataSize, len(p.Data))
		}
		e.flags |= flagStorage
		e.content = p.Data[:p.DataSize]
		if isNumeric(p.Type) {
			be := make([]byte, len(e.content))
			convert.Native.ToBigEndian(be, e.content)
			e.content = be
		}
	}

	return e, nil
}

func entriesOf(ps params.Sequence) ([]*entry, error) {
	var entries []*entry
	for i := range ps {
		p := &ps[i]
		if p.IsEnd() {
			break
		}
		e, err := entryOf(i, p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (e *entry) param(index int) (params.Param, error) {
	if e.key == "" {
		return params.Param{}, formatError(index, "empty key")
	}
	if !e.typ.IsValid() {
		return params.Param{}, formatError(index, "invalid type %d", uint8(e.typ))
	}
	if e.flags&^knownFlags != 0 {
		return params.Param{}, formatError(index, "unrecognized flags 0x%02x", e.flags)
	}
	if e.dataSize > math.MaxInt {
		return params.Param{}, formatError(index, "data size %d too large", e.dataSize)
	}
	if e.returnSize < int64(params.Unmodified) || e.returnSize > math.MaxInt {
		return params.Param{}, formatError(index, "invalid return size %d", e.returnSize)
	}

	p := params.Param{
		Key:        e.key,
		Type:       e.typ,
		DataSize:   int(e.dataSize),
		ReturnSize: int(e.returnSize)}

	hasStorage := e.flags&flagStorage != 0
	hasReferent := e.flags&flagReferent != 0

	if !hasStorage && (hasReferent || len(e.content) > 0) {
		return params.Param{}, formatError(index, "contents without storage")
	}

	switch {
	case e.typ.IsPtr():
		if !hasStorage {
			break
		}
		p.Ref = new(params.View)
		if hasReferent {
			*p.Ref = params.BorrowBytes(append(make([]byte, 0, len(e.content)), e.content...))
		} else if len(e.content) > 0 {
			return params.Param{}, formatError(index, "contents without referent")
		}
	case hasReferent:
		return params.Param{}, formatError(index, "referent flag on %s parameter", e.typ)
	case hasStorage:
		if uint64(len(e.content)) != e.dataSize {
			return params.Param{}, formatError(index, "contents length %d doesn't match data size %d", len(e.content), e.dataSize)
		}
		p.Data = make([]byte, len(e.content))
		if isNumeric(e.typ) {
			convert.Native.FromBigEndian(p.Data, e.content)
		} else {
			copy(p.Data, e.content)
		}
	}

	return p, nil
}

func sequenceOf(entries []*entry) (params.Sequence, error) {
	ps := make(params.Sequence, 0, len(entries)+1)
	for i, e := range entries {
		p, err := e.param(i)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return append(ps, params.End()), nil
}

// Format identifies one of the encodings supported by this package.
type Format int

const (
	Binary Format = iota
	CBOR
)

func (f Format) String() string {
	switch f {
	case Binary:
		return "binary"
	case CBOR:
		return "cbor"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat returns the format with the specified name.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "binary":
		return Binary, nil
	case "cbor":
		return CBOR, nil
	default:
		return 0, fmt.Errorf("unrecognized format %q", s)
	}
}

// Marshal encodes ps using this format.
func (f Format) Marshal(ps params.Sequence) ([]byte, error) {
	switch f {
	case Binary:
		return Marshal(ps)
	case CBOR:
		return MarshalCBOR(ps)
	default:
		return nil, fmt.Errorf("invalid format %v", f)
	}
}

// Unmarshal decodes data using this format.
func (f Format) Unmarshal(data []byte) (params.Sequence, error) {
	switch f {
	case Binary:
		return Unmarshal(data)
	case CBOR:
		return UnmarshalCBOR(data)
	default:
		return nil, fmt.Errorf("invalid format %v", f)
	}
}
