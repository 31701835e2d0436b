// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package wire

import (
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/xerrors"

	"github.com/canonical/go-params"
)

const (
	binaryMagic   = "OPRM"
	binaryVersion = 1
)

// readUint32LengthPrefixed is the reading counterpart of
// cryptobyte.Builder.AddUint32LengthPrefixed, which cryptobyte.String lacks.
func readUint32LengthPrefixed(s *cryptobyte.String, out *cryptobyte.String) bool {
	var n uint32
	var b []byte
	if !s.ReadUint32(&n) || uint64(n) > uint64(len(*s)) || !s.ReadBytes(&b, int(n)) {
		return false
	}
	*out = b
	return true
}

// Marshal encodes the parameters in ps that precede the end marker using the
// binary encoding:
//
//	magic      "OPRM"
//	version    uint8 (1)
//	count      uint32
//	entries    [count]{
//	             key         uint16 length prefixed
//	             type        uint8
//	             flags       uint8
//	             data size   uint64
//	             return size uint64 (all ones for Unmodified)
//	             contents    uint32 length prefixed
//	           }
//
// All integers are big-endian.
func Marshal(ps params.Sequence) ([]byte, error) {
	entries, err := entriesOf(ps)
	if err != nil {
		return nil, err
	}

	b := cryptobyte.NewBuilder(nil)
	b.AddBytes([]byte(binaryMagic))
	b.AddUint8(binaryVersion)
	b.AddUint32(uint32(len(entries)))
	for _, e := range entries {
		b.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
			b.AddBytes([]byte(e.key))
		})
		b.AddUint8(uint8(e.typ))
		b.AddUint8(e.flags)
		b.AddUint64(e.dataSize)
		b.AddUint64(uint64(e.returnSize))
		b.AddUint32LengthPrefixed(func(b *cryptobyte.Builder) {
			b.AddBytes(e.content)
		})
	}

	data, err := b.Bytes()
	if err != nil {
		return nil, xerrors.Errorf("cannot encode parameters: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a sequence from the binary encoding. The returned
// sequence is terminated with an end marker.
func Unmarshal(data []byte) (params.Sequence, error) {
	s := cryptobyte.String(data)

	var magic []byte
	if !s.ReadBytes(&magic, len(binaryMagic)) || string(magic) != binaryMagic {
		return nil, formatError(-1, "invalid magic")
	}
	var version uint8
	if !s.ReadUint8(&version) {
		return nil, formatError(-1, "truncated header")
	}
	if version != binaryVersion {
		return nil, formatError(-1, "unsupported version %d", version)
	}
	var count uint32
	if !s.ReadUint32(&count) {
		return nil, formatError(-1, "truncated header")
	}

	var entries []*entry
	for i := 0; i < int(count); i++ {
		var (
			key        cryptobyte.String
			typ        uint8
			e          entry
			returnSize uint64
			content    cryptobyte.String
		)
		if !s.ReadUint16LengthPrefixed(&key) ||
			!s.ReadUint8(&typ) ||
			!s.ReadUint8(&e.flags) ||
			!s.ReadUint64(&e.dataSize) ||
			!s.ReadUint64(&returnSize) ||
			!readUint32LengthPrefixed(&s, &content) {
			return nil, formatError(i, "truncated entry")
		}
		e.key = string(key)
		e.typ = params.DataType(typ)
		e.returnSize = int64(returnSize)
		e.content = content
		entries = append(entries, &e)
	}
	if !s.Empty() {
		return nil, formatError(-1, "%d trailing bytes", len(s))
	}

	return sequenceOf(entries)
}
