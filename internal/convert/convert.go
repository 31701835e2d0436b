// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

/*
Package convert copies integers between buffers of different widths and
signedness whilst preserving their numeric value.

Integers are held in byte slices in a specified byte order, which is normally
the native byte order of the host (see Native). The conversion algorithm is
expressed once in terms of byte significance, and the byte order only decides
where the byte of a given significance lives in a buffer.
*/
package convert

import (
	"encoding/binary"
	"errors"
)

var (
	// ErrOutOfRange is returned when the destination is too narrow to hold
	// the source value without losing magnitude or sign.
	ErrOutOfRange = errors.New("value too large for destination")

	// ErrNegative is returned when a negative signed value is copied to an
	// unsigned destination.
	ErrNegative = errors.New("negative value cannot be stored as unsigned")
)

// Order describes where the byte of a given significance is stored in an
// integer buffer.
type Order struct {
	bigEndian bool
}

var (
	LittleEndian = Order{bigEndian: false}
	BigEndian    = Order{bigEndian: true}

	// Native is the byte order of the host.
	Native = nativeOrder()
)

func nativeOrder() Order {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 0x0102)
	return Order{bigEndian: b[0] == 0x01}
}

// IsBigEndian indicates whether this is big-endian order.
func (o Order) IsBigEndian() bool {
	return o.bigEndian
}

func (o Order) String() string {
	if o.bigEndian {
		return "big-endian"
	}
	return "little-endian"
}

// pos returns the offset of the byte with significance i (0 being the least
// significant byte) in a buffer of n bytes.
func (o Order) pos(n, i int) int {
	if o.bigEndian {
		return n - 1 - i
	}
	return i
}

// IsNegative indicates whether the signed integer in b is negative. A zero
// length integer is zero.
func (o Order) IsNegative(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	return b[o.pos(len(b), len(b)-1)]&0x80 != 0
}

// CopyInteger copies the integer in src to dst. If dst is wider than src,
// the source is extended in to the high order bytes of dst with pad.
// Otherwise, the dropped high order bytes of src must all equal pad and, if
// signed is true, the sign bit of the most significant byte that is kept
// must match the sign bit of pad. If not, ErrOutOfRange is returned and dst
// is not modified.
//
// The pad byte is 0x00 for unsigned and non-negative values and 0xff for
// negative values.
func (o Order) CopyInteger(dst, src []byte, pad byte, signed bool) error {
	ld, ls := len(dst), len(src)

	if ld > ls {
		for i := 0; i < ls; i++ {
			dst[o.pos(ld, i)] = src[o.pos(ls, i)]
		}
		for i := ls; i < ld; i++ {
			dst[o.pos(ld, i)] = pad
		}
		return nil
	}

	for i := ld; i < ls; i++ {
		if src[o.pos(ls, i)] != pad {
			return ErrOutOfRange
		}
	}
	switch {
	case ld == 0:
		// Only zero fits in to no bytes.
		if pad != 0 {
			return ErrOutOfRange
		}
		return nil
	case signed && (pad^src[o.pos(ls, ld-1)])&0x80 != 0:
		// Shortening a signed value must retain its sign, eg. 130 is
		// 0x0082, which would become 0x82 (-126) in a single byte.
		return ErrOutOfRange
	}

	for i := 0; i < ld; i++ {
		dst[o.pos(ld, i)] = src[o.pos(ls, i)]
	}
	return nil
}

// SignedFromSigned copies a signed integer to a signed integer of possibly
// different width.
func (o Order) SignedFromSigned(dst, src []byte) error {
	var pad byte
	if o.IsNegative(src) {
		pad = 0xff
	}
	return o.CopyInteger(dst, src, pad, true)
}

// SignedFromUnsigned copies an unsigned integer to a signed integer of
// possibly different width.
func (o Order) SignedFromUnsigned(dst, src []byte) error {
	return o.CopyInteger(dst, src, 0, true)
}

// UnsignedFromSigned copies a signed integer to an unsigned integer of
// possibly different width. It returns ErrNegative if the source is negative.
func (o Order) UnsignedFromSigned(dst, src []byte) error {
	if o.IsNegative(src) {
		return ErrNegative
	}
	return o.CopyInteger(dst, src, 0, false)
}

// UnsignedFromUnsigned copies an unsigned integer to an unsigned integer of
// possibly different width.
func (o Order) UnsignedFromUnsigned(dst, src []byte) error {
	return o.CopyInteger(dst, src, 0, false)
}

// ToBigEndian copies the integer in src, which is in this byte order, to dst
// in big-endian order. The two slices must be the same length.
func (o Order) ToBigEndian(dst, src []byte) {
	if len(dst) != len(src) {
		panic("convert: mismatched buffer lengths")
	}
	for i := range src {
		dst[len(dst)-1-i] = src[o.pos(len(src), i)]
	}
}

// FromBigEndian copies the big-endian integer in src to dst in this byte
// order. The two slices must be the same length.
func (o Order) FromBigEndian(dst, src []byte) {
	if len(dst) != len(src) {
		panic("convert: mismatched buffer lengths")
	}
	for i := range src {
		dst[o.pos(len(dst), i)] = src[len(src)-1-i]
	}
}

// SignedFromSigned copies a signed integer in native byte order.
func SignedFromSigned(dst, src []byte) error {
	return Native.SignedFromSigned(dst, src)
}

// SignedFromUnsigned copies an unsigned integer to a signed integer in
// native byte order.
func SignedFromUnsigned(dst, src []byte) error {
	return Native.SignedFromUnsigned(dst, src)
}

// UnsignedFromSigned copies a signed integer to an unsigned integer in
// native byte order.
func UnsignedFromSigned(dst, src []byte) error {
	return Native.UnsignedFromSigned(dst, src)
}

// UnsignedFromUnsigned copies an unsigned integer in native byte order.
func UnsignedFromUnsigned(dst, src []byte) error {
	return Native.UnsignedFromUnsigned(dst, src)
}
