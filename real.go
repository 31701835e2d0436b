// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package params

import (
	"encoding/binary"
	"math"
)

const (
	// doubleMantissaBits is the number of bits of an integer that an 8 byte
	// real can represent exactly.
	doubleMantissaBits = 53

	// floatMantissaBits is the number of bits of an integer that a 4 byte
	// real can represent exactly.
	floatMantissaBits = 24

	realWidth = 8
)

// Range bounds for conversions from reals. The 64-bit bounds aren't exactly
// representable, so they are computed with the low order bits cancelled.
const (
	d2pow31 = float64(1 << 31)
	d2pow32 = float64(1 << 32)
	d2pow63 = float64(math.MaxInt64-65535) + 65536.0
	d2pow64 = float64(math.MaxUint64-65535) + 65536.0
)

func mantissaBits(width int) uint {
	if width == 4 {
		return floatMantissaBits
	}
	return doubleMantissaBits
}

// loadReal reads the value of a Real parameter.
func (p *Param) loadReal(op string, data []byte) (float64, error) {
	switch len(data) {
	case 8:
		return math.Float64frombits(binary.NativeEndian.Uint64(data)), nil
	case 4:
		return float64(math.Float32frombits(binary.NativeEndian.Uint32(data))), nil
	default:
		return 0, p.fail(op, ErrUnsupportedRealFormat)
	}
}

func isIntegral(d float64) bool {
	return !math.IsNaN(d) && !math.IsInf(d, 0) && d == math.Trunc(d)
}

func realToSigned(d float64, width int) (int64, Reason) {
	if math.IsNaN(d) || (!math.IsInf(d, 0) && d != math.Trunc(d)) {
		return 0, ErrInexactValue
	}
	switch width {
	case 4:
		if d < -d2pow31 || d >= d2pow31 {
			return 0, ErrValueTooLarge
		}
	default:
		if d < -d2pow63 || d >= d2pow63 {
			return 0, ErrValueTooLarge
		}
	}
	return int64(d), 0
}

func realToUnsigned(d float64, width int) (uint64, Reason) {
	if math.IsNaN(d) || (!math.IsInf(d, 0) && d != math.Trunc(d)) {
		return 0, ErrInexactValue
	}
	if d < 0 {
		return 0, ErrNegativeUnsignedValue
	}
	switch width {
	case 4:
		if d >= d2pow32 {
			return 0, ErrValueTooLarge
		}
	default:
		if d >= d2pow64 {
			return 0, ErrValueTooLarge
		}
	}
	return uint64(d), 0
}

// storeIntAsReal stores an integer with the magnitude mag, the value of
// which is d, in a Real parameter. The magnitude must fit in to the
// mantissa of the real.
func (p *Param) storeIntAsReal(op string, mag uint64, d float64) (Outcome, error) {
	buf, err := p.buffer(op)
	if err != nil {
		return Outcome{}, err
	}
	if buf == nil {
		return p.queried(realWidth), nil
	}

	p.ReturnSize = realWidth
	switch len(buf) {
	case 8, 4:
		if mag > uint64(1)<<mantissaBits(len(buf)) {
			return Outcome{}, p.fail(op, ErrInexactValue)
		}
	default:
		return Outcome{}, p.fail(op, ErrUnsupportedRealFormat)
	}
	putReal(buf, d)
	return p.written(len(buf)), nil
}

func putReal(buf []byte, d float64) {
	if len(buf) == 4 {
		binary.NativeEndian.PutUint32(buf, math.Float32bits(float32(d)))
		return
	}
	binary.NativeEndian.PutUint64(buf, math.Float64bits(d))
}

// GetDouble returns the value of p as a float64. Integer and
// UnsignedInteger parameters are converted if their magnitude fits in to
// the mantissa of a float64.
func (p *Param) GetDouble() (float64, error) {
	const op = "GetDouble"

	if p == nil {
		return 0, raise(op, "", ErrNullArgument)
	}
	data, err := p.contents(op)
	if err != nil {
		return 0, err
	}

	var b [8]byte
	switch p.Type {
	case Real:
		return p.loadReal(op, data)
	case Integer:
		if convertInt(b[:], data, true, true) != nil {
			return 0, p.fail(op, ErrInexactValue)
		}
		v := decodeSigned(b[:])
		mag := uint64(v)
		if v < 0 {
			mag = -mag
		}
		if mag > uint64(1)<<doubleMantissaBits {
			return 0, p.fail(op, ErrInexactValue)
		}
		return float64(v), nil
	case UnsignedInteger:
		if convertInt(b[:], data, false, false) != nil {
			return 0, p.fail(op, ErrInexactValue)
		}
		v := decodeUnsigned(b[:])
		if v > uint64(1)<<doubleMantissaBits {
			return 0, p.fail(op, ErrInexactValue)
		}
		return float64(v), nil
	default:
		return 0, p.fail(op, ErrIncompatibleType)
	}
}

// SetDouble stores v in p. Storing in to an Integer or UnsignedInteger
// parameter requires v to be integral and within the range of the
// parameter's width. Storing in to a 4 byte Real requires v to be exactly
// representable as a float32.
func (p *Param) SetDouble(v float64) (Outcome, error) {
	const op = "SetDouble"

	if p == nil {
		return Outcome{}, raise(op, "", ErrNullArgument)
	}
	p.ReturnSize = 0

	switch p.Type {
	case Real:
		buf, err := p.buffer(op)
		if err != nil {
			return Outcome{}, err
		}
		if buf == nil {
			return p.queried(realWidth), nil
		}
		switch len(buf) {
		case 8:
		case 4:
			if !math.IsNaN(v) && float64(float32(v)) != v {
				p.ReturnSize = realWidth
				return Outcome{}, p.fail(op, ErrInexactValue)
			}
		default:
			return Outcome{}, p.fail(op, ErrUnsupportedRealFormat)
		}
		putReal(buf, v)
		return p.written(len(buf)), nil

	case Integer:
		if p.Data == nil {
			return p.queried(realWidth), nil
		}
		if !isIntegral(v) {
			return Outcome{}, p.fail(op, ErrInexactValue)
		}
		if v < -d2pow63 || v >= d2pow63 {
			p.ReturnSize = realWidth
			return Outcome{}, p.fail(op, ErrValueTooLarge)
		}
		var b [8]byte
		encodeSigned(b[:], int64(v))
		return p.storeInt(op, b[:], true)

	case UnsignedInteger:
		if p.Data == nil {
			return p.queried(realWidth), nil
		}
		if !isIntegral(v) {
			return Outcome{}, p.fail(op, ErrInexactValue)
		}
		if v < 0 {
			return Outcome{}, p.fail(op, ErrNegativeUnsignedValue)
		}
		if v >= d2pow64 {
			p.ReturnSize = realWidth
			return Outcome{}, p.fail(op, ErrValueTooLarge)
		}
		var b [8]byte
		encodeUnsigned(b[:], uint64(v))
		return p.storeInt(op, b[:], false)

	default:
		return Outcome{}, p.fail(op, ErrIncompatibleType)
	}
}
