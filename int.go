// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package params

import (
	"encoding/binary"
	"errors"
	"strconv"
	"time"
	"unsafe"

	"github.com/canonical/go-params/internal/convert"
)

const (
	intWidth     = strconv.IntSize / 8
	uintptrWidth = int(unsafe.Sizeof(uintptr(0)))
)

func reasonOf(err error) Reason {
	if errors.Is(err, convert.ErrNegative) {
		return ErrNegativeUnsignedValue
	}
	return ErrValueTooLarge
}

func encodeSigned(b []byte, v int64) {
	switch len(b) {
	case 4:
		binary.NativeEndian.PutUint32(b, uint32(v))
	case 8:
		binary.NativeEndian.PutUint64(b, uint64(v))
	default:
		panic("unsupported integer width")
	}
}

func encodeUnsigned(b []byte, v uint64) {
	switch len(b) {
	case 4:
		binary.NativeEndian.PutUint32(b, uint32(v))
	case 8:
		binary.NativeEndian.PutUint64(b, v)
	default:
		panic("unsupported integer width")
	}
}

func decodeSigned(b []byte) int64 {
	switch len(b) {
	case 4:
		return int64(int32(binary.NativeEndian.Uint32(b)))
	case 8:
		return int64(binary.NativeEndian.Uint64(b))
	default:
		panic("unsupported integer width")
	}
}

func decodeUnsigned(b []byte) uint64 {
	switch len(b) {
	case 4:
		return uint64(binary.NativeEndian.Uint32(b))
	case 8:
		return binary.NativeEndian.Uint64(b)
	default:
		panic("unsupported integer width")
	}
}

// convertInt copies the native integer in src to dst.
func convertInt(dst, src []byte, dstSigned, srcSigned bool) error {
	switch {
	case dstSigned && srcSigned:
		return convert.SignedFromSigned(dst, src)
	case dstSigned:
		return convert.SignedFromUnsigned(dst, src)
	case srcSigned:
		return convert.UnsignedFromSigned(dst, src)
	default:
		return convert.UnsignedFromUnsigned(dst, src)
	}
}

// storeInt stores the native integer in src in an Integer or
// UnsignedInteger parameter. On a range failure, the return size is set to
// the width of src.
func (p *Param) storeInt(op string, src []byte, signed bool) (Outcome, error) {
	if p.Type == UnsignedInteger && signed && convert.Native.IsNegative(src) {
		return Outcome{}, p.fail(op, ErrNegativeUnsignedValue)
	}
	buf, err := p.buffer(op)
	if err != nil {
		return Outcome{}, err
	}
	if buf == nil {
		return p.queried(len(src)), nil
	}
	if err := convertInt(buf, src, p.Type == Integer, signed); err != nil {
		p.ReturnSize = len(src)
		return Outcome{}, p.fail(op, reasonOf(err))
	}
	return p.written(len(buf)), nil
}

// loadInt reads an Integer or UnsignedInteger parameter in to dst.
func (p *Param) loadInt(op string, data, dst []byte, signed bool) error {
	if err := convertInt(dst, data, signed, p.Type == Integer); err != nil {
		return p.fail(op, reasonOf(err))
	}
	return nil
}

func (p *Param) getSigned(op string, width int) (int64, error) {
	if p == nil {
		return 0, raise(op, "", ErrNullArgument)
	}
	data, err := p.contents(op)
	if err != nil {
		return 0, err
	}

	switch p.Type {
	case Integer, UnsignedInteger:
		var b [8]byte
		if err := p.loadInt(op, data, b[:width], true); err != nil {
			return 0, err
		}
		return decodeSigned(b[:width]), nil
	case Real:
		d, err := p.loadReal(op, data)
		if err != nil {
			return 0, err
		}
		v, reason := realToSigned(d, width)
		if reason != 0 {
			return 0, p.fail(op, reason)
		}
		return v, nil
	default:
		return 0, p.fail(op, ErrIncompatibleType)
	}
}

func (p *Param) getUnsigned(op string, width int) (uint64, error) {
	if p == nil {
		return 0, raise(op, "", ErrNullArgument)
	}
	data, err := p.contents(op)
	if err != nil {
		return 0, err
	}

	switch p.Type {
	case Integer, UnsignedInteger:
		var b [8]byte
		if err := p.loadInt(op, data, b[:width], false); err != nil {
			return 0, err
		}
		return decodeUnsigned(b[:width]), nil
	case Real:
		d, err := p.loadReal(op, data)
		if err != nil {
			return 0, err
		}
		v, reason := realToUnsigned(d, width)
		if reason != 0 {
			return 0, p.fail(op, reason)
		}
		return v, nil
	default:
		return 0, p.fail(op, ErrIncompatibleType)
	}
}

func (p *Param) setSigned(op string, v int64, width int) (Outcome, error) {
	if p == nil {
		return Outcome{}, raise(op, "", ErrNullArgument)
	}
	p.ReturnSize = 0

	switch p.Type {
	case Integer, UnsignedInteger:
		var b [8]byte
		encodeSigned(b[:width], v)
		return p.storeInt(op, b[:width], true)
	case Real:
		mag := uint64(v)
		if v < 0 {
			mag = -mag
		}
		return p.storeIntAsReal(op, mag, float64(v))
	default:
		return Outcome{}, p.fail(op, ErrIncompatibleType)
	}
}

func (p *Param) setUnsigned(op string, v uint64, width int) (Outcome, error) {
	if p == nil {
		return Outcome{}, raise(op, "", ErrNullArgument)
	}
	p.ReturnSize = 0

	switch p.Type {
	case Integer, UnsignedInteger:
		var b [8]byte
		encodeUnsigned(b[:width], v)
		return p.storeInt(op, b[:width], false)
	case Real:
		return p.storeIntAsReal(op, v, float64(v))
	default:
		return Outcome{}, p.fail(op, ErrIncompatibleType)
	}
}

// GetInt32 returns the value of p as an int32.
func (p *Param) GetInt32() (int32, error) {
	v, err := p.getSigned("GetInt32", 4)
	return int32(v), err
}

// SetInt32 stores v in p. An Integer or UnsignedInteger parameter may have
// any width that can hold v, and a Real parameter accepts v if it can be
// represented exactly.
func (p *Param) SetInt32(v int32) (Outcome, error) {
	return p.setSigned("SetInt32", int64(v), 4)
}

// GetUint32 returns the value of p as a uint32.
func (p *Param) GetUint32() (uint32, error) {
	v, err := p.getUnsigned("GetUint32", 4)
	return uint32(v), err
}

// SetUint32 stores v in p.
func (p *Param) SetUint32(v uint32) (Outcome, error) {
	return p.setUnsigned("SetUint32", uint64(v), 4)
}

// GetInt64 returns the value of p as an int64.
func (p *Param) GetInt64() (int64, error) {
	return p.getSigned("GetInt64", 8)
}

// SetInt64 stores v in p.
func (p *Param) SetInt64(v int64) (Outcome, error) {
	return p.setSigned("SetInt64", v, 8)
}

// GetUint64 returns the value of p as a uint64.
func (p *Param) GetUint64() (uint64, error) {
	return p.getUnsigned("GetUint64", 8)
}

// SetUint64 stores v in p.
func (p *Param) SetUint64(v uint64) (Outcome, error) {
	return p.setUnsigned("SetUint64", v, 8)
}

// GetInt returns the value of p as an int.
func (p *Param) GetInt() (int, error) {
	v, err := p.getSigned("GetInt", intWidth)
	return int(v), err
}

// SetInt stores v in p.
func (p *Param) SetInt(v int) (Outcome, error) {
	return p.setSigned("SetInt", int64(v), intWidth)
}

// GetUint returns the value of p as a uint.
func (p *Param) GetUint() (uint, error) {
	v, err := p.getUnsigned("GetUint", intWidth)
	return uint(v), err
}

// SetUint stores v in p.
func (p *Param) SetUint(v uint) (Outcome, error) {
	return p.setUnsigned("SetUint", uint64(v), intWidth)
}

// GetUintptr returns the value of p as a uintptr, which is the equivalent
// of a size_t.
func (p *Param) GetUintptr() (uintptr, error) {
	v, err := p.getUnsigned("GetUintptr", uintptrWidth)
	return uintptr(v), err
}

// SetUintptr stores v in p.
func (p *Param) SetUintptr(v uintptr) (Outcome, error) {
	return p.setUnsigned("SetUintptr", uint64(v), uintptrWidth)
}

// GetTime returns the value of p, a count of seconds since the Unix epoch,
// as a time.
func (p *Param) GetTime() (time.Time, error) {
	v, err := p.getSigned("GetTime", 8)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(v, 0), nil
}

// SetTime stores t in p as a count of seconds since the Unix epoch. Sub
// second precision is discarded.
func (p *Param) SetTime(t time.Time) (Outcome, error) {
	return p.setSigned("SetTime", t.Unix(), 8)
}

// GetRawInt reads the value of an Integer or UnsignedInteger parameter of
// any width in to dst, which is a signed integer of any width in native byte
// order. On failure, dst is not modified.
func (p *Param) GetRawInt(dst []byte) error {
	return p.getRaw("GetRawInt", dst, true)
}

// GetRawUint reads the value of an Integer or UnsignedInteger parameter of
// any width in to dst, which is an unsigned integer of any width in native
// byte order. On failure, dst is not modified.
func (p *Param) GetRawUint(dst []byte) error {
	return p.getRaw("GetRawUint", dst, false)
}

// SetRawInt stores the signed integer in src, which has any width and is in
// native byte order, in an Integer or UnsignedInteger parameter.
func (p *Param) SetRawInt(src []byte) (Outcome, error) {
	return p.setRaw("SetRawInt", src, true)
}

// SetRawUint stores the unsigned integer in src, which has any width and is
// in native byte order, in an Integer or UnsignedInteger parameter.
func (p *Param) SetRawUint(src []byte) (Outcome, error) {
	return p.setRaw("SetRawUint", src, false)
}

func (p *Param) getRaw(op string, dst []byte, signed bool) error {
	if p == nil || dst == nil {
		return raise(op, keyOf(p), ErrNullArgument)
	}
	data, err := p.contents(op)
	if err != nil {
		return err
	}
	if p.Type != Integer && p.Type != UnsignedInteger {
		return p.fail(op, ErrNotIntegerType)
	}
	return p.loadInt(op, data, dst, signed)
}

func (p *Param) setRaw(op string, src []byte, signed bool) (Outcome, error) {
	if p == nil || src == nil {
		return Outcome{}, raise(op, keyOf(p), ErrNullArgument)
	}
	p.ReturnSize = 0
	if p.Type != Integer && p.Type != UnsignedInteger {
		p.ReturnSize = len(src)
		return Outcome{}, p.fail(op, ErrNotIntegerType)
	}
	return p.storeInt(op, src, signed)
}

func keyOf(p *Param) string {
	if p == nil {
		return ""
	}
	return p.Key
}
