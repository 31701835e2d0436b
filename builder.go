// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package params

import (
	"math/big"
	"strings"
)

// Builder creates a Sequence along with the storage for each of its
// parameters. If an error occurs when adding a parameter, subsequent calls
// to add parameters are ignored and Build returns the error.
//
// Values are stored with the same accessors that are used to set
// parameters, so they are subject to the same conversion rules.
type Builder struct {
	params []Param
	err    error
}

// NewBuilder returns a new empty builder.
func NewBuilder() *Builder {
	return new(Builder)
}

// check returns true if it's ok to add parameters to the builder.
func (b *Builder) check(op, key string) bool {
	if b.err != nil {
		return false
	}
	if key == "" {
		b.err = raise(op, "", ErrNullArgument)
		return false
	}
	return true
}

func (b *Builder) push(p Param, set func(*Param) (Outcome, error)) {
	if _, err := set(&p); err != nil {
		b.err = err
		return
	}
	p.ReturnSize = Unmodified
	b.params = append(b.params, p)
}

func (b *Builder) pushFixed(op, key string, t DataType, size int, set func(*Param) (Outcome, error)) {
	if !b.check(op, key) {
		return
	}
	b.push(construct(key, t, make([]byte, size), size), set)
}

// PushInt32 adds a 4 byte Integer parameter.
func (b *Builder) PushInt32(key string, v int32) {
	b.pushFixed("PushInt32", key, Integer, 4, func(p *Param) (Outcome, error) { return p.SetInt32(v) })
}

// PushUint32 adds a 4 byte UnsignedInteger parameter.
func (b *Builder) PushUint32(key string, v uint32) {
	b.pushFixed("PushUint32", key, UnsignedInteger, 4, func(p *Param) (Outcome, error) { return p.SetUint32(v) })
}

// PushInt64 adds an 8 byte Integer parameter.
func (b *Builder) PushInt64(key string, v int64) {
	b.pushFixed("PushInt64", key, Integer, 8, func(p *Param) (Outcome, error) { return p.SetInt64(v) })
}

// PushUint64 adds an 8 byte UnsignedInteger parameter.
func (b *Builder) PushUint64(key string, v uint64) {
	b.pushFixed("PushUint64", key, UnsignedInteger, 8, func(p *Param) (Outcome, error) { return p.SetUint64(v) })
}

// PushInt adds an Integer parameter with the width of an int.
func (b *Builder) PushInt(key string, v int) {
	b.pushFixed("PushInt", key, Integer, intWidth, func(p *Param) (Outcome, error) { return p.SetInt(v) })
}

// PushUint adds an UnsignedInteger parameter with the width of a uint.
func (b *Builder) PushUint(key string, v uint) {
	b.pushFixed("PushUint", key, UnsignedInteger, intWidth, func(p *Param) (Outcome, error) { return p.SetUint(v) })
}

// PushDouble adds an 8 byte Real parameter.
func (b *Builder) PushDouble(key string, v float64) {
	b.pushFixed("PushDouble", key, Real, realWidth, func(p *Param) (Outcome, error) { return p.SetDouble(v) })
}

func (b *Builder) pushBigInt(op, key string, t DataType, x *big.Int, size int) {
	if !b.check(op, key) {
		return
	}
	if x == nil {
		b.err = raise(op, key, ErrNullArgument)
		return
	}
	if size == 0 {
		size = bigIntSize(x, t)
	}
	b.push(construct(key, t, make([]byte, size), size), func(p *Param) (Outcome, error) { return p.SetBigInt(x) })
}

// PushBigInt adds an UnsignedInteger parameter holding x, which must not be
// negative. The parameter has the minimum size needed for x.
func (b *Builder) PushBigInt(key string, x *big.Int) {
	b.pushBigInt("PushBigInt", key, UnsignedInteger, x, 0)
}

// PushBigIntPad adds an UnsignedInteger parameter of the specified size
// holding x, which must not be negative.
func (b *Builder) PushBigIntPad(key string, x *big.Int, size int) {
	if size <= 0 {
		if b.check("PushBigIntPad", key) {
			b.err = raise("PushBigIntPad", key, ErrBufferTooSmall)
		}
		return
	}
	b.pushBigInt("PushBigIntPad", key, UnsignedInteger, x, size)
}

// PushSignedBigInt adds an Integer parameter holding x in two's complement
// form. The parameter has the minimum size needed for x and its sign.
func (b *Builder) PushSignedBigInt(key string, x *big.Int) {
	b.pushBigInt("PushSignedBigInt", key, Integer, x, 0)
}

// PushUTF8String adds a UTF8String parameter holding s, up to its first NUL
// byte. The storage has space for a NUL terminator, which isn't included in
// the data size.
func (b *Builder) PushUTF8String(key string, s string) {
	if !b.check("PushUTF8String", key) {
		return
	}
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	buf := make([]byte, len(s)+1)
	b.push(construct(key, UTF8String, buf, len(s)), func(p *Param) (Outcome, error) { return p.SetUTF8String(s) })
}

// PushOctetString adds an OctetString parameter holding a copy of v.
func (b *Builder) PushOctetString(key string, v []byte) {
	if !b.check("PushOctetString", key) {
		return
	}
	if v == nil {
		v = []byte{}
	}
	buf := make([]byte, len(v))
	b.push(construct(key, OctetString, buf, len(buf)), func(p *Param) (Outcome, error) { return p.SetOctetString(v) })
}

// PushUTF8Ptr adds a UTF8Ptr parameter that references s without copying
// it.
func (b *Builder) PushUTF8Ptr(key string, s string) {
	if !b.check("PushUTF8Ptr", key) {
		return
	}
	b.push(ConstructUTF8Ptr(key, new(View), len(s)), func(p *Param) (Outcome, error) { return p.SetUTF8Ptr(s) })
}

// PushOctetPtr adds an OctetPtr parameter that references v without copying
// it.
func (b *Builder) PushOctetPtr(key string, v []byte) {
	if !b.check("PushOctetPtr", key) {
		return
	}
	b.push(ConstructOctetPtr(key, new(View), len(v)), func(p *Param) (Outcome, error) { return p.SetOctetPtr(v) })
}

// Build returns the sequence of parameters added to the builder, terminated
// with an end marker. If an error occurred whilst adding parameters, it is
// returned instead. The builder is reset either way.
func (b *Builder) Build() (Sequence, error) {
	params, err := b.params, b.err
	b.params, b.err = nil, nil
	if err != nil {
		return nil, err
	}
	return append(Sequence(params), End()), nil
}
