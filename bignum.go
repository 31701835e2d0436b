// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package params

import (
	"math/big"

	"github.com/canonical/go-params/internal/convert"
)

// GetBigInt returns the value of an Integer or UnsignedInteger parameter of
// any width. An Integer parameter is interpreted as a two's complement
// number.
func (p *Param) GetBigInt() (*big.Int, error) {
	const op = "GetBigInt"

	if p == nil {
		return nil, raise(op, "", ErrNullArgument)
	}
	data, err := p.contents(op)
	if err != nil {
		return nil, err
	}
	if p.Type != Integer && p.Type != UnsignedInteger {
		return nil, p.fail(op, ErrIncompatibleType)
	}

	be := make([]byte, len(data))
	convert.Native.ToBigEndian(be, data)
	x := new(big.Int).SetBytes(be)
	if p.Type == Integer && len(be) > 0 && be[0]&0x80 != 0 {
		x.Sub(x, new(big.Int).Lsh(big.NewInt(1), uint(8*len(be))))
	}
	return x, nil
}

// bigIntSize returns the minimum number of bytes needed to store x in a
// parameter of type t.
func bigIntSize(x *big.Int, t DataType) int {
	n := (x.BitLen() + 7) / 8
	if t == Integer {
		// Leave space for the sign.
		n++
	}
	if n == 0 {
		n = 1
	}
	return n
}

// SetBigInt stores x in p. Negative values can only be stored in an Integer
// parameter, in two's complement form. The value is padded to the size of
// the parameter, which must be at least as large as the minimum size. The
// minimum size is 1 byte more than the size of the magnitude for an Integer
// parameter, and at least 1 byte.
func (p *Param) SetBigInt(x *big.Int) (Outcome, error) {
	const op = "SetBigInt"

	if p == nil {
		return Outcome{}, raise(op, "", ErrNullArgument)
	}
	p.ReturnSize = 0
	if x == nil {
		return Outcome{}, p.fail(op, ErrNullArgument)
	}
	switch p.Type {
	case Integer:
	case UnsignedInteger:
		if x.Sign() < 0 {
			return Outcome{}, p.fail(op, ErrNegativeUnsignedValue)
		}
	default:
		return Outcome{}, p.fail(op, ErrIncompatibleType)
	}

	n := bigIntSize(x, p.Type)
	buf, err := p.buffer(op)
	if err != nil {
		return Outcome{}, err
	}
	if buf == nil {
		return p.queried(n), nil
	}
	if len(buf) < n {
		p.ReturnSize = n
		return Outcome{}, p.fail(op, ErrBufferTooSmall)
	}

	be := make([]byte, len(buf))
	if x.Sign() < 0 {
		t := new(big.Int).Lsh(big.NewInt(1), uint(8*len(buf)))
		t.Add(t, x)
		t.FillBytes(be)
	} else {
		x.FillBytes(be)
	}
	convert.Native.FromBigEndian(buf, be)
	return p.written(len(buf)), nil
}
