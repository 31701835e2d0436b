// Copyright 2020 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package testutil

import (
	"encoding/binary"
	"encoding/hex"
	"math/big"

	. "gopkg.in/check.v1"
)

// DecodeHexString decodes the supplied hex string in to a byte slice.
func DecodeHexString(c *C, s string) []byte {
	b, err := hex.DecodeString(s)
	c.Assert(err, IsNil)
	return b
}

// NativeBytes returns the two's complement encoding of x as a size byte
// integer in the native byte order of the host. It fails the test if x
// doesn't fit.
func NativeBytes(c *C, x *big.Int, size int) []byte {
	v := new(big.Int).Set(x)
	if v.Sign() < 0 {
		v.Add(v, new(big.Int).Lsh(big.NewInt(1), uint(8*size)))
	}
	be := make([]byte, size)
	c.Assert(v.BitLen() <= 8*size, IsTrue, Commentf("%v does not fit in to %d bytes", x, size))
	v.FillBytes(be)

	var probe [2]byte
	binary.NativeEndian.PutUint16(probe[:], 1)
	if probe[1] == 1 {
		return be
	}
	out := make([]byte, size)
	for i := range be {
		out[size-1-i] = be[i]
	}
	return out
}

// NativeInt is NativeBytes for an int64 value.
func NativeInt(c *C, x int64, size int) []byte {
	return NativeBytes(c, big.NewInt(x), size)
}

// NativeUint is NativeBytes for a uint64 value.
func NativeUint(c *C, x uint64, size int) []byte {
	return NativeBytes(c, new(big.Int).SetUint64(x), size)
}
