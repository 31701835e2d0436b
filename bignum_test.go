// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package params_test

import (
	"math/big"

	. "gopkg.in/check.v1"

	. "github.com/canonical/go-params"
	internal_testutil "github.com/canonical/go-params/internal/testutil"
)

type bignumSuite struct {
	queueMixin
}

var _ = Suite(&bignumSuite{})

func (s *bignumSuite) mustParse(c *C, str string) *big.Int {
	x, ok := new(big.Int).SetString(str, 0)
	c.Assert(ok, internal_testutil.IsTrue)
	return x
}

func (s *bignumSuite) TestUnsignedRoundTrip(c *C) {
	x := s.mustParse(c, "0x0102030405060708090a0b0c0d0e0f")
	buf := make([]byte, 32)
	p := ConstructBigInt("n", buf)

	out, err := p.SetBigInt(x)
	c.Check(err, IsNil)
	c.Check(out, Equals, Outcome{N: 32})
	c.Check(p.ReturnSize, Equals, 32)
	c.Check(buf, DeepEquals, internal_testutil.NativeBytes(c, x, 32))

	got, err := p.GetBigInt()
	c.Check(err, IsNil)
	c.Check(got.Cmp(x), Equals, 0)
}

func (s *bignumSuite) TestSignedRoundTrip(c *C) {
	for _, str := range []string{"-12345678901234567890", "-1", "-128", "0", "127", "128", "99999999999999999999999"} {
		x := s.mustParse(c, str)
		buf := make([]byte, 16)
		p := ConstructInteger("n", buf)

		_, err := p.SetBigInt(x)
		c.Check(err, IsNil, Commentf("value: %s", str))
		c.Check(buf, DeepEquals, internal_testutil.NativeBytes(c, x, 16), Commentf("value: %s", str))

		got, err := p.GetBigInt()
		c.Check(err, IsNil)
		c.Check(got.Cmp(x), Equals, 0, Commentf("value: %s, got: %v", str, got))
	}
}

func (s *bignumSuite) TestNegativeIntoUnsigned(c *C) {
	buf := make([]byte, 8)
	p := ConstructBigInt("n", buf)
	_, err := p.SetBigInt(big.NewInt(-1))
	c.Check(err, internal_testutil.HasReason, ErrNegativeUnsignedValue)
	c.Check(buf, DeepEquals, make([]byte, 8))
	s.checkReported(c, ErrNegativeUnsignedValue)
}

func (s *bignumSuite) TestSizeQuery(c *C) {
	for _, data := range []struct {
		typ  DataType
		x    int64
		size int
	}{
		{typ: UnsignedInteger, x: 0, size: 1},
		{typ: UnsignedInteger, x: 0xff, size: 1},
		{typ: UnsignedInteger, x: 0x100, size: 2},
		{typ: Integer, x: 0, size: 1},
		{typ: Integer, x: 0x7f, size: 2},
		{typ: Integer, x: 0xff, size: 2},
		{typ: Integer, x: -1, size: 2},
		{typ: Integer, x: -0x10000, size: 4},
	} {
		p := Param{Key: "n", Type: data.typ, ReturnSize: Unmodified}
		for i := 0; i < 2; i++ {
			out, err := p.SetBigInt(big.NewInt(data.x))
			c.Check(err, IsNil)
			c.Check(out, Equals, Outcome{N: data.size, Query: true}, Commentf("type: %v, value: %d", data.typ, data.x))
			c.Check(p.ReturnSize, Equals, data.size)
		}
	}
	s.checkNoneReported(c)
}

func (s *bignumSuite) TestBufferTooSmall(c *C) {
	buf := []byte{0xaa, 0xaa}
	p := ConstructBigInt("n", buf)
	_, err := p.SetBigInt(big.NewInt(0x10000))
	c.Check(err, internal_testutil.HasReason, ErrBufferTooSmall)
	c.Check(p.ReturnSize, Equals, 3)
	c.Check(buf, DeepEquals, []byte{0xaa, 0xaa})
	s.checkReported(c, ErrBufferTooSmall)
}

func (s *bignumSuite) TestGetBigIntInterpretation(c *C) {
	p := ConstructInteger("n", []byte{0xff})
	x, err := p.GetBigInt()
	c.Check(err, IsNil)
	c.Check(x.Int64(), Equals, int64(-1))

	p = ConstructUnsignedInteger("n", []byte{0xff})
	x, err = p.GetBigInt()
	c.Check(err, IsNil)
	c.Check(x.Int64(), Equals, int64(255))

	p = ConstructInteger("n", []byte{})
	x, err = p.GetBigInt()
	c.Check(err, IsNil)
	c.Check(x.Sign(), Equals, 0)
}

func (s *bignumSuite) TestInteropWithFixedWidth(c *C) {
	var v int64
	p := ConstructInt64("n", &v)
	_, err := p.SetInt64(-2)
	c.Check(err, IsNil)

	x, err := p.GetBigInt()
	c.Check(err, IsNil)
	c.Check(x.Int64(), Equals, int64(-2))

	_, err = p.SetBigInt(big.NewInt(-300))
	c.Check(err, IsNil)
	c.Check(v, Equals, int64(-300))
}

func (s *bignumSuite) TestErrors(c *C) {
	p := ConstructBigInt("n", make([]byte, 4))
	_, err := p.SetBigInt(nil)
	c.Check(err, internal_testutil.HasReason, ErrNullArgument)
	s.checkReported(c, ErrNullArgument)

	var d float64
	q := ConstructDouble("d", &d)
	_, err = q.SetBigInt(big.NewInt(1))
	c.Check(err, internal_testutil.HasReason, ErrIncompatibleType)
	s.checkReported(c, ErrIncompatibleType)

	_, err = q.GetBigInt()
	c.Check(err, internal_testutil.HasReason, ErrIncompatibleType)
	s.checkReported(c, ErrIncompatibleType)

	r := ConstructBigInt("n", nil)
	_, err = r.GetBigInt()
	c.Check(err, internal_testutil.HasReason, ErrNullArgument)
	s.checkReported(c, ErrNullArgument)
}
