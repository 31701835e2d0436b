// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package params_test

import (
	"unsafe"

	. "gopkg.in/check.v1"

	. "github.com/canonical/go-params"
	internal_testutil "github.com/canonical/go-params/internal/testutil"
)

type paramSuite struct{}

var _ = Suite(&paramSuite{})

func (s *paramSuite) TestLocate(c *C) {
	var a, b int32
	ps := Sequence{
		ConstructInt32("a", &a),
		ConstructInt32("b", &b),
		End()}
	p := ps.Locate("b")
	c.Assert(p, NotNil)
	c.Check(p, Equals, &ps[1])
}

func (s *paramSuite) TestLocateFirstMatchWins(c *C) {
	var a, b int32
	ps := Sequence{
		ConstructInt32("dup", &a),
		ConstructInt32("dup", &b),
		End()}
	c.Check(ps.Locate("dup"), Equals, &ps[0])
}

func (s *paramSuite) TestLocateIsCaseSensitive(c *C) {
	var a int32
	ps := Sequence{ConstructInt32("key", &a), End()}
	c.Check(ps.Locate("KEY"), IsNil)
}

func (s *paramSuite) TestLocateMissing(c *C) {
	var a int32
	ps := Sequence{ConstructInt32("a", &a), End()}
	c.Check(ps.Locate("b"), IsNil)
	c.Check(ps.Locate(""), IsNil)
	c.Check(Sequence(nil).Locate("a"), IsNil)
}

func (s *paramSuite) TestLocateStopsAtEnd(c *C) {
	var a, b int32
	ps := Sequence{
		ConstructInt32("a", &a),
		End(),
		ConstructInt32("b", &b)}
	c.Check(ps.Locate("b"), IsNil)
	c.Check(ps.Len(), Equals, 1)
	c.Check(ps.Keys(), DeepEquals, []string{"a"})
}

func (s *paramSuite) TestLocateUnterminated(c *C) {
	var a, b int32
	ps := Sequence{
		ConstructInt32("a", &a),
		ConstructInt32("b", &b)}
	c.Check(ps.Locate("b"), Equals, &ps[1])
	c.Check(ps.Len(), Equals, 2)
}

func (s *paramSuite) TestModified(c *C) {
	var a int32
	p := ConstructInt32("a", &a)
	c.Check(p.ReturnSize, Equals, Unmodified)
	c.Check(p.Modified(), internal_testutil.IsFalse)

	_, err := p.SetInt32(1)
	c.Check(err, IsNil)
	c.Check(p.Modified(), internal_testutil.IsTrue)

	var nilParam *Param
	c.Check(nilParam.Modified(), internal_testutil.IsFalse)
}

func (s *paramSuite) TestSetAllUnmodified(c *C) {
	var a, b, d int32
	ps := Sequence{
		ConstructInt32("a", &a),
		ConstructInt32("b", &b),
		End(),
		ConstructInt32("d", &d)}
	for i := range ps {
		ps[i].ReturnSize = 4
	}
	ps[2].ReturnSize = Unmodified

	ps.SetAllUnmodified()
	c.Check(ps[0].Modified(), internal_testutil.IsFalse)
	c.Check(ps[1].Modified(), internal_testutil.IsFalse)
	c.Check(ps[3].ReturnSize, Equals, 4)
}

func (s *paramSuite) TestEnd(c *C) {
	end := End()
	c.Check(end.IsEnd(), internal_testutil.IsTrue)
	c.Check(end.Data, IsNil)

	var a int32
	p := ConstructInt32("a", &a)
	c.Check(p.IsEnd(), internal_testutil.IsFalse)
}

func (s *paramSuite) TestConstructAliasesVariable(c *C) {
	var a int64
	p := ConstructInt64("a", &a)
	c.Check(p.Type, Equals, Integer)
	c.Check(p.DataSize, Equals, 8)

	_, err := p.SetInt64(-42)
	c.Check(err, IsNil)
	c.Check(a, Equals, int64(-42))

	a = 99
	v, err := p.GetInt64()
	c.Check(err, IsNil)
	c.Check(v, Equals, int64(99))
}

func (s *paramSuite) TestConstructNilVariable(c *C) {
	p := ConstructUint32("a", nil)
	c.Check(p.Type, Equals, UnsignedInteger)
	c.Check(p.Data, IsNil)
	c.Check(p.DataSize, Equals, 4)
	c.Check(p.ReturnSize, Equals, Unmodified)
}

func (s *paramSuite) TestConstructTypes(c *C) {
	var d float64
	var f float32
	var u uintptr
	var t int64
	for _, data := range []struct {
		p    Param
		typ  DataType
		size int
	}{
		{p: ConstructDouble("d", &d), typ: Real, size: 8},
		{p: ConstructFloat32("f", &f), typ: Real, size: 4},
		{p: ConstructUintptr("u", &u), typ: UnsignedInteger, size: int(unsafe.Sizeof(u))},
		{p: ConstructTime("t", &t), typ: Integer, size: 8},
		{p: ConstructBigInt("b", make([]byte, 32)), typ: UnsignedInteger, size: 32},
		{p: ConstructInteger("i", make([]byte, 3)), typ: Integer, size: 3},
		{p: ConstructUnsignedInteger("u", make([]byte, 5)), typ: UnsignedInteger, size: 5},
		{p: ConstructUTF8String("s", make([]byte, 10)), typ: UTF8String, size: 10},
		{p: ConstructOctetString("o", make([]byte, 7)), typ: OctetString, size: 7},
		{p: ConstructUTF8Ptr("up", new(View), 3), typ: UTF8Ptr, size: 3},
		{p: ConstructOctetPtr("op", new(View), 0), typ: OctetPtr, size: 0},
	} {
		c.Check(data.p.Type, Equals, data.typ, Commentf("key: %s", data.p.Key))
		c.Check(data.p.DataSize, Equals, data.size, Commentf("key: %s", data.p.Key))
		c.Check(data.p.ReturnSize, Equals, Unmodified)
	}
}

func (s *paramSuite) TestDataTypeString(c *C) {
	c.Check(Integer.String(), Equals, "integer")
	c.Check(UnsignedInteger.String(), Equals, "unsigned_integer")
	c.Check(Real.String(), Equals, "real")
	c.Check(UTF8String.String(), Equals, "utf8_string")
	c.Check(OctetString.String(), Equals, "octet_string")
	c.Check(UTF8Ptr.String(), Equals, "utf8_ptr")
	c.Check(OctetPtr.String(), Equals, "octet_ptr")
	c.Check(DataType(99).String(), Equals, "DataType(99)")
	c.Check(DataType(99).IsValid(), internal_testutil.IsFalse)
	c.Check(OctetPtr.IsPtr(), internal_testutil.IsTrue)
	c.Check(OctetString.IsPtr(), internal_testutil.IsFalse)
}

func (s *paramSuite) TestParseDataType(c *C) {
	for _, t := range []DataType{Integer, UnsignedInteger, Real, UTF8String, OctetString, UTF8Ptr, OctetPtr} {
		parsed, err := ParseDataType(t.String())
		c.Check(err, IsNil)
		c.Check(parsed, Equals, t)
	}
	_, err := ParseDataType("bool")
	c.Check(err, ErrorMatches, `unrecognized data type "bool"`)
}
