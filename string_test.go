// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package params_test

import (
	. "gopkg.in/check.v1"

	. "github.com/canonical/go-params"
	internal_testutil "github.com/canonical/go-params/internal/testutil"
)

type stringSuite struct {
	queueMixin
}

var _ = Suite(&stringSuite{})

func (s *stringSuite) TestSetGetUTF8String(c *C) {
	buf := make([]byte, 8)
	for i := range buf {
		buf[i] = 'x'
	}
	p := ConstructUTF8String("s", buf)
	out, err := p.SetUTF8String("abc")
	c.Check(err, IsNil)
	c.Check(out, Equals, Outcome{N: 3})
	c.Check(p.ReturnSize, Equals, 3)
	c.Check(buf, DeepEquals, []byte("abc\x00xxxx"))

	str, err := p.GetUTF8String()
	c.Check(err, IsNil)
	c.Check(str, Equals, "abc")
}

func (s *stringSuite) TestSetUTF8StringExactFit(c *C) {
	buf := make([]byte, 3)
	p := ConstructUTF8String("s", buf)
	_, err := p.SetUTF8String("abc")
	c.Check(err, IsNil)
	c.Check(buf, DeepEquals, []byte("abc"))

	str, err := p.GetUTF8String()
	c.Check(err, IsNil)
	c.Check(str, Equals, "abc")
}

func (s *stringSuite) TestSetUTF8StringTooSmall(c *C) {
	buf := []byte("zz")
	p := ConstructUTF8String("s", buf)
	_, err := p.SetUTF8String("abc")
	c.Check(err, internal_testutil.HasReason, ErrBufferTooSmall)
	c.Check(p.ReturnSize, Equals, 3)
	c.Check(buf, DeepEquals, []byte("zz"))
	s.checkReported(c, ErrBufferTooSmall)
}

func (s *stringSuite) TestSetUTF8StringQuery(c *C) {
	p := ConstructUTF8String("s", nil)
	for i := 0; i < 2; i++ {
		out, err := p.SetUTF8String("hello")
		c.Check(err, IsNil)
		c.Check(out, Equals, Outcome{N: 5, Query: true})
		c.Check(p.ReturnSize, Equals, 5)
	}
}

func (s *stringSuite) TestSetUTF8StringStopsAtNUL(c *C) {
	buf := make([]byte, 8)
	p := ConstructUTF8String("s", buf)
	out, err := p.SetUTF8String("ab\x00cd")
	c.Check(err, IsNil)
	c.Check(out, Equals, Outcome{N: 2})
}

func (s *stringSuite) TestGetUTF8StringMeasuresContent(c *C) {
	// The declared size overstates the content.
	p := ConstructUTF8String("s", []byte("hi\x00garbage"))
	str, err := p.GetUTF8String()
	c.Check(err, IsNil)
	c.Check(str, Equals, "hi")

	dst := make([]byte, 3)
	n, err := p.GetUTF8StringInto(dst)
	c.Check(err, IsNil)
	c.Check(n, Equals, 2)
	c.Check(dst, DeepEquals, []byte("hi\x00"))
}

func (s *stringSuite) TestGetUTF8StringInto(c *C) {
	p := ConstructUTF8String("s", []byte("hello"))
	dst := []byte("0123456789")
	n, err := p.GetUTF8StringInto(dst[:6])
	c.Check(err, IsNil)
	c.Check(n, Equals, 5)
	c.Check(dst, DeepEquals, []byte("hello\x006789"))
}

func (s *stringSuite) TestGetUTF8StringIntoNoSpaceForTerminator(c *C) {
	p := ConstructUTF8String("s", []byte("hello"))
	dst := make([]byte, 5)
	n, err := p.GetUTF8StringInto(dst)
	c.Check(err, internal_testutil.HasReason, ErrNoSpaceForTerminator)
	c.Check(err, internal_testutil.ErrorIs, ErrBufferTooSmall)
	c.Check(n, Equals, 6)
	c.Check(dst, DeepEquals, make([]byte, 5))
	s.checkReported(c, ErrNoSpaceForTerminator)
}

func (s *stringSuite) TestGetUTF8StringIntoTooSmall(c *C) {
	p := ConstructUTF8String("s", []byte("hello"))
	n, err := p.GetUTF8StringInto(make([]byte, 4))
	c.Check(err, internal_testutil.HasReason, ErrBufferTooSmall)
	c.Check(n, Equals, 6)
	s.checkReported(c, ErrBufferTooSmall)

	_, err = p.GetUTF8StringInto(nil)
	c.Check(err, internal_testutil.HasReason, ErrNullArgument)
	s.checkReported(c, ErrNullArgument)
}

func (s *stringSuite) TestGetUTF8StringErrors(c *C) {
	p := ConstructOctetString("o", []byte("abc"))
	_, err := p.GetUTF8String()
	c.Check(err, internal_testutil.HasReason, ErrIncompatibleType)
	s.checkReported(c, ErrIncompatibleType)

	q := ConstructUTF8String("s", nil)
	_, err = q.GetUTF8String()
	c.Check(err, internal_testutil.HasReason, ErrNullArgument)
	s.checkReported(c, ErrNullArgument)

	var r *Param
	_, err = r.GetUTF8String()
	c.Check(err, internal_testutil.HasReason, ErrNullArgument)
	s.checkReported(c, ErrNullArgument)
}

func (s *stringSuite) TestSetGetOctetString(c *C) {
	buf := make([]byte, 4)
	p := ConstructOctetString("o", buf)
	out, err := p.SetOctetString([]byte{1, 0, 2})
	c.Check(err, IsNil)
	c.Check(out, Equals, Outcome{N: 3})
	c.Check(buf, DeepEquals, []byte{1, 0, 2, 0})

	// The data size is the capacity. The caller uses the return size to
	// find the length of the contents.
	p.DataSize = p.ReturnSize
	b, err := p.GetOctetString()
	c.Check(err, IsNil)
	c.Check(b, DeepEquals, []byte{1, 0, 2})

	b[0] = 9
	c.Check(buf[0], Equals, byte(1))
}

func (s *stringSuite) TestGetOctetStringEmpty(c *C) {
	p := ConstructOctetString("o", []byte{})
	b, err := p.GetOctetString()
	c.Check(err, IsNil)
	c.Check(b, NotNil)
	c.Check(b, HasLen, 0)
}

func (s *stringSuite) TestGetOctetStringInto(c *C) {
	p := ConstructOctetString("o", []byte{1, 2, 3})
	dst := make([]byte, 4)
	n, err := p.GetOctetStringInto(dst)
	c.Check(err, IsNil)
	c.Check(n, Equals, 3)
	c.Check(dst, DeepEquals, []byte{1, 2, 3, 0})

	n, err = p.GetOctetStringInto(make([]byte, 2))
	c.Check(err, internal_testutil.HasReason, ErrBufferTooSmall)
	c.Check(n, Equals, 3)
	s.checkReported(c, ErrBufferTooSmall)
}

func (s *stringSuite) TestSetOctetStringErrors(c *C) {
	p := ConstructOctetString("o", make([]byte, 2))
	_, err := p.SetOctetString(nil)
	c.Check(err, internal_testutil.HasReason, ErrNullArgument)
	s.checkReported(c, ErrNullArgument)

	_, err = p.SetOctetString([]byte{1, 2, 3})
	c.Check(err, internal_testutil.HasReason, ErrBufferTooSmall)
	c.Check(p.ReturnSize, Equals, 3)
	s.checkReported(c, ErrBufferTooSmall)

	q := ConstructUTF8String("s", make([]byte, 8))
	_, err = q.SetOctetString([]byte{1})
	c.Check(err, internal_testutil.HasReason, ErrIncompatibleType)
	s.checkReported(c, ErrIncompatibleType)

	r := ConstructOctetString("o", nil)
	out, err := r.SetOctetString([]byte{1, 2})
	c.Check(err, IsNil)
	c.Check(out, Equals, Outcome{N: 2, Query: true})
}
