// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package params

import (
	"bytes"
	"strings"
)

// utf8Content returns the string held in the storage of a UTF8String
// parameter, which ends at the first NUL byte or at the end of the storage.
// The declared data size is only trusted as an upper bound.
func utf8Content(data []byte) []byte {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return data[:i]
	}
	return data
}

func (p *Param) stringContents(op string, t DataType) ([]byte, error) {
	if p == nil {
		return nil, raise(op, "", ErrNullArgument)
	}
	if p.Type != t {
		return nil, p.fail(op, ErrIncompatibleType)
	}
	data, err := p.contents(op)
	if err != nil {
		return nil, err
	}
	if t == UTF8String {
		data = utf8Content(data)
	}
	return data, nil
}

// GetUTF8String returns a copy of the string held by a UTF8String
// parameter.
func (p *Param) GetUTF8String() (string, error) {
	data, err := p.stringContents("GetUTF8String", UTF8String)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetUTF8StringInto copies the string held by a UTF8String parameter to dst
// followed by a NUL terminator, and returns the length of the string. If dst
// is too small for the string and its terminator, the size it needs to be is
// returned with an error. If dst is exactly the size of the string, the error
// is ErrNoSpaceForTerminator.
func (p *Param) GetUTF8StringInto(dst []byte) (int, error) {
	const op = "GetUTF8StringInto"

	if dst == nil {
		return 0, raise(op, keyOf(p), ErrNullArgument)
	}
	data, err := p.stringContents(op, UTF8String)
	if err != nil {
		return 0, err
	}
	switch {
	case len(dst) == len(data):
		return len(data) + 1, p.fail(op, ErrNoSpaceForTerminator)
	case len(dst) < len(data):
		return len(data) + 1, p.fail(op, ErrBufferTooSmall)
	}
	n := copy(dst, data)
	dst[n] = 0
	return n, nil
}

// GetOctetString returns a copy of the contents of an OctetString
// parameter.
func (p *Param) GetOctetString() ([]byte, error) {
	data, err := p.stringContents("GetOctetString", OctetString)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// GetOctetStringInto copies the contents of an OctetString parameter to
// dst and returns the number of bytes copied. If dst is too small, the size
// it needs to be is returned with an error.
func (p *Param) GetOctetStringInto(dst []byte) (int, error) {
	const op = "GetOctetStringInto"

	if dst == nil {
		return 0, raise(op, keyOf(p), ErrNullArgument)
	}
	data, err := p.stringContents(op, OctetString)
	if err != nil {
		return 0, err
	}
	if len(dst) < len(data) {
		return len(data), p.fail(op, ErrBufferTooSmall)
	}
	return copy(dst, data), nil
}

func (p *Param) setString(op string, data []byte, t DataType) (Outcome, error) {
	if p.Type != t {
		return Outcome{}, p.fail(op, ErrIncompatibleType)
	}
	buf, err := p.buffer(op)
	if err != nil {
		return Outcome{}, err
	}
	p.ReturnSize = len(data)
	if buf == nil {
		return p.queried(len(data)), nil
	}
	if len(buf) < len(data) {
		return Outcome{}, p.fail(op, ErrBufferTooSmall)
	}
	n := copy(buf, data)
	if t == UTF8String && len(buf) > n {
		buf[n] = 0
	}
	return p.written(n), nil
}

// SetUTF8String stores s in a UTF8String parameter, up to the first NUL
// byte in s. A NUL terminator is appended if there is space for it. The
// return size doesn't include the terminator.
func (p *Param) SetUTF8String(s string) (Outcome, error) {
	const op = "SetUTF8String"

	if p == nil {
		return Outcome{}, raise(op, "", ErrNullArgument)
	}
	p.ReturnSize = 0
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return p.setString(op, []byte(s), UTF8String)
}

// SetOctetString stores a copy of b in an OctetString parameter.
func (p *Param) SetOctetString(b []byte) (Outcome, error) {
	const op = "SetOctetString"

	if p == nil || b == nil {
		return Outcome{}, raise(op, keyOf(p), ErrNullArgument)
	}
	p.ReturnSize = 0
	return p.setString(op, b, OctetString)
}
