// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package params

func (p *Param) getPtr(op string, t DataType) (View, error) {
	if p == nil {
		return View{}, raise(op, "", ErrNullArgument)
	}
	if p.Type != t {
		return View{}, p.fail(op, ErrIncompatibleType)
	}
	if p.Ref == nil {
		return View{}, p.fail(op, ErrNullArgument)
	}
	return *p.Ref, nil
}

func (p *Param) setPtr(op string, v View, t DataType) (Outcome, error) {
	if p == nil {
		return Outcome{}, raise(op, "", ErrNullArgument)
	}
	p.ReturnSize = 0
	if p.Type != t {
		return Outcome{}, p.fail(op, ErrIncompatibleType)
	}
	if p.Ref == nil {
		return p.queried(v.Len()), nil
	}
	*p.Ref = v
	return p.written(v.Len()), nil
}

// GetUTF8Ptr returns the borrowed string referenced by a UTF8Ptr
// parameter.
func (p *Param) GetUTF8Ptr() (View, error) {
	return p.getPtr("GetUTF8Ptr", UTF8Ptr)
}

// SetUTF8Ptr makes a UTF8Ptr parameter reference s without copying it. The
// caller must keep s alive for as long as the parameter is in use.
func (p *Param) SetUTF8Ptr(s string) (Outcome, error) {
	return p.setPtr("SetUTF8Ptr", BorrowString(s), UTF8Ptr)
}

// GetOctetPtr returns the borrowed bytes referenced by an OctetPtr
// parameter.
func (p *Param) GetOctetPtr() (View, error) {
	return p.getPtr("GetOctetPtr", OctetPtr)
}

// SetOctetPtr makes an OctetPtr parameter reference b without copying it.
// The caller must not modify b for as long as the parameter is in use.
func (p *Param) SetOctetPtr(b []byte) (Outcome, error) {
	return p.setPtr("SetOctetPtr", BorrowBytes(b), OctetPtr)
}

// GetUTF8StringPtr returns a view of the string held by a UTF8String
// parameter, or referenced by a UTF8Ptr parameter.
func (p *Param) GetUTF8StringPtr() (View, error) {
	const op = "GetUTF8StringPtr"

	if p != nil && p.Type == UTF8String {
		data, err := p.stringContents(op, UTF8String)
		if err != nil {
			return View{}, err
		}
		return BorrowBytes(data), nil
	}
	return p.getPtr(op, UTF8Ptr)
}

// GetOctetStringPtr returns a view of the contents of an OctetString
// parameter, or of the bytes referenced by an OctetPtr parameter.
func (p *Param) GetOctetStringPtr() (View, error) {
	const op = "GetOctetStringPtr"

	if p != nil && p.Type == OctetString {
		data, err := p.stringContents(op, OctetString)
		if err != nil {
			return View{}, err
		}
		return BorrowBytes(data), nil
	}
	return p.getPtr(op, OctetPtr)
}

// SetOctetStringOrPtr stores b in an OctetString parameter, or makes an
// OctetPtr parameter reference it.
func (p *Param) SetOctetStringOrPtr(b []byte) (Outcome, error) {
	const op = "SetOctetStringOrPtr"

	if p == nil {
		return Outcome{}, raise(op, "", ErrNullArgument)
	}
	switch p.Type {
	case OctetString:
		if b == nil {
			return Outcome{}, raise(op, p.Key, ErrNullArgument)
		}
		p.ReturnSize = 0
		return p.setString(op, b, OctetString)
	case OctetPtr:
		return p.setPtr(op, BorrowBytes(b), OctetPtr)
	default:
		p.ReturnSize = 0
		return Outcome{}, p.fail(op, ErrIncompatibleType)
	}
}
