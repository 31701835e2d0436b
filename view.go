// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package params

import "unsafe"

// View is a borrowed, read-only reference to storage owned by someone else.
// It is what UTF8Ptr and OctetPtr parameters exchange. A View doesn't keep
// the storage valid or immutable: the owner must keep it unchanged for as
// long as the View is in use.
type View struct {
	b     []byte
	valid bool
}

// BorrowBytes returns a View of b without copying it. A nil b returns the
// nil View.
func BorrowBytes(b []byte) View {
	return View{b: b, valid: b != nil}
}

// BorrowString returns a View of s without copying it.
func BorrowString(s string) View {
	return View{b: unsafe.Slice(unsafe.StringData(s), len(s)), valid: true}
}

// IsNil indicates whether this View references nothing.
func (v View) IsNil() bool {
	return !v.valid
}

// Len returns the size of the referent.
func (v View) Len() int {
	return len(v.b)
}

// Bytes returns the referent. It must not be modified.
func (v View) Bytes() []byte {
	return v.b
}

// String returns the referent as a string without copying it.
func (v View) String() string {
	if len(v.b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(v.b), len(v.b))
}
