// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package params

import (
	"fmt"
	"unsafe"
)

// DataType describes how the contents of a parameter are to be interpreted.
type DataType uint8

const (
	// Integer is a signed integer of any width in native byte order.
	Integer DataType = 1

	// UnsignedInteger is an unsigned integer of any width in native byte
	// order.
	UnsignedInteger DataType = 2

	// Real is an IEEE-754 floating point number in native byte order. 8
	// and 4 byte encodings are supported.
	Real DataType = 3

	// UTF8String is a UTF-8 string, optionally NUL terminated.
	UTF8String DataType = 4

	// OctetString is an arbitrary byte string.
	OctetString DataType = 5

	// UTF8Ptr is a borrowed reference to a UTF-8 string.
	UTF8Ptr DataType = 6

	// OctetPtr is a borrowed reference to a byte string.
	OctetPtr DataType = 7
)

var dataTypeNames = map[DataType]string{
	Integer:         "integer",
	UnsignedInteger: "unsigned_integer",
	Real:            "real",
	UTF8String:      "utf8_string",
	OctetString:     "octet_string",
	UTF8Ptr:         "utf8_ptr",
	OctetPtr:        "octet_ptr",
}

func (t DataType) String() string {
	if s, ok := dataTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("DataType(%d)", uint8(t))
}

// IsValid indicates whether t is a known data type.
func (t DataType) IsValid() bool {
	_, ok := dataTypeNames[t]
	return ok
}

// IsPtr indicates whether t is one of the borrowed reference types.
func (t DataType) IsPtr() bool {
	return t == UTF8Ptr || t == OctetPtr
}

// ParseDataType returns the DataType with the supplied name, as returned
// from DataType.String.
func ParseDataType(s string) (DataType, error) {
	for t, name := range dataTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unrecognized data type %q", s)
}

// Unmodified is the value of Param.ReturnSize for a parameter that hasn't
// been the subject of a set operation since it was constructed.
const Unmodified = -1

// Param is a self describing parameter. It associates a key with a typed
// value stored in a buffer that the parameter doesn't own.
//
// For all types other than UTF8Ptr and OctetPtr, the value is stored in the
// first DataSize bytes of Data. A parameter with a nil Data has no storage:
// setting it reports the size the storage would need to be, and getting it
// fails.
//
// For UTF8Ptr and OctetPtr, Ref references a View that is updated in place
// by set operations, and DataSize is the size of the referent when known. A
// parameter with a nil Ref has no storage.
//
// ReturnSize is updated by every set operation, and is Unmodified
// otherwise.
type Param struct {
	Key        string
	Type       DataType
	Data       []byte
	Ref        *View
	DataSize   int
	ReturnSize int
}

// IsEnd indicates whether this is the marker that terminates a sequence.
func (p *Param) IsEnd() bool {
	return p.Key == ""
}

// Modified indicates whether a set operation has been performed on p since
// it was constructed or last marked as unmodified.
func (p *Param) Modified() bool {
	return p != nil && p.ReturnSize != Unmodified
}

// buffer returns the storage of a non-pointer parameter. It returns nil and
// no error for a parameter without storage.
func (p *Param) buffer(op string) ([]byte, error) {
	if p.Data == nil {
		return nil, nil
	}
	if p.DataSize < 0 || p.DataSize > len(p.Data) {
		return nil, raise(op, p.Key, ErrBadDataSize)
	}
	return p.Data[:p.DataSize], nil
}

// contents is buffer for get operations, which require storage.
func (p *Param) contents(op string) ([]byte, error) {
	if p.Data == nil {
		return nil, raise(op, p.Key, ErrNullArgument)
	}
	return p.buffer(op)
}

func (p *Param) fail(op string, reason Reason) error {
	return raise(op, p.Key, reason)
}

// Outcome is the result of a set operation that succeeded. Either N bytes
// were written to the parameter's storage, or the parameter has no storage
// and Query is true, in which case N is the number of bytes the storage
// needs.
type Outcome struct {
	N     int
	Query bool
}

func (p *Param) written(n int) Outcome {
	p.ReturnSize = n
	return Outcome{N: n}
}

func (p *Param) queried(n int) Outcome {
	p.ReturnSize = n
	return Outcome{N: n, Query: true}
}

// Sequence is an ordered list of parameters. A sequence ends at the first
// parameter for which IsEnd returns true, or at the end of the slice. Keys
// should be unique within a sequence, but where they aren't, the first
// parameter with a key takes precedence.
type Sequence []Param

// Len returns the number of parameters in the sequence before its end.
func (s Sequence) Len() int {
	for i := range s {
		if s[i].IsEnd() {
			return i
		}
	}
	return len(s)
}

// Locate returns the first parameter with the specified key. It returns nil
// if the key is empty or no parameter matches.
func (s Sequence) Locate(key string) *Param {
	if key == "" {
		return nil
	}
	for i := range s {
		p := &s[i]
		if p.IsEnd() {
			break
		}
		if p.Key == key {
			return p
		}
	}
	return nil
}

// SetAllUnmodified marks every parameter in the sequence as unmodified, so
// that the sequence can be reused for another call.
func (s Sequence) SetAllUnmodified() {
	for i := range s {
		if s[i].IsEnd() {
			return
		}
		s[i].ReturnSize = Unmodified
	}
}

// Keys returns the keys of the parameters in the sequence, in order.
func (s Sequence) Keys() (keys []string) {
	for i := 0; i < s.Len(); i++ {
		keys = append(keys, s[i].Key)
	}
	return keys
}

func construct(key string, t DataType, data []byte, size int) Param {
	return Param{Key: key, Type: t, Data: data, DataSize: size, ReturnSize: Unmodified}
}

type fixedWidth interface {
	~int32 | ~uint32 | ~int64 | ~uint64 | ~int | ~uint | ~uintptr | ~float32 | ~float64
}

// bytesOf returns the memory of v, which is used as parameter storage
// without copying.
func bytesOf[T fixedWidth](v *T) []byte {
	if v == nil {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

func constructFixed[T fixedWidth](key string, t DataType, v *T) Param {
	var zero T
	return construct(key, t, bytesOf(v), int(unsafe.Sizeof(zero)))
}

// End returns the marker that terminates a sequence.
func End() Param {
	return Param{ReturnSize: Unmodified}
}

// ConstructInt32 returns an Integer parameter that uses *v as its
// storage. A nil v returns a parameter without storage.
func ConstructInt32(key string, v *int32) Param {
	return constructFixed(key, Integer, v)
}

// ConstructUint32 returns an UnsignedInteger parameter that uses *v as its
// storage. A nil v returns a parameter without storage.
func ConstructUint32(key string, v *uint32) Param {
	return constructFixed(key, UnsignedInteger, v)
}

// ConstructInt64 returns an Integer parameter that uses *v as its
// storage. A nil v returns a parameter without storage.
func ConstructInt64(key string, v *int64) Param {
	return constructFixed(key, Integer, v)
}

// ConstructUint64 returns an UnsignedInteger parameter that uses *v as its
// storage. A nil v returns a parameter without storage.
func ConstructUint64(key string, v *uint64) Param {
	return constructFixed(key, UnsignedInteger, v)
}

// ConstructInt returns an Integer parameter that uses *v as its storage.
func ConstructInt(key string, v *int) Param {
	return constructFixed(key, Integer, v)
}

// ConstructUint returns an UnsignedInteger parameter that uses *v as its
// storage.
func ConstructUint(key string, v *uint) Param {
	return constructFixed(key, UnsignedInteger, v)
}

// ConstructUintptr returns an UnsignedInteger parameter that uses *v as its
// storage. This is the equivalent of a size_t parameter.
func ConstructUintptr(key string, v *uintptr) Param {
	return constructFixed(key, UnsignedInteger, v)
}

// ConstructTime returns an Integer parameter that uses *v, a count of
// seconds since the Unix epoch, as its storage. This is the equivalent of a
// time_t parameter.
func ConstructTime(key string, v *int64) Param {
	return constructFixed(key, Integer, v)
}

// ConstructDouble returns an 8 byte Real parameter that uses *v as its
// storage.
func ConstructDouble(key string, v *float64) Param {
	return constructFixed(key, Real, v)
}

// ConstructFloat32 returns a 4 byte Real parameter that uses *v as its
// storage.
func ConstructFloat32(key string, v *float32) Param {
	return constructFixed(key, Real, v)
}

// ConstructInteger returns an Integer parameter of arbitrary width, with
// buf as its storage in native byte order.
func ConstructInteger(key string, buf []byte) Param {
	return construct(key, Integer, buf, len(buf))
}

// ConstructUnsignedInteger returns an UnsignedInteger parameter of
// arbitrary width, with buf as its storage in native byte order.
func ConstructUnsignedInteger(key string, buf []byte) Param {
	return construct(key, UnsignedInteger, buf, len(buf))
}

// ConstructBigInt returns an UnsignedInteger parameter, with buf as its
// storage, for exchanging big integers.
func ConstructBigInt(key string, buf []byte) Param {
	return construct(key, UnsignedInteger, buf, len(buf))
}

// ConstructUTF8String returns a UTF8String parameter with buf as its
// storage.
func ConstructUTF8String(key string, buf []byte) Param {
	return construct(key, UTF8String, buf, len(buf))
}

// ConstructOctetString returns an OctetString parameter with buf as its
// storage.
func ConstructOctetString(key string, buf []byte) Param {
	return construct(key, OctetString, buf, len(buf))
}

// ConstructUTF8Ptr returns a UTF8Ptr parameter that updates *ref. The size
// of the referent is size, if known.
func ConstructUTF8Ptr(key string, ref *View, size int) Param {
	p := construct(key, UTF8Ptr, nil, size)
	p.Ref = ref
	return p
}

// ConstructOctetPtr returns an OctetPtr parameter that updates *ref. The
// size of the referent is size, if known.
func ConstructOctetPtr(key string, ref *View, size int) Param {
	p := construct(key, OctetPtr, nil, size)
	p.Ref = ref
	return p
}
