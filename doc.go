// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

/*
Package params implements self describing, typed parameters that are used
to exchange values between a cryptographic library and pluggable providers
of algorithms, without either side sharing type definitions with the other.

A parameter (Param) associates a key with a DataType and a buffer that is
owned by the caller. Parameters are passed around in a Sequence, which is
terminated by an end marker (see End). Typed accessors read and write the
value of a parameter, converting between integers of different widths and
signedness, and between integers and reals, whilst preserving the exact
value. A conversion that would lose information fails.

# Quick start

A caller that wants to retrieve values from a provider constructs a sequence
that references its own variables:

	var bits int32
	var name [64]byte
	ps := params.Sequence{
		params.ConstructInt32("bits", &bits),
		params.ConstructUTF8String("name", name[:]),
		params.End()}

The provider locates the parameters it knows about and sets them:

	if p := ps.Locate("bits"); p != nil {
		if _, err := p.SetInt32(2048); err != nil {
			return err
		}
	}

# Size queries

A parameter without storage is a query. Setting it succeeds without storing
anything, and reports the size of the storage that it needs in both the
returned Outcome and the parameter's ReturnSize field. A caller can then
allocate the storage and try again.

# Borrowed views

UTF8Ptr and OctetPtr parameters exchange a View of storage owned by someone
else rather than copying it. The owner of the storage must keep it valid and
unchanged for as long as the view is in use.

# Errors

Every failure returns an *Error that identifies the operation, the key of the
parameter and a Reason, which can be tested for with errors.Is. Every failure
is also reported once to the error sink configured with SetErrorSink.

Nothing in this package is safe to use concurrently with the same parameter.

# Sensitive values

Get1OctetString and ConcatOctetStrings return buffers from the allocator
configured with SetAllocator. The secmem package provides one that keeps
buffers out of swap and core dumps. The wire package serializes a sequence
so that it can be passed to another process.
*/
package params
