// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package wire

import (
	"github.com/fxamacker/cbor/v2"
	"golang.org/x/xerrors"

	"github.com/canonical/go-params"
)

const cborVersion = 1

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("wire: cannot initialize CBOR encoder: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("wire: cannot initialize CBOR decoder: " + err.Error())
	}
}

type cborEntry struct {
	_          struct{} `cbor:",toarray"`
	Key        string
	Type       uint8
	Flags      uint8
	DataSize   uint64
	ReturnSize int64
	Content    []byte
}

type cborDocument struct {
	Version uint        `cbor:"version"`
	Params  []cborEntry `cbor:"params"`
}

// MarshalCBOR encodes the parameters in ps that precede the end marker as
// the CBOR map
//
//	{"version": 1, "params": [[key, type, flags, data size, return size, contents], ...]}
//
// using Core Deterministic Encoding. The return size is -1 for Unmodified.
func MarshalCBOR(ps params.Sequence) ([]byte, error) {
	entries, err := entriesOf(ps)
	if err != nil {
		return nil, err
	}

	doc := cborDocument{
		Version: cborVersion,
		Params:  make([]cborEntry, 0, len(entries))}
	for _, e := range entries {
		doc.Params = append(doc.Params, cborEntry{
			Key:        e.key,
			Type:       uint8(e.typ),
			Flags:      e.flags,
			DataSize:   e.dataSize,
			ReturnSize: e.returnSize,
			Content:    e.content})
	}

	data, err := encMode.Marshal(&doc)
	if err != nil {
		return nil, xerrors.Errorf("cannot encode parameters: %w", err)
	}
	return data, nil
}

// UnmarshalCBOR decodes a sequence from the CBOR encoding. The returned
// sequence is terminated with an end marker.
func UnmarshalCBOR(data []byte) (params.Sequence, error) {
	var doc cborDocument
	if err := decMode.Unmarshal(data, &doc); err != nil {
		return nil, xerrors.Errorf("cannot decode CBOR: %w", err)
	}
	if doc.Version != cborVersion {
		return nil, formatError(-1, "unsupported version %d", doc.Version)
	}

	entries := make([]*entry, 0, len(doc.Params))
	for _, ce := range doc.Params {
		entries = append(entries, &entry{
			key:        ce.Key,
			typ:        params.DataType(ce.Type),
			flags:      ce.Flags,
			dataSize:   ce.DataSize,
			returnSize: ce.ReturnSize,
			content:    ce.Content})
	}
	return sequenceOf(entries)
}
