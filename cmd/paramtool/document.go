// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package main

import (
	"encoding/hex"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"

	"github.com/canonical/go-params"
)

// document is the YAML input to the encode command.
type document struct {
	Params []documentParam `yaml:"params"`
}

type documentParam struct {
	Key   string  `yaml:"key"`
	Type  string  `yaml:"type"`
	Size  int     `yaml:"size"`
	Value *string `yaml:"value"`
}

func parseDocument(data []byte) (*document, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, xerrors.Errorf("cannot parse document: %w", err)
	}
	return &doc, nil
}

func parseInteger(s string) (*big.Int, error) {
	x, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	return x, nil
}

func checkRange(x *big.Int, min, max *big.Int) error {
	if x.Cmp(min) < 0 || x.Cmp(max) > 0 {
		return fmt.Errorf("%v is out of range", x)
	}
	return nil
}

var (
	minInt32  = big.NewInt(math.MinInt32)
	maxInt32  = big.NewInt(math.MaxInt32)
	minInt64  = big.NewInt(math.MinInt64)
	maxInt64  = big.NewInt(math.MaxInt64)
	zero      = new(big.Int)
	maxUint32 = new(big.Int).SetUint64(math.MaxUint32)
	maxUint64 = new(big.Int).SetUint64(math.MaxUint64)
)

// push adds p to b. Integers are written as 4 or 8 byte fixed width values
// when a size is given, or with the minimal big number encoding when it
// isn't. An unsigned integer may also be given any other size, in which
// case it is zero padded to that size.
func (p *documentParam) push(b *params.Builder) error {
	t, err := params.ParseDataType(p.Type)
	if err != nil {
		return err
	}
	if p.Value == nil {
		return fmt.Errorf("missing value")
	}
	value := *p.Value

	switch t {
	case params.Integer:
		x, err := parseInteger(value)
		if err != nil {
			return err
		}
		switch p.Size {
		case 0:
			b.PushSignedBigInt(p.Key, x)
		case 4:
			if err := checkRange(x, minInt32, maxInt32); err != nil {
				return err
			}
			b.PushInt32(p.Key, int32(x.Int64()))
		case 8:
			if err := checkRange(x, minInt64, maxInt64); err != nil {
				return err
			}
			b.PushInt64(p.Key, x.Int64())
		default:
			return fmt.Errorf("unsupported size %d for %v", p.Size, t)
		}
	case params.UnsignedInteger:
		x, err := parseInteger(value)
		if err != nil {
			return err
		}
		switch p.Size {
		case 0:
			b.PushBigInt(p.Key, x)
		case 4:
			if err := checkRange(x, zero, maxUint32); err != nil {
				return err
			}
			b.PushUint32(p.Key, uint32(x.Uint64()))
		case 8:
			if err := checkRange(x, zero, maxUint64); err != nil {
				return err
			}
			b.PushUint64(p.Key, x.Uint64())
		default:
			b.PushBigIntPad(p.Key, x, p.Size)
		}
	case params.Real:
		if p.Size != 0 && p.Size != 8 {
			return fmt.Errorf("unsupported size %d for %v", p.Size, t)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return xerrors.Errorf("invalid real: %w", err)
		}
		b.PushDouble(p.Key, v)
	case params.UTF8String:
		b.PushUTF8String(p.Key, value)
	case params.UTF8Ptr:
		b.PushUTF8Ptr(p.Key, value)
	case params.OctetString, params.OctetPtr:
		data, err := hex.DecodeString(value)
		if err != nil {
			return xerrors.Errorf("invalid hex: %w", err)
		}
		if t == params.OctetString {
			b.PushOctetString(p.Key, data)
		} else {
			b.PushOctetPtr(p.Key, data)
		}
	}

	return nil
}

// build returns the sequence described by the document.
func (d *document) build() (params.Sequence, error) {
	b := params.NewBuilder()
	for i := range d.Params {
		p := &d.Params[i]
		if err := p.push(b); err != nil {
			return nil, xerrors.Errorf("cannot add parameter %d (%q): %w", i, p.Key, err)
		}
	}
	ps, err := b.Build()
	if err != nil {
		return nil, xerrors.Errorf("cannot build parameters: %w", err)
	}
	return ps, nil
}
