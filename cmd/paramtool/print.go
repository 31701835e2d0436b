// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/canonical/go-params"
)

// formatValue returns a human readable rendering of the contents of p.
func formatValue(p *params.Param) (string, error) {
	if p.Type.IsPtr() {
		if p.Ref == nil {
			return "(query)", nil
		}
		if p.Ref.IsNil() {
			return "(null)", nil
		}
	} else if p.Data == nil {
		return "(query)", nil
	}

	switch p.Type {
	case params.Integer, params.UnsignedInteger:
		x, err := p.GetBigInt()
		if err != nil {
			return "", err
		}
		return x.String(), nil
	case params.Real:
		v, err := p.GetDouble()
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case params.UTF8String:
		s, err := p.GetUTF8String()
		if err != nil {
			return "", err
		}
		return strconv.Quote(s), nil
	case params.UTF8Ptr:
		v, err := p.GetUTF8Ptr()
		if err != nil {
			return "", err
		}
		return strconv.Quote(v.String()), nil
	case params.OctetString:
		b, err := p.GetOctetString()
		if err != nil {
			return "", err
		}
		return hex.EncodeToString(b), nil
	case params.OctetPtr:
		v, err := p.GetOctetPtr()
		if err != nil {
			return "", err
		}
		return hex.EncodeToString(v.Bytes()), nil
	default:
		return "", fmt.Errorf("invalid type %v", p.Type)
	}
}

func printParam(w io.Writer, p *params.Param) error {
	value, err := formatValue(p)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", p.Key, p.Type, p.DataSize, value)
	return err
}
