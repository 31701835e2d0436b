// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

//go:build !linux

package secmem

func mapRegion(n int) ([]byte, error) {
	return make([]byte, n), nil
}

func unmapRegion(b []byte) error {
	return nil
}
