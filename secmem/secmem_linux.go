// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package secmem

import (
	"golang.org/x/sys/unix"
	"golang.org/x/xerrors"
)

func mapRegion(n int) ([]byte, error) {
	b, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, xerrors.Errorf("mmap failed: %w", err)
	}
	if err := unix.Mlock(b); err != nil {
		unix.Munmap(b)
		return nil, xerrors.Errorf("mlock failed: %w", err)
	}
	if err := unix.Madvise(b, unix.MADV_DONTDUMP); err != nil {
		unix.Munlock(b)
		unix.Munmap(b)
		return nil, xerrors.Errorf("madvise(MADV_DONTDUMP) failed: %w", err)
	}
	return b, nil
}

func unmapRegion(b []byte) error {
	var firstErr error
	if err := unix.Munlock(b); err != nil {
		firstErr = xerrors.Errorf("munlock failed: %w", err)
	}
	if err := unix.Munmap(b); err != nil && firstErr == nil {
		firstErr = xerrors.Errorf("munmap failed: %w", err)
	}
	return firstErr
}
