// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds plaintext secret material in process memory
// that is protected against swap and core dumps, and wiped on release.
// It is used on the short path between reading a secret from the user
// and handing it to the kernel keyring (and back).
package secret

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Buffer is an mmap-backed byte buffer outside the Go heap: mlocked so
// it cannot be swapped to disk, marked MADV_DONTDUMP so it never lands
// in a core dump, and invisible to the garbage collector so no copies
// are made behind the program's back. Close wipes and unmaps it.
//
// A Buffer is not safe for concurrent use, and its contents must not
// be accessed after Close.
type Buffer struct {
	region []byte
}

// NewFromBytes copies source into a protected buffer and zeroes the
// source in place, so the caller's slice no longer holds the secret.
// The source must be non-empty.
func NewFromBytes(source []byte) (*Buffer, error) {
	if len(source) == 0 {
		return nil, fmt.Errorf("secret: empty source")
	}

	region, err := unix.Mmap(-1, 0, len(source), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: mmap: %w", err)
	}
	if err := unix.Mlock(region); err != nil {
		unix.Munmap(region)
		return nil, fmt.Errorf("secret: mlock: %w", err)
	}
	if err := unix.Madvise(region, unix.MADV_DONTDUMP); err != nil {
		unix.Munlock(region)
		unix.Munmap(region)
		return nil, fmt.Errorf("secret: madvise: %w", err)
	}

	copy(region, source)
	wipe(source)
	return &Buffer{region: region}, nil
}

// Bytes returns the protected contents. The slice aliases the mmap
// region: do not retain it past Close.
func (b *Buffer) Bytes() []byte {
	return b.region
}

// Len returns the secret's size in bytes.
func (b *Buffer) Len() int {
	return len(b.region)
}

// Close wipes the contents and releases the memory. Idempotent.
func (b *Buffer) Close() error {
	if b.region == nil {
		return nil
	}
	wipe(b.region)
	if err := unix.Munlock(b.region); err != nil {
		// Still unmap; the mapping disappears at process exit anyway.
		unix.Munmap(b.region)
		b.region = nil
		return fmt.Errorf("secret: munlock: %w", err)
	}
	err := unix.Munmap(b.region)
	b.region = nil
	if err != nil {
		return fmt.Errorf("secret: munmap: %w", err)
	}
	return nil
}

func wipe(data []byte) {
	for index := range data {
		data[index] = 0
	}
}
