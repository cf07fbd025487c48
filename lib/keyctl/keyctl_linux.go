// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package keyctl

import (
	"errors"
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// All keys managed by this package are "user"-type keys: arbitrary
// payloads held in kernel memory, readable by the owning user.
const keyType = "user"

// System returns the syscall-backed provider for the running kernel.
// The provider is stateless; every call resolves keyrings and keys
// afresh through keyctl(2).
func System() Provider {
	return systemProvider{}
}

// Supported probes whether the running kernel has the key management
// facility at all. A search on the thread keyring is the cheapest
// probe: any result other than ENOSYS means the syscalls exist.
func Supported() error {
	_, err := unix.KeyctlSearch(unix.KEY_SPEC_THREAD_KEYRING, keyType, "keyutils-store-probe", 0)
	if errors.Is(err, syscall.ENOSYS) {
		return ErrNotSupported
	}
	return nil
}

type systemProvider struct{}

func (systemProvider) SessionKeyring() (Keyring, error) {
	// create=false: a process without a session keyring is a storage
	// access failure, not something to paper over by creating one
	// that would be invisible to the rest of the session.
	id, err := unix.KeyctlGetKeyringID(unix.KEY_SPEC_SESSION_KEYRING, false)
	if err != nil {
		return nil, fmt.Errorf("resolving session keyring: %w", classify(err))
	}
	return &systemKeyring{id: id}, nil
}

func (systemProvider) PersistentKeyring() (Keyring, error) {
	// KEYCTL_GET_PERSISTENT with uid -1 resolves the calling user's
	// persistent keyring, creating it if needed, and links it into
	// the destination (here the session keyring). That link is what
	// keeps keys reachable through session searches after re-login.
	id, err := unix.KeyctlInt(unix.KEYCTL_GET_PERSISTENT, -1, unix.KEY_SPEC_SESSION_KEYRING, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("resolving persistent keyring: %w", classify(err))
	}
	return &systemKeyring{id: id}, nil
}

type systemKeyring struct {
	id int
}

func (k *systemKeyring) AddKey(description string, payload []byte) (Key, error) {
	if description == "" {
		return nil, ErrInvalidDescription
	}
	id, err := unix.AddKey(keyType, description, payload, k.id)
	if err != nil {
		return nil, fmt.Errorf("add_key %q: %w", description, classify(err))
	}
	return &systemKey{id: int32(id)}, nil
}

func (k *systemKeyring) Search(description string) (Key, error) {
	if description == "" {
		return nil, ErrInvalidDescription
	}
	// Destination 0: do not auto-link the found key anywhere. The
	// credential store re-links explicitly so both anchors are
	// repaired on the same code path.
	id, err := unix.KeyctlSearch(k.id, keyType, description, 0)
	if err != nil {
		return nil, fmt.Errorf("searching for %q: %w", description, classify(err))
	}
	return &systemKey{id: int32(id)}, nil
}

func (k *systemKeyring) Link(key Key) error {
	if _, err := unix.KeyctlInt(unix.KEYCTL_LINK, int(key.ID()), k.id, 0, 0); err != nil {
		return fmt.Errorf("linking key %d: %w", key.ID(), classify(err))
	}
	return nil
}

type systemKey struct {
	id int32
}

func (k *systemKey) ID() int32 {
	return k.id
}

func (k *systemKey) Read() ([]byte, error) {
	// First call sizes the payload; second call fills the buffer. The
	// payload can be replaced between the two calls, so retry when it
	// no longer fits.
	for {
		size, err := unix.KeyctlBuffer(unix.KEYCTL_READ, int(k.id), nil, 0)
		if err != nil {
			return nil, fmt.Errorf("sizing key %d: %w", k.id, classify(err))
		}
		buffer := make([]byte, size)
		read, err := unix.KeyctlBuffer(unix.KEYCTL_READ, int(k.id), buffer, 0)
		if err != nil {
			return nil, fmt.Errorf("reading key %d: %w", k.id, classify(err))
		}
		if read <= len(buffer) {
			return buffer[:read], nil
		}
	}
}

func (k *systemKey) Invalidate() error {
	if _, err := unix.KeyctlInt(unix.KEYCTL_INVALIDATE, int(k.id), 0, 0, 0); err != nil {
		return fmt.Errorf("invalidating key %d: %w", k.id, classify(err))
	}
	return nil
}

// classify maps an errno from keyctl(2)/add_key(2) onto the package's
// sentinel errors. Unrecognized errnos pass through unchanged.
func classify(err error) error {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return err
	}
	switch errno {
	case unix.ENOKEY:
		return ErrKeyNotFound
	case unix.EKEYREVOKED:
		return ErrKeyRevoked
	case unix.EKEYEXPIRED:
		return ErrKeyExpired
	case unix.EACCES, unix.EPERM:
		return ErrAccessDenied
	case unix.EINVAL:
		return ErrInvalidArguments
	case unix.ENOSYS:
		return ErrNotSupported
	case unix.EDQUOT:
		return ErrQuotaExceeded
	}
	return err
}
