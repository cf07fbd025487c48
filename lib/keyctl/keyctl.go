// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keyctl

// Provider resolves the two anchor keyrings a credential store works
// against. Implementations are safe for concurrent use.
type Provider interface {
	// SessionKeyring resolves the calling process's session keyring.
	// The session keyring is the primary anchor: every key operation
	// starts from it. Resolution does not create a session keyring if
	// the process has none.
	SessionKeyring() (Keyring, error)

	// PersistentKeyring resolves the calling user's persistent
	// keyring and links it into the session keyring, so that keys
	// anchored only in the persistent keyring remain findable through
	// session searches after a re-login. Not all kernels or sessions
	// grant one; callers treat failure as "no persistent backing".
	PersistentKeyring() (Keyring, error)
}

// Keyring is a kernel keyring holding keys and links to other keyrings.
type Keyring interface {
	// AddKey creates a "user"-type key with the given description and
	// payload, linked into this keyring. If the keyring already holds
	// a key with that description, its payload is replaced in place
	// (same key, same links).
	AddKey(description string, payload []byte) (Key, error)

	// Search finds a valid key by description, recursing into nested
	// keyrings. Returns ErrKeyNotFound when nothing valid matches.
	Search(description string) (Key, error)

	// Link links a key into this keyring, displacing any key of the
	// same description already linked here.
	Link(key Key) error
}

// Key is a single kernel key.
type Key interface {
	// ID is the kernel serial number of the key.
	ID() int32

	// Read returns the key's payload.
	Read() ([]byte, error)

	// Invalidate marks the key invalid immediately, so future
	// searches fail. The kernel garbage-collects invalidated keys
	// asynchronously; see the package notes on cache lag.
	Invalidate() error
}
