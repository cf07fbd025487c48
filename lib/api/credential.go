// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

// Persistence classifies how long a backend's entries survive.
type Persistence int

const (
	// PersistUntilLogout means entries vanish when the login session ends.
	PersistUntilLogout Persistence = iota
	// PersistUntilReboot means entries survive logout but not reboot.
	PersistUntilReboot
	// PersistAcrossReboots means entries are durable on disk.
	PersistAcrossReboots
)

// String returns the persistence class as a short label.
func (p Persistence) String() string {
	switch p {
	case PersistUntilLogout:
		return "until-logout"
	case PersistUntilReboot:
		return "until-reboot"
	case PersistAcrossReboots:
		return "across-reboots"
	default:
		return "unknown"
	}
}

// Credential is the operations contract a backend's credential handle
// implements. A handle carries the coordinates of one logical entry,
// never the secret itself; every call resolves the entry in the
// underlying store afresh, so handles are cheap values that are safe to
// share between goroutines.
type Credential interface {
	// SetSecret stores the secret, creating the entry if needed and
	// replacing any previous value. An empty secret is rejected with
	// an InvalidError.
	SetSecret(secret []byte) error

	// GetSecret returns the stored secret bytes. Returns ErrNoEntry
	// if no value is retrievable.
	GetSecret() ([]byte, error)

	// DeleteCredential removes the entry. Returns ErrNoEntry if there
	// is nothing to delete.
	DeleteCredential() error

	// GetCredential checks that the entry currently exists, without
	// returning the secret through this path. On success it returns a
	// credential handle for the entry (backends without per-entry
	// ambiguity return the receiver itself); otherwise ErrNoEntry.
	GetCredential() (Credential, error)

	// Specifiers reports the original (user, service) pair the handle
	// was derived from, when it was derived rather than addressed by
	// an explicit target. Introspection only — never used for lookup.
	Specifiers() (user, service string, ok bool)
}

// Store is the construction contract of a current-generation backend.
type Store interface {
	// Build constructs a credential handle for the given service and
	// user. Modifiers carry optional string-keyed adjustments; which
	// keys are recognized is backend-specific, and unrecognized keys
	// are rejected with an InvalidError. Building a credential does
	// not create an entry in the store.
	Build(service, user string, modifiers map[string]string) (Credential, error)

	// Vendor identifies the backend implementation, for diagnostics.
	Vendor() string

	// ID is a stable identity for this store instance, distinct
	// across instances. Diagnostics only.
	ID() string

	// Persistence reports how long this backend's entries survive.
	Persistence() Persistence
}

// Builder is the construction contract of the older API generation.
// It has no configuration surface and no modifier map; an explicit
// target is passed positionally instead.
type Builder interface {
	// Build constructs a credential handle with a derived description.
	Build(service, user string) (Credential, error)

	// BuildWithTarget constructs a credential handle whose description
	// is the target string verbatim. An empty target is rejected with
	// an InvalidError rather than treated as "derive instead".
	BuildWithTarget(target, service, user string) (Credential, error)

	// Persistence reports how long this backend's entries survive.
	Persistence() Persistence
}
