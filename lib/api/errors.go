// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
)

// ErrNoEntry reports that nothing is retrievable for a credential right
// now. Backends fold every platform condition that is observably "there
// is no value here" — never created, deleted, revoked, expired — into
// this one sentinel, because the underlying causes are not reliably
// distinguishable and callers should not branch on them.
var ErrNoEntry = errors.New("no entry found for credential")

// InvalidError reports caller-supplied data that was rejected, either
// by a backend's own validation or by the platform itself. Field names
// the offending input ("service", "target", "secret", ...).
type InvalidError struct {
	Field  string
	Reason string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NoStorageAccessError reports that the secure storage facility itself
// is unreachable or ungranted — for example, no session keyring can be
// resolved for the calling process. This is distinct from ErrNoEntry:
// the problem is the store, not the entry.
type NoStorageAccessError struct {
	Cause error
}

func (e *NoStorageAccessError) Error() string {
	return fmt.Sprintf("cannot access secure storage: %v", e.Cause)
}

func (e *NoStorageAccessError) Unwrap() error {
	return e.Cause
}

// PlatformError wraps a platform-native failure that fits no other
// category. The cause is retained for diagnostics but callers should
// treat it as opaque.
type PlatformError struct {
	Cause error
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("platform failure: %v", e.Cause)
}

func (e *PlatformError) Unwrap() error {
	return e.Cause
}
