// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keyctl

import "errors"

// Sentinel errors mirroring the kernel's errno taxonomy for key
// operations. Every Provider implementation reports failures as one of
// these (possibly wrapped with context), so callers can branch with
// errors.Is regardless of which provider is in use.
var (
	// ErrKeyNotFound: no matching valid key (ENOKEY).
	ErrKeyNotFound = errors.New("key not found")

	// ErrAccessDenied: the caller lacks permission on the key or
	// keyring (EACCES or EPERM).
	ErrAccessDenied = errors.New("access denied")

	// ErrKeyRevoked: the key exists but has been revoked (EKEYREVOKED).
	ErrKeyRevoked = errors.New("key revoked")

	// ErrKeyExpired: the key exists but has expired (EKEYEXPIRED).
	ErrKeyExpired = errors.New("key expired")

	// ErrInvalidDescription: the kernel rejected the key description.
	ErrInvalidDescription = errors.New("invalid key description")

	// ErrInvalidArguments: the kernel rejected the arguments, e.g. an
	// empty payload for a "user"-type key (EINVAL).
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrNotSupported: the kernel has no key management facility
	// (ENOSYS), or the operation is unavailable on this provider.
	ErrNotSupported = errors.New("kernel keyring not supported")

	// ErrQuotaExceeded: the user's key quota is exhausted (EDQUOT).
	ErrQuotaExceeded = errors.New("key quota exceeded")
)
