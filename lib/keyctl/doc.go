// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package keyctl is a thin interface onto the Linux kernel key
// management facility (add_key(2) / keyctl(2)) as used by the keyutils
// credential store: resolving the session and persistent keyrings, and
// adding, searching, linking, reading, and invalidating "user"-type
// keys.
//
// The package exposes the facility behind the Provider, Keyring, and
// Key interfaces. System returns the syscall-backed provider; NewMemory
// returns a fully in-process provider with kernel-faithful link and
// invalidation semantics, for tests and for consumers that need to run
// without a live kernel keyring.
//
// All failures are reported as the package's sentinel errors
// (ErrKeyNotFound, ErrAccessDenied, ...), which mirror the kernel's
// errno taxonomy. Callers translate these into their own error
// vocabulary; no errno value escapes this package unwrapped.
package keyctl
