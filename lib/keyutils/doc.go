// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package keyutils is a credential store backend over the Linux kernel
// key management facility. Secrets are held as "user"-type keys in
// kernel memory, anchored in the calling process's session keyring and,
// when the kernel grants one, in the calling user's persistent keyring.
//
// Identity mapping. Each credential is addressed by a description
// string. With an explicit target the description is the target
// verbatim; otherwise it is derived from the store's delimiters as
// prefix + user + divider + service + suffix (by default
// "keyring:user@service"). A store configured with service_no_divider
// rejects services containing the divider, which guarantees distinct
// (service, user) pairs never derive the same description.
//
// Anchoring and link repair. A key added through this store is linked
// into both the session and persistent keyrings. After a logout the key
// survives only through the persistent keyring; after the persistent
// keyring's periodic garbage collection it survives only through the
// session keyring. Every successful read therefore re-links the key
// into both anchors, so a key in active use does not silently drift out
// of either one.
//
// Caveats. Keys live in kernel memory and vanish on reboot. Deleting a
// credential invalidates the key immediately, but the kernel's key
// caches can lag: a read issued in the same process within milliseconds
// of a delete may still see the old value. The store does not mask this
// window; callers needing a strict barrier must provide their own.
//
// Credential handles are immutable after construction and hold no
// secret material, so they are safe to share between goroutines; all
// mutable state is the kernel's.
package keyutils
