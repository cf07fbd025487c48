// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keyctl

import (
	"fmt"
	"sync"
)

// Memory is an in-process Provider with kernel-faithful semantics:
// keys are shared objects linked into rings, add-or-replace updates a
// directly-linked key in place, links displace same-description keys,
// searches recurse into nested keyrings, and invalidated keys fail
// every operation. Unlike the kernel, invalidation takes effect
// immediately with no cache lag, which makes tests deterministic.
//
// Memory also exposes hooks that simulate keyring lifecycle events a
// live kernel produces asynchronously: DropSessionLinks (re-login) and
// DropPersistentLinks (persistent keyring garbage collection).
type Memory struct {
	mu                 sync.Mutex
	nextID             int32
	session            *memoryRing
	persistent         *memoryRing
	persistentDisabled bool
}

// NewMemory returns an in-process provider with both a session and a
// persistent keyring available.
func NewMemory() *Memory {
	m := &Memory{nextID: 1000}
	m.session = &memoryRing{store: m, name: "session"}
	m.persistent = &memoryRing{store: m, name: "persistent"}
	return m
}

// NewMemoryWithoutPersistent returns an in-process provider whose
// persistent keyring is unavailable, for exercising the degraded
// "session only" mode.
func NewMemoryWithoutPersistent() *Memory {
	m := NewMemory()
	m.persistentDisabled = true
	return m
}

// SessionKeyring implements Provider.
func (m *Memory) SessionKeyring() (Keyring, error) {
	return m.session, nil
}

// PersistentKeyring implements Provider. As with the kernel facility,
// resolving the persistent keyring links it into the session keyring.
func (m *Memory) PersistentKeyring() (Keyring, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.persistentDisabled {
		return nil, fmt.Errorf("resolving persistent keyring: %w", ErrNotSupported)
	}
	m.session.linkRingLocked(m.persistent)
	return m.persistent, nil
}

// DropSessionLinks removes every key linked directly into the session
// keyring, leaving nested keyring links intact. This simulates the
// state after a logout and re-login: the new session keyring holds no
// keys of its own, but keys anchored in the persistent keyring remain
// reachable through the nested link.
func (m *Memory) DropSessionLinks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.keys = nil
}

// DropPersistentLinks removes every key linked into the persistent
// keyring, simulating its periodic garbage collection. Keys still
// linked in the session keyring survive.
func (m *Memory) DropPersistentLinks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persistent.keys = nil
}

// SessionHolds reports whether the session keyring directly links a
// valid key with the given description.
func (m *Memory) SessionHolds(description string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.holdsLocked(description)
}

// PersistentHolds reports whether the persistent keyring directly
// links a valid key with the given description.
func (m *Memory) PersistentHolds(description string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.persistent.holdsLocked(description)
}

// RevokeKey marks the named key revoked wherever it is linked, so that
// searches and reads fail with ErrKeyRevoked. Simulates an external
// revocation (keyctl revoke from another process, timeout handling).
// Returns false if no valid key with that description exists.
func (m *Memory) RevokeKey(description string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := m.session.findLocked(description, map[*memoryRing]bool{})
	if key == nil || key.invalidated {
		return false
	}
	key.revoked = true
	return true
}

type memoryRing struct {
	store  *Memory
	name   string
	keys   []*memoryKey
	nested []*memoryRing
}

type memoryKey struct {
	store       *Memory
	id          int32
	description string
	payload     []byte
	invalidated bool
	revoked     bool
}

func (r *memoryRing) AddKey(description string, payload []byte) (Key, error) {
	if description == "" {
		return nil, ErrInvalidDescription
	}
	if len(payload) == 0 {
		// "user"-type keys cannot hold a zero-length payload.
		return nil, fmt.Errorf("add_key %q: %w", description, ErrInvalidArguments)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// A directly-linked valid key with the same description is
	// updated in place: same key object, same ID, links elsewhere
	// preserved.
	for _, key := range r.keys {
		if key.description == description && !key.invalidated && !key.revoked {
			key.payload = append([]byte(nil), payload...)
			return key, nil
		}
	}

	r.store.nextID++
	key := &memoryKey{
		store:       r.store,
		id:          r.store.nextID,
		description: description,
		payload:     append([]byte(nil), payload...),
	}
	r.linkKeyLocked(key)
	return key, nil
}

func (r *memoryRing) Search(description string) (Key, error) {
	if description == "" {
		return nil, ErrInvalidDescription
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	key := r.findLocked(description, map[*memoryRing]bool{})
	if key == nil {
		return nil, fmt.Errorf("searching for %q: %w", description, ErrKeyNotFound)
	}
	if key.revoked {
		return nil, fmt.Errorf("searching for %q: %w", description, ErrKeyRevoked)
	}
	return key, nil
}

func (r *memoryRing) Link(key Key) error {
	target, ok := key.(*memoryKey)
	if !ok || target.store != r.store {
		return fmt.Errorf("linking key %d: %w", key.ID(), ErrInvalidArguments)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if target.invalidated {
		return fmt.Errorf("linking key %d: %w", target.id, ErrKeyNotFound)
	}
	if target.revoked {
		return fmt.Errorf("linking key %d: %w", target.id, ErrKeyRevoked)
	}
	r.linkKeyLocked(target)
	return nil
}

// linkKeyLocked links a key into the ring, displacing any existing key
// with the same description, as KEYCTL_LINK does.
func (r *memoryRing) linkKeyLocked(key *memoryKey) {
	kept := r.keys[:0]
	for _, existing := range r.keys {
		if existing == key || existing.description == key.description {
			continue
		}
		kept = append(kept, existing)
	}
	r.keys = append(kept, key)
}

func (r *memoryRing) linkRingLocked(nested *memoryRing) {
	for _, existing := range r.nested {
		if existing == nested {
			return
		}
	}
	r.nested = append(r.nested, nested)
}

// findLocked looks for a non-invalidated key by description, direct
// links first and then nested rings, mirroring kernel search order.
// Revoked keys are returned so the caller can report ErrKeyRevoked
// rather than not-found.
func (r *memoryRing) findLocked(description string, visited map[*memoryRing]bool) *memoryKey {
	if visited[r] {
		return nil
	}
	visited[r] = true
	for _, key := range r.keys {
		if key.description == description && !key.invalidated {
			return key
		}
	}
	for _, nested := range r.nested {
		if key := nested.findLocked(description, visited); key != nil {
			return key
		}
	}
	return nil
}

func (r *memoryRing) holdsLocked(description string) bool {
	for _, key := range r.keys {
		if key.description == description && !key.invalidated && !key.revoked {
			return true
		}
	}
	return false
}

func (k *memoryKey) ID() int32 {
	return k.id
}

func (k *memoryKey) Read() ([]byte, error) {
	k.store.mu.Lock()
	defer k.store.mu.Unlock()
	if k.invalidated {
		return nil, fmt.Errorf("reading key %d: %w", k.id, ErrKeyNotFound)
	}
	if k.revoked {
		return nil, fmt.Errorf("reading key %d: %w", k.id, ErrKeyRevoked)
	}
	return append([]byte(nil), k.payload...), nil
}

func (k *memoryKey) Invalidate() error {
	k.store.mu.Lock()
	defer k.store.mu.Unlock()
	if k.invalidated {
		return fmt.Errorf("invalidating key %d: %w", k.id, ErrKeyNotFound)
	}
	k.invalidated = true
	for index := range k.payload {
		k.payload[index] = 0
	}
	k.store.session.unlinkLocked(k)
	k.store.persistent.unlinkLocked(k)
	return nil
}

func (r *memoryRing) unlinkLocked(key *memoryKey) {
	kept := r.keys[:0]
	for _, existing := range r.keys {
		if existing != key {
			kept = append(kept, existing)
		}
	}
	r.keys = kept
}
