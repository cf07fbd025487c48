// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"sync"
)

// The default-store registry is deliberately explicit: a program
// installs exactly one store near its entry point and releases it on
// teardown. There is no implicit fallback — entry construction fails
// until SetDefaultStore has been called — so a missing installation is
// a loud startup error rather than a silently wrong backend.

var (
	defaultStoreMu sync.Mutex
	defaultStore   Store
)

// ErrNoDefaultStore reports that entry construction was attempted
// before a default store was installed.
var ErrNoDefaultStore = errors.New("no default credential store installed")

// ErrDefaultStoreSet reports an attempt to install a second default
// store without releasing the first.
var ErrDefaultStoreSet = errors.New("a default credential store is already installed")

// SetDefaultStore installs the process-wide default store. Fails if a
// store is already installed; call ReleaseDefaultStore first to swap.
func SetDefaultStore(store Store) error {
	if store == nil {
		return &InvalidError{Field: "store", Reason: "cannot be nil"}
	}
	defaultStoreMu.Lock()
	defer defaultStoreMu.Unlock()
	if defaultStore != nil {
		return ErrDefaultStoreSet
	}
	defaultStore = store
	return nil
}

// DefaultStore returns the installed default store, or
// ErrNoDefaultStore if none has been installed.
func DefaultStore() (Store, error) {
	defaultStoreMu.Lock()
	defer defaultStoreMu.Unlock()
	if defaultStore == nil {
		return nil, ErrNoDefaultStore
	}
	return defaultStore, nil
}

// ReleaseDefaultStore uninstalls the default store. Entries already
// built keep working; only new NewEntry calls are affected. Calling
// it with no store installed is a no-op.
func ReleaseDefaultStore() {
	defaultStoreMu.Lock()
	defer defaultStoreMu.Unlock()
	defaultStore = nil
}
