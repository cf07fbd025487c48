// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package keyutils

// Live-kernel tests run the same lifecycle against the real keyctl
// syscalls. They mutate the invoking session's keyrings, so they only
// run when explicitly requested:
//
//	KEYUTILS_STORE_LIVE_TESTS=1 go test ./lib/keyutils/

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/bureau-foundation/keyutils-store/lib/api"
	"github.com/bureau-foundation/keyutils-store/lib/keyctl"
)

func liveStore(t *testing.T) *Store {
	t.Helper()
	if os.Getenv("KEYUTILS_STORE_LIVE_TESTS") != "1" {
		t.Skip("set KEYUTILS_STORE_LIVE_TESTS=1 to run against the live kernel")
	}
	if err := keyctl.Supported(); err != nil {
		t.Skipf("kernel keyring unavailable: %v", err)
	}
	store, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return store
}

// liveIdentity generates a distinct identity per test run, so stale
// keys from interrupted runs cannot collide with this one.
func liveIdentity(t *testing.T) string {
	return fmt.Sprintf("%s-%d", t.Name(), time.Now().UnixNano())
}

// waitNoEntry polls a read until it fails with ErrNoEntry, tolerating
// the kernel's short same-process cache lag after invalidation.
func waitNoEntry(t *testing.T, cred api.Credential) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		_, err := cred.GetSecret()
		if errors.Is(err, api.ErrNoEntry) {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("GetSecret after delete = %v, want ErrNoEntry", err)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestLiveRoundTrip(t *testing.T) {
	store := liveStore(t)
	name := liveIdentity(t)
	cred, err := store.Build(name, name, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	secret := []byte("live kernel secret \x00\xff")
	if err := cred.SetSecret(secret); err != nil {
		t.Fatalf("SetSecret: %v", err)
	}
	got, err := cred.GetSecret()
	if err != nil {
		t.Fatalf("GetSecret: %v", err)
	}
	if !bytes.Equal(got, secret) {
		t.Errorf("GetSecret = %q, want %q", got, secret)
	}

	if err := cred.DeleteCredential(); err != nil {
		t.Fatalf("DeleteCredential: %v", err)
	}
	waitNoEntry(t, cred)
}

func TestLiveMissingEntry(t *testing.T) {
	store := liveStore(t)
	name := liveIdentity(t)
	cred, err := store.Build(name, name, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := cred.GetSecret(); !errors.Is(err, api.ErrNoEntry) {
		t.Fatalf("GetSecret on never-set identity = %v, want ErrNoEntry", err)
	}
}

func TestLiveDuplicateHandles(t *testing.T) {
	store := liveStore(t)
	name := liveIdentity(t)

	first, err := store.Build(name, name, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	second, err := store.Build(name, name, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if err := first.SetSecret([]byte("shared")); err != nil {
		t.Fatalf("SetSecret: %v", err)
	}
	got, err := second.GetSecret()
	if err != nil {
		t.Fatalf("GetSecret via second handle: %v", err)
	}
	if string(got) != "shared" {
		t.Errorf("second handle read %q, want %q", got, "shared")
	}

	if err := first.DeleteCredential(); err != nil {
		t.Fatalf("DeleteCredential: %v", err)
	}
	waitNoEntry(t, second)
}
