// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package keyctl

// Kernel keyrings are a Linux facility. On other platforms the system
// provider resolves nothing; the Memory provider still works for tests.

// System returns a provider whose keyring resolution always fails with
// ErrNotSupported.
func System() Provider {
	return unsupportedProvider{}
}

// Supported reports that the kernel keyring facility is unavailable.
func Supported() error {
	return ErrNotSupported
}

type unsupportedProvider struct{}

func (unsupportedProvider) SessionKeyring() (Keyring, error) {
	return nil, ErrNotSupported
}

func (unsupportedProvider) PersistentKeyring() (Keyring, error) {
	return nil, ErrNotSupported
}
