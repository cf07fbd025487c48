// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"unicode/utf8"
)

// Entry is a convenience wrapper around a Credential for callers that
// want a single value type and string-typed passwords. Entries built
// with NewEntry resolve their backend through the default-store
// registry; the backend itself never consults the registry.
type Entry struct {
	cred Credential
}

// NewEntry builds an entry for the given service and user using the
// process default store. Fails if no default store has been installed.
func NewEntry(service, user string) (*Entry, error) {
	return NewEntryWithModifiers(service, user, nil)
}

// NewEntryWithModifiers builds an entry using the process default
// store, passing the modifier map through to the store's Build.
func NewEntryWithModifiers(service, user string, modifiers map[string]string) (*Entry, error) {
	store, err := DefaultStore()
	if err != nil {
		return nil, err
	}
	cred, err := store.Build(service, user, modifiers)
	if err != nil {
		return nil, err
	}
	return &Entry{cred: cred}, nil
}

// WrapCredential builds an entry around an already-constructed
// credential handle, bypassing the registry.
func WrapCredential(cred Credential) *Entry {
	return &Entry{cred: cred}
}

// Credential returns the underlying credential handle, for callers
// that need backend-specific access.
func (e *Entry) Credential() Credential {
	return e.cred
}

// SetSecret stores raw secret bytes.
func (e *Entry) SetSecret(secret []byte) error {
	return e.cred.SetSecret(secret)
}

// GetSecret returns the raw secret bytes.
func (e *Entry) GetSecret() ([]byte, error) {
	return e.cred.GetSecret()
}

// SetPassword stores a string secret.
func (e *Entry) SetPassword(password string) error {
	return e.cred.SetSecret([]byte(password))
}

// GetPassword returns the stored secret as a string. The stored bytes
// must be valid UTF-8; secrets written through SetSecret with binary
// content should be read back with GetSecret instead.
func (e *Entry) GetPassword() (string, error) {
	secret, err := e.cred.GetSecret()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(secret) {
		return "", &InvalidError{Field: "password", Reason: "stored secret is not valid UTF-8"}
	}
	return string(secret), nil
}

// DeleteCredential removes the entry from the backend.
func (e *Entry) DeleteCredential() error {
	return e.cred.DeleteCredential()
}

// GetCredential checks that the entry currently exists in the backend.
func (e *Entry) GetCredential() (Credential, error) {
	return e.cred.GetCredential()
}

// Specifiers reports the (user, service) pair the entry was derived
// from, if any.
func (e *Entry) Specifiers() (user, service string, ok bool) {
	return e.cred.Specifiers()
}
