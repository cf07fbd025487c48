// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keyutils

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bureau-foundation/keyutils-store/lib/api"
	"github.com/bureau-foundation/keyutils-store/lib/keyctl"
)

// Default delimiter scheme, matching the legacy description format
// "keyring:user@service".
const (
	defaultPrefix  = "keyring:"
	defaultDivider = "@"
	defaultSuffix  = ""
)

const vendor = "Linux kernel keyutils, github.com/bureau-foundation/keyutils-store"

// Configuration keys recognized by NewWithConfig.
var storeConfigKeys = []string{"prefix", "divider", "suffix", "service_no_divider"}

// Per-entry modifier keys recognized by Build.
var buildModifierKeys = []string{"description"}

// Store is the current-generation store facade. It carries the
// delimiter configuration used to derive descriptions and a stable
// per-instance identity. Stores are immutable after construction.
type Store struct {
	id               string
	delimiters       [3]string
	serviceNoDivider bool
	provider         keyctl.Provider
}

var _ api.Store = (*Store)(nil)

// New creates a store with the default configuration: prefix
// "keyring:", divider "@", no suffix, no divider restriction.
func New() (*Store, error) {
	return NewWithConfig(nil)
}

// NewWithConfig creates a store with the given configuration. The
// recognized keys are "prefix", "divider", and "suffix" (strings,
// defaulting to "keyring:", "@", and ""), and "service_no_divider"
// ("true"/"false", defaulting to "false"). Setting service_no_divider
// makes Build reject services containing the divider, guaranteeing
// derived descriptions are unambiguous to decompose.
func NewWithConfig(config map[string]string) (*Store, error) {
	return NewWithProvider(keyctl.System(), config)
}

// NewWithProvider creates a store backed by an explicit keyctl
// provider. Production code uses keyctl.System (what NewWithConfig
// does); tests and consumers without a live kernel keyring can pass
// keyctl.NewMemory.
func NewWithProvider(provider keyctl.Provider, config map[string]string) (*Store, error) {
	if provider == nil {
		return nil, &api.InvalidError{Field: "provider", Reason: "cannot be nil"}
	}
	if err := api.ValidateAttributes(storeConfigKeys, config); err != nil {
		return nil, err
	}
	serviceNoDivider, err := api.BoolAttribute(config, "service_no_divider", false)
	if err != nil {
		return nil, err
	}
	return &Store{
		id: fmt.Sprintf("keyutils-store-%s", uuid.NewString()),
		delimiters: [3]string{
			api.StringAttribute(config, "prefix", defaultPrefix),
			api.StringAttribute(config, "divider", defaultDivider),
			api.StringAttribute(config, "suffix", defaultSuffix),
		},
		serviceNoDivider: serviceNoDivider,
		provider:         provider,
	}, nil
}

// Build constructs a credential handle for the service and user. The
// one recognized modifier is "description", which overrides the
// derived description exactly as an explicit target would. Building a
// credential does not create a key in the kernel — that happens on
// the first SetSecret.
func (s *Store) Build(service, user string, modifiers map[string]string) (api.Credential, error) {
	if err := api.ValidateAttributes(buildModifierKeys, modifiers); err != nil {
		return nil, err
	}
	target, haveTarget := modifiers["description"]
	cred, err := newCred(s.provider, target, haveTarget, s.delimiters, s.serviceNoDivider, service, user)
	if err != nil {
		return nil, err
	}
	return cred, nil
}

// Vendor identifies this backend. Diagnostics only.
func (s *Store) Vendor() string {
	return vendor
}

// ID is this store instance's identity: stable for the instance's
// lifetime, distinct across instances. Diagnostics only.
func (s *Store) ID() string {
	return s.id
}

// Persistence reports PersistUntilReboot: kernel keyrings survive
// logout (via the persistent keyring) but never a reboot.
func (s *Store) Persistence() api.Persistence {
	return api.PersistUntilReboot
}

// AsCred returns the concrete keyutils credential behind a credential
// handle, for callers that need platform-specific access such as the
// resolved description. Returns false for credentials from other
// backends.
func AsCred(cred api.Credential) (*Cred, bool) {
	concrete, ok := cred.(*Cred)
	return concrete, ok
}
