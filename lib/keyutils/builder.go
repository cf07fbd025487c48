// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keyutils

import (
	"github.com/bureau-foundation/keyutils-store/lib/api"
	"github.com/bureau-foundation/keyutils-store/lib/keyctl"
)

// Builder is the older-generation construction facade. It predates
// configurable delimiters: descriptions always derive with the default
// "keyring:user@service" scheme, and an explicit target is passed
// positionally rather than through a modifier map. Kept so consumers
// of the legacy front-end API can use this backend unchanged.
type Builder struct {
	provider keyctl.Provider
}

var _ api.Builder = (*Builder)(nil)

// NewBuilder creates a legacy builder over the running kernel.
func NewBuilder() *Builder {
	return NewBuilderWithProvider(keyctl.System())
}

// NewBuilderWithProvider creates a legacy builder over an explicit
// keyctl provider.
func NewBuilderWithProvider(provider keyctl.Provider) *Builder {
	return &Builder{provider: provider}
}

// Build constructs a credential with the derived description
// "keyring:user@service". No key is created until SetSecret.
func (b *Builder) Build(service, user string) (api.Credential, error) {
	return b.build("", false, service, user)
}

// BuildWithTarget constructs a credential whose description is the
// target verbatim. An empty target is rejected rather than treated as
// "derive instead".
func (b *Builder) BuildWithTarget(target, service, user string) (api.Credential, error) {
	return b.build(target, true, service, user)
}

// Persistence reports PersistUntilReboot, as for the Store facade.
func (b *Builder) Persistence() api.Persistence {
	return api.PersistUntilReboot
}

func (b *Builder) build(target string, haveTarget bool, service, user string) (api.Credential, error) {
	delimiters := [3]string{defaultPrefix, defaultDivider, defaultSuffix}
	cred, err := newCred(b.provider, target, haveTarget, delimiters, false, service, user)
	if err != nil {
		return nil, err
	}
	return cred, nil
}
