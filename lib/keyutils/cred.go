// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keyutils

import (
	"fmt"

	"github.com/bureau-foundation/keyutils-store/lib/api"
	"github.com/bureau-foundation/keyutils-store/lib/keyctl"
)

// Cred is the kernel-keyring credential record: the session keyring,
// the optional persistent keyring, and the description identifying the
// key. It deliberately holds keyrings rather than a key handle — the
// key may not exist yet (nothing is created until SetSecret), and
// resolving it by description on every call means a handle never goes
// stale against shared kernel state.
//
// A Cred is immutable after construction and safe to share between
// goroutines.
type Cred struct {
	session     keyctl.Keyring
	persistent  keyctl.Keyring // nil when the kernel grants no persistent keyring
	description string
	specs       *specifiers
}

// newCred validates the description inputs, resolves the session
// keyring (mandatory), and best-effort resolves the persistent keyring.
// No kernel key is looked up or created here.
func newCred(provider keyctl.Provider, target string, haveTarget bool, delimiters [3]string, serviceNoDivider bool, service, user string) (*Cred, error) {
	description, specs, err := buildDescription(target, haveTarget, delimiters, serviceNoDivider, service, user)
	if err != nil {
		return nil, err
	}

	session, err := provider.SessionKeyring()
	if err != nil {
		// Without a session keyring the backend is unusable: this is
		// a storage access failure, not a per-entry problem.
		return nil, &api.NoStorageAccessError{Cause: err}
	}

	// Persistence across logout is an enhancement, not a guarantee.
	// Kernels built without persistent keyrings, or sessions that
	// refuse one, degrade to session-only anchoring.
	persistent, err := provider.PersistentKeyring()
	if err != nil {
		persistent = nil
	}

	return &Cred{
		session:     session,
		persistent:  persistent,
		description: description,
		specs:       specs,
	}, nil
}

// SetSecret stores the secret under this credential's description,
// replacing any previous value. The key is added to the session keyring
// and linked into the persistent keyring when one is bound.
//
// An empty secret is rejected before touching the kernel: "user"-type
// keys cannot hold a zero-length payload, and coercing the value would
// surprise the caller on read-back.
func (c *Cred) SetSecret(secret []byte) error {
	if len(secret) == 0 {
		return &api.InvalidError{Field: "secret", Reason: "cannot be empty"}
	}
	if err := c.set(secret); err != nil {
		return translate(err)
	}
	return nil
}

// GetSecret looks the key up by description and returns its payload.
// Every successful lookup first re-anchors the key in both keyrings;
// see the package documentation on link repair.
func (c *Cred) GetSecret() ([]byte, error) {
	secret, err := c.get()
	if err != nil {
		return nil, translate(err)
	}
	return secret, nil
}

// DeleteCredential invalidates the key immediately so that future
// searches fail. The kernel's key caches can lag invalidation within
// the same process; see the package documentation.
func (c *Cred) DeleteCredential() error {
	if err := c.remove(); err != nil {
		return translate(err)
	}
	return nil
}

// GetCredential reports whether a valid key currently exists for this
// description, without reading the secret. Since a description maps to
// at most one key, the credential itself is returned as the handle.
func (c *Cred) GetCredential() (api.Credential, error) {
	if _, err := c.session.Search(c.description); err != nil {
		return nil, translate(err)
	}
	return c, nil
}

// Specifiers reports the (user, service) pair this credential's
// description was derived from. Not present when the description was
// supplied explicitly.
func (c *Cred) Specifiers() (user, service string, ok bool) {
	if c.specs == nil {
		return "", "", false
	}
	return c.specs.user, c.specs.service, true
}

// Description returns the kernel key description this credential
// addresses.
func (c *Cred) Description() string {
	return c.description
}

// HasPersistent reports whether the credential is anchored in a
// persistent keyring in addition to the session keyring.
func (c *Cred) HasPersistent() bool {
	return c.persistent != nil
}

// String describes the credential for diagnostics. The secret is in
// the kernel, not the credential, so there is nothing sensitive here.
func (c *Cred) String() string {
	if c.specs != nil {
		return fmt.Sprintf("keyutils credential %q (user %q, service %q, persistent %t)",
			c.description, c.specs.user, c.specs.service, c.persistent != nil)
	}
	return fmt.Sprintf("keyutils credential %q (explicit target, persistent %t)", c.description, c.persistent != nil)
}

// get searches, re-anchors, and reads. Keyctl-native errors propagate
// to the caller for translation.
func (c *Cred) get() ([]byte, error) {
	key, err := c.session.Search(c.description)
	if err != nil {
		return nil, err
	}

	// After a logout the key survives only via the persistent
	// keyring; re-link it directly into the session keyring.
	if err := c.session.Link(key); err != nil {
		return nil, err
	}

	// After persistent-keyring garbage collection the key survives
	// only via the session keyring; re-link it there too.
	if c.persistent != nil {
		if err := c.persistent.Link(key); err != nil {
			return nil, err
		}
	}

	return key.Read()
}

// set adds the key to the session keyring (add-or-replace) and links
// it into the persistent keyring when bound.
func (c *Cred) set(secret []byte) error {
	key, err := c.session.AddKey(c.description, secret)
	if err != nil {
		return err
	}
	if c.persistent != nil {
		if err := c.persistent.Link(key); err != nil {
			return err
		}
	}
	return nil
}

// remove searches for the key and invalidates it.
func (c *Cred) remove() error {
	key, err := c.session.Search(c.description)
	if err != nil {
		return err
	}
	return key.Invalidate()
}
