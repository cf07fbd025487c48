// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keyutils

import (
	"errors"

	"github.com/bureau-foundation/keyutils-store/lib/api"
	"github.com/bureau-foundation/keyutils-store/lib/keyctl"
)

// translate maps a keyctl-layer failure onto the front-end error
// taxonomy. This is the only boundary where keyctl errors cross into
// api errors; nothing keyctl-native leaves the package.
//
// Not-found, revoked, expired, and access-denied all collapse into
// api.ErrNoEntry. The kernel returns different codes for what is the
// same caller-visible condition — "nothing retrievable here right now"
// — depending on where in invalidation processing a call lands, and
// surfacing the distinction would leak kernel-version-dependent,
// non-deterministic detail to callers. Access-denied folds in with the
// rest: a caller locked out of a key cannot retrieve it any more than
// one whose key expired.
func translate(err error) error {
	switch {
	case errors.Is(err, keyctl.ErrKeyNotFound),
		errors.Is(err, keyctl.ErrKeyRevoked),
		errors.Is(err, keyctl.ErrKeyExpired),
		errors.Is(err, keyctl.ErrAccessDenied):
		return api.ErrNoEntry
	case errors.Is(err, keyctl.ErrInvalidDescription):
		return &api.InvalidError{Field: "description", Reason: "rejected by platform"}
	case errors.Is(err, keyctl.ErrInvalidArguments):
		return &api.InvalidError{Field: "secret", Reason: "rejected by platform"}
	}
	return &api.PlatformError{Cause: err}
}
