// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keyutils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bureau-foundation/keyutils-store/lib/api"
	"github.com/bureau-foundation/keyutils-store/lib/keyctl"
)

func TestTranslateCollapsesToNoEntry(t *testing.T) {
	// Four distinct kernel conditions, one caller-visible answer:
	// nothing retrievable here right now.
	for _, cause := range []error{
		keyctl.ErrKeyNotFound,
		keyctl.ErrKeyRevoked,
		keyctl.ErrKeyExpired,
		keyctl.ErrAccessDenied,
	} {
		if got := translate(cause); !errors.Is(got, api.ErrNoEntry) {
			t.Errorf("translate(%v) = %v, want ErrNoEntry", cause, got)
		}
		// Wrapped errors translate the same way.
		wrapped := fmt.Errorf("searching for %q: %w", "entry", cause)
		if got := translate(wrapped); !errors.Is(got, api.ErrNoEntry) {
			t.Errorf("translate(wrapped %v) = %v, want ErrNoEntry", cause, got)
		}
	}
}

func TestTranslateInvalid(t *testing.T) {
	var invalid *api.InvalidError

	got := translate(keyctl.ErrInvalidDescription)
	if !errors.As(got, &invalid) || invalid.Field != "description" {
		t.Errorf("translate(ErrInvalidDescription) = %v, want InvalidError on description", got)
	}

	got = translate(keyctl.ErrInvalidArguments)
	if !errors.As(got, &invalid) || invalid.Field != "secret" {
		t.Errorf("translate(ErrInvalidArguments) = %v, want InvalidError on secret", got)
	}
}

func TestTranslatePlatformFallback(t *testing.T) {
	for _, cause := range []error{
		keyctl.ErrQuotaExceeded,
		keyctl.ErrNotSupported,
		errors.New("unexpected kernel error"),
	} {
		got := translate(cause)
		var platform *api.PlatformError
		if !errors.As(got, &platform) {
			t.Errorf("translate(%v) = %v, want *PlatformError", cause, got)
			continue
		}
		if !errors.Is(got, cause) {
			t.Errorf("translate(%v) lost its cause", cause)
		}
	}
}
