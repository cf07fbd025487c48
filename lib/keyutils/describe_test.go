// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keyutils

import (
	"errors"
	"testing"

	"github.com/bureau-foundation/keyutils-store/lib/api"
)

var defaultDelimiters = [3]string{defaultPrefix, defaultDivider, defaultSuffix}

func TestBuildDescriptionDerived(t *testing.T) {
	tests := []struct {
		name          string
		delimiters    [3]string
		service, user string
		want          string
	}{
		{"defaults", defaultDelimiters, "service", "user", "keyring:user@service"},
		{"custom", [3]string{"app[", "/", "]"}, "svc", "alice", "app[alice/svc]"},
		{"empty fields", defaultDelimiters, "", "", "keyring:@"},
		{"no prefix no suffix", [3]string{"", ":", ""}, "b", "a", "a:b"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			description, specs, err := buildDescription("", false, test.delimiters, false, test.service, test.user)
			if err != nil {
				t.Fatalf("buildDescription: %v", err)
			}
			if description != test.want {
				t.Errorf("description = %q, want %q", description, test.want)
			}
			if specs == nil {
				t.Fatal("derived description recorded no specifiers")
			}
			if specs.user != test.user || specs.service != test.service {
				t.Errorf("specifiers = (%q, %q), want (%q, %q)", specs.user, specs.service, test.user, test.service)
			}
		})
	}
}

func TestBuildDescriptionExplicitTarget(t *testing.T) {
	description, specs, err := buildDescription("my-target", true, defaultDelimiters, false, "service", "user")
	if err != nil {
		t.Fatalf("buildDescription: %v", err)
	}
	if description != "my-target" {
		t.Errorf("description = %q, want target verbatim", description)
	}
	if specs != nil {
		t.Error("explicit target recorded specifiers")
	}
}

func TestBuildDescriptionEmptyTarget(t *testing.T) {
	_, _, err := buildDescription("", true, defaultDelimiters, false, "service", "user")
	var invalid *api.InvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("empty explicit target = %v, want *InvalidError", err)
	}
	if invalid.Field != "target" {
		t.Errorf("Field = %q, want %q", invalid.Field, "target")
	}
}

func TestBuildDescriptionServiceNoDivider(t *testing.T) {
	// A service containing the divider would make the derived
	// description ambiguous to decompose.
	_, _, err := buildDescription("", false, defaultDelimiters, true, "ser@vice", "user")
	var invalid *api.InvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("divider in service = %v, want *InvalidError", err)
	}

	// Every string contains the empty string, so an empty divider
	// rejects every service when the flag is set.
	_, _, err = buildDescription("", false, [3]string{"p", "", "s"}, true, "service", "user")
	if !errors.As(err, &invalid) {
		t.Fatalf("empty divider with flag = %v, want *InvalidError", err)
	}

	// Without the flag the same inputs pass.
	if _, _, err := buildDescription("", false, defaultDelimiters, false, "ser@vice", "user"); err != nil {
		t.Fatalf("divider in service without flag: %v", err)
	}
}

func TestBuildDescriptionEmptyResult(t *testing.T) {
	_, _, err := buildDescription("", false, [3]string{"", "", ""}, false, "", "")
	var invalid *api.InvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("all-empty derivation = %v, want *InvalidError", err)
	}
	if invalid.Field != "description" {
		t.Errorf("Field = %q, want %q", invalid.Field, "description")
	}
}
