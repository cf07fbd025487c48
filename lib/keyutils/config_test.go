// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keyutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/keyutils-store/lib/keyctl"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoadConfigFull(t *testing.T) {
	path := writeConfigFile(t, `
prefix: "app["
divider: "/"
suffix: "]"
service_no_divider: true
`)
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := map[string]string{
		"prefix":             "app[",
		"divider":            "/",
		"suffix":             "]",
		"service_no_divider": "true",
	}
	for key, value := range want {
		if config[key] != value {
			t.Errorf("config[%q] = %q, want %q", key, config[key], value)
		}
	}

	// The loaded map feeds straight into store construction.
	store, err := NewWithProvider(keyctl.NewMemory(), config)
	if err != nil {
		t.Fatalf("NewWithProvider with loaded config: %v", err)
	}
	cred := buildCred(t, store, "svc", "alice")
	concrete, _ := AsCred(cred)
	if concrete.Description() != "app[alice/svc]" {
		t.Errorf("Description = %q, want %q", concrete.Description(), "app[alice/svc]")
	}
}

func TestLoadConfigPartial(t *testing.T) {
	// Absent keys stay absent, so store defaults apply. A present but
	// empty prefix is a deliberate setting and must survive loading.
	path := writeConfigFile(t, `
prefix: ""
divider: "/"
`)
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if value, ok := config["prefix"]; !ok || value != "" {
		t.Errorf("prefix = (%q, %t), want explicit empty string", value, ok)
	}
	if _, ok := config["suffix"]; ok {
		t.Error("absent suffix appeared in the config map")
	}
	if _, ok := config["service_no_divider"]; ok {
		t.Error("absent service_no_divider appeared in the config map")
	}
}

func TestLoadConfigEmptyFile(t *testing.T) {
	path := writeConfigFile(t, "")
	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig on empty file: %v", err)
	}
	if len(config) != 0 {
		t.Errorf("empty file produced config %v", config)
	}
}

func TestLoadConfigUnknownField(t *testing.T) {
	path := writeConfigFile(t, "prefixx: typo\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("unknown field accepted")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
