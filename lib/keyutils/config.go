// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keyutils

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML shape of a store configuration file. Pointer
// fields distinguish "absent, use the default" from "present and
// deliberately empty" — an empty suffix and a missing suffix are the
// same thing, but an empty prefix is a real configuration.
type fileConfig struct {
	Prefix           *string `yaml:"prefix"`
	Divider          *string `yaml:"divider"`
	Suffix           *string `yaml:"suffix"`
	ServiceNoDivider *bool   `yaml:"service_no_divider"`
}

// LoadConfig reads a store configuration map from a YAML file, for
// passing to NewWithConfig. The file may set prefix, divider, suffix,
// and service_no_divider; unknown fields are rejected. There is no
// search path or fallback — the caller names exactly one file.
func LoadConfig(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading store config: %w", err)
	}

	var parsed fileConfig
	if err := unmarshalStrict(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing store config %s: %w", path, err)
	}

	config := make(map[string]string)
	if parsed.Prefix != nil {
		config["prefix"] = *parsed.Prefix
	}
	if parsed.Divider != nil {
		config["divider"] = *parsed.Divider
	}
	if parsed.Suffix != nil {
		config["suffix"] = *parsed.Suffix
	}
	if parsed.ServiceNoDivider != nil {
		config["service_no_divider"] = strconv.FormatBool(*parsed.ServiceNoDivider)
	}
	return config, nil
}

func unmarshalStrict(data []byte, out any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	err := decoder.Decode(out)
	// An empty file is an empty configuration.
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
