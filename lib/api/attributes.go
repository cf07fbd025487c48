// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"fmt"
	"slices"
	"strings"
)

// ValidateAttributes checks a string-keyed attribute map against the
// set of keys a backend recognizes. A nil or empty map is always valid.
// An unrecognized key is reported as an InvalidError naming the key, so
// that a typo in a configuration or modifier map fails loudly instead
// of being silently ignored.
func ValidateAttributes(allowed []string, attrs map[string]string) error {
	if len(attrs) == 0 {
		return nil
	}
	for key := range attrs {
		if !slices.Contains(allowed, key) {
			sorted := append([]string(nil), allowed...)
			slices.Sort(sorted)
			return &InvalidError{
				Field:  key,
				Reason: fmt.Sprintf("unrecognized attribute (recognized: %s)", strings.Join(sorted, ", ")),
			}
		}
	}
	return nil
}

// BoolAttribute reads an optional boolean-valued attribute. Only the
// exact strings "true" and "false" are accepted; anything else is an
// InvalidError. A missing key yields the fallback.
func BoolAttribute(attrs map[string]string, key string, fallback bool) (bool, error) {
	value, ok := attrs[key]
	if !ok {
		return fallback, nil
	}
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, &InvalidError{Field: key, Reason: fmt.Sprintf("must be %q or %q, got %q", "true", "false", value)}
	}
}

// StringAttribute reads an optional string-valued attribute, yielding
// the fallback when the key is absent. An empty value is a valid,
// deliberate setting and is returned as-is.
func StringAttribute(attrs map[string]string, key, fallback string) string {
	if value, ok := attrs[key]; ok {
		return value
	}
	return fallback
}
