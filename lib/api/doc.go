// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package api defines the contracts between a credential-manager front
// end and the credential store backends that serve it.
//
// A backend provides two things: a Store (or the older-generation
// Builder) that constructs credential handles from a service and user
// identity, and the Credential handles themselves, which carry the
// set/get/delete operations against the underlying platform facility.
// The package also carries the error taxonomy every backend must
// translate its platform-native failures into, a small Entry wrapper
// for callers that want a single value type, and an explicit
// process-wide default-store registry.
//
// Nothing in this package touches a platform secret store. The kernel
// keyring backend lives in lib/keyutils.
package api
