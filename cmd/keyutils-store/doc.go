// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Keyutils-store is an example CLI over the kernel-keyring credential
// store. It installs the keyutils backend as the process default store
// and exercises the full entry lifecycle: set reads a secret (terminal
// prompt or stdin) and stores it, get prints it back, delete removes
// it, and inspect reports existence, specifiers, and store identity
// without touching the secret. Subcommands: set, get, delete, inspect,
// version.
package main
