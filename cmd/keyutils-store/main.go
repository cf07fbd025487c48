// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/keyutils-store/lib/api"
	"github.com/bureau-foundation/keyutils-store/lib/keyutils"
	"github.com/bureau-foundation/keyutils-store/lib/secret"
)

const version = "0.1.0"

// configEnvVar names the environment variable consulted for the store
// configuration file when --config is not given.
const configEnvVar = "KEYUTILS_STORE_CONFIG"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		printUsage()
		return fmt.Errorf("subcommand required")
	}

	switch os.Args[1] {
	case "set":
		return runSet(os.Args[2:])
	case "get":
		return runGet(os.Args[2:])
	case "delete":
		return runDelete(os.Args[2:])
	case "inspect":
		return runInspect(os.Args[2:])
	case "version":
		fmt.Printf("keyutils-store %s\n", version)
		return nil
	case "-h", "--help", "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown subcommand: %q", os.Args[1])
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: keyutils-store <subcommand> [flags]

Subcommands:
  set       Store a secret (prompted, or piped on stdin)
  get       Print a stored secret to stdout
  delete    Remove a stored secret
  inspect   Report entry existence, specifiers, and store identity
  version   Print version information

Run 'keyutils-store <subcommand> --help' for subcommand flags.
`)
}

// entryFlags is the identity surface shared by every subcommand.
type entryFlags struct {
	service     string
	user        string
	description string
	configPath  string
}

func registerEntryFlags(flags *pflag.FlagSet, ef *entryFlags) {
	flags.StringVar(&ef.service, "service", "", "service name for the entry")
	flags.StringVar(&ef.user, "user", "", "user name for the entry")
	flags.StringVar(&ef.description, "description", "", "explicit kernel key description, overriding the derived one")
	flags.StringVar(&ef.configPath, "config", "", "path to a YAML store configuration file (default $"+configEnvVar+")")
}

// buildEntry installs the keyutils backend as the process default
// store and builds the entry named by the flags.
func buildEntry(ef *entryFlags) (*api.Entry, error) {
	if ef.service == "" && ef.description == "" {
		return nil, fmt.Errorf("--service is required (or --description for an explicit target)")
	}

	configPath := ef.configPath
	if configPath == "" {
		configPath = os.Getenv(configEnvVar)
	}
	var config map[string]string
	if configPath != "" {
		loaded, err := keyutils.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	store, err := keyutils.NewWithConfig(config)
	if err != nil {
		return nil, fmt.Errorf("creating keyutils store: %w", err)
	}
	if err := api.SetDefaultStore(store); err != nil {
		return nil, err
	}

	var modifiers map[string]string
	if ef.description != "" {
		modifiers = map[string]string{"description": ef.description}
	}
	entry, err := api.NewEntryWithModifiers(ef.service, ef.user, modifiers)
	if err != nil {
		return nil, fmt.Errorf("building entry: %w", err)
	}
	return entry, nil
}

func runSet(args []string) error {
	var ef entryFlags
	flags := pflag.NewFlagSet("set", pflag.ContinueOnError)
	registerEntryFlags(flags, &ef)
	if err := flags.Parse(args); err != nil {
		return err
	}
	logger := newLogger().With("command", "set", "service", ef.service, "user", ef.user)

	entry, err := buildEntry(&ef)
	if err != nil {
		return err
	}

	buffer, err := readSecret()
	if err != nil {
		return err
	}
	defer buffer.Close()

	if err := entry.SetSecret(buffer.Bytes()); err != nil {
		return fmt.Errorf("storing secret: %w", err)
	}
	logger.Info("secret stored", "bytes", buffer.Len())
	return nil
}

func runGet(args []string) error {
	var ef entryFlags
	flags := pflag.NewFlagSet("get", pflag.ContinueOnError)
	registerEntryFlags(flags, &ef)
	if err := flags.Parse(args); err != nil {
		return err
	}

	entry, err := buildEntry(&ef)
	if err != nil {
		return err
	}

	value, err := entry.GetSecret()
	if err != nil {
		return fmt.Errorf("reading secret: %w", err)
	}
	// Move the plaintext into protected memory for the write-out, so
	// the unprotected copy is wiped promptly.
	buffer, err := secret.NewFromBytes(value)
	if err != nil {
		return err
	}
	defer buffer.Close()

	if _, err := os.Stdout.Write(buffer.Bytes()); err != nil {
		return fmt.Errorf("writing secret: %w", err)
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println()
	}
	return nil
}

func runDelete(args []string) error {
	var ef entryFlags
	flags := pflag.NewFlagSet("delete", pflag.ContinueOnError)
	registerEntryFlags(flags, &ef)
	if err := flags.Parse(args); err != nil {
		return err
	}
	logger := newLogger().With("command", "delete", "service", ef.service, "user", ef.user)

	entry, err := buildEntry(&ef)
	if err != nil {
		return err
	}
	if err := entry.DeleteCredential(); err != nil {
		return fmt.Errorf("deleting secret: %w", err)
	}
	logger.Info("secret deleted")
	return nil
}

func runInspect(args []string) error {
	var ef entryFlags
	flags := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
	registerEntryFlags(flags, &ef)
	if err := flags.Parse(args); err != nil {
		return err
	}

	entry, err := buildEntry(&ef)
	if err != nil {
		return err
	}
	store, err := api.DefaultStore()
	if err != nil {
		return err
	}

	fmt.Printf("store vendor:      %s\n", store.Vendor())
	fmt.Printf("store id:          %s\n", store.ID())
	fmt.Printf("store persistence: %s\n", store.Persistence())

	if cred, ok := keyutils.AsCred(entry.Credential()); ok {
		fmt.Printf("key description:   %s\n", cred.Description())
		fmt.Printf("persistent anchor: %t\n", cred.HasPersistent())
	}
	if user, service, ok := entry.Specifiers(); ok {
		fmt.Printf("specifiers:        user=%q service=%q\n", user, service)
	} else {
		fmt.Printf("specifiers:        none (explicit description)\n")
	}

	if _, err := entry.GetCredential(); err != nil {
		fmt.Printf("entry exists:      false (%v)\n", err)
		return nil
	}
	fmt.Printf("entry exists:      true\n")
	return nil
}

// readSecret obtains the secret without echoing it: a hidden terminal
// prompt when stdin is a TTY, otherwise the entirety of stdin (with a
// single trailing newline stripped, for shell convenience).
func readSecret() (*secret.Buffer, error) {
	var raw []byte
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(os.Stderr, "Secret: ")
		line, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("reading secret: %w", err)
		}
		raw = line
	} else {
		data, err := io.ReadAll(bufio.NewReader(os.Stdin))
		if err != nil {
			return nil, fmt.Errorf("reading secret from stdin: %w", err)
		}
		if length := len(data); length > 0 && data[length-1] == '\n' {
			data = data[:length-1]
		}
		raw = data
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("secret is empty")
	}
	return secret.NewFromBytes(raw)
}
