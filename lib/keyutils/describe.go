// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package keyutils

import (
	"strings"

	"github.com/bureau-foundation/keyutils-store/lib/api"
)

// specifiers is the original (user, service) pair a derived description
// was built from. Retained on the credential for introspection only;
// lookups always go through the description.
type specifiers struct {
	user    string
	service string
}

// buildDescription produces the kernel key description for a
// credential. This is the only place identity ambiguity is guarded, and
// it performs no I/O.
//
// With haveTarget set, the target string is the description verbatim
// and no specifiers are recorded. An empty explicit target is rejected:
// kernel keys cannot bear an empty description, and quietly deriving
// one instead would change the caller's intent.
//
// Without a target, the description is
// delimiters[0] + user + delimiters[1] + service + delimiters[2].
// When serviceNoDivider is set, a service containing the divider is
// rejected so that two distinct (user, service) pairs can never
// assemble into the same description. Note that every string contains
// the empty string, so serviceNoDivider combined with an empty divider
// rejects all services.
func buildDescription(target string, haveTarget bool, delimiters [3]string, serviceNoDivider bool, service, user string) (string, *specifiers, error) {
	if haveTarget {
		if target == "" {
			return "", nil, &api.InvalidError{Field: "target", Reason: "cannot be empty"}
		}
		return target, nil, nil
	}
	if serviceNoDivider && strings.Contains(service, delimiters[1]) {
		return "", nil, &api.InvalidError{Field: "service", Reason: "cannot contain divider"}
	}
	description := delimiters[0] + user + delimiters[1] + service + delimiters[2]
	if description == "" {
		return "", nil, &api.InvalidError{Field: "description", Reason: "cannot be empty"}
	}
	return description, &specifiers{user: user, service: service}, nil
}
