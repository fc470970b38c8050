// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classify

import "strings"

// organizationKeywords mark a name as an organization when any of them
// appears as a case-insensitive substring. Legal forms, institution types
// and business descriptors share one list.
var organizationKeywords = []string{
	"llc", "inc", "corp", "ltd", "co.",
	"corporation", "company",
	"hospital", "medical", "clinic", "center",
	"bank", "trust", "foundation", "institute",
	"university", "college", "school",
	"services", "solutions", "group", "partners",
	"associates", "firm", "office",
	"technologies", "systems", "enterprises",
	"pediatrics",
}

// IsOrganization decides whether a name refers to an organization. An
// explicit hint ("O" or "I", any case) is authoritative; otherwise the
// keyword list is consulted. Unrecognized hints fall through to the
// keyword check.
func IsOrganization(name, hint string) bool {
	switch strings.ToUpper(strings.TrimSpace(hint)) {
	case PartyTypeOrganization:
		return true
	case PartyTypeIndividual:
		return false
	}

	lower := strings.ToLower(name)
	for _, keyword := range organizationKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
