// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package nameparse splits free-form personal names into first, middle and
// last components using positional rules. Honorific titles and generational
// or professional suffixes are stripped before positions are assigned.
package nameparse

import "strings"

// titles are honorifics dropped from the front or middle of a name.
var titles = map[string]bool{
	"mr":      true,
	"mrs":     true,
	"ms":      true,
	"miss":    true,
	"dr":      true,
	"prof":    true,
	"rev":     true,
	"judge":   true,
	"senator": true,
	"captain": true,
}

// suffixes are generational and professional markers dropped from any position.
var suffixes = map[string]bool{
	"jr":  true,
	"sr":  true,
	"iii": true,
	"iv":  true,
	"md":  true,
	"phd": true,
	"cpa": true,
	"esq": true,
}

// ParsedName holds the positional components of a personal name.
// Absent components are empty strings, never placeholders.
type ParsedName struct {
	FirstName  string
	MiddleName string
	LastName   string
}

// Empty reports whether no component was extracted.
func (p ParsedName) Empty() bool {
	return p.FirstName == "" && p.MiddleName == "" && p.LastName == ""
}

// Parse splits a raw name into components. Tokens matching a known title or
// suffix (case-insensitive, trailing period ignored) are removed, then the
// remainder is assigned positionally: one token is a first name, two are
// first and last, three or more are first, middle (joined) and last.
//
// Parse never fails; unusable input yields an all-empty ParsedName.
func Parse(raw string) ParsedName {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "nan" || trimmed == "None" {
		return ParsedName{}
	}

	var tokens []string
	for _, token := range strings.Fields(trimmed) {
		key := strings.ToLower(strings.TrimSuffix(token, "."))
		if titles[key] || suffixes[key] {
			continue
		}
		tokens = append(tokens, token)
	}

	switch len(tokens) {
	case 0:
		return ParsedName{}
	case 1:
		return ParsedName{FirstName: tokens[0]}
	case 2:
		return ParsedName{FirstName: tokens[0], LastName: tokens[1]}
	default:
		return ParsedName{
			FirstName:  tokens[0],
			MiddleName: strings.Join(tokens[1:len(tokens)-1], " "),
			LastName:   tokens[len(tokens)-1],
		}
	}
}
