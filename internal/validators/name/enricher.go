// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package name

import (
	"sort"
	"strings"

	"namecheck/internal/dictionary"
)

// Enricher supplies advisory data about name components. Implementations may
// be backed by richer datasets than the core dictionaries.
type Enricher interface {
	// IsCommon reports whether the name is a well-known member of the set
	// ("first" or "last").
	IsCommon(set, name string) bool

	// Suggest returns close dictionary matches for a name that missed the
	// set, best first. May return nil.
	Suggest(set, name string) []string
}

// maxSuggestions caps candidate lists so a miss never floods the result.
const maxSuggestions = 3

// DictionaryEnricher derives suggestions from the loaded dictionary store
// using edit distance.
type DictionaryEnricher struct {
	store *dictionary.Store
}

// NewDictionaryEnricher wraps a store as an Enricher.
func NewDictionaryEnricher(store *dictionary.Store) *DictionaryEnricher {
	return &DictionaryEnricher{store: store}
}

// IsCommon reports raw dictionary membership.
func (e *DictionaryEnricher) IsCommon(set, name string) bool {
	return e.store.Contains(set, name)
}

// Suggest finds dictionary entries within edit distance 2 of the name,
// closest first.
func (e *DictionaryEnricher) Suggest(set, name string) []string {
	target := strings.ToLower(strings.TrimSpace(name))
	if len(target) < 2 {
		return nil
	}

	type candidate struct {
		name     string
		distance int
	}

	var candidates []candidate
	for _, entry := range e.store.Names(set) {
		// Length pre-filter avoids computing distances that cannot qualify.
		if abs(len(entry)-len(target)) > 2 {
			continue
		}
		if d := editDistance(target, entry); d <= 2 && d > 0 {
			candidates = append(candidates, candidate{name: entry, distance: d})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].name < candidates[j].name
	})

	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}

	suggestions := make([]string, len(candidates))
	for i, c := range candidates {
		suggestions[i] = c.name
	}
	return suggestions
}

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
