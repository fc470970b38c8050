// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package name

import (
	"os"
	"path/filepath"
	"testing"

	"namecheck/internal/dictionary"
)

func loadedStore(t *testing.T) *dictionary.Store {
	t.Helper()
	dir := t.TempDir()
	first := "name\njohn\nmary\nmichael\n"
	last := "name\nsmith\njones\njohnson\n"
	if err := os.WriteFile(filepath.Join(dir, "first_names.csv"), []byte(first), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "last_names.csv"), []byte(last), 0o600); err != nil {
		t.Fatal(err)
	}

	store := dictionary.NewStore(dictionary.ModePermissive, nil)
	if !store.LoadDir(dir) {
		t.Fatal("expected dictionaries to load")
	}
	return store
}

func TestValidateBothComponents(t *testing.T) {
	v := NewValidator(loadedStore(t), nil, nil)

	result := v.Validate("john", "smith")
	if !result.Valid {
		t.Fatalf("expected valid, got errors %v", result.Errors)
	}
	if result.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", result.Confidence)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("warnings = %v, want none for dictionary hits", result.Warnings)
	}
	if result.Normalized.FirstName != "John" || result.Normalized.LastName != "Smith" {
		t.Errorf("normalized = %+v, want John Smith", result.Normalized)
	}
}

func TestValidateMissingComponents(t *testing.T) {
	v := NewValidator(loadedStore(t), nil, nil)

	tests := []struct {
		name      string
		first     string
		last      string
		wantError string
	}{
		{"missing first", "", "smith", "First name required"},
		{"missing last", "john", "", "Last name required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.first, tt.last)
			if result.Valid {
				t.Fatal("expected invalid result")
			}
			if result.Confidence != 0.0 {
				t.Errorf("confidence = %v, want 0.0", result.Confidence)
			}
			found := false
			for _, e := range result.Errors {
				if e == tt.wantError {
					found = true
				}
			}
			if !found {
				t.Errorf("errors = %v, want %q", result.Errors, tt.wantError)
			}
		})
	}
}

func TestValidateBothMissing(t *testing.T) {
	v := NewValidator(loadedStore(t), nil, nil)
	result := v.Validate("", "  ")
	if len(result.Errors) != 2 {
		t.Errorf("errors = %v, want both requirement errors", result.Errors)
	}
}

func TestValidateDictionaryMissWarnsButStaysValid(t *testing.T) {
	v := NewValidator(loadedStore(t), nil, nil)

	result := v.Validate("Zaphod", "Beeblebrox")
	if !result.Valid {
		t.Fatal("unknown names are still structurally valid")
	}
	if result.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8 regardless of dictionary misses", result.Confidence)
	}
	if len(result.Warnings) != 2 {
		t.Errorf("warnings = %v, want one per missed component", result.Warnings)
	}
	if len(result.Errors) != 0 {
		t.Errorf("errors = %v, want none", result.Errors)
	}
}

func TestValidateUnloadedStorePermissive(t *testing.T) {
	store := dictionary.NewStore(dictionary.ModePermissive, nil)
	v := NewValidator(store, nil, nil)

	result := v.Validate("anything", "goes")
	if !result.Valid {
		t.Error("expected valid when dictionaries are unavailable")
	}
	if len(result.Warnings) != 0 {
		t.Errorf("warnings = %v, want none in permissive fallback", result.Warnings)
	}
}

func TestValidateNormalizationTitleCases(t *testing.T) {
	v := NewValidator(loadedStore(t), nil, nil)
	result := v.Validate("mCDONALD", "smith-jones")
	if result.Normalized.FirstName != "Mcdonald" {
		t.Errorf("normalized first = %q", result.Normalized.FirstName)
	}
	if result.Normalized.LastName != "Smith-Jones" {
		t.Errorf("normalized last = %q", result.Normalized.LastName)
	}
}

func TestEnricherSuggestions(t *testing.T) {
	store := loadedStore(t)
	v := NewValidator(store, NewDictionaryEnricher(store), nil)

	result := v.Validate("jhon", "smith")
	if len(result.Suggestions) == 0 {
		t.Fatal("expected a suggestion for a near-miss first name")
	}
	if result.Suggestions[0] != "john" {
		t.Errorf("first suggestion = %q, want john", result.Suggestions[0])
	}
	// "smith" is an exact match and must not contribute suggestions.
	for _, s := range result.Suggestions {
		if s == "smith" {
			t.Errorf("exact match contributed suggestion %q", s)
		}
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"john", "john", 0},
		{"john", "jhon", 2},
		{"smith", "smyth", 1},
		{"", "abc", 3},
	}
	for _, tt := range tests {
		if got := editDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("editDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
