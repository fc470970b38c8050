// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classify

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"namecheck/internal/dictionary"
	namevalidator "namecheck/internal/validators/name"
)

func permissiveClassifier() *Classifier {
	store := dictionary.NewStore(dictionary.ModePermissive, nil)
	return NewClassifier(store, nil, nil)
}

func validatingClassifier(t *testing.T) *Classifier {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "first_names.csv"), []byte("name\njohn\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "last_names.csv"), []byte("name\nsmith\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	store := dictionary.NewStore(dictionary.ModePermissive, nil)
	if !store.LoadDir(dir) {
		t.Fatal("expected dictionaries to load")
	}
	return NewClassifier(store, namevalidator.NewValidator(store, nil, nil), nil)
}

func TestClassifyOrganizationByKeyword(t *testing.T) {
	c := permissiveClassifier()

	result := c.Classify(Record{UniqueID: "1", Name: "TechCorp Solutions LLC"})

	if result.PartyType != PartyTypeOrganization {
		t.Fatalf("party_type = %q, want O", result.PartyType)
	}
	if result.Parsed.OrganizationName != "TechCorp Solutions LLC" {
		t.Errorf("organization_name = %q", result.Parsed.OrganizationName)
	}
	if result.Parsed.FirstName != "" || result.Parsed.LastName != "" || result.Parsed.MiddleName != "" {
		t.Error("organizations must have empty person-name components")
	}
	if result.Gender != "" {
		t.Errorf("gender = %q, want empty for organization", result.Gender)
	}
	if result.ParseIndicator != "N" {
		t.Errorf("parse_indicator = %q, want N", result.ParseIndicator)
	}
	if result.Confidence != 0.9 {
		t.Errorf("confidence_score = %v, want 0.9", result.Confidence)
	}
	if result.Status != StatusValid {
		t.Errorf("validation_status = %q, want valid", result.Status)
	}
	if result.Suggestions.PartyTypePrediction != "O" {
		t.Error("missing party-type prediction when no hint was supplied")
	}
}

func TestClassifyHintOverridesKeyword(t *testing.T) {
	c := permissiveClassifier()

	// Keyword "trust" matches, but the caller says individual.
	result := c.Classify(Record{UniqueID: "2", Name: "John Trust", PartyTypeHint: "i"})
	if result.PartyType != PartyTypeIndividual {
		t.Fatalf("party_type = %q, want I (hint is authoritative)", result.PartyType)
	}
	if result.Suggestions.PartyTypePrediction != "" {
		t.Error("no party-type prediction when a hint was supplied")
	}

	result = c.Classify(Record{UniqueID: "3", Name: "Smith", PartyTypeHint: "O"})
	if result.PartyType != PartyTypeOrganization {
		t.Fatalf("party_type = %q, want O (hint is authoritative)", result.PartyType)
	}
}

func TestClassifyIndividualParsed(t *testing.T) {
	c := permissiveClassifier()

	result := c.Classify(Record{UniqueID: "4", Name: "Dr. John Michael Smith Jr."})

	if result.PartyType != PartyTypeIndividual {
		t.Fatalf("party_type = %q, want I", result.PartyType)
	}
	if result.Parsed.FirstName != "John" || result.Parsed.MiddleName != "Michael" || result.Parsed.LastName != "Smith" {
		t.Errorf("parsed = %+v", result.Parsed)
	}
	if result.Status != StatusValid {
		t.Errorf("validation_status = %q, want valid", result.Status)
	}
	if result.Confidence != 0.8 {
		t.Errorf("confidence_score = %v, want 0.8", result.Confidence)
	}
	if result.ParseIndicator != "Y" {
		t.Errorf("parse_indicator = %q, want Y", result.ParseIndicator)
	}
}

func TestClassifyEmptyNameInvalid(t *testing.T) {
	c := permissiveClassifier()

	result := c.Classify(Record{UniqueID: "5", Name: "", ParseIndicator: "Y"})

	if result.Status != StatusInvalid {
		t.Fatalf("validation_status = %q, want invalid", result.Status)
	}
	if len(result.Errors) == 0 {
		t.Error("expected a parse error message")
	}
	if result.Confidence != 0.2 {
		t.Errorf("confidence_score = %v, want 0.2", result.Confidence)
	}
}

func TestClassifyParseIndicatorOptOut(t *testing.T) {
	c := permissiveClassifier()

	result := c.Classify(Record{UniqueID: "6", Name: "John Smith", ParseIndicator: "n"})

	if result.Parsed.FirstName != "" || result.Parsed.LastName != "" {
		t.Error("parse_indicator N must leave components empty")
	}
	if result.Confidence != 0.6 {
		t.Errorf("confidence_score = %v, want 0.6", result.Confidence)
	}
	if result.Status != StatusValid {
		t.Errorf("validation_status = %q, want valid", result.Status)
	}
}

func TestClassifyGenderHintNeverOverwritten(t *testing.T) {
	c := permissiveClassifier()

	result := c.Classify(Record{UniqueID: "7", Name: "Mary Smith", GenderHint: "M"})
	if result.Gender != "M" {
		t.Fatalf("gender = %q, want supplied hint M", result.Gender)
	}
	if result.Suggestions.GenderPrediction != "" {
		t.Error("no gender prediction when a hint was supplied")
	}
}

func TestClassifyGenderPredictedWithoutHint(t *testing.T) {
	c := permissiveClassifier()

	result := c.Classify(Record{UniqueID: "8", Name: "Maria Garcia"})
	if result.Gender != "F" {
		t.Errorf("gender = %q, want F via suffix heuristic", result.Gender)
	}
	if result.Suggestions.GenderPrediction != "F" {
		t.Error("prediction should also surface in suggestions")
	}
}

func TestClassifyValidatorStatusMapping(t *testing.T) {
	c := validatingClassifier(t)

	// Both components found: valid with the validator's fixed confidence.
	result := c.Classify(Record{UniqueID: "9", Name: "John Smith"})
	if result.Status != StatusValid {
		t.Errorf("known name validation_status = %q, want valid", result.Status)
	}
	if result.Confidence != 0.8 {
		t.Errorf("confidence_score = %v, want 0.8", result.Confidence)
	}

	// Unknown names are still structurally valid; dictionary misses only
	// produce warnings.
	result = c.Classify(Record{UniqueID: "10", Name: "Zaphod Beeblebrox"})
	if result.Status != StatusValid {
		t.Errorf("unknown name validation_status = %q, want valid", result.Status)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected dictionary-miss warnings")
	}
}

func TestClassifySingleTokenNameWarns(t *testing.T) {
	c := validatingClassifier(t)

	result := c.Classify(Record{UniqueID: "11", Name: "Madonna"})

	if result.Status != StatusWarning {
		t.Fatalf("validation_status = %q, want warning for a single-token name", result.Status)
	}
	if result.Confidence != 0.0 {
		t.Errorf("confidence_score = %v, want 0.0", result.Confidence)
	}
	if len(result.Errors) != 0 {
		t.Errorf("errors = %v, want none (validator findings land in warnings)", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected the missing-component message in warnings")
	}
	if result.Parsed.FirstName != "Madonna" {
		t.Errorf("first_name = %q, want Madonna", result.Parsed.FirstName)
	}
}

func TestResultSerializedFieldNames(t *testing.T) {
	c := permissiveClassifier()

	data, err := json.Marshal(c.Classify(Record{UniqueID: "1", Name: "John Smith"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{
		"uniqueid", "name", "gender", "party_type", "parse_indicator",
		"validation_status", "confidence_score", "parsed_components",
		"suggestions", "errors", "warnings",
	} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("serialized result missing key %q", key)
		}
	}

	components, ok := decoded["parsed_components"].(map[string]interface{})
	if !ok {
		t.Fatalf("parsed_components = %v, want nested object", decoded["parsed_components"])
	}
	if components["first_name"] != "John" || components["last_name"] != "Smith" {
		t.Errorf("parsed_components = %v", components)
	}

	suggestions, ok := decoded["suggestions"].(map[string]interface{})
	if !ok {
		t.Fatalf("suggestions = %v, want nested object", decoded["suggestions"])
	}
	for _, key := range []string{"name_suggestions", "gender_prediction", "party_type_prediction"} {
		if _, present := suggestions[key]; !present {
			t.Errorf("suggestions missing key %q", key)
		}
	}

	// Arrays serialize as [], never null.
	if _, ok := decoded["errors"].([]interface{}); !ok {
		t.Errorf("errors = %v, want array", decoded["errors"])
	}
	if _, ok := decoded["warnings"].([]interface{}); !ok {
		t.Errorf("warnings = %v, want array", decoded["warnings"])
	}
}

func TestClassifyAllLengthInvariant(t *testing.T) {
	c := permissiveClassifier()

	records := []Record{
		{UniqueID: "1", Name: "John Smith"},
		{UniqueID: "2", Name: ""},
		{UniqueID: "3", Name: "Acme Hospital"},
	}
	results := c.ClassifyAll(records)
	if len(results) != len(records) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(records))
	}
	for i, r := range results {
		if r.UniqueID != records[i].UniqueID {
			t.Errorf("result %d id = %q, want %q", i, r.UniqueID, records[i].UniqueID)
		}
	}
}

func TestConfidenceAlwaysInRange(t *testing.T) {
	c := permissiveClassifier()

	records := []Record{
		{Name: "Acme Corp"},
		{Name: "John Smith"},
		{Name: ""},
		{Name: "Madonna", ParseIndicator: "N"},
		{Name: "Dr."},
	}
	for _, record := range records {
		result := c.Classify(record)
		if result.Confidence < 0.0 || result.Confidence > 1.0 {
			t.Errorf("Classify(%q) confidence %v out of range", record.Name, result.Confidence)
		}
	}
}

func TestNewErrorResult(t *testing.T) {
	result := NewErrorResult("7", "Broken Row", "unreadable input")
	if result.Status != StatusError {
		t.Errorf("validation_status = %q, want error", result.Status)
	}
	if len(result.Errors) != 1 || result.Errors[0] != "unreadable input" {
		t.Errorf("errors = %v", result.Errors)
	}
	if result.Warnings == nil || result.Suggestions.NameSuggestions == nil {
		t.Error("array fields must be non-nil")
	}
}

func TestIsOrganizationKeywords(t *testing.T) {
	tests := []struct {
		name string
		hint string
		want bool
	}{
		{"Acme Hospital", "", true},
		{"First National Bank", "", true},
		{"Smith & Associates", "", true},
		{"John Smith", "", false},
		{"John Smith", "O", true},
		{"Acme Hospital", "I", false},
		{"Acme Hospital", "x", true}, // unrecognized hint falls through
	}
	for _, tt := range tests {
		if got := IsOrganization(tt.name, tt.hint); got != tt.want {
			t.Errorf("IsOrganization(%q, %q) = %v, want %v", tt.name, tt.hint, got, tt.want)
		}
	}
}
