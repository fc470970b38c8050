// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package classify decides whether an input record names an organization or
// an individual and produces a structured classification result. It drives
// the name parser, the gender predictor and the name validator; it never
// panics across a record boundary and never returns fewer results than
// records.
package classify

// Record is a single input to the classifier. Hints are optional; empty
// strings mean "not provided".
type Record struct {
	UniqueID       string `json:"uniqueid"`
	Name           string `json:"name"`
	GenderHint     string `json:"gender,omitempty"`
	PartyTypeHint  string `json:"party_type,omitempty"`
	ParseIndicator string `json:"parseInd,omitempty"`
}

// ParsedComponents holds the name components extracted from a record.
// If OrganizationName is non-empty the three person-name fields are empty.
type ParsedComponents struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	MiddleName       string `json:"middle_name"`
	OrganizationName string `json:"organization_name"`
}

// Suggestions carries advisory predictions that accompany a result without
// asserting them as facts.
type Suggestions struct {
	NameSuggestions     []string `json:"name_suggestions"`
	GenderPrediction    string   `json:"gender_prediction"`
	PartyTypePrediction string   `json:"party_type_prediction"`
}

// Result is the structured outcome of classifying one record. Errors are
// values here; a failed record still yields a Result with Status "error".
// Array fields are always non-nil so they serialize as [].
type Result struct {
	UniqueID       string           `json:"uniqueid"`
	Name           string           `json:"name"`
	Gender         string           `json:"gender"`
	PartyType      string           `json:"party_type"`
	ParseIndicator string           `json:"parse_indicator"`
	Status         string           `json:"validation_status"`
	Confidence     float64          `json:"confidence_score"`
	Parsed         ParsedComponents `json:"parsed_components"`
	Suggestions    Suggestions      `json:"suggestions"`
	Errors         []string         `json:"errors"`
	Warnings       []string         `json:"warnings"`
}

// newResult creates a result with the invariant non-nil slices in place.
func newResult(uniqueID, name string) Result {
	return Result{
		UniqueID:    uniqueID,
		Name:        name,
		Suggestions: Suggestions{NameSuggestions: []string{}},
		Errors:      []string{},
		Warnings:    []string{},
	}
}

// NewErrorResult builds a terminal error-status result for a record that
// could not be processed at all.
func NewErrorResult(uniqueID, name, message string) Result {
	result := newResult(uniqueID, name)
	result.Status = StatusError
	result.Errors = append(result.Errors, message)
	return result
}

// Party type codes.
const (
	PartyTypeOrganization = "O"
	PartyTypeIndividual   = "I"
)

// Result status values.
const (
	StatusValid   = "valid"
	StatusWarning = "warning"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

// Confidence constants for the rule-based scoring tiers.
const (
	confidenceOrganization = 0.9
	confidenceParsedName   = 0.8
	confidenceUnparsed     = 0.6
	confidenceInvalid      = 0.2
)
