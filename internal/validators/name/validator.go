// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package name validates parsed personal name components against reference
// dictionaries and produces normalized forms plus advisory suggestions.
package name

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"namecheck/internal/dictionary"
	"namecheck/internal/observability"
)

// Components is the normalized form of a validated name.
type Components struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Validation is the outcome of validating a first/last name pair. Valid
// reflects only the required-field check; dictionary misses surface as
// warnings because reference sets are never complete.
type Validation struct {
	Valid      bool
	Confidence float64
	Errors     []string
	Warnings   []string
	Normalized Components

	// Advisory candidate names; populated when an enricher is configured.
	Suggestions []string
}

// Validator checks name components for presence and dictionary membership.
type Validator struct {
	store    *dictionary.Store
	enricher Enricher
	titler   cases.Caser
	observer *observability.StandardObserver
}

// NewValidator creates a validator backed by the given dictionary store.
// The enricher is optional; nil disables candidate suggestions.
func NewValidator(store *dictionary.Store, enricher Enricher, observer *observability.StandardObserver) *Validator {
	return &Validator{
		store:    store,
		enricher: enricher,
		titler:   cases.Title(language.English),
		observer: observer,
	}
}

// Validate checks a first/last name pair. Both components are required for a
// valid result with fixed confidence 0.8; a missing component yields an
// error per field and confidence 0.0.
func (v *Validator) Validate(firstName, lastName string) Validation {
	first := strings.TrimSpace(firstName)
	last := strings.TrimSpace(lastName)

	result := Validation{
		Normalized: Components{
			FirstName: v.titler.String(strings.ToLower(first)),
			LastName:  v.titler.String(strings.ToLower(last)),
		},
	}

	if first == "" {
		result.Errors = append(result.Errors, "First name required")
	}
	if last == "" {
		result.Errors = append(result.Errors, "Last name required")
	}

	result.Valid = len(result.Errors) == 0
	if !result.Valid {
		result.Confidence = 0.0
		return result
	}
	result.Confidence = 0.8

	if !v.store.IsValidFirstName(first) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("First name %q not found in reference dictionaries", first))
		if v.enricher != nil {
			result.Suggestions = append(result.Suggestions, v.enricher.Suggest("first", first)...)
		}
	}
	if !v.store.IsValidLastName(last) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Last name %q not found in reference dictionaries", last))
		if v.enricher != nil {
			result.Suggestions = append(result.Suggestions, v.enricher.Suggest("last", last)...)
		}
	}

	v.observer.LogOperation(observability.StandardObservabilityData{
		Component: "name_validator",
		Operation: "validate",
		Success:   result.Valid,
		Metadata: map[string]interface{}{
			"warnings": len(result.Warnings),
		},
	})

	return result
}
