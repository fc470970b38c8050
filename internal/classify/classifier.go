// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classify

import (
	"fmt"
	"strings"

	"namecheck/internal/dictionary"
	"namecheck/internal/nameparse"
	"namecheck/internal/observability"
	namevalidator "namecheck/internal/validators/name"
)

// Classifier orchestrates the classification of input records. It holds only
// read-only collaborators and is safe for concurrent use.
type Classifier struct {
	store     *dictionary.Store
	validator *namevalidator.Validator
	observer  *observability.StandardObserver
}

// NewClassifier builds a classifier around a dictionary store. The validator
// is optional; when nil, parsed names get fixed-confidence scoring without
// the dictionary-backed validity check.
func NewClassifier(store *dictionary.Store, validator *namevalidator.Validator, observer *observability.StandardObserver) *Classifier {
	return &Classifier{
		store:     store,
		validator: validator,
		observer:  observer,
	}
}

// Classify processes a single record. It never panics: an internal failure
// is converted into an error-status result at the record boundary so one bad
// record cannot abort a batch.
func (c *Classifier) Classify(record Record) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = newResult(record.UniqueID, record.Name)
			result.Status = StatusError
			result.Errors = append(result.Errors, fmt.Sprintf("internal error: %v", r))
			c.observer.LogOperation(observability.StandardObservabilityData{
				Component: "classifier",
				Operation: "classify",
				RecordID:  record.UniqueID,
				Success:   false,
				Error:     fmt.Sprintf("%v", r),
			})
		}
	}()

	name := strings.TrimSpace(record.Name)
	genderHint := strings.ToUpper(strings.TrimSpace(record.GenderHint))
	partyHint := strings.TrimSpace(record.PartyTypeHint)
	parseInd := strings.ToUpper(strings.TrimSpace(record.ParseIndicator))

	result = newResult(record.UniqueID, record.Name)

	if IsOrganization(name, partyHint) {
		c.classifyOrganization(&result, name)
	} else {
		c.classifyIndividual(&result, name, genderHint, parseInd)
	}

	if partyHint == "" {
		result.Suggestions.PartyTypePrediction = result.PartyType
	}
	return result
}

// classifyOrganization fills the organization branch of a result.
// Organizations are never parsed into person-name components, whatever the
// caller's parse indicator says.
func (c *Classifier) classifyOrganization(result *Result, name string) {
	result.PartyType = PartyTypeOrganization
	result.Gender = ""
	result.ParseIndicator = "N"
	result.Parsed = ParsedComponents{OrganizationName: name}
	result.Status = StatusValid
	result.Confidence = confidenceOrganization
}

// classifyIndividual fills the individual branch of a result, parsing the
// name unless the caller explicitly opted out.
func (c *Classifier) classifyIndividual(result *Result, name, genderHint, parseInd string) {
	result.PartyType = PartyTypeIndividual

	if parseInd == "N" {
		// Caller asserted the name should be used as-is.
		result.ParseIndicator = "N"
		result.Status = StatusValid
		result.Confidence = confidenceUnparsed
	} else {
		result.ParseIndicator = "Y"
		parsed := nameparse.Parse(name)
		result.Parsed = ParsedComponents{
			FirstName:  parsed.FirstName,
			MiddleName: parsed.MiddleName,
			LastName:   parsed.LastName,
		}

		if parsed.Empty() {
			result.Status = StatusInvalid
			result.Errors = append(result.Errors, "Could not parse name into valid components")
			result.Confidence = confidenceInvalid
		} else if c.validator != nil {
			validation := c.validator.Validate(parsed.FirstName, parsed.LastName)
			if validation.Valid {
				result.Status = StatusValid
			} else {
				result.Status = StatusWarning
			}
			result.Confidence = validation.Confidence
			result.Warnings = append(result.Warnings, validation.Errors...)
			result.Warnings = append(result.Warnings, validation.Warnings...)
			result.Suggestions.NameSuggestions = append(result.Suggestions.NameSuggestions, validation.Suggestions...)
		} else {
			result.Status = StatusValid
			result.Confidence = confidenceParsedName
		}
	}

	if genderHint != "" {
		result.Gender = genderHint
	} else if result.Parsed.FirstName != "" {
		prediction := c.store.PredictGender(result.Parsed.FirstName)
		result.Gender = prediction
		if prediction != "" {
			result.Suggestions.GenderPrediction = prediction
		}
	}
}

// ClassifyAll processes records sequentially and always returns exactly one
// result per input record.
func (c *Classifier) ClassifyAll(records []Record) []Result {
	results := make([]Result, len(records))
	for i, record := range records {
		results[i] = c.Classify(record)
	}
	return results
}
