// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters_test

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"namecheck/internal/batch"
	"namecheck/internal/classify"
	"namecheck/internal/formatters"
	csvformatter "namecheck/internal/formatters/csvfmt"
	jsonformatter "namecheck/internal/formatters/json"
	textformatter "namecheck/internal/formatters/text"
)

func sampleSummary() batch.Summary {
	return batch.Summary{
		Results: []classify.Result{
			{
				UniqueID:   "1",
				Name:       "John Smith",
				PartyType:  "I",
				Parsed:     classify.ParsedComponents{FirstName: "John", LastName: "Smith"},
				Gender:     "M",
				Status:     "valid",
				Confidence: 0.8,
			},
			{
				UniqueID:   "2",
				Name:       "Acme Hospital",
				PartyType:  "O",
				Parsed:     classify.ParsedComponents{OrganizationName: "Acme Hospital"},
				Status:     "valid",
				Confidence: 0.9,
			},
			{
				UniqueID:   "3",
				Name:       "",
				PartyType:  "I",
				Status:     "invalid",
				Confidence: 0.2,
				Errors:     []string{"Could not parse name into valid components"},
				Warnings:   []string{"Input row had no name value"},
			},
		},
		FilesProcessed:  1,
		ProcessedCount:  3,
		SuccessfulCount: 3,
		FailedCount:     0,
		SuccessRate:     1.0,
		Duration:        42 * time.Millisecond,
	}
}

func TestRegistryContainsBuiltins(t *testing.T) {
	for _, name := range []string{"json", "csv", "text"} {
		if _, ok := formatters.Get(name); !ok {
			t.Errorf("formatter %q not registered", name)
		}
	}
}

func TestJSONFormatterEnvelope(t *testing.T) {
	out, err := jsonformatter.NewFormatter().Format(sampleSummary(), formatters.FormatterOptions{})
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	var envelope map[string]interface{}
	if err := json.Unmarshal([]byte(out), &envelope); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if envelope["status"] != "success" {
		t.Errorf("status = %v, want success", envelope["status"])
	}
	if envelope["files_processed"] != float64(1) {
		t.Errorf("files_processed = %v, want 1", envelope["files_processed"])
	}
	if envelope["processed_count"] != float64(3) {
		t.Errorf("processed_count = %v, want 3", envelope["processed_count"])
	}
	if envelope["successful_count"] != float64(3) {
		t.Errorf("successful_count = %v, want 3", envelope["successful_count"])
	}
	if envelope["failed_count"] != float64(0) {
		t.Errorf("failed_count = %v, want 0", envelope["failed_count"])
	}
	if envelope["success_rate"] != float64(1) {
		t.Errorf("success_rate = %v, want 1", envelope["success_rate"])
	}
	results, ok := envelope["results"].([]interface{})
	if !ok || len(results) != 3 {
		t.Fatalf("results = %v, want 3 entries", envelope["results"])
	}
	first, ok := results[0].(map[string]interface{})
	if !ok {
		t.Fatalf("results[0] = %v", results[0])
	}
	if first["validation_status"] != "valid" {
		t.Errorf("validation_status = %v", first["validation_status"])
	}
	components, ok := first["parsed_components"].(map[string]interface{})
	if !ok || components["first_name"] != "John" {
		t.Errorf("parsed_components = %v", first["parsed_components"])
	}
	if _, ok := envelope["timestamp"].(string); !ok {
		t.Error("timestamp missing")
	}
}

func TestJSONFormatterEmptyResultsArray(t *testing.T) {
	out, err := jsonformatter.NewFormatter().Format(batch.Summary{}, formatters.FormatterOptions{})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if !strings.Contains(out, `"results": []`) {
		t.Errorf("empty summary must serialize results as [], got:\n%s", out)
	}
}

func TestCSVFormatter(t *testing.T) {
	out, err := csvformatter.NewFormatter().Format(sampleSummary(), formatters.FormatterOptions{})
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want header + 3", len(rows))
	}
	wantHeader := []string{
		"uniqueid", "name", "party_type",
		"first_name", "middle_name", "last_name", "organization_name",
		"gender", "parse_indicator", "validation_status", "confidence_score",
		"errors", "warnings",
	}
	for i, want := range wantHeader {
		if rows[0][i] != want {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], want)
		}
	}
	if rows[1][3] != "John" || rows[1][5] != "Smith" {
		t.Errorf("name component cells = %v", rows[1])
	}
	if rows[2][6] != "Acme Hospital" {
		t.Errorf("organization_name cell = %q", rows[2][6])
	}
	if rows[3][11] != "Could not parse name into valid components" {
		t.Errorf("errors cell = %q", rows[3][11])
	}
	if rows[3][12] != "Input row had no name value" {
		t.Errorf("warnings cell = %q", rows[3][12])
	}
}

func TestTextFormatter(t *testing.T) {
	out, err := textformatter.NewFormatter().Format(sampleSummary(), formatters.FormatterOptions{NoColor: true})
	if err != nil {
		t.Fatalf("format: %v", err)
	}

	wants := []string{
		"John Smith", "VALID", "INVALID",
		"Processed: 3", "Successful: 3", "Failed: 0", "Success rate: 100.0%",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTextFormatterEmpty(t *testing.T) {
	out, err := textformatter.NewFormatter().Format(batch.Summary{}, formatters.FormatterOptions{NoColor: true})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if out != "No records processed." {
		t.Errorf("out = %q", out)
	}
}
