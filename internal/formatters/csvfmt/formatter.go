// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csvfmt

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"namecheck/internal/batch"
	"namecheck/internal/formatters"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func init() {
	formatters.Register(NewFormatter())
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(summary batch.Summary, options formatters.FormatterOptions) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"uniqueid", "name", "party_type",
		"first_name", "middle_name", "last_name", "organization_name",
		"gender", "parse_indicator", "validation_status", "confidence_score",
		"errors", "warnings",
	}
	if err := writer.Write(header); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}

	for _, result := range summary.Results {
		row := []string{
			result.UniqueID,
			result.Name,
			result.PartyType,
			result.Parsed.FirstName,
			result.Parsed.MiddleName,
			result.Parsed.LastName,
			result.Parsed.OrganizationName,
			result.Gender,
			result.ParseIndicator,
			result.Status,
			strconv.FormatFloat(result.Confidence, 'f', 2, 64),
			strings.Join(result.Errors, "; "),
			strings.Join(result.Warnings, "; "),
		}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("writing row for %s: %w", result.UniqueID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
