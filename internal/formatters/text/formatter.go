// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"namecheck/internal/batch"
	"namecheck/internal/classify"
	"namecheck/internal/formatters"
)

// Formatter implements human-readable text output
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func init() {
	formatters.Register(NewFormatter())
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(summary batch.Summary, options formatters.FormatterOptions) (string, error) {
	// Disable colors if requested
	if options.NoColor {
		color.NoColor = true
	}

	if len(summary.Results) == 0 {
		return "No records processed.", nil
	}

	var sb strings.Builder
	for _, result := range summary.Results {
		f.writeResult(&sb, result, options)
	}

	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Processed: %d  Successful: %d  Failed: %d  Success rate: %.1f%%  Duration: %dms\n",
		summary.ProcessedCount, summary.SuccessfulCount, summary.FailedCount,
		summary.SuccessRate*100, summary.Duration.Milliseconds()))
	return sb.String(), nil
}

func (f *Formatter) writeResult(sb *strings.Builder, result classify.Result, options formatters.FormatterOptions) {
	statusColor := f.statusColor(result.Status)

	sb.WriteString(fmt.Sprintf("%s  %s  [%s]  %s  confidence=%.2f\n",
		f.colors["white"].Sprint(result.UniqueID),
		result.Name,
		f.colors["cyan"].Sprint(result.PartyType),
		statusColor.Sprint(strings.ToUpper(result.Status)),
		result.Confidence))

	if result.PartyType == classify.PartyTypeOrganization {
		if options.Verbose {
			sb.WriteString(fmt.Sprintf("    organization: %s\n", result.Parsed.OrganizationName))
		}
	} else if result.Parsed.FirstName != "" || result.Parsed.LastName != "" {
		parts := []string{}
		if result.Parsed.FirstName != "" {
			parts = append(parts, "first="+result.Parsed.FirstName)
		}
		if result.Parsed.MiddleName != "" {
			parts = append(parts, "middle="+result.Parsed.MiddleName)
		}
		if result.Parsed.LastName != "" {
			parts = append(parts, "last="+result.Parsed.LastName)
		}
		if result.Gender != "" {
			parts = append(parts, "gender="+result.Gender)
		}
		sb.WriteString("    " + strings.Join(parts, "  ") + "\n")
	}

	for _, errMsg := range result.Errors {
		sb.WriteString("    " + f.colors["red"].Sprint(errMsg) + "\n")
	}
	for _, warnMsg := range result.Warnings {
		sb.WriteString("    " + f.colors["yellow"].Sprint(warnMsg) + "\n")
	}

	if options.Verbose {
		if result.Suggestions.GenderPrediction != "" {
			sb.WriteString(fmt.Sprintf("    suggestion: gender=%s\n", result.Suggestions.GenderPrediction))
		}
		if result.Suggestions.PartyTypePrediction != "" {
			sb.WriteString(fmt.Sprintf("    suggestion: party_type=%s\n", result.Suggestions.PartyTypePrediction))
		}
		if len(result.Suggestions.NameSuggestions) > 0 {
			sb.WriteString(fmt.Sprintf("    suggestion: names %s\n",
				strings.Join(result.Suggestions.NameSuggestions, ", ")))
		}
	}
}

func (f *Formatter) statusColor(status string) *color.Color {
	switch status {
	case classify.StatusValid:
		return f.colors["green"]
	case classify.StatusWarning:
		return f.colors["yellow"]
	default:
		return f.colors["red"]
	}
}
