// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"time"

	"namecheck/internal/batch"
	"namecheck/internal/classify"
)

// FormatterOptions defines configuration options for formatters
type FormatterOptions struct {
	Verbose bool // Whether to display detailed information
	NoColor bool // Whether to disable colored output
}

// Envelope is the response wrapper shared by the CLI formatters and the API.
type Envelope struct {
	Status           string            `json:"status"`
	FilesProcessed   int               `json:"files_processed"`
	ProcessedCount   int               `json:"processed_count"`
	SuccessfulCount  int               `json:"successful_count"`
	FailedCount      int               `json:"failed_count"`
	SuccessRate      float64           `json:"success_rate"`
	Results          []classify.Result `json:"results"`
	ProcessingTimeMs int64             `json:"processing_time_ms"`
	Timestamp        string            `json:"timestamp"`
}

// NewEnvelope wraps a batch summary in the response envelope.
func NewEnvelope(summary batch.Summary) Envelope {
	results := summary.Results
	if results == nil {
		results = []classify.Result{}
	}
	return Envelope{
		Status:           "success",
		FilesProcessed:   summary.FilesProcessed,
		ProcessedCount:   summary.ProcessedCount,
		SuccessfulCount:  summary.SuccessfulCount,
		FailedCount:      summary.FailedCount,
		SuccessRate:      summary.SuccessRate,
		Results:          results,
		ProcessingTimeMs: summary.Duration.Milliseconds(),
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	}
}

// Formatter interface defines methods that all output formatters must implement
type Formatter interface {
	// Format renders a batch summary in the formatter's output format
	Format(summary batch.Summary, options FormatterOptions) (string, error)

	// Name returns the name of the formatter (e.g., "json", "text", "csv")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names
func (r *Registry) List() []string {
	var names []string
	for name := range r.formatters {
		names = append(names, name)
	}
	return names
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register adds a formatter to the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get retrieves a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List returns all formatter names in the default registry
func List() []string {
	return DefaultRegistry.List()
}
