// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"namecheck/internal/classify"
	"namecheck/internal/observability"
)

// Summary reports the outcome of a batch run. A record counts as successful
// unless its status is "error"; invalid and warning records were still
// classified. FilesProcessed is set by callers that aggregate per-file runs.
type Summary struct {
	Results         []classify.Result
	FilesProcessed  int
	ProcessedCount  int
	SuccessfulCount int
	FailedCount     int
	SuccessRate     float64
	Duration        time.Duration
}

// Coordinator fans records out to a bounded worker pool. Classification is
// CPU-only and shares nothing mutable, so workers need no locking.
type Coordinator struct {
	classifier *classify.Classifier
	workers    int
	observer   *observability.StandardObserver
}

// NewCoordinator builds a coordinator. Workers below 1 are clamped to 1.
func NewCoordinator(classifier *classify.Classifier, workers int, observer *observability.StandardObserver) *Coordinator {
	if workers < 1 {
		workers = 1
	}
	return &Coordinator{
		classifier: classifier,
		workers:    workers,
		observer:   observer,
	}
}

// Process classifies all records concurrently and returns exactly one result
// per record, in input order. Cancellation is cooperative: records not yet
// started when ctx is done are reported as error-status results, but a
// record already in flight runs to completion.
func (c *Coordinator) Process(ctx context.Context, records []classify.Record) Summary {
	start := time.Now()
	finish := c.observer.StartTiming("batch", "process", "")

	results := make([]classify.Result, len(records))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, record := range records {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				results[i] = classify.NewErrorResult(record.UniqueID, record.Name,
					"batch cancelled before record was processed")
				return nil
			default:
			}
			results[i] = c.classifier.Classify(record)
			return nil
		})
	}
	// Workers never return errors; failures surface as per-record results.
	_ = g.Wait()

	summary := Summary{
		Results:        results,
		ProcessedCount: len(results),
		Duration:       time.Since(start),
	}
	for _, result := range results {
		if result.Status != classify.StatusError {
			summary.SuccessfulCount++
		}
	}
	summary.FailedCount = summary.ProcessedCount - summary.SuccessfulCount
	if summary.ProcessedCount > 0 {
		summary.SuccessRate = float64(summary.SuccessfulCount) / float64(summary.ProcessedCount)
	}

	finish(true, map[string]interface{}{
		"processed":  summary.ProcessedCount,
		"successful": summary.SuccessfulCount,
		"workers":    c.workers,
	})
	return summary
}
