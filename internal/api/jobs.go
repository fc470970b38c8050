// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"namecheck/internal/batch"
)

// Job lifecycle states.
const (
	jobProcessing = "processing"
	jobCompleted  = "completed"
	jobFailed     = "failed"
)

// job tracks one asynchronous batch run.
type job struct {
	ID          string
	Filename    string
	RecordCount int
	State       string
	Error       string
	Summary     batch.Summary
	CreatedAt   time.Time
	CompletedAt time.Time

	cancel context.CancelFunc
	ctx    context.Context
}

// statusView renders the externally visible job state.
func (j *job) statusView() map[string]interface{} {
	view := map[string]interface{}{
		"job_id":       j.ID,
		"filename":     j.Filename,
		"record_count": j.RecordCount,
		"state":        j.State,
		"created_at":   j.CreatedAt.UTC().Format(time.RFC3339),
	}
	if j.Error != "" {
		view["error"] = j.Error
	}
	if !j.CompletedAt.IsZero() {
		view["completed_at"] = j.CompletedAt.UTC().Format(time.RFC3339)
		view["processed_count"] = j.Summary.ProcessedCount
		view["successful_count"] = j.Summary.SuccessfulCount
	}
	return view
}

// jobStore is an in-memory job registry. Jobs are kept until the process
// exits; the expected deployment runs batches and restarts, so no eviction.
type jobStore struct {
	mu   sync.RWMutex
	jobs map[string]*job
}

func newJobStore() *jobStore {
	return &jobStore{jobs: make(map[string]*job)}
}

func (s *jobStore) create(filename string, recordCount int) *job {
	ctx, cancel := context.WithCancel(context.Background())
	j := &job{
		ID:          uuid.NewString(),
		Filename:    filename,
		RecordCount: recordCount,
		State:       jobProcessing,
		CreatedAt:   time.Now(),
		ctx:         ctx,
		cancel:      cancel,
	}

	s.mu.Lock()
	s.jobs[j.ID] = j
	s.mu.Unlock()
	return j
}

// get returns a copy so callers cannot race with state transitions.
func (s *jobStore) get(id string) (job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		return job{}, false
	}
	return *j, true
}

func (s *jobStore) context(id string) context.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if j, ok := s.jobs[id]; ok {
		return j.ctx
	}
	return context.Background()
}

func (s *jobStore) complete(id string, summary batch.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[id]; ok {
		j.State = jobCompleted
		j.Summary = summary
		j.CompletedAt = time.Now()
		j.cancel()
	}
}

func (s *jobStore) fail(id, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[id]; ok {
		j.State = jobFailed
		j.Error = message
		j.CompletedAt = time.Now()
		j.cancel()
	}
}

func (s *jobStore) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}
