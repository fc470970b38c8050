// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package api exposes the classification pipeline over HTTP: a synchronous
// JSON endpoint for small payloads and an asynchronous file-upload flow for
// batch jobs.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"namecheck/internal/batch"
	"namecheck/internal/classify"
	"namecheck/internal/dictionary"
	"namecheck/internal/formatters"
	"namecheck/internal/observability"
	"namecheck/internal/version"
)

// maxSyncRecords caps the synchronous JSON endpoint; larger batches must go
// through the upload flow.
const maxSyncRecords = 1000

// Server wires the pipeline components behind HTTP handlers.
type Server struct {
	coordinator *batch.Coordinator
	store       *dictionary.Store
	jobs        *jobStore
	maxRecords  int
	observer    *observability.StandardObserver
	engine      *gin.Engine
}

// NewServer builds the HTTP server. maxRecords caps upload batch sizes;
// zero means no cap.
func NewServer(coordinator *batch.Coordinator, store *dictionary.Store, maxRecords int, observer *observability.StandardObserver) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		coordinator: coordinator,
		store:       store,
		jobs:        newJobStore(),
		maxRecords:  maxRecords,
		observer:    observer,
		engine:      gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/status", s.handleStatus)

	v1 := s.engine.Group("/api/v1")
	v1.POST("/validate-names", s.handleValidateNames)
	v1.POST("/validate-csv-upload", s.handleUpload)
	v1.GET("/job/:id/status", s.handleJobStatus)
	v1.GET("/job/:id/download", s.handleJobDownload)
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the server on the given port and blocks.
func (s *Server) Run(port int) error {
	return s.engine.Run(fmt.Sprintf(":%d", port))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"version":   version.Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":              "ok",
		"version":             version.Info(),
		"dictionaries_loaded": s.store.Loaded(),
		"dictionary_stats":    s.store.Stats(),
		"active_jobs":         s.jobs.count(),
	})
}

// validateRequest is the synchronous JSON payload.
type validateRequest struct {
	Records []classify.Record `json:"records" binding:"required"`
}

func (s *Server) handleValidateNames(c *gin.Context) {
	finish := s.observer.StartTiming("api", "validate_names", c.ClientIP())

	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		finish(false, nil)
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  fmt.Sprintf("invalid request body: %v", err),
		})
		return
	}
	if len(req.Records) == 0 {
		finish(false, nil)
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "records must not be empty",
		})
		return
	}
	if len(req.Records) > maxSyncRecords {
		finish(false, nil)
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"status": "error",
			"error":  fmt.Sprintf("too many records for synchronous processing (max %d); use the upload endpoint", maxSyncRecords),
		})
		return
	}

	for i := range req.Records {
		if req.Records[i].UniqueID == "" {
			req.Records[i].UniqueID = fmt.Sprintf("row_%d", i+1)
		}
	}

	summary := s.coordinator.Process(c.Request.Context(), req.Records)
	finish(true, map[string]interface{}{"records": summary.ProcessedCount})
	c.JSON(http.StatusOK, formatters.NewEnvelope(summary))
}

func (s *Server) handleUpload(c *gin.Context) {
	finish := s.observer.StartTiming("api", "upload", c.ClientIP())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		finish(false, nil)
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  "multipart field \"file\" is required",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		finish(false, nil)
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "error",
			"error":  fmt.Sprintf("opening upload: %v", err),
		})
		return
	}
	defer file.Close()

	records, err := batch.ReadRecords(file, fileHeader.Filename, s.maxRecords)
	if err != nil {
		finish(false, nil)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}

	job := s.jobs.create(fileHeader.Filename, len(records))
	go s.runJob(job.ID, records)

	finish(true, map[string]interface{}{"job_id": job.ID, "records": len(records)})
	c.JSON(http.StatusAccepted, gin.H{
		"status":       "accepted",
		"job_id":       job.ID,
		"record_count": len(records),
	})
}

// runJob executes a batch job in the background. The coordinator already
// confines per-record failures, so the only job-level failure mode is a
// panic, which is recovered into a failed job.
func (s *Server) runJob(id string, records []classify.Record) {
	defer func() {
		if r := recover(); r != nil {
			s.jobs.fail(id, fmt.Sprintf("internal error: %v", r))
		}
	}()

	summary := s.coordinator.Process(s.jobs.context(id), records)
	summary.FilesProcessed = 1
	s.jobs.complete(id, summary)
}

func (s *Server) handleJobStatus(c *gin.Context) {
	job, ok := s.jobs.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "error",
			"error":  "job not found",
		})
		return
	}
	c.JSON(http.StatusOK, job.statusView())
}

func (s *Server) handleJobDownload(c *gin.Context) {
	job, ok := s.jobs.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"status": "error",
			"error":  "job not found",
		})
		return
	}
	if job.State != jobCompleted {
		c.JSON(http.StatusConflict, gin.H{
			"status": "error",
			"error":  fmt.Sprintf("job is %s, results not available", job.State),
		})
		return
	}
	c.JSON(http.StatusOK, formatters.NewEnvelope(job.Summary))
}
