// Package model defines the core data types used throughout the generation pipeline.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// JobStatus represents the lifecycle state of a generation job.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type JobStatus string

const (
	// JobStatusGenerating indicates the remote compute service accepted the
	// job and a result has not arrived yet. This is the only non-terminal
	// state, and the only state a job can be created in.
	JobStatusGenerating JobStatus = "generating"
	// JobStatusCompleted indicates the job finished and the report content was applied.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates the remote service reported a failure.
	JobStatusFailed JobStatus = "failed"
	// JobStatusCancelled indicates the job was cancelled before a result arrived.
	JobStatusCancelled JobStatus = "cancelled"
)

// UnmarshalText implements encoding.TextUnmarshaler for JobStatus.
func (s *JobStatus) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	js := JobStatus(v)
	if js.Valid() {
		*s = js
		return nil
	}
	return fmt.Errorf("invalid JobStatus: %q", v)
}

// Valid returns true if the JobStatus is valid.
func (s JobStatus) Valid() bool {
	return s == JobStatusGenerating || s == JobStatusCompleted ||
		s == JobStatusFailed || s == JobStatusCancelled
}

// Terminal returns true when no further transitions are allowed from s.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed || s == JobStatusCancelled
}

// ErrIllegalTransition is returned when a status transition violates the job
// lifecycle. Callers can detect stale or duplicate results with errors.Is.
var ErrIllegalTransition = errors.New("illegal job status transition")

// Transition validates a status change and returns the new status. All status
// changes in the system go through here; there is deliberately no other path
// to mutate a job's status.
func (s JobStatus) Transition(to JobStatus) (JobStatus, error) {
	if !to.Valid() {
		return s, fmt.Errorf("%w: %q -> %q (unknown target)", ErrIllegalTransition, s, to)
	}
	if s != JobStatusGenerating {
		return s, fmt.Errorf("%w: %q -> %q", ErrIllegalTransition, s, to)
	}
	if to == JobStatusGenerating {
		return s, fmt.Errorf("%w: %q -> %q", ErrIllegalTransition, s, to)
	}
	return to, nil
}

// GenerationJob tracks one remote generation run for a report. A report has at
// most one job at a time; ExternalJobID is never empty because the row is only
// created after the remote service has accepted the submission.
type GenerationJob struct {
	ID            string    `json:"id"              db:"id"`
	ReportID      string    `json:"report_id"       db:"report_id"`
	ExternalJobID string    `json:"external_job_id" db:"external_job_id"`
	WorkflowName  string    `json:"workflow_name"   db:"workflow_name"`
	Status        JobStatus `json:"status"          db:"status"`
	CreatedAt     time.Time `json:"created_at"      db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"      db:"updated_at"`
}

// SubmitGenerationRequest represents a request to start generation for a report.
type SubmitGenerationRequest struct {
	ReportID     string         `json:"report_id"`
	WorkflowName string         `json:"workflow_name"`
	InputData    map[string]any `json:"input_data,omitempty"`
}

// Validate validates the SubmitGenerationRequest fields.
func (r *SubmitGenerationRequest) Validate() error {
	if strings.TrimSpace(r.ReportID) == "" {
		return errors.New("report ID is required")
	}
	if strings.TrimSpace(r.WorkflowName) == "" {
		return errors.New("workflow name is required")
	}
	return nil
}
