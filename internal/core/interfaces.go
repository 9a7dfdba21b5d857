package core

import (
	"context"
	"time"

	"github.com/readyplan/ready-api/internal/domain/model"
)

// This file contains repository and client interface definitions (ports in
// hexagonal architecture). Service implementations should depend on these
// interfaces, not concrete implementations.

// ReportRepository defines the interface for report data operations.
type ReportRepository interface {
	Create(ctx context.Context, req *model.CreateReportRequest) (*model.Report, error)
	GetByID(ctx context.Context, id string) (*model.Report, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ApplyTerminalParams groups parameters for GenerationJobRepository.ApplyTerminal.
type ApplyTerminalParams struct {
	JobID string
	// Status is the terminal status to record. Must pass the model transition check.
	Status model.JobStatus
	// Content is written to the owning report when non-nil (successful completion).
	Content *string
}

// GenerationJobRepository defines the interface for generation job data operations.
type GenerationJobRepository interface {
	Create(ctx context.Context, job *model.GenerationJob) (*model.GenerationJob, error)
	GetByID(ctx context.Context, id string) (*model.GenerationJob, error)
	GetByReportID(ctx context.Context, reportID string) (*model.GenerationJob, error)
	GetByExternalJobID(ctx context.Context, externalJobID string) (*model.GenerationJob, error)

	// ApplyTerminal moves a job to a terminal status and, for completions,
	// writes the generated content to the owning report. Both writes happen
	// in a single transaction. Returns the updated job.
	ApplyTerminal(ctx context.Context, params ApplyTerminalParams) (*model.GenerationJob, error)

	// DeleteWithReport removes the job and its owning report in a single
	// transaction. Returns false when the job no longer exists.
	DeleteWithReport(ctx context.Context, jobID string) (bool, error)
}

// InsertCallbackParams groups parameters for CallbackRepository.Insert.
type InsertCallbackParams struct {
	CallbackID     string
	SignatureValid bool
	ExternalJobID  *string
	EventType      *string
	WorkflowName   *string
	// Payload is stored verbatim; it is never re-serialised.
	Payload []byte
}

// CallbackRepository defines the interface for callback delivery data operations.
type CallbackRepository interface {
	// Insert stores a delivery if its callback ID has not been seen before.
	// Returns the stored row and whether this call inserted it; a duplicate
	// returns the existing row with inserted=false.
	Insert(ctx context.Context, params InsertCallbackParams) (*model.CallbackDelivery, bool, error)
	GetByID(ctx context.Context, id string) (*model.CallbackDelivery, error)
	GetByCallbackID(ctx context.Context, callbackID string) (*model.CallbackDelivery, error)
	List(ctx context.Context, opts model.CallbackListOptions) ([]*model.CallbackDelivery, error)

	// MarkViewed records that reviewerID viewed the delivery. Duplicate marks
	// succeed without error.
	MarkViewed(ctx context.Context, deliveryID, reviewerID string) error

	// ListOlderThan returns deliveries created before cutoff, oldest first,
	// up to limit rows. Used by the archiver.
	ListOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]*model.CallbackDelivery, error)

	// DeleteByIDs removes deliveries by primary key and returns the number deleted.
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}

// SubmitJobParams groups parameters for ComputeClient.SubmitJob.
type SubmitJobParams struct {
	WorkflowName string
	InputData    map[string]any
	UserID       string
	WebhookURL   string
}

// ComputeClient defines the interface to the external generation service.
type ComputeClient interface {
	// SubmitJob submits a workflow run and returns the remote job ID.
	SubmitJob(ctx context.Context, params SubmitJobParams) (string, error)

	// CancelJobs requests cancellation of the given remote jobs. Best
	// effort: callers log and discard the error.
	CancelJobs(ctx context.Context, jobIDs []string) error
}

// ArchiveStore defines the interface for the callback archive backend.
type ArchiveStore interface {
	// Put writes one archived object under key.
	Put(ctx context.Context, key string, data []byte) error
}
