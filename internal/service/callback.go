package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/readyplan/ready-api/config"
	"github.com/readyplan/ready-api/internal/core"
	"github.com/readyplan/ready-api/internal/domain/delivery"
	"github.com/readyplan/ready-api/internal/domain/model"
	apperrors "github.com/readyplan/ready-api/internal/errors"
	"github.com/readyplan/ready-api/internal/observability/metrics"
	"github.com/readyplan/ready-api/internal/observability/statsd"
	"github.com/readyplan/ready-api/internal/signature"
)

// CallbackOutcome describes what a webhook delivery resulted in.
type CallbackOutcome string

const (
	// OutcomeApplied means the delivery moved a job to a terminal status.
	OutcomeApplied CallbackOutcome = "applied"
	// OutcomeRejected means signature verification failed; the delivery was
	// stored and processing stopped.
	OutcomeRejected CallbackOutcome = "rejected"
	// OutcomeDuplicate means the callback ID was seen before; the original
	// row was kept untouched.
	OutcomeDuplicate CallbackOutcome = "duplicate"
	// OutcomeOrphaned means the delivery verified but could not be matched
	// to a known job.
	OutcomeOrphaned CallbackOutcome = "orphaned"
	// OutcomeIgnored means the delivery verified and matched a job but
	// carried no terminal result, or arrived after the job already finished.
	OutcomeIgnored CallbackOutcome = "ignored"
)

// HandleDeliveryParams carries one inbound webhook delivery. Body is the
// exact raw request body; signature verification depends on it byte for byte.
type HandleDeliveryParams struct {
	Body            []byte
	SignatureHeader string
	EventHeader     string
	DeliveryHeader  string
}

// CallbackServiceOptions groups dependencies for CallbackService.
type CallbackServiceOptions struct {
	Callbacks core.CallbackRepository      // Required: callback delivery repository
	Jobs      core.GenerationJobRepository // Required: generation job repository
	Extractor *delivery.Extractor          // Required: payload field extractor
	Config    config.GenerationConfig      // Required: webhook secret lives here
	Logger    *slog.Logger                 // Optional: structured logger
	Metrics   statsd.Sink                  // Optional: metrics sink (StatsD-compatible)
}

// CallbackService receives webhook deliveries from the compute service and
// drives them through verification, deduplication, and application.
//
// Every delivery is stored exactly once, keyed by its callback ID, with the
// verification outcome recorded at receipt time. Redeliveries return the
// original row; the outcome is never recomputed. Only verified deliveries
// that match a known job can change job state.
type CallbackService struct {
	callbacks core.CallbackRepository
	jobs      core.GenerationJobRepository
	extractor *delivery.Extractor
	secret    string
	logger    *slog.Logger
	metrics   statsd.Sink
}

// NewCallbackService constructs a new CallbackService.
func NewCallbackService(opts CallbackServiceOptions) (*CallbackService, error) {
	if opts.Callbacks == nil {
		return nil, errors.New("CallbackRepository is required")
	}
	if opts.Jobs == nil {
		return nil, errors.New("GenerationJobRepository is required")
	}
	if opts.Extractor == nil {
		return nil, errors.New("Extractor is required")
	}
	if opts.Config.WebhookSecret == "" {
		return nil, errors.New("webhook secret is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "callback_service")
	}

	return &CallbackService{
		callbacks: opts.Callbacks,
		jobs:      opts.Jobs,
		extractor: opts.Extractor,
		secret:    opts.Config.WebhookSecret,
		logger:    logger,
		metrics:   opts.Metrics,
	}, nil
}

// HandleDelivery processes one inbound webhook delivery end to end.
//
// An unverifiable delivery is a business outcome, not an error: it is stored
// with signature_valid=false and the method returns OutcomeRejected with a
// nil error. Errors are reserved for infrastructure failures (the store being
// unreachable), which the caller should surface as a retryable 5xx.
func (s *CallbackService) HandleDelivery(
	ctx context.Context,
	params HandleDeliveryParams,
) (*model.CallbackDelivery, CallbackOutcome, error) {
	valid := signature.Verify(s.secret, params.Body, params.SignatureHeader)
	fields, extracted := s.extractor.Extract(params.Body)

	callbackID := s.deriveCallbackID(params, fields)

	stored, inserted, err := s.callbacks.Insert(ctx, core.InsertCallbackParams{
		CallbackID:     callbackID,
		SignatureValid: valid,
		ExternalJobID:  fields.JobID,
		EventType:      s.eventType(params, fields),
		WorkflowName:   fields.Workflow,
		Payload:        params.Body,
	})
	if err != nil {
		return nil, "", err
	}

	if !inserted {
		s.count("callback.delivery", string(OutcomeDuplicate))
		if s.logger != nil {
			s.logger.InfoContext(ctx, "duplicate callback delivery",
				"callback_id", callbackID,
			)
		}
		return stored, OutcomeDuplicate, nil
	}

	if !stored.SignatureValid {
		s.count("callback.delivery", string(OutcomeRejected))
		if s.logger != nil {
			s.logger.WarnContext(ctx, "callback delivery rejected",
				"callback_id", callbackID,
				"payload_bytes", len(params.Body),
			)
		}
		return stored, OutcomeRejected, nil
	}

	outcome, err := s.apply(ctx, stored, fields, extracted)
	if err != nil {
		return stored, "", err
	}
	s.count("callback.delivery", string(outcome))
	return stored, outcome, nil
}

// apply correlates a verified delivery with its job and records the terminal
// result. The job status update and the report content write share one
// transaction inside the repository.
func (s *CallbackService) apply(
	ctx context.Context,
	stored *model.CallbackDelivery,
	fields delivery.Fields,
	extracted bool,
) (CallbackOutcome, error) {
	if !extracted || fields.JobID == nil {
		s.logOrphan(ctx, stored, "payload carries no job id")
		return OutcomeOrphaned, nil
	}

	job, err := s.jobs.GetByExternalJobID(ctx, *fields.JobID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.logOrphan(ctx, stored, "no job matches external job id")
			return OutcomeOrphaned, nil
		}
		return "", err
	}

	status, terminal := terminalStatus(fields)
	if !terminal {
		if s.logger != nil {
			s.logger.DebugContext(ctx, "callback delivery carries no terminal result",
				"callback_id", stored.CallbackID,
				"job_id", job.ID,
			)
		}
		return OutcomeIgnored, nil
	}

	applyParams := core.ApplyTerminalParams{JobID: job.ID, Status: status}
	if status == model.JobStatusCompleted {
		applyParams.Content = fields.Content
	}

	if _, err := s.jobs.ApplyTerminal(ctx, applyParams); err != nil {
		if errors.Is(err, model.ErrIllegalTransition) {
			// The job already reached a terminal status. The delivery stays
			// stored for audit, but the settled result stands.
			if s.logger != nil {
				s.logger.InfoContext(ctx, "late callback for settled job",
					"callback_id", stored.CallbackID,
					"job_id", job.ID,
					"status", status,
				)
			}
			return OutcomeIgnored, nil
		}
		return "", err
	}

	metrics.EmitJobLifecycle(s.metrics, metrics.JobMetric{
		Workflow:   job.WorkflowName,
		Transition: string(status),
		Result:     metrics.ResultSuccess,
		Duration:   time.Since(job.CreatedAt),
	})
	if s.logger != nil {
		s.logger.InfoContext(ctx, "callback delivery applied",
			"callback_id", stored.CallbackID,
			"job_id", job.ID,
			"status", status,
		)
	}
	return OutcomeApplied, nil
}

// deriveCallbackID picks the deduplication key for a delivery. The sender's
// delivery header wins; otherwise a stable key is built from the payload so
// retries of the same event collapse; a payload yielding neither gets a
// random ID and is never deduplicated.
func (s *CallbackService) deriveCallbackID(params HandleDeliveryParams, fields delivery.Fields) string {
	if id := strings.TrimSpace(params.DeliveryHeader); id != "" {
		return id
	}
	if fields.JobID != nil && fields.Event != nil {
		return fmt.Sprintf("%s:%s", *fields.JobID, *fields.Event)
	}
	return uuid.New().String()
}

func (s *CallbackService) eventType(params HandleDeliveryParams, fields delivery.Fields) *string {
	if fields.Event != nil {
		return fields.Event
	}
	if ev := strings.TrimSpace(params.EventHeader); ev != "" {
		return &ev
	}
	return nil
}

func (s *CallbackService) logOrphan(ctx context.Context, stored *model.CallbackDelivery, reason string) {
	s.count("callback.orphaned", "stored")
	if s.logger == nil {
		return
	}
	attrs := []any{
		"callback_id", stored.CallbackID,
		"reason", reason,
	}
	if stored.ExternalJobID != nil {
		attrs = append(attrs, "external_job_id", *stored.ExternalJobID)
	}
	s.logger.WarnContext(ctx, "orphaned callback delivery", attrs...)
}

// terminalStatus derives the terminal job status from the extracted fields.
// The status field wins; the event name is the fallback. Anything else is
// not a terminal result.
func terminalStatus(fields delivery.Fields) (model.JobStatus, bool) {
	if fields.Status != nil {
		if st, ok := parseTerminal(*fields.Status); ok {
			return st, true
		}
	}
	if fields.Event != nil {
		ev := *fields.Event
		if i := strings.LastIndex(ev, "."); i >= 0 {
			ev = ev[i+1:]
		}
		return parseTerminal(ev)
	}
	return "", false
}

func parseTerminal(raw string) (model.JobStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "completed", "complete", "succeeded", "success":
		return model.JobStatusCompleted, true
	case "failed", "error":
		return model.JobStatusFailed, true
	case "cancelled", "canceled":
		return model.JobStatusCancelled, true
	default:
		return "", false
	}
}

// List returns stored deliveries for the admin review API.
func (s *CallbackService) List(ctx context.Context, opts model.CallbackListOptions) ([]*model.CallbackDelivery, error) {
	return s.callbacks.List(ctx, opts)
}

// Get returns one stored delivery by row ID.
func (s *CallbackService) Get(ctx context.Context, id string) (*model.CallbackDelivery, error) {
	return s.callbacks.GetByID(ctx, id)
}

// MarkViewed records that a reviewer looked at a delivery. Marking twice is
// not an error.
func (s *CallbackService) MarkViewed(ctx context.Context, deliveryID, reviewerID string) error {
	if strings.TrimSpace(reviewerID) == "" {
		return apperrors.Validation("reviewer id is required")
	}
	return s.callbacks.MarkViewed(ctx, deliveryID, reviewerID)
}

func (s *CallbackService) count(name, result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.Count(name, 1, map[string]string{"result": result})
}
