package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/readyplan/ready-api/config"
	"github.com/readyplan/ready-api/internal/core"
	"github.com/readyplan/ready-api/internal/domain/model"
	apperrors "github.com/readyplan/ready-api/internal/errors"
	"github.com/readyplan/ready-api/internal/observability/statsd"
)

// GenerationServiceOptions groups dependencies for GenerationService.
type GenerationServiceOptions struct {
	Reports core.ReportRepository       // Required: report repository
	Jobs    core.GenerationJobRepository // Required: generation job repository
	Compute core.ComputeClient          // Required: compute service client
	Config  config.GenerationConfig     // Required: generation configuration
	Logger  *slog.Logger                // Optional: structured logger
	Metrics statsd.Sink                 // Optional: metrics sink (StatsD-compatible)
}

// GenerationService orchestrates report generation against the compute
// service: submitting jobs, cancelling in-flight jobs, and exposing job state.
//
// A local job row exists only after the compute service has accepted the
// submission, so the database never references a remote job that was never
// created. Cancellation inverts that priority: local cleanup is guaranteed
// even when the remote side is unreachable.
type GenerationService struct {
	reports core.ReportRepository
	jobs    core.GenerationJobRepository
	compute core.ComputeClient
	config  config.GenerationConfig
	logger  *slog.Logger
	metrics statsd.Sink
}

// NewGenerationService constructs a new GenerationService.
func NewGenerationService(opts GenerationServiceOptions) (*GenerationService, error) {
	if opts.Reports == nil {
		return nil, errors.New("ReportRepository is required")
	}
	if opts.Jobs == nil {
		return nil, errors.New("GenerationJobRepository is required")
	}
	if opts.Compute == nil {
		return nil, errors.New("ComputeClient is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "generation_service")
	}

	return &GenerationService{
		reports: opts.Reports,
		jobs:    opts.Jobs,
		compute: opts.Compute,
		config:  opts.Config,
		logger:  logger,
		metrics: opts.Metrics,
	}, nil
}

// Submit starts generation for a report owned by userID.
//
// The conflict check runs before the remote call so a report that already has
// a job never causes a duplicate remote submission. If a concurrent submit
// slips past the check, the unique constraint on report_id rejects the second
// local insert and the orphaned remote job is cancelled best effort.
func (s *GenerationService) Submit(
	ctx context.Context,
	userID string,
	req *model.SubmitGenerationRequest,
) (*model.GenerationJob, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	report, err := s.reports.GetByID(ctx, req.ReportID)
	if err != nil {
		return nil, err
	}
	if report.UserID != userID {
		return nil, apperrors.Forbidden("report belongs to another user")
	}

	if _, err := s.jobs.GetByReportID(ctx, req.ReportID); err == nil {
		return nil, apperrors.Conflict("a generation job already exists for this report")
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	externalJobID, err := s.compute.SubmitJob(ctx, core.SubmitJobParams{
		WorkflowName: req.WorkflowName,
		InputData:    req.InputData,
		UserID:       userID,
		WebhookURL:   s.webhookURL(),
	})
	if err != nil {
		s.count("generation.submit", "error")
		return nil, err
	}

	job, err := s.jobs.Create(ctx, &model.GenerationJob{
		ReportID:      req.ReportID,
		ExternalJobID: externalJobID,
		WorkflowName:  req.WorkflowName,
	})
	if err != nil {
		if apperrors.IsConflict(err) {
			// Lost a race with a concurrent submit. The remote job we just
			// created has no local row, so try to stop it.
			s.cancelRemote(ctx, externalJobID)
		}
		s.count("generation.submit", "error")
		return nil, err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "generation job submitted",
			"job_id", job.ID,
			"report_id", job.ReportID,
			"external_job_id", job.ExternalJobID,
			"workflow", job.WorkflowName,
		)
	}
	s.count("generation.submit", "success")
	return job, nil
}

// Cancel stops generation for a report owned by userID and removes both the
// job and the report. Remote cancellation is best effort; local deletion
// happens regardless of the remote outcome.
func (s *GenerationService) Cancel(ctx context.Context, userID, reportID string) error {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return err
	}
	if report.UserID != userID {
		return apperrors.Forbidden("report belongs to another user")
	}

	job, err := s.jobs.GetByReportID(ctx, reportID)
	if err != nil {
		return err
	}

	s.cancelRemote(ctx, job.ExternalJobID)

	deleted, err := s.jobs.DeleteWithReport(ctx, job.ID)
	if err != nil {
		s.count("generation.cancel", "error")
		return err
	}
	if !deleted {
		// Someone else removed the job between the lookup and the delete.
		s.count("generation.cancel", "noop")
		return nil
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "generation job cancelled",
			"job_id", job.ID,
			"report_id", reportID,
			"external_job_id", job.ExternalJobID,
		)
	}
	s.count("generation.cancel", "success")
	return nil
}

// Status returns the generation job for a report owned by userID.
func (s *GenerationService) Status(ctx context.Context, userID, reportID string) (*model.GenerationJob, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.UserID != userID {
		return nil, apperrors.Forbidden("report belongs to another user")
	}
	return s.jobs.GetByReportID(ctx, reportID)
}

func (s *GenerationService) cancelRemote(ctx context.Context, externalJobID string) {
	if err := s.compute.CancelJobs(ctx, []string{externalJobID}); err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "remote cancellation failed",
				"external_job_id", externalJobID,
				"error", err,
			)
		}
		s.count("generation.remote_cancel", "error")
		return
	}
	s.count("generation.remote_cancel", "success")
}

func (s *GenerationService) webhookURL() string {
	base := strings.TrimRight(s.config.CallbackBaseURL, "/")
	return base + "/webhooks/generation"
}

func (s *GenerationService) count(name, result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.Count(name, 1, map[string]string{"result": result})
}
