package service

import (
	"context"
	"errors"

	"github.com/readyplan/ready-api/internal/core"
	"github.com/readyplan/ready-api/internal/domain/model"
	apperrors "github.com/readyplan/ready-api/internal/errors"
)

// ReportServiceOptions groups dependencies for ReportService.
type ReportServiceOptions struct {
	Reports core.ReportRepository
}

// ReportService provides report CRUD with per-user ownership checks.
type ReportService struct {
	reports core.ReportRepository
}

// NewReportService constructs a new ReportService.
func NewReportService(opts ReportServiceOptions) (*ReportService, error) {
	if opts.Reports == nil {
		return nil, errors.New("ReportRepository is required")
	}
	return &ReportService{reports: opts.Reports}, nil
}

// Create creates a report for the given user.
func (s *ReportService) Create(ctx context.Context, req *model.CreateReportRequest) (*model.Report, error) {
	return s.reports.Create(ctx, req)
}

// GetForUser returns the report only if userID owns it.
func (s *ReportService) GetForUser(ctx context.Context, userID, reportID string) (*model.Report, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.UserID != userID {
		return nil, apperrors.Forbidden("report belongs to another user")
	}
	return report, nil
}
