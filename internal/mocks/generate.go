// Package mocks provides mock implementations for testing the generation pipeline.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockReportRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(report, nil)
package mocks

// Generate mock for ReportRepository interface from internal/core package.
// This creates MockReportRepository with methods for all ReportRepository interface methods:
// Create, GetByID, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=report_repository_mock.go github.com/readyplan/ready-api/internal/core ReportRepository

// Generate mock for GenerationJobRepository interface from internal/core package.
// This creates MockGenerationJobRepository with methods for all GenerationJobRepository interface methods:
// Create, GetByID, GetByReportID, GetByExternalJobID, ApplyTerminal, DeleteWithReport
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=generation_job_repository_mock.go github.com/readyplan/ready-api/internal/core GenerationJobRepository

// Generate mock for CallbackRepository interface from internal/core package.
// This creates MockCallbackRepository with methods for all CallbackRepository interface methods:
// Insert, GetByID, GetByCallbackID, List, MarkViewed, ListOlderThan, DeleteByIDs
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=callback_repository_mock.go github.com/readyplan/ready-api/internal/core CallbackRepository

// Generate mock for ComputeClient interface from internal/core package.
// This creates MockComputeClient with methods for all ComputeClient interface methods:
// SubmitJob, CancelJobs
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=compute_client_mock.go github.com/readyplan/ready-api/internal/core ComputeClient

// Generate mock for ArchiveStore interface from internal/core package.
// This creates MockArchiveStore with methods for all ArchiveStore interface methods:
// Put
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=archive_store_mock.go github.com/readyplan/ready-api/internal/core ArchiveStore
