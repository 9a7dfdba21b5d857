// Package archiver provides adapters for running the callback archiver.
package archiver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/readyplan/ready-api/config"
	"github.com/readyplan/ready-api/internal/core"
	"github.com/readyplan/ready-api/internal/data"
	"github.com/readyplan/ready-api/internal/observability/statsd"
	"github.com/readyplan/ready-api/internal/service"
)

// Runner provides a simple adapter to run the archive loop.
// It constructs the archiver service and runs the sweep loop.
type Runner struct {
	archiver *service.ArchiverService
	logger   *slog.Logger
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	DB     *sql.DB
	Store  core.ArchiveStore
	Config config.ArchiverConfig
	Logger *slog.Logger

	// Optional dependency injection for testing/decoupling
	Repo    core.CallbackRepository
	Metrics statsd.Sink
}

// NewRunner creates a new archiver runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.DB == nil && opts.Repo == nil {
		return nil, errors.New("database connection is required")
	}
	if opts.Store == nil {
		return nil, errors.New("archive store is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	repo := opts.Repo
	if repo == nil {
		repo = data.NewCallbackRepo(opts.DB)
	}

	archiver, err := service.NewArchiverService(service.ArchiverServiceOptions{
		Callbacks: repo,
		Store:     opts.Store,
		Config:    opts.Config,
		Logger:    opts.Logger,
		Metrics:   opts.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("wire archiver service: %w", err)
	}

	return &Runner{archiver: archiver, logger: opts.Logger}, nil
}

// Run starts the archive loop and blocks until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	return r.archiver.Run(ctx)
}
