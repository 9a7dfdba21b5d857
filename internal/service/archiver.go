package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/readyplan/ready-api/config"
	"github.com/readyplan/ready-api/internal/core"
	"github.com/readyplan/ready-api/internal/domain/model"
	"github.com/readyplan/ready-api/internal/observability/statsd"
)

// ArchiverServiceOptions groups dependencies for ArchiverService.
type ArchiverServiceOptions struct {
	Callbacks core.CallbackRepository // Required: callback delivery repository
	Store     core.ArchiveStore       // Required: archive backend
	Config    config.ArchiverConfig   // Required: archiver configuration
	Logger    *slog.Logger            // Optional: structured logger
	Metrics   statsd.Sink             // Optional: metrics sink (StatsD-compatible)
}

// ArchiverService moves old callback deliveries out of the database into the
// archive store. A delivery is deleted only after its archive object has been
// written, so a failed write leaves the row in place for the next sweep.
type ArchiverService struct {
	callbacks core.CallbackRepository
	store     core.ArchiveStore
	config    config.ArchiverConfig
	logger    *slog.Logger
	metrics   statsd.Sink
}

// NewArchiverService constructs a new ArchiverService.
func NewArchiverService(opts ArchiverServiceOptions) (*ArchiverService, error) {
	if opts.Callbacks == nil {
		return nil, errors.New("CallbackRepository is required")
	}
	if opts.Store == nil {
		return nil, errors.New("ArchiveStore is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "archiver_service")
	}

	return &ArchiverService{
		callbacks: opts.Callbacks,
		store:     opts.Store,
		config:    opts.Config,
		logger:    logger,
		metrics:   opts.Metrics,
	}, nil
}

// Run starts the archive loop and runs until the context is cancelled.
// Returns nil on graceful shutdown (context.Canceled), error otherwise.
func (s *ArchiverService) Run(ctx context.Context) error {
	if s.logger != nil {
		s.logger.InfoContext(ctx, "starting archiver service",
			"interval", s.config.Interval,
			"retention", s.config.Retention,
		)
	}

	// Jitter so multiple instances starting together don't sweep in lockstep.
	s.waitWithJitter(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	if _, err := s.Sweep(ctx); err != nil {
		s.logSweepError(err)
	}

	for {
		select {
		case <-ctx.Done():
			if s.logger != nil {
				s.logger.InfoContext(ctx, "archiver service stopping", "reason", ctx.Err())
			}
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.logSweepError(err)
			}
		}
	}
}

// archiveUploadConcurrency bounds parallel archive writes per batch.
const archiveUploadConcurrency = 8

// archivedDelivery is the archive object layout. Payload round-trips as
// base64 through encoding/json.
type archivedDelivery struct {
	ID             string    `json:"id"`
	CallbackID     string    `json:"callback_id"`
	SignatureValid bool      `json:"signature_valid"`
	ExternalJobID  *string   `json:"external_job_id,omitempty"`
	EventType      *string   `json:"event_type,omitempty"`
	WorkflowName   *string   `json:"workflow_name,omitempty"`
	Payload        []byte    `json:"payload"`
	CreatedAt      time.Time `json:"created_at"`
}

// Sweep archives one pass of expired deliveries and returns how many rows
// were removed from the database. Batches repeat until a batch comes back
// short, so a backlog drains in a single sweep.
func (s *ArchiverService) Sweep(ctx context.Context) (int64, error) {
	start := time.Now()
	cutoff := start.Add(-s.config.Retention)

	var total int64
	for {
		n, err := s.sweepBatch(ctx, cutoff)
		total += n
		if err != nil {
			s.emitSweepMetrics(total, time.Since(start), err)
			return total, err
		}
		if n < int64(s.config.BatchSize) {
			break
		}
		if ctx.Err() != nil {
			s.emitSweepMetrics(total, time.Since(start), ctx.Err())
			return total, ctx.Err()
		}
	}

	if total > 0 && s.logger != nil {
		s.logger.InfoContext(ctx, "archived callback deliveries",
			"count", total,
			"cutoff", cutoff,
		)
	}
	s.emitSweepMetrics(total, time.Since(start), nil)
	return total, nil
}

func (s *ArchiverService) sweepBatch(ctx context.Context, cutoff time.Time) (int64, error) {
	rows, err := s.callbacks.ListOlderThan(ctx, cutoff, s.config.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("list expired deliveries: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	var mu sync.Mutex
	archived := make([]string, 0, len(rows))

	var g errgroup.Group
	g.SetLimit(archiveUploadConcurrency)
	for _, row := range rows {
		g.Go(func() error {
			if err := s.archiveOne(ctx, row); err != nil {
				// Leave the row for the next sweep; keep going with the rest.
				if s.logger != nil {
					s.logger.ErrorContext(ctx, "failed to archive delivery",
						"delivery_id", row.ID,
						"callback_id", row.CallbackID,
						"error", err,
					)
				}
				return nil
			}
			mu.Lock()
			archived = append(archived, row.ID)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	sort.Strings(archived)

	if len(archived) == 0 {
		return 0, nil
	}

	deleted, err := s.callbacks.DeleteByIDs(ctx, archived)
	if err != nil {
		return 0, fmt.Errorf("delete archived deliveries: %w", err)
	}
	return deleted, nil
}

func (s *ArchiverService) archiveOne(ctx context.Context, row *model.CallbackDelivery) error {
	data, err := json.Marshal(archivedDelivery{
		ID:             row.ID,
		CallbackID:     row.CallbackID,
		SignatureValid: row.SignatureValid,
		ExternalJobID:  row.ExternalJobID,
		EventType:      row.EventType,
		WorkflowName:   row.WorkflowName,
		Payload:        row.Payload,
		CreatedAt:      row.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode archive object: %w", err)
	}
	return s.store.Put(ctx, archiveKey(row), data)
}

// archiveKey shards objects by creation date so buckets stay listable.
func archiveKey(row *model.CallbackDelivery) string {
	return fmt.Sprintf("%s/%s.json", row.CreatedAt.UTC().Format("2006/01/02"), row.ID)
}

func (s *ArchiverService) waitWithJitter(ctx context.Context) {
	maxJitter := int64(s.config.Interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return
	}
	jitterNanos := binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter)

	select {
	case <-time.After(time.Duration(int64(jitterNanos))): // #nosec G115 - bounded by maxJitter which is int64
	case <-ctx.Done():
	}
}

func (s *ArchiverService) emitSweepMetrics(count int64, elapsed time.Duration, err error) {
	if s.metrics == nil {
		return
	}

	result := "success"
	if err != nil && !errors.Is(err, context.Canceled) {
		result = "error"
	} else if count == 0 {
		result = "noop"
	}

	tags := map[string]string{"result": result}
	s.metrics.Count("archiver.sweep", 1, tags)
	if count > 0 {
		s.metrics.Count("archiver.deliveries_archived", count, nil)
	}
	s.metrics.Timing("archiver.sweep_duration", elapsed, tags)
}

func (s *ArchiverService) logSweepError(err error) {
	if s.logger == nil {
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		s.logger.Debug("archive sweep cancelled by context", "error", err)
		return
	}
	s.logger.Error("archive sweep failed", "error", err)
}
