package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/readyplan/ready-api/internal/core"
	"github.com/readyplan/ready-api/internal/data/pgxutil"
	apperrors "github.com/readyplan/ready-api/internal/errors"
	"github.com/readyplan/ready-api/internal/domain/model"
)

// GenerationJobRepo implements the GenerationJobRepository interface using PostgreSQL.
type GenerationJobRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewGenerationJobRepo creates a new GenerationJobRepo with the given database connection.
func NewGenerationJobRepo(db *sql.DB) *GenerationJobRepo {
	return &GenerationJobRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

const generationJobColumns = `id, report_id, external_job_id, workflow_name, status, created_at, updated_at`

// Create inserts a new generation_jobs row. The unique constraint on
// report_id turns a concurrent double-submit into a Conflict error.
func (r *GenerationJobRepo) Create(
	ctx context.Context,
	job *model.GenerationJob,
) (*model.GenerationJob, error) {
	if strings.TrimSpace(job.ReportID) == "" {
		return nil, apperrors.Validation("report ID is required")
	}
	if strings.TrimSpace(job.ExternalJobID) == "" {
		return nil, apperrors.Validation("external job ID is required")
	}

	status := job.Status
	if status == "" {
		status = model.JobStatusGenerating
	}

	now := r.timeProvider.Now().UTC()
	var out model.GenerationJob
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO generation_jobs (report_id, external_job_id, workflow_name, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING `+generationJobColumns+`
		`, job.ReportID, job.ExternalJobID, job.WorkflowName, status, now)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.GenerationJob])
		return e
	}); err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("create generation job: %w", err))
	}
	return &out, nil
}

// GetByID returns a generation_jobs row by ID.
func (r *GenerationJobRepo) GetByID(ctx context.Context, id string) (*model.GenerationJob, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// GetByReportID returns the job owned by a report, if any.
func (r *GenerationJobRepo) GetByReportID(
	ctx context.Context,
	reportID string,
) (*model.GenerationJob, error) {
	return r.getOne(ctx, `WHERE report_id = $1`, reportID)
}

// GetByExternalJobID returns the job tracking a remote job ID, if any.
func (r *GenerationJobRepo) GetByExternalJobID(
	ctx context.Context,
	externalJobID string,
) (*model.GenerationJob, error) {
	return r.getOne(ctx, `WHERE external_job_id = $1`, externalJobID)
}

func (r *GenerationJobRepo) getOne(
	ctx context.Context,
	where string,
	arg string,
) (*model.GenerationJob, error) {
	if strings.TrimSpace(arg) == "" {
		return nil, apperrors.Validation("identifier is required")
	}
	var out model.GenerationJob
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(
			ctx,
			`SELECT `+generationJobColumns+` FROM generation_jobs `+where,
			arg,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.GenerationJob])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("generation job not found")
		}
		return nil, apperrors.MapDBError(fmt.Errorf("get generation job: %w", err))
	}
	return &out, nil
}

// ApplyTerminal moves a job into a terminal status and, for completions with
// content, writes the generated content to the owning report. The row is
// locked for the duration so concurrent results serialise; the status
// transition check then rejects whichever result arrives second.
func (r *GenerationJobRepo) ApplyTerminal(
	ctx context.Context,
	params core.ApplyTerminalParams,
) (*model.GenerationJob, error) {
	if strings.TrimSpace(params.JobID) == "" {
		return nil, apperrors.Validation("job ID is required")
	}

	now := r.timeProvider.Now().UTC()
	var out model.GenerationJob
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT `+generationJobColumns+` FROM generation_jobs
			WHERE id = $1
			FOR UPDATE
		`, params.JobID)
		if err != nil {
			return err
		}
		current, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.GenerationJob])
		if err != nil {
			return err
		}

		next, err := current.Status.Transition(params.Status)
		if err != nil {
			return err
		}

		jobRows, err := tx.Query(ctx, `
			UPDATE generation_jobs SET status = $1, updated_at = $2
			WHERE id = $3
			RETURNING `+generationJobColumns+`
		`, next, now, params.JobID)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(jobRows, pgx.RowToStructByName[model.GenerationJob])
		if err != nil {
			return err
		}

		if params.Content != nil {
			if _, err := tx.Exec(ctx, `
				UPDATE reports SET content = $1, updated_at = $2
				WHERE id = $3
			`, *params.Content, now, out.ReportID); err != nil {
				return err
			}
		}
		return nil
	}})
	if err != nil {
		if errors.Is(err, model.ErrIllegalTransition) {
			return nil, err
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("generation job not found")
		}
		return nil, apperrors.MapDBError(fmt.Errorf("apply terminal status: %w", err))
	}
	return &out, nil
}

// DeleteWithReport removes the job and its owning report in one transaction.
// Deleting the report cascades to the job row, so a single DELETE suffices
// once the report ID is known.
func (r *GenerationJobRepo) DeleteWithReport(ctx context.Context, jobID string) (bool, error) {
	if strings.TrimSpace(jobID) == "" {
		return false, apperrors.Validation("job ID is required")
	}

	var deleted bool
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		var reportID string
		if err := tx.QueryRow(ctx, `
			SELECT report_id FROM generation_jobs WHERE id = $1 FOR UPDATE
		`, jobID).Scan(&reportID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}

		ct, err := tx.Exec(ctx, `DELETE FROM reports WHERE id = $1`, reportID)
		if err != nil {
			return err
		}
		deleted = ct.RowsAffected() > 0
		return nil
	}})
	if err != nil {
		return false, apperrors.MapDBError(fmt.Errorf("delete job with report: %w", err))
	}
	return deleted, nil
}

var _ core.GenerationJobRepository = (*GenerationJobRepo)(nil)
