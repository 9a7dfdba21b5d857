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

// ReportRepo implements the ReportRepository interface using PostgreSQL.
type ReportRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewReportRepo creates a new ReportRepo with the given database connection.
func NewReportRepo(db *sql.DB) *ReportRepo {
	return &ReportRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

const reportColumns = `id, user_id, title, content, created_at, updated_at`

// Create inserts a new reports row.
func (r *ReportRepo) Create(
	ctx context.Context,
	req *model.CreateReportRequest,
) (*model.Report, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out model.Report
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO reports (user_id, title, created_at, updated_at)
			VALUES ($1, $2, $3, $3)
			RETURNING `+reportColumns+`
		`, req.UserID, strings.TrimSpace(req.Title), now)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Report])
		return e
	}); err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("create report: %w", err))
	}
	return &out, nil
}

// GetByID returns a reports row by ID.
func (r *ReportRepo) GetByID(ctx context.Context, id string) (*model.Report, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.Validation("report ID is required")
	}
	var out model.Report
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(
			ctx,
			`SELECT `+reportColumns+` FROM reports WHERE id = $1`,
			id,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Report])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFoundf("report %s not found", id)
		}
		return nil, apperrors.MapDBError(fmt.Errorf("get report by id: %w", err))
	}
	return &out, nil
}

// Delete deletes a report by ID. Any generation job rows cascade.
func (r *ReportRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	}); err != nil {
		return false, apperrors.MapDBError(fmt.Errorf("delete report: %w", err))
	}
	return rows > 0, nil
}

var _ core.ReportRepository = (*ReportRepo)(nil)
