package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/readyplan/ready-api/internal/core"
	"github.com/readyplan/ready-api/internal/data/pgxutil"
	apperrors "github.com/readyplan/ready-api/internal/errors"
	"github.com/readyplan/ready-api/internal/domain/model"
)

// CallbackRepo implements the CallbackRepository interface using PostgreSQL.
type CallbackRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewCallbackRepo creates a new CallbackRepo with the given database connection.
func NewCallbackRepo(db *sql.DB) *CallbackRepo {
	return &CallbackRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

const callbackColumns = `id, callback_id, signature_valid, external_job_id, event_type, workflow_name, payload, created_at, updated_at`

const maxCallbackListLimit = 200

// Insert stores a delivery unless its callback ID already exists. The unique
// constraint plus ON CONFLICT DO NOTHING is the idempotency mechanism: the
// first write wins and redeliveries read back the original row, so the stored
// verification outcome is never recomputed.
func (r *CallbackRepo) Insert(
	ctx context.Context,
	params core.InsertCallbackParams,
) (*model.CallbackDelivery, bool, error) {
	if strings.TrimSpace(params.CallbackID) == "" {
		return nil, false, apperrors.Validation("callback ID is required")
	}

	now := r.timeProvider.Now().UTC()
	var out model.CallbackDelivery
	inserted := false
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO callback_deliveries
				(callback_id, signature_valid, external_job_id, event_type, workflow_name, payload, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
			ON CONFLICT (callback_id) DO NOTHING
			RETURNING `+callbackColumns+`
		`, params.CallbackID, params.SignatureValid, params.ExternalJobID,
			params.EventType, params.WorkflowName, params.Payload, now)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CallbackDelivery])
		if errors.Is(err, pgx.ErrNoRows) {
			// Duplicate: read the original row back.
			existing, e := conn.Query(
				ctx,
				`SELECT `+callbackColumns+` FROM callback_deliveries WHERE callback_id = $1`,
				params.CallbackID,
			)
			if e != nil {
				return e
			}
			out, e = pgx.CollectOneRow(existing, pgx.RowToStructByName[model.CallbackDelivery])
			return e
		}
		if err != nil {
			return err
		}
		inserted = true
		return nil
	}); err != nil {
		return nil, false, apperrors.MapDBError(fmt.Errorf("insert callback delivery: %w", err))
	}
	return &out, inserted, nil
}

// GetByID returns a delivery by primary key.
func (r *CallbackRepo) GetByID(ctx context.Context, id string) (*model.CallbackDelivery, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// GetByCallbackID returns a delivery by its idempotency key.
func (r *CallbackRepo) GetByCallbackID(
	ctx context.Context,
	callbackID string,
) (*model.CallbackDelivery, error) {
	return r.getOne(ctx, `WHERE callback_id = $1`, callbackID)
}

func (r *CallbackRepo) getOne(
	ctx context.Context,
	where string,
	arg string,
) (*model.CallbackDelivery, error) {
	if strings.TrimSpace(arg) == "" {
		return nil, apperrors.Validation("identifier is required")
	}
	var out model.CallbackDelivery
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(
			ctx,
			`SELECT `+callbackColumns+` FROM callback_deliveries `+where,
			arg,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CallbackDelivery])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("callback delivery not found")
		}
		return nil, apperrors.MapDBError(fmt.Errorf("get callback delivery: %w", err))
	}
	return &out, nil
}

// List returns deliveries filtered by verification outcome and time window,
// newest first.
func (r *CallbackRepo) List(
	ctx context.Context,
	opts model.CallbackListOptions,
) ([]*model.CallbackDelivery, error) {
	conditions := make([]string, 0, 3)
	args := make([]any, 0, 5)
	next := func() int { return len(args) + 1 }
	if opts.SignatureValid != nil {
		conditions = append(conditions, fmt.Sprintf("signature_valid = $%d", next()))
		args = append(args, *opts.SignatureValid)
	}
	if !opts.Since.IsZero() {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", next()))
		args = append(args, opts.Since.UTC())
	}
	if !opts.Until.IsZero() {
		conditions = append(conditions, fmt.Sprintf("created_at < $%d", next()))
		args = append(args, opts.Until.UTC())
	}
	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	limit := opts.Limit
	if limit <= 0 || limit > maxCallbackListLimit {
		limit = maxCallbackListLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	query := fmt.Sprintf(
		`SELECT %s FROM callback_deliveries %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		callbackColumns, where, len(args)-1, len(args),
	)
	var rowsOut []model.CallbackDelivery
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.CallbackDelivery])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("list callback deliveries: %w", err))
	}
	res := make([]*model.CallbackDelivery, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// MarkViewed records that a reviewer viewed a delivery. The composite primary
// key plus ON CONFLICT DO NOTHING makes repeat marks a no-op.
func (r *CallbackRepo) MarkViewed(ctx context.Context, deliveryID, reviewerID string) error {
	if strings.TrimSpace(deliveryID) == "" {
		return apperrors.Validation("delivery ID is required")
	}
	if strings.TrimSpace(reviewerID) == "" {
		return apperrors.Validation("reviewer ID is required")
	}

	now := r.timeProvider.Now().UTC()
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, `
			INSERT INTO callback_views (callback_id, reviewer_id, created_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (callback_id, reviewer_id) DO NOTHING
		`, deliveryID, reviewerID, now)
		return err
	}); err != nil {
		return apperrors.MapDBError(fmt.Errorf("mark callback viewed: %w", err))
	}
	return nil
}

// ListOlderThan returns deliveries created before cutoff, oldest first.
func (r *CallbackRepo) ListOlderThan(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]*model.CallbackDelivery, error) {
	if limit < 1 {
		limit = 1
	}
	var rowsOut []model.CallbackDelivery
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+callbackColumns+` FROM callback_deliveries
			WHERE created_at < $1
			ORDER BY created_at ASC, id ASC
			LIMIT $2
		`, cutoff.UTC(), limit)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.CallbackDelivery])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(fmt.Errorf("list old callback deliveries: %w", err))
	}
	res := make([]*model.CallbackDelivery, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// DeleteByIDs removes deliveries by primary key.
func (r *CallbackRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var deleted int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(
			ctx,
			`DELETE FROM callback_deliveries WHERE id = ANY($1)`,
			ids,
		)
		if err != nil {
			return err
		}
		deleted = ct.RowsAffected()
		return nil
	}); err != nil {
		return 0, apperrors.MapDBError(fmt.Errorf("delete callback deliveries: %w", err))
	}
	return deleted, nil
}

var _ core.CallbackRepository = (*CallbackRepo)(nil)
