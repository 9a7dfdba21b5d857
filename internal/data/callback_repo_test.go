package data

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/readyplan/ready-api/internal/core"
	apperrors "github.com/readyplan/ready-api/internal/errors"
	"github.com/readyplan/ready-api/internal/domain/model"
	"github.com/readyplan/ready-api/internal/testutil"
)

func insertParams(callbackID string, valid bool) core.InsertCallbackParams {
	return core.InsertCallbackParams{
		CallbackID:     callbackID,
		SignatureValid: valid,
		ExternalJobID:  testutil.StringPtr("ext-1"),
		EventType:      testutil.StringPtr("job.completed"),
		WorkflowName:   testutil.StringPtr("preparedness_report"),
		Payload:        []byte(`{"event":"job.completed","job_id":"ext-1"}`),
	}
}

func TestCallbackRepo_Insert_Idempotent(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewCallbackRepo(db)
		cbID := fmt.Sprintf("cb-%d", time.Now().UnixNano())

		first, inserted, err := repo.Insert(ctx, insertParams(cbID, true))
		require.NoError(t, err)
		assert.True(t, inserted)
		require.NotEmpty(t, first.ID)
		assert.True(t, first.SignatureValid)

		// Redelivery with a different verification outcome: the original row
		// wins and the stored outcome is not recomputed.
		dupe := insertParams(cbID, false)
		dupe.Payload = []byte(`{"tampered":true}`)
		second, inserted, err := repo.Insert(ctx, dupe)
		require.NoError(t, err)
		assert.False(t, inserted)
		assert.Equal(t, first.ID, second.ID)
		assert.True(t, second.SignatureValid)
		assert.Equal(t, first.Payload, second.Payload)
	})
}

func TestCallbackRepo_Insert_ConcurrentSameCallbackID(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewCallbackRepo(db)
		cbID := fmt.Sprintf("cb-race-%d", time.Now().UnixNano())

		insertedCount := make(chan bool, 8)
		runner := testutil.NewConcurrentTestRunner(t, db)
		funcs := make([]func() error, 8)
		for i := range funcs {
			funcs[i] = func() error {
				_, inserted, err := repo.Insert(ctx, insertParams(cbID, true))
				if err != nil {
					return err
				}
				insertedCount <- inserted
				return nil
			}
		}
		runner.AssertNoErrors(runner.RunConcurrent(funcs...))
		close(insertedCount)

		wins := 0
		for ok := range insertedCount {
			if ok {
				wins++
			}
		}
		assert.Equal(t, 1, wins, "exactly one concurrent insert should win")
	})
}

func TestCallbackRepo_Insert_StoresVerbatimNonJSONPayload(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewCallbackRepo(db)

		params := core.InsertCallbackParams{
			CallbackID:     fmt.Sprintf("cb-raw-%d", time.Now().UnixNano()),
			SignatureValid: false,
			Payload:        []byte("not json {{{"),
		}
		row, inserted, err := repo.Insert(ctx, params)
		require.NoError(t, err)
		assert.True(t, inserted)
		assert.Equal(t, []byte("not json {{{"), row.Payload)
		assert.Nil(t, row.ExternalJobID)
		assert.Nil(t, row.EventType)
	})
}

func TestCallbackRepo_GetByID_And_GetByCallbackID(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewCallbackRepo(db)
		cbID := fmt.Sprintf("cb-get-%d", time.Now().UnixNano())

		created, _, err := repo.Insert(ctx, insertParams(cbID, true))
		require.NoError(t, err)

		byID, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, cbID, byID.CallbackID)

		byCallbackID, err := repo.GetByCallbackID(ctx, cbID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, byCallbackID.ID)

		_, err = repo.GetByCallbackID(ctx, "missing-callback")
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestCallbackRepo_List_Filters(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewCallbackRepo(db)
		prefix := fmt.Sprintf("cb-list-%d", time.Now().UnixNano())

		_, _, err := repo.Insert(ctx, insertParams(prefix+"-a", true))
		require.NoError(t, err)
		_, _, err = repo.Insert(ctx, insertParams(prefix+"-b", false))
		require.NoError(t, err)

		valid, err := repo.List(ctx, model.CallbackListOptions{SignatureValid: testutil.BoolPtr(true)})
		require.NoError(t, err)
		for _, d := range valid {
			assert.True(t, d.SignatureValid)
		}

		invalid, err := repo.List(ctx, model.CallbackListOptions{SignatureValid: testutil.BoolPtr(false)})
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(invalid), 1)
		for _, d := range invalid {
			assert.False(t, d.SignatureValid)
		}

		// Time window excluding everything.
		none, err := repo.List(ctx, model.CallbackListOptions{
			Until: time.Now().Add(-24 * time.Hour),
		})
		require.NoError(t, err)
		assert.Empty(t, none)

		// Limit.
		one, err := repo.List(ctx, model.CallbackListOptions{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, one, 1)
	})
}

func TestCallbackRepo_MarkViewed_Idempotent(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewCallbackRepo(db)

		created, _, err := repo.Insert(ctx, insertParams(fmt.Sprintf("cb-view-%d", time.Now().UnixNano()), true))
		require.NoError(t, err)

		require.NoError(t, repo.MarkViewed(ctx, created.ID, "admin-1"))
		require.NoError(t, repo.MarkViewed(ctx, created.ID, "admin-1"))
		require.NoError(t, repo.MarkViewed(ctx, created.ID, "admin-2"))

		var count int
		err = db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM callback_views WHERE callback_id = $1`, created.ID,
		).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

func TestCallbackRepo_MarkViewed_MissingDelivery(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewCallbackRepo(db)
		err := repo.MarkViewed(context.Background(), "00000000-0000-0000-0000-000000000000", "admin-1")
		assert.True(t, apperrors.IsForeignKey(err))
	})
}

func TestCallbackRepo_ListOlderThan_And_DeleteByIDs(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewCallbackRepo(db)

		created, _, err := repo.Insert(ctx, insertParams(fmt.Sprintf("cb-old-%d", time.Now().UnixNano()), true))
		require.NoError(t, err)

		old, err := repo.ListOlderThan(ctx, time.Now().Add(time.Hour), 10)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(old), 1)

		none, err := repo.ListOlderThan(ctx, time.Now().Add(-time.Hour), 10)
		require.NoError(t, err)
		assert.Empty(t, none)

		deleted, err := repo.DeleteByIDs(ctx, []string{created.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 1, deleted)

		_, err = repo.GetByID(ctx, created.ID)
		assert.True(t, apperrors.IsNotFound(err))
	})
}
