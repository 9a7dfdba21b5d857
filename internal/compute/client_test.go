package compute

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/readyplan/ready-api/internal/core"
	apperrors "github.com/readyplan/ready-api/internal/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{
		BaseURL:       srv.URL,
		APISecret:     "api-secret",
		SubmitTimeout: 2 * time.Second,
		CancelTimeout: 2 * time.Second,
	})
	require.NoError(t, err)
	return c
}

func TestClient_SubmitJob(t *testing.T) {
	var gotPath, gotSecret string
	var gotBody map[string]any

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSecret = r.Header.Get("X-API-Secret")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"job_id":"ext-99"}`))
	})

	jobID, err := c.SubmitJob(context.Background(), core.SubmitJobParams{
		WorkflowName: "preparedness_report",
		InputData:    map[string]any{"region": "coastal"},
		UserID:       "user-1",
		WebhookURL:   "https://app.example.com/webhooks/generation",
	})
	require.NoError(t, err)
	assert.Equal(t, "ext-99", jobID)
	assert.Equal(t, "/api/v1/workflow/execute", gotPath)
	assert.Equal(t, "api-secret", gotSecret)
	assert.Equal(t, "preparedness_report", gotBody["workflow_name"])
	assert.Equal(t, "user-1", gotBody["user_id"])
	assert.Equal(t, "https://app.example.com/webhooks/generation", gotBody["webhook_url"])
}

func TestClient_SubmitJob_Non2xx(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := c.SubmitJob(context.Background(), core.SubmitJobParams{
		WorkflowName: "preparedness_report",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))
}

func TestClient_SubmitJob_EmptyJobID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"job_id":""}`))
	})

	_, err := c.SubmitJob(context.Background(), core.SubmitJobParams{
		WorkflowName: "preparedness_report",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))
}

func TestClient_SubmitJob_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{
		BaseURL:       srv.URL,
		SubmitTimeout: 50 * time.Millisecond,
	})
	require.NoError(t, err)

	_, err = c.SubmitJob(context.Background(), core.SubmitJobParams{
		WorkflowName: "preparedness_report",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsTimeout(err))
}

func TestClient_CancelJobs(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		w.WriteHeader(http.StatusOK)
	})

	err := c.CancelJobs(context.Background(), []string{"ext-1", "ext-2"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/v1/jobs", gotPath)
	assert.Equal(t, []any{"ext-1", "ext-2"}, gotBody["job_ids"])
}

func TestClient_CancelJobs_EmptyListNoop(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	require.NoError(t, c.CancelJobs(context.Background(), nil))
	assert.False(t, called)
}

func TestClient_CancelJobs_Non2xx(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})

	err := c.CancelJobs(context.Background(), []string{"ext-1"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}
