// Package compute implements the HTTP client for the external generation
// service. Submission and cancellation are the only two operations; callbacks
// arrive over the webhook receiver, not this client.
package compute

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/readyplan/ready-api/internal/core"
	apperrors "github.com/readyplan/ready-api/internal/errors"
)

const apiSecretHeader = "X-API-Secret"

// Config captures the connection settings for the compute service.
type Config struct {
	BaseURL       string
	APISecret     string
	SubmitTimeout time.Duration
	CancelTimeout time.Duration
	Client        *http.Client
}

// Client talks to the compute service REST API.
type Client struct {
	baseURL       string
	apiSecret     string
	submitTimeout time.Duration
	cancelTimeout time.Duration
	client        *http.Client
}

// NewClient builds a compute service client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("compute base url is required")
	}

	submitTimeout := cfg.SubmitTimeout
	if submitTimeout <= 0 {
		submitTimeout = 30 * time.Second
	}
	cancelTimeout := cfg.CancelTimeout
	if cancelTimeout <= 0 {
		cancelTimeout = 10 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{}
	}

	return &Client{
		baseURL:       baseURL,
		apiSecret:     cfg.APISecret,
		submitTimeout: submitTimeout,
		cancelTimeout: cancelTimeout,
		client:        hc,
	}, nil
}

type submitRequest struct {
	WorkflowName string         `json:"workflow_name"`
	InputData    map[string]any `json:"input_data"`
	UserID       string         `json:"user_id"`
	WebhookURL   string         `json:"webhook_url"`
}

type submitResponse struct {
	JobID string `json:"job_id"`
}

// SubmitJob submits a workflow run and returns the remote job ID. The request
// is bounded by the configured submit timeout regardless of the caller's
// context deadline.
func (c *Client) SubmitJob(ctx context.Context, params core.SubmitJobParams) (string, error) {
	body, err := json.Marshal(submitRequest{
		WorkflowName: params.WorkflowName,
		InputData:    params.InputData,
		UserID:       params.UserID,
		WebhookURL:   params.WebhookURL,
	})
	if err != nil {
		return "", fmt.Errorf("encode submit payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.submitTimeout)
	defer cancel()

	resp, err := c.do(ctx, http.MethodPost, "/api/v1/workflow/execute", body)
	if err != nil {
		return "", c.mapTransportError("submit job", err)
	}
	defer drainAndClose(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.Unavailablef(
			"compute service rejected submission with status %d", resp.StatusCode,
		)
	}

	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "decode submit response")
	}
	if strings.TrimSpace(out.JobID) == "" {
		return "", apperrors.Unavailable("compute service returned an empty job id")
	}
	return out.JobID, nil
}

type cancelRequest struct {
	JobIDs []string `json:"job_ids"`
}

// CancelJobs requests bulk cancellation of remote jobs. Best effort: the
// caller logs and discards the error. An empty list is a no-op.
func (c *Client) CancelJobs(ctx context.Context, jobIDs []string) error {
	if len(jobIDs) == 0 {
		return nil
	}

	body, err := json.Marshal(cancelRequest{JobIDs: jobIDs})
	if err != nil {
		return fmt.Errorf("encode cancel payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cancelTimeout)
	defer cancel()

	resp, err := c.do(ctx, http.MethodDelete, "/api/v1/jobs", body)
	if err != nil {
		return c.mapTransportError("cancel jobs", err)
	}
	defer drainAndClose(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.Unavailablef(
			"compute service rejected cancellation with status %d", resp.StatusCode,
		)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiSecret != "" {
		req.Header.Set(apiSecretHeader, c.apiSecret)
	}
	return c.client.Do(req)
}

func (c *Client) mapTransportError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, op+": compute service timed out")
	}
	return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, op+": compute service unreachable")
}

func drainAndClose(resp *http.Response) {
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}

var _ core.ComputeClient = (*Client)(nil)
