package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// GenerationConfig contains configuration for the report generation pipeline:
// the outbound compute-service client and the inbound webhook receiver.
type GenerationConfig struct {
	// ComputeBaseURL is the base URL of the external compute service
	// (e.g. "https://compute.internal:8000").
	ComputeBaseURL string `env:"COMPUTE_BASE_URL" envDefault:"http://localhost:8000"`

	// ComputeAPISecret authenticates outbound requests to the compute
	// service via the X-API-Secret header.
	ComputeAPISecret string `env:"COMPUTE_API_SECRET"`

	// SubmitTimeout bounds the outbound job submission request.
	SubmitTimeout time.Duration `env:"COMPUTE_SUBMIT_TIMEOUT" envDefault:"30s"`

	// CancelTimeout bounds the outbound bulk cancellation request.
	// Cancellation is best effort, so this stays short.
	CancelTimeout time.Duration `env:"COMPUTE_CANCEL_TIMEOUT" envDefault:"10s"`

	// WebhookSecret is the shared secret used to verify inbound callback
	// signatures. Required. Whitespace-padded values are rejected rather
	// than trimmed: a padded secret means the deployment pipeline mangled
	// the value, and a silently trimmed secret would verify against a
	// sender that signs with the padded one.
	WebhookSecret string `env:"WEBHOOK_SECRET"`

	// CallbackBaseURL is the externally reachable base URL of this service,
	// used to build the webhook_url sent with each submission.
	CallbackBaseURL string `env:"CALLBACK_BASE_URL" envDefault:"http://localhost:8080"`

	// JobIDPath, EventPath, StatusPath, WorkflowPath, ContentPath and
	// ErrorPath are JMESPath expressions that extract correlation fields
	// from the otherwise opaque callback payload.
	JobIDPath    string `env:"WEBHOOK_JOB_ID_PATH"    envDefault:"job_id"`
	EventPath    string `env:"WEBHOOK_EVENT_PATH"     envDefault:"event"`
	StatusPath   string `env:"WEBHOOK_STATUS_PATH"    envDefault:"status"`
	WorkflowPath string `env:"WEBHOOK_WORKFLOW_PATH"  envDefault:"workflow_name"`
	ContentPath  string `env:"WEBHOOK_CONTENT_PATH"   envDefault:"result.content"`
	ErrorPath    string `env:"WEBHOOK_ERROR_PATH"     envDefault:"error_message"`

	// WebhookRateLimit is the sustained per-IP request rate allowed on the
	// webhook endpoint, in requests per second. Zero disables limiting.
	WebhookRateLimit float64 `env:"WEBHOOK_RATE_LIMIT" envDefault:"10"`

	// WebhookRateBurst is the per-IP burst size for the webhook endpoint.
	WebhookRateBurst int `env:"WEBHOOK_RATE_BURST" envDefault:"20"`
}

// Sanitize applies guardrails to generation configuration values.
// The webhook secret is deliberately NOT touched here; see Validate.
func (g *GenerationConfig) Sanitize() {
	g.ComputeBaseURL = strings.TrimRight(strings.TrimSpace(g.ComputeBaseURL), "/")
	g.CallbackBaseURL = strings.TrimRight(strings.TrimSpace(g.CallbackBaseURL), "/")

	if g.SubmitTimeout <= 0 {
		g.SubmitTimeout = 30 * time.Second
	}
	if g.CancelTimeout <= 0 {
		g.CancelTimeout = 10 * time.Second
	}
	if g.WebhookRateLimit < 0 {
		g.WebhookRateLimit = 0
	}
	if g.WebhookRateBurst < 1 {
		g.WebhookRateBurst = 1
	}
}

// Validate enforces the fail-closed secret policy: an absent webhook secret
// means every callback would be rejected, which is a configuration error,
// not a runtime condition.
func (g *GenerationConfig) Validate() error {
	if g.WebhookSecret == "" {
		return errors.New("WEBHOOK_SECRET is required")
	}
	if strings.TrimSpace(g.WebhookSecret) != g.WebhookSecret {
		return fmt.Errorf("WEBHOOK_SECRET has leading or trailing whitespace; fix the value rather than relying on trimming")
	}
	if g.ComputeAPISecret != "" && strings.TrimSpace(g.ComputeAPISecret) != g.ComputeAPISecret {
		return fmt.Errorf("COMPUTE_API_SECRET has leading or trailing whitespace")
	}
	return nil
}
