package model

import "time"

// CallbackDelivery is one stored webhook delivery. Rows are append-only: the
// verification outcome is recorded when the delivery is first seen and never
// recomputed, even if the shared secret changes later.
//
// Payload holds the exact bytes received on the wire. It is []byte rather
// than json.RawMessage because rejected deliveries may not be valid JSON.
type CallbackDelivery struct {
	ID             string    `json:"id"                        db:"id"`
	CallbackID     string    `json:"callback_id"               db:"callback_id"`
	SignatureValid bool      `json:"signature_valid"           db:"signature_valid"`
	ExternalJobID  *string   `json:"external_job_id,omitempty" db:"external_job_id"`
	EventType      *string   `json:"event_type,omitempty"      db:"event_type"`
	WorkflowName   *string   `json:"workflow_name,omitempty"   db:"workflow_name"`
	Payload        []byte    `json:"-"                         db:"payload"`
	CreatedAt      time.Time `json:"created_at"                db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"                db:"updated_at"`
}

// CallbackView records that a reviewer looked at a delivery. The composite
// primary key makes marking idempotent per reviewer.
type CallbackView struct {
	CallbackID string    `json:"callback_id" db:"callback_id"`
	ReviewerID string    `json:"reviewer_id" db:"reviewer_id"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
}

// CallbackListOptions filters the admin delivery listing.
type CallbackListOptions struct {
	// SignatureValid filters by verification outcome when non-nil.
	SignatureValid *bool
	// Since and Until bound CreatedAt when non-zero.
	Since time.Time
	Until time.Time
	// Limit and Offset page through results. Limit is clamped by the repository.
	Limit  int
	Offset int
}
