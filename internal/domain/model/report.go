package model

import (
	"errors"
	"strings"
	"time"
)

// Report represents a user-owned preparedness report. Content is nil until a
// generation job completes successfully.
type Report struct {
	ID        string     `json:"id"                db:"id"`
	UserID    string     `json:"user_id"           db:"user_id"`
	Title     string     `json:"title"             db:"title"`
	Content   *string    `json:"content,omitempty" db:"content"`
	CreatedAt time.Time  `json:"created_at"        db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"        db:"updated_at"`
}

// HasContent returns true when the report carries generated content.
func (r *Report) HasContent() bool {
	return r.Content != nil && *r.Content != ""
}

// CreateReportRequest represents a request to create a new report.
type CreateReportRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
}

// Validate validates the CreateReportRequest fields.
func (r *CreateReportRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return errors.New("user ID is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if len(r.Title) > 500 {
		return errors.New("title must be at most 500 characters")
	}
	return nil
}
