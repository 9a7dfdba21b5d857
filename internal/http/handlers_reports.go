package httpx

import (
	"errors"
	"net/http"

	"github.com/readyplan/ready-api/internal/domain/model"
	"github.com/readyplan/ready-api/internal/service"
)

// ReportHandlers provides HTTP handlers for report and generation operations.
type ReportHandlers struct {
	Reports    *service.ReportService
	Generation *service.GenerationService
}

type createReportRequest struct {
	Title string `json:"title"`
}

// Create handles HTTP requests to create a new report shell. Content arrives
// later through the generation pipeline.
func (h *ReportHandlers) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}

	var req createReportRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	report, err := h.Reports.Create(r.Context(), &model.CreateReportRequest{
		UserID: session.UserID,
		Title:  req.Title,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, report)
}

// GetByID handles HTTP requests to fetch one of the caller's reports.
func (h *ReportHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("report id is required")},
		)
		return
	}

	report, err := h.Reports.GetForUser(r.Context(), session.UserID, id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, report)
}

type startGenerationRequest struct {
	WorkflowName string         `json:"workflow_name"`
	InputData    map[string]any `json:"input_data"`
}

// StartGeneration handles HTTP requests to start generation for a report.
func (h *ReportHandlers) StartGeneration(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("report id is required")},
		)
		return
	}

	var req startGenerationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	job, err := h.Generation.Submit(r.Context(), session.UserID, &model.SubmitGenerationRequest{
		ReportID:     id,
		WorkflowName: req.WorkflowName,
		InputData:    req.InputData,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusAccepted, job)
}

// GenerationStatus handles HTTP requests for the generation job attached to a report.
func (h *ReportHandlers) GenerationStatus(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("report id is required")},
		)
		return
	}

	job, err := h.Generation.Status(r.Context(), session.UserID, id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, job)
}

// CancelGeneration handles HTTP requests to cancel generation. The report and
// its job are both removed.
func (h *ReportHandlers) CancelGeneration(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("report id is required")},
		)
		return
	}

	if err := h.Generation.Cancel(r.Context(), session.UserID, id); err != nil {
		WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeUnauthenticated(w http.ResponseWriter) {
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: "authentication_required",
		Err:     errors.New("authentication required"),
	})
}
