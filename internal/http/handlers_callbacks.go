package httpx

import (
	"errors"
	"net/http"
	"time"

	"github.com/readyplan/ready-api/internal/domain/model"
	"github.com/readyplan/ready-api/internal/service"
)

// CallbackHandlers provides the admin review API over stored webhook deliveries.
type CallbackHandlers struct {
	Svc *service.CallbackService
}

const maxCallbackListLimit = 200

// List handles HTTP requests to list stored deliveries with filters.
// Supported query params: signature_valid, since, until (RFC 3339), limit, offset.
func (h *CallbackHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxCallbackListLimit)

	opts := model.CallbackListOptions{Limit: limit, Offset: offset}

	if v := r.URL.Query().Get("signature_valid"); v != "" {
		valid := v == "true"
		if !valid && v != "false" {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_query",
				Err:     errors.New("signature_valid must be true or false"),
			})
			return
		}
		opts.SignatureValid = &valid
	}

	var ok bool
	if opts.Since, ok = parseTimeQuery(w, r, "since"); !ok {
		return
	}
	if opts.Until, ok = parseTimeQuery(w, r, "until"); !ok {
		return
	}

	deliveries, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"callbacks": deliveries,
		"limit":     limit,
		"offset":    offset,
	})
}

// callbackDetail is the single-delivery response. The stored payload is
// attached as a string so non-JSON bodies survive the trip.
type callbackDetail struct {
	*model.CallbackDelivery
	Payload string `json:"payload"`
}

// GetByID handles HTTP requests for one stored delivery including its payload.
func (h *CallbackHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("callback id is required")},
		)
		return
	}

	delivery, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, callbackDetail{
		CallbackDelivery: delivery,
		Payload:          string(delivery.Payload),
	})
}

// MarkViewed handles HTTP requests to record that the calling reviewer has
// looked at a delivery. Repeat calls succeed.
func (h *CallbackHandlers) MarkViewed(w http.ResponseWriter, r *http.Request) {
	session, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("callback id is required")},
		)
		return
	}

	if err := h.Svc.MarkViewed(r.Context(), id, session.UserID); err != nil {
		WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseTimeQuery parses an optional RFC 3339 query param. The second return
// is false when the response has already been written.
func parseTimeQuery(w http.ResponseWriter, r *http.Request, key string) (time.Time, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_query",
			Err:     errors.New(key + " must be an RFC 3339 timestamp"),
		})
		return time.Time{}, false
	}
	return t, true
}
