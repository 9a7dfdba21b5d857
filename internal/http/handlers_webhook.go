package httpx

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/readyplan/ready-api/internal/service"
)

const (
	webhookSignatureHeader = "X-Webhook-Signature"
	webhookEventHeader     = "X-Webhook-Event"
	webhookDeliveryHeader  = "X-Webhook-Delivery"

	// maxWebhookBody bounds inbound payloads. Generated report content rides
	// in the payload, so this is generous.
	maxWebhookBody = 4 << 20
)

// WebhookHandlers provides the HTTP receiver for compute service callbacks.
type WebhookHandlers struct {
	Svc    *service.CallbackService
	Logger *slog.Logger
}

// Receive handles inbound generation callbacks.
//
// The body is read raw before any parsing: the signature covers the exact
// bytes on the wire. Every processed delivery is acknowledged with a 200,
// including rejected ones: the rejection is recorded in the stored row, and
// a non-2xx would make the sender retry a delivery that can never verify.
// Only infrastructure failures produce a 5xx, which tells the sender to
// retry.
func (h *WebhookHandlers) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			WriteError(w, ErrorParams{
				Code:    http.StatusRequestEntityTooLarge,
				ErrCode: "payload_too_large",
				Err:     err,
			})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "unreadable_body", Err: err})
		return
	}

	stored, outcome, err := h.Svc.HandleDelivery(r.Context(), service.HandleDeliveryParams{
		Body:            body,
		SignatureHeader: r.Header.Get(webhookSignatureHeader),
		EventHeader:     r.Header.Get(webhookEventHeader),
		DeliveryHeader:  r.Header.Get(webhookDeliveryHeader),
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.ErrorContext(r.Context(), "webhook delivery processing failed", "error", err)
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delivery_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":      string(outcome),
		"callback_id": stored.CallbackID,
	})
}
