package api

import (
	"errors"
	"io"
	"net/http"

	apperrors "coworking/internal/errors"
	"coworking/internal/logger"
	"coworking/internal/response"
	"coworking/internal/service"
)

const maxWebhookBytes = int64(65536)

type PaymentHandler struct {
	base
	Service service.PaymentService
}

func NewPaymentHandler(svc service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{base: base{log: log}, Service: svc}
}

// Webhook receives provider events. The raw body is needed to verify the signature.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.fail(w, r, apperrors.NewHTTPError(http.StatusRequestEntityTooLarge, "Request body too large"))
			return
		}
		h.fail(w, r, apperrors.BadRequest("Could not read request body"))
		return
	}

	if err := h.Service.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		h.log.Warn("Webhook rejected", "error", err)
		h.fail(w, r, err)
		return
	}
	response.Success(w, map[string]bool{"received": true}, "")
}

func (h *PaymentHandler) GetBySession(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	b, err := h.Service.GetBySessionID(r.Context(), p, r.URL.Query().Get("session_id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	response.Success(w, b, "")
}
