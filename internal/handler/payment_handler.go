package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// PaymentHandler handles payment-related HTTP requests.
type PaymentHandler struct {
	service service.PaymentService
	logger  zerolog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(service service.PaymentService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("handler", "payment").Logger(),
	}
}

// Handle routes GET and POST /api/payment requests.
func (h *PaymentHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.page(w, r)
	case http.MethodPost:
		h.submit(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", "", h.logger)
	}
}

// page returns the payment page context, including the stored card when
// one-click purchasing is available.
func (h *PaymentHandler) page(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "missing user identity", "/", h.logger)
		return
	}

	page, err := h.service.Page(r.Context(), userID)
	if err != nil {
		respondError(w, err, "/checkout", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// submit executes the charge and finalises the order.
func (h *PaymentHandler) submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "missing user identity", "/", h.logger)
		return
	}

	var req model.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", "/payment/stripe", h.logger)
		return
	}

	email := middleware.UserEmail(r.Context())

	result, err := h.service.Submit(r.Context(), userID, email, &req)
	if err != nil {
		// A failed charge leaves the order open; the user may retry.
		respondError(w, err, "/", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, NoticeResponse{
		Notice:   "Your order was successful!",
		Redirect: "/",
		Data:     result,
	})
}
