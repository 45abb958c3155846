package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles checkout-related HTTP requests.
type CheckoutHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// Handle routes GET and POST /api/checkout requests.
func (h *CheckoutHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPost:
		h.submit(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", "", h.logger)
	}
}

// get returns the checkout context with default addresses for prefill.
func (h *CheckoutHandler) get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "missing user identity", "/", h.logger)
		return
	}

	checkoutCtx, err := h.service.Context(r.Context(), userID)
	if err != nil {
		respondError(w, err, "/", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, checkoutCtx)
}

// submit resolves addresses and routes to the selected payment method.
func (h *CheckoutHandler) submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "missing user identity", "/", h.logger)
		return
	}

	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", "/checkout", h.logger)
		return
	}

	redirect, err := h.service.Submit(r.Context(), userID, &req)
	if err != nil {
		respondError(w, err, "/checkout", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, NoticeResponse{Redirect: redirect})
}
