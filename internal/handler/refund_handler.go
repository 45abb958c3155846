package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// RefundHandler handles refund-related HTTP requests.
type RefundHandler struct {
	service service.RefundService
	logger  zerolog.Logger
}

// NewRefundHandler creates a new refund handler.
func NewRefundHandler(service service.RefundService, logger zerolog.Logger) *RefundHandler {
	return &RefundHandler{
		service: service,
		logger:  logger.With().Str("handler", "refund").Logger(),
	}
}

// Request handles POST /api/refund requests.
func (h *RefundHandler) Request(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", "", h.logger)
		return
	}

	var req model.RefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", "/request-refund", h.logger)
		return
	}

	if err := h.service.Request(r.Context(), &req); err != nil {
		respondError(w, err, "/request-refund", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, NoticeResponse{
		Notice:   "Your refund was received",
		Redirect: "/request-refund",
	})
}
