package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront/internal/gateway"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// NoticeResponse reports a user-visible notice alongside optional payload
// data and the page the client should navigate to next.
type NoticeResponse struct {
	Notice   string      `json:"notice,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, notice, redirect string, logger zerolog.Logger) {
	logger.Error().
		Str("code", code).
		Str("notice", notice).
		Int("status", status).
		Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Notice: notice, Redirect: redirect})
}

// domainErrorStatus maps domain error codes onto HTTP status codes.
func domainErrorStatus(code string) int {
	switch code {
	case model.ErrCodeItemNotFound,
		model.ErrCodeCouponNotFound,
		model.ErrCodeOrderNotFound,
		model.ErrCodeNoActiveOrder,
		model.ErrCodeNotInCart:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// gatewayErrorStatus maps gateway failure kinds onto HTTP status codes.
func gatewayErrorStatus(kind gateway.Kind) int {
	switch kind {
	case gateway.KindCard:
		return http.StatusPaymentRequired
	case gateway.KindRateLimited:
		return http.StatusTooManyRequests
	case gateway.KindUnexpected:
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}

// respondError recovers any error at the request boundary: every error
// maps to a user-visible notice and a redirect to a sensible prior page.
// Nothing internal is exposed to the client.
func respondError(w http.ResponseWriter, err error, redirect string, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, domainErrorStatus(domainErr.Code), domainErr.Code, domainErr.Message, redirect, logger)
		return
	}

	var gwErr *gateway.Error
	if errors.As(err, &gwErr) {
		if gwErr.Kind == gateway.KindUnexpected {
			// Flagged for operator attention.
			logger.Error().Err(err).Msg("unexpected gateway failure")
		}
		writeError(w, gatewayErrorStatus(gwErr.Kind), string(gwErr.Kind), gwErr.UserMessage(), redirect, logger)
		return
	}

	logger.Error().Err(err).Msg("unhandled error")
	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError,
		"Something went wrong. Please try again.", redirect, logger)
}
