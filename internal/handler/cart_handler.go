package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Add handles POST /api/cart/add/{slug} requests.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, slug, ok := h.cartRequest(w, r, "/api/cart/add/")
	if !ok {
		return
	}

	notice, err := h.service.AddToCart(r.Context(), userID, slug)
	if err != nil {
		respondError(w, err, "/", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, NoticeResponse{Notice: notice, Redirect: "/order-summary"})
}

// Remove handles POST /api/cart/remove/{slug} requests.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, slug, ok := h.cartRequest(w, r, "/api/cart/remove/")
	if !ok {
		return
	}

	if err := h.service.RemoveFromCart(r.Context(), userID, slug); err != nil {
		respondError(w, err, "/items/"+slug, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, NoticeResponse{
		Notice:   service.NoticeItemRemoved,
		Redirect: "/order-summary",
	})
}

// Decrement handles POST /api/cart/decrement/{slug} requests.
func (h *CartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	userID, slug, ok := h.cartRequest(w, r, "/api/cart/decrement/")
	if !ok {
		return
	}

	notice, err := h.service.DecrementItem(r.Context(), userID, slug)
	if err != nil {
		respondError(w, err, "/items/"+slug, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, NoticeResponse{Notice: notice, Redirect: "/order-summary"})
}

// Summary handles GET /api/order-summary requests.
func (h *CartHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", "", h.logger)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "missing user identity", "/", h.logger)
		return
	}

	summary, err := h.service.OrderSummary(r.Context(), userID)
	if err != nil {
		respondError(w, err, "/", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// ApplyCoupon handles POST /api/coupon requests.
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", "", h.logger)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "missing user identity", "/", h.logger)
		return
	}

	var req model.CouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", "/checkout", h.logger)
		return
	}

	if err := h.service.ApplyCoupon(r.Context(), userID, req.Code); err != nil {
		respondError(w, err, "/checkout", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, NoticeResponse{
		Notice:   "Successfully added coupon",
		Redirect: "/checkout",
	})
}

// cartRequest validates a cart mutation request and extracts the user id
// and item slug.
func (h *CartHandler) cartRequest(w http.ResponseWriter, r *http.Request, prefix string) (string, string, bool) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", "", h.logger)
		return "", "", false
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "missing user identity", "/", h.logger)
		return "", "", false
	}

	slug := strings.TrimPrefix(r.URL.Path, prefix)
	if slug == "" {
		writeError(w, http.StatusBadRequest, "MISSING_SLUG", "item slug is required", "/", h.logger)
		return "", "", false
	}

	return userID, slug, true
}
