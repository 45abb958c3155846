package router

import (
	"net/http"
	"strings"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
	paymentHandler *handler.PaymentHandler,
	refundHandler *handler.RefundHandler,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Catalogue handler function
	itemRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Check if this is a request for a specific item slug
		if r.URL.Path != "/api/items" && r.URL.Path != "/api/items/" {
			catalogHandler.GetBySlug(w, r)
			return
		}
		catalogHandler.GetAll(w, r)
	}

	// Register item routes (both with and without trailing slash)
	mux.HandleFunc("/api/items", itemRouteHandler)
	mux.HandleFunc("/api/items/", itemRouteHandler)

	// Cart mutation routes by item slug
	mux.HandleFunc("/api/cart/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/cart/add/"):
			cartHandler.Add(w, r)
		case strings.HasPrefix(r.URL.Path, "/api/cart/remove/"):
			cartHandler.Remove(w, r)
		case strings.HasPrefix(r.URL.Path, "/api/cart/decrement/"):
			cartHandler.Decrement(w, r)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	})

	mux.HandleFunc("/api/order-summary", cartHandler.Summary)
	mux.HandleFunc("/api/coupon", cartHandler.ApplyCoupon)
	mux.HandleFunc("/api/checkout", checkoutHandler.Handle)
	mux.HandleFunc("/api/payment", paymentHandler.Handle)
	mux.HandleFunc("/api/refund", refundHandler.Request)

	// Apply middleware in order: Recovery -> Logging -> CORS -> CurrentUser
	var h http.Handler = mux
	h = middleware.CurrentUser(logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
