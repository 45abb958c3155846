package service

import (
	"context"

	"storefront/internal/gateway"
	"storefront/internal/model"
)

// CatalogService defines read-only operations over the item catalogue.
type CatalogService interface {
	// GetAll retrieves all items with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Item, error)

	// GetBySlug retrieves a single item by slug.
	GetBySlug(ctx context.Context, slug string) (*model.Item, error)
}

// CartService defines operations over the user's open order.
type CartService interface {
	// AddToCart adds one unit of the item to the user's cart, creating
	// the open order lazily. The returned notice distinguishes a
	// quantity change from a newly added item.
	AddToCart(ctx context.Context, userID, slug string) (string, error)

	// RemoveFromCart detaches the item from the user's cart entirely.
	RemoveFromCart(ctx context.Context, userID, slug string) error

	// DecrementItem removes a single unit of the item, detaching it
	// when the quantity would drop to zero.
	DecrementItem(ctx context.Context, userID, slug string) (string, error)

	// OrderSummary returns the user's open order with lines and totals.
	OrderSummary(ctx context.Context, userID string) (*model.OrderSummary, error)

	// ApplyCoupon attaches a coupon to the user's open order by code,
	// replacing any coupon already applied.
	ApplyCoupon(ctx context.Context, userID, code string) error
}

// CheckoutService resolves shipping and billing addresses for the user's
// open order and selects the payment option.
type CheckoutService interface {
	// Context returns the open order and the user's default addresses
	// for form prefill.
	Context(ctx context.Context, userID string) (*model.CheckoutContext, error)

	// Submit resolves addresses per the request and returns the payment
	// redirect target for the selected payment option.
	Submit(ctx context.Context, userID string, req *model.CheckoutRequest) (string, error)
}

// PaymentPage is the response payload for the payment page.
type PaymentPage struct {
	Order *model.OrderSummary `json:"order"`
	Card  *gateway.Card       `json:"card,omitempty"`
}

// PaymentResult reports a successful charge.
type PaymentResult struct {
	RefCode string  `json:"refCode"`
	Amount  float64 `json:"amount"`
}

// PaymentService executes the charge and finalises the order.
type PaymentService interface {
	// Page returns the payment page context: the open order and, when
	// one-click purchasing is enabled, the user's stored card.
	Page(ctx context.Context, userID string) (*PaymentPage, error)

	// Submit validates the payment form, performs exactly one charge
	// attempt and, on success, records the payment and closes the order.
	Submit(ctx context.Context, userID, email string, req *model.PaymentRequest) (*PaymentResult, error)
}

// RefundService records refund requests against placed orders.
type RefundService interface {
	// Request flags the order identified by reference code and appends
	// a refund record.
	Request(ctx context.Context, req *model.RefundRequest) error
}
