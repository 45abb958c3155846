package gateway

import (
	"context"
)

// Kind classifies gateway failures into a closed set mapped once at the
// gateway boundary.
type Kind string

const (
	// KindCard indicates the card was declined; the gateway-provided
	// message is safe to show the user.
	KindCard Kind = "card_error"
	// KindRateLimited indicates too many requests were made to the
	// gateway API too quickly.
	KindRateLimited Kind = "rate_limited"
	// KindInvalidRequest indicates invalid parameters were supplied to
	// the gateway API.
	KindInvalidRequest Kind = "invalid_request"
	// KindAuth indicates authentication with the gateway API failed.
	KindAuth Kind = "auth_failure"
	// KindNetwork indicates network communication with the gateway failed.
	KindNetwork Kind = "network_error"
	// KindGateway indicates a generic gateway-reported failure.
	KindGateway Kind = "gateway_error"
	// KindUnexpected covers anything uncategorised. Treated as the most
	// severe and flagged for operator attention.
	KindUnexpected Kind = "unexpected"
)

// Error is a classified gateway failure.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// UserMessage returns the notice shown to the user for this failure.
// Card declines surface the gateway-provided message; everything else gets
// a fixed category message that exposes no internal detail.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindCard:
		return e.Message
	case KindRateLimited:
		return "Rate limit error"
	case KindInvalidRequest:
		return "Invalid parameters"
	case KindAuth:
		return "Not authenticated"
	case KindNetwork:
		return "Network error"
	case KindGateway:
		return "Something went wrong. You were not charged. Please try again."
	default:
		return "A serious error occurred. We have been notified."
	}
}

// ChargeRequest describes a single charge attempt. Exactly one of
// CustomerID or Token must be set; AmountMinor is the charge amount in the
// currency's minor unit.
type ChargeRequest struct {
	AmountMinor int64
	Currency    string
	CustomerID  string
	Token       string
}

// Card is a stored payment source on a gateway customer.
type Card struct {
	ID       string `json:"id"`
	Brand    string `json:"brand"`
	Last4    string `json:"last4"`
	ExpMonth int64  `json:"expMonth"`
	ExpYear  int64  `json:"expYear"`
}

// Gateway defines the payment gateway contract used by the payment
// orchestrator. This system never sees raw card numbers; the gateway is
// handed opaque tokens produced client-side.
type Gateway interface {
	// CreateCustomer creates a gateway customer keyed by email and
	// returns its identifier.
	CreateCustomer(ctx context.Context, email string) (string, error)

	// AttachSource stores the submitted token as a payment source under
	// the customer.
	AttachSource(ctx context.Context, customerID, token string) error

	// Charge executes exactly one charge attempt and returns the gateway
	// charge identifier. Failures are classified as *Error.
	Charge(ctx context.Context, req ChargeRequest) (string, error)

	// ListCards returns up to limit stored cards for the customer.
	ListCards(ctx context.Context, customerID string, limit int) ([]Card, error)
}
