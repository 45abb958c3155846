package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error    string `json:"error"`
	Notice   string `json:"notice"`
	Redirect string `json:"redirect,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON          = "INVALID_JSON"
	ErrCodeNoActiveOrder        = "NO_ACTIVE_ORDER"
	ErrCodeItemNotFound         = "ITEM_NOT_FOUND"
	ErrCodeNotInCart            = "NOT_IN_CART"
	ErrCodeCouponNotFound       = "COUPON_NOT_FOUND"
	ErrCodeOrderNotFound        = "ORDER_NOT_FOUND"
	ErrCodeNoDefaultShipping    = "NO_DEFAULT_SHIPPING"
	ErrCodeNoDefaultBilling     = "NO_DEFAULT_BILLING"
	ErrCodeMissingShipping      = "MISSING_SHIPPING_FIELDS"
	ErrCodeMissingBilling       = "MISSING_BILLING_FIELDS"
	ErrCodeInvalidPaymentOption = "INVALID_PAYMENT_OPTION"
	ErrCodeNoBillingAddress     = "NO_BILLING_ADDRESS"
	ErrCodeMissingPaymentFields = "MISSING_PAYMENT_FIELDS"
	ErrCodeUnauthorised         = "UNAUTHORIZED"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNoActiveOrder        = NewDomainError(ErrCodeNoActiveOrder, "You do not have an active order")
	ErrItemNotFound         = NewDomainError(ErrCodeItemNotFound, "This item does not exist")
	ErrNotInCart            = NewDomainError(ErrCodeNotInCart, "This item was not in your cart")
	ErrCouponNotFound       = NewDomainError(ErrCodeCouponNotFound, "This coupon does not exist")
	ErrOrderNotFound        = NewDomainError(ErrCodeOrderNotFound, "This order does not exist")
	ErrNoDefaultShipping    = NewDomainError(ErrCodeNoDefaultShipping, "No default shipping address available")
	ErrNoDefaultBilling     = NewDomainError(ErrCodeNoDefaultBilling, "No default billing address available")
	ErrMissingShipping      = NewDomainError(ErrCodeMissingShipping, "Please fill in required shipping address fields")
	ErrMissingBilling       = NewDomainError(ErrCodeMissingBilling, "Please fill in required billing address fields")
	ErrInvalidPaymentOption = NewDomainError(ErrCodeInvalidPaymentOption, "Invalid payment option choice")
	ErrNoBillingAddress     = NewDomainError(ErrCodeNoBillingAddress, "You have not added a billing address")
	ErrMissingPaymentFields = NewDomainError(ErrCodeMissingPaymentFields, "Invalid payment data received")
)
