package model

// AddressInput is one address block of a checkout submission.
type AddressInput struct {
	UseDefault       bool   `json:"useDefault"`
	SaveAsDefault    bool   `json:"saveAsDefault"`
	StreetAddress    string `json:"streetAddress"`
	ApartmentAddress string `json:"apartmentAddress"`
	Country          string `json:"country"`
	Zip              string `json:"zip"`
}

// Payment option choices accepted on checkout submission.
const (
	PaymentOptionStripe = "stripe"
	PaymentOptionPaypal = "paypal"
)

// CheckoutRequest represents the checkout form submission.
type CheckoutRequest struct {
	Shipping           AddressInput `json:"shipping"`
	Billing            AddressInput `json:"billing"`
	SameBillingAddress bool         `json:"sameBillingAddress"`
	PaymentOption      string       `json:"paymentOption"`
}

// CheckoutContext is the response payload for the checkout page, carrying
// the user's default addresses for form prefill.
type CheckoutContext struct {
	Order                  *OrderSummary `json:"order"`
	DefaultShippingAddress *Address      `json:"defaultShippingAddress,omitempty"`
	DefaultBillingAddress  *Address      `json:"defaultBillingAddress,omitempty"`
}

// PaymentRequest represents the payment form submission.
type PaymentRequest struct {
	StripeToken string `json:"stripeToken"`
	Save        bool   `json:"save"`
	UseDefault  bool   `json:"useDefault"`
}

// CouponRequest represents a coupon application submission.
type CouponRequest struct {
	Code string `json:"code"`
}

// RefundRequest represents a refund form submission.
type RefundRequest struct {
	RefCode string `json:"refCode"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
