package model

import (
	"time"

	"github.com/google/uuid"
)

// Order represents a customer order. An order with Ordered=false is the
// user's active cart; at most one such order should exist per user.
type Order struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	UserID            string     `json:"userId" db:"user_id"`
	Ordered           bool       `json:"ordered" db:"ordered"`
	OrderedAt         *time.Time `json:"orderedAt,omitempty" db:"ordered_at"`
	ShippingAddressID *uuid.UUID `json:"shippingAddressId,omitempty" db:"shipping_address_id"`
	BillingAddressID  *uuid.UUID `json:"billingAddressId,omitempty" db:"billing_address_id"`
	CouponCode        *string    `json:"couponCode,omitempty" db:"coupon_code"`
	PaymentID         *uuid.UUID `json:"paymentId,omitempty" db:"payment_id"`
	RefCode           *string    `json:"refCode,omitempty" db:"ref_code"`
	RefundRequested   bool       `json:"refundRequested" db:"refund_requested"`
	RefundGranted     bool       `json:"refundGranted" db:"refund_granted"`
	CreatedAt         time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time  `json:"updatedAt" db:"updated_at"`
}

// OrderItem represents a quantity of a single item held by a user. While
// unordered it may be attached to the user's open order; once the order is
// placed it is marked ordered and becomes historical.
type OrderItem struct {
	ID       uuid.UUID  `json:"-" db:"id"`
	OrderID  *uuid.UUID `json:"-" db:"order_id"`
	UserID   string     `json:"-" db:"user_id"`
	ItemID   uuid.UUID  `json:"itemId" db:"item_id"`
	Quantity int        `json:"quantity" db:"quantity"`
	Ordered  bool       `json:"-" db:"ordered"`
}

// OrderLine pairs an order item with its catalogue item for display.
type OrderLine struct {
	OrderItem OrderItem `json:"orderItem"`
	Item      Item      `json:"item"`
}

// Total returns the line total, honouring the item's discount price.
func (l *OrderLine) Total() float64 {
	return l.Item.UnitPrice() * float64(l.OrderItem.Quantity)
}

// OrderSummary is the response payload for the user's open order.
type OrderSummary struct {
	ID         uuid.UUID   `json:"id"`
	Lines      []OrderLine `json:"lines"`
	CouponCode *string     `json:"couponCode,omitempty"`
	Discount   float64     `json:"discount"`
	Total      float64     `json:"total"`
}
