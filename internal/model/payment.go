package model

import (
	"time"

	"github.com/google/uuid"
)

// Payment records a successful gateway charge. Created exactly once per
// successful checkout, then linked 1:1 to its order.
type Payment struct {
	ID             uuid.UUID `json:"id" db:"id"`
	StripeChargeID string    `json:"-" db:"stripe_charge_id"`
	UserID         string    `json:"-" db:"user_id"`
	Amount         float64   `json:"amount" db:"amount"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// Refund is an append-only refund request against a placed order.
type Refund struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	Reason    string    `json:"reason" db:"reason"`
	Email     string    `json:"email" db:"email"`
	Accepted  bool      `json:"accepted" db:"accepted"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// UserProfile holds per-user payment gateway state. OneClickPurchasing is
// enabled once a card has been saved against a gateway customer.
type UserProfile struct {
	UserID             string `json:"-" db:"user_id"`
	StripeCustomerID   string `json:"-" db:"stripe_customer_id"`
	OneClickPurchasing bool   `json:"oneClickPurchasing" db:"one_click_purchasing"`
}
