package model

import (
	"time"

	"github.com/google/uuid"
)

// Item represents a purchasable item in the catalogue.
type Item struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Slug          string    `json:"slug" db:"slug"`
	Name          string    `json:"name" db:"name"`
	Price         float64   `json:"price" db:"price"`
	DiscountPrice *float64  `json:"discountPrice,omitempty" db:"discount_price"`
	Category      string    `json:"category" db:"category"`
	Label         string    `json:"label" db:"label"`
	Description   string    `json:"description" db:"description"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// UnitPrice returns the price a single unit is charged at, honouring the
// discount price when one is set.
func (i *Item) UnitPrice() float64 {
	if i.DiscountPrice != nil {
		return *i.DiscountPrice
	}
	return i.Price
}
