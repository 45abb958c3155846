package coupon

import (
	"context"
)

// Coupon is a discount applied to an order total. Coupons are read-only
// reference data; whatever the record specifies is trusted as-is.
type Coupon struct {
	Code   string
	Amount float64
}

// Store defines the interface for coupon lookup by code.
type Store interface {
	// Lookup returns the coupon for an exact code match.
	Lookup(code string) (Coupon, bool)

	// Size returns the number of coupons in the store.
	Size() int

	// Close releases resources held by the store.
	Close() error
}

// Table represents a set of coupons for fast lookup by code.
type Table interface {
	// Get returns the coupon for a code, if present.
	Get(code string) (Coupon, bool)

	// Size returns the number of coupons in the table.
	Size() int
}

// Loader defines the interface for loading coupon files.
type Loader interface {
	// Load reads a gzipped coupon file and returns a Table.
	Load(ctx context.Context, filePath string) (Table, error)
}
