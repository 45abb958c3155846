package coupon

import (
	"fmt"
	"strconv"
	"strings"
)

// mapTable implements Table using a map for O(1) lookups.
type mapTable struct {
	coupons map[string]Coupon
}

// NewMapTable creates a new map-based coupon table.
func NewMapTable(capacity int) Table {
	return &mapTable{
		coupons: make(map[string]Coupon, capacity),
	}
}

// Get returns the coupon for a code, if present.
func (t *mapTable) Get(code string) (Coupon, bool) {
	c, exists := t.coupons[code]
	return c, exists
}

// Size returns the number of coupons in the table.
func (t *mapTable) Size() int {
	return len(t.coupons)
}

// Add adds a coupon to the table, replacing any existing entry for the code.
func (t *mapTable) Add(c Coupon) {
	t.coupons[c.Code] = c
}

// parseLine parses a single "CODE,amount" coupon file line.
func parseLine(line string) (Coupon, error) {
	code, amountStr, found := strings.Cut(line, ",")
	if !found {
		return Coupon{}, fmt.Errorf("malformed coupon line %q", line)
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return Coupon{}, fmt.Errorf("empty coupon code in line %q", line)
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(amountStr), 64)
	if err != nil {
		return Coupon{}, fmt.Errorf("invalid coupon amount in line %q: %w", line, err)
	}

	return Coupon{Code: code, Amount: amount}, nil
}
