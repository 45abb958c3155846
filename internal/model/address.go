package model

import (
	"time"

	"github.com/google/uuid"
)

// AddressType distinguishes shipping from billing addresses.
type AddressType string

const (
	AddressTypeShipping AddressType = "S"
	AddressTypeBilling  AddressType = "B"
)

// Address represents a shipping or billing address belonging to a user.
type Address struct {
	ID               uuid.UUID   `json:"id" db:"id"`
	UserID           string      `json:"-" db:"user_id"`
	StreetAddress    string      `json:"streetAddress" db:"street_address"`
	ApartmentAddress string      `json:"apartmentAddress" db:"apartment_address"`
	Country          string      `json:"country" db:"country"`
	Zip              string      `json:"zip" db:"zip"`
	AddressType      AddressType `json:"addressType" db:"address_type"`
	Default          bool        `json:"default" db:"is_default"`
	CreatedAt        time.Time   `json:"createdAt" db:"created_at"`
}
