package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// addressRepository implements the AddressRepository interface using PostgreSQL.
type addressRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAddressRepository creates a new PostgreSQL-backed address repository.
func NewAddressRepository(pool *pgxpool.Pool, logger zerolog.Logger) AddressRepository {
	return &addressRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "address").Logger(),
	}
}

// GetDefault retrieves the user's default address of the given type.
// When several addresses are flagged default, the first match wins.
func (r *addressRepository) GetDefault(ctx context.Context, userID string, addrType model.AddressType) (*model.Address, error) {
	query := `
		SELECT id, user_id, street_address, apartment_address, country, zip,
			address_type, is_default, created_at
		FROM addresses
		WHERE user_id = $1 AND address_type = $2 AND is_default = true
		ORDER BY created_at
		LIMIT 1
	`

	var a model.Address
	err := r.pool.QueryRow(ctx, query, userID, addrType).Scan(
		&a.ID, &a.UserID, &a.StreetAddress, &a.ApartmentAddress,
		&a.Country, &a.Zip, &a.AddressType, &a.Default, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().
				Str("user_id", userID).
				Str("address_type", string(addrType)).
				Msg("no default address")
			return nil, nil
		}
		r.logger.Error().
			Err(err).
			Str("user_id", userID).
			Str("address_type", string(addrType)).
			Msg("failed to query default address")
		return nil, fmt.Errorf("failed to query default address: %w", err)
	}

	return &a, nil
}

// Create inserts a new address.
func (r *addressRepository) Create(ctx context.Context, address *model.Address) error {
	query := `
		INSERT INTO addresses (id, user_id, street_address, apartment_address,
			country, zip, address_type, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		address.ID, address.UserID, address.StreetAddress,
		address.ApartmentAddress, address.Country, address.Zip,
		address.AddressType, address.Default, address.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", address.UserID).
			Str("address_type", string(address.AddressType)).
			Msg("failed to create address")
		return fmt.Errorf("failed to create address: %w", err)
	}

	r.logger.Debug().
		Str("address_id", address.ID.String()).
		Msg("address created successfully")

	return nil
}

// Update persists mutations to an address row.
func (r *addressRepository) Update(ctx context.Context, address *model.Address) error {
	query := `
		UPDATE addresses
		SET street_address = $2, apartment_address = $3, country = $4,
			zip = $5, address_type = $6, is_default = $7
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		address.ID, address.StreetAddress, address.ApartmentAddress,
		address.Country, address.Zip, address.AddressType, address.Default)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("address_id", address.ID.String()).
			Msg("failed to update address")
		return fmt.Errorf("failed to update address: %w", err)
	}

	return nil
}
