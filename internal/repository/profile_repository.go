package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// profileRepository implements the ProfileRepository interface using PostgreSQL.
type profileRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProfileRepository creates a new PostgreSQL-backed profile repository.
func NewProfileRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProfileRepository {
	return &profileRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "profile").Logger(),
	}
}

// Get retrieves the user's profile.
func (r *profileRepository) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	query := `
		SELECT user_id, stripe_customer_id, one_click_purchasing
		FROM user_profiles
		WHERE user_id = $1
	`

	var p model.UserProfile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.StripeCustomerID, &p.OneClickPurchasing)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("user_id", userID).Msg("profile not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query profile")
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	return &p, nil
}

// Upsert creates or updates the user's profile.
func (r *profileRepository) Upsert(ctx context.Context, profile *model.UserProfile) error {
	query := `
		INSERT INTO user_profiles (user_id, stripe_customer_id, one_click_purchasing)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET stripe_customer_id = EXCLUDED.stripe_customer_id,
			one_click_purchasing = EXCLUDED.one_click_purchasing
	`

	_, err := r.pool.Exec(ctx, query,
		profile.UserID, profile.StripeCustomerID, profile.OneClickPurchasing)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", profile.UserID).
			Msg("failed to upsert profile")
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	r.logger.Debug().
		Str("user_id", profile.UserID).
		Msg("profile upserted successfully")

	return nil
}
