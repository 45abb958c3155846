package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"time"

	"storefront/internal/coupon"
	"storefront/internal/gateway"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	refCodeCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
	refCodeLength  = 20
	chargeCurrency = "usd"
)

// paymentService implements PaymentService.
type paymentService struct {
	orderRepo   repository.OrderRepository
	itemRepo    repository.ItemRepository
	profileRepo repository.ProfileRepository
	coupons     coupon.Store
	gw          gateway.Gateway
	logger      zerolog.Logger
}

// NewPaymentService creates a new payment service. The gateway client is
// injected once at construction.
func NewPaymentService(
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	profileRepo repository.ProfileRepository,
	coupons coupon.Store,
	gw gateway.Gateway,
	logger zerolog.Logger,
) PaymentService {
	return &paymentService{
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		profileRepo: profileRepo,
		coupons:     coupons,
		gw:          gw,
		logger:      logger.With().Str("service", "payment").Logger(),
	}
}

// Page returns the payment page context. The open order must already have
// a billing address; when one-click purchasing is enabled the user's first
// stored card is included.
func (s *paymentService) Page(ctx context.Context, userID string) (*PaymentPage, error) {
	order, err := s.orderRepo.GetOpenOrder(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up open order: %w", err)
	}
	if order == nil {
		return nil, model.ErrNoActiveOrder
	}
	if order.BillingAddressID == nil {
		return nil, model.ErrNoBillingAddress
	}

	summary, err := buildOrderSummary(ctx, order, s.orderRepo, s.itemRepo, s.coupons)
	if err != nil {
		return nil, err
	}

	page := &PaymentPage{Order: summary}

	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil && profile.OneClickPurchasing && profile.StripeCustomerID != "" {
		cards, err := s.gw.ListCards(ctx, profile.StripeCustomerID, 3)
		if err != nil {
			return nil, err
		}
		if len(cards) > 0 {
			page.Card = &cards[0]
		}
	}

	return page, nil
}

// Submit validates the payment form, performs exactly one charge attempt
// and, on success, records the payment and closes the order. A gateway
// failure leaves the order in its pre-charge state; the user may retry.
func (s *paymentService) Submit(ctx context.Context, userID, email string, req *model.PaymentRequest) (*PaymentResult, error) {
	order, err := s.orderRepo.GetOpenOrder(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up open order: %w", err)
	}
	if order == nil {
		return nil, model.ErrNoActiveOrder
	}
	if order.BillingAddressID == nil {
		return nil, model.ErrNoBillingAddress
	}
	if req.StripeToken == "" && !req.UseDefault {
		return nil, model.ErrMissingPaymentFields
	}

	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &model.UserProfile{UserID: userID}
	}

	if req.Save {
		if err := s.saveCard(ctx, profile, email, req.StripeToken); err != nil {
			return nil, err
		}
	}

	summary, err := buildOrderSummary(ctx, order, s.orderRepo, s.itemRepo, s.coupons)
	if err != nil {
		return nil, err
	}

	// Charge amount is the order total in the currency's minor unit, as a
	// single scalar.
	amount := int64(math.Round(summary.Total * 100))

	chargeReq := gateway.ChargeRequest{
		AmountMinor: amount,
		Currency:    chargeCurrency,
	}
	if req.UseDefault || req.Save {
		// Charge the stored customer: a token cannot be charged more
		// than once after it has been attached as a source.
		chargeReq.CustomerID = profile.StripeCustomerID
	} else {
		chargeReq.Token = req.StripeToken
	}

	chargeID, err := s.gw.Charge(ctx, chargeReq)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("user_id", userID).
			Str("order_id", order.ID.String()).
			Int64("amount_minor", amount).
			Msg("charge attempt failed")
		return nil, err
	}

	refCode, err := s.newRefCode(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment := &model.Payment{
		ID:             uuid.New(),
		StripeChargeID: chargeID,
		UserID:         userID,
		Amount:         summary.Total,
		CreatedAt:      now,
	}

	order.Ordered = true
	order.OrderedAt = &now
	order.PaymentID = &payment.ID
	order.RefCode = &refCode
	order.UpdatedAt = now

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to finalise order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreatePayment(ctx, tx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	if err = s.orderRepo.MarkOrderItemsOrdered(ctx, tx, order.ID); err != nil {
		return nil, fmt.Errorf("failed to mark order items ordered: %w", err)
	}

	if err = s.orderRepo.CompleteOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to close order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to finalise order: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("order_id", order.ID.String()).
		Str("ref_code", refCode).
		Int64("amount_minor", amount).
		Msg("order placed successfully")

	return &PaymentResult{RefCode: refCode, Amount: summary.Total}, nil
}

// saveCard ensures the user has a gateway customer identity and attaches
// the submitted token as a stored source.
func (s *paymentService) saveCard(ctx context.Context, profile *model.UserProfile, email, token string) error {
	if profile.StripeCustomerID != "" {
		return s.gw.AttachSource(ctx, profile.StripeCustomerID, token)
	}

	customerID, err := s.gw.CreateCustomer(ctx, email)
	if err != nil {
		return err
	}
	if err := s.gw.AttachSource(ctx, customerID, token); err != nil {
		return err
	}

	profile.StripeCustomerID = customerID
	profile.OneClickPurchasing = true
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Info().
		Str("user_id", profile.UserID).
		Msg("one-click purchasing enabled")

	return nil
}

// newRefCode generates a fresh 20-character lowercase alphanumeric
// reference code, retrying until it is unique among orders.
func (s *paymentService) newRefCode(ctx context.Context) (string, error) {
	for {
		code, err := randomRefCode()
		if err != nil {
			return "", err
		}

		exists, err := s.orderRepo.RefCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
}

// randomRefCode draws a single candidate reference code.
func randomRefCode() (string, error) {
	max := big.NewInt(int64(len(refCodeCharset)))
	code := make([]byte, refCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate ref code: %w", err)
		}
		code[i] = refCodeCharset[n.Int64()]
	}
	return string(code), nil
}
