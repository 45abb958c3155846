package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/coupon"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	orderRepo   repository.OrderRepository
	itemRepo    repository.ItemRepository
	addressRepo repository.AddressRepository
	coupons     coupon.Store
	logger      zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	addressRepo repository.AddressRepository,
	coupons coupon.Store,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		addressRepo: addressRepo,
		coupons:     coupons,
		logger:      logger.With().Str("service", "checkout").Logger(),
	}
}

// Context returns the open order and default addresses for form prefill.
func (s *checkoutService) Context(ctx context.Context, userID string) (*model.CheckoutContext, error) {
	order, err := s.orderRepo.GetOpenOrder(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up open order: %w", err)
	}
	if order == nil {
		return nil, model.ErrNoActiveOrder
	}

	summary, err := buildOrderSummary(ctx, order, s.orderRepo, s.itemRepo, s.coupons)
	if err != nil {
		return nil, err
	}

	checkoutCtx := &model.CheckoutContext{Order: summary}

	if addr, err := s.addressRepo.GetDefault(ctx, userID, model.AddressTypeShipping); err != nil {
		return nil, err
	} else if addr != nil {
		checkoutCtx.DefaultShippingAddress = addr
	}

	if addr, err := s.addressRepo.GetDefault(ctx, userID, model.AddressTypeBilling); err != nil {
		return nil, err
	} else if addr != nil {
		checkoutCtx.DefaultBillingAddress = addr
	}

	return checkoutCtx, nil
}

// Submit resolves shipping and billing addresses for the open order and
// returns the redirect target for the selected payment option. Shipping is
// resolved first; a shipping failure short-circuits billing resolution and
// the payment-option step, leaving the order unmodified.
func (s *checkoutService) Submit(ctx context.Context, userID string, req *model.CheckoutRequest) (string, error) {
	order, err := s.orderRepo.GetOpenOrder(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to look up open order: %w", err)
	}
	if order == nil {
		return "", model.ErrNoActiveOrder
	}

	shipping, err := s.resolveAddress(ctx, userID, req.Shipping, model.AddressTypeShipping)
	if err != nil {
		return "", err
	}
	order.ShippingAddressID = &shipping.ID
	order.UpdatedAt = time.Now()
	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		return "", fmt.Errorf("failed to attach shipping address: %w", err)
	}

	var billing *model.Address
	if req.SameBillingAddress {
		// Clone the just-resolved shipping address under a new identity
		// with the type flipped to billing.
		billing = &model.Address{
			ID:               uuid.New(),
			UserID:           userID,
			StreetAddress:    shipping.StreetAddress,
			ApartmentAddress: shipping.ApartmentAddress,
			Country:          shipping.Country,
			Zip:              shipping.Zip,
			AddressType:      model.AddressTypeBilling,
			CreatedAt:        time.Now(),
		}
		if err := s.addressRepo.Create(ctx, billing); err != nil {
			return "", fmt.Errorf("failed to clone shipping address: %w", err)
		}
	} else {
		billing, err = s.resolveAddress(ctx, userID, req.Billing, model.AddressTypeBilling)
		if err != nil {
			return "", err
		}
	}
	order.BillingAddressID = &billing.ID
	order.UpdatedAt = time.Now()
	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		return "", fmt.Errorf("failed to attach billing address: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("order_id", order.ID.String()).
		Str("payment_option", req.PaymentOption).
		Msg("checkout addresses resolved")

	switch req.PaymentOption {
	case model.PaymentOptionStripe:
		return "/payment/stripe", nil
	case model.PaymentOptionPaypal:
		return "/payment/paypal", nil
	default:
		return "", model.ErrInvalidPaymentOption
	}
}

// resolveAddress resolves one address block: the user's default address of
// the type, or a freshly validated and created one.
func (s *checkoutService) resolveAddress(ctx context.Context, userID string, input model.AddressInput, addrType model.AddressType) (*model.Address, error) {
	if input.UseDefault {
		addr, err := s.addressRepo.GetDefault(ctx, userID, addrType)
		if err != nil {
			return nil, err
		}
		if addr == nil {
			if addrType == model.AddressTypeShipping {
				return nil, model.ErrNoDefaultShipping
			}
			return nil, model.ErrNoDefaultBilling
		}
		return addr, nil
	}

	// Required fields must be non-empty. Whitespace is accepted as-is.
	if input.StreetAddress == "" || input.Country == "" || input.Zip == "" {
		if addrType == model.AddressTypeShipping {
			return nil, model.ErrMissingShipping
		}
		return nil, model.ErrMissingBilling
	}

	addr := &model.Address{
		ID:               uuid.New(),
		UserID:           userID,
		StreetAddress:    input.StreetAddress,
		ApartmentAddress: input.ApartmentAddress,
		Country:          input.Country,
		Zip:              input.Zip,
		AddressType:      addrType,
		CreatedAt:        time.Now(),
	}
	if err := s.addressRepo.Create(ctx, addr); err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}

	if input.SaveAsDefault {
		addr.Default = true
		if err := s.addressRepo.Update(ctx, addr); err != nil {
			return nil, fmt.Errorf("failed to mark address default: %w", err)
		}
	}

	return addr, nil
}
