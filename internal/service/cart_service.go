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

// User-visible cart notices.
const (
	NoticeItemAdded      = "This item was added to your cart"
	NoticeQuantityChange = "This item quantity was updated"
	NoticeItemRemoved    = "This item was removed from your cart"
)

// cartService implements CartService.
type cartService struct {
	orderRepo repository.OrderRepository
	itemRepo  repository.ItemRepository
	coupons   coupon.Store
	logger    zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	coupons coupon.Store,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		coupons:   coupons,
		logger:    logger.With().Str("service", "cart").Logger(),
	}
}

// AddToCart adds one unit of the item to the user's cart.
func (s *cartService) AddToCart(ctx context.Context, userID, slug string) (string, error) {
	item, err := s.itemRepo.GetBySlug(ctx, slug)
	if err != nil {
		return "", fmt.Errorf("failed to look up item: %w", err)
	}
	if item == nil {
		return "", model.ErrItemNotFound
	}

	// Find or create the user's unordered order item for this item.
	orderItem, err := s.orderRepo.GetUnorderedItem(ctx, userID, item.ID)
	if err != nil {
		return "", fmt.Errorf("failed to look up order item: %w", err)
	}
	if orderItem == nil {
		orderItem = &model.OrderItem{
			ID:       uuid.New(),
			UserID:   userID,
			ItemID:   item.ID,
			Quantity: 1,
		}
		if err := s.orderRepo.CreateOrderItem(ctx, orderItem); err != nil {
			return "", fmt.Errorf("failed to create order item: %w", err)
		}
	}

	order, err := s.orderRepo.GetOpenOrder(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to look up open order: %w", err)
	}

	if order != nil {
		if orderItem.OrderID != nil && *orderItem.OrderID == order.ID {
			orderItem.Quantity++
			if err := s.orderRepo.UpdateOrderItem(ctx, orderItem); err != nil {
				return "", fmt.Errorf("failed to update order item: %w", err)
			}
			s.logger.Debug().
				Str("user_id", userID).
				Str("slug", slug).
				Int("quantity", orderItem.Quantity).
				Msg("cart quantity incremented")
			return NoticeQuantityChange, nil
		}
	} else {
		now := time.Now()
		order = &model.Order{
			ID:        uuid.New(),
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
			return "", fmt.Errorf("failed to create order: %w", err)
		}
		s.logger.Info().
			Str("user_id", userID).
			Str("order_id", order.ID.String()).
			Msg("open order created")
	}

	orderItem.OrderID = &order.ID
	if err := s.orderRepo.UpdateOrderItem(ctx, orderItem); err != nil {
		return "", fmt.Errorf("failed to attach order item: %w", err)
	}

	s.logger.Debug().
		Str("user_id", userID).
		Str("slug", slug).
		Msg("item added to cart")

	return NoticeItemAdded, nil
}

// RemoveFromCart detaches the item from the user's cart entirely. The
// order item row itself survives, detached.
func (s *cartService) RemoveFromCart(ctx context.Context, userID, slug string) error {
	orderItem, _, err := s.cartItem(ctx, userID, slug)
	if err != nil {
		return err
	}

	orderItem.OrderID = nil
	if err := s.orderRepo.UpdateOrderItem(ctx, orderItem); err != nil {
		return fmt.Errorf("failed to detach order item: %w", err)
	}

	s.logger.Debug().
		Str("user_id", userID).
		Str("slug", slug).
		Msg("item removed from cart")

	return nil
}

// DecrementItem removes a single unit of the item, detaching it when the
// quantity would drop to zero.
func (s *cartService) DecrementItem(ctx context.Context, userID, slug string) (string, error) {
	orderItem, _, err := s.cartItem(ctx, userID, slug)
	if err != nil {
		return "", err
	}

	if orderItem.Quantity <= 1 {
		orderItem.OrderID = nil
		if err := s.orderRepo.UpdateOrderItem(ctx, orderItem); err != nil {
			return "", fmt.Errorf("failed to detach order item: %w", err)
		}
		return NoticeItemRemoved, nil
	}

	orderItem.Quantity--
	if err := s.orderRepo.UpdateOrderItem(ctx, orderItem); err != nil {
		return "", fmt.Errorf("failed to update order item: %w", err)
	}

	return NoticeQuantityChange, nil
}

// OrderSummary returns the user's open order with lines and totals.
func (s *cartService) OrderSummary(ctx context.Context, userID string) (*model.OrderSummary, error) {
	order, err := s.orderRepo.GetOpenOrder(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up open order: %w", err)
	}
	if order == nil {
		return nil, model.ErrNoActiveOrder
	}

	summary, err := buildOrderSummary(ctx, order, s.orderRepo, s.itemRepo, s.coupons)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to build order summary")
		return nil, err
	}

	return summary, nil
}

// ApplyCoupon attaches a coupon to the user's open order by code.
func (s *cartService) ApplyCoupon(ctx context.Context, userID, code string) error {
	order, err := s.orderRepo.GetOpenOrder(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to look up open order: %w", err)
	}
	if order == nil {
		return model.ErrNoActiveOrder
	}

	c, ok := s.coupons.Lookup(code)
	if !ok {
		s.logger.Debug().Str("code", code).Msg("coupon not found")
		return model.ErrCouponNotFound
	}

	// No stacking: the current coupon is replaced outright.
	order.CouponCode = &c.Code
	order.UpdatedAt = time.Now()
	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		return fmt.Errorf("failed to apply coupon: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("order_id", order.ID.String()).
		Str("code", c.Code).
		Msg("coupon applied")

	return nil
}

// cartItem resolves the attached order item for (user, slug), translating
// the misses into domain errors.
func (s *cartService) cartItem(ctx context.Context, userID, slug string) (*model.OrderItem, *model.Order, error) {
	item, err := s.itemRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up item: %w", err)
	}
	if item == nil {
		return nil, nil, model.ErrItemNotFound
	}

	order, err := s.orderRepo.GetOpenOrder(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up open order: %w", err)
	}
	if order == nil {
		return nil, nil, model.ErrNoActiveOrder
	}

	orderItem, err := s.orderRepo.GetUnorderedItem(ctx, userID, item.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up order item: %w", err)
	}
	if orderItem == nil || orderItem.OrderID == nil || *orderItem.OrderID != order.ID {
		return nil, nil, model.ErrNotInCart
	}

	return orderItem, order, nil
}
