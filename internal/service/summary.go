package service

import (
	"context"
	"fmt"

	"storefront/internal/coupon"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

// buildOrderSummary assembles the display summary for an order: its lines
// joined with catalogue items, the coupon discount and the resulting total.
func buildOrderSummary(
	ctx context.Context,
	order *model.Order,
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	coupons coupon.Store,
) (*model.OrderSummary, error) {
	orderItems, err := orderRepo.GetOrderItems(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}

	itemIDs := make([]uuid.UUID, len(orderItems))
	for i, oi := range orderItems {
		itemIDs[i] = oi.ItemID
	}

	items, err := itemRepo.GetByIDs(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}

	itemsByID := make(map[uuid.UUID]model.Item, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}

	summary := &model.OrderSummary{
		ID:         order.ID,
		CouponCode: order.CouponCode,
		Lines:      make([]model.OrderLine, 0, len(orderItems)),
	}

	for _, oi := range orderItems {
		line := model.OrderLine{
			OrderItem: oi,
			Item:      itemsByID[oi.ItemID],
		}
		summary.Lines = append(summary.Lines, line)
		summary.Total += line.Total()
	}

	if order.CouponCode != nil {
		if c, ok := coupons.Lookup(*order.CouponCode); ok {
			summary.Discount = c.Amount
			summary.Total -= c.Amount
		}
	}

	return summary, nil
}
