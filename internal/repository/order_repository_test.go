package repository

import (
	"context"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedOpenOrder creates an open order for the user via the repository.
func seedOpenOrder(t *testing.T, repo OrderRepository, userID string) *model.Order {
	ctx := context.Background()

	now := time.Now()
	order := &model.Order{
		ID:        uuid.New(),
		UserID:    userID,
		Ordered:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.CreateOrder(ctx, order))

	return order
}

func TestOrderRepository_GetOpenOrder(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)

	ctx := context.Background()

	t.Run("No open order", func(t *testing.T) {
		order, err := repo.GetOpenOrder(ctx, "user-1")

		require.NoError(t, err)
		assert.Nil(t, order)
	})

	t.Run("Open order exists", func(t *testing.T) {
		created := seedOpenOrder(t, repo, "user-1")

		order, err := repo.GetOpenOrder(ctx, "user-1")

		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, created.ID, order.ID)
		assert.Equal(t, "user-1", order.UserID)
		assert.False(t, order.Ordered)
		assert.Nil(t, order.OrderedAt)
		assert.Nil(t, order.CouponCode)
	})

	t.Run("Other users are not visible", func(t *testing.T) {
		order, err := repo.GetOpenOrder(ctx, "user-2")

		require.NoError(t, err)
		assert.Nil(t, order)
	})
}

func TestOrderRepository_CreateOrder_OneOpenPerUser(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)

	ctx := context.Background()

	seedOpenOrder(t, repo, "user-1")

	// A second open order for the same user violates the partial unique index.
	now := time.Now()
	second := &model.Order{
		ID:        uuid.New(),
		UserID:    "user-1",
		Ordered:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := repo.CreateOrder(ctx, second)
	require.Error(t, err)

	// A different user is unaffected.
	seedOpenOrder(t, repo, "user-2")
}

func TestOrderRepository_UpdateOrder(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)

	ctx := context.Background()

	order := seedOpenOrder(t, repo, "user-1")

	coupon := "SUMMER10"
	order.CouponCode = &coupon
	order.UpdatedAt = time.Now()
	require.NoError(t, repo.UpdateOrder(ctx, order))

	loaded, err := repo.GetOpenOrder(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.NotNil(t, loaded.CouponCode)
	assert.Equal(t, "SUMMER10", *loaded.CouponCode)
}

func TestOrderRepository_GetByRefCode(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)

	ctx := context.Background()

	order := seedOpenOrder(t, repo, "user-1")

	refCode := "abc123def456ghi789jk"
	orderedAt := time.Now()
	order.Ordered = true
	order.OrderedAt = &orderedAt
	order.RefCode = &refCode
	order.UpdatedAt = orderedAt
	require.NoError(t, repo.UpdateOrder(ctx, order))

	t.Run("Order exists", func(t *testing.T) {
		loaded, err := repo.GetByRefCode(ctx, refCode)

		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, order.ID, loaded.ID)
		assert.True(t, loaded.Ordered)
		require.NotNil(t, loaded.RefCode)
		assert.Equal(t, refCode, *loaded.RefCode)
		require.NotNil(t, loaded.OrderedAt)
		assert.WithinDuration(t, orderedAt, *loaded.OrderedAt, time.Second)
	})

	t.Run("Order does not exist", func(t *testing.T) {
		loaded, err := repo.GetByRefCode(ctx, "unknown-ref-code")

		require.NoError(t, err)
		assert.Nil(t, loaded)
	})
}

func TestOrderRepository_RefCodeExists(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)

	ctx := context.Background()

	refCode := "abc123def456ghi789jk"

	exists, err := repo.RefCodeExists(ctx, refCode)
	require.NoError(t, err)
	assert.False(t, exists)

	order := seedOpenOrder(t, repo, "user-1")
	order.Ordered = true
	order.RefCode = &refCode
	order.UpdatedAt = time.Now()
	require.NoError(t, repo.UpdateOrder(ctx, order))

	exists, err = repo.RefCodeExists(ctx, refCode)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestOrderRepository_OrderItems(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)

	ctx := context.Background()

	itemA := model.Item{ID: uuid.New(), Slug: "item-a", Name: "Item A", Price: 10.00, Category: "S", Label: "P", Description: "A", CreatedAt: time.Now()}
	itemB := model.Item{ID: uuid.New(), Slug: "item-b", Name: "Item B", Price: 20.00, Category: "SW", Label: "S", Description: "B", CreatedAt: time.Now()}
	seedItems(t, pool, []model.Item{itemA, itemB})

	order := seedOpenOrder(t, repo, "user-1")

	lineA := &model.OrderItem{
		ID:       uuid.New(),
		OrderID:  &order.ID,
		UserID:   "user-1",
		ItemID:   itemA.ID,
		Quantity: 2,
	}
	lineB := &model.OrderItem{
		ID:       uuid.New(),
		OrderID:  &order.ID,
		UserID:   "user-1",
		ItemID:   itemB.ID,
		Quantity: 1,
	}
	require.NoError(t, repo.CreateOrderItem(ctx, lineA))
	require.NoError(t, repo.CreateOrderItem(ctx, lineB))

	t.Run("GetOrderItems returns attached items", func(t *testing.T) {
		items, err := repo.GetOrderItems(ctx, order.ID)

		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("GetUnorderedItem finds open line", func(t *testing.T) {
		line, err := repo.GetUnorderedItem(ctx, "user-1", itemA.ID)

		require.NoError(t, err)
		require.NotNil(t, line)
		assert.Equal(t, lineA.ID, line.ID)
		assert.Equal(t, 2, line.Quantity)
		require.NotNil(t, line.OrderID)
		assert.Equal(t, order.ID, *line.OrderID)
	})

	t.Run("GetUnorderedItem missing item", func(t *testing.T) {
		line, err := repo.GetUnorderedItem(ctx, "user-1", uuid.New())

		require.NoError(t, err)
		assert.Nil(t, line)
	})

	t.Run("UpdateOrderItem detaches from order", func(t *testing.T) {
		lineB.OrderID = nil
		require.NoError(t, repo.UpdateOrderItem(ctx, lineB))

		items, err := repo.GetOrderItems(ctx, order.ID)
		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, lineA.ID, items[0].ID)

		// Detached line is still the user's, just not in the cart.
		line, err := repo.GetUnorderedItem(ctx, "user-1", itemB.ID)
		require.NoError(t, err)
		require.NotNil(t, line)
		assert.Nil(t, line.OrderID)
		assert.Equal(t, 1, line.Quantity)
	})

	t.Run("UpdateOrderItem changes quantity", func(t *testing.T) {
		lineA.Quantity = 5
		require.NoError(t, repo.UpdateOrderItem(ctx, lineA))

		line, err := repo.GetUnorderedItem(ctx, "user-1", itemA.ID)
		require.NoError(t, err)
		require.NotNil(t, line)
		assert.Equal(t, 5, line.Quantity)
	})
}

func TestOrderRepository_FinalizeOrder(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)

	ctx := context.Background()

	item := model.Item{ID: uuid.New(), Slug: "item-a", Name: "Item A", Price: 19.99, Category: "S", Label: "P", Description: "A", CreatedAt: time.Now()}
	seedItems(t, pool, []model.Item{item})

	order := seedOpenOrder(t, repo, "user-1")
	line := &model.OrderItem{
		ID:       uuid.New(),
		OrderID:  &order.ID,
		UserID:   "user-1",
		ItemID:   item.ID,
		Quantity: 1,
	}
	require.NoError(t, repo.CreateOrderItem(ctx, line))

	payment := &model.Payment{
		ID:             uuid.New(),
		StripeChargeID: "ch_123",
		UserID:         "user-1",
		Amount:         19.99,
		CreatedAt:      time.Now(),
	}

	refCode := "abc123def456ghi789jk"
	orderedAt := time.Now()
	order.Ordered = true
	order.OrderedAt = &orderedAt
	order.PaymentID = &payment.ID
	order.RefCode = &refCode
	order.UpdatedAt = orderedAt

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.CreatePayment(ctx, tx, payment))
	require.NoError(t, repo.MarkOrderItemsOrdered(ctx, tx, order.ID))
	require.NoError(t, repo.CompleteOrder(ctx, tx, order))
	require.NoError(t, tx.Commit(ctx))

	// Order is placed and linked to the payment.
	placed, err := repo.GetByRefCode(ctx, refCode)
	require.NoError(t, err)
	require.NotNil(t, placed)
	assert.True(t, placed.Ordered)
	require.NotNil(t, placed.PaymentID)
	assert.Equal(t, payment.ID, *placed.PaymentID)

	// The user's cart is empty again.
	open, err := repo.GetOpenOrder(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, open)

	unordered, err := repo.GetUnorderedItem(ctx, "user-1", item.ID)
	require.NoError(t, err)
	assert.Nil(t, unordered)

	// Payment row persisted.
	var count int
	err = pool.QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE id = $1`, payment.ID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOrderRepository_FinalizeOrder_Rollback(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)

	ctx := context.Background()

	payment := &model.Payment{
		ID:             uuid.New(),
		StripeChargeID: "ch_123",
		UserID:         "user-1",
		Amount:         19.99,
		CreatedAt:      time.Now(),
	}

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.CreatePayment(ctx, tx, payment))
	require.NoError(t, tx.Rollback(ctx))

	// Nothing persisted.
	var count int
	err = pool.QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE id = $1`, payment.ID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestOrderRepository_CreateRefund(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)

	ctx := context.Background()

	order := seedOpenOrder(t, repo, "user-1")

	refund := &model.Refund{
		ID:        uuid.New(),
		OrderID:   order.ID,
		Reason:    "Item arrived damaged",
		Email:     "user@example.com",
		Accepted:  false,
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.CreateRefund(ctx, refund))

	// Repeated submissions append new rows.
	second := &model.Refund{
		ID:        uuid.New(),
		OrderID:   order.ID,
		Reason:    "Still damaged",
		Email:     "user@example.com",
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.CreateRefund(ctx, second))

	var count int
	err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM refunds WHERE order_id = $1`, order.ID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var reason string
	var accepted bool
	err = pool.QueryRow(ctx,
		`SELECT reason, accepted FROM refunds WHERE id = $1`, refund.ID).Scan(&reason, &accepted)
	require.NoError(t, err)
	assert.Equal(t, "Item arrived damaged", reason)
	assert.False(t, accepted)
}
