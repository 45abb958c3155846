package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

const orderColumns = `id, user_id, ordered, ordered_at, shipping_address_id,
	billing_address_id, coupon_code, payment_id, ref_code, refund_requested,
	refund_granted, created_at, updated_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(&o.ID, &o.UserID, &o.Ordered, &o.OrderedAt,
		&o.ShippingAddressID, &o.BillingAddressID, &o.CouponCode,
		&o.PaymentID, &o.RefCode, &o.RefundRequested, &o.RefundGranted,
		&o.CreatedAt, &o.UpdatedAt)
}

// GetOpenOrder retrieves the user's open order.
func (r *orderRepository) GetOpenOrder(ctx context.Context, userID string) (*model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1 AND ordered = false
		ORDER BY created_at
		LIMIT 1
	`

	var o model.Order
	err := scanOrder(r.pool.QueryRow(ctx, query, userID), &o)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("user_id", userID).Msg("no open order")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query open order")
		return nil, fmt.Errorf("failed to query open order: %w", err)
	}

	return &o, nil
}

// GetByRefCode retrieves a placed order by its reference code.
func (r *orderRepository) GetByRefCode(ctx context.Context, refCode string) (*model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ref_code = $1
	`

	var o model.Order
	err := scanOrder(r.pool.QueryRow(ctx, query, refCode), &o)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("ref_code", refCode).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("ref_code", refCode).Msg("failed to query order by ref code")
		return nil, fmt.Errorf("failed to query order by ref code: %w", err)
	}

	return &o, nil
}

// CreateOrder inserts a new open order.
func (r *orderRepository) CreateOrder(ctx context.Context, order *model.Order) error {
	query := `
		INSERT INTO orders (id, user_id, ordered, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		order.ID, order.UserID, order.Ordered, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Str("user_id", order.UserID).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Msg("order created successfully")

	return nil
}

const orderUpdateSet = `
	ordered = $2, ordered_at = $3, shipping_address_id = $4,
	billing_address_id = $5, coupon_code = $6, payment_id = $7,
	ref_code = $8, refund_requested = $9, refund_granted = $10,
	updated_at = $11`

// UpdateOrder persists mutations to an order row.
func (r *orderRepository) UpdateOrder(ctx context.Context, order *model.Order) error {
	query := `UPDATE orders SET ` + orderUpdateSet + ` WHERE id = $1`

	_, err := r.pool.Exec(ctx, query,
		order.ID, order.Ordered, order.OrderedAt, order.ShippingAddressID,
		order.BillingAddressID, order.CouponCode, order.PaymentID,
		order.RefCode, order.RefundRequested, order.RefundGranted,
		order.UpdatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to update order")
		return fmt.Errorf("failed to update order: %w", err)
	}

	return nil
}

// GetOrderItems retrieves the order items attached to an order.
func (r *orderRepository) GetOrderItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	query := `
		SELECT id, order_id, user_id, item_id, quantity, ordered
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", orderID.String()).
			Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.UserID, &item.ItemID,
			&item.Quantity, &item.Ordered)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

// GetUnorderedItem retrieves the user's unordered order item for an item.
func (r *orderRepository) GetUnorderedItem(ctx context.Context, userID string, itemID uuid.UUID) (*model.OrderItem, error) {
	query := `
		SELECT id, order_id, user_id, item_id, quantity, ordered
		FROM order_items
		WHERE user_id = $1 AND item_id = $2 AND ordered = false
		LIMIT 1
	`

	var item model.OrderItem
	err := r.pool.QueryRow(ctx, query, userID, itemID).Scan(
		&item.ID, &item.OrderID, &item.UserID, &item.ItemID,
		&item.Quantity, &item.Ordered)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().
			Err(err).
			Str("user_id", userID).
			Str("item_id", itemID.String()).
			Msg("failed to query unordered item")
		return nil, fmt.Errorf("failed to query unordered item: %w", err)
	}

	return &item, nil
}

// CreateOrderItem inserts a new order item.
func (r *orderRepository) CreateOrderItem(ctx context.Context, item *model.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, user_id, item_id, quantity, ordered)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID, item.OrderID, item.UserID, item.ItemID, item.Quantity, item.Ordered)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", item.UserID).
			Str("item_id", item.ItemID.String()).
			Msg("failed to create order item")
		return fmt.Errorf("failed to create order item: %w", err)
	}

	return nil
}

// UpdateOrderItem persists quantity and attachment changes.
func (r *orderRepository) UpdateOrderItem(ctx context.Context, item *model.OrderItem) error {
	query := `
		UPDATE order_items
		SET order_id = $2, quantity = $3, ordered = $4
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, item.ID, item.OrderID, item.Quantity, item.Ordered)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_item_id", item.ID.String()).
			Msg("failed to update order item")
		return fmt.Errorf("failed to update order item: %w", err)
	}

	return nil
}

// RefCodeExists reports whether a reference code is already assigned.
func (r *orderRepository) RefCodeExists(ctx context.Context, refCode string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM orders WHERE ref_code = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, refCode).Scan(&exists); err != nil {
		r.logger.Error().Err(err).Msg("failed to check ref code existence")
		return false, fmt.Errorf("failed to check ref code existence: %w", err)
	}

	return exists, nil
}

// CreatePayment inserts a payment record within the provided transaction.
func (r *orderRepository) CreatePayment(ctx context.Context, tx pgx.Tx, payment *model.Payment) error {
	query := `
		INSERT INTO payments (id, stripe_charge_id, user_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := tx.Exec(ctx, query,
		payment.ID, payment.StripeChargeID, payment.UserID, payment.Amount, payment.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("payment_id", payment.ID.String()).
			Str("user_id", payment.UserID).
			Msg("failed to create payment")
		return fmt.Errorf("failed to create payment: %w", err)
	}

	r.logger.Debug().
		Str("payment_id", payment.ID.String()).
		Msg("payment created successfully")

	return nil
}

// MarkOrderItemsOrdered marks every order item attached to the order as
// ordered, within the provided transaction.
func (r *orderRepository) MarkOrderItemsOrdered(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) error {
	query := `UPDATE order_items SET ordered = true WHERE order_id = $1`

	tag, err := tx.Exec(ctx, query, orderID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", orderID.String()).
			Msg("failed to mark order items ordered")
		return fmt.Errorf("failed to mark order items ordered: %w", err)
	}

	r.logger.Debug().
		Str("order_id", orderID.String()).
		Int64("count", tag.RowsAffected()).
		Msg("order items marked ordered")

	return nil
}

// CompleteOrder persists the final state of a placed order within the
// provided transaction.
func (r *orderRepository) CompleteOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `UPDATE orders SET ` + orderUpdateSet + ` WHERE id = $1`

	_, err := tx.Exec(ctx, query,
		order.ID, order.Ordered, order.OrderedAt, order.ShippingAddressID,
		order.BillingAddressID, order.CouponCode, order.PaymentID,
		order.RefCode, order.RefundRequested, order.RefundGranted,
		order.UpdatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to complete order")
		return fmt.Errorf("failed to complete order: %w", err)
	}

	return nil
}

// CreateRefund appends a refund request record.
func (r *orderRepository) CreateRefund(ctx context.Context, refund *model.Refund) error {
	query := `
		INSERT INTO refunds (id, order_id, reason, email, accepted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		refund.ID, refund.OrderID, refund.Reason, refund.Email,
		refund.Accepted, refund.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", refund.OrderID.String()).
			Msg("failed to create refund")
		return fmt.Errorf("failed to create refund: %w", err)
	}

	r.logger.Debug().
		Str("refund_id", refund.ID.String()).
		Str("order_id", refund.OrderID.String()).
		Msg("refund created successfully")

	return nil
}
