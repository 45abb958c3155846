package repository

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ItemRepository defines the interface for catalogue item data access.
type ItemRepository interface {
	// GetAll retrieves all items with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Item, error)

	// GetBySlug retrieves a single item by its slug.
	GetBySlug(ctx context.Context, slug string) (*model.Item, error)

	// GetByIDs retrieves multiple items by their IDs.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Item, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// GetOpenOrder retrieves the user's open (not yet ordered) order.
	// Returns nil without error when the user has no open order.
	GetOpenOrder(ctx context.Context, userID string) (*model.Order, error)

	// GetByRefCode retrieves a placed order by its reference code.
	// Returns nil without error when no order matches.
	GetByRefCode(ctx context.Context, refCode string) (*model.Order, error)

	// CreateOrder inserts a new open order.
	CreateOrder(ctx context.Context, order *model.Order) error

	// UpdateOrder persists mutations to an order row.
	UpdateOrder(ctx context.Context, order *model.Order) error

	// GetOrderItems retrieves the order items attached to an order.
	GetOrderItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error)

	// GetUnorderedItem retrieves the user's unordered order item for an
	// item. Returns nil without error when none exists.
	GetUnorderedItem(ctx context.Context, userID string, itemID uuid.UUID) (*model.OrderItem, error)

	// CreateOrderItem inserts a new order item.
	CreateOrderItem(ctx context.Context, item *model.OrderItem) error

	// UpdateOrderItem persists quantity and attachment changes.
	UpdateOrderItem(ctx context.Context, item *model.OrderItem) error

	// RefCodeExists reports whether a reference code is already assigned.
	RefCodeExists(ctx context.Context, refCode string) (bool, error)

	// CreatePayment inserts a payment record within the transaction.
	CreatePayment(ctx context.Context, tx pgx.Tx, payment *model.Payment) error

	// MarkOrderItemsOrdered marks every order item attached to the order
	// as ordered, within the transaction.
	MarkOrderItemsOrdered(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) error

	// CompleteOrder persists the final state of a placed order within the
	// transaction.
	CompleteOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateRefund appends a refund request record.
	CreateRefund(ctx context.Context, refund *model.Refund) error
}

// AddressRepository defines the interface for address data access.
type AddressRepository interface {
	// GetDefault retrieves the user's default address of the given type.
	// Returns nil without error when none exists; when several are
	// flagged default, the first match is returned.
	GetDefault(ctx context.Context, userID string, addrType model.AddressType) (*model.Address, error)

	// Create inserts a new address.
	Create(ctx context.Context, address *model.Address) error

	// Update persists mutations to an address row.
	Update(ctx context.Context, address *model.Address) error
}

// ProfileRepository defines the interface for user profile data access.
type ProfileRepository interface {
	// Get retrieves the user's profile. Returns nil without error when
	// the user has no profile yet.
	Get(ctx context.Context, userID string) (*model.UserProfile, error)

	// Upsert creates or updates the user's profile.
	Upsert(ctx context.Context, profile *model.UserProfile) error
}
