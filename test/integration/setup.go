package integration

import (
	"compress/gzip"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Build pool config from the container's mapped host and port
	parsed, err := url.Parse(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	port, err := strconv.Atoi(parsed.Port())
	if err != nil {
		t.Fatalf("failed to parse port: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		Host:            parsed.Hostname(),
		Port:            port,
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPool(ctx, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS items (
			id UUID PRIMARY KEY,
			slug VARCHAR(100) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			price DECIMAL(10, 2) NOT NULL,
			discount_price DECIMAL(10, 2),
			category VARCHAR(2) NOT NULL,
			label VARCHAR(1) NOT NULL,
			description TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS addresses (
			id UUID PRIMARY KEY,
			user_id VARCHAR(100) NOT NULL,
			street_address VARCHAR(255) NOT NULL,
			apartment_address VARCHAR(255) NOT NULL DEFAULT '',
			country VARCHAR(2) NOT NULL,
			zip VARCHAR(20) NOT NULL,
			address_type VARCHAR(1) NOT NULL CHECK (address_type IN ('S', 'B')),
			is_default BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_addresses_user_type ON addresses(user_id, address_type);

		CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY,
			stripe_charge_id VARCHAR(100) NOT NULL,
			user_id VARCHAR(100) NOT NULL,
			amount DECIMAL(10, 2) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			user_id VARCHAR(100) NOT NULL,
			ordered BOOLEAN NOT NULL DEFAULT false,
			ordered_at TIMESTAMP,
			shipping_address_id UUID REFERENCES addresses(id),
			billing_address_id UUID REFERENCES addresses(id),
			coupon_code VARCHAR(50),
			payment_id UUID REFERENCES payments(id),
			ref_code VARCHAR(20) UNIQUE,
			refund_requested BOOLEAN NOT NULL DEFAULT false,
			refund_granted BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_one_open_per_user
			ON orders(user_id) WHERE NOT ordered;

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID REFERENCES orders(id),
			user_id VARCHAR(100) NOT NULL,
			item_id UUID NOT NULL REFERENCES items(id),
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			ordered BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
		CREATE INDEX IF NOT EXISTS idx_order_items_user_open
			ON order_items(user_id, item_id) WHERE NOT ordered;

		CREATE TABLE IF NOT EXISTS refunds (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id),
			reason TEXT NOT NULL,
			email VARCHAR(255) NOT NULL,
			accepted BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS user_profiles (
			user_id VARCHAR(100) PRIMARY KEY,
			stripe_customer_id VARCHAR(100) NOT NULL DEFAULT '',
			one_click_purchasing BOOLEAN NOT NULL DEFAULT false
		);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// TestItems is the fixed catalogue seeded by SeedItems, keyed by slug.
var TestItems = []model.Item{
	{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Slug: "basic-shirt", Name: "Basic Shirt", Price: 19.99, Category: "S", Label: "P", Description: "A basic shirt"},
	{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Slug: "sport-shirt", Name: "Sport Shirt", Price: 29.99, Category: "SW", Label: "S", Description: "A sport shirt"},
	{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Slug: "winter-coat", Name: "Winter Coat", Price: 99.99, Category: "OW", Label: "D", Description: "A winter coat"},
	{ID: uuid.MustParse("44444444-4444-4444-4444-444444444444"), Slug: "summer-hat", Name: "Summer Hat", Price: 9.99, Category: "S", Label: "P", Description: "A summer hat"},
	{ID: uuid.MustParse("55555555-5555-5555-5555-555555555555"), Slug: "rain-jacket", Name: "Rain Jacket", Price: 49.99, Category: "OW", Label: "S", Description: "A rain jacket"},
}

// SeedItems inserts the fixed test catalogue into the database.
func SeedItems(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	query := `
		INSERT INTO items (id, slug, name, price, discount_price, category, label, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, i := range TestItems {
		_, err := pool.Exec(ctx, query,
			i.ID, i.Slug, i.Name, i.Price, i.DiscountPrice,
			i.Category, i.Label, i.Description,
		)
		if err != nil {
			t.Fatalf("failed to seed item %s: %v", i.Slug, err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"refunds", "order_items", "orders", "payments", "addresses", "user_profiles", "items"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// WriteCouponFile writes a gzipped coupon file into a temp directory and
// returns its path. Each line is "CODE,amount".
func WriteCouponFile(t *testing.T, lines []string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "coupons.gz")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create coupon file: %v", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(strings.Join(lines, "\n"))); err != nil {
		t.Fatalf("failed to write coupon file: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}

	return path
}
