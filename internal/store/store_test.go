package store

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Hanahafi/redux-stack-ecommerce/internal/models"
)

// newTestStore returns a migrated in-memory SQLite store.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	s, err := Open(ctx, DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Migrate(ctx))
	return s
}

// newPostgresStore connects to TEST_POSTGRES_DSN or skips the test.
func newPostgresStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()

	s, err := Open(ctx, DriverPostgres, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Migrate(ctx))
	_, err = s.DB.ExecContext(ctx, `TRUNCATE users, products, orders RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return s
}

func seedUser(t *testing.T, s *Store, name string, role models.Role) *models.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), name, name+"@example.com", "hash", role)
	require.NoError(t, err)
	return u
}

func seedProduct(t *testing.T, s *Store, sellerID int64, name string, price float64, qty int) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: price, Quantity: qty, SellerID: sellerID}
	require.NoError(t, s.CreateProduct(context.Background(), p))
	return p
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Migrate(ctx))

	var applied int
	require.NoError(t, s.DB.GetContext(ctx, &applied, `SELECT COUNT(*) FROM schema_migrations`))
	entries, err := migrationsFS.ReadDir("migrations/sqlite")
	require.NoError(t, err)
	require.Equal(t, len(entries), applied)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "whatever")
	require.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{":memory:", ":memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
		{"shop.db?mode=rwc", "shop.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
		{"shop.db?_pragma=journal_mode(WAL)", "shop.db?_pragma=journal_mode(WAL)"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, sqliteDSN(tt.in))
		})
	}
}

func TestPostgresRoundTrip(t *testing.T) {
	s := newPostgresStore(t)
	ctx := context.Background()

	seller := seedUser(t, s, "pg-seller", models.RoleSeller)
	buyer := seedUser(t, s, "pg-buyer", models.RoleBuyer)
	p := seedProduct(t, s, seller.ID, "Mug", 12.5, 4)

	orders, err := s.PlaceOrder(ctx, buyer.ID, []models.LineItem{{ProductID: p.ID, Quantity: 2}}, "1 Main St")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, 25.0, orders[0].TotalPrice)

	got, err := s.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.Quantity)

	_, err = s.CreateUser(ctx, "other", "pg-buyer@example.com", "hash", models.RoleBuyer)
	require.Error(t, err)
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	require.NoError(t, s.DB.Get(&n, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)))
	return n
}
