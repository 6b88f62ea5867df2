package services

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"bistro-server/internal/db"
	"bistro-server/internal/models"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to the database named by DB_URL (which must include
// parseTime=true) and wipes the tables. Tests that need it are skipped when
// no database is configured.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	_ = godotenv.Load("../../.env")

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		t.Skip("DB_URL not set, skipping database integration test")
	}

	database, err := sql.Open("mysql", dbURL)
	require.NoError(t, err)
	require.NoError(t, database.Ping())

	db.RunMigrations(database)

	// Order matters: payment_items references payments.
	for _, table := range []string{"payment_items", "payments", "cart_items", "menu_items", "users"} {
		_, err := database.Exec("DELETE FROM " + table)
		require.NoError(t, err, "failed to clear table %s", table)
	}

	return database
}

func seedMenuItem(t *testing.T, database *sql.DB, name, category string, price float64) int64 {
	t.Helper()
	result, err := database.Exec(
		"INSERT INTO menu_items (name, category, price, recipe, image) VALUES (?, ?, ?, '', '')",
		name, category, price)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return id
}

func seedCartItem(t *testing.T, database *sql.DB, email string, menuItemID int64, price float64) int64 {
	t.Helper()
	result, err := database.Exec(
		"INSERT INTO cart_items (email, menu_item_id, name, image, price) VALUES (?, ?, '', '', ?)",
		email, menuItemID, price)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)
	return id
}

func TestSettle_Integration(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	ctx := context.Background()
	svc := NewPaymentService(database, zerolog.Nop())

	saladID := seedMenuItem(t, database, "Caesar Salad", "Salad", 5.00)
	soupID := seedMenuItem(t, database, "Tomato Soup", "Soup", 3.00)
	cartA := seedCartItem(t, database, "alice@example.com", saladID, 5.00)
	cartB := seedCartItem(t, database, "alice@example.com", soupID, 3.00)

	result, err := svc.Settle(ctx, &models.SettleRequest{
		Email:         "alice@example.com",
		Price:         8.00,
		TransactionID: "pi_test_1",
		MenuItemIDs:   []int64{saladID, soupID},
		CartIDs:       []int64{cartA, cartB},
	})
	require.NoError(t, err)
	require.NotNil(t, result.PaymentResult.InsertedID)
	assert.Equal(t, int64(2), result.DeleteResult.DeletedCount)

	// No cart entry from the settled set may remain readable.
	cartSvc := NewCartService(database, zerolog.Nop())
	cart, err := cartSvc.CartByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, cart)

	// The payment is retrievable with the same transaction id and line items.
	payments, err := svc.PaymentsByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "pi_test_1", payments[0].TransactionID)
	assert.Equal(t, []int64{saladID, soupID}, payments[0].MenuItemIDs)
	assert.Equal(t, []int64{cartA, cartB}, payments[0].CartIDs)
	assert.InDelta(t, 8.00, payments[0].Price, 0.001)
}

func TestSettle_DuplicateTransaction(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	ctx := context.Background()
	svc := NewPaymentService(database, zerolog.Nop())

	saladID := seedMenuItem(t, database, "Caesar Salad", "Salad", 5.00)
	cartA := seedCartItem(t, database, "alice@example.com", saladID, 5.00)

	req := &models.SettleRequest{
		Email:         "alice@example.com",
		Price:         5.00,
		TransactionID: "pi_test_dup",
		MenuItemIDs:   []int64{saladID},
		CartIDs:       []int64{cartA},
	}

	_, err := svc.Settle(ctx, req)
	require.NoError(t, err)

	// Client retry with the same transaction id must not record revenue twice.
	_, err = svc.Settle(ctx, req)
	assert.ErrorIs(t, err, ErrDuplicateTransaction)

	var count int
	require.NoError(t, database.QueryRow(
		"SELECT COUNT(*) FROM payments WHERE transaction_id = ?", "pi_test_dup").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSettle_MissingFields(t *testing.T) {
	svc := NewPaymentService(nil, zerolog.Nop())

	_, err := svc.Settle(context.Background(), &models.SettleRequest{Email: "", TransactionID: ""})
	assert.Error(t, err)
}

func TestRegisterIfAbsent_Integration(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	ctx := context.Background()
	svc := NewUserService(database, zerolog.Nop())

	id, err := svc.RegisterIfAbsent(ctx, &models.RegisterRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	require.NotNil(t, id)

	// Registering again reports the already-exists outcome.
	id, err = svc.RegisterIfAbsent(ctx, &models.RegisterRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Nil(t, id)

	var count int
	require.NoError(t, database.QueryRow(
		"SELECT COUNT(*) FROM users WHERE email = ?", "alice@example.com").Scan(&count))
	assert.Equal(t, 1, count)
}
