package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"bistro-server/internal/models"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
)

// ErrDuplicateTransaction means a payment with the same transaction id was
// already settled; client retries must not record revenue twice.
var ErrDuplicateTransaction = errors.New("transaction already settled")

type PaymentService struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPaymentService(db *sql.DB, logger zerolog.Logger) *PaymentService {
	return &PaymentService{
		db:     db,
		logger: logger,
	}
}

// Settle records a completed checkout and clears the originating cart
// entries in a single database transaction: either the payment exists and
// the cart entries are gone, or nothing happened.
func (s *PaymentService) Settle(ctx context.Context, req *models.SettleRequest) (*models.SettleResult, error) {
	if req.Email == "" || req.TransactionID == "" {
		return nil, errors.New("email and transactionId are required")
	}

	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}

	cartIDsJSON, err := json.Marshal(req.CartIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart ids: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error starting settlement transaction")
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"INSERT INTO payments (email, price, transaction_id, cart_ids, date) VALUES (?, ?, ?, ?, ?)",
		req.Email, req.Price, req.TransactionID, cartIDsJSON, date,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			s.logger.Warn().Str("transaction_id", req.TransactionID).Msg("Duplicate settlement rejected")
			return nil, ErrDuplicateTransaction
		}
		s.logger.Error().Err(err).Str("transaction_id", req.TransactionID).Msg("Error recording payment")
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	paymentID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get payment ID: %w", err)
	}

	// Line items keep the order the client sent them in.
	for _, menuItemID := range req.MenuItemIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO payment_items (payment_id, menu_item_id) VALUES (?, ?)",
			paymentID, menuItemID,
		); err != nil {
			s.logger.Error().Err(err).Str("transaction_id", req.TransactionID).Msg("Error recording payment items")
			return nil, fmt.Errorf("failed to record payment items: %w", err)
		}
	}

	var deletedCount int64
	if len(req.CartIDs) > 0 {
		query := fmt.Sprintf("DELETE FROM cart_items WHERE id IN (%s)", placeholders(len(req.CartIDs)))
		deleteResult, err := tx.ExecContext(ctx, query, int64Args(req.CartIDs)...)
		if err != nil {
			s.logger.Error().Err(err).Str("transaction_id", req.TransactionID).Msg("Error clearing cart after payment")
			return nil, fmt.Errorf("failed to clear cart: %w", err)
		}
		deletedCount, err = deleteResult.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to read deleted rows: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		s.logger.Error().Err(err).Str("transaction_id", req.TransactionID).Msg("Error committing settlement")
		return nil, fmt.Errorf("failed to commit settlement: %w", err)
	}

	s.logger.Info().
		Int64("payment_id", paymentID).
		Str("transaction_id", req.TransactionID).
		Str("email", req.Email).
		Float64("price", req.Price).
		Int64("cart_items_deleted", deletedCount).
		Msg("Settlement completed")

	return &models.SettleResult{
		PaymentResult: models.InsertResult{InsertedID: &paymentID},
		DeleteResult:  models.DeleteResult{DeletedCount: deletedCount},
	}, nil
}

func (s *PaymentService) PaymentsByEmail(ctx context.Context, email string) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, email, price, transaction_id, cart_ids, date FROM payments WHERE email = ? ORDER BY date DESC", email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Error listing payments")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	payments := []*models.Payment{}
	byID := map[int64]*models.Payment{}
	for rows.Next() {
		var payment models.Payment
		var cartIDsJSON []byte
		if err := rows.Scan(&payment.ID, &payment.Email, &payment.Price, &payment.TransactionID, &cartIDsJSON, &payment.Date); err != nil {
			return nil, fmt.Errorf("error scanning payment: %w", err)
		}
		if len(cartIDsJSON) > 0 {
			if err := json.Unmarshal(cartIDsJSON, &payment.CartIDs); err != nil {
				return nil, fmt.Errorf("error decoding cart ids: %w", err)
			}
		}
		payment.MenuItemIDs = []int64{}
		payments = append(payments, &payment)
		byID[payment.ID] = &payment
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(payments) == 0 {
		return payments, nil
	}

	ids := make([]int64, 0, len(payments))
	for _, p := range payments {
		ids = append(ids, p.ID)
	}

	query := fmt.Sprintf(
		"SELECT payment_id, menu_item_id FROM payment_items WHERE payment_id IN (%s) ORDER BY id",
		placeholders(len(ids)))
	itemRows, err := s.db.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Error listing payment items")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var paymentID, menuItemID int64
		if err := itemRows.Scan(&paymentID, &menuItemID); err != nil {
			return nil, fmt.Errorf("error scanning payment item: %w", err)
		}
		if p, ok := byID[paymentID]; ok {
			p.MenuItemIDs = append(p.MenuItemIDs, menuItemID)
		}
	}

	return payments, itemRows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func int64Args(ids []int64) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
