package services

import (
	"context"
	"database/sql"
	"fmt"

	"bistro-server/internal/models"

	"github.com/rs/zerolog"
)

type CartService struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewCartService(db *sql.DB, logger zerolog.Logger) *CartService {
	return &CartService{
		db:     db,
		logger: logger,
	}
}

func (s *CartService) CartByEmail(ctx context.Context, email string) ([]*models.CartItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, email, menu_item_id, name, image, price FROM cart_items WHERE email = ? ORDER BY id", email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("Error listing cart")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	items := []*models.CartItem{}
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ID, &item.Email, &item.MenuItemID, &item.Name, &item.Image, &item.Price); err != nil {
			return nil, fmt.Errorf("error scanning cart item: %w", err)
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

func (s *CartService) AddCartItem(ctx context.Context, req *models.CartItemRequest) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO cart_items (email, menu_item_id, name, image, price) VALUES (?, ?, ?, ?, ?)",
		req.Email, req.MenuItemID, req.Name, req.Image, req.Price,
	)
	if err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Error adding cart item")
		return 0, fmt.Errorf("failed to add cart item: %w", err)
	}

	itemID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get cart item ID: %w", err)
	}

	return itemID, nil
}

func (s *CartService) RemoveCartItem(ctx context.Context, id int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM cart_items WHERE id = ?", id)
	if err != nil {
		s.logger.Error().Err(err).Int64("cart_item_id", id).Msg("Error removing cart item")
		return 0, fmt.Errorf("failed to remove cart item: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return deleted, nil
}
