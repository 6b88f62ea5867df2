package services

import (
	"context"
	"database/sql"
	"fmt"

	"bistro-server/internal/models"

	"github.com/rs/zerolog"
)

type MenuService struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewMenuService(db *sql.DB, logger zerolog.Logger) *MenuService {
	return &MenuService{
		db:     db,
		logger: logger,
	}
}

func (s *MenuService) ListMenu(ctx context.Context) ([]*models.MenuItem, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, category, price, recipe, image FROM menu_items ORDER BY id")
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing menu")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	items := []*models.MenuItem{}
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Price, &item.Recipe, &item.Image); err != nil {
			return nil, fmt.Errorf("error scanning menu item: %w", err)
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

// GetMenuItem returns nil for an unknown id; absent documents read as null.
func (s *MenuService) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, category, price, recipe, image FROM menu_items WHERE id = ?", id,
	).Scan(&item.ID, &item.Name, &item.Category, &item.Price, &item.Recipe, &item.Image)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Int64("menu_item_id", id).Msg("Error fetching menu item")
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &item, nil
}

func (s *MenuService) CreateMenuItem(ctx context.Context, req *models.MenuItemRequest) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO menu_items (name, category, price, recipe, image) VALUES (?, ?, ?, ?, ?)",
		req.Name, req.Category, req.Price, req.Recipe, req.Image,
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error creating menu item")
		return 0, fmt.Errorf("failed to create menu item: %w", err)
	}

	itemID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get menu item ID: %w", err)
	}

	s.logger.Info().Int64("menu_item_id", itemID).Str("name", req.Name).Msg("Menu item created")
	return itemID, nil
}

func (s *MenuService) UpdateMenuItem(ctx context.Context, id int64, req *models.MenuItemRequest) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE menu_items SET name = ?, category = ?, price = ?, recipe = ?, image = ? WHERE id = ?",
		req.Name, req.Category, req.Price, req.Recipe, req.Image, id,
	)
	if err != nil {
		s.logger.Error().Err(err).Int64("menu_item_id", id).Msg("Error updating menu item")
		return 0, fmt.Errorf("failed to update menu item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}

func (s *MenuService) DeleteMenuItem(ctx context.Context, id int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM menu_items WHERE id = ?", id)
	if err != nil {
		s.logger.Error().Err(err).Int64("menu_item_id", id).Msg("Error deleting menu item")
		return 0, fmt.Errorf("failed to delete menu item: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return deleted, nil
}

func (s *MenuService) ListReviews(ctx context.Context) ([]*models.Review, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, details, rating FROM reviews ORDER BY id")
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing reviews")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	reviews := []*models.Review{}
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(&review.ID, &review.Name, &review.Details, &review.Rating); err != nil {
			return nil, fmt.Errorf("error scanning review: %w", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, rows.Err()
}
