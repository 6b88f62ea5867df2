package services

import (
	"context"
	"database/sql"
	"fmt"

	"bistro-server/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type StatsService struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewStatsService(db *sql.DB, logger zerolog.Logger) *StatsService {
	return &StatsService{
		db:     db,
		logger: logger,
	}
}

// AdminStats computes the dashboard totals. The four queries are read-only
// and order-independent, so they run concurrently. Revenue is a single
// aggregate sum in the database, never a client-side fold over payments.
func (s *StatsService) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	var stats models.AdminStats

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&stats.Users)
	})
	g.Go(func() error {
		return s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM menu_items").Scan(&stats.MenuItems)
	})
	g.Go(func() error {
		return s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM payments").Scan(&stats.Orders)
	})
	g.Go(func() error {
		return s.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(price), 0) FROM payments").Scan(&stats.Revenue)
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("Error computing admin stats")
		return nil, fmt.Errorf("failed to compute admin stats: %w", err)
	}

	return &stats, nil
}

// OrderStats expands every settled payment into its line items, joins them
// against the live menu catalog and groups by category. Deleted menu items
// drop out of the join; categories with no sold items are omitted. Revenue
// is re-priced from the current catalog price, not the historical charge.
func (s *StatsService) OrderStats(ctx context.Context) ([]*models.CategoryStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.category, COUNT(*) AS quantity, SUM(m.price) AS revenue
		FROM payment_items pi
		JOIN menu_items m ON m.id = pi.menu_item_id
		GROUP BY m.category
		ORDER BY m.category`)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error computing order stats")
		return nil, fmt.Errorf("failed to compute order stats: %w", err)
	}
	defer rows.Close()

	stats := []*models.CategoryStat{}
	for rows.Next() {
		var stat models.CategoryStat
		if err := rows.Scan(&stat.Category, &stat.Quantity, &stat.Revenue); err != nil {
			return nil, fmt.Errorf("error scanning category stat: %w", err)
		}
		stats = append(stats, &stat)
	}

	return stats, rows.Err()
}
