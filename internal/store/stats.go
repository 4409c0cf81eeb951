package store

import (
	"context"
	"fmt"

	"github.com/Hanahafi/redux-stack-ecommerce/internal/models"
)

// Statistics computes the admin dashboard aggregates. It is not cached here;
// see cache.StatsCache.
func (s *Store) Statistics(ctx context.Context) (*models.Statistics, error) {
	stats := &models.Statistics{OrdersByStatus: make(map[string]int64)}

	counts := []struct {
		table string
		dst   *int64
	}{
		{"users", &stats.TotalUsers},
		{"products", &stats.TotalProducts},
		{"orders", &stats.TotalOrders},
	}
	for _, c := range counts {
		if err := s.DB.GetContext(ctx, c.dst, `SELECT COUNT(*) FROM `+c.table); err != nil {
			return nil, fmt.Errorf("count %s: %w", c.table, err)
		}
	}

	rows, err := s.DB.QueryxContext(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("orders by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.OrdersByStatus[status] = count
	}
	return stats, rows.Err()
}
