package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/peptide-store/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo agregados del panel de admin.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el adaptador.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// GetStoreStats calcula todos los contadores en una sola consulta.
func (r *StatsRepo) GetStoreStats(ctx context.Context, lowStockThreshold int) (*repository.StoreStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM products WHERE status = 'active'),
			(SELECT COUNT(*) FROM products WHERE stock < $1),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM orders WHERE status = 'pending'),
			(SELECT COALESCE(SUM(total), 0) FROM orders WHERE status <> 'cancelled')`
	var s repository.StoreStats
	err := r.q.QueryRow(ctx, query, lowStockThreshold).Scan(
		&s.TotalUsers, &s.TotalProducts, &s.ActiveProducts, &s.LowStockProducts,
		&s.TotalOrders, &s.PendingOrders, &s.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("store stats: %w", err)
	}
	return &s, nil
}
