package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StoreStats agregados del panel de administración.
type StoreStats struct {
	TotalUsers       int
	TotalProducts    int
	ActiveProducts   int
	LowStockProducts int
	TotalOrders      int
	PendingOrders    int
	TotalRevenue     decimal.Decimal // órdenes no canceladas
}

// StatsRepository consultas de solo lectura para el dashboard de admin.
type StatsRepository interface {
	GetStoreStats(ctx context.Context, lowStockThreshold int) (*StoreStats, error)
}
