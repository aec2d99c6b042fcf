package dto

import "github.com/shopspring/decimal"

// StoreStatsResponse agregados del panel de admin.
type StoreStatsResponse struct {
	TotalUsers       int             `json:"totalUsers"`
	TotalProducts    int             `json:"totalProducts"`
	ActiveProducts   int             `json:"activeProducts"`
	LowStockProducts int             `json:"lowStockProducts"`
	TotalOrders      int             `json:"totalOrders"`
	PendingOrders    int             `json:"pendingOrders"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
}
