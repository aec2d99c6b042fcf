package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/peptide-store/internal/application/dto"
	"github.com/jhoicas/peptide-store/internal/domain/repository"
)

// LowStockThreshold productos con stock por debajo de este valor cuentan como stock bajo.
const LowStockThreshold = 10

// StatsUseCase agregados del panel de admin.
type StatsUseCase struct {
	repo repository.StatsRepository
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(repo repository.StatsRepository) *StatsUseCase {
	return &StatsUseCase{repo: repo}
}

// Get calcula los agregados de la tienda.
func (uc *StatsUseCase) Get(ctx context.Context) (*dto.StoreStatsResponse, error) {
	s, err := uc.repo.GetStoreStats(ctx, LowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &dto.StoreStatsResponse{
		TotalUsers:       s.TotalUsers,
		TotalProducts:    s.TotalProducts,
		ActiveProducts:   s.ActiveProducts,
		LowStockProducts: s.LowStockProducts,
		TotalOrders:      s.TotalOrders,
		PendingOrders:    s.PendingOrders,
		TotalRevenue:     s.TotalRevenue.Round(2),
	}, nil
}
