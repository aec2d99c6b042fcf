package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/peptide-store/internal/application/usecase"
	"github.com/jhoicas/peptide-store/internal/domain"
	"github.com/jhoicas/peptide-store/internal/domain/entity"
	"github.com/jhoicas/peptide-store/internal/domain/repository"
	"github.com/jhoicas/peptide-store/pkg/logger"
)

func orders() *fakeOrderRepo {
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	return newFakeOrderRepo(
		&entity.Order{ID: "o1", OrderNumber: "ORD-1-1", UserID: "u1", UserEmail: "ada@lab.test", Status: entity.OrderStatusPending, Total: decimal.NewFromInt(32), CreatedAt: base,
			Items: []*entity.OrderItem{{ID: "i1", OrderID: "o1", ProductID: "p1", Quantity: 1}}},
		&entity.Order{ID: "o2", OrderNumber: "ORD-2-2", UserID: "u2", UserEmail: "alan@lab.test", Status: entity.OrderStatusShipped, Total: decimal.NewFromInt(123), CreatedAt: base.Add(time.Hour)},
		&entity.Order{ID: "o3", OrderNumber: "ORD-3-3", UserID: "u1", UserEmail: "ada@lab.test", Status: entity.OrderStatusDelivered, Total: decimal.NewFromInt(10), CreatedAt: base.Add(2 * time.Hour)},
	)
}

func TestAdminOrders_ListConFiltro(t *testing.T) {
	uc := usecase.NewOrderAdminUseCase(orders(), logger.Nop())

	all, err := uc.List(context.Background(), "", 0, 0)
	require.NoError(t, err)
	require.Len(t, all.Items, 3)
	assert.Equal(t, "o3", all.Items[0].ID)
	assert.Equal(t, "ada@lab.test", all.Items[0].UserEmail)
	require.NotNil(t, all.Page)
	assert.Equal(t, 3, all.Page.Total)

	pending, err := uc.List(context.Background(), entity.OrderStatusPending, 0, 0)
	require.NoError(t, err)
	require.Len(t, pending.Items, 1)
	assert.Equal(t, "o1", pending.Items[0].ID)

	_, err = uc.List(context.Background(), "lost", 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdminOrders_GetConLineas(t *testing.T) {
	uc := usecase.NewOrderAdminUseCase(orders(), logger.Nop())

	o, err := uc.Get(context.Background(), "o1")
	require.NoError(t, err)
	assert.Len(t, o.Items, 1)

	_, err = uc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdminOrders_Transiciones(t *testing.T) {
	cases := []struct {
		id, to string
		err    error
	}{
		{"o1", entity.OrderStatusProcessing, nil},
		{"o1", entity.OrderStatusCancelled, nil},
		{"o1", entity.OrderStatusDelivered, domain.ErrInvalidTransition},
		{"o2", entity.OrderStatusDelivered, nil},
		{"o2", entity.OrderStatusCancelled, domain.ErrInvalidTransition},
		{"o3", entity.OrderStatusPending, domain.ErrInvalidTransition},
		{"o1", "refunded", domain.ErrInvalidInput},
		{"nope", entity.OrderStatusProcessing, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.id+"→"+tc.to, func(t *testing.T) {
			repo := orders()
			uc := usecase.NewOrderAdminUseCase(repo, logger.Nop())
			out, err := uc.UpdateStatus(context.Background(), tc.id, tc.to)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				assert.Zero(t, repo.writes)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.to, out.Status)
		})
	}
}

func TestStats(t *testing.T) {
	repo := &fakeStatsRepo{stats: &repository.StoreStats{
		TotalUsers:       3,
		TotalProducts:    4,
		ActiveProducts:   3,
		LowStockProducts: 2,
		TotalOrders:      3,
		PendingOrders:    1,
		TotalRevenue:     decimal.RequireFromString("165.004"),
	}}
	out, err := usecase.NewStatsUseCase(repo).Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, usecase.LowStockThreshold, repo.threshold)
	assert.Equal(t, 2, out.LowStockProducts)
	assert.Equal(t, "165", out.TotalRevenue.String())
}
