package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supply-tracker/internal/application/analytics"
	"github.com/jhoicas/supply-tracker/internal/domain/entity"
	"github.com/jhoicas/supply-tracker/internal/domain/repository"
	"github.com/jhoicas/supply-tracker/internal/infrastructure/memory"
)

var now = time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)

func product(sku string, qty int, cost int64) *entity.Product {
	p := &entity.Product{SKU: sku, Name: sku, Quantity: qty, UnitCost: decimal.NewFromInt(cost)}
	p.RecalculateValue()
	return p
}

func TestDashboard_GetSummary(t *testing.T) {
	ctx := context.Background()
	inv := memory.NewInventoryStore()
	proc := memory.NewProcurementStore()

	require.NoError(t, inv.Run(ctx, func(products repository.ProductRepository, alerts repository.AlertSetRepository, _ repository.StockMovementRepository) error {
		for i, qty := range []int{100, 5, 40, 60, 10, 70} {
			products.Put(product(string(rune('A'+i)), qty, 2))
		}
		alerts.Add("B")
		alerts.Add("E")
		return nil
	}))
	require.NoError(t, proc.Run(ctx, func(requests repository.RequestRepository, _ repository.DraftRepository) error {
		requests.Put(&entity.Request{ID: "REQ-001", Status: entity.StatusSubmitted, TotalAmount: decimal.NewFromInt(250), RequestedDate: now})
		requests.Put(&entity.Request{ID: "REQ-002", Status: entity.StatusAwaitingApproval, TotalAmount: decimal.NewFromInt(100), RequestedDate: now})
		requests.Put(&entity.Request{ID: "REQ-003", Status: entity.StatusApproved, TotalAmount: decimal.NewFromInt(75), RequestedDate: now.AddDate(0, -1, 0)})
		return nil
	}))

	uc := analytics.NewDashboardUseCase(inv, proc).WithClock(func() time.Time { return now })
	out, err := uc.GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 6, out.ProductCount)
	assert.True(t, decimal.NewFromInt(570).Equal(out.InventoryValue), out.InventoryValue.String())
	assert.Equal(t, 2, out.LowStockCount)
	require.Len(t, out.TopProducts, 5)
	assert.Equal(t, "A", out.TopProducts[0].SKU)
	assert.Equal(t, "F", out.TopProducts[1].SKU)

	assert.Equal(t, 1, out.RequestsByBucket[string(entity.BucketIncoming)])
	assert.Equal(t, 1, out.RequestsByBucket[string(entity.BucketPending)])
	assert.Equal(t, 1, out.RequestsByBucket[string(entity.BucketCompleted)])
	assert.True(t, decimal.NewFromInt(350).Equal(out.PendingAmount))
	assert.True(t, decimal.NewFromInt(350).Equal(out.MonthlyRequested), "REQ-003 es del mes anterior")
	assert.Equal(t, "Marzo 2025", out.DateLabel)
}

func TestDashboard_StoresVacios(t *testing.T) {
	uc := analytics.NewDashboardUseCase(memory.NewInventoryStore(), memory.NewProcurementStore()).WithClock(func() time.Time { return now })
	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, out.ProductCount)
	assert.Empty(t, out.TopProducts)
	assert.True(t, out.PendingAmount.IsZero())
}

func TestDashboard_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	uc := analytics.NewDashboardUseCase(memory.NewInventoryStore(), memory.NewProcurementStore())
	_, err := uc.GetSummary(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
