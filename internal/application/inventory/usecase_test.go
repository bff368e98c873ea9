package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supply-tracker/internal/application/dto"
	"github.com/jhoicas/supply-tracker/internal/application/inventory"
	"github.com/jhoicas/supply-tracker/internal/domain"
	"github.com/jhoicas/supply-tracker/internal/domain/entity"
	"github.com/jhoicas/supply-tracker/internal/domain/event"
	"github.com/jhoicas/supply-tracker/internal/domain/repository"
	"github.com/jhoicas/supply-tracker/internal/infrastructure/memory"
)

type capture struct{ events []event.Event }

func (c *capture) Publish(events ...event.Event) { c.events = append(c.events, events...) }

func (c *capture) actions() []string {
	var out []string
	for _, e := range c.events {
		out = append(out, e.EventName())
	}
	return out
}

func (c *capture) alerts() []event.LowStockAlert {
	var out []event.LowStockAlert
	for _, e := range c.events {
		if a, ok := e.(event.LowStockAlert); ok {
			out = append(out, a)
		}
	}
	return out
}

var fixedNow = time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T, products ...*entity.Product) (*inventory.StockLedgerUseCase, *memory.InventoryStore, *capture) {
	t.Helper()
	store := memory.NewInventoryStore()
	require.NoError(t, store.Run(context.Background(), func(p repository.ProductRepository, _ repository.AlertSetRepository, _ repository.StockMovementRepository) error {
		for _, prod := range products {
			prod.RecalculateValue()
			p.Put(prod)
		}
		return nil
	}))
	pub := &capture{}
	uc := inventory.NewStockLedgerUseCase(store, pub, 20).WithClock(func() time.Time { return fixedNow })
	return uc, store, pub
}

func product(t *testing.T, store *memory.InventoryStore, sku string) *entity.Product {
	t.Helper()
	var out *entity.Product
	require.NoError(t, store.Run(context.Background(), func(p repository.ProductRepository, _ repository.AlertSetRepository, _ repository.StockMovementRepository) error {
		out, _ = p.Get(sku)
		return nil
	}))
	require.NotNil(t, out)
	return out
}

func TestStockIn_CrearEditarEliminar(t *testing.T) {
	uc, store, pub := setup(t, &entity.Product{SKU: "PAP-001", Quantity: 50, UnitCost: decimal.NewFromInt(12)})
	ctx := context.Background()

	created, err := uc.CreateStockIn(ctx, "u1", dto.StockMovementRequest{SKU: "pap-001", Quantity: 30, UnitCost: decimal.NewFromInt(12)})
	require.NoError(t, err)
	assert.NotEmpty(t, created.TransactionID)
	assert.True(t, created.Applied)
	assert.Equal(t, 30, created.Delta)
	assert.Equal(t, 80, product(t, store, "PAP-001").Quantity)

	updated, err := uc.UpdateStockIn(ctx, "u1", created.TransactionID, dto.StockMovementRequest{SKU: "PAP-001", Quantity: 20, UnitCost: decimal.NewFromInt(12)})
	require.NoError(t, err)
	assert.Equal(t, -10, updated.Delta)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, 70, product(t, store, "PAP-001").Quantity)

	_, err = uc.DeleteStockIn(ctx, "u1", created.TransactionID)
	require.NoError(t, err)
	p := product(t, store, "PAP-001")
	assert.Equal(t, 50, p.Quantity)
	assert.True(t, decimal.NewFromInt(600).Equal(p.TotalValue))

	assert.Equal(t, []string{event.ActionStockInCreated, event.ActionStockInUpdated, event.ActionStockInDeleted}, pub.actions())
}

func TestStockIn_AdoptaNuevoCosto(t *testing.T) {
	uc, store, _ := setup(t, &entity.Product{SKU: "TON-01", Quantity: 40, UnitCost: decimal.NewFromInt(100)})

	_, err := uc.CreateStockIn(context.Background(), "u1", dto.StockMovementRequest{SKU: "TON-01", Quantity: 10, UnitCost: decimal.NewFromInt(120)})
	require.NoError(t, err)

	p := product(t, store, "TON-01")
	assert.True(t, decimal.NewFromInt(120).Equal(p.UnitCost))
	assert.True(t, decimal.NewFromInt(6000).Equal(p.TotalValue))
}

func TestStockOut_ClampYAlertaUnaVez(t *testing.T) {
	uc, store, pub := setup(t, &entity.Product{SKU: "CLP-9", Name: "Clips", Quantity: 25, UnitCost: decimal.NewFromInt(1)})
	ctx := context.Background()

	_, err := uc.CreateStockOut(ctx, "u1", dto.StockMovementRequest{SKU: "CLP-9", Quantity: 10})
	require.NoError(t, err)
	second, err := uc.CreateStockOut(ctx, "u1", dto.StockMovementRequest{SKU: "CLP-9", Quantity: 100})
	require.NoError(t, err)

	assert.Equal(t, -15, second.Delta)
	assert.Equal(t, 0, product(t, store, "CLP-9").Quantity)
	require.Len(t, pub.alerts(), 1, "la segunda salida queda suprimida")
	assert.Equal(t, "suppressed", second.LowStock)
	assert.True(t, second.Product.LowStock)

	low, err := uc.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, event.SeverityDanger, low[0].Severity)

	// Eliminar la salida grande devuelve 100 y despeja la alerta.
	_, err = uc.DeleteStockOut(ctx, "u1", second.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, 100, product(t, store, "CLP-9").Quantity)
	low, err = uc.ListLowStock(ctx)
	require.NoError(t, err)
	assert.Empty(t, low)
}

func TestStock_SKUDesconocidoEsNoOp(t *testing.T) {
	uc, _, pub := setup(t)

	res, err := uc.CreateStockIn(context.Background(), "u1", dto.StockMovementRequest{SKU: "NADA", Quantity: 5})
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Nil(t, res.Product)
	assert.Equal(t, []string{event.ActionStockInCreated}, pub.actions())
}

func putProduct(t *testing.T, store *memory.InventoryStore, prod *entity.Product) {
	t.Helper()
	require.NoError(t, store.Run(context.Background(), func(p repository.ProductRepository, _ repository.AlertSetRepository, _ repository.StockMovementRepository) error {
		prod.RecalculateValue()
		p.Put(prod)
		return nil
	}))
}

// TestStock_MovimientoNoAplicadoNoSeRevierte: un movimiento registrado antes de que el
// SKU existiera no se deshace al eliminarlo ni cuenta como cantidad previa al editarlo.
func TestStock_MovimientoNoAplicadoNoSeRevierte(t *testing.T) {
	ctx := context.Background()

	t.Run("eliminar entrada", func(t *testing.T) {
		uc, store, _ := setup(t)
		mov, err := uc.CreateStockIn(ctx, "u1", dto.StockMovementRequest{SKU: "LATE", Quantity: 30})
		require.NoError(t, err)
		require.False(t, mov.Applied)

		putProduct(t, store, &entity.Product{SKU: "LATE", Quantity: 40})
		res, err := uc.DeleteStockIn(ctx, "u1", mov.TransactionID)
		require.NoError(t, err)
		assert.False(t, res.Applied)
		assert.Equal(t, 40, product(t, store, "LATE").Quantity)
	})

	t.Run("eliminar salida", func(t *testing.T) {
		uc, store, _ := setup(t)
		mov, err := uc.CreateStockOut(ctx, "u1", dto.StockMovementRequest{SKU: "LATE", Quantity: 5})
		require.NoError(t, err)

		putProduct(t, store, &entity.Product{SKU: "LATE", Quantity: 40})
		_, err = uc.DeleteStockOut(ctx, "u1", mov.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, 40, product(t, store, "LATE").Quantity)
	})

	t.Run("editar entrada", func(t *testing.T) {
		uc, store, _ := setup(t)
		mov, err := uc.CreateStockIn(ctx, "u1", dto.StockMovementRequest{SKU: "LATE", Quantity: 10})
		require.NoError(t, err)

		putProduct(t, store, &entity.Product{SKU: "LATE", Quantity: 0})
		res, err := uc.UpdateStockIn(ctx, "u1", mov.TransactionID, dto.StockMovementRequest{SKU: "LATE", Quantity: 12})
		require.NoError(t, err)
		assert.True(t, res.Applied)
		assert.Equal(t, 12, res.Delta)
		assert.Equal(t, 12, product(t, store, "LATE").Quantity)

		// A partir de aquí la versión aplicada sí se revierte.
		_, err = uc.DeleteStockIn(ctx, "u1", mov.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, 0, product(t, store, "LATE").Quantity)
	})
}

func TestStock_SalidaSinCostoUnitario(t *testing.T) {
	uc, _, _ := setup(t, &entity.Product{SKU: "A", Quantity: 500, UnitCost: decimal.NewFromInt(3)})

	out, err := uc.CreateStockOut(context.Background(), "u1", dto.StockMovementRequest{SKU: "A", Quantity: 2, UnitCost: decimal.NewFromInt(9)})
	require.NoError(t, err)
	assert.True(t, out.UnitCost.IsZero())
	require.NotNil(t, out.Product)
	assert.True(t, decimal.NewFromInt(3).Equal(out.Product.UnitCost))
}

func TestStock_CambioDeSKUEnEdicion(t *testing.T) {
	uc, store, _ := setup(t,
		&entity.Product{SKU: "A", Quantity: 50},
		&entity.Product{SKU: "B", Quantity: 50},
	)
	ctx := context.Background()

	mov, err := uc.CreateStockIn(ctx, "u1", dto.StockMovementRequest{SKU: "A", Quantity: 10})
	require.NoError(t, err)
	_, err = uc.UpdateStockIn(ctx, "u1", mov.TransactionID, dto.StockMovementRequest{SKU: "B", Quantity: 10})
	require.NoError(t, err)

	assert.Equal(t, 50, product(t, store, "A").Quantity)
	assert.Equal(t, 60, product(t, store, "B").Quantity)
}

func TestStock_ErroresDeEntrada(t *testing.T) {
	uc, _, pub := setup(t, &entity.Product{SKU: "A", Quantity: 500})
	ctx := context.Background()

	_, err := uc.CreateStockIn(ctx, "u1", dto.StockMovementRequest{SKU: " ", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateStockOut(ctx, "u1", dto.StockMovementRequest{SKU: "A", Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UpdateStockIn(ctx, "u1", "no-existe", dto.StockMovementRequest{SKU: "A", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrMovementNotFound)

	out, err := uc.CreateStockOut(ctx, "u1", dto.StockMovementRequest{SKU: "A", Quantity: 1})
	require.NoError(t, err)
	_, err = uc.DeleteStockIn(ctx, "u1", out.TransactionID)
	assert.ErrorIs(t, err, domain.ErrMovementNotFound, "una salida no se elimina como entrada")

	assert.Len(t, pub.actions(), 1)
}

func TestEvaluateLowStock(t *testing.T) {
	uc, _, pub := setup(t, &entity.Product{SKU: "A", Quantity: 3, ReorderThreshold: 5})
	ctx := context.Background()

	res, err := uc.EvaluateLowStock(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "raised", res.Outcome)
	assert.Equal(t, 5, res.Threshold)
	assert.True(t, res.Product.LowStock)

	res, err = uc.EvaluateLowStock(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, "suppressed", res.Outcome)
	assert.Len(t, pub.alerts(), 1)

	_, err = uc.EvaluateLowStock(ctx, "Z")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
