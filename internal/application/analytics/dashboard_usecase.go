// Package analytics contiene el resumen del tablero de suministros.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/supply-tracker/internal/application/dto"
	"github.com/jhoicas/supply-tracker/internal/application/inventory"
	"github.com/jhoicas/supply-tracker/internal/application/procurement"
	"github.com/jhoicas/supply-tracker/internal/domain/entity"
	"github.com/jhoicas/supply-tracker/internal/domain/repository"
)

const dashboardTopProducts = 5 // número de productos en el widget del dashboard

// DashboardUseCase genera el resumen de existencias y solicitudes.
// Solo lectura: cada store se consulta en su propio turno.
type DashboardUseCase struct {
	inventoryTx   inventory.TxRunner
	procurementTx procurement.TxRunner
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(inventoryTx inventory.TxRunner, procurementTx procurement.TxRunner) *DashboardUseCase {
	return &DashboardUseCase{inventoryTx: inventoryTx, procurementTx: procurementTx, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

type stockResult struct {
	count    int
	value    decimal.Decimal
	lowStock int
	top      []dto.TopProductDTO
	err      error
}

type requestsResult struct {
	byBucket map[string]int
	pending  decimal.Decimal
	monthly  decimal.Decimal
	err      error
}

// GetSummary consulta ambos stores en paralelo y arma el DashboardSummaryDTO.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stockCh := make(chan stockResult, 1)
	requestsCh := make(chan requestsResult, 1)

	go func() { stockCh <- uc.stock(ctx) }()
	go func() { requestsCh <- uc.requests(ctx, monthStart) }()

	stock := <-stockCh
	reqs := <-requestsCh

	if stock.err != nil {
		return nil, fmt.Errorf("dashboard: existencias: %w", stock.err)
	}
	if reqs.err != nil {
		return nil, fmt.Errorf("dashboard: solicitudes: %w", reqs.err)
	}

	return &dto.DashboardSummaryDTO{
		ProductCount:     stock.count,
		InventoryValue:   stock.value.Round(2),
		LowStockCount:    stock.lowStock,
		TopProducts:      stock.top,
		RequestsByBucket: reqs.byBucket,
		PendingAmount:    reqs.pending.Round(2),
		MonthlyRequested: reqs.monthly.Round(2),
		DateLabel:        monthLabel(now),
	}, nil
}

func (uc *DashboardUseCase) stock(ctx context.Context) stockResult {
	var out stockResult
	out.err = uc.inventoryTx.Run(ctx, func(productRepo repository.ProductRepository, alertRepo repository.AlertSetRepository, _ repository.StockMovementRepository) error {
		products := productRepo.List()
		out.count = len(products)
		out.value = decimal.Zero
		for _, p := range products {
			out.value = out.value.Add(p.TotalValue)
		}
		out.lowStock = len(alertRepo.List())

		sort.SliceStable(products, func(i, j int) bool {
			return products[i].TotalValue.GreaterThan(products[j].TotalValue)
		})
		if len(products) > dashboardTopProducts {
			products = products[:dashboardTopProducts]
		}
		out.top = make([]dto.TopProductDTO, 0, len(products))
		for _, p := range products {
			out.top = append(out.top, dto.TopProductDTO{SKU: p.SKU, Name: p.Name, Quantity: p.Quantity, TotalValue: p.TotalValue})
		}
		return nil
	})
	return out
}

func (uc *DashboardUseCase) requests(ctx context.Context, monthStart time.Time) requestsResult {
	out := requestsResult{byBucket: map[string]int{}, pending: decimal.Zero, monthly: decimal.Zero}
	out.err = uc.procurementTx.Run(ctx, func(requestRepo repository.RequestRepository, _ repository.DraftRepository) error {
		for _, r := range requestRepo.List() {
			b := r.Bucket()
			out.byBucket[string(b)]++
			if b == entity.BucketIncoming || b == entity.BucketPending {
				out.pending = out.pending.Add(r.TotalAmount)
			}
			if !r.RequestedDate.Before(monthStart) {
				out.monthly = out.monthly.Add(r.TotalAmount)
			}
		}
		return nil
	})
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
