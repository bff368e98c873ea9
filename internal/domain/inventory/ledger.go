// Package inventory contiene el libro de existencias: aplica deltas de movimientos
// de entrada/salida sobre los productos y evalúa alertas de stock bajo.
package inventory

import (
	"time"

	"github.com/jhoicas/supply-tracker/internal/domain/entity"
	"github.com/jhoicas/supply-tracker/internal/domain/event"
)

// ProductTable tabla de productos visible durante un turno.
type ProductTable interface {
	Get(sku string) (*entity.Product, bool)
	Put(p *entity.Product)
}

// Result resultado de aplicar un movimiento.
// Applied es false cuando el SKU no existe (no-op silencioso).
type Result struct {
	Applied  bool
	Product  *entity.Product // copia del estado final
	Delta    int             // cambio efectivo de cantidad (con piso en 0)
	LowStock Outcome
	Events   []event.Event
}

// Ledger aplica movimientos sobre la tabla de productos y el conjunto de alertas.
type Ledger struct {
	products  ProductTable
	alerts    AlertSet
	threshold int
	now       func() time.Time
}

// NewLedger construye el libro para un turno. threshold es el umbral por defecto
// cuando el producto no define uno propio.
func NewLedger(products ProductTable, alerts AlertSet, threshold int, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{products: products, alerts: alerts, threshold: threshold, now: now}
}

// ApplyStockIn suma delta = nuevo − anterior (anterior 0 si prev es nil).
// Si delta ≠ 0 y el costo unitario cambió, el producto adopta el nuevo costo.
func (l *Ledger) ApplyStockIn(mov entity.StockMovement, prev *entity.StockMovement) Result {
	delta := mov.Quantity - entity.PriorQuantity(prev)
	return l.mutate(mov.SKU, func(p *entity.Product) {
		p.Quantity = floorZero(p.Quantity + delta)
		if delta != 0 && !mov.UnitCost.IsNegative() && !mov.UnitCost.Equal(p.UnitCost) {
			p.UnitCost = mov.UnitCost
		}
	})
}

// ApplyStockOut resta delta = nuevo − anterior con piso en 0; el faltante se absorbe.
func (l *Ledger) ApplyStockOut(mov entity.StockMovement, prev *entity.StockMovement) Result {
	delta := mov.Quantity - entity.PriorQuantity(prev)
	return l.mutate(mov.SKU, func(p *entity.Product) {
		p.Quantity = floorZero(p.Quantity - delta)
	})
}

// ReverseStockIn deshace una entrada eliminada, con piso en 0.
func (l *Ledger) ReverseStockIn(deleted entity.StockMovement) Result {
	return l.mutate(deleted.SKU, func(p *entity.Product) {
		p.Quantity = floorZero(p.Quantity - deleted.Quantity)
	})
}

// ReverseStockOut devuelve al producto la cantidad de una salida eliminada.
func (l *Ledger) ReverseStockOut(deleted entity.StockMovement) Result {
	return l.mutate(deleted.SKU, func(p *entity.Product) {
		p.Quantity = floorZero(p.Quantity + deleted.Quantity)
	})
}

// Evaluate evalúa el stock bajo de un producto sin modificar su cantidad.
func (l *Ledger) Evaluate(sku string) (Result, bool) {
	p, ok := l.products.Get(entity.NormalizeSKU(sku))
	if !ok {
		return Result{}, false
	}
	res := Result{Applied: true, Product: p.Clone()}
	l.evaluate(p, &res)
	return res, true
}

func (l *Ledger) mutate(sku string, apply func(p *entity.Product)) Result {
	p, ok := l.products.Get(entity.NormalizeSKU(sku))
	if !ok {
		return Result{}
	}
	before := p.Quantity
	apply(p)
	p.RecalculateValue()
	p.UpdatedAt = l.now()
	l.products.Put(p)

	res := Result{Applied: true, Delta: p.Quantity - before}
	if res.Delta != 0 {
		l.evaluate(p, &res)
	}
	res.Product = p.Clone()
	return res
}

func (l *Ledger) evaluate(p *entity.Product, res *Result) {
	outcome, alert := EvaluateLowStock(p, p.Threshold(l.threshold), l.alerts, l.now())
	res.LowStock = outcome
	if alert != nil {
		res.Events = append(res.Events, *alert)
	}
}

func floorZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
