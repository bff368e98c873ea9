package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/supply-tracker/internal/domain/entity"
	"github.com/jhoicas/supply-tracker/internal/domain/repository"
)

var (
	_ repository.ProductRepository       = (*productTable)(nil)
	_ repository.AlertSetRepository      = (*alertTable)(nil)
	_ repository.StockMovementRepository = (*movementTable)(nil)
)

// InventoryStore contiene la tabla de productos, el conjunto de alertas y la versión
// actual de los movimientos. Un único mutex serializa los turnos.
type InventoryStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	alerts    map[string]struct{}
	movements map[string]*entity.StockMovement
}

// NewInventoryStore crea el store vacío.
func NewInventoryStore() *InventoryStore {
	return &InventoryStore{
		products:  map[string]*entity.Product{},
		alerts:    map[string]struct{}{},
		movements: map[string]*entity.StockMovement{},
	}
}

// Run ejecuta fn como un turno: bloquea el store, entrega repositorios atados a una capa
// de cambios y confirma si fn no devuelve error (si devuelve error se descarta todo).
func (s *InventoryStore) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	alerts repository.AlertSetRepository,
	movements repository.StockMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &productTable{o: newOverlay(s.products, (*entity.Product).Clone)}
	a := &alertTable{o: newOverlay(s.alerts, func(v struct{}) struct{} { return v })}
	m := &movementTable{o: newOverlay(s.movements, cloneMovement)}

	if err := fn(p, a, m); err != nil {
		return err
	}
	p.o.commit()
	a.o.commit()
	m.o.commit()
	return nil
}

func cloneMovement(m *entity.StockMovement) *entity.StockMovement {
	c := *m
	return &c
}

type productTable struct{ o *overlay[*entity.Product] }

func (t *productTable) Get(sku string) (*entity.Product, bool) {
	return t.o.get(entity.NormalizeSKU(sku))
}

func (t *productTable) Put(p *entity.Product) {
	p.SKU = entity.NormalizeSKU(p.SKU)
	t.o.put(p.SKU, p)
}

func (t *productTable) List() []*entity.Product {
	keys := t.o.keys()
	out := make([]*entity.Product, 0, len(keys))
	for _, k := range keys {
		if p, ok := t.o.get(k); ok {
			out = append(out, p)
		}
	}
	return out
}

type alertTable struct{ o *overlay[struct{}] }

func (t *alertTable) Has(sku string) bool {
	_, ok := t.o.get(entity.NormalizeSKU(sku))
	return ok
}

func (t *alertTable) Add(sku string)    { t.o.put(entity.NormalizeSKU(sku), struct{}{}) }
func (t *alertTable) Remove(sku string) { t.o.remove(entity.NormalizeSKU(sku)) }
func (t *alertTable) List() []string    { return t.o.keys() }

type movementTable struct{ o *overlay[*entity.StockMovement] }

func (t *movementTable) Get(txID string) (*entity.StockMovement, bool) { return t.o.get(txID) }
func (t *movementTable) Put(m *entity.StockMovement)                  { t.o.put(m.TransactionID, m) }
func (t *movementTable) Delete(txID string)                          { t.o.remove(txID) }
