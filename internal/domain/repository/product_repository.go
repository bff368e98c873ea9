package repository

import "github.com/jhoicas/supply-tracker/internal/domain/entity"

// ProductRepository define el puerto de la tabla de productos (DIP).
// Get y Put cumplen inventory.ProductTable para usarse dentro de un turno del libro.
type ProductRepository interface {
	Get(sku string) (*entity.Product, bool)
	Put(product *entity.Product)
	List() []*entity.Product
}

// AlertSetRepository conjunto de SKUs con alerta de stock bajo activa.
type AlertSetRepository interface {
	Has(sku string) bool
	Add(sku string)
	Remove(sku string)
	List() []string
}
