package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Product representa un producto del catálogo con su existencia actual.
// TotalValue es derivado (Quantity × UnitCost) y solo lo modifica RecalculateValue.
type Product struct {
	SKU              string // único, normalizado a mayúsculas
	Name             string
	Description      string
	Category         string
	Unit             string
	Quantity         int             // nunca negativo
	UnitCost         decimal.Decimal // costo de referencia
	TotalValue       decimal.Decimal
	ReorderThreshold int // 0 = usar el umbral configurado
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

var skuCaser = cases.Upper(language.Und)

// NormalizeSKU recorta espacios y lleva el SKU a mayúsculas para usarlo como clave.
func NormalizeSKU(sku string) string {
	return skuCaser.String(strings.TrimSpace(sku))
}

// RecalculateValue recalcula TotalValue a partir de Quantity y UnitCost.
func (p *Product) RecalculateValue() {
	p.TotalValue = decimal.NewFromInt(int64(p.Quantity)).Mul(p.UnitCost)
}

// Threshold devuelve el umbral de stock bajo del producto o def si no tiene uno propio.
func (p *Product) Threshold(def int) int {
	if p.ReorderThreshold > 0 {
		return p.ReorderThreshold
	}
	return def
}

// Clone devuelve una copia independiente del producto.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
