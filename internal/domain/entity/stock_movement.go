package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIn  = "in"  // entrada
	MovementTypeOut = "out" // salida
)

// StockMovement representa el estado actual de un movimiento de entrada o salida.
// No es un evento append-only: editarlo reemplaza el efecto de la versión anterior.
type StockMovement struct {
	TransactionID string
	Type          string // in, out
	SKU           string
	Quantity      int
	UnitCost      decimal.Decimal // solo entradas
	Reference     string          // orden de compra, acta de entrega, etc.
	Notes         string
	Applied       bool // false si el SKU no existía al registrarse
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PriorQuantity devuelve la cantidad de una versión previa o 0 si no existe.
func PriorQuantity(prev *StockMovement) int {
	if prev == nil {
		return 0
	}
	return prev.Quantity
}
