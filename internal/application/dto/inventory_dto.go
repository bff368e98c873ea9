package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovementRequest body para registrar o editar una entrada o salida.
// UnitCost solo aplica a entradas.
type StockMovementRequest struct {
	SKU       string          `json:"sku" validate:"required"`
	Quantity  int             `json:"quantity" validate:"min=0"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
}

// StockMovementResponse movimiento registrado y su efecto sobre el producto.
// Applied es false cuando el SKU no está en el catálogo.
type StockMovementResponse struct {
	TransactionID string           `json:"transaction_id"`
	Type          string           `json:"type"`
	SKU           string           `json:"sku"`
	Quantity      int              `json:"quantity"`
	UnitCost      decimal.Decimal  `json:"unit_cost"`
	Reference     string           `json:"reference,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	CreatedBy     string           `json:"created_by"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	Applied       bool             `json:"applied"`
	Delta         int              `json:"delta"`
	LowStock      string           `json:"low_stock"`
	Product       *ProductResponse `json:"product,omitempty"`
}

// EvaluateLowStockRequest body para POST /api/inventory/low-stock/evaluate.
type EvaluateLowStockRequest struct {
	SKU string `json:"sku" validate:"required"`
}

// LowStockEvaluationResponse resultado de evaluar un SKU contra su umbral.
type LowStockEvaluationResponse struct {
	SKU       string          `json:"sku"`
	Outcome   string          `json:"outcome"` // none, raised, suppressed, cleared
	Threshold int             `json:"threshold"`
	Product   ProductResponse `json:"product"`
}

// LowStockItemDTO SKU con alerta activa.
type LowStockItemDTO struct {
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Threshold int    `json:"threshold"`
	Severity  string `json:"severity"`
}
