package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// KPIs de existencias y de solicitudes del mes en curso.
type DashboardSummaryDTO struct {
	// Existencias
	ProductCount   int             `json:"product_count"`
	InventoryValue decimal.Decimal `json:"inventory_value"` // suma de total_value de los productos
	LowStockCount  int             `json:"low_stock_count"` // SKUs con alerta activa
	TopProducts    []TopProductDTO `json:"top_products"`

	// Solicitudes
	RequestsByBucket map[string]int  `json:"requests_by_bucket"`
	PendingAmount    decimal.Decimal `json:"pending_amount"`    // total de incoming + pending
	MonthlyRequested decimal.Decimal `json:"monthly_requested"` // total solicitado en el mes

	// Metadatos del período
	DateLabel string `json:"date_label"` // ej: "Marzo 2025"
}

// TopProductDTO producto con mayor valor en existencias.
type TopProductDTO struct {
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	TotalValue decimal.Decimal `json:"total_value"`
}
