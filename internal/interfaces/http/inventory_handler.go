package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/supply-tracker/internal/application/dto"
	"github.com/jhoicas/supply-tracker/internal/application/inventory"
)

// InventoryHandler maneja entradas, salidas y alertas de stock bajo (protegido).
type InventoryHandler struct {
	uc *inventory.StockLedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockLedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// CreateStockIn godoc
// @Summary      Registrar entrada de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "sku, quantity, unit_cost, reference"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-in [post]
func (h *InventoryHandler) CreateStockIn(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateStockIn(c.Context(), GetUserName(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStockIn godoc
// @Summary      Editar entrada de stock
// @Description  Revierte la versión anterior y aplica la nueva.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "transaction_id"
// @Param        body  body  dto.StockMovementRequest  true  "Nueva versión"
// @Success      200   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-in/{id} [put]
func (h *InventoryHandler) UpdateStockIn(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStockIn(c.Context(), GetUserName(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteStockIn godoc
// @Summary      Anular entrada de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "transaction_id"
// @Success      200  {object}  dto.StockMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-in/{id} [delete]
func (h *InventoryHandler) DeleteStockIn(c *fiber.Ctx) error {
	out, err := h.uc.DeleteStockIn(c.Context(), GetUserName(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateStockOut godoc
// @Summary      Registrar salida de stock
// @Description  La cantidad del producto nunca baja de cero.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "sku, quantity, reference"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-out [post]
func (h *InventoryHandler) CreateStockOut(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateStockOut(c.Context(), GetUserName(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStockOut godoc
// @Summary      Editar salida de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "transaction_id"
// @Param        body  body  dto.StockMovementRequest  true  "Nueva versión"
// @Success      200   {object}  dto.StockMovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-out/{id} [put]
func (h *InventoryHandler) UpdateStockOut(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStockOut(c.Context(), GetUserName(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteStockOut godoc
// @Summary      Anular salida de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "transaction_id"
// @Success      200  {object}  dto.StockMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-out/{id} [delete]
func (h *InventoryHandler) DeleteStockOut(c *fiber.Ctx) error {
	out, err := h.uc.DeleteStockOut(c.Context(), GetUserName(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// EvaluateLowStock godoc
// @Summary      Evaluar stock bajo de un SKU
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EvaluateLowStockRequest  true  "sku"
// @Success      200   {object}  dto.LowStockEvaluationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock/evaluate [post]
func (h *InventoryHandler) EvaluateLowStock(c *fiber.Ctx) error {
	var in dto.EvaluateLowStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.SKU == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sku es requerido"})
	}
	out, err := h.uc.EvaluateLowStock(c.Context(), in.SKU)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListLowStock godoc
// @Summary      SKUs con alerta de stock bajo activa
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	out, err := h.uc.ListLowStock(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
