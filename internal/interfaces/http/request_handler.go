package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/supply-tracker/internal/application/dto"
	"github.com/jhoicas/supply-tracker/internal/application/procurement"
)

// RequestHandler bandejas de solicitudes, ciclo de vida y orden de compra (protegido).
type RequestHandler struct {
	uc *procurement.RequestUseCase
}

// NewRequestHandler construye el handler.
func NewRequestHandler(uc *procurement.RequestUseCase) *RequestHandler {
	return &RequestHandler{uc: uc}
}

// List godoc
// @Summary      Listar solicitudes
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        bucket  query  string  false  "incoming, pending-approval, completed, rejected o archived"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.RequestListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("bucket"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener solicitud
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud (REQ-001)"
// @Success      200  {object}  dto.RequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// NextID godoc
// @Summary      Próximo ID de solicitud
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.IdentifierResponse
// @Router       /api/requests/next-id [get]
func (h *RequestHandler) NextID(c *fiber.Ctx) error {
	id, err := h.uc.NextRequestID(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.IdentifierResponse{Value: id})
}

// NextPONumber godoc
// @Summary      Próximo número de orden de compra
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.IdentifierResponse
// @Router       /api/requests/next-po-number [get]
func (h *RequestHandler) NextPONumber(c *fiber.Ctx) error {
	po, err := h.uc.NextPONumber(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.IdentifierResponse{Value: po})
}

// Approve godoc
// @Summary      Aprobar solicitud
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.RequestResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/approve [post]
func (h *RequestHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.Context(), GetUserName(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar solicitud
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de la solicitud"
// @Param        body  body  dto.RejectRequest  true  "reason, confirm"
// @Success      200   {object}  dto.RequestResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      428   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/reject [post]
func (h *RequestHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Reject(c.Context(), GetUserName(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Archive godoc
// @Summary      Archivar solicitud
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la solicitud"
// @Param        body  body  dto.ConfirmRequest  true  "confirm"
// @Success      200   {object}  dto.RequestResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      428   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/archive [post]
func (h *RequestHandler) Archive(c *fiber.Ctx) error {
	var in dto.ConfirmRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Archive(c.Context(), GetUserName(c), c.Params("id"), in.Confirm)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Transition godoc
// @Summary      Cambiar estado de seguimiento
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la solicitud"
// @Param        body  body  dto.TransitionRequest  true  "status destino"
// @Success      200   {object}  dto.RequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/transition [post]
func (h *RequestHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Transition(c.Context(), GetUserName(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar solicitud
// @Tags         requests
// @Security     Bearer
// @Param        id       path   string  true  "ID de la solicitud"
// @Param        confirm  query  bool    true  "Debe ser true"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      428  {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [delete]
func (h *RequestHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserName(c), c.Params("id"), c.QueryBool("confirm", false)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddItem godoc
// @Summary      Agregar ítem a una solicitud entrante
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      201  {object}  dto.ItemsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/items [post]
func (h *RequestHandler) AddItem(c *fiber.Ctx) error {
	out, err := h.uc.AddItem(c.Context(), GetUserName(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItem godoc
// @Summary      Editar ítem de una solicitud entrante
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string                 true  "ID de la solicitud"
// @Param        itemId  path  string                 true  "ID del ítem"
// @Param        body    body  dto.UpdateItemRequest  true  "field, value"
// @Success      200     {object}  dto.ItemsResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/items/{itemId} [patch]
func (h *RequestHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateItem(c.Context(), GetUserName(c), c.Params("id"), c.Params("itemId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Quitar ítem de una solicitud entrante
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID de la solicitud"
// @Param        itemId  path  string  true  "ID del ítem"
// @Success      200     {object}  dto.ItemsResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/items/{itemId} [delete]
func (h *RequestHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(c.Context(), GetUserName(c), c.Params("id"), c.Params("itemId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PurchaseOrderPDF godoc
// @Summary      Descargar orden de compra
// @Tags         requests
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/pdf [get]
func (h *RequestHandler) PurchaseOrderPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.PurchaseOrderPDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
