package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/supply-tracker/internal/application/dto"
	"github.com/jhoicas/supply-tracker/internal/application/procurement"
)

// DraftHandler asistente de creación de solicitudes. Cada usuario tiene a lo sumo un borrador.
type DraftHandler struct {
	uc *procurement.DraftUseCase
}

// NewDraftHandler construye el handler.
func NewDraftHandler(uc *procurement.DraftUseCase) *DraftHandler {
	return &DraftHandler{uc: uc}
}

// Start godoc
// @Summary      Abrir borrador
// @Description  Reemplaza el borrador abierto del usuario, si existe.
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.DraftResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/drafts [post]
func (h *DraftHandler) Start(c *fiber.Ctx) error {
	out, err := h.uc.Start(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Current godoc
// @Summary      Borrador abierto del usuario
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/current [get]
func (h *DraftHandler) Current(c *fiber.Ctx) error {
	out, err := h.uc.Current(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Next godoc
// @Summary      Guardar paso y avanzar
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StepFieldsRequest  true  "Campos del paso actual"
// @Success      200   {object}  dto.DraftResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/drafts/next [post]
func (h *DraftHandler) Next(c *fiber.Ctx) error {
	in, err := stepFields(c)
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Next(c.Context(), GetUserID(c), in.Fields)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Back godoc
// @Summary      Guardar paso y retroceder
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StepFieldsRequest  true  "Campos del paso actual"
// @Success      200   {object}  dto.DraftResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/drafts/back [post]
func (h *DraftHandler) Back(c *fiber.Ctx) error {
	in, err := stepFields(c)
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Back(c.Context(), GetUserID(c), in.Fields)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar ítem vacío al borrador
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.ItemsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/items [post]
func (h *DraftHandler) AddItem(c *fiber.Ctx) error {
	out, err := h.uc.AddItem(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItem godoc
// @Summary      Editar un campo de un ítem del borrador
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        itemId  path  string                 true  "ID del ítem"
// @Param        body    body  dto.UpdateItemRequest  true  "field, value"
// @Success      200     {object}  dto.ItemsResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/drafts/items/{itemId} [patch]
func (h *DraftHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateItem(c.Context(), GetUserID(c), c.Params("itemId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Quitar ítem del borrador
// @Description  El último ítem no se quita; removed indica si hubo cambio.
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        itemId  path  string  true  "ID del ítem"
// @Success      200     {object}  dto.ItemsResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/drafts/items/{itemId} [delete]
func (h *DraftHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(c.Context(), GetUserID(c), c.Params("itemId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Finalize godoc
// @Summary      Enviar borrador como solicitud
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StepFieldsRequest  false  "Campos de financiamiento"
// @Success      201   {object}  dto.RequestResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/drafts/finalize [post]
func (h *DraftHandler) Finalize(c *fiber.Ctx) error {
	in, err := stepFields(c)
	if err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Finalize(c.Context(), GetUserID(c), GetUserName(c), in.Fields)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Cancel godoc
// @Summary      Descartar borrador
// @Tags         drafts
// @Security     Bearer
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts [delete]
func (h *DraftHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), GetUserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// stepFields acepta cuerpo vacío (todos los campos se guardan vacíos).
func stepFields(c *fiber.Ctx) (dto.StepFieldsRequest, error) {
	var in dto.StepFieldsRequest
	if len(c.Body()) == 0 {
		return in, nil
	}
	err := c.BodyParser(&in)
	return in, err
}
