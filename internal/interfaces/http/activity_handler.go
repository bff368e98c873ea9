package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/supply-tracker/internal/application/dto"
	"github.com/jhoicas/supply-tracker/internal/domain/repository"
)

// activityLister lo implementa *postgres.ActivityRepo.
type activityLister interface {
	ListRecent(ctx context.Context, limit int) ([]repository.ActivityRecord, error)
}

// ActivityHandler consulta de la bitácora (solo con base de datos configurada).
type ActivityHandler struct {
	repo activityLister
}

// NewActivityHandler construye el handler.
func NewActivityHandler(repo activityLister) *ActivityHandler {
	return &ActivityHandler{repo: repo}
}

// List godoc
// @Summary      Actividad reciente
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite"  default(50)
// @Success      200  {array}  dto.ActivityDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/activity [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	recs, err := h.repo.ListRecent(c.Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ActivityDTO, 0, len(recs))
	for _, r := range recs {
		out = append(out, dto.ActivityDTO{ID: r.ID, Action: r.Action, Meta: r.Meta, OccurredAt: r.OccurredAt})
	}
	return c.JSON(out)
}
