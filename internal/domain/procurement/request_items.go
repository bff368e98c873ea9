package procurement

import (
	"time"

	"github.com/jhoicas/supply-tracker/internal/domain"
	"github.com/jhoicas/supply-tracker/internal/domain/entity"
	"github.com/jhoicas/supply-tracker/internal/domain/event"
)

// ItemsEdit modifica la lista de ítems; changed=false indica que no hubo cambio (p.ej. último ítem).
type ItemsEdit func(items []entity.LineItem) (out []entity.LineItem, changed bool, err error)

// EditRequestItems aplica edit a los ítems de una solicitud que aún no tiene decisión
// y recalcula TotalAmount. Sin cambio no se emiten eventos.
func EditRequestItems(book RequestBook, id, actor string, now time.Time, edit ItemsEdit) (Outcome, error) {
	r, err := lookup(book, id)
	if err != nil {
		return Outcome{}, err
	}
	if !r.Status.IsIncoming() {
		return Outcome{}, domain.ErrInvalidTransition
	}
	items, changed, err := edit(r.Items)
	if err != nil {
		return Outcome{}, err
	}
	if !changed {
		return Outcome{Request: r.Clone()}, nil
	}
	r.Items = items
	r.TotalAmount = RecomputeTotal(items)
	r.UpdatedAt = now
	book.Put(r)
	return Outcome{
		Request: r.Clone(),
		Events: []event.Event{event.NewActivity(event.ActionRequestItemsEdit, now, map[string]any{
			"requestId":   r.ID,
			"items":       len(items),
			"totalAmount": r.TotalAmount.String(),
			"actor":       actor,
		})},
	}, nil
}
