package procurement

import (
	"time"

	"github.com/jhoicas/supply-tracker/internal/domain"
	"github.com/jhoicas/supply-tracker/internal/domain/entity"
	"github.com/jhoicas/supply-tracker/internal/domain/event"
)

// RequestBook colección única de solicitudes indexada por ID; el bucket se deriva del estado.
type RequestBook interface {
	Get(id string) (*entity.Request, bool)
	Put(r *entity.Request)
	Delete(id string)
}

// Outcome resultado de una transición: copia de la solicitud y eventos a despachar.
type Outcome struct {
	Request *entity.Request
	Events  []event.Event
}

// fulfillment transiciones de seguimiento (revisión y entrega) fuera de approve/reject/archive.
var fulfillment = map[entity.RequestStatus][]entity.RequestStatus{
	entity.StatusSubmitted:        {entity.StatusPending, entity.StatusUnderReview, entity.StatusAwaitingApproval, entity.StatusCancelled},
	entity.StatusPending:          {entity.StatusUnderReview, entity.StatusAwaitingApproval, entity.StatusCancelled},
	entity.StatusUnderReview:      {entity.StatusPending, entity.StatusAwaitingApproval, entity.StatusCancelled},
	entity.StatusAwaitingApproval: {entity.StatusUnderReview, entity.StatusCancelled},
	entity.StatusApproved:         {entity.StatusDelivered, entity.StatusCancelled},
	entity.StatusDelivered:        {entity.StatusCompleted, entity.StatusReturned},
}

// CanTransition indica si from → to es una transición de seguimiento válida.
func CanTransition(from, to entity.RequestStatus) bool {
	for _, s := range fulfillment[from] {
		if s == to {
			return true
		}
	}
	return false
}

func lookup(book RequestBook, id string) (*entity.Request, error) {
	r, ok := book.Get(id)
	if !ok || r == nil {
		return nil, domain.ErrRequestNotFound
	}
	return r, nil
}

// Approve mueve una solicitud entrante a approved y registra quién y cuándo.
func Approve(book RequestBook, id, actor string, now time.Time) (Outcome, error) {
	r, err := lookup(book, id)
	if err != nil {
		return Outcome{}, err
	}
	if !r.Status.IsIncoming() {
		return Outcome{}, domain.ErrInvalidTransition
	}
	from := r.Status
	r.Status = entity.StatusApproved
	r.ApprovedBy = actor
	r.ApprovedDate = &now
	return commit(book, r, event.ActionRequestApproved, from, actor, now), nil
}

// Reject rechaza una solicitud entrante. Requiere confirmación explícita.
func Reject(book RequestBook, id, actor, reason string, confirmed bool, now time.Time) (Outcome, error) {
	r, err := lookup(book, id)
	if err != nil {
		return Outcome{}, err
	}
	if !confirmed {
		return Outcome{}, domain.ErrConfirmationRequired
	}
	if !r.Status.IsIncoming() {
		return Outcome{}, domain.ErrInvalidTransition
	}
	from := r.Status
	r.Status = entity.StatusRejected
	r.RejectedBy = actor
	r.RejectedDate = &now
	r.RejectionReason = reason
	return commit(book, r, event.ActionRequestRejected, from, actor, now), nil
}

// Archive archiva una solicitud approved, delivered o completed. Requiere confirmación.
func Archive(book RequestBook, id, actor string, confirmed bool, now time.Time) (Outcome, error) {
	r, err := lookup(book, id)
	if err != nil {
		return Outcome{}, err
	}
	if !confirmed {
		return Outcome{}, domain.ErrConfirmationRequired
	}
	switch r.Status {
	case entity.StatusApproved, entity.StatusDelivered, entity.StatusCompleted:
	default:
		return Outcome{}, domain.ErrInvalidTransition
	}
	from := r.Status
	r.Status = entity.StatusArchived
	r.ArchivedBy = actor
	r.ArchivedDate = &now
	return commit(book, r, event.ActionRequestArchived, from, actor, now), nil
}

// Delete elimina la solicitud desde cualquier estado. Requiere confirmación.
// No revierte efectos de inventario: solicitudes y movimientos son libros independientes.
func Delete(book RequestBook, id, actor string, confirmed bool, now time.Time) (Outcome, error) {
	r, err := lookup(book, id)
	if err != nil {
		return Outcome{}, err
	}
	if !confirmed {
		return Outcome{}, domain.ErrConfirmationRequired
	}
	book.Delete(id)
	return Outcome{
		Request: r.Clone(),
		Events: []event.Event{event.NewActivity(event.ActionRequestDeleted, now, map[string]any{
			"requestId": r.ID,
			"poNumber":  r.PONumber,
			"status":    string(r.Status),
			"actor":     actor,
		})},
	}, nil
}

// Transition aplica una transición de seguimiento (revisión, entrega, cancelación, devolución).
func Transition(book RequestBook, id string, to entity.RequestStatus, actor string, now time.Time) (Outcome, error) {
	r, err := lookup(book, id)
	if err != nil {
		return Outcome{}, err
	}
	if !CanTransition(r.Status, to) {
		return Outcome{}, domain.ErrInvalidTransition
	}
	from := r.Status
	r.Status = to
	return commit(book, r, event.ActionRequestStatus, from, actor, now), nil
}

func commit(book RequestBook, r *entity.Request, action string, from entity.RequestStatus, actor string, now time.Time) Outcome {
	r.UpdatedAt = now
	book.Put(r)
	return Outcome{
		Request: r.Clone(),
		Events: []event.Event{event.NewActivity(action, now, map[string]any{
			"requestId": r.ID,
			"poNumber":  r.PONumber,
			"from":      string(from),
			"to":        string(r.Status),
			"actor":     actor,
		})},
	}
}
