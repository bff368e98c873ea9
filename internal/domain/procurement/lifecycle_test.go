package procurement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supply-tracker/internal/domain"
	"github.com/jhoicas/supply-tracker/internal/domain/entity"
	"github.com/jhoicas/supply-tracker/internal/domain/event"
	"github.com/jhoicas/supply-tracker/internal/domain/procurement"
)

type bookFake map[string]*entity.Request

func (b bookFake) Get(id string) (*entity.Request, bool) {
	r, ok := b[id]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}
func (b bookFake) Put(r *entity.Request) { b[r.ID] = r.Clone() }
func (b bookFake) Delete(id string)      { delete(b, id) }

var allBuckets = []entity.Bucket{
	entity.BucketIncoming, entity.BucketPending, entity.BucketCompleted,
	entity.BucketRejected, entity.BucketArchived,
}

// bucketsHolding cuenta en cuántos buckets aparece el id.
func bucketsHolding(b bookFake, id string) int {
	n := 0
	for _, bucket := range allBuckets {
		for _, r := range b {
			if r.ID == id && r.Bucket() == bucket {
				n++
			}
		}
	}
	return n
}

var lcNow = time.Date(2025, 3, 21, 10, 0, 0, 0, time.UTC)

func newBook(status entity.RequestStatus) bookFake {
	return bookFake{"REQ-001": {ID: "REQ-001", PONumber: "2025-03-001", Status: status, RequestedBy: "ana"}}
}

func TestApprove_DesdeCualquierEntrante(t *testing.T) {
	for _, st := range []entity.RequestStatus{entity.StatusSubmitted, entity.StatusPending, entity.StatusUnderReview, entity.StatusAwaitingApproval} {
		t.Run(string(st), func(t *testing.T) {
			book := newBook(st)
			out, err := procurement.Approve(book, "REQ-001", "jefe", lcNow)
			require.NoError(t, err)

			assert.Equal(t, entity.StatusApproved, out.Request.Status)
			assert.Equal(t, entity.BucketCompleted, book["REQ-001"].Bucket())
			assert.Equal(t, "jefe", book["REQ-001"].ApprovedBy)
			require.NotNil(t, book["REQ-001"].ApprovedDate)
			assert.True(t, lcNow.Equal(*book["REQ-001"].ApprovedDate))
			assert.Equal(t, 1, bucketsHolding(book, "REQ-001"))

			require.Len(t, out.Events, 1)
			act := out.Events[0].(event.Activity)
			assert.Equal(t, event.ActionRequestApproved, act.Action)
			assert.Equal(t, string(st), act.Meta["from"])
		})
	}
}

func TestApprove_NoDesdeRechazada(t *testing.T) {
	book := newBook(entity.StatusRejected)
	_, err := procurement.Approve(book, "REQ-001", "jefe", lcNow)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.StatusRejected, book["REQ-001"].Status)
}

func TestReject_RequiereConfirmacion(t *testing.T) {
	book := newBook(entity.StatusSubmitted)
	_, err := procurement.Reject(book, "REQ-001", "jefe", "sin fondos", false, lcNow)
	assert.ErrorIs(t, err, domain.ErrConfirmationRequired)
	assert.Equal(t, entity.StatusSubmitted, book["REQ-001"].Status)

	out, err := procurement.Reject(book, "REQ-001", "jefe", "sin fondos", true, lcNow)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRejected, out.Request.Status)
	assert.Equal(t, entity.BucketRejected, book["REQ-001"].Bucket())
	assert.Equal(t, "jefe", book["REQ-001"].RejectedBy)
	assert.Equal(t, "sin fondos", book["REQ-001"].RejectionReason)
	assert.Equal(t, 1, bucketsHolding(book, "REQ-001"))
}

func TestArchive_SoloDesdeAprobadaEntregadaOCompletada(t *testing.T) {
	for _, st := range []entity.RequestStatus{entity.StatusApproved, entity.StatusDelivered, entity.StatusCompleted} {
		book := newBook(st)
		out, err := procurement.Archive(book, "REQ-001", "jefe", true, lcNow)
		require.NoError(t, err, st)
		assert.Equal(t, entity.StatusArchived, out.Request.Status)
		assert.Equal(t, 1, bucketsHolding(book, "REQ-001"))
	}

	book := newBook(entity.StatusSubmitted)
	_, err := procurement.Archive(book, "REQ-001", "jefe", true, lcNow)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	book = newBook(entity.StatusApproved)
	_, err = procurement.Archive(book, "REQ-001", "jefe", false, lcNow)
	assert.ErrorIs(t, err, domain.ErrConfirmationRequired)
}

func TestDelete_DesdeCualquierEstado(t *testing.T) {
	book := newBook(entity.StatusArchived)
	book["REQ-002"] = &entity.Request{ID: "REQ-002", Status: entity.StatusSubmitted}

	_, err := procurement.Delete(book, "REQ-001", "jefe", false, lcNow)
	assert.ErrorIs(t, err, domain.ErrConfirmationRequired)
	assert.Len(t, book, 2)

	out, err := procurement.Delete(book, "REQ-001", "jefe", true, lcNow)
	require.NoError(t, err)
	assert.Equal(t, "REQ-001", out.Request.ID)
	assert.Equal(t, 0, bucketsHolding(book, "REQ-001"))
	assert.Equal(t, 1, bucketsHolding(book, "REQ-002"))
	assert.Equal(t, event.ActionRequestDeleted, out.Events[0].EventName())
}

// TestLookupMiss_NoMutaEstado: un id inexistente devuelve ErrRequestNotFound en toda operación.
func TestLookupMiss_NoMutaEstado(t *testing.T) {
	book := newBook(entity.StatusSubmitted)
	before := book["REQ-001"].Clone()

	_, err := procurement.Approve(book, "REQ-404", "jefe", lcNow)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
	_, err = procurement.Reject(book, "REQ-404", "jefe", "", true, lcNow)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
	_, err = procurement.Archive(book, "REQ-404", "jefe", true, lcNow)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
	_, err = procurement.Delete(book, "REQ-404", "jefe", true, lcNow)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
	_, err = procurement.Transition(book, "REQ-404", entity.StatusPending, "jefe", lcNow)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)

	assert.Len(t, book, 1)
	assert.Equal(t, before, book["REQ-001"])
}

func TestTransition_SeguimientoDeEntrega(t *testing.T) {
	book := newBook(entity.StatusApproved)

	_, err := procurement.Transition(book, "REQ-001", entity.StatusDelivered, "bodega", lcNow)
	require.NoError(t, err)
	_, err = procurement.Transition(book, "REQ-001", entity.StatusCompleted, "bodega", lcNow)
	require.NoError(t, err)
	assert.True(t, book["REQ-001"].Status.IsTerminal())

	_, err = procurement.Transition(book, "REQ-001", entity.StatusReturned, "bodega", lcNow)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "completed es terminal")
}

func TestTransition_NoPermiteAtajos(t *testing.T) {
	book := newBook(entity.StatusSubmitted)
	_, err := procurement.Transition(book, "REQ-001", entity.StatusApproved, "x", lcNow)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "aprobar usa Approve")
	_, err = procurement.Transition(book, "REQ-001", entity.StatusCompleted, "x", lcNow)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestEditRequestItems_RecalculaTotal(t *testing.T) {
	book := newBook(entity.StatusSubmitted)
	book["REQ-001"].Items = twoItems(t)

	out, err := procurement.EditRequestItems(book, "REQ-001", "ana", lcNow, func(items []entity.LineItem) ([]entity.LineItem, bool, error) {
		return items, true, procurement.UpdateItem(items, items[0].ID, procurement.FieldQuantity, "3")
	})
	require.NoError(t, err)
	assert.True(t, dec("350").Equal(out.Request.TotalAmount))
	assert.True(t, dec("350").Equal(book["REQ-001"].TotalAmount))
}

func TestEditRequestItems_UltimoItemNoSeQuita(t *testing.T) {
	book := newBook(entity.StatusSubmitted)
	items, only := procurement.AddItem(nil)
	book["REQ-001"].Items = items

	out, err := procurement.EditRequestItems(book, "REQ-001", "ana", lcNow, func(items []entity.LineItem) ([]entity.LineItem, bool, error) {
		out, removed := procurement.RemoveItem(items, only.ID)
		return out, removed, nil
	})
	require.NoError(t, err)
	assert.Empty(t, out.Events)
	assert.Len(t, book["REQ-001"].Items, 1)
}

func TestEditRequestItems_SoloEntrantes(t *testing.T) {
	book := newBook(entity.StatusApproved)
	_, err := procurement.EditRequestItems(book, "REQ-001", "ana", lcNow, func(items []entity.LineItem) ([]entity.LineItem, bool, error) {
		return items, true, nil
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}
