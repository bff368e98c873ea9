package procurement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supply-tracker/internal/domain"
	"github.com/jhoicas/supply-tracker/internal/domain/entity"
	"github.com/jhoicas/supply-tracker/internal/domain/procurement"
)

var draftNow = time.Date(2025, 3, 20, 14, 0, 0, 0, time.UTC)

func TestDraft_FlujoCompleto(t *testing.T) {
	d := procurement.StartDraft("ana", draftNow)
	require.Equal(t, entity.StepSupplier, d.Step)

	require.NoError(t, procurement.Next(d, procurement.StepFields{"name": "Papelera Sur", "tin": "123"}, draftNow))
	assert.Equal(t, entity.StepProcurementDetails, d.Step)
	assert.Equal(t, "Papelera Sur", d.Supplier.Name)

	require.NoError(t, procurement.Next(d, procurement.StepFields{"department": "Finanzas"}, draftNow))
	assert.Equal(t, entity.StepLineItems, d.Step)

	var item entity.LineItem
	d.Items, item = procurement.AddItem(d.Items)
	require.NoError(t, procurement.UpdateItem(d.Items, item.ID, procurement.FieldQuantity, "4"))
	require.NoError(t, procurement.UpdateItem(d.Items, item.ID, procurement.FieldUnitCost, "25.50"))

	require.NoError(t, procurement.Next(d, nil, draftNow))
	assert.Equal(t, entity.StepReview, d.Step)

	existing := []*entity.Request{{ID: "REQ-002", PONumber: "2025-03-001"}}
	req, err := procurement.Finalize(d, procurement.StepFields{"fundCluster": "01"}, existing, "ana", draftNow)
	require.NoError(t, err)

	assert.Equal(t, "REQ-003", req.ID)
	assert.Equal(t, "2025-03-002", req.PONumber, "sin PO en el borrador se genera uno")
	assert.Equal(t, entity.StatusSubmitted, req.Status)
	assert.Equal(t, "ana", req.RequestedBy)
	assert.Equal(t, "Finanzas", req.Department)
	assert.Equal(t, "01", req.Funding.FundCluster)
	assert.True(t, dec("102").Equal(req.TotalAmount))
}

func TestDraft_ItemsRequeridosParaAvanzar(t *testing.T) {
	d := procurement.StartDraft("ana", draftNow)
	d.Step = entity.StepLineItems

	err := procurement.Next(d, nil, draftNow)
	assert.ErrorIs(t, err, domain.ErrLineItemsRequired)
	assert.Equal(t, entity.StepLineItems, d.Step)
}

func TestDraft_BackSiemprePermitidoYGuardaCampos(t *testing.T) {
	d := procurement.StartDraft("ana", draftNow)
	d.Step = entity.StepProcurementDetails

	procurement.Back(d, procurement.StepFields{"poNumber": "2025-03-010", "purpose": "  oficina "}, draftNow)
	assert.Equal(t, entity.StepSupplier, d.Step)
	assert.Equal(t, "2025-03-010", d.Procurement.PONumber)
	assert.Equal(t, "oficina", d.Procurement.Purpose)

	procurement.Back(d, nil, draftNow)
	assert.Equal(t, entity.StepSupplier, d.Step, "en el primer paso se queda")
}

// TestDraft_CamposAusentesQuedanVacios: los campos no enviados sobreescriben con "".
func TestDraft_CamposAusentesQuedanVacios(t *testing.T) {
	d := procurement.StartDraft("ana", draftNow)
	require.NoError(t, procurement.Next(d, procurement.StepFields{"name": "X", "email": "x@y.z"}, draftNow))
	procurement.Back(d, procurement.StepFields{}, draftNow) // guarda procurement vacío y vuelve
	require.NoError(t, procurement.Next(d, procurement.StepFields{"name": "X"}, draftNow))

	assert.Equal(t, "X", d.Supplier.Name)
	assert.Equal(t, "", d.Supplier.Email)
}

func TestDraft_FinalizeUsaPODelBorrador(t *testing.T) {
	d := procurement.StartDraft("ana", draftNow)
	d.Procurement.PONumber = "2025-03-077"
	d.Items, _ = procurement.AddItem(d.Items)
	d.Step = entity.StepReview

	req, err := procurement.Finalize(d, nil, nil, "ana", draftNow)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-077", req.PONumber)
	assert.Equal(t, "REQ-001", req.ID)
}

func TestDraft_FinalizeFueraDeReview(t *testing.T) {
	d := procurement.StartDraft("ana", draftNow)
	_, err := procurement.Finalize(d, nil, nil, "ana", draftNow)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDraft_FinalizeNoCompartePunteros(t *testing.T) {
	d := procurement.StartDraft("ana", draftNow)
	d.Items, _ = procurement.AddItem(d.Items)
	d.Step = entity.StepReview

	req, err := procurement.Finalize(d, nil, nil, "ana", draftNow)
	require.NoError(t, err)
	d.Items[0].Description = "cambiado"
	assert.Empty(t, req.Items[0].Description)
}
