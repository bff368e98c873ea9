package procurement

import (
	"strings"
	"time"

	"github.com/jhoicas/supply-tracker/internal/domain"
	"github.com/jhoicas/supply-tracker/internal/domain/entity"
)

// StepFields valores del formulario del paso actual. Las claves ausentes se guardan vacías.
type StepFields map[string]string

func (f StepFields) get(key string) string {
	return strings.TrimSpace(f[key])
}

// StartDraft abre un borrador limpio en el paso Supplier para una creación nueva.
func StartDraft(owner string, now time.Time) *entity.RequestDraft {
	return &entity.RequestDraft{
		Owner:     owner,
		Step:      entity.StepSupplier,
		Items:     []entity.LineItem{},
		StartedAt: now,
		UpdatedAt: now,
	}
}

// Capture guarda en el borrador los campos del paso actual, aunque estén incompletos.
func Capture(d *entity.RequestDraft, fields StepFields, now time.Time) {
	switch d.Step {
	case entity.StepSupplier:
		d.Supplier = entity.Supplier{
			Name:          fields.get("name"),
			Address:       fields.get("address"),
			TIN:           fields.get("tin"),
			ContactPerson: fields.get("contactPerson"),
			ContactNumber: fields.get("contactNumber"),
			Email:         fields.get("email"),
		}
	case entity.StepProcurementDetails:
		d.Procurement = entity.ProcurementDetails{
			PONumber:          fields.get("poNumber"),
			Department:        fields.get("department"),
			ModeOfProcurement: fields.get("modeOfProcurement"),
			PlaceOfDelivery:   fields.get("placeOfDelivery"),
			DeliveryDate:      fields.get("deliveryDate"),
			DeliveryTerm:      fields.get("deliveryTerm"),
			PaymentTerm:       fields.get("paymentTerm"),
			Purpose:           fields.get("purpose"),
		}
	case entity.StepReview:
		d.Funding = entity.Funding{
			FundCluster:    fields.get("fundCluster"),
			FundsAvailable: fields.get("fundsAvailable"),
			ORSBURSNumber:  fields.get("orsBursNumber"),
			ORSBURSDate:    fields.get("orsBursDate"),
			Remarks:        fields.get("remarks"),
		}
	}
	d.UpdatedAt = now
}

// Next guarda el paso actual y avanza. El único bloqueo es el paso LineItems sin ítems
// (ErrLineItemsRequired); los campos quedan guardados igualmente. En Review no avanza más.
func Next(d *entity.RequestDraft, fields StepFields, now time.Time) error {
	Capture(d, fields, now)
	if d.Step == entity.StepLineItems && len(d.Items) == 0 {
		return domain.ErrLineItemsRequired
	}
	if d.Step < entity.StepReview {
		d.Step++
	}
	return nil
}

// Back guarda el paso actual y retrocede; siempre permitido (en Supplier se queda).
func Back(d *entity.RequestDraft, fields StepFields, now time.Time) {
	Capture(d, fields, now)
	if d.Step > entity.StepSupplier {
		d.Step--
	}
}

// Finalize convierte el borrador (en paso Review) en una solicitud submitted.
// Si el borrador no trae número de PO se genera uno del mes actual.
func Finalize(d *entity.RequestDraft, fields StepFields, existing []*entity.Request, actor string, now time.Time) (*entity.Request, error) {
	if d.Step != entity.StepReview {
		return nil, domain.ErrInvalidTransition
	}
	Capture(d, fields, now)

	items := entity.CloneItems(d.Items)
	for i := range items {
		items[i].RecalculateAmount()
	}

	poNumber := d.Procurement.PONumber
	if poNumber == "" {
		poNumber = NextPONumber(existing, now)
	}
	procurement := d.Procurement
	procurement.PONumber = poNumber

	return &entity.Request{
		ID:            NextRequestID(existing),
		PONumber:      poNumber,
		Supplier:      d.Supplier,
		Procurement:   procurement,
		Funding:       d.Funding,
		Department:    d.Procurement.Department,
		Items:         items,
		TotalAmount:   RecomputeTotal(items),
		Status:        entity.StatusSubmitted,
		RequestedBy:   actor,
		RequestedDate: now,
		UpdatedAt:     now,
	}, nil
}
