package entity

import "time"

// DraftStep paso del asistente de creación de solicitudes.
type DraftStep int

// Pasos en orden estricto.
const (
	StepSupplier DraftStep = iota
	StepProcurementDetails
	StepLineItems
	StepReview
)

// String nombre del paso para APIs y logs.
func (s DraftStep) String() string {
	switch s {
	case StepSupplier:
		return "supplier"
	case StepProcurementDetails:
		return "procurement-details"
	case StepLineItems:
		return "line-items"
	case StepReview:
		return "review"
	}
	return "unknown"
}

// RequestDraft borrador mutable y efímero de una solicitud en construcción.
// Se descarta al cancelar o al finalizar.
type RequestDraft struct {
	Owner       string // usuario que abrió el asistente
	Step        DraftStep
	Supplier    Supplier
	Procurement ProcurementDetails
	Funding     Funding
	Items       []LineItem
	StartedAt   time.Time
	UpdatedAt   time.Time
}

// Clone copia profunda del borrador.
func (d *RequestDraft) Clone() *RequestDraft {
	if d == nil {
		return nil
	}
	c := *d
	c.Items = CloneItems(d.Items)
	return &c
}
