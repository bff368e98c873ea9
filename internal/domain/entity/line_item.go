package entity

import (
	"sort"

	"github.com/shopspring/decimal"
)

// FormKind identifica un formulario que se genera para un ítem.
type FormKind string

// Formularios soportados.
const (
	FormICS FormKind = "ics" // Inventory Custodian Slip
	FormPAR FormKind = "par" // Property Acknowledgement Receipt
	FormRIS FormKind = "ris" // Requisition and Issue Slip
	FormIAR FormKind = "iar" // Inspection and Acceptance Report
)

// ParseFormKind valida el nombre de un formulario.
func ParseFormKind(s string) (FormKind, bool) {
	switch k := FormKind(s); k {
	case FormICS, FormPAR, FormRIS, FormIAR:
		return k, true
	}
	return "", false
}

// FormSet conjunto de formularios (sin orden) de un ítem.
type FormSet map[FormKind]struct{}

// NewFormSet construye un conjunto con los formularios indicados.
func NewFormSet(kinds ...FormKind) FormSet {
	s := make(FormSet, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}
	return s
}

// Has indica si el formulario está en el conjunto.
func (s FormSet) Has(k FormKind) bool {
	_, ok := s[k]
	return ok
}

// Sorted devuelve los formularios ordenados alfabéticamente (salida estable).
func (s FormSet) Sorted() []FormKind {
	out := make([]FormKind, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone copia el conjunto.
func (s FormSet) Clone() FormSet {
	c := make(FormSet, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}

// LineItem ítem de una solicitud o borrador. Amount es derivado (Quantity × UnitCost).
type LineItem struct {
	ID                  string
	StockPropertyNumber string
	Unit                string
	Description         string
	Quantity            decimal.Decimal
	UnitCost            decimal.Decimal
	Amount              decimal.Decimal
	Forms               FormSet
}

// RecalculateAmount recalcula Amount del ítem.
func (li *LineItem) RecalculateAmount() {
	li.Amount = li.Quantity.Mul(li.UnitCost)
}

// CloneItems copia profunda de una lista de ítems.
func CloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	for i, it := range items {
		out[i] = it
		out[i].Forms = it.Forms.Clone()
	}
	return out
}
