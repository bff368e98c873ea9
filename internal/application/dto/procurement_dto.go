package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StepFieldsRequest campos del paso actual del borrador. Los campos ausentes se guardan vacíos.
type StepFieldsRequest struct {
	Fields map[string]string `json:"fields"`
}

// SupplierDTO datos del proveedor.
type SupplierDTO struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	TIN           string `json:"tin"`
	ContactPerson string `json:"contact_person"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
}

// ProcurementDetailsDTO datos de la compra.
type ProcurementDetailsDTO struct {
	PONumber          string `json:"po_number"`
	Department        string `json:"department"`
	ModeOfProcurement string `json:"mode_of_procurement"`
	PlaceOfDelivery   string `json:"place_of_delivery"`
	DeliveryDate      string `json:"delivery_date"`
	DeliveryTerm      string `json:"delivery_term"`
	PaymentTerm       string `json:"payment_term"`
	Purpose           string `json:"purpose"`
}

// FundingDTO datos presupuestales.
type FundingDTO struct {
	FundCluster    string `json:"fund_cluster"`
	FundsAvailable string `json:"funds_available"`
	ORSBURSNumber  string `json:"ors_burs_number"`
	ORSBURSDate    string `json:"ors_burs_date"`
	Remarks        string `json:"remarks"`
}

// LineItemDTO ítem de un borrador o solicitud.
type LineItemDTO struct {
	ID                  string          `json:"id"`
	StockPropertyNumber string          `json:"stock_property_number"`
	Unit                string          `json:"unit"`
	Description         string          `json:"description"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitCost            decimal.Decimal `json:"unit_cost"`
	Amount              decimal.Decimal `json:"amount"`
	Forms               []string        `json:"forms"`
}

// UpdateItemRequest edición de un campo de un ítem. Forms se envía separado por comas.
type UpdateItemRequest struct {
	Field string `json:"field" validate:"required"`
	Value string `json:"value"`
}

// ItemsResponse ítems vigentes y total recalculado.
type ItemsResponse struct {
	Items       []LineItemDTO   `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Removed     *bool           `json:"removed,omitempty"`
}

// DraftResponse estado del borrador del usuario.
type DraftResponse struct {
	Owner       string                `json:"owner"`
	Step        int                   `json:"step"`
	StepName    string                `json:"step_name"`
	Supplier    SupplierDTO           `json:"supplier"`
	Procurement ProcurementDetailsDTO `json:"procurement"`
	Funding     FundingDTO            `json:"funding"`
	Items       []LineItemDTO         `json:"items"`
	TotalAmount decimal.Decimal       `json:"total_amount"`
	StartedAt   time.Time             `json:"started_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// RequestResponse solicitud de compra.
type RequestResponse struct {
	ID              string                `json:"id"`
	PONumber        string                `json:"po_number"`
	Status          string                `json:"status"`
	Bucket          string                `json:"bucket"`
	Department      string                `json:"department"`
	Supplier        SupplierDTO           `json:"supplier"`
	Procurement     ProcurementDetailsDTO `json:"procurement"`
	Funding         FundingDTO            `json:"funding"`
	Items           []LineItemDTO         `json:"items"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	RequestedBy     string                `json:"requested_by"`
	RequestedDate   time.Time             `json:"requested_date"`
	ApprovedBy      string                `json:"approved_by,omitempty"`
	ApprovedDate    *time.Time            `json:"approved_date,omitempty"`
	RejectedBy      string                `json:"rejected_by,omitempty"`
	RejectedDate    *time.Time            `json:"rejected_date,omitempty"`
	RejectionReason string                `json:"rejection_reason,omitempty"`
	ArchivedBy      string                `json:"archived_by,omitempty"`
	ArchivedDate    *time.Time            `json:"archived_date,omitempty"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// RequestListResponse solicitudes de un bucket (o todas).
type RequestListResponse struct {
	Bucket string            `json:"bucket,omitempty"`
	Items  []RequestResponse `json:"items"`
	Page   PageResponse      `json:"page"`
}

// ConfirmRequest confirmación explícita para acciones destructivas.
type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}

// RejectRequest body para POST /api/requests/:id/reject.
type RejectRequest struct {
	Reason  string `json:"reason"`
	Confirm bool   `json:"confirm"`
}

// TransitionRequest body para POST /api/requests/:id/transition.
type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
}

// IdentifierResponse próximo identificador sugerido.
type IdentifierResponse struct {
	Value string `json:"value"`
}
