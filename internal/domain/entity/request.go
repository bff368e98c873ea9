package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus estado del ciclo de vida de una solicitud de compra.
type RequestStatus string

// Estados de una solicitud.
const (
	StatusSubmitted        RequestStatus = "submitted"
	StatusPending          RequestStatus = "pending"
	StatusUnderReview      RequestStatus = "under-review"
	StatusAwaitingApproval RequestStatus = "awaiting-approval"
	StatusApproved         RequestStatus = "approved"
	StatusRejected         RequestStatus = "rejected"
	StatusDelivered        RequestStatus = "delivered"
	StatusCompleted        RequestStatus = "completed"
	StatusCancelled        RequestStatus = "cancelled"
	StatusReturned         RequestStatus = "returned"
	StatusArchived         RequestStatus = "archived"
)

// ParseRequestStatus valida un estado recibido como texto.
func ParseRequestStatus(s string) (RequestStatus, bool) {
	switch st := RequestStatus(s); st {
	case StatusSubmitted, StatusPending, StatusUnderReview, StatusAwaitingApproval,
		StatusApproved, StatusRejected, StatusDelivered, StatusCompleted,
		StatusCancelled, StatusReturned, StatusArchived:
		return st, true
	}
	return "", false
}

// Bucket agrupación del ciclo de vida, derivada del estado.
type Bucket string

// Buckets de solicitudes.
const (
	BucketIncoming  Bucket = "incoming"
	BucketPending   Bucket = "pending-approval"
	BucketCompleted Bucket = "completed"
	BucketRejected  Bucket = "rejected"
	BucketArchived  Bucket = "archived"
)

// Bucket devuelve la agrupación a la que pertenece el estado.
func (s RequestStatus) Bucket() Bucket {
	switch s {
	case StatusSubmitted:
		return BucketIncoming
	case StatusPending, StatusUnderReview, StatusAwaitingApproval:
		return BucketPending
	case StatusApproved, StatusDelivered, StatusCompleted:
		return BucketCompleted
	case StatusRejected, StatusCancelled, StatusReturned:
		return BucketRejected
	case StatusArchived:
		return BucketArchived
	}
	return ""
}

// IsIncoming indica si la solicitud aún espera decisión (aprobación o rechazo).
func (s RequestStatus) IsIncoming() bool {
	switch s {
	case StatusSubmitted, StatusPending, StatusUnderReview, StatusAwaitingApproval:
		return true
	}
	return false
}

// IsTerminal indica estados sin transiciones automáticas de salida
// (completed aún puede archivarse).
func (s RequestStatus) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCancelled, StatusReturned, StatusCompleted:
		return true
	}
	return false
}

// Supplier datos del proveedor copiados en la solicitud.
type Supplier struct {
	Name          string
	Address       string
	TIN           string
	ContactPerson string
	ContactNumber string
	Email         string
}

// ProcurementDetails datos de adquisición y entrega.
type ProcurementDetails struct {
	PONumber          string
	Department        string
	ModeOfProcurement string
	PlaceOfDelivery   string
	DeliveryDate      string
	DeliveryTerm      string
	PaymentTerm       string
	Purpose           string
}

// Funding datos de financiamiento revisados en el último paso.
type Funding struct {
	FundCluster    string
	FundsAvailable string
	ORSBURSNumber  string
	ORSBURSDate    string
	Remarks        string
}

// Request solicitud de compra finalizada.
type Request struct {
	ID              string // REQ-###
	PONumber        string // YYYY-MM-###
	Supplier        Supplier
	Procurement     ProcurementDetails
	Funding         Funding
	Department      string
	Items           []LineItem
	TotalAmount     decimal.Decimal
	Status          RequestStatus
	RequestedBy     string
	RequestedDate   time.Time
	ApprovedBy      string
	ApprovedDate    *time.Time
	RejectedBy      string
	RejectedDate    *time.Time
	RejectionReason string
	ArchivedBy      string
	ArchivedDate    *time.Time
	UpdatedAt       time.Time
}

// Bucket agrupación actual de la solicitud.
func (r *Request) Bucket() Bucket {
	return r.Status.Bucket()
}

// Clone copia profunda de la solicitud (ítems incluidos).
func (r *Request) Clone() *Request {
	if r == nil {
		return nil
	}
	c := *r
	c.Items = CloneItems(r.Items)
	return &c
}
