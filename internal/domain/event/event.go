// Package event define los eventos de dominio que devuelven las operaciones del núcleo.
// El núcleo no entrega los eventos; lo hace un despachador externo después del commit.
package event

import "time"

// Acciones registradas en la bitácora de actividad.
const (
	ActionStockInCreated   = "stock_in.created"
	ActionStockInUpdated   = "stock_in.updated"
	ActionStockInDeleted   = "stock_in.deleted"
	ActionStockOutCreated  = "stock_out.created"
	ActionStockOutUpdated  = "stock_out.updated"
	ActionStockOutDeleted  = "stock_out.deleted"
	ActionRequestCreated   = "request.created"
	ActionRequestApproved  = "request.approved"
	ActionRequestRejected  = "request.rejected"
	ActionRequestArchived  = "request.archived"
	ActionRequestDeleted   = "request.deleted"
	ActionRequestStatus    = "request.status_changed"
	ActionRequestItemsEdit = "request.items_changed"
)

// Severidades de alerta.
const (
	SeverityWarning = "warning"
	SeverityDanger  = "danger"
)

// Event evento de dominio.
type Event interface {
	EventName() string
}

// Activity registro para la bitácora (ActivityNotifier).
type Activity struct {
	Action     string
	Meta       map[string]any
	OccurredAt time.Time
}

// EventName implementa Event.
func (a Activity) EventName() string { return a.Action }

// LowStockAlert alerta recién levantada para un SKU (AlertSink).
type LowStockAlert struct {
	SKU        string
	Title      string
	Message    string
	Severity   string
	Icon       string
	Quantity   int
	Threshold  int
	OccurredAt time.Time
}

// EventName implementa Event.
func (LowStockAlert) EventName() string { return "low_stock.raised" }

// NewActivity construye un evento de actividad con fecha.
func NewActivity(action string, at time.Time, meta map[string]any) Activity {
	if meta == nil {
		meta = map[string]any{}
	}
	return Activity{Action: action, Meta: meta, OccurredAt: at}
}
