package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/supply-tracker/internal/domain/entity"
	"github.com/jhoicas/supply-tracker/internal/domain/event"
)

// AlertSet conjunto de SKUs con alerta de stock bajo activa.
// La pertenencia es el único mecanismo de deduplicación.
type AlertSet interface {
	Has(sku string) bool
	Add(sku string)
	Remove(sku string)
}

// Outcome resultado de evaluar un producto contra el umbral.
type Outcome int

const (
	OutcomeNone       Outcome = iota // no bajo y sin marca
	OutcomeRaised                    // alerta nueva
	OutcomeSuppressed                // sigue bajo, ya marcado
	OutcomeCleared                   // volvió a estar sobre el umbral
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRaised:
		return "raised"
	case OutcomeSuppressed:
		return "suppressed"
	case OutcomeCleared:
		return "cleared"
	}
	return "none"
}

// AlertIcon icono enviado al AlertSink.
const AlertIcon = "exclamation-triangle"

// EvaluateLowStock aplica la regla de deduplicación: isLow = quantity < threshold.
// La marca en el conjunto se actualiza siempre, antes e independientemente de la entrega.
// Solo OutcomeRaised devuelve una alerta.
func EvaluateLowStock(p *entity.Product, threshold int, set AlertSet, now time.Time) (Outcome, *event.LowStockAlert) {
	isLow := p.Quantity < threshold
	flagged := set.Has(p.SKU)

	switch {
	case isLow && !flagged:
		set.Add(p.SKU)
		return OutcomeRaised, newLowStockAlert(p, threshold, now)
	case isLow && flagged:
		return OutcomeSuppressed, nil
	case !isLow && flagged:
		set.Remove(p.SKU)
		return OutcomeCleared, nil
	}
	return OutcomeNone, nil
}

func newLowStockAlert(p *entity.Product, threshold int, now time.Time) *event.LowStockAlert {
	severity := event.SeverityWarning
	if p.Quantity == 0 {
		severity = event.SeverityDanger
	}
	name := p.Name
	if name == "" {
		name = p.SKU
	}
	return &event.LowStockAlert{
		SKU:        p.SKU,
		Title:      "Stock bajo",
		Message:    fmt.Sprintf("%s (%s) tiene %d unidades, por debajo del umbral de %d", name, p.SKU, p.Quantity, threshold),
		Severity:   severity,
		Icon:       AlertIcon,
		Quantity:   p.Quantity,
		Threshold:  threshold,
		OccurredAt: now,
	}
}
