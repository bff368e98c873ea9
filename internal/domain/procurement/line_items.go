package procurement

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supply-tracker/internal/domain"
	"github.com/jhoicas/supply-tracker/internal/domain/entity"
)

// ItemField campo editable de un ítem.
type ItemField string

// Campos editables.
const (
	FieldStockPropertyNumber ItemField = "stockPropertyNumber"
	FieldUnit                ItemField = "unit"
	FieldDescription         ItemField = "description"
	FieldQuantity            ItemField = "quantity"
	FieldUnitCost            ItemField = "unitCost"
	FieldForms               ItemField = "forms"
)

// NewItemID genera el identificador de un ítem nuevo.
var NewItemID = func() string { return uuid.New().String() }

// AddItem agrega un ítem en cero con un ID nuevo. No hay límite de ítems.
func AddItem(items []entity.LineItem) ([]entity.LineItem, entity.LineItem) {
	item := entity.LineItem{
		ID:       NewItemID(),
		Quantity: decimal.Zero,
		UnitCost: decimal.Zero,
		Amount:   decimal.Zero,
		Forms:    entity.NewFormSet(),
	}
	return append(items, item), item
}

// RemoveItem quita el ítem solo si queda más de uno. Devuelve removed=false
// cuando se intenta quitar el último ítem o el ID no existe; la lista no cambia.
func RemoveItem(items []entity.LineItem, id string) ([]entity.LineItem, bool) {
	if len(items) <= 1 {
		return items, false
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return items, false
	}
	out := make([]entity.LineItem, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...), true
}

// UpdateItem asigna el campo del ítem. Si el campo es quantity o unitCost recalcula
// el Amount de ese ítem únicamente. Valores numéricos ilegibles o negativos quedan en 0.
func UpdateItem(items []entity.LineItem, id string, field ItemField, value string) error {
	idx := indexOf(items, id)
	if idx < 0 {
		return domain.ErrLineItemNotFound
	}
	item := &items[idx]
	switch field {
	case FieldStockPropertyNumber:
		item.StockPropertyNumber = strings.TrimSpace(value)
	case FieldUnit:
		item.Unit = strings.TrimSpace(value)
	case FieldDescription:
		item.Description = value
	case FieldQuantity:
		item.Quantity = parseNonNegative(value)
		item.RecalculateAmount()
	case FieldUnitCost:
		item.UnitCost = parseNonNegative(value)
		item.RecalculateAmount()
	case FieldForms:
		item.Forms = parseForms(value)
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// RecomputeTotal suma los Amount de los ítems. Pura e independiente del orden.
func RecomputeTotal(items []entity.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	return total
}

func indexOf(items []entity.LineItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func parseNonNegative(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// parseForms lee una lista separada por comas ("ics,par"); nombres desconocidos se ignoran.
func parseForms(s string) entity.FormSet {
	set := entity.NewFormSet()
	for _, part := range strings.Split(s, ",") {
		if k, ok := entity.ParseFormKind(strings.ToLower(strings.TrimSpace(part))); ok {
			set[k] = struct{}{}
		}
	}
	return set
}
