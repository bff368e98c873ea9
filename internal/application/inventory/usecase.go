package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/supply-tracker/internal/application/dto"
	"github.com/jhoicas/supply-tracker/internal/application/notify"
	"github.com/jhoicas/supply-tracker/internal/domain"
	"github.com/jhoicas/supply-tracker/internal/domain/entity"
	"github.com/jhoicas/supply-tracker/internal/domain/event"
	"github.com/jhoicas/supply-tracker/internal/domain/inventory"
	"github.com/jhoicas/supply-tracker/internal/domain/repository"
)

// StockLedgerUseCase registra entradas y salidas de stock y evalúa alertas de stock bajo.
// Guarda la versión vigente de cada movimiento para entregarla al libro al editar o eliminar.
type StockLedgerUseCase struct {
	txRunner  TxRunner
	publisher notify.Publisher
	threshold int
	now       func() time.Time
	newTxID   func() string
}

// NewStockLedgerUseCase construye el caso de uso. threshold es el umbral de stock bajo por defecto.
func NewStockLedgerUseCase(txRunner TxRunner, publisher notify.Publisher, threshold int) *StockLedgerUseCase {
	return &StockLedgerUseCase{
		txRunner:  txRunner,
		publisher: publisher,
		threshold: threshold,
		now:       time.Now,
		newTxID:   func() string { return uuid.New().String() },
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *StockLedgerUseCase) WithClock(now func() time.Time) *StockLedgerUseCase {
	uc.now = now
	return uc
}

// CreateStockIn registra una entrada nueva.
func (uc *StockLedgerUseCase) CreateStockIn(ctx context.Context, userID string, in dto.StockMovementRequest) (*dto.StockMovementResponse, error) {
	return uc.record(ctx, entity.MovementTypeIn, userID, "", in)
}

// UpdateStockIn reemplaza una entrada existente; el producto recibe solo la diferencia.
func (uc *StockLedgerUseCase) UpdateStockIn(ctx context.Context, userID, txID string, in dto.StockMovementRequest) (*dto.StockMovementResponse, error) {
	return uc.record(ctx, entity.MovementTypeIn, userID, txID, in)
}

// DeleteStockIn elimina una entrada y revierte su cantidad.
func (uc *StockLedgerUseCase) DeleteStockIn(ctx context.Context, userID, txID string) (*dto.StockMovementResponse, error) {
	return uc.remove(ctx, entity.MovementTypeIn, userID, txID)
}

// CreateStockOut registra una salida nueva.
func (uc *StockLedgerUseCase) CreateStockOut(ctx context.Context, userID string, in dto.StockMovementRequest) (*dto.StockMovementResponse, error) {
	return uc.record(ctx, entity.MovementTypeOut, userID, "", in)
}

// UpdateStockOut reemplaza una salida existente.
func (uc *StockLedgerUseCase) UpdateStockOut(ctx context.Context, userID, txID string, in dto.StockMovementRequest) (*dto.StockMovementResponse, error) {
	return uc.record(ctx, entity.MovementTypeOut, userID, txID, in)
}

// DeleteStockOut elimina una salida y devuelve su cantidad al producto.
func (uc *StockLedgerUseCase) DeleteStockOut(ctx context.Context, userID, txID string) (*dto.StockMovementResponse, error) {
	return uc.remove(ctx, entity.MovementTypeOut, userID, txID)
}

// record crea (txID vacío) o reemplaza un movimiento.
func (uc *StockLedgerUseCase) record(ctx context.Context, typ, userID, txID string, in dto.StockMovementRequest) (*dto.StockMovementResponse, error) {
	sku := entity.NormalizeSKU(in.SKU)
	if sku == "" || in.Quantity < 0 || in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var (
		out    *dto.StockMovementResponse
		events []event.Event
	)
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, alertRepo repository.AlertSetRepository, movementRepo repository.StockMovementRepository) error {
		now := uc.now()
		var prev *entity.StockMovement
		if txID != "" {
			p, ok := movementRepo.Get(txID)
			if !ok || p.Type != typ {
				return domain.ErrMovementNotFound
			}
			prev = p
		}
		prior := entity.PriorQuantity(prev)

		mov := entity.StockMovement{
			TransactionID: txID,
			Type:          typ,
			SKU:           sku,
			Quantity:      in.Quantity,
			Reference:     strings.TrimSpace(in.Reference),
			Notes:         strings.TrimSpace(in.Notes),
			CreatedBy:     userID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if typ == entity.MovementTypeIn {
			mov.UnitCost = in.UnitCost
		}
		if prev == nil {
			mov.TransactionID = uc.newTxID()
		} else {
			mov.CreatedBy = prev.CreatedBy
			mov.CreatedAt = prev.CreatedAt
		}
		if prev != nil && prev.SKU != sku {
			// Cambio de SKU: se revierte la versión anterior sobre su producto y la nueva
			// se aplica completa.
			prevResult := uc.reverse(inventory.NewLedger(productRepo, alertRepo, uc.threshold, uc.clock(now)), *prev)
			events = append(events, prevResult.Events...)
			prev = nil
		}
		if prev != nil && !prev.Applied {
			// La versión anterior nunca tocó el producto: la nueva se aplica completa.
			prev = nil
		}

		ledger := inventory.NewLedger(productRepo, alertRepo, uc.threshold, uc.clock(now))
		var res inventory.Result
		if typ == entity.MovementTypeIn {
			res = ledger.ApplyStockIn(mov, prev)
		} else {
			res = ledger.ApplyStockOut(mov, prev)
		}
		mov.Applied = res.Applied
		movementRepo.Put(&mov)

		action := activityAction(typ, txID == "")
		meta := movementMeta(mov, userID, res)
		if txID != "" {
			meta["previousQuantity"] = prior
		}
		events = append(events, event.NewActivity(action, now, meta))
		events = append(events, res.Events...)
		out = toMovementResponse(mov, res, alertRepo.Has(sku))
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.publisher.Publish(events...)
	return out, nil
}

func (uc *StockLedgerUseCase) remove(ctx context.Context, typ, userID, txID string) (*dto.StockMovementResponse, error) {
	var (
		out    *dto.StockMovementResponse
		events []event.Event
	)
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, alertRepo repository.AlertSetRepository, movementRepo repository.StockMovementRepository) error {
		mov, ok := movementRepo.Get(txID)
		if !ok || mov.Type != typ {
			return domain.ErrMovementNotFound
		}
		now := uc.now()
		res := uc.reverse(inventory.NewLedger(productRepo, alertRepo, uc.threshold, uc.clock(now)), *mov)
		movementRepo.Delete(txID)

		action := event.ActionStockInDeleted
		if typ == entity.MovementTypeOut {
			action = event.ActionStockOutDeleted
		}
		events = append(events, event.NewActivity(action, now, movementMeta(*mov, userID, res)))
		events = append(events, res.Events...)
		out = toMovementResponse(*mov, res, alertRepo.Has(mov.SKU))
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.publisher.Publish(events...)
	return out, nil
}

// reverse deshace el efecto de mov. Un movimiento que no se aplicó no tiene nada que deshacer.
func (uc *StockLedgerUseCase) reverse(ledger *inventory.Ledger, mov entity.StockMovement) inventory.Result {
	if !mov.Applied {
		return inventory.Result{}
	}
	if mov.Type == entity.MovementTypeIn {
		return ledger.ReverseStockIn(mov)
	}
	return ledger.ReverseStockOut(mov)
}

// EvaluateLowStock reevalúa un SKU contra su umbral sin modificar la cantidad.
func (uc *StockLedgerUseCase) EvaluateLowStock(ctx context.Context, sku string) (*dto.LowStockEvaluationResponse, error) {
	var (
		out    *dto.LowStockEvaluationResponse
		events []event.Event
	)
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, alertRepo repository.AlertSetRepository, _ repository.StockMovementRepository) error {
		ledger := inventory.NewLedger(productRepo, alertRepo, uc.threshold, uc.now)
		res, ok := ledger.Evaluate(sku)
		if !ok {
			return domain.ErrProductNotFound
		}
		events = res.Events
		out = &dto.LowStockEvaluationResponse{
			SKU:       res.Product.SKU,
			Outcome:   res.LowStock.String(),
			Threshold: res.Product.Threshold(uc.threshold),
			Product:   ToProductResponse(res.Product, alertRepo.Has(res.Product.SKU)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.publisher.Publish(events...)
	return out, nil
}

// ListLowStock devuelve los SKUs con alerta activa.
func (uc *StockLedgerUseCase) ListLowStock(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	var out []dto.LowStockItemDTO
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, alertRepo repository.AlertSetRepository, _ repository.StockMovementRepository) error {
		skus := alertRepo.List()
		out = make([]dto.LowStockItemDTO, 0, len(skus))
		for _, sku := range skus {
			p, ok := productRepo.Get(sku)
			if !ok {
				continue
			}
			severity := event.SeverityWarning
			if p.Quantity == 0 {
				severity = event.SeverityDanger
			}
			out = append(out, dto.LowStockItemDTO{
				SKU:       p.SKU,
				Name:      p.Name,
				Quantity:  p.Quantity,
				Threshold: p.Threshold(uc.threshold),
				Severity:  severity,
			})
		}
		return nil
	})
	return out, err
}

func (uc *StockLedgerUseCase) clock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

func activityAction(typ string, created bool) string {
	switch {
	case typ == entity.MovementTypeIn && created:
		return event.ActionStockInCreated
	case typ == entity.MovementTypeIn:
		return event.ActionStockInUpdated
	case created:
		return event.ActionStockOutCreated
	default:
		return event.ActionStockOutUpdated
	}
}

func movementMeta(mov entity.StockMovement, actor string, res inventory.Result) map[string]any {
	meta := map[string]any{
		"transactionId": mov.TransactionID,
		"sku":           mov.SKU,
		"quantity":      mov.Quantity,
		"applied":       res.Applied,
		"delta":         res.Delta,
		"actor":         actor,
	}
	if mov.Type == entity.MovementTypeIn {
		meta["unitCost"] = mov.UnitCost.String()
	}
	if mov.Reference != "" {
		meta["reference"] = mov.Reference
	}
	return meta
}

func toMovementResponse(mov entity.StockMovement, res inventory.Result, flagged bool) *dto.StockMovementResponse {
	out := &dto.StockMovementResponse{
		TransactionID: mov.TransactionID,
		Type:          mov.Type,
		SKU:           mov.SKU,
		Quantity:      mov.Quantity,
		UnitCost:      mov.UnitCost,
		Reference:     mov.Reference,
		Notes:         mov.Notes,
		CreatedBy:     mov.CreatedBy,
		CreatedAt:     mov.CreatedAt,
		UpdatedAt:     mov.UpdatedAt,
		Applied:       res.Applied,
		Delta:         res.Delta,
		LowStock:      res.LowStock.String(),
	}
	if res.Product != nil {
		p := ToProductResponse(res.Product, flagged)
		out.Product = &p
	}
	return out
}

// ToProductResponse mapea un producto a su DTO.
func ToProductResponse(p *entity.Product, lowStock bool) dto.ProductResponse {
	return dto.ProductResponse{
		SKU:              p.SKU,
		Name:             p.Name,
		Description:      p.Description,
		Category:         p.Category,
		Unit:             p.Unit,
		Quantity:         p.Quantity,
		UnitCost:         p.UnitCost,
		TotalValue:       p.TotalValue,
		ReorderThreshold: p.ReorderThreshold,
		LowStock:         lowStock,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
