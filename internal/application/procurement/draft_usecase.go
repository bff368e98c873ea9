// Package procurement orquesta el asistente de solicitudes y el ciclo de vida de las
// solicitudes sobre el store, y publica los eventos resultantes después de cada turno.
package procurement

import (
	"context"
	"time"

	"github.com/jhoicas/supply-tracker/internal/application/dto"
	"github.com/jhoicas/supply-tracker/internal/application/notify"
	"github.com/jhoicas/supply-tracker/internal/domain"
	"github.com/jhoicas/supply-tracker/internal/domain/entity"
	"github.com/jhoicas/supply-tracker/internal/domain/event"
	"github.com/jhoicas/supply-tracker/internal/domain/procurement"
	"github.com/jhoicas/supply-tracker/internal/domain/repository"
)

// DraftUseCase asistente de creación de solicitudes. Cada usuario tiene a lo sumo un borrador.
type DraftUseCase struct {
	txRunner  TxRunner
	publisher notify.Publisher
	now       func() time.Time
}

// NewDraftUseCase construye el caso de uso.
func NewDraftUseCase(txRunner TxRunner, publisher notify.Publisher) *DraftUseCase {
	return &DraftUseCase{txRunner: txRunner, publisher: publisher, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DraftUseCase) WithClock(now func() time.Time) *DraftUseCase {
	uc.now = now
	return uc
}

// Start abre un borrador nuevo en el paso de proveedor. Un borrador previo del usuario se descarta.
func (uc *DraftUseCase) Start(ctx context.Context, owner string) (*dto.DraftResponse, error) {
	if owner == "" {
		return nil, domain.ErrUnauthorized
	}
	var out *dto.DraftResponse
	err := uc.txRunner.Run(ctx, func(_ repository.RequestRepository, draftRepo repository.DraftRepository) error {
		d := procurement.StartDraft(owner, uc.now())
		draftRepo.Put(d)
		out = toDraftResponse(d)
		return nil
	})
	return out, err
}

// Current devuelve el borrador abierto del usuario.
func (uc *DraftUseCase) Current(ctx context.Context, owner string) (*dto.DraftResponse, error) {
	return uc.withDraft(ctx, owner, func(d *entity.RequestDraft) (bool, error) { return false, nil })
}

// Next guarda los campos del paso actual y avanza.
func (uc *DraftUseCase) Next(ctx context.Context, owner string, fields map[string]string) (*dto.DraftResponse, error) {
	return uc.withDraft(ctx, owner, func(d *entity.RequestDraft) (bool, error) {
		return true, procurement.Next(d, fields, uc.now())
	})
}

// Back guarda los campos del paso actual y retrocede.
func (uc *DraftUseCase) Back(ctx context.Context, owner string, fields map[string]string) (*dto.DraftResponse, error) {
	return uc.withDraft(ctx, owner, func(d *entity.RequestDraft) (bool, error) {
		procurement.Back(d, fields, uc.now())
		return true, nil
	})
}

// AddItem agrega un ítem en cero al borrador.
func (uc *DraftUseCase) AddItem(ctx context.Context, owner string) (*dto.ItemsResponse, error) {
	return uc.editItems(ctx, owner, func(d *entity.RequestDraft) (*bool, error) {
		d.Items, _ = procurement.AddItem(d.Items)
		return nil, nil
	})
}

// UpdateItem asigna un campo de un ítem del borrador.
func (uc *DraftUseCase) UpdateItem(ctx context.Context, owner, itemID string, in dto.UpdateItemRequest) (*dto.ItemsResponse, error) {
	return uc.editItems(ctx, owner, func(d *entity.RequestDraft) (*bool, error) {
		return nil, procurement.UpdateItem(d.Items, itemID, procurement.ItemField(in.Field), in.Value)
	})
}

// RemoveItem quita un ítem del borrador; el último ítem no se quita (removed=false).
func (uc *DraftUseCase) RemoveItem(ctx context.Context, owner, itemID string) (*dto.ItemsResponse, error) {
	return uc.editItems(ctx, owner, func(d *entity.RequestDraft) (*bool, error) {
		var removed bool
		d.Items, removed = procurement.RemoveItem(d.Items, itemID)
		return &removed, nil
	})
}

// Finalize convierte el borrador en una solicitud submitted y descarta el borrador.
// actor queda como requestedBy (nombre visible del usuario).
func (uc *DraftUseCase) Finalize(ctx context.Context, owner, actor string, fields map[string]string) (*dto.RequestResponse, error) {
	var (
		out    dto.RequestResponse
		events []event.Event
	)
	err := uc.txRunner.Run(ctx, func(requestRepo repository.RequestRepository, draftRepo repository.DraftRepository) error {
		d, ok := draftRepo.Get(owner)
		if !ok {
			return domain.ErrDraftNotFound
		}
		now := uc.now()
		req, err := procurement.Finalize(d, fields, requestRepo.List(), actor, now)
		if err != nil {
			return err
		}
		if _, taken := requestRepo.Get(req.ID); taken {
			return domain.ErrDuplicate
		}
		requestRepo.Put(req)
		draftRepo.Delete(owner)

		events = append(events, event.NewActivity(event.ActionRequestCreated, now, map[string]any{
			"requestId":   req.ID,
			"poNumber":    req.PONumber,
			"items":       len(req.Items),
			"totalAmount": req.TotalAmount.String(),
			"actor":       actor,
		}))
		out = toRequestResponse(req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.publisher.Publish(events...)
	return &out, nil
}

// Cancel descarta el borrador del usuario.
func (uc *DraftUseCase) Cancel(ctx context.Context, owner string) error {
	return uc.txRunner.Run(ctx, func(_ repository.RequestRepository, draftRepo repository.DraftRepository) error {
		if _, ok := draftRepo.Get(owner); !ok {
			return domain.ErrDraftNotFound
		}
		draftRepo.Delete(owner)
		return nil
	})
}

// withDraft carga el borrador, aplica fn y lo guarda si fn indica cambio y no falla.
func (uc *DraftUseCase) withDraft(ctx context.Context, owner string, fn func(d *entity.RequestDraft) (bool, error)) (*dto.DraftResponse, error) {
	var out *dto.DraftResponse
	err := uc.txRunner.Run(ctx, func(_ repository.RequestRepository, draftRepo repository.DraftRepository) error {
		d, ok := draftRepo.Get(owner)
		if !ok {
			return domain.ErrDraftNotFound
		}
		changed, err := fn(d)
		if err != nil {
			return err
		}
		if changed {
			draftRepo.Put(d)
		}
		out = toDraftResponse(d)
		return nil
	})
	return out, err
}

func (uc *DraftUseCase) editItems(ctx context.Context, owner string, fn func(d *entity.RequestDraft) (*bool, error)) (*dto.ItemsResponse, error) {
	var out *dto.ItemsResponse
	err := uc.txRunner.Run(ctx, func(_ repository.RequestRepository, draftRepo repository.DraftRepository) error {
		d, ok := draftRepo.Get(owner)
		if !ok {
			return domain.ErrDraftNotFound
		}
		removed, err := fn(d)
		if err != nil {
			return err
		}
		d.UpdatedAt = uc.now()
		draftRepo.Put(d)
		out = toItemsResponse(d.Items, removed)
		return nil
	})
	return out, err
}
