package procurement

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/supply-tracker/internal/application/dto"
	"github.com/jhoicas/supply-tracker/internal/application/notify"
	"github.com/jhoicas/supply-tracker/internal/domain"
	"github.com/jhoicas/supply-tracker/internal/domain/entity"
	"github.com/jhoicas/supply-tracker/internal/domain/procurement"
	"github.com/jhoicas/supply-tracker/internal/domain/repository"
)

var buckets = map[string]entity.Bucket{
	string(entity.BucketIncoming):  entity.BucketIncoming,
	string(entity.BucketPending):   entity.BucketPending,
	string(entity.BucketCompleted): entity.BucketCompleted,
	string(entity.BucketRejected):  entity.BucketRejected,
	string(entity.BucketArchived):  entity.BucketArchived,
}

// RequestUseCase consulta y ciclo de vida de solicitudes ya enviadas.
type RequestUseCase struct {
	txRunner  TxRunner
	publisher notify.Publisher
	generator PurchaseOrderPDFGenerator
	now       func() time.Time
}

// NewRequestUseCase construye el caso de uso. generator puede ser nil (sin exportación PDF).
func NewRequestUseCase(txRunner TxRunner, publisher notify.Publisher, generator PurchaseOrderPDFGenerator) *RequestUseCase {
	return &RequestUseCase{txRunner: txRunner, publisher: publisher, generator: generator, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *RequestUseCase) WithClock(now func() time.Time) *RequestUseCase {
	uc.now = now
	return uc
}

// List devuelve las solicitudes de un bucket (vacío = todas), ordenadas por ID.
func (uc *RequestUseCase) List(ctx context.Context, bucket string, page dto.PageRequest) (*dto.RequestListResponse, error) {
	var want entity.Bucket
	if bucket != "" {
		b, ok := buckets[bucket]
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		want = b
	}
	page.DefaultPage()

	out := &dto.RequestListResponse{Bucket: bucket, Items: []dto.RequestResponse{}}
	err := uc.txRunner.Run(ctx, func(requestRepo repository.RequestRepository, _ repository.DraftRepository) error {
		var matched []*entity.Request
		for _, r := range requestRepo.List() {
			if want == "" || r.Bucket() == want {
				matched = append(matched, r)
			}
		}
		start, end := page.Window(len(matched))
		for _, r := range matched[start:end] {
			out.Items = append(out.Items, toRequestResponse(r))
		}
		out.Page = dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(matched)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get obtiene una solicitud por ID.
func (uc *RequestUseCase) Get(ctx context.Context, id string) (*dto.RequestResponse, error) {
	var out dto.RequestResponse
	err := uc.txRunner.Run(ctx, func(requestRepo repository.RequestRepository, _ repository.DraftRepository) error {
		r, ok := requestRepo.Get(id)
		if !ok {
			return domain.ErrRequestNotFound
		}
		out = toRequestResponse(r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Approve aprueba una solicitud entrante.
func (uc *RequestUseCase) Approve(ctx context.Context, actor, id string) (*dto.RequestResponse, error) {
	return uc.apply(ctx, func(book procurement.RequestBook, now time.Time) (procurement.Outcome, error) {
		return procurement.Approve(book, id, actor, now)
	})
}

// Reject rechaza una solicitud entrante; requiere confirm.
func (uc *RequestUseCase) Reject(ctx context.Context, actor, id string, in dto.RejectRequest) (*dto.RequestResponse, error) {
	return uc.apply(ctx, func(book procurement.RequestBook, now time.Time) (procurement.Outcome, error) {
		return procurement.Reject(book, id, actor, in.Reason, in.Confirm, now)
	})
}

// Archive archiva una solicitud aprobada, entregada o completada; requiere confirm.
func (uc *RequestUseCase) Archive(ctx context.Context, actor, id string, confirm bool) (*dto.RequestResponse, error) {
	return uc.apply(ctx, func(book procurement.RequestBook, now time.Time) (procurement.Outcome, error) {
		return procurement.Archive(book, id, actor, confirm, now)
	})
}

// Delete elimina la solicitud; requiere confirm.
func (uc *RequestUseCase) Delete(ctx context.Context, actor, id string, confirm bool) error {
	_, err := uc.apply(ctx, func(book procurement.RequestBook, now time.Time) (procurement.Outcome, error) {
		return procurement.Delete(book, id, actor, confirm, now)
	})
	return err
}

// Transition aplica una transición de seguimiento (revisión, entrega, cancelación, devolución).
func (uc *RequestUseCase) Transition(ctx context.Context, actor, id string, in dto.TransitionRequest) (*dto.RequestResponse, error) {
	to, ok := entity.ParseRequestStatus(in.Status)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	return uc.apply(ctx, func(book procurement.RequestBook, now time.Time) (procurement.Outcome, error) {
		return procurement.Transition(book, id, to, actor, now)
	})
}

// AddItem agrega un ítem en cero a una solicitud entrante.
func (uc *RequestUseCase) AddItem(ctx context.Context, actor, id string) (*dto.ItemsResponse, error) {
	return uc.editItems(ctx, actor, id, nil, func(items []entity.LineItem) ([]entity.LineItem, bool, error) {
		out, _ := procurement.AddItem(items)
		return out, true, nil
	})
}

// UpdateItem asigna un campo de un ítem de una solicitud entrante y recalcula el total.
func (uc *RequestUseCase) UpdateItem(ctx context.Context, actor, id, itemID string, in dto.UpdateItemRequest) (*dto.ItemsResponse, error) {
	return uc.editItems(ctx, actor, id, nil, func(items []entity.LineItem) ([]entity.LineItem, bool, error) {
		if err := procurement.UpdateItem(items, itemID, procurement.ItemField(in.Field), in.Value); err != nil {
			return nil, false, err
		}
		return items, true, nil
	})
}

// RemoveItem quita un ítem de una solicitud entrante; el último no se quita (removed=false).
func (uc *RequestUseCase) RemoveItem(ctx context.Context, actor, id, itemID string) (*dto.ItemsResponse, error) {
	var removed bool
	return uc.editItems(ctx, actor, id, &removed, func(items []entity.LineItem) ([]entity.LineItem, bool, error) {
		var out []entity.LineItem
		out, removed = procurement.RemoveItem(items, itemID)
		return out, removed, nil
	})
}

// NextRequestID sugiere el próximo ID de solicitud.
func (uc *RequestUseCase) NextRequestID(ctx context.Context) (string, error) {
	var id string
	err := uc.txRunner.Run(ctx, func(requestRepo repository.RequestRepository, _ repository.DraftRepository) error {
		id = procurement.NextRequestID(requestRepo.List())
		return nil
	})
	return id, err
}

// NextPONumber sugiere el próximo número de orden de compra del mes actual.
func (uc *RequestUseCase) NextPONumber(ctx context.Context) (string, error) {
	var po string
	err := uc.txRunner.Run(ctx, func(requestRepo repository.RequestRepository, _ repository.DraftRepository) error {
		po = procurement.NextPONumber(requestRepo.List(), uc.now())
		return nil
	})
	return po, err
}

// PurchaseOrderPDF genera la orden de compra de la solicitud.
// Retorna (pdfBytes, filename, nil) o domain.ErrRequestNotFound si no existe.
func (uc *RequestUseCase) PurchaseOrderPDF(ctx context.Context, id string) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("pdf: generador no configurado")
	}
	var req *entity.Request
	err := uc.txRunner.Run(ctx, func(requestRepo repository.RequestRepository, _ repository.DraftRepository) error {
		r, ok := requestRepo.Get(id)
		if !ok {
			return domain.ErrRequestNotFound
		}
		req = r
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GeneratePurchaseOrder(req)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar orden de compra: %w", err)
	}
	return pdfBytes, fmt.Sprintf("orden-compra-%s.pdf", req.PONumber), nil
}

func (uc *RequestUseCase) apply(ctx context.Context, op func(book procurement.RequestBook, now time.Time) (procurement.Outcome, error)) (*dto.RequestResponse, error) {
	var out procurement.Outcome
	err := uc.txRunner.Run(ctx, func(requestRepo repository.RequestRepository, _ repository.DraftRepository) error {
		var err error
		out, err = op(requestRepo, uc.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.publisher.Publish(out.Events...)
	resp := toRequestResponse(out.Request)
	return &resp, nil
}

func (uc *RequestUseCase) editItems(ctx context.Context, actor, id string, removed *bool, edit procurement.ItemsEdit) (*dto.ItemsResponse, error) {
	var out procurement.Outcome
	err := uc.txRunner.Run(ctx, func(requestRepo repository.RequestRepository, _ repository.DraftRepository) error {
		var err error
		out, err = procurement.EditRequestItems(requestRepo, id, actor, uc.now(), edit)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.publisher.Publish(out.Events...)
	return toItemsResponse(out.Request.Items, removed), nil
}
