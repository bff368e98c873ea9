package procurement

import (
	"context"

	"github.com/jhoicas/supply-tracker/internal/domain/entity"
	"github.com/jhoicas/supply-tracker/internal/domain/repository"
)

// TxRunner ejecuta fn como un turno atómico sobre solicitudes y borradores.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		requestRepo repository.RequestRepository,
		draftRepo repository.DraftRepository,
	) error) error
}

// PurchaseOrderPDFGenerator genera la orden de compra en PDF de una solicitud.
type PurchaseOrderPDFGenerator interface {
	GeneratePurchaseOrder(req *entity.Request) ([]byte, error)
}
