package inventory

import (
	"context"

	"github.com/jhoicas/supply-tracker/internal/domain/repository"
)

// TxRunner ejecuta fn como un turno atómico, pasando los repositorios atados a ese turno.
// Si fn devuelve error no se aplica ningún cambio.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		alertRepo repository.AlertSetRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
