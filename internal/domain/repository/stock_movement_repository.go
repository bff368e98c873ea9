package repository

import "github.com/jhoicas/supply-tracker/internal/domain/entity"

// StockMovementRepository guarda la versión actual de cada movimiento por TransactionID,
// para poder entregar la versión anterior al editar o eliminar.
type StockMovementRepository interface {
	Get(transactionID string) (*entity.StockMovement, bool)
	Put(movement *entity.StockMovement)
	Delete(transactionID string)
}
