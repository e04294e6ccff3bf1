package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// MovementFilters facetas de consulta sobre el ledger de movimientos.
type MovementFilters struct {
	ProductID      string
	LocationID     string
	FromLocationID string
	ToLocationID   string
	MovementType   string
	FromDate       *time.Time
	ToDate         *time.Time
	Page           int
	PageSize       int
}

// InventoryMovementRepository define el puerto de persistencia del ledger.
// Solo append y lectura: los movimientos jamás se modifican ni se eliminan.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	GetByID(userID, id string) (*entity.InventoryMovement, error)
	List(userID string, filters MovementFilters) ([]*entity.MovementWithDetails, int, error)
}
