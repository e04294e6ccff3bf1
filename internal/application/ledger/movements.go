package ledger

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// MovementQueryUseCase consulta de solo lectura sobre el journal de movimientos.
// El journal es la única fuente de verdad de "por qué cambió esta cantidad";
// nunca se resume ni se compacta.
type MovementQueryUseCase struct {
	movRepo repository.InventoryMovementRepository
}

// NewMovementQueryUseCase construye el caso de uso con el repo atado al pool.
func NewMovementQueryUseCase(movRepo repository.InventoryMovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movRepo: movRepo}
}

// Query lista movimientos por facetas, ordenados por createdAt descendente.
func (uc *MovementQueryUseCase) Query(ctx context.Context, userID string, filters repository.MovementFilters) ([]*entity.MovementWithDetails, int, error) {
	_ = ctx
	return uc.movRepo.List(userID, filters)
}
