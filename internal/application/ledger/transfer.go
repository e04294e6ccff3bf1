package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	stockrules "github.com/jhoicas/Almacen-api/internal/domain/stock"
)

// TransferResult las dos filas de stock después de un traslado exitoso.
type TransferResult struct {
	From *entity.Stock
	To   *entity.Stock
}

// Transfer mueve cantidad entre dos ubicaciones para un producto como unidad
// todo-o-nada: débito en origen, crédito en destino (creándolo si no existe) y un
// único asiento TRANSFER, los tres efectos en la misma transacción. Solo se traslada
// stock disponible (quantity - reserved); las reservas quedan en el origen.
func (uc *StockLedgerUseCase) Transfer(ctx context.Context, userID string, in dto.TransferStockRequest) (*TransferResult, error) {
	if in.ProductID == "" || in.FromLocationID == "" || in.ToLocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.FromLocationID == in.ToLocationID || in.Quantity < 1 || !validReason(in.Reason) {
		return nil, domain.ErrInvalidInput
	}

	// Ambas ubicaciones deben existir para el usuario y estar activas.
	fromLoc, err := uc.locationRepo.GetByID(userID, in.FromLocationID)
	if err != nil {
		return nil, err
	}
	toLoc, err := uc.locationRepo.GetByID(userID, in.ToLocationID)
	if err != nil {
		return nil, err
	}
	if fromLoc == nil || !fromLoc.IsActive || toLoc == nil || !toLoc.IsActive {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var result *TransferResult
	err = uc.runWithRetry(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		// Bloquea la fila origen; sin fila no hay nada que trasladar.
		src, err := stockRepo.GetForUpdate(userID, in.ProductID, in.FromLocationID)
		if err != nil {
			return err
		}
		if src == nil {
			return fmt.Errorf("%w: sin stock del producto en la ubicación origen", domain.ErrNotFound)
		}
		available := stockrules.Available(src.Quantity, src.ReservedQuantity)
		if available < in.Quantity {
			return fmt.Errorf("%w: disponible %d, solicitado %d",
				domain.ErrInsufficientStock, available, in.Quantity)
		}

		// Materializa y bloquea el destino; orden origen→destino, un deadlock con el
		// traslado inverso lo resuelve PostgreSQL y se reintenta como ErrTxConflict.
		if err := stockRepo.EnsureRow(userID, in.ProductID, in.ToLocationID); err != nil {
			return err
		}
		dst, err := stockRepo.GetForUpdate(userID, in.ProductID, in.ToLocationID)
		if err != nil {
			return err
		}

		src.Quantity -= in.Quantity
		dst.Quantity += in.Quantity
		src.UpdatedAt = now
		dst.UpdatedAt = now
		if err := stockrules.CheckInvariants(src.Quantity, src.ReservedQuantity, fromLoc.AllowNegativeStock); err != nil {
			return err
		}
		if err := stockrules.CheckInvariants(dst.Quantity, dst.ReservedQuantity, toLoc.AllowNegativeStock); err != nil {
			return err
		}
		if err := stockRepo.Upsert(src); err != nil {
			return err
		}
		if err := stockRepo.Upsert(dst); err != nil {
			return err
		}

		mov := &entity.InventoryMovement{
			UserID:         userID,
			ProductID:      in.ProductID,
			FromLocationID: in.FromLocationID,
			ToLocationID:   in.ToLocationID,
			MovementType:   entity.MovementTypeTRANSFER,
			Quantity:       in.Quantity,
			Reason:         in.Reason,
			CreatedBy:      userID,
			CreatedAt:      now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		result = &TransferResult{From: src, To: dst}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
