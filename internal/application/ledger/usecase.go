package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	stockrules "github.com/jhoicas/Almacen-api/internal/domain/stock"
)

// Límites de reintento ante conflictos de concurrencia (domain.ErrTxConflict).
const (
	maxTxAttempts  = 3
	retryBaseDelay = 25 * time.Millisecond
)

// StockLedgerUseCase orquesta las operaciones del ledger (ajuste, reserva, liberación,
// traslado, import/export) de forma transaccional: bloqueo de fila (SELECT FOR UPDATE)
// por clave (usuario, producto, ubicación) y asiento en el journal en la misma tx.
type StockLedgerUseCase struct {
	txRunner     TxRunner
	stockRepo    repository.StockRepository
	locationRepo repository.LocationRepository
	productRepo  repository.ProductRepository
}

// NewStockLedgerUseCase construye el caso de uso. stockRepo/locationRepo/productRepo
// van atados al pool (lecturas); las mutaciones pasan siempre por txRunner.
func NewStockLedgerUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	locationRepo repository.LocationRepository,
	productRepo repository.ProductRepository,
) *StockLedgerUseCase {
	return &StockLedgerUseCase{
		txRunner:     txRunner,
		stockRepo:    stockRepo,
		locationRepo: locationRepo,
		productRepo:  productRepo,
	}
}

// runWithRetry ejecuta fn en transacción y reintenta con backoff exponencial si el
// commit falla por un escritor concurrente. Tras maxTxAttempts propaga ErrTxConflict.
func (uc *StockLedgerUseCase) runWithRetry(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	var err error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBaseDelay << (attempt - 1)):
			}
		}
		err = uc.txRunner.Run(ctx, fn)
		if !errors.Is(err, domain.ErrTxConflict) {
			return err
		}
	}
	return err
}

func validReason(reason string) bool {
	return len(reason) >= 3 && len(reason) <= 500
}

// Adjust aplica un delta con signo a la cantidad de un producto en una ubicación y
// asienta un movimiento IN (delta > 0) u OUT (delta < 0) con quantity = |delta|.
// Si la fila no existe se materializa en cero. Si el resultado sería negativo y la
// ubicación no lo permite, falla con ErrNegativeStock reportando el disponible actual.
func (uc *StockLedgerUseCase) Adjust(ctx context.Context, userID string, in dto.AdjustStockRequest) (*entity.Stock, error) {
	if in.ProductID == "" || in.LocationID == "" || in.Delta == 0 || !validReason(in.Reason) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(userID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	location, err := uc.locationRepo.GetByID(userID, in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var result *entity.Stock
	err = uc.runWithRetry(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		if err := stockRepo.EnsureRow(userID, in.ProductID, in.LocationID); err != nil {
			return err
		}
		s, err := stockRepo.GetForUpdate(userID, in.ProductID, in.LocationID)
		if err != nil {
			return err
		}
		newQuantity := s.Quantity + in.Delta
		if newQuantity < 0 && !location.AllowNegativeStock {
			return fmt.Errorf("%w: disponible %d", domain.ErrNegativeStock,
				stockrules.Available(s.Quantity, s.ReservedQuantity))
		}
		if err := stockrules.CheckInvariants(newQuantity, s.ReservedQuantity, location.AllowNegativeStock); err != nil {
			return err
		}
		s.Quantity = newQuantity
		s.UpdatedAt = now
		if err := stockRepo.Upsert(s); err != nil {
			return err
		}
		movementType := entity.MovementTypeIN
		quantity := in.Delta
		if in.Delta < 0 {
			movementType = entity.MovementTypeOUT
			quantity = -in.Delta
		}
		mov := &entity.InventoryMovement{
			UserID:       userID,
			ProductID:    in.ProductID,
			LocationID:   in.LocationID,
			MovementType: movementType,
			Quantity:     quantity,
			Reason:       in.Reason,
			CreatedBy:    userID,
			CreatedAt:    now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		result = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Reserve incrementa la cantidad reservada. Falla con ErrNotFound si la fila no existe
// (la reserva exige un ajuste previo) y con ErrOverReservation si reserved + amount
// supera la cantidad total. No genera asiento: las reservas no mueven stock.
func (uc *StockLedgerUseCase) Reserve(ctx context.Context, userID string, in dto.ReserveStockRequest) (*entity.Stock, error) {
	if in.ProductID == "" || in.LocationID == "" || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	var result *entity.Stock
	err := uc.runWithRetry(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.InventoryMovementRepository,
	) error {
		s, err := stockRepo.GetForUpdate(userID, in.ProductID, in.LocationID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		newReserved := s.ReservedQuantity + in.Quantity
		if newReserved > s.Quantity {
			return fmt.Errorf("%w: total %d, reservado %d, solicitado %d",
				domain.ErrOverReservation, s.Quantity, s.ReservedQuantity, in.Quantity)
		}
		s.ReservedQuantity = newReserved
		s.UpdatedAt = now
		if err := stockRepo.Upsert(s); err != nil {
			return err
		}
		result = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Unreserve libera cantidad reservada, con piso en cero: liberar de más nunca es error
// (tolerancia deliberada para liberaciones idempotentes).
func (uc *StockLedgerUseCase) Unreserve(ctx context.Context, userID string, in dto.ReserveStockRequest) (*entity.Stock, error) {
	if in.ProductID == "" || in.LocationID == "" || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	var result *entity.Stock
	err := uc.runWithRetry(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.InventoryMovementRepository,
	) error {
		s, err := stockRepo.GetForUpdate(userID, in.ProductID, in.LocationID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		newReserved := s.ReservedQuantity - in.Quantity
		if newReserved < 0 {
			newReserved = 0
		}
		s.ReservedQuantity = newReserved
		s.UpdatedAt = now
		if err := stockRepo.Upsert(s); err != nil {
			return err
		}
		result = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListStocks lista filas de stock con campos de display (lectura pura, paginada).
func (uc *StockLedgerUseCase) ListStocks(ctx context.Context, userID string, filters repository.StockFilters) ([]*entity.StockWithDetails, int, error) {
	_ = ctx
	return uc.stockRepo.ListWithDetails(userID, filters)
}

// ListStocksByProduct lista el stock de un producto en todas sus ubicaciones.
func (uc *StockLedgerUseCase) ListStocksByProduct(ctx context.Context, userID, productID string) ([]*entity.StockWithDetails, error) {
	_ = ctx
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.stockRepo.ListByProduct(userID, productID)
}
