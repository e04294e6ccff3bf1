package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	stockrules "github.com/jhoicas/Almacen-api/internal/domain/stock"
)

// BulkImport aplica un lote tabular de cantidades absolutas. Cada fila se resuelve
// (producto por SKU, ubicación por código, ambos case-insensitive) y se convierte en
// delta = cantidad − actual, por el mismo camino atómico que Adjust pero asentado como
// ADJUSTMENT. Una fila mala se registra y el lote continúa; las filas sin cambio
// (delta 0) no generan asiento. El procesamiento es secuencial: cada fila respeta la
// serialización por clave frente a escritores concurrentes fuera del lote.
func (uc *StockLedgerUseCase) BulkImport(ctx context.Context, userID string, rows []dto.StockImportRow) (*dto.ImportResult, error) {
	result := &dto.ImportResult{Errors: []dto.ImportRowError{}}

	for i, row := range rows {
		rowNumber := i + 2 // fila 1 es el header del archivo

		if row.SKU == "" || row.LocationCode == "" {
			result.Failed++
			result.Errors = append(result.Errors, dto.ImportRowError{
				Row: rowNumber, SKU: row.SKU,
				Error: "faltan campos requeridos (sku, location_code, quantity)",
			})
			continue
		}
		if row.Quantity < 0 {
			result.Failed++
			result.Errors = append(result.Errors, dto.ImportRowError{
				Row: rowNumber, SKU: row.SKU,
				Error: fmt.Sprintf("cantidad inválida: %d", row.Quantity),
			})
			continue
		}

		product, err := uc.productRepo.GetBySKU(userID, row.SKU)
		if err != nil {
			return nil, err
		}
		if product == nil {
			result.Failed++
			result.Errors = append(result.Errors, dto.ImportRowError{
				Row: rowNumber, SKU: row.SKU, Error: "producto no encontrado",
			})
			continue
		}
		location, err := uc.locationRepo.GetByCode(userID, strings.ToUpper(row.LocationCode))
		if err != nil {
			return nil, err
		}
		if location == nil {
			result.Failed++
			result.Errors = append(result.Errors, dto.ImportRowError{
				Row: rowNumber, SKU: row.SKU,
				Error: fmt.Sprintf("código de ubicación %q no encontrado", row.LocationCode),
			})
			continue
		}

		if err := uc.importRow(ctx, userID, product, location, row.Quantity); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, dto.ImportRowError{
				Row: rowNumber, SKU: row.SKU, Error: err.Error(),
			})
			continue
		}
		result.Success++
	}
	return result, nil
}

// importRow fija la cantidad absoluta de una fila en su propia transacción.
func (uc *StockLedgerUseCase) importRow(ctx context.Context, userID string, product *entity.Product, location *entity.Location, quantity int64) error {
	now := time.Now()
	return uc.runWithRetry(ctx, func(
		stockRepo repository.StockRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		if err := stockRepo.EnsureRow(userID, product.ID, location.ID); err != nil {
			return err
		}
		s, err := stockRepo.GetForUpdate(userID, product.ID, location.ID)
		if err != nil {
			return err
		}
		delta := quantity - s.Quantity
		if err := stockrules.CheckInvariants(quantity, s.ReservedQuantity, location.AllowNegativeStock); err != nil {
			return err
		}
		s.Quantity = quantity
		s.UpdatedAt = now
		if err := stockRepo.Upsert(s); err != nil {
			return err
		}
		if delta == 0 {
			return nil
		}
		direction := "aumentó"
		if delta < 0 {
			direction = "disminuyó"
		}
		magnitude := delta
		if magnitude < 0 {
			magnitude = -magnitude
		}
		mov := &entity.InventoryMovement{
			UserID:       userID,
			ProductID:    product.ID,
			LocationID:   location.ID,
			MovementType: entity.MovementTypeADJUSTMENT,
			Quantity:     magnitude,
			Reason:       fmt.Sprintf("import masivo: %s en %d", direction, magnitude),
			CreatedBy:    userID,
			CreatedAt:    now,
		}
		return movRepo.Create(mov)
	})
}

// ExportStocks devuelve las filas actuales con campos de display, listas para render
// tabular. Lectura pura: ningún efecto sobre el ledger.
func (uc *StockLedgerUseCase) ExportStocks(ctx context.Context, userID string, filters repository.StockFilters) ([]*entity.StockWithDetails, error) {
	_ = ctx
	filters.Page = 0
	filters.PageSize = 0 // sin paginación: el export es el estado completo del filtro
	rows, _, err := uc.stockRepo.ListWithDetails(userID, filters)
	return rows, err
}
