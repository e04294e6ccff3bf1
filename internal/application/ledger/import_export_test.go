package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// El import fija cantidades absolutas y asienta ADJUSTMENT con la magnitud del delta.
func TestBulkImport_FijaCantidadesYAsientaADJUSTMENT(t *testing.T) {
	uc, state, _ := newTestLedger()
	state.setStock(prodA, locA, 10, 0)

	result, err := uc.BulkImport(context.Background(), testUserID, []dto.StockImportRow{
		{SKU: "SKU-001", LocationCode: "BODEGA", Quantity: 4},  // 10 -> 4: disminuyó 6
		{SKU: "SKU-001", LocationCode: "TIENDA", Quantity: 15}, // fila nueva: aumentó 15
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Success)
	assert.Equal(t, 0, result.Failed)

	s, _ := state.getStock(prodA, locA)
	assert.Equal(t, int64(4), s.Quantity)
	s, _ = state.getStock(prodA, locB)
	assert.Equal(t, int64(15), s.Quantity)

	require.Len(t, state.movements, 2)
	for _, m := range state.movements {
		assert.Equal(t, entity.MovementTypeADJUSTMENT, m.MovementType)
	}
	assert.Equal(t, int64(6), state.movements[0].Quantity)
	assert.Contains(t, state.movements[0].Reason, "disminuyó")
	assert.Equal(t, int64(15), state.movements[1].Quantity)
	assert.Contains(t, state.movements[1].Reason, "aumentó")
}

// Una fila sin cambio (cantidad igual a la actual) no genera asiento.
func TestBulkImport_FilaSinCambioNoAsienta(t *testing.T) {
	uc, state, _ := newTestLedger()
	state.setStock(prodA, locA, 10, 0)

	result, err := uc.BulkImport(context.Background(), testUserID, []dto.StockImportRow{
		{SKU: "SKU-001", LocationCode: "BODEGA", Quantity: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Success)
	assert.Empty(t, state.movements, "delta cero no asienta en el journal")
}

// Filas malas se reportan con su número y el lote continúa con las demás.
func TestBulkImport_FilasMalasNoAbortanElLote(t *testing.T) {
	uc, state, _ := newTestLedger()

	result, err := uc.BulkImport(context.Background(), testUserID, []dto.StockImportRow{
		{SKU: "SKU-001", LocationCode: "BODEGA", Quantity: 5}, // fila 2: ok
		{SKU: "NO-EXISTE", LocationCode: "BODEGA", Quantity: 5}, // fila 3: producto
		{SKU: "SKU-001", LocationCode: "NADA", Quantity: 5},     // fila 4: ubicación
		{SKU: "", LocationCode: "BODEGA", Quantity: 5},          // fila 5: campos
		{SKU: "SKU-001", LocationCode: "BODEGA", Quantity: -1},  // fila 6: cantidad
		{SKU: "SKU-001", LocationCode: "TIENDA", Quantity: 7},   // fila 7: ok
	})
	require.NoError(t, err, "el lote nunca aborta por una fila mala")
	assert.Equal(t, 2, result.Success)
	assert.Equal(t, 4, result.Failed)
	require.Len(t, result.Errors, 4)

	// los números de fila cuentan el header del archivo (la primera fila de datos es la 2)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Error, "producto no encontrado")
	assert.Equal(t, 4, result.Errors[1].Row)
	assert.Contains(t, result.Errors[1].Error, "no encontrado")
	assert.Equal(t, 5, result.Errors[2].Row)
	assert.Equal(t, 6, result.Errors[3].Row)
	assert.Contains(t, result.Errors[3].Error, "cantidad inválida")

	s, _ := state.getStock(prodA, locA)
	assert.Equal(t, int64(5), s.Quantity)
	s, _ = state.getStock(prodA, locB)
	assert.Equal(t, int64(7), s.Quantity)
}

// El SKU y el código de ubicación se resuelven sin distinguir mayúsculas.
func TestBulkImport_ResuelveSKUYCodigoCaseInsensitive(t *testing.T) {
	uc, state, _ := newTestLedger()

	result, err := uc.BulkImport(context.Background(), testUserID, []dto.StockImportRow{
		{SKU: "sku-001", LocationCode: "bodega", Quantity: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Success)

	s, ok := state.getStock(prodA, locA)
	require.True(t, ok)
	assert.Equal(t, int64(3), s.Quantity)
}

// El import no toca las reservas existentes.
func TestBulkImport_PreservaReservas(t *testing.T) {
	uc, state, _ := newTestLedger()
	state.setStock(prodA, locA, 10, 4)

	_, err := uc.BulkImport(context.Background(), testUserID, []dto.StockImportRow{
		{SKU: "SKU-001", LocationCode: "BODEGA", Quantity: 20},
	})
	require.NoError(t, err)

	s, _ := state.getStock(prodA, locA)
	assert.Equal(t, int64(20), s.Quantity)
	assert.Equal(t, int64(4), s.ReservedQuantity, "el import no toca reservas")
}

// Fijar una cantidad por debajo del reservado violaría el invariante: la fila
// falla y se reporta, el resto del lote sigue.
func TestBulkImport_CantidadBajoReservadoFallaLaFila(t *testing.T) {
	uc, state, _ := newTestLedger()
	state.setStock(prodA, locA, 10, 6)

	result, err := uc.BulkImport(context.Background(), testUserID, []dto.StockImportRow{
		{SKU: "SKU-001", LocationCode: "BODEGA", Quantity: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)

	s, _ := state.getStock(prodA, locA)
	assert.Equal(t, int64(10), s.Quantity, "la fila fallida no cambia el stock")
}

// El export devuelve el estado completo del filtro, sin paginación.
func TestExportStocks_EstadoCompletoSinPaginar(t *testing.T) {
	uc, state, _ := newTestLedger()
	state.setStock(prodA, locA, 10, 2)
	state.setStock(prodA, locB, 5, 0)
	state.setStock(prodA, locN, -3, 0)

	rows, err := uc.ExportStocks(context.Background(), testUserID, repository.StockFilters{})
	require.NoError(t, err)
	assert.Len(t, rows, 3, "el export ignora la paginación")

	rows, err = uc.ExportStocks(context.Background(), testUserID,
		repository.StockFilters{LocationID: locA, Page: 9, PageSize: 1})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "SKU-001", rows[0].ProductSKU)
	assert.Equal(t, "BODEGA", rows[0].LocationCode)
}
