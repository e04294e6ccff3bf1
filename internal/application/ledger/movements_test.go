package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// La consulta del journal filtra por facetas y ordena por fecha descendente.
func TestMovementQuery_FacetasYOrdenDescendente(t *testing.T) {
	state := newFakeState()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	state.movements = []entity.InventoryMovement{
		{ID: "m1", UserID: testUserID, ProductID: prodA, LocationID: locA,
			MovementType: entity.MovementTypeIN, Quantity: 10, CreatedAt: base},
		{ID: "m2", UserID: testUserID, ProductID: prodA, FromLocationID: locA, ToLocationID: locB,
			MovementType: entity.MovementTypeTRANSFER, Quantity: 4, CreatedAt: base.Add(time.Hour)},
		{ID: "m3", UserID: testUserID, ProductID: prodA, LocationID: locB,
			MovementType: entity.MovementTypeOUT, Quantity: 1, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "otro", UserID: "otro-usuario", ProductID: prodA, LocationID: locA,
			MovementType: entity.MovementTypeIN, Quantity: 99, CreatedAt: base.Add(3 * time.Hour)},
	}
	uc := ledger.NewMovementQueryUseCase(&fakeMovementRepo{state: state})

	// sin filtros: todo lo del usuario, lo más reciente primero
	rows, total, err := uc.Query(context.Background(), testUserID, repository.MovementFilters{})
	require.NoError(t, err)
	assert.Equal(t, 3, total, "los movimientos de otros usuarios no se ven")
	require.Len(t, rows, 3)
	assert.Equal(t, "m3", rows[0].ID)
	assert.Equal(t, "m1", rows[2].ID)

	// por tipo
	rows, total, err = uc.Query(context.Background(), testUserID,
		repository.MovementFilters{MovementType: entity.MovementTypeTRANSFER})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "m2", rows[0].ID)

	// una ubicación participa como directa, origen o destino
	rows, total, err = uc.Query(context.Background(), testUserID,
		repository.MovementFilters{LocationID: locA})
	require.NoError(t, err)
	assert.Equal(t, 2, total, "locA aparece como directa en m1 y como origen en m2")

	// rango de fechas
	from := base.Add(30 * time.Minute)
	rows, total, err = uc.Query(context.Background(), testUserID,
		repository.MovementFilters{FromDate: &from})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "m3", rows[0].ID)
}
