package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/stock"
)

func TestAvailable(t *testing.T) {
	assert.Equal(t, int64(7), stock.Available(10, 3))
	assert.Equal(t, int64(0), stock.Available(5, 5))
	assert.Equal(t, int64(-3), stock.Available(-3, 0), "con backorder el disponible puede ser negativo")
}

func TestCheckInvariants(t *testing.T) {
	cases := []struct {
		name          string
		quantity      int64
		reserved      int64
		allowNegative bool
		wantErr       bool
	}{
		{"fila en cero", 0, 0, false, false},
		{"reserva parcial", 10, 3, false, false},
		{"reserva total", 10, 10, false, false},
		{"reservado mayor que total", 10, 11, false, true},
		{"reservado negativo", 10, -1, false, true},
		{"negativo sin política", -1, 0, false, true},
		{"negativo con política", -5, 0, true, false},
		{"negativo con reservas", -5, 2, true, true},
		{"negativo con reservas sin política", -5, 2, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := stock.CheckInvariants(tc.quantity, tc.reserved, tc.allowNegative)
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvariantViolation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
