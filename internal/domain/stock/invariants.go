// Package stock define las reglas puras del ledger: cantidad disponible derivada e
// invariantes post-condición. Sin persistencia ni dependencias externas, para que el
// mismo chequeo corra idéntico en el repositorio, los casos de uso y los tests.
package stock

import (
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Available calcula la cantidad disponible (vendible/trasladable).
// Derivada siempre; nunca se persiste.
func Available(quantity, reserved int64) int64 {
	return quantity - reserved
}

// CheckInvariants valida la post-condición de una fila de stock:
//
//	0 <= reserved <= quantity, o bien
//	quantity < 0 con allowNegative y reserved == 0 (no hay reservas contra faltantes)
//
// Se invoca en toda operación mutadora antes de persistir; si falla, la transacción
// debe abortar con ErrInvariantViolation.
func CheckInvariants(quantity, reserved int64, allowNegative bool) error {
	if reserved < 0 {
		return fmt.Errorf("%w: reservedQuantity=%d < 0", domain.ErrInvariantViolation, reserved)
	}
	if quantity < 0 {
		if !allowNegative {
			return fmt.Errorf("%w: quantity=%d < 0 sin allowNegativeStock", domain.ErrInvariantViolation, quantity)
		}
		if reserved != 0 {
			return fmt.Errorf("%w: reservedQuantity=%d sobre quantity=%d negativo", domain.ErrInvariantViolation, reserved, quantity)
		}
		return nil
	}
	if reserved > quantity {
		return fmt.Errorf("%w: reservedQuantity=%d > quantity=%d", domain.ErrInvariantViolation, reserved, quantity)
	}
	return nil
}
