package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste por import masivo
	MovementTypeTRANSFER   = "TRANSFER"   // traslado entre ubicaciones
)

// InventoryMovement es una entrada inmutable del ledger de auditoría: registra cada
// evento que afecta cantidades. Una vez creada nunca se modifica ni se elimina.
// IN/OUT/ADJUSTMENT llevan LocationID; TRANSFER lleva FromLocationID y ToLocationID
// y ningún LocationID.
type InventoryMovement struct {
	ID             string
	UserID         string
	ProductID      string
	LocationID     string
	FromLocationID string
	ToLocationID   string
	MovementType   string
	Quantity       int64  // magnitud del cambio, siempre positiva
	Reason         string // 3–500 caracteres, obligatorio
	Reference      string
	CreatedBy      string
	CreatedAt      time.Time
}

// MovementWithDetails movimiento unido con campos de display para listados.
type MovementWithDetails struct {
	InventoryMovement
	ProductSKU       string
	ProductName      string
	LocationCode     string
	FromLocationCode string
	ToLocationCode   string
}
