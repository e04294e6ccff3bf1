package entity

import "time"

// Stock representa la cantidad actual de un producto en una ubicación.
// Clave única: (UserID, ProductID, LocationID). La fila se crea perezosamente con el
// primer ajuste/traslado/import y nunca se elimina (las filas en cero quedan como
// ancla del historial). AvailableQuantity nunca se persiste: ver stock.Available.
type Stock struct {
	ID               string
	UserID           string
	ProductID        string
	LocationID       string
	Quantity         int64 // puede ser negativo solo si la ubicación lo permite
	ReservedQuantity int64 // 0 <= reserved <= quantity siempre
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// StockWithDetails fila de stock unida con los campos de display de producto y ubicación.
// Resultado de lectura para listados y export; sin efecto sobre el ledger.
type StockWithDetails struct {
	Stock
	ProductSKU   string
	ProductName  string
	LocationCode string
	LocationName string
}
