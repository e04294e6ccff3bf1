package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// StockFilters filtros para listados y export de stock.
type StockFilters struct {
	ProductID  string
	LocationID string
	Page       int
	PageSize   int
}

// StockRepository define el puerto para la fila de stock por (usuario, producto, ubicación).
// Get/GetForUpdate devuelven nil si la fila no existe. GetForUpdate bloquea la fila
// (SELECT FOR UPDATE) y solo tiene sentido dentro de una transacción del TxRunner;
// EnsureRow materializa la fila en cero si no existe, para poder bloquearla después.
type StockRepository interface {
	Get(userID, productID, locationID string) (*entity.Stock, error)
	GetForUpdate(userID, productID, locationID string) (*entity.Stock, error)
	EnsureRow(userID, productID, locationID string) error
	Upsert(stock *entity.Stock) error
	ListWithDetails(userID string, filters StockFilters) ([]*entity.StockWithDetails, int, error)
	ListByProduct(userID, productID string) ([]*entity.StockWithDetails, error)
	// CountByLocation cuenta filas de stock en la ubicación (para inmutabilidad del código).
	CountByLocation(userID, locationID string) (int, error)
	// CountPositiveByLocation cuenta filas con quantity > 0 (guard de desactivación).
	CountPositiveByLocation(userID, locationID string) (int, error)
}
