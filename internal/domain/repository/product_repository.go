package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetBySKU devuelven nil (sin error) si el producto no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(userID, id string) (*entity.Product, error)
	// GetBySKU resuelve por SKU, case-insensitive (lo usa el import masivo).
	GetBySKU(userID, sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(userID string, limit, offset int) ([]*entity.Product, error)
}
