package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// LocationFilters filtros para listar ubicaciones.
type LocationFilters struct {
	IsActive *bool
	Search   string // substring case-insensitive sobre name o code
	Page     int
	PageSize int
}

// LocationRepository define el puerto de persistencia para Location (DIP).
// Todas las consultas están acotadas por userID: nunca hay acceso cross-tenant.
// GetByID y GetByCode devuelven nil (sin error) si la ubicación no existe.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(userID, id string) (*entity.Location, error)
	GetByCode(userID, code string) (*entity.Location, error)
	Update(location *entity.Location) error
	List(userID string, filters LocationFilters) ([]*entity.Location, int, error)
}
