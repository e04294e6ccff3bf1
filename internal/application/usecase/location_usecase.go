package usecase

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Formato de código de ubicación: mayúsculas, dígitos, guion y guion bajo, máx 20.
var locationCodeRe = regexp.MustCompile(`^[A-Z0-9_-]{1,20}$`)

// LocationUseCase registro de ubicaciones: identidad (código único por usuario),
// ciclo activa/inactiva y política de stock negativo. El código queda inmutable en
// cuanto exista una fila de stock en la ubicación.
type LocationUseCase struct {
	repo      repository.LocationRepository
	stockRepo repository.StockRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository, stockRepo repository.StockRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo, stockRepo: stockRepo}
}

func validLocationName(name string) bool {
	return len(name) >= 1 && len(name) <= 100
}

// Create crea una ubicación. El código se normaliza a mayúsculas; duplicado → ErrDuplicate.
func (uc *LocationUseCase) Create(userID string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if !locationCodeRe.MatchString(code) || !validLocationName(in.Name) || len(in.Address) > 500 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(userID, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el código de ubicación ya existe", domain.ErrDuplicate)
	}
	now := time.Now()
	location := &entity.Location{
		ID:                 uuid.New().String(),
		UserID:             userID,
		Code:               code,
		Name:               in.Name,
		Address:            in.Address,
		IsActive:           true,
		AllowNegativeStock: in.AllowNegativeStock,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene una ubicación del usuario.
func (uc *LocationUseCase) GetByID(userID, id string) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	return toLocationResponse(location), nil
}

// Update actualiza una ubicación. Cambiar el código falla con ErrConflict si ya existe
// stock registrado allí (inmutable desde entonces) o si el nuevo código colisiona.
func (uc *LocationUseCase) Update(userID, id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	if in.Code != nil {
		newCode := strings.ToUpper(strings.TrimSpace(*in.Code))
		if !locationCodeRe.MatchString(newCode) {
			return nil, domain.ErrInvalidInput
		}
		if newCode != location.Code {
			count, err := uc.stockRepo.CountByLocation(userID, id)
			if err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, fmt.Errorf("%w: el código es inmutable con stock registrado", domain.ErrConflict)
			}
			existing, err := uc.repo.GetByCode(userID, newCode)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				return nil, fmt.Errorf("%w: el código de ubicación ya existe", domain.ErrConflict)
			}
			location.Code = newCode
		}
	}
	if in.Name != nil {
		if !validLocationName(*in.Name) {
			return nil, domain.ErrInvalidInput
		}
		location.Name = *in.Name
	}
	if in.Address != nil {
		if len(*in.Address) > 500 {
			return nil, domain.ErrInvalidInput
		}
		location.Address = *in.Address
	}
	if in.AllowNegativeStock != nil {
		location.AllowNegativeStock = *in.AllowNegativeStock
	}
	location.UpdatedAt = time.Now()
	if err := uc.repo.Update(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// Deactivate desactiva una ubicación. Falla con ErrConflict si alguna fila de stock
// tiene quantity > 0; las reservas solas no bloquean (solo cuenta la cantidad cruda).
func (uc *LocationUseCase) Deactivate(userID, id string) error {
	count, err := uc.stockRepo.CountPositiveByLocation(userID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: la ubicación tiene stock; trasladar o ajustar a cero primero", domain.ErrConflict)
	}
	location, err := uc.repo.GetByID(userID, id)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.ErrNotFound
	}
	location.IsActive = false
	location.UpdatedAt = time.Now()
	return uc.repo.Update(location)
}

// Activate reactiva una ubicación (único camino de vuelta: llamada explícita).
func (uc *LocationUseCase) Activate(userID, id string) error {
	location, err := uc.repo.GetByID(userID, id)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.ErrNotFound
	}
	location.IsActive = true
	location.UpdatedAt = time.Now()
	return uc.repo.Update(location)
}

// List lista ubicaciones ordenadas por nombre, con filtro activo y búsqueda por
// substring (name o code, case-insensitive).
func (uc *LocationUseCase) List(userID string, filters repository.LocationFilters) ([]dto.LocationResponse, dto.PageResponse, error) {
	list, total, err := uc.repo.List(userID, filters)
	if err != nil {
		return nil, dto.PageResponse{}, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return items, dto.NewPageResponse(filters.Page, filters.PageSize, total), nil
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	if l == nil {
		return nil
	}
	return &dto.LocationResponse{
		ID:                 l.ID,
		Code:               l.Code,
		Name:               l.Name,
		Address:            l.Address,
		IsActive:           l.IsActive,
		AllowNegativeStock: l.AllowNegativeStock,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}
