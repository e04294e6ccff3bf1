package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo adaptador PostgreSQL de ubicaciones.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de ubicaciones.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const locationColumns = `id, user_id, code, name, address, is_active, allow_negative_stock, created_at, updated_at`

func scanLocation(row pgx.Row) (*entity.Location, error) {
	var l entity.Location
	err := row.Scan(&l.ID, &l.UserID, &l.Code, &l.Name, &l.Address,
		&l.IsActive, &l.AllowNegativeStock, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create inserta una ubicación. Código duplicado (único por usuario) → ErrDuplicate.
func (r *LocationRepo) Create(location *entity.Location) error {
	if location.ID == "" {
		location.ID = uuid.New().String()
	}
	query := `
		INSERT INTO locations (id, user_id, code, name, address, is_active, allow_negative_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.UserID, location.Code, location.Name, location.Address,
		location.IsActive, location.AllowNegativeStock)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s", domain.ErrDuplicate, location.Code)
		}
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por id, acotada por usuario; nil si no existe.
func (r *LocationRepo) GetByID(userID, id string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE user_id = $1 AND id = $2`
	l, err := scanLocation(r.q.QueryRow(context.Background(), query, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return l, nil
}

// GetByCode obtiene una ubicación por código, acotada por usuario; nil si no existe.
func (r *LocationRepo) GetByCode(userID, code string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE user_id = $1 AND code = $2`
	l, err := scanLocation(r.q.QueryRow(context.Background(), query, userID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location by code: %w", err)
	}
	return l, nil
}

// Update persiste cambios de una ubicación existente.
func (r *LocationRepo) Update(location *entity.Location) error {
	query := `
		UPDATE locations
		SET code = $3, name = $4, address = $5, is_active = $6, allow_negative_stock = $7, updated_at = now()
		WHERE user_id = $1 AND id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		location.UserID, location.ID, location.Code, location.Name, location.Address,
		location.IsActive, location.AllowNegativeStock)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s", domain.ErrDuplicate, location.Code)
		}
		return fmt.Errorf("update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista ubicaciones con filtro de estado y búsqueda por nombre o código,
// ordenadas por nombre.
func (r *LocationRepo) List(userID string, filters repository.LocationFilters) ([]*entity.Location, int, error) {
	where := ` WHERE user_id = $1`
	args := []any{userID}
	pos := 2
	if filters.IsActive != nil {
		where += fmt.Sprintf(" AND is_active = $%d", pos)
		args = append(args, *filters.IsActive)
		pos++
	}
	if filters.Search != "" {
		where += fmt.Sprintf(" AND (LOWER(name) LIKE $%d OR LOWER(code) LIKE $%[1]d)", pos)
		args = append(args, "%"+strings.ToLower(filters.Search)+"%")
		pos++
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM locations`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count locations: %w", err)
	}

	query := `SELECT ` + locationColumns + ` FROM locations` + where + ` ORDER BY name ASC`
	if filters.PageSize > 0 {
		page := filters.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, filters.PageSize, (page-1)*filters.PageSize)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		err := rows.Scan(&l.ID, &l.UserID, &l.Code, &l.Name, &l.Address,
			&l.IsActive, &l.AllowNegativeStock, &l.CreatedAt, &l.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, total, rows.Err()
}
