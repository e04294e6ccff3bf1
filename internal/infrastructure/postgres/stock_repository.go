package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, user_id, product_id, location_id, quantity, reserved_quantity, created_at, updated_at`

func scanStock(row pgx.Row) (*entity.Stock, error) {
	var s entity.Stock
	err := row.Scan(&s.ID, &s.UserID, &s.ProductID, &s.LocationID,
		&s.Quantity, &s.ReservedQuantity, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Get obtiene la fila de stock; nil si no existe.
func (r *StockRepo) Get(userID, productID, locationID string) (*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE user_id = $1 AND product_id = $2 AND location_id = $3`
	s, err := scanStock(r.q.QueryRow(context.Background(), query, userID, productID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE); nil si no existe.
// Solo tiene sentido dentro de una transacción del TxRunner.
func (r *StockRepo) GetForUpdate(userID, productID, locationID string) (*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE user_id = $1 AND product_id = $2 AND location_id = $3
		FOR UPDATE`
	s, err := scanStock(r.q.QueryRow(context.Background(), query, userID, productID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return s, nil
}

// EnsureRow materializa la fila en cero si no existe, para poder bloquearla después.
// Idempotente bajo concurrencia gracias al ON CONFLICT DO NOTHING.
func (r *StockRepo) EnsureRow(userID, productID, locationID string) error {
	query := `
		INSERT INTO stock (id, user_id, product_id, location_id, quantity, reserved_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, 0, now(), now())
		ON CONFLICT (user_id, product_id, location_id) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query, uuid.New().String(), userID, productID, locationID)
	if err != nil {
		return fmt.Errorf("ensure stock row: %w", err)
	}
	return nil
}

// Upsert inserta o actualiza cantidades (por usuario, producto y ubicación).
// Las filas nunca se eliminan: en cero quedan como ancla del historial.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	if stock.ID == "" {
		stock.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock (id, user_id, product_id, location_id, quantity, reserved_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		ON CONFLICT (user_id, product_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, reserved_quantity = EXCLUDED.reserved_quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.UserID, stock.ProductID, stock.LocationID,
		stock.Quantity, stock.ReservedQuantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

const stockDetailColumns = `
	s.id, s.user_id, s.product_id, s.location_id, s.quantity, s.reserved_quantity,
	s.created_at, s.updated_at, p.sku, p.name, l.code, l.name`

func scanStockDetail(rows pgx.Rows) (*entity.StockWithDetails, error) {
	var s entity.StockWithDetails
	err := rows.Scan(&s.ID, &s.UserID, &s.ProductID, &s.LocationID,
		&s.Quantity, &s.ReservedQuantity, &s.CreatedAt, &s.UpdatedAt,
		&s.ProductSKU, &s.ProductName, &s.LocationCode, &s.LocationName)
	if err != nil {
		return nil, fmt.Errorf("scan stock detail: %w", err)
	}
	return &s, nil
}

// ListWithDetails lista filas de stock unidas con producto y ubicación, con filtros y
// paginación opcional (PageSize <= 0 trae todo, para el export).
func (r *StockRepo) ListWithDetails(userID string, filters repository.StockFilters) ([]*entity.StockWithDetails, int, error) {
	where := ` WHERE s.user_id = $1`
	args := []any{userID}
	pos := 2
	if filters.ProductID != "" {
		where += fmt.Sprintf(" AND s.product_id = $%d", pos)
		args = append(args, filters.ProductID)
		pos++
	}
	if filters.LocationID != "" {
		where += fmt.Sprintf(" AND s.location_id = $%d", pos)
		args = append(args, filters.LocationID)
		pos++
	}

	var total int
	countQuery := `SELECT count(*) FROM stock s` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stock: %w", err)
	}

	query := `
		SELECT ` + stockDetailColumns + `
		FROM stock s
		JOIN products p ON p.id = s.product_id
		JOIN locations l ON l.id = s.location_id` + where + `
		ORDER BY p.name ASC, l.name ASC`
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
		return nil, 0, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockWithDetails
	for rows.Next() {
		s, err := scanStockDetail(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// ListByProduct lista el stock de un producto en todas sus ubicaciones, ordenado por
// nombre de ubicación.
func (r *StockRepo) ListByProduct(userID, productID string) ([]*entity.StockWithDetails, error) {
	query := `
		SELECT ` + stockDetailColumns + `
		FROM stock s
		JOIN products p ON p.id = s.product_id
		JOIN locations l ON l.id = s.location_id
		WHERE s.user_id = $1 AND s.product_id = $2
		ORDER BY l.name ASC`
	rows, err := r.q.Query(context.Background(), query, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockWithDetails
	for rows.Next() {
		s, err := scanStockDetail(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// CountByLocation cuenta filas de stock en la ubicación (guard de inmutabilidad del código).
func (r *StockRepo) CountByLocation(userID, locationID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM stock WHERE user_id = $1 AND location_id = $2`,
		userID, locationID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count stock by location: %w", err)
	}
	return count, nil
}

// CountPositiveByLocation cuenta filas con quantity > 0 (guard de desactivación:
// las reservas solas no bloquean).
func (r *StockRepo) CountPositiveByLocation(userID, locationID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM stock WHERE user_id = $1 AND location_id = $2 AND quantity > 0`,
		userID, locationID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count positive stock by location: %w", err)
	}
	return count, nil
}
