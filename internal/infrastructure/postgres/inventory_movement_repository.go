package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo adaptador PostgreSQL del ledger de movimientos.
// Solo INSERT y SELECT: no existe UPDATE ni DELETE sobre esta tabla.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador del ledger.
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func strOrEmpty(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// Create agrega una entrada al ledger. Siempre se llama dentro de la misma
// transacción que muta la fila de stock correspondiente.
func (r *InventoryMovementRepo) Create(m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements
			(id, user_id, product_id, location_id, from_location_id, to_location_id,
			 movement_type, quantity, reason, reference, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.UserID, m.ProductID,
		nullStr(m.LocationID), nullStr(m.FromLocationID), nullStr(m.ToLocationID),
		m.MovementType, m.Quantity, m.Reason,
		nullStr(m.Reference), nullStr(m.CreatedBy))
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por id, acotado por usuario.
func (r *InventoryMovementRepo) GetByID(userID, id string) (*entity.InventoryMovement, error) {
	query := `
		SELECT id, user_id, product_id, location_id, from_location_id, to_location_id,
		       movement_type, quantity, reason, reference, created_by, created_at
		FROM inventory_movements WHERE user_id = $1 AND id = $2`
	var m entity.InventoryMovement
	var locID, fromID, toID, ref, createdBy sql.NullString
	err := r.q.QueryRow(context.Background(), query, userID, id).Scan(
		&m.ID, &m.UserID, &m.ProductID, &locID, &fromID, &toID,
		&m.MovementType, &m.Quantity, &m.Reason, &ref, &createdBy, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	m.LocationID = strOrEmpty(locID)
	m.FromLocationID = strOrEmpty(fromID)
	m.ToLocationID = strOrEmpty(toID)
	m.Reference = strOrEmpty(ref)
	m.CreatedBy = strOrEmpty(createdBy)
	return &m, nil
}

// List consulta el ledger con facetas combinables y paginación, ordenado por
// created_at descendente (lo más reciente primero).
func (r *InventoryMovementRepo) List(userID string, filters repository.MovementFilters) ([]*entity.MovementWithDetails, int, error) {
	where := ` WHERE m.user_id = $1`
	args := []any{userID}
	pos := 2

	addFilter := func(clause string, value any) {
		where += fmt.Sprintf(clause, pos)
		args = append(args, value)
		pos++
	}
	if filters.ProductID != "" {
		addFilter(" AND m.product_id = $%d", filters.ProductID)
	}
	if filters.LocationID != "" {
		// una ubicación participa como destino directo, origen o destino de traslado
		addFilter(" AND (m.location_id = $%d OR m.from_location_id = $%[1]d OR m.to_location_id = $%[1]d)", filters.LocationID)
	}
	if filters.FromLocationID != "" {
		addFilter(" AND m.from_location_id = $%d", filters.FromLocationID)
	}
	if filters.ToLocationID != "" {
		addFilter(" AND m.to_location_id = $%d", filters.ToLocationID)
	}
	if filters.MovementType != "" {
		addFilter(" AND m.movement_type = $%d", filters.MovementType)
	}
	if filters.FromDate != nil {
		addFilter(" AND m.created_at >= $%d", *filters.FromDate)
	}
	if filters.ToDate != nil {
		addFilter(" AND m.created_at <= $%d", *filters.ToDate)
	}

	var total int
	countQuery := `SELECT count(*) FROM inventory_movements m` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := `
		SELECT m.id, m.user_id, m.product_id, m.location_id, m.from_location_id, m.to_location_id,
		       m.movement_type, m.quantity, m.reason, m.reference, m.created_by, m.created_at,
		       p.sku, p.name, l.code, lf.code, lt.code
		FROM inventory_movements m
		JOIN products p ON p.id = m.product_id
		LEFT JOIN locations l  ON l.id  = m.location_id
		LEFT JOIN locations lf ON lf.id = m.from_location_id
		LEFT JOIN locations lt ON lt.id = m.to_location_id` + where + `
		ORDER BY m.created_at DESC, m.id DESC`
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
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.MovementWithDetails
	for rows.Next() {
		var m entity.MovementWithDetails
		var locID, fromID, toID, ref, createdBy sql.NullString
		var locCode, fromCode, toCode sql.NullString
		err := rows.Scan(&m.ID, &m.UserID, &m.ProductID, &locID, &fromID, &toID,
			&m.MovementType, &m.Quantity, &m.Reason, &ref, &createdBy, &m.CreatedAt,
			&m.ProductSKU, &m.ProductName, &locCode, &fromCode, &toCode)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		m.LocationID = strOrEmpty(locID)
		m.FromLocationID = strOrEmpty(fromID)
		m.ToLocationID = strOrEmpty(toID)
		m.Reference = strOrEmpty(ref)
		m.CreatedBy = strOrEmpty(createdBy)
		m.LocationCode = strOrEmpty(locCode)
		m.FromLocationCode = strOrEmpty(fromCode)
		m.ToLocationCode = strOrEmpty(toCode)
		list = append(list, &m)
	}
	return list, total, rows.Err()
}
