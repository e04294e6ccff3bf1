package dto

import "time"

// MovementQueryRequest filtros de consulta sobre el ledger (GET /api/inventory/movements).
type MovementQueryRequest struct {
	ProductID      string `query:"product_id"`
	LocationID     string `query:"location_id"`
	FromLocationID string `query:"from_location_id"`
	ToLocationID   string `query:"to_location_id"`
	MovementType   string `query:"movement_type"`
	FromDate       string `query:"from_date"` // RFC 3339 o YYYY-MM-DD
	ToDate         string `query:"to_date"`
	PageRequest
}

// MovementResponse entrada del ledger en respuestas HTTP.
type MovementResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	ProductSKU       string    `json:"product_sku,omitempty"`
	ProductName      string    `json:"product_name,omitempty"`
	LocationID       string    `json:"location_id,omitempty"`
	LocationCode     string    `json:"location_code,omitempty"`
	FromLocationID   string    `json:"from_location_id,omitempty"`
	FromLocationCode string    `json:"from_location_code,omitempty"`
	ToLocationID     string    `json:"to_location_id,omitempty"`
	ToLocationCode   string    `json:"to_location_code,omitempty"`
	MovementType     string    `json:"movement_type"`
	Quantity         int64     `json:"quantity"`
	Reason           string    `json:"reason"`
	Reference        string    `json:"reference,omitempty"`
	CreatedBy        string    `json:"created_by,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
