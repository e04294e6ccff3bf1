package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo. El stock por ubicación se maneja
// en Stock; aquí solo identidad y datos de display para listados y export.
type Product struct {
	ID          string
	UserID      string
	SKU         string // único por usuario
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
