package entity

import "time"

// Location representa una ubicación física de almacenamiento (bodega, tienda, tránsito).
// El código es único por usuario y queda inmutable en cuanto exista stock registrado allí.
type Location struct {
	ID                 string
	UserID             string
	Code               string // mayúsculas, alfanumérico + "-"/"_", máx 20
	Name               string
	Address            string
	IsActive           bool
	AllowNegativeStock bool // política de backorder: permite quantity < 0
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
