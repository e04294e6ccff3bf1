package dto

import "time"

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Code               string `json:"code"`
	Name               string `json:"name"`
	Address            string `json:"address,omitempty"`
	AllowNegativeStock bool   `json:"allow_negative_stock"`
}

// UpdateLocationRequest body para PUT /api/locations/:id. Campos nil no se tocan.
type UpdateLocationRequest struct {
	Code               *string `json:"code,omitempty"`
	Name               *string `json:"name,omitempty"`
	Address            *string `json:"address,omitempty"`
	AllowNegativeStock *bool   `json:"allow_negative_stock,omitempty"`
}

// LocationResponse representación HTTP de una ubicación.
type LocationResponse struct {
	ID                 string    `json:"id"`
	Code               string    `json:"code"`
	Name               string    `json:"name"`
	Address            string    `json:"address,omitempty"`
	IsActive           bool      `json:"is_active"`
	AllowNegativeStock bool      `json:"allow_negative_stock"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
