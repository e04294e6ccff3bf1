package dto

import "time"

// AdjustStockRequest body para POST /api/stocks/adjust.
type AdjustStockRequest struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Delta      int64  `json:"delta"` // entero con signo: positivo entrada, negativo salida
	Reason     string `json:"reason"`
}

// TransferStockRequest body para POST /api/stocks/transfer.
type TransferStockRequest struct {
	ProductID      string `json:"product_id"`
	FromLocationID string `json:"from_location_id"`
	ToLocationID   string `json:"to_location_id"`
	Quantity       int64  `json:"quantity"` // >= 1
	Reason         string `json:"reason"`
}

// ReserveStockRequest body para POST /api/stocks/reserve y /unreserve.
type ReserveStockRequest struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
	Quantity   int64  `json:"quantity"` // >= 0
	OrderID    string `json:"order_id,omitempty"`
}

// StockResponse fila de stock con la cantidad disponible derivada.
type StockResponse struct {
	ID                string    `json:"id"`
	ProductID         string    `json:"product_id"`
	LocationID        string    `json:"location_id"`
	Quantity          int64     `json:"quantity"`
	ReservedQuantity  int64     `json:"reserved_quantity"`
	AvailableQuantity int64     `json:"available_quantity"`
	ProductSKU        string    `json:"product_sku,omitempty"`
	ProductName       string    `json:"product_name,omitempty"`
	LocationCode      string    `json:"location_code,omitempty"`
	LocationName      string    `json:"location_name,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TransferResponse las dos filas resultantes de un traslado.
type TransferResponse struct {
	From StockResponse `json:"from"`
	To   StockResponse `json:"to"`
}

// StockImportRow fila tabular de import masivo (el parseo CSV vive en el adaptador HTTP).
type StockImportRow struct {
	SKU          string `json:"sku"`
	LocationCode string `json:"location_code"`
	Quantity     int64  `json:"quantity"`
}

// ImportRowError descriptor de fallo por fila en el import masivo.
type ImportRowError struct {
	Row   int    `json:"row"`
	SKU   string `json:"sku"`
	Error string `json:"error"`
}

// ImportResult resumen del import: el batch nunca aborta por una fila mala.
type ImportResult struct {
	Success int              `json:"success"`
	Failed  int              `json:"failed"`
	Errors  []ImportRowError `json:"errors"`
}
