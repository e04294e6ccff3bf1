package dto

// Envelope de respuesta: toda respuesta lleva el flag success explícito y,
// según el caso, data o error (contrato de la capa HTTP).

// SuccessResponse respuesta exitosa con payload.
type SuccessResponse struct {
	Success    bool          `json:"success"`
	Data       any           `json:"data,omitempty"`
	Pagination *PageResponse `json:"pagination,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

// OK construye una respuesta exitosa.
func OK(data any) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}

// OKPage construye una respuesta exitosa paginada.
func OKPage(data any, page PageResponse) SuccessResponse {
	return SuccessResponse{Success: true, Data: data, Pagination: &page}
}

// Err construye un cuerpo de error con código y mensaje.
func Err(code, message string) ErrorResponse {
	return ErrorResponse{Success: false, Code: code, Message: message}
}

// PageRequest paginación para listados (page inicia en 1).
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Normalize aplica valores por defecto y tope sobre limit.
func (p *PageRequest) Normalize(defaultLimit int) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset devuelve el desplazamiento SQL equivalente.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPageResponse calcula los metadatos a partir del total.
func NewPageResponse(page, limit, total int) PageResponse {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return PageResponse{Page: page, Limit: limit, Total: total, Pages: pages}
}
