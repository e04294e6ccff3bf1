package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// MovementHandler consultas sobre el journal de movimientos (protegido, solo lectura).
type MovementHandler struct {
	uc *ledger.MovementQueryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.MovementQueryUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// parseDate acepta RFC 3339 o fecha plana YYYY-MM-DD.
func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toMovementResponse(m *entity.MovementWithDetails) dto.MovementResponse {
	return dto.MovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		ProductSKU:       m.ProductSKU,
		ProductName:      m.ProductName,
		LocationID:       m.LocationID,
		LocationCode:     m.LocationCode,
		FromLocationID:   m.FromLocationID,
		FromLocationCode: m.FromLocationCode,
		ToLocationID:     m.ToLocationID,
		ToLocationCode:   m.ToLocationCode,
		MovementType:     m.MovementType,
		Quantity:         m.Quantity,
		Reason:           m.Reason,
		Reference:        m.Reference,
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt,
	}
}

// List godoc
// @Summary      Consultar el journal de movimientos
// @Description  Facetas combinables; orden fijo por fecha descendente. El journal es
//               inmutable: esta consulta nunca lo modifica.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        product_id     query  string  false  "Filtrar por producto"
// @Param        location_id    query  string  false  "Ubicación (directa, origen o destino)"
// @Param        movement_type  query  string  false  "IN, OUT, ADJUSTMENT o TRANSFER"
// @Param        from_date      query  string  false  "Desde (RFC 3339 o YYYY-MM-DD)"
// @Param        to_date        query  string  false  "Hasta (RFC 3339 o YYYY-MM-DD)"
// @Param        page           query  int     false  "Página"           default(1)
// @Param        limit          query  int     false  "Tamaño de página"  default(50)
// @Success      200  {object}  dto.SuccessResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.MovementQueryRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("VALIDATION", "parámetros de consulta inválidos"))
	}
	in.Normalize(50)

	switch in.MovementType {
	case "", entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeADJUSTMENT, entity.MovementTypeTRANSFER:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("VALIDATION", "movement_type inválido"))
	}
	fromDate, err := parseDate(in.FromDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("VALIDATION", "from_date inválido"))
	}
	toDate, err := parseDate(in.ToDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("VALIDATION", "to_date inválido"))
	}

	filters := repository.MovementFilters{
		ProductID:      in.ProductID,
		LocationID:     in.LocationID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		MovementType:   in.MovementType,
		FromDate:       fromDate,
		ToDate:         toDate,
		Page:           in.Page,
		PageSize:       in.Limit,
	}
	rows, total, err := h.uc.Query(c.Context(), userID, filters)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(rows))
	for _, m := range rows {
		items = append(items, toMovementResponse(m))
	}
	return c.JSON(dto.OKPage(items, dto.NewPageResponse(in.Page, in.Limit, total)))
}
