package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	stockrules "github.com/jhoicas/Almacen-api/internal/domain/stock"
)

// StockHandler maneja las peticiones HTTP del ledger de stock (protegido).
type StockHandler struct {
	uc     *ledger.StockLedgerUseCase
	report ledger.StockReportGenerator
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *ledger.StockLedgerUseCase, report ledger.StockReportGenerator) *StockHandler {
	return &StockHandler{uc: uc, report: report}
}

func toStockResponse(s *entity.Stock) dto.StockResponse {
	return dto.StockResponse{
		ID:                s.ID,
		ProductID:         s.ProductID,
		LocationID:        s.LocationID,
		Quantity:          s.Quantity,
		ReservedQuantity:  s.ReservedQuantity,
		AvailableQuantity: stockrules.Available(s.Quantity, s.ReservedQuantity),
		UpdatedAt:         s.UpdatedAt,
	}
}

func toStockDetailResponse(s *entity.StockWithDetails) dto.StockResponse {
	out := toStockResponse(&s.Stock)
	out.ProductSKU = s.ProductSKU
	out.ProductName = s.ProductName
	out.LocationCode = s.LocationCode
	out.LocationName = s.LocationName
	return out
}

// List godoc
// @Summary      Listar stock
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Param        page         query  int     false  "Página"           default(1)
// @Param        limit        query  int     false  "Tamaño de página"  default(50)
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/stocks [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("VALIDATION", "parámetros de paginación inválidos"))
	}
	page.Normalize(50)

	filters := repository.StockFilters{
		ProductID:  c.Query("product_id"),
		LocationID: c.Query("location_id"),
		Page:       page.Page,
		PageSize:   page.Limit,
	}
	rows, total, err := h.uc.ListStocks(c.Context(), userID, filters)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.StockResponse, 0, len(rows))
	for _, s := range rows {
		items = append(items, toStockDetailResponse(s))
	}
	return c.JSON(dto.OKPage(items, dto.NewPageResponse(page.Page, page.Limit, total)))
}

// ByProduct godoc
// @Summary      Stock de un producto en todas sus ubicaciones
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/stocks/product/{productId} [get]
func (h *StockHandler) ByProduct(c *fiber.Ctx) error {
	userID := GetUserID(c)
	productID := c.Params("productId")
	rows, err := h.uc.ListStocksByProduct(c.Context(), userID, productID)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.StockResponse, 0, len(rows))
	var total, reserved int64
	for _, s := range rows {
		items = append(items, toStockDetailResponse(s))
		total += s.Quantity
		reserved += s.ReservedQuantity
	}
	return c.JSON(dto.OK(fiber.Map{
		"items":          items,
		"total_quantity": total,
		"total_reserved": reserved,
	}))
}

// Adjust godoc
// @Summary      Ajustar stock
// @Description  Aplica un delta con signo y asienta un movimiento IN u OUT.
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, location_id, delta, reason"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stocks/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("INVALID_BODY", "cuerpo inválido"))
	}
	s, err := h.uc.Adjust(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(toStockResponse(s)))
}

// Transfer godoc
// @Summary      Trasladar stock entre ubicaciones
// @Description  Débito en origen, crédito en destino y asiento TRANSFER, todo o nada.
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferStockRequest  true  "product_id, from_location_id, to_location_id, quantity, reason"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stocks/transfer [post]
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.TransferStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.Transfer(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(dto.TransferResponse{
		From: toStockResponse(out.From),
		To:   toStockResponse(out.To),
	}))
}

// Reserve godoc
// @Summary      Reservar stock
// @Description  Aparta cantidad sin moverla; no genera asiento en el journal.
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserveStockRequest  true  "product_id, location_id, quantity"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stocks/reserve [post]
func (h *StockHandler) Reserve(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.ReserveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("INVALID_BODY", "cuerpo inválido"))
	}
	s, err := h.uc.Reserve(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(toStockResponse(s)))
}

// Unreserve godoc
// @Summary      Liberar stock reservado
// @Description  Libera con piso en cero; liberar de más no es error.
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserveStockRequest  true  "product_id, location_id, quantity"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stocks/unreserve [post]
func (h *StockHandler) Unreserve(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.ReserveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("INVALID_BODY", "cuerpo inválido"))
	}
	s, err := h.uc.Unreserve(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(toStockResponse(s)))
}

// Report godoc
// @Summary      Reporte PDF del stock actual
// @Tags         stocks
// @Security     Bearer
// @Produce      application/pdf
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stocks/report [get]
func (h *StockHandler) Report(c *fiber.Ctx) error {
	userID := GetUserID(c)
	filters := repository.StockFilters{
		ProductID:  c.Query("product_id"),
		LocationID: c.Query("location_id"),
	}
	rows, err := h.uc.ExportStocks(c.Context(), userID, filters)
	if err != nil {
		return respondError(c, err)
	}
	now := time.Now()
	pdfBytes, err := h.report.GenerateStockReport(c.Context(), now, rows)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="stock_%s.pdf"`, now.Format("20060102_150405")))
	return c.Send(pdfBytes)
}
