package http

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	stockrules "github.com/jhoicas/Almacen-api/internal/domain/stock"
)

// ImportExportHandler import y export masivo de stock en CSV (protegido).
// El parseo y el render CSV viven aquí: el caso de uso trabaja con filas tipadas.
type ImportExportHandler struct {
	uc *ledger.StockLedgerUseCase
}

// NewImportExportHandler construye el handler.
func NewImportExportHandler(uc *ledger.StockLedgerUseCase) *ImportExportHandler {
	return &ImportExportHandler{uc: uc}
}

// csvHeader columnas esperadas en el archivo de import.
var csvImportHeader = []string{"sku", "location_code", "quantity"}

// parseImportCSV convierte el CSV en filas tipadas. Valida el header; una fila con
// cantidad no numérica se convierte en cantidad -1 para que el caso de uso la
// reporte como error de fila sin abortar el lote.
func parseImportCSV(r io.Reader) ([]dto.StockImportRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("archivo CSV vacío o ilegible")
	}
	if len(header) < len(csvImportHeader) {
		return nil, fmt.Errorf("header inválido: se esperaba %s", strings.Join(csvImportHeader, ","))
	}
	for i, want := range csvImportHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, fmt.Errorf("header inválido: se esperaba %s", strings.Join(csvImportHeader, ","))
		}
	}

	var rows []dto.StockImportRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV malformado: %v", err)
		}
		row := dto.StockImportRow{}
		if len(record) > 0 {
			row.SKU = strings.TrimSpace(record[0])
		}
		if len(record) > 1 {
			row.LocationCode = strings.TrimSpace(record[1])
		}
		if len(record) > 2 {
			qty, err := strconv.ParseInt(strings.TrimSpace(record[2]), 10, 64)
			if err != nil {
				qty = -1
			}
			row.Quantity = qty
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Import godoc
// @Summary      Import masivo de stock (CSV)
// @Description  Columnas: sku,location_code,quantity. Cada fila fija la cantidad
//               absoluta; una fila mala se reporta y el lote continúa.
// @Tags         stocks
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo CSV"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stocks/import [post]
func (h *ImportExportHandler) Import(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var reader io.Reader
	if fileHeader, err := c.FormFile("file"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Err("INVALID_FILE", "no se pudo leer el archivo"))
		}
		defer f.Close()
		reader = f
	} else {
		// sin multipart: el body es el CSV directamente
		reader = bytes.NewReader(c.Body())
	}

	rows, err := parseImportCSV(reader)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("INVALID_CSV", err.Error()))
	}
	if len(rows) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Err("EMPTY_FILE", "el archivo no tiene filas de datos"))
	}

	result, err := h.uc.BulkImport(c.Context(), userID, rows)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(result))
}

// Export godoc
// @Summary      Export del stock actual (CSV)
// @Tags         stocks
// @Security     Bearer
// @Produce      text/csv
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Success      200  {file}    binary
// @Router       /api/stocks/export [get]
func (h *ImportExportHandler) Export(c *fiber.Ctx) error {
	userID := GetUserID(c)
	filters := repository.StockFilters{
		ProductID:  c.Query("product_id"),
		LocationID: c.Query("location_id"),
	}
	rows, err := h.uc.ExportStocks(c.Context(), userID, filters)
	if err != nil {
		return respondError(c, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"sku", "product_name", "location_code", "location_name", "quantity", "reserved_quantity", "available_quantity"})
	for _, s := range rows {
		_ = w.Write([]string{
			s.ProductSKU,
			s.ProductName,
			s.LocationCode,
			s.LocationName,
			strconv.FormatInt(s.Quantity, 10),
			strconv.FormatInt(s.ReservedQuantity, 10),
			strconv.FormatInt(stockrules.Available(s.Quantity, s.ReservedQuantity), 10),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="stock_%s.csv"`, time.Now().Format("20060102_150405")))
	return c.Send(buf.Bytes())
}
