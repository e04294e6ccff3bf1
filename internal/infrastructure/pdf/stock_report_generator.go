// Package pdf implementa la generación del reporte de stock en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de Stock + fecha de generación              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Ubicación | Cant | Resv | Disp      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: filas, unidades totales, unidades reservadas       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	stockrules "github.com/jhoicas/Almacen-api/internal/domain/stock"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// Ensure MarotoReportGenerator implements ledger.StockReportGenerator.
var _ ledger.StockReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa ledger.StockReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStockReport(
	_ context.Context,
	generatedAt time.Time,
	rows []*entity.StockWithDetails,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y fecha de generación (der).
func headerRow(generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Reporte de Stock", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Color: colorGray, Align: align.Right, Top: 4,
			}),
		),
	)
}

// tableHeaderRow fila de encabezado de la tabla (fondo azul, texto blanco).
func tableHeaderRow() core.Row {
	header := func(size int, label string, al align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Align: al, Top: 1.5,
		}))
	}
	r := row.New(7).Add(
		header(2, "SKU", align.Left),
		header(4, "Producto", align.Left),
		header(2, "Ubicación", align.Left),
		header(1, "Cant", align.Right),
		header(1, "Resv", align.Right),
		header(2, "Disponible", align.Right),
	)
	r.WithStyle(&props.Cell{BackgroundColor: colorPrimary})
	return r
}

// tableDetailRows una fila por entrada de stock, con cebra en filas pares.
func tableDetailRows(rows []*entity.StockWithDetails) []core.Row {
	grayBg := &props.Color{Red: 243, Green: 243, Blue: 243}
	out := make([]core.Row, 0, len(rows))
	for i, s := range rows {
		cell := func(size int, value string, al align.Type) core.Col {
			return col.New(size).Add(text.New(value, props.Text{
				Size: 8, Align: al, Top: 1.5,
			}))
		}
		available := stockrules.Available(s.Quantity, s.ReservedQuantity)
		r := row.New(6).Add(
			cell(2, s.ProductSKU, align.Left),
			cell(4, s.ProductName, align.Left),
			cell(2, s.LocationCode, align.Left),
			cell(1, strconv.FormatInt(s.Quantity, 10), align.Right),
			cell(1, strconv.FormatInt(s.ReservedQuantity, 10), align.Right),
			cell(2, strconv.FormatInt(available, 10), align.Right),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: grayBg})
		}
		out = append(out, r)
	}
	return out
}

// totalsRow resumen al pie: filas, unidades totales y reservadas.
func totalsRow(rows []*entity.StockWithDetails) core.Row {
	var totalQty, totalReserved int64
	for _, s := range rows {
		totalQty += s.Quantity
		totalReserved += s.ReservedQuantity
	}
	summary := fmt.Sprintf("%d filas  ·  %d unidades  ·  %d reservadas",
		len(rows), totalQty, totalReserved)
	return row.New(8).Add(
		col.New(12).Add(
			text.New(summary, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
		),
	)
}
