// Package pdf genera el reporte de stock de una asociación con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de stock + email   │  Fecha de generación   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos / categorías / transacciones / valor     │
//	│  NIVELES: con stock / stock bajo / agotados                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CRÍTICOS: Producto | Categoría | Cant. | Estado             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INVENTARIO: Producto | Categoría | Unidad | Cant. | Valor   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-asociaciones/internal/application/analytics"
	"github.com/jhoicas/Inventario-asociaciones/internal/application/dto"
	"github.com/jhoicas/Inventario-asociaciones/internal/domain/stock"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarn    = &props.Color{Red: 191, Green: 111, Blue: 0}
	colorDanger  = &props.Color{Red: 178, Green: 34, Blue: 34}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ analytics.StockReportGenerator = (*StockReportGenerator)(nil)

// StockReportGenerator implementa analytics.StockReportGenerator usando Maroto v2.
type StockReportGenerator struct{}

// NewStockReportGenerator construye el generador.
func NewStockReportGenerator() *StockReportGenerator { return &StockReportGenerator{} }

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *StockReportGenerator) GenerateStockReport(_ context.Context, data analytics.StockReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de stock", true).
		WithAuthor(data.AssociationEmail, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(overviewRow(data.Overview))
	m.AddRows(levelsRow(data.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("PRODUCTOS CRÍTICOS"))
	if len(data.Summary.CriticalProducts) == 0 {
		m.AddRows(row.New(7).Add(col.New(12).Add(
			text.New("Ningún producto con stock bajo o agotado.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	} else {
		m.AddRows(criticalHeaderRow())
		m.AddRows(criticalRows(data.Summary.CriticalProducts)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("INVENTARIO"))
	m.AddRows(inventoryHeaderRow())
	m.AddRows(inventoryRows(data.Products)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data analytics.StockReportData) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(data.AssociationEmail, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+data.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func overviewRow(o dto.ProductOverviewDTO) core.Row {
	return row.New(14).Add(
		metricCol("Productos", strconv.FormatInt(o.TotalProducts, 10)),
		metricCol("Categorías en uso", strconv.FormatInt(o.TotalCategories, 10)),
		metricCol("Transacciones", strconv.FormatInt(o.TotalTransactions, 10)),
		metricCol("Valor del stock", "$"+formatMoney(o.StockValue)),
	)
}

func levelsRow(s dto.StockSummaryDTO) core.Row {
	return row.New(14).Add(
		metricCol("Con stock", strconv.FormatInt(s.InStockCount, 10)),
		metricCol(fmt.Sprintf("Stock bajo (≤ %d)", stock.LowStockThreshold), strconv.FormatInt(s.LowStockCount, 10)),
		metricCol("Agotados", strconv.FormatInt(s.OutOfStockCount, 10)),
		col.New(3),
	)
}

func metricCol(label, value string) core.Col {
	return col.New(3).Add(
		text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
		text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5}),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

func headerCol(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1, Left: 1, Right: 1,
	}))
}

func cell(value string, size int, a align.Type, color *props.Color) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: color,
	}))
}

func criticalHeaderRow() core.Row {
	return row.New(6).Add(
		headerCol("Producto", 5, align.Left),
		headerCol("Categoría", 3, align.Left),
		headerCol("Cant.", 2, align.Right),
		headerCol("Estado", 2, align.Center),
	)
}

func criticalRows(products []dto.ProductResponse) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		label, color := "BAJO", colorWarn
		if stock.Classify(p.Quantity) == stock.LevelOutOfStock {
			label, color = "AGOTADO", colorDanger
		}
		rows = append(rows, row.New(6).Add(
			cell(p.Name, 5, align.Left, nil),
			cell(p.CategoryName, 3, align.Left, colorGray),
			cell(strconv.FormatInt(p.Quantity, 10), 2, align.Right, nil),
			cell(label, 2, align.Center, color),
		))
	}
	return rows
}

func inventoryHeaderRow() core.Row {
	return row.New(6).Add(
		headerCol("Producto", 4, align.Left),
		headerCol("Categoría", 3, align.Left),
		headerCol("Unidad", 1, align.Center),
		headerCol("Cant.", 1, align.Right),
		headerCol("Valor", 3, align.Right),
	)
}

func inventoryRows(products []dto.ProductResponse) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		value := p.Price.Mul(decimal.NewFromInt(p.Quantity))
		rows = append(rows, row.New(6).Add(
			cell(p.Name, 4, align.Left, nil),
			cell(p.CategoryName, 3, align.Left, colorGray),
			cell(nonEmpty(p.Unit, "—"), 1, align.Center, nil),
			cell(strconv.FormatInt(p.Quantity, 10), 1, align.Right, nil),
			cell("$"+formatMoney(value), 3, align.Right, nil),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney redondea a pesos e inserta puntos de miles.
// Ej: 25000 → "25.000", 1000000 → "1.000.000", -1500 → "-1.500"
func formatMoney(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	sign := ""
	if s != "" && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
