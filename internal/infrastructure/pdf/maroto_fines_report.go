// Package pdf implementa la generación del reporte de multas en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Biblioteca + fecha de generación                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Usuario | Libro | Préstamo | Límite | Días | Multa   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DE MULTAS PENDIENTES                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/biblioteca-api/internal/application/report"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ report.FinesReportPDFGenerator = (*MarotoFinesReportGenerator)(nil)

// MarotoFinesReportGenerator implementa report.FinesReportPDFGenerator usando Maroto v2.
type MarotoFinesReportGenerator struct{}

// NewMarotoFinesReportGenerator construye el generador.
func NewMarotoFinesReportGenerator() *MarotoFinesReportGenerator { return &MarotoFinesReportGenerator{} }

// GenerateFinesReportPDF genera el PDF del reporte de multas y devuelve sus bytes.
func (g *MarotoFinesReportGenerator) GenerateFinesReportPDF(
	_ context.Context,
	generatedAt time.Time,
	rows []report.LoanReportRow,
	totalFines decimal.Decimal,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de multas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(totalFines))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar PDF del reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Biblioteca — Reporte de multas", props.Text{
				Size: 14, Style: fontstyle.Bold, Color: colorPrimary,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("2006-01-02"), props.Text{
				Size: 9, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary}
	return row.New(7).Add(
		col.New(3).Add(text.New("Usuario", header)),
		col.New(4).Add(text.New("Libro", header)),
		col.New(2).Add(text.New("Fecha límite", header)),
		col.New(1).Add(text.New("Días", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary})),
		col.New(2).Add(text.New("Multa", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary})),
	)
}

func tableRows(rows []report.LoanReportRow) []core.Row {
	cell := props.Text{Size: 8}
	right := props.Text{Size: 8, Align: align.Right}
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, row.New(6).Add(
			col.New(3).Add(text.New(r.Username, cell)),
			col.New(4).Add(text.New(r.BookTitle, cell)),
			col.New(2).Add(text.New(r.DueDate.Format("2006-01-02"), cell)),
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.OverdueDays), right)),
			col.New(2).Add(text.New("$"+r.FineAmount.StringFixed(0), right)),
		))
	}
	return out
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(10).Add(
			text.New("TOTAL MULTAS PENDIENTES", props.Text{
				Size: 10, Style: fontstyle.Bold, Align: align.Right,
			}),
		),
		col.New(2).Add(
			text.New("$"+total.StringFixed(0), props.Text{
				Size: 10, Style: fontstyle.Bold, Align: align.Right, Color: colorPrimary,
			}),
		),
	)
}
