package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LoanReportRow fila ya resuelta (usuario y libro por nombre) para el reporte.
type LoanReportRow struct {
	Username    string
	BookTitle   string
	LoanDate    time.Time
	DueDate     time.Time
	Status      string
	OverdueDays int
	FineAmount  decimal.Decimal
}

// FinesReportPDFGenerator genera la representación PDF del reporte de multas.
type FinesReportPDFGenerator interface {
	GenerateFinesReportPDF(ctx context.Context, generatedAt time.Time, rows []LoanReportRow, totalFines decimal.Decimal) ([]byte, error)
}
