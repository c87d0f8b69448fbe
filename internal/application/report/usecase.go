package report

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/biblioteca-api/internal/application/loan"
	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/biblioteca-api/internal/domain/repository"
)

// FinesReportUseCase arma el reporte de préstamos con multa: resuelve usuario y
// libro de cada préstamo FINED, acumula el total adeudado y delega el PDF al
// generador. Un usuario o libro ya eliminado se reporta por su ID.
type FinesReportUseCase struct {
	loanRepo  repository.LoanRepository
	userRepo  repository.UserRepository
	bookRepo  repository.BookRepository
	generator FinesReportPDFGenerator
	clock     loan.Clock
}

// NewFinesReportUseCase construye el caso de uso inyectando sus dependencias.
func NewFinesReportUseCase(
	loanRepo repository.LoanRepository,
	userRepo repository.UserRepository,
	bookRepo repository.BookRepository,
	generator FinesReportPDFGenerator,
	clock loan.Clock,
) *FinesReportUseCase {
	return &FinesReportUseCase{
		loanRepo:  loanRepo,
		userRepo:  userRepo,
		bookRepo:  bookRepo,
		generator: generator,
		clock:     clock,
	}
}

// GenerateFinesReport genera el PDF con todos los préstamos FINED y el total de multas.
func (uc *FinesReportUseCase) GenerateFinesReport(ctx context.Context) ([]byte, error) {
	fined, err := uc.loanRepo.ListByStatus(entity.LoanStatusFined)
	if err != nil {
		return nil, err
	}

	rows := make([]LoanReportRow, 0, len(fined))
	total := decimal.Zero
	for _, l := range fined {
		row := LoanReportRow{
			Username:    l.UserID,
			BookTitle:   l.BookID,
			LoanDate:    l.LoanDate,
			DueDate:     l.DueDate,
			Status:      l.Status,
			OverdueDays: l.OverdueDays,
			FineAmount:  l.FineAmount,
		}
		if user, err := uc.userRepo.GetByID(l.UserID); err == nil && user != nil {
			row.Username = user.Username
		}
		if book, err := uc.bookRepo.GetByID(l.BookID); err == nil && book != nil {
			row.BookTitle = book.Title
		}
		total = total.Add(l.FineAmount)
		rows = append(rows, row)
	}

	return uc.generator.GenerateFinesReportPDF(ctx, uc.clock.Today(), rows, total)
}
