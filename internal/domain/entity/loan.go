package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del préstamo. La progresión es estrictamente hacia adelante:
// BORROWED -> RETURNED (devolución a tiempo), BORROWED -> FINED (retraso),
// FINED -> RETURNED (multa pagada). RETURNED es terminal.
const (
	LoanStatusBorrowed = "BORROWED"
	LoanStatusFined    = "FINED"
	LoanStatusReturned = "RETURNED"
)

// Loan representa un préstamo de un ejemplar. Referencia (no posee) usuario y libro:
// el historial se conserva aunque el usuario o el libro desaparezcan de sus tablas.
type Loan struct {
	ID          string
	UserID      string
	BookID      string
	LoanDate    time.Time // fecha de préstamo
	DueDate     time.Time // fecha límite = LoanDate + periodo de préstamo
	ReturnDate  *time.Time
	Status      string
	OverdueDays int
	FineAmount  decimal.Decimal // OverdueDays × tarifa por día; se conserva como histórico
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Active indica si el préstamo sigue ocupando un ejemplar (BORROWED o FINED).
func (l *Loan) Active() bool {
	return l.Status == LoanStatusBorrowed || l.Status == LoanStatusFined
}
