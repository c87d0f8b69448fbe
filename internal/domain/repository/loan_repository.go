package repository

import (
	"time"

	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
)

// LoanRepository define el puerto de persistencia para Loan (DIP).
type LoanRepository interface {
	Create(loan *entity.Loan) error
	GetByID(id string) (*entity.Loan, error)
	Update(loan *entity.Loan) error
	List() ([]*entity.Loan, error)
	ListByUser(userID string) ([]*entity.Loan, error)
	ListByStatus(status string) ([]*entity.Loan, error)
	ListActive() ([]*entity.Loan, error)
	// ListOverdue devuelve préstamos en el estado dado con fecha límite
	// estrictamente anterior a before (selección del barrido de multas).
	ListOverdue(status string, before time.Time) ([]*entity.Loan, error)
	// CountActiveByBook cuenta préstamos BORROWED o FINED de un libro
	// (guardia de eliminación del catálogo).
	CountActiveByBook(bookID string) (int, error)
}
