package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/biblioteca-api/internal/domain/repository"
)

var _ repository.LoanRepository = (*LoanRepo)(nil)

// LoanRepo implementación del puerto LoanRepository sobre PostgreSQL (usable con pool o tx).
// user_id y book_id son referencias sin FK en cascada: el historial sobrevive
// al borrado del usuario o del libro.
type LoanRepo struct {
	q Querier
}

// NewLoanRepository construye el adaptador de préstamos. Pasar pool o tx (Querier).
func NewLoanRepository(q Querier) *LoanRepo {
	return &LoanRepo{q: q}
}

const loanColumns = `id, user_id, book_id, loan_date, due_date, return_date, status, overdue_days, fine_amount, created_at, updated_at`

// Create persiste un nuevo préstamo.
func (r *LoanRepo) Create(loan *entity.Loan) error {
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		loan.ID, loan.UserID, loan.BookID, loan.LoanDate, loan.DueDate, loan.ReturnDate,
		loan.Status, loan.OverdueDays, loan.FineAmount, loan.CreatedAt, loan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

// GetByID obtiene un préstamo por ID.
func (r *LoanRepo) GetByID(id string) (*entity.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	var l entity.Loan
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.UserID, &l.BookID, &l.LoanDate, &l.DueDate, &l.ReturnDate,
		&l.Status, &l.OverdueDays, &l.FineAmount, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get loan: %w", err)
	}
	return &l, nil
}

// Update actualiza un préstamo.
func (r *LoanRepo) Update(loan *entity.Loan) error {
	query := `
		UPDATE loans SET return_date = $2, status = $3, overdue_days = $4,
			fine_amount = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		loan.ID, loan.ReturnDate, loan.Status, loan.OverdueDays, loan.FineAmount, loan.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update loan: %w", err)
	}
	return nil
}

// List devuelve todos los préstamos, más reciente primero.
func (r *LoanRepo) List() ([]*entity.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans ORDER BY loan_date DESC, created_at DESC`
	return r.scanMany(query)
}

// ListByUser devuelve los préstamos de un usuario, más reciente primero.
func (r *LoanRepo) ListByUser(userID string) ([]*entity.Loan, error) {
	query := `
		SELECT ` + loanColumns + ` FROM loans
		WHERE user_id = $1 ORDER BY loan_date DESC, created_at DESC`
	return r.scanMany(query, userID)
}

// ListByStatus devuelve los préstamos en un estado dado.
func (r *LoanRepo) ListByStatus(status string) ([]*entity.Loan, error) {
	query := `
		SELECT ` + loanColumns + ` FROM loans
		WHERE status = $1 ORDER BY loan_date DESC, created_at DESC`
	return r.scanMany(query, status)
}

// ListActive devuelve los préstamos que siguen ocupando un ejemplar (BORROWED o FINED).
func (r *LoanRepo) ListActive() ([]*entity.Loan, error) {
	query := `
		SELECT ` + loanColumns + ` FROM loans
		WHERE status IN ($1, $2) ORDER BY loan_date DESC, created_at DESC`
	return r.scanMany(query, entity.LoanStatusBorrowed, entity.LoanStatusFined)
}

// ListOverdue devuelve préstamos en el estado dado con fecha límite estrictamente
// anterior a before (selección del barrido de multas).
func (r *LoanRepo) ListOverdue(status string, before time.Time) ([]*entity.Loan, error) {
	query := `
		SELECT ` + loanColumns + ` FROM loans
		WHERE status = $1 AND due_date < $2 ORDER BY due_date`
	return r.scanMany(query, status, before)
}

// CountActiveByBook cuenta préstamos BORROWED o FINED de un libro.
func (r *LoanRepo) CountActiveByBook(bookID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM loans WHERE book_id = $1 AND status IN ($2, $3)`,
		bookID, entity.LoanStatusBorrowed, entity.LoanStatusFined).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active loans by book: %w", err)
	}
	return count, nil
}

func (r *LoanRepo) scanMany(query string, args ...any) ([]*entity.Loan, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()
	var list []*entity.Loan
	for rows.Next() {
		var l entity.Loan
		if err := rows.Scan(&l.ID, &l.UserID, &l.BookID, &l.LoanDate, &l.DueDate, &l.ReturnDate,
			&l.Status, &l.OverdueDays, &l.FineAmount, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
