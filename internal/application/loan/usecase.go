package loan

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/biblioteca-api/internal/application/dto"
	"github.com/jhoicas/biblioteca-api/internal/domain"
	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
	domainloan "github.com/jhoicas/biblioteca-api/internal/domain/loan"
	"github.com/jhoicas/biblioteca-api/internal/domain/repository"
)

// Config parámetros del ciclo de préstamo.
type Config struct {
	PeriodDays     int
	FineRatePerDay int
}

// LoanUseCase orquesta el ciclo de vida del préstamo de forma transaccional:
// prestar, devolver, barrido de multas y pago de multa. Cada operación corre
// dentro de una transacción con bloqueo de fila sobre el libro (SELECT FOR UPDATE)
// para que la cantidad disponible nunca se pierda bajo concurrencia.
type LoanUseCase struct {
	txRunner TxRunner
	userRepo repository.UserRepository
	loanRepo repository.LoanRepository
	clock    Clock
	period   int
	fineRate decimal.Decimal
}

// NewLoanUseCase construye el caso de uso.
func NewLoanUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	loanRepo repository.LoanRepository,
	clock Clock,
	cfg Config,
) *LoanUseCase {
	period := cfg.PeriodDays
	if period <= 0 {
		period = domainloan.DefaultPeriodDays
	}
	rate := cfg.FineRatePerDay
	if rate <= 0 {
		rate = domainloan.DefaultFineRate
	}
	return &LoanUseCase{
		txRunner: txRunner,
		userRepo: userRepo,
		loanRepo: loanRepo,
		clock:    clock,
		period:   period,
		fineRate: decimal.NewFromInt(int64(rate)),
	}
}

// Borrow presta un libro al usuario identificado por username (el del token).
// Dentro de la transacción: bloquea la fila del libro, verifica unidades
// disponibles, descuenta una y crea el préstamo BORROWED con fecha límite
// = hoy + periodo. El descuento y el alta del préstamo hacen commit juntos.
func (uc *LoanUseCase) Borrow(ctx context.Context, bookID, username string) (*dto.LoanResponse, error) {
	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Blocked {
		return nil, domain.ErrUserBlocked
	}

	today := uc.clock.Today()
	var created *entity.Loan
	err = uc.txRunner.Run(ctx, func(loanRepo repository.LoanRepository, bookRepo repository.BookRepository) error {
		book, err := bookRepo.GetForUpdate(bookID)
		if err != nil {
			return err
		}
		if book == nil {
			return domain.ErrBookNotFound
		}
		if book.Available <= 0 {
			return domain.ErrNoCopiesAvailable
		}
		book.Available--
		book.UpdatedAt = today
		if err := bookRepo.Update(book); err != nil {
			return err
		}
		loan := &entity.Loan{
			ID:          uuid.New().String(),
			UserID:      user.ID,
			BookID:      book.ID,
			LoanDate:    today,
			DueDate:     domainloan.DueDateFrom(today, uc.period),
			Status:      entity.LoanStatusBorrowed,
			OverdueDays: 0,
			FineAmount:  decimal.Zero,
			CreatedAt:   today,
			UpdatedAt:   today,
		}
		if err := loanRepo.Create(loan); err != nil {
			return err
		}
		created = loan
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toLoanResponse(created), nil
}

// Return registra la devolución de un préstamo. Si ya está RETURNED la operación
// es idempotente y devuelve el préstamo sin cambios. A tiempo pasa a RETURNED;
// con retraso calcula días y multa y pasa a FINED. En ambos caminos se fija la
// fecha de devolución y se repone la unidad del libro.
func (uc *LoanUseCase) Return(ctx context.Context, loanID string) (*dto.LoanResponse, error) {
	today := uc.clock.Today()
	var result *entity.Loan
	err := uc.txRunner.Run(ctx, func(loanRepo repository.LoanRepository, bookRepo repository.BookRepository) error {
		loan, err := loanRepo.GetByID(loanID)
		if err != nil {
			return err
		}
		if loan == nil {
			return domain.ErrLoanNotFound
		}
		if loan.Status == entity.LoanStatusReturned {
			result = loan
			return nil
		}

		returnDate := today
		loan.ReturnDate = &returnDate
		if days := domainloan.OverdueDays(loan.DueDate, today); days > 0 {
			loan.OverdueDays = days
			loan.FineAmount = domainloan.FineFor(days, uc.fineRate)
			loan.Status = entity.LoanStatusFined
		} else {
			loan.Status = entity.LoanStatusReturned
		}
		loan.UpdatedAt = today
		if err := loanRepo.Update(loan); err != nil {
			return err
		}
		if err := uc.restoreCopy(bookRepo, loan.BookID, today); err != nil {
			return err
		}
		result = loan
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toLoanResponse(result), nil
}

// PayFine marca la multa de un préstamo FINED como pagada: fija la fecha de
// devolución, pasa a RETURNED y repone la unidad. El valor de la multa se
// conserva como registro histórico.
func (uc *LoanUseCase) PayFine(ctx context.Context, loanID string) (*dto.LoanResponse, error) {
	today := uc.clock.Today()
	var result *entity.Loan
	err := uc.txRunner.Run(ctx, func(loanRepo repository.LoanRepository, bookRepo repository.BookRepository) error {
		loan, err := loanRepo.GetByID(loanID)
		if err != nil {
			return err
		}
		if loan == nil {
			return domain.ErrLoanNotFound
		}
		if loan.Status != entity.LoanStatusFined {
			return domain.ErrLoanNotFined
		}

		returnDate := today
		loan.ReturnDate = &returnDate
		loan.Status = entity.LoanStatusReturned
		loan.UpdatedAt = today
		if err := loanRepo.Update(loan); err != nil {
			return err
		}
		if err := uc.restoreCopy(bookRepo, loan.BookID, today); err != nil {
			return err
		}
		result = loan
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toLoanResponse(result), nil
}

// SweepOverdue transiciona a FINED todo préstamo BORROWED cuya fecha límite ya
// pasó, calculando días de retraso y multa. No fija fecha de devolución ni toca
// la disponibilidad: el libro sigue prestado. Devuelve cuántos transicionó.
// Los préstamos ya FINED o RETURNED quedan fuera de la selección, así que
// repetir el barrido el mismo día no transiciona nada adicional.
func (uc *LoanUseCase) SweepOverdue(ctx context.Context) (int, error) {
	today := uc.clock.Today()
	updated := 0
	err := uc.txRunner.Run(ctx, func(loanRepo repository.LoanRepository, _ repository.BookRepository) error {
		overdue, err := loanRepo.ListOverdue(entity.LoanStatusBorrowed, today)
		if err != nil {
			return err
		}
		for _, loan := range overdue {
			days := domainloan.OverdueDays(loan.DueDate, today)
			if days <= 0 {
				continue
			}
			loan.OverdueDays = days
			loan.FineAmount = domainloan.FineFor(days, uc.fineRate)
			loan.Status = entity.LoanStatusFined
			loan.UpdatedAt = today
			if err := loanRepo.Update(loan); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// restoreCopy repone una unidad del libro bajo bloqueo de fila. Se tolera que el
// libro ya no exista: el préstamo es histórico y no posee al libro.
func (uc *LoanUseCase) restoreCopy(bookRepo repository.BookRepository, bookID string, today time.Time) error {
	book, err := bookRepo.GetForUpdate(bookID)
	if err != nil {
		return err
	}
	if book == nil {
		return nil
	}
	book.Available++
	book.UpdatedAt = today
	return bookRepo.Update(book)
}

// AllLoans devuelve todos los préstamos del sistema.
func (uc *LoanUseCase) AllLoans() ([]dto.LoanResponse, error) {
	loans, err := uc.loanRepo.List()
	if err != nil {
		return nil, err
	}
	return toLoanResponses(loans), nil
}

// ActiveLoans devuelve los préstamos que siguen ocupando un ejemplar (BORROWED o FINED).
func (uc *LoanUseCase) ActiveLoans() ([]dto.LoanResponse, error) {
	loans, err := uc.loanRepo.ListActive()
	if err != nil {
		return nil, err
	}
	return toLoanResponses(loans), nil
}

// FinedLoans devuelve los préstamos con multa pendiente.
func (uc *LoanUseCase) FinedLoans() ([]dto.LoanResponse, error) {
	loans, err := uc.loanRepo.ListByStatus(entity.LoanStatusFined)
	if err != nil {
		return nil, err
	}
	return toLoanResponses(loans), nil
}

// LoansForUser devuelve el historial de préstamos del usuario, más reciente primero.
func (uc *LoanUseCase) LoansForUser(username string) ([]dto.LoanResponse, error) {
	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	loans, err := uc.loanRepo.ListByUser(user.ID)
	if err != nil {
		return nil, err
	}
	return toLoanResponses(loans), nil
}

// ActiveLoanCountForBook cuenta los préstamos activos de un libro (guardia de eliminación).
func (uc *LoanUseCase) ActiveLoanCountForBook(bookID string) (int, error) {
	return uc.loanRepo.CountActiveByBook(bookID)
}

func toLoanResponse(l *entity.Loan) *dto.LoanResponse {
	if l == nil {
		return nil
	}
	return &dto.LoanResponse{
		ID:          l.ID,
		UserID:      l.UserID,
		BookID:      l.BookID,
		LoanDate:    l.LoanDate,
		DueDate:     l.DueDate,
		ReturnDate:  l.ReturnDate,
		Status:      l.Status,
		OverdueDays: l.OverdueDays,
		FineAmount:  l.FineAmount,
	}
}

func toLoanResponses(loans []*entity.Loan) []dto.LoanResponse {
	out := make([]dto.LoanResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, *toLoanResponse(l))
	}
	return out
}
