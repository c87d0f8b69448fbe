package loan_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apploan "github.com/jhoicas/biblioteca-api/internal/application/loan"
	"github.com/jhoicas/biblioteca-api/internal/domain"
	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/biblioteca-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria. Los repos guardan copias de las entidades para que una
// operación fallida no deje mutaciones a medias visibles, igual que un rollback.
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	users map[string]*entity.User // por username
}

func (r *memUserRepo) Create(u *entity.User) error { r.users[u.Username] = u; return nil }
func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (r *memUserRepo) GetByUsername(username string) (*entity.User, error) {
	return r.users[username], nil
}
func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) { return nil, nil }
func (r *memUserRepo) Update(u *entity.User) error                   { return nil }
func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) {
	return nil, nil
}
func (r *memUserRepo) Delete(id string) error              { return nil }
func (r *memUserRepo) CountByRole(role string) (int, error) { return 0, nil }

type memBookRepo struct {
	books map[string]entity.Book
}

func (r *memBookRepo) Create(b *entity.Book) error { r.books[b.ID] = *b; return nil }
func (r *memBookRepo) GetByID(id string) (*entity.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}
func (r *memBookRepo) GetForUpdate(id string) (*entity.Book, error) { return r.GetByID(id) }
func (r *memBookRepo) Update(b *entity.Book) error                  { r.books[b.ID] = *b; return nil }
func (r *memBookRepo) List(limit, offset int) ([]*entity.Book, error) {
	return nil, nil
}
func (r *memBookRepo) Search(term string, limit, offset int) ([]*entity.Book, error) {
	return nil, nil
}
func (r *memBookRepo) Delete(id string) error                         { delete(r.books, id); return nil }
func (r *memBookRepo) CountByCategory(categoryID string) (int, error) { return 0, nil }

type memLoanRepo struct {
	loans map[string]entity.Loan
}

func (r *memLoanRepo) Create(l *entity.Loan) error { r.loans[l.ID] = *l; return nil }
func (r *memLoanRepo) GetByID(id string) (*entity.Loan, error) {
	l, ok := r.loans[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}
func (r *memLoanRepo) Update(l *entity.Loan) error { r.loans[l.ID] = *l; return nil }
func (r *memLoanRepo) List() ([]*entity.Loan, error) {
	out := make([]*entity.Loan, 0, len(r.loans))
	for id := range r.loans {
		l := r.loans[id]
		out = append(out, &l)
	}
	return out, nil
}
func (r *memLoanRepo) ListByUser(userID string) ([]*entity.Loan, error) {
	var out []*entity.Loan
	for id := range r.loans {
		l := r.loans[id]
		if l.UserID == userID {
			out = append(out, &l)
		}
	}
	// Mismo orden que el adaptador real: más reciente primero.
	sort.Slice(out, func(i, j int) bool { return out[i].LoanDate.After(out[j].LoanDate) })
	return out, nil
}
func (r *memLoanRepo) ListByStatus(status string) ([]*entity.Loan, error) {
	var out []*entity.Loan
	for id := range r.loans {
		l := r.loans[id]
		if l.Status == status {
			out = append(out, &l)
		}
	}
	return out, nil
}
func (r *memLoanRepo) ListActive() ([]*entity.Loan, error) {
	var out []*entity.Loan
	for id := range r.loans {
		l := r.loans[id]
		if l.Active() {
			out = append(out, &l)
		}
	}
	return out, nil
}
func (r *memLoanRepo) ListOverdue(status string, before time.Time) ([]*entity.Loan, error) {
	var out []*entity.Loan
	for id := range r.loans {
		l := r.loans[id]
		if l.Status == status && l.DueDate.Before(before) {
			out = append(out, &l)
		}
	}
	return out, nil
}
func (r *memLoanRepo) CountActiveByBook(bookID string) (int, error) {
	n := 0
	for _, l := range r.loans {
		if l.BookID == bookID && l.Active() {
			n++
		}
	}
	return n, nil
}

// memTxRunner ejecuta la función directamente sobre los repos en memoria.
type memTxRunner struct {
	loanRepo repository.LoanRepository
	bookRepo repository.BookRepository
}

func (tx *memTxRunner) Run(ctx context.Context, fn func(
	loanRepo repository.LoanRepository,
	bookRepo repository.BookRepository,
) error) error {
	return fn(tx.loanRepo, tx.bookRepo)
}

// fixedClock fija "hoy" para que los escenarios sean reproducibles.
type fixedClock struct{ today time.Time }

func (c fixedClock) Today() time.Time { return c.today }

// ──────────────────────────────────────────────────────────────────────────────
// Armado del escenario base: un usuario, un libro con 2 de 3 ejemplares
// disponibles, y el reloj fijado en el 1 de enero de 2026.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUserID   = "user-1"
	testUsername = "lector"
	testBookID   = "book-1"
)

var testToday = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	uc    *apploan.LoanUseCase
	users *memUserRepo
	books *memBookRepo
	loans *memLoanRepo
	clock *fixedClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := &memUserRepo{users: map[string]*entity.User{
		testUsername: {ID: testUserID, Username: testUsername, Role: entity.RoleUser},
	}}
	books := &memBookRepo{books: map[string]entity.Book{
		testBookID: {ID: testBookID, Title: "Cien años de soledad", Author: "G. García Márquez", Total: 3, Available: 2},
	}}
	loans := &memLoanRepo{loans: map[string]entity.Loan{}}
	clock := &fixedClock{today: testToday}

	uc := apploan.NewLoanUseCase(
		&memTxRunner{loanRepo: loans, bookRepo: books},
		users, loans, clock,
		apploan.Config{PeriodDays: 7, FineRatePerDay: 5000},
	)
	return &fixture{uc: uc, users: users, books: books, loans: loans, clock: clock}
}

func (f *fixture) advanceTo(t *testing.T, day time.Time) {
	t.Helper()
	f.clock.today = day
}

func (f *fixture) available(t *testing.T) int {
	t.Helper()
	b, err := f.books.GetByID(testBookID)
	require.NoError(t, err)
	require.NotNil(t, b)
	return b.Available
}

// ──────────────────────────────────────────────────────────────────────────────
// Prestar
// ──────────────────────────────────────────────────────────────────────────────

func TestBorrow_DescuentaEjemplarYCreaPrestamo(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Borrow(context.Background(), testBookID, testUsername)
	require.NoError(t, err)

	assert.Equal(t, entity.LoanStatusBorrowed, out.Status)
	assert.Equal(t, testUserID, out.UserID)
	assert.Equal(t, testBookID, out.BookID)
	assert.Equal(t, testToday, out.LoanDate)
	assert.Equal(t, testToday.AddDate(0, 0, 7), out.DueDate,
		"la fecha límite debe ser la fecha de préstamo más 7 días")
	assert.Nil(t, out.ReturnDate)
	assert.True(t, out.FineAmount.IsZero())

	assert.Equal(t, 1, f.available(t), "el préstamo descuenta un ejemplar")
}

func TestBorrow_SinEjemplares(t *testing.T) {
	f := newFixture(t)
	b := f.books.books[testBookID]
	b.Available = 0
	f.books.books[testBookID] = b

	_, err := f.uc.Borrow(context.Background(), testBookID, testUsername)
	assert.ErrorIs(t, err, domain.ErrNoCopiesAvailable)

	assert.Equal(t, 0, f.available(t), "un préstamo rechazado no toca la disponibilidad")
	assert.Empty(t, f.loans.loans, "un préstamo rechazado no deja registro")
}

func TestBorrow_UsuarioBloqueado(t *testing.T) {
	f := newFixture(t)
	f.users.users[testUsername].Blocked = true

	_, err := f.uc.Borrow(context.Background(), testBookID, testUsername)
	assert.ErrorIs(t, err, domain.ErrUserBlocked)
	assert.Equal(t, 2, f.available(t))
}

func TestBorrow_LibroInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Borrow(context.Background(), "no-existe", testUsername)
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Devolver
// ──────────────────────────────────────────────────────────────────────────────

func TestReturn_ATiempo(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.Borrow(context.Background(), testBookID, testUsername)
	require.NoError(t, err)

	// Devuelve el mismo día de la fecha límite: sin retraso.
	f.advanceTo(t, out.DueDate)
	returned, err := f.uc.Return(context.Background(), out.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.LoanStatusReturned, returned.Status)
	require.NotNil(t, returned.ReturnDate)
	assert.Equal(t, out.DueDate, *returned.ReturnDate)
	assert.Equal(t, 0, returned.OverdueDays)
	assert.True(t, returned.FineAmount.IsZero(), "devolución a tiempo no genera multa")

	assert.Equal(t, 2, f.available(t), "la devolución repone el ejemplar")
}

func TestReturn_ConRetraso(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.Borrow(context.Background(), testBookID, testUsername)
	require.NoError(t, err)

	// 3 días después de la fecha límite.
	f.advanceTo(t, out.DueDate.AddDate(0, 0, 3))
	returned, err := f.uc.Return(context.Background(), out.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.LoanStatusFined, returned.Status,
		"devolver con retraso deja el préstamo FINED hasta que se pague la multa")
	assert.Equal(t, 3, returned.OverdueDays)
	assert.True(t, returned.FineAmount.Equal(decimal.NewFromInt(15000)),
		"la multa debe ser 3 × 5000, fue %s", returned.FineAmount)
	require.NotNil(t, returned.ReturnDate)

	assert.Equal(t, 2, f.available(t), "la devolución con retraso también repone el ejemplar")
}

func TestReturn_Idempotente(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.Borrow(context.Background(), testBookID, testUsername)
	require.NoError(t, err)

	f.advanceTo(t, out.DueDate)
	first, err := f.uc.Return(context.Background(), out.ID)
	require.NoError(t, err)

	second, err := f.uc.Return(context.Background(), out.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second, "devolver dos veces debe devolver el préstamo sin cambios")
	assert.Equal(t, 2, f.available(t), "la segunda devolución no repone un segundo ejemplar")
}

func TestReturn_PrestamoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Return(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

// El préstamo es histórico: devolver un préstamo cuyo libro fue eliminado del
// catálogo cierra el préstamo sin error.
func TestReturn_LibroEliminado(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.Borrow(context.Background(), testBookID, testUsername)
	require.NoError(t, err)

	require.NoError(t, f.books.Delete(testBookID))

	f.advanceTo(t, out.DueDate)
	returned, err := f.uc.Return(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.LoanStatusReturned, returned.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagar multa
// ──────────────────────────────────────────────────────────────────────────────

func TestPayFine_RequiereEstadoFined(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.Borrow(context.Background(), testBookID, testUsername)
	require.NoError(t, err)

	_, err = f.uc.PayFine(context.Background(), out.ID)
	assert.ErrorIs(t, err, domain.ErrLoanNotFined,
		"pagar multa de un préstamo sin multa debe rechazarse")
	assert.Equal(t, 1, f.available(t), "el rechazo no toca la disponibilidad")
}

func TestPayFine_ConservaLaMultaComoHistorico(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.Borrow(context.Background(), testBookID, testUsername)
	require.NoError(t, err)

	// El barrido marca el préstamo FINED sin devolver el libro.
	f.advanceTo(t, out.DueDate.AddDate(0, 0, 2))
	updated, err := f.uc.SweepOverdue(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, updated)

	paid, err := f.uc.PayFine(context.Background(), out.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.LoanStatusReturned, paid.Status)
	assert.Equal(t, 2, paid.OverdueDays)
	assert.True(t, paid.FineAmount.Equal(decimal.NewFromInt(10000)),
		"el valor de la multa se conserva tras el pago")
	require.NotNil(t, paid.ReturnDate)
	assert.Equal(t, 2, f.available(t), "pagar la multa repone el ejemplar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Barrido de multas
// ──────────────────────────────────────────────────────────────────────────────

func TestSweepOverdue_SoloPrestamosVencidos(t *testing.T) {
	f := newFixture(t)

	vencido, err := f.uc.Borrow(context.Background(), testBookID, testUsername)
	require.NoError(t, err)

	// Segundo préstamo 5 días más tarde: su fecha límite aún no vence.
	f.advanceTo(t, testToday.AddDate(0, 0, 5))
	vigente, err := f.uc.Borrow(context.Background(), testBookID, testUsername)
	require.NoError(t, err)

	// Día 9: el primero lleva 2 días vencido, el segundo no.
	f.advanceTo(t, testToday.AddDate(0, 0, 9))
	updated, err := f.uc.SweepOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	got, err := f.loans.GetByID(vencido.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.LoanStatusFined, got.Status)
	assert.Equal(t, 2, got.OverdueDays)
	assert.True(t, got.FineAmount.Equal(decimal.NewFromInt(10000)))
	assert.Nil(t, got.ReturnDate, "el barrido no fija fecha de devolución: el libro sigue prestado")

	gotVigente, err := f.loans.GetByID(vigente.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.LoanStatusBorrowed, gotVigente.Status, "un préstamo vigente no se toca")

	assert.Equal(t, 0, f.available(t), "el barrido no repone ejemplares")
}

func TestSweepOverdue_RepetirNoHaceNada(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.Borrow(context.Background(), testBookID, testUsername)
	require.NoError(t, err)

	f.advanceTo(t, out.DueDate.AddDate(0, 0, 1))
	first, err := f.uc.SweepOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := f.uc.SweepOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second, "los préstamos ya FINED quedan fuera de la selección")
}

func TestSweepOverdue_SinVencidos(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Borrow(context.Background(), testBookID, testUsername)
	require.NoError(t, err)

	updated, err := f.uc.SweepOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, updated)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestActiveLoans_IncluyeFined(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.Borrow(context.Background(), testBookID, testUsername)
	require.NoError(t, err)

	f.advanceTo(t, out.DueDate.AddDate(0, 0, 1))
	_, err = f.uc.SweepOverdue(context.Background())
	require.NoError(t, err)

	active, err := f.uc.ActiveLoans()
	require.NoError(t, err)
	assert.Len(t, active, 1, "un préstamo FINED sigue ocupando un ejemplar")

	n, err := f.uc.ActiveLoanCountForBook(testBookID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLoansForUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Borrow(context.Background(), testBookID, testUsername)
	require.NoError(t, err)

	mine, err := f.uc.LoansForUser(testUsername)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = f.uc.LoansForUser("desconocido")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLoansForUser_MasRecientePrimero(t *testing.T) {
	f := newFixture(t)

	antiguo, err := f.uc.Borrow(context.Background(), testBookID, testUsername)
	require.NoError(t, err)

	f.advanceTo(t, testToday.AddDate(0, 0, 5))
	reciente, err := f.uc.Borrow(context.Background(), testBookID, testUsername)
	require.NoError(t, err)

	mine, err := f.uc.LoansForUser(testUsername)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, reciente.ID, mine[0].ID, "el historial va de más reciente a más antiguo")
	assert.Equal(t, antiguo.ID, mine[1].ID)
	assert.True(t, mine[0].LoanDate.After(mine[1].LoanDate))
}
