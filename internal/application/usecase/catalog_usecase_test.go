package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/biblioteca-api/internal/application/dto"
	"github.com/jhoicas/biblioteca-api/internal/application/usecase"
	"github.com/jhoicas/biblioteca-api/internal/domain"
	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria para el CRUD del catálogo.
// ──────────────────────────────────────────────────────────────────────────────

type fakeBookRepo struct {
	books map[string]*entity.Book
}

func newFakeBookRepo() *fakeBookRepo { return &fakeBookRepo{books: map[string]*entity.Book{}} }

func (r *fakeBookRepo) Create(b *entity.Book) error                  { r.books[b.ID] = b; return nil }
func (r *fakeBookRepo) GetByID(id string) (*entity.Book, error)      { return r.books[id], nil }
func (r *fakeBookRepo) GetForUpdate(id string) (*entity.Book, error) { return r.books[id], nil }
func (r *fakeBookRepo) Update(b *entity.Book) error                  { r.books[b.ID] = b; return nil }
func (r *fakeBookRepo) List(limit, offset int) ([]*entity.Book, error) {
	out := make([]*entity.Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, b)
	}
	return out, nil
}
func (r *fakeBookRepo) Search(term string, limit, offset int) ([]*entity.Book, error) {
	return nil, nil
}
func (r *fakeBookRepo) Delete(id string) error { delete(r.books, id); return nil }
func (r *fakeBookRepo) CountByCategory(categoryID string) (int, error) {
	n := 0
	for _, b := range r.books {
		if b.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[string]*entity.Category{}}
}

func (r *fakeCategoryRepo) Create(c *entity.Category) error { r.categories[c.ID] = c; return nil }
func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	return r.categories[id], nil
}
func (r *fakeCategoryRepo) Update(c *entity.Category) error { r.categories[c.ID] = c; return nil }
func (r *fakeCategoryRepo) List() ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}
func (r *fakeCategoryRepo) Delete(id string) error { delete(r.categories, id); return nil }

// fakeLoanCounter solo responde a la guardia de eliminación de libros.
type fakeLoanCounter struct {
	activeByBook map[string]int
}

func (r *fakeLoanCounter) Create(l *entity.Loan) error              { return nil }
func (r *fakeLoanCounter) GetByID(id string) (*entity.Loan, error)  { return nil, nil }
func (r *fakeLoanCounter) Update(l *entity.Loan) error              { return nil }
func (r *fakeLoanCounter) List() ([]*entity.Loan, error)            { return nil, nil }
func (r *fakeLoanCounter) ListByUser(userID string) ([]*entity.Loan, error) {
	return nil, nil
}
func (r *fakeLoanCounter) ListByStatus(status string) ([]*entity.Loan, error) {
	return nil, nil
}
func (r *fakeLoanCounter) ListActive() ([]*entity.Loan, error) { return nil, nil }
func (r *fakeLoanCounter) ListOverdue(status string, before time.Time) ([]*entity.Loan, error) {
	return nil, nil
}
func (r *fakeLoanCounter) CountActiveByBook(bookID string) (int, error) {
	return r.activeByBook[bookID], nil
}

func newBookUC() (*usecase.BookUseCase, *fakeBookRepo, *fakeCategoryRepo, *fakeLoanCounter) {
	books := newFakeBookRepo()
	categories := newFakeCategoryRepo()
	loans := &fakeLoanCounter{activeByBook: map[string]int{}}
	return usecase.NewBookUseCase(books, categories, loans), books, categories, loans
}

// ──────────────────────────────────────────────────────────────────────────────
// Libros
// ──────────────────────────────────────────────────────────────────────────────

func TestBookCreate_AvailablePorDefectoIgualaTotal(t *testing.T) {
	uc, _, _, _ := newBookUC()

	out, err := uc.Create(dto.CreateBookRequest{Title: "El Aleph", Author: "J. L. Borges", Total: 4})
	require.NoError(t, err)

	assert.Equal(t, 4, out.Total)
	assert.Equal(t, 4, out.Available, "sin cantidad disponible explícita, se iguala al total")
}

func TestBookCreate_AvailableExplicito(t *testing.T) {
	uc, _, _, _ := newBookUC()

	out, err := uc.Create(dto.CreateBookRequest{Title: "Rayuela", Author: "J. Cortázar", Total: 5, Available: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Available)
}

func TestBookCreate_AvailableMayorQueTotal(t *testing.T) {
	uc, _, _, _ := newBookUC()

	_, err := uc.Create(dto.CreateBookRequest{Title: "Ficciones", Author: "J. L. Borges", Total: 2, Available: 3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"la cantidad disponible nunca puede superar el total")
}

func TestBookCreate_CategoriaInexistente(t *testing.T) {
	uc, _, _, _ := newBookUC()

	_, err := uc.Create(dto.CreateBookRequest{Title: "Pedro Páramo", Author: "J. Rulfo", Total: 1, CategoryID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestBookCreate_SinTitulo(t *testing.T) {
	uc, _, _, _ := newBookUC()
	_, err := uc.Create(dto.CreateBookRequest{Author: "Anónimo", Total: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBookUpdate_MantieneInvariante(t *testing.T) {
	uc, _, _, _ := newBookUC()
	created, err := uc.Create(dto.CreateBookRequest{Title: "El túnel", Author: "E. Sabato", Total: 3})
	require.NoError(t, err)

	bad := 5
	_, err = uc.Update(created.ID, dto.UpdateBookRequest{Available: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBookDelete_ConPrestamosActivos(t *testing.T) {
	uc, _, _, loans := newBookUC()
	created, err := uc.Create(dto.CreateBookRequest{Title: "La ciudad y los perros", Author: "M. Vargas Llosa", Total: 2})
	require.NoError(t, err)

	loans.activeByBook[created.ID] = 1
	err = uc.Delete(created.ID)
	assert.ErrorIs(t, err, domain.ErrBookHasActiveLoans,
		"un libro con préstamos BORROWED o FINED no puede eliminarse")

	// Sin préstamos activos sí se puede.
	loans.activeByBook[created.ID] = 0
	require.NoError(t, uc.Delete(created.ID))

	_, err = uc.GetByID(created.ID)
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryDelete_ConLibros(t *testing.T) {
	books := newFakeBookRepo()
	categories := newFakeCategoryRepo()
	catUC := usecase.NewCategoryUseCase(categories, books)
	bookUC := usecase.NewBookUseCase(books, categories, &fakeLoanCounter{activeByBook: map[string]int{}})

	cat, err := catUC.Create(dto.CreateCategoryRequest{Name: "Novela"})
	require.NoError(t, err)

	book, err := bookUC.Create(dto.CreateBookRequest{Title: "Sin remitente", Author: "Anónimo", Total: 1, CategoryID: cat.ID})
	require.NoError(t, err)

	err = catUC.Delete(cat.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryHasBooks,
		"una categoría con libros no puede eliminarse")

	// Tras eliminar el libro, la categoría queda libre.
	require.NoError(t, bookUC.Delete(book.ID))
	require.NoError(t, catUC.Delete(cat.ID))
}

func TestCategoryCreate_SinNombre(t *testing.T) {
	catUC := usecase.NewCategoryUseCase(newFakeCategoryRepo(), newFakeBookRepo())
	_, err := catUC.Create(dto.CreateCategoryRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategoryDelete_Inexistente(t *testing.T) {
	catUC := usecase.NewCategoryUseCase(newFakeCategoryRepo(), newFakeBookRepo())
	assert.ErrorIs(t, catUC.Delete("no-existe"), domain.ErrCategoryNotFound)
}
