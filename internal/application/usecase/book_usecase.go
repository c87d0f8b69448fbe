package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/biblioteca-api/internal/application/dto"
	"github.com/jhoicas/biblioteca-api/internal/domain"
	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/biblioteca-api/internal/domain/repository"
)

// BookUseCase casos de uso CRUD para libros. La cantidad disponible solo cambia
// aquí en altas/ediciones; durante préstamos la maneja el ciclo de préstamo.
type BookUseCase struct {
	repo         repository.BookRepository
	categoryRepo repository.CategoryRepository
	loanRepo     repository.LoanRepository
}

// NewBookUseCase construye el caso de uso.
func NewBookUseCase(
	repo repository.BookRepository,
	categoryRepo repository.CategoryRepository,
	loanRepo repository.LoanRepository,
) *BookUseCase {
	return &BookUseCase{repo: repo, categoryRepo: categoryRepo, loanRepo: loanRepo}
}

// Create crea un libro. Si Available viene en cero se iguala a Total.
func (uc *BookUseCase) Create(in dto.CreateBookRequest) (*dto.BookResponse, error) {
	if in.Title == "" || in.Author == "" || in.Total < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Available == 0 {
		in.Available = in.Total
	}
	if in.Available < 0 || in.Available > in.Total {
		return nil, domain.ErrInvalidInput
	}
	if in.CategoryID != "" {
		category, err := uc.categoryRepo.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrCategoryNotFound
		}
	}
	now := time.Now()
	book := &entity.Book{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Author:      in.Author,
		Description: in.Description,
		CoverURL:    in.CoverURL,
		Total:       in.Total,
		Available:   in.Available,
		CategoryID:  in.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(book); err != nil {
		return nil, err
	}
	return toBookResponse(book), nil
}

// GetByID obtiene un libro por ID.
func (uc *BookUseCase) GetByID(id string) (*dto.BookResponse, error) {
	book, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrBookNotFound
	}
	return toBookResponse(book), nil
}

// Update actualiza un libro. Mantiene el invariante 0 <= Available <= Total;
// si la edición deja Available en cero sin tocarlo explícitamente, se iguala a Total.
func (uc *BookUseCase) Update(id string, in dto.UpdateBookRequest) (*dto.BookResponse, error) {
	book, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrBookNotFound
	}
	if in.Title != nil {
		book.Title = *in.Title
	}
	if in.Author != nil {
		book.Author = *in.Author
	}
	if in.Description != nil {
		book.Description = *in.Description
	}
	if in.CoverURL != nil {
		book.CoverURL = *in.CoverURL
	}
	if in.Total != nil {
		book.Total = *in.Total
	}
	if in.Available != nil {
		book.Available = *in.Available
	}
	if in.CategoryID != nil {
		if *in.CategoryID != "" {
			category, err := uc.categoryRepo.GetByID(*in.CategoryID)
			if err != nil {
				return nil, err
			}
			if category == nil {
				return nil, domain.ErrCategoryNotFound
			}
		}
		book.CategoryID = *in.CategoryID
	}
	if book.Available == 0 && in.Available == nil {
		book.Available = book.Total
	}
	if book.Total < 0 || book.Available < 0 || book.Available > book.Total {
		return nil, domain.ErrInvalidInput
	}
	book.UpdatedAt = time.Now()
	if err := uc.repo.Update(book); err != nil {
		return nil, err
	}
	return toBookResponse(book), nil
}

// List lista libros con paginación.
func (uc *BookUseCase) List(limit, offset int) (*dto.BookListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toBookListResponse(list, limit, offset), nil
}

// Search busca libros por título o autor (sin distinguir mayúsculas ni tildes).
func (uc *BookUseCase) Search(term string, limit, offset int) (*dto.BookListResponse, error) {
	list, err := uc.repo.Search(term, limit, offset)
	if err != nil {
		return nil, err
	}
	return toBookListResponse(list, limit, offset), nil
}

// Delete elimina un libro. Falla con ErrBookHasActiveLoans mientras existan
// préstamos BORROWED o FINED sobre él; el caller distingue ese código para
// mostrar el motivo exacto del rechazo.
func (uc *BookUseCase) Delete(id string) error {
	book, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if book == nil {
		return domain.ErrBookNotFound
	}
	active, err := uc.loanRepo.CountActiveByBook(id)
	if err != nil {
		return err
	}
	if active > 0 {
		return domain.ErrBookHasActiveLoans
	}
	return uc.repo.Delete(id)
}

func toBookResponse(b *entity.Book) *dto.BookResponse {
	return &dto.BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		CoverURL:    b.CoverURL,
		Total:       b.Total,
		Available:   b.Available,
		CategoryID:  b.CategoryID,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBookListResponse(list []*entity.Book, limit, offset int) *dto.BookListResponse {
	items := make([]dto.BookResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBookResponse(b))
	}
	return &dto.BookListResponse{Items: items, Limit: limit, Offset: offset}
}
