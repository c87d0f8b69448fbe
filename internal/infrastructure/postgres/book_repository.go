package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/biblioteca-api/internal/domain/repository"
)

var _ repository.BookRepository = (*BookRepo)(nil)

// BookRepo implementación del puerto BookRepository sobre PostgreSQL (usable con pool o tx).
type BookRepo struct {
	q Querier
}

// NewBookRepository construye el adaptador de libros. Pasar pool o tx (Querier).
func NewBookRepository(q Querier) *BookRepo {
	return &BookRepo{q: q}
}

const bookColumns = `id, title, author, description, cover_url, total_copies, available_copies, category_id, created_at, updated_at`

// Create persiste un nuevo libro.
func (r *BookRepo) Create(book *entity.Book) error {
	query := `
		INSERT INTO books (` + bookColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		book.ID, book.Title, book.Author, book.Description, book.CoverURL,
		book.Total, book.Available, book.CategoryID, book.CreatedAt, book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// GetByID obtiene un libro por ID.
func (r *BookRepo) GetByID(id string) (*entity.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene el libro y bloquea la fila para update (SELECT FOR UPDATE).
// Serializa el read-modify-write de available_copies entre préstamos concurrentes.
func (r *BookRepo) GetForUpdate(id string) (*entity.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *BookRepo) scanOne(query string, args ...any) (*entity.Book, error) {
	var b entity.Book
	var categoryID *string
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.CoverURL,
		&b.Total, &b.Available, &categoryID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	if categoryID != nil {
		b.CategoryID = *categoryID
	}
	return &b, nil
}

// Update actualiza un libro, incluida la cantidad disponible.
func (r *BookRepo) Update(book *entity.Book) error {
	query := `
		UPDATE books SET title = $2, author = $3, description = $4, cover_url = $5,
			total_copies = $6, available_copies = $7, category_id = NULLIF($8, ''), updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		book.ID, book.Title, book.Author, book.Description, book.CoverURL,
		book.Total, book.Available, book.CategoryID, book.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

// List lista libros con paginación.
func (r *BookRepo) List(limit, offset int) ([]*entity.Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books ORDER BY title LIMIT $1 OFFSET $2`
	return r.scanMany(query, limit, offset)
}

// Search busca por título o autor, sin distinguir mayúsculas ni tildes. El término
// se normaliza en Go (foldSearchTerm) y las columnas con translate() en SQL.
func (r *BookRepo) Search(term string, limit, offset int) ([]*entity.Book, error) {
	const accented, plain = "áéíóúüñ", "aeiouun"
	query := `
		SELECT ` + bookColumns + `
		FROM books
		WHERE translate(lower(title), '` + accented + `', '` + plain + `') LIKE '%' || $1 || '%'
		   OR translate(lower(author), '` + accented + `', '` + plain + `') LIKE '%' || $1 || '%'
		ORDER BY title LIMIT $2 OFFSET $3`
	return r.scanMany(query, foldSearchTerm(term), limit, offset)
}

func (r *BookRepo) scanMany(query string, args ...any) ([]*entity.Book, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()
	var list []*entity.Book
	for rows.Next() {
		var b entity.Book
		var categoryID *string
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Description, &b.CoverURL,
			&b.Total, &b.Available, &categoryID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		if categoryID != nil {
			b.CategoryID = *categoryID
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Delete elimina un libro por ID.
func (r *BookRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

// CountByCategory cuenta libros que referencian una categoría (guardia de eliminación).
func (r *BookRepo) CountByCategory(categoryID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM books WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count books by category: %w", err)
	}
	return count, nil
}
