package repository

import "github.com/jhoicas/biblioteca-api/internal/domain/entity"

// BookRepository define el puerto de persistencia para Book (DIP).
// La cantidad disponible es el único recurso mutable compartido entre operaciones
// de préstamo; dentro de una transacción debe leerse con GetForUpdate.
type BookRepository interface {
	Create(book *entity.Book) error
	GetByID(id string) (*entity.Book, error)
	Update(book *entity.Book) error
	List(limit, offset int) ([]*entity.Book, error)
	// Search busca por título o autor sin distinguir mayúsculas ni tildes.
	Search(term string, limit, offset int) ([]*entity.Book, error)
	Delete(id string) error
	CountByCategory(categoryID string) (int, error)
	// GetForUpdate bloquea la fila del libro (SELECT FOR UPDATE) para
	// serializar el read-modify-write de Available.
	GetForUpdate(id string) (*entity.Book, error)
}
