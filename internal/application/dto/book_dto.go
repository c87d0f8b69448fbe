package dto

import "time"

// CreateBookRequest alta de libro. Si Available viene en cero se iguala a Total.
type CreateBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	CoverURL    string `json:"cover_url"`
	Total       int    `json:"total"`
	Available   int    `json:"available"`
	CategoryID  string `json:"category_id"`
}

// UpdateBookRequest edición parcial de libro.
type UpdateBookRequest struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Description *string `json:"description"`
	CoverURL    *string `json:"cover_url"`
	Total       *int    `json:"total"`
	Available   *int    `json:"available"`
	CategoryID  *string `json:"category_id"`
}

// BookResponse libro en respuestas.
type BookResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	CoverURL    string    `json:"cover_url"`
	Total       int       `json:"total"`
	Available   int       `json:"available"`
	CategoryID  string    `json:"category_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookListResponse listado paginado de libros.
type BookListResponse struct {
	Items  []BookResponse `json:"items"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}
