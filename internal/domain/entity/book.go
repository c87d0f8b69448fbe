package entity

import "time"

// Book representa un libro del catálogo. Invariante: 0 <= Available <= Total.
type Book struct {
	ID          string
	Title       string
	Author      string
	Description string
	CoverURL    string
	Total       int    // ejemplares totales
	Available   int    // ejemplares disponibles para préstamo
	CategoryID  string // vacío si no tiene categoría
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
