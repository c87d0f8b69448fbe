package postgres

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldSearchTerm normaliza un término de búsqueda: minúsculas y sin marcas
// diacríticas, para que "García Márquez" y "garcia marquez" coincidan.
// Debe aplicarse la misma normalización en la expresión SQL del lado de la tabla.
func foldSearchTerm(term string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(term)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(term))
	}
	return folded
}
