package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrBookNotFound       = errors.New("libro no encontrado")
	ErrLoanNotFound       = errors.New("préstamo no encontrado")
	ErrCategoryNotFound   = errors.New("categoría no encontrada")
	ErrUsernameTaken      = errors.New("el username ya existe")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrAdminAlreadyExists = errors.New("ya existe un administrador en el sistema")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrUserBlocked        = errors.New("usuario bloqueado")
	ErrNoCopiesAvailable  = errors.New("no hay unidades disponibles")
	ErrCategoryHasBooks   = errors.New("la categoría tiene libros asociados")
	ErrBookHasActiveLoans = errors.New("el libro tiene préstamos activos")
	ErrLoanNotFined       = errors.New("el préstamo no tiene multa pendiente")
)
