package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biblioteca-api/internal/application/dto"
	"github.com/jhoicas/biblioteca-api/internal/domain"
)

// writeDomainError traduce un error de dominio a su par código/estado HTTP.
// Cada condición tiene un código estable para que el cliente pueda distinguir,
// por ejemplo, "bloqueado por préstamos activos" de una entrada inválida genérica.
func writeDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return respond(c, fiber.StatusNotFound, "USER_NOT_FOUND", err)
	case errors.Is(err, domain.ErrBookNotFound):
		return respond(c, fiber.StatusNotFound, "BOOK_NOT_FOUND", err)
	case errors.Is(err, domain.ErrLoanNotFound):
		return respond(c, fiber.StatusNotFound, "LOAN_NOT_FOUND", err)
	case errors.Is(err, domain.ErrCategoryNotFound):
		return respond(c, fiber.StatusNotFound, "CATEGORY_NOT_FOUND", err)
	case errors.Is(err, domain.ErrNotFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", err)
	case errors.Is(err, domain.ErrNoCopiesAvailable):
		return respond(c, fiber.StatusConflict, "NO_COPIES_AVAILABLE", err)
	case errors.Is(err, domain.ErrCategoryHasBooks):
		return respond(c, fiber.StatusConflict, "CATEGORY_HAS_BOOKS", err)
	case errors.Is(err, domain.ErrBookHasActiveLoans):
		return respond(c, fiber.StatusConflict, "BOOK_HAS_ACTIVE_LOANS", err)
	case errors.Is(err, domain.ErrLoanNotFined):
		return respond(c, fiber.StatusConflict, "LOAN_NOT_FINED", err)
	case errors.Is(err, domain.ErrUsernameTaken):
		return respond(c, fiber.StatusConflict, "USERNAME_TAKEN", err)
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return respond(c, fiber.StatusConflict, "EMAIL_EXISTS", err)
	case errors.Is(err, domain.ErrAdminAlreadyExists):
		return respond(c, fiber.StatusConflict, "ADMIN_EXISTS", err)
	case errors.Is(err, domain.ErrDuplicate):
		return respond(c, fiber.StatusConflict, "DUPLICATE", err)
	case errors.Is(err, domain.ErrUserBlocked):
		return respond(c, fiber.StatusForbidden, "USER_BLOCKED", err)
	case errors.Is(err, domain.ErrForbidden):
		return respond(c, fiber.StatusForbidden, "FORBIDDEN", err)
	case errors.Is(err, domain.ErrUnauthorized):
		return respond(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err)
	case errors.Is(err, domain.ErrInvalidInput):
		return respond(c, fiber.StatusBadRequest, "VALIDATION", err)
	default:
		return respond(c, fiber.StatusInternalServerError, "INTERNAL", err)
	}
}

func respond(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
