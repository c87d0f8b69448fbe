package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biblioteca-api/internal/application/dto"
	"github.com/jhoicas/biblioteca-api/internal/application/loan"
	"github.com/jhoicas/biblioteca-api/internal/application/usecase"
)

// BookHandler catálogo público de libros más préstamo y "mis préstamos" del usuario autenticado.
type BookHandler struct {
	bookUC *usecase.BookUseCase
	loanUC *loan.LoanUseCase
}

// NewBookHandler construye el handler del catálogo.
func NewBookHandler(bookUC *usecase.BookUseCase, loanUC *loan.LoanUseCase) *BookHandler {
	return &BookHandler{bookUC: bookUC, loanUC: loanUC}
}

// List godoc
// @Summary      Listar el catálogo
// @Tags         libros
// @Produce      json
// @Param        limit   query  int     false  "tamaño de página"
// @Param        offset  query  int     false  "desplazamiento"
// @Param        q       query  string  false  "búsqueda por título o autor"
// @Success      200  {object}  dto.BookListResponse
// @Router       /api/libros [get]
func (h *BookHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	if term := c.Query("q"); term != "" {
		out, err := h.bookUC.Search(term, page.Limit, page.Offset)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.bookUC.List(page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener un libro
// @Tags         libros
// @Produce      json
// @Param        id  path  string  true  "ID del libro"
// @Success      200  {object}  dto.BookResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/libros/{id} [get]
func (h *BookHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.bookUC.GetByID(c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Borrow godoc
// @Summary      Solicitar el préstamo de un libro
// @Description  El libro debe tener ejemplares disponibles y el usuario no puede estar bloqueado.
// @Tags         libros
// @Produce      json
// @Param        id  path  string  true  "ID del libro"
// @Success      201  {object}  dto.LoanResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/libros/{id}/prestar [post]
func (h *BookHandler) Borrow(c *fiber.Ctx) error {
	out, err := h.loanUC.Borrow(c.Context(), c.Params("id"), GetUsername(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MyLoans godoc
// @Summary      Historial de préstamos del usuario autenticado
// @Tags         libros
// @Produce      json
// @Success      200  {array}  dto.LoanResponse
// @Security     BearerAuth
// @Router       /api/libros/mis-prestamos [get]
func (h *BookHandler) MyLoans(c *fiber.Ctx) error {
	out, err := h.loanUC.LoansForUser(GetUsername(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}
