package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biblioteca-api/internal/application/dto"
	"github.com/jhoicas/biblioteca-api/internal/application/usecase"
)

// AdminBookHandler CRUD de libros (solo admin).
type AdminBookHandler struct {
	uc *usecase.BookUseCase
}

// NewAdminBookHandler construye el handler de administración del catálogo.
func NewAdminBookHandler(uc *usecase.BookUseCase) *AdminBookHandler {
	return &AdminBookHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar nuevo libro
// @Description  Si no se especifica cantidad disponible, se establece igual a la cantidad total.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBookRequest  true  "datos del libro"
// @Success      201  {object}  dto.BookResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/libros [post]
func (h *AdminBookHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBookRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar libro
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del libro"
// @Param        body  body  dto.UpdateBookRequest  true  "campos a editar"
// @Success      200  {object}  dto.BookResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/libros/{id} [put]
func (h *AdminBookHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBookRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar libro
// @Description  Falla con 409 BOOK_HAS_ACTIVE_LOANS mientras existan préstamos BORROWED o FINED sobre el libro.
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "ID del libro"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/libros/{id} [delete]
func (h *AdminBookHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
