package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biblioteca-api/internal/application/dto"
	"github.com/jhoicas/biblioteca-api/internal/application/loan"
	"github.com/jhoicas/biblioteca-api/internal/application/report"
)

// LoanHandler operaciones administrativas sobre préstamos: listados, devolución,
// barrido de multas, pago de multa y reporte PDF.
type LoanHandler struct {
	loanUC   *loan.LoanUseCase
	reportUC *report.FinesReportUseCase
}

// NewLoanHandler construye el handler de préstamos.
func NewLoanHandler(loanUC *loan.LoanUseCase, reportUC *report.FinesReportUseCase) *LoanHandler {
	return &LoanHandler{loanUC: loanUC, reportUC: reportUC}
}

// List godoc
// @Summary      Ver todos los préstamos
// @Tags         admin
// @Produce      json
// @Success      200  {array}  dto.LoanResponse
// @Security     BearerAuth
// @Router       /api/admin/prestamos [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	out, err := h.loanUC.AllLoans()
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// ListActive godoc
// @Summary      Ver préstamos activos (BORROWED o FINED)
// @Tags         admin
// @Produce      json
// @Success      200  {array}  dto.LoanResponse
// @Security     BearerAuth
// @Router       /api/admin/prestamos/activos [get]
func (h *LoanHandler) ListActive(c *fiber.Ctx) error {
	out, err := h.loanUC.ActiveLoans()
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// ListFined godoc
// @Summary      Ver préstamos con multa
// @Tags         admin
// @Produce      json
// @Success      200  {array}  dto.LoanResponse
// @Security     BearerAuth
// @Router       /api/admin/prestamos/multas [get]
func (h *LoanHandler) ListFined(c *fiber.Ctx) error {
	out, err := h.loanUC.FinedLoans()
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Return godoc
// @Summary      Registrar la devolución de un préstamo
// @Description  Idempotente: devolver un préstamo ya RETURNED lo retorna sin cambios.
//               Con retraso calcula días y multa y pasa a FINED.
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "ID del préstamo"
// @Success      200  {object}  dto.LoanResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/prestamos/{id}/devolver [put]
func (h *LoanHandler) Return(c *fiber.Ctx) error {
	out, err := h.loanUC.Return(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Sweep godoc
// @Summary      Actualizar multas de préstamos vencidos
// @Description  Transiciona a FINED todo préstamo BORROWED con fecha límite vencida.
//               No toca disponibilidad ni fecha de devolución.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.SweepResponse
// @Security     BearerAuth
// @Router       /api/admin/prestamos/actualizar-multas [put]
func (h *LoanHandler) Sweep(c *fiber.Ctx) error {
	updated, err := h.loanUC.SweepOverdue(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.SweepResponse{Updated: updated})
}

// PayFine godoc
// @Summary      Marcar multa como pagada
// @Description  Requiere estado FINED. Conserva el valor de la multa como histórico,
//               repone la unidad del libro y pasa a RETURNED.
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "ID del préstamo con multa"
// @Success      200  {object}  dto.LoanResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/prestamos/{id}/pagar-multa [put]
func (h *LoanHandler) PayFine(c *fiber.Ctx) error {
	out, err := h.loanUC.PayFine(c.Context(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// FinesReport godoc
// @Summary      Descargar reporte de multas en PDF
// @Tags         admin
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Security     BearerAuth
// @Router       /api/admin/prestamos/reporte [get]
func (h *LoanHandler) FinesReport(c *fiber.Ctx) error {
	pdfBytes, err := h.reportUC.GenerateFinesReport(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-multas.pdf"`)
	return c.Send(pdfBytes)
}
