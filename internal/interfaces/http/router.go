package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/biblioteca-api/internal/application/auth"
	"github.com/jhoicas/biblioteca-api/internal/application/loan"
	"github.com/jhoicas/biblioteca-api/internal/application/report"
	"github.com/jhoicas/biblioteca-api/internal/application/usecase"
	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/biblioteca-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	BookUC     *usecase.BookUseCase
	CategoryUC *usecase.CategoryUseCase
	UserUC     *usecase.UserUseCase
	LoanUC     *loan.LoanUseCase
	ReportUC   *report.FinesReportUseCase
	Upload     config.UploadConfig
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/primer-admin", authHandler.RegisterFirstAdmin)

	// Catálogo (listado y detalle públicos; prestar requiere token)
	books := api.Group("/libros")
	bookHandler := NewBookHandler(deps.BookUC, deps.LoanUC)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	books.Get("/", bookHandler.List)
	books.Get("/categorias", categoryHandler.List)
	books.Get("/mis-prestamos", AuthMiddleware(deps.JWTSecret), bookHandler.MyLoans)
	books.Get("/:id", bookHandler.GetByID)
	books.Post("/:id/prestar", AuthMiddleware(deps.JWTSecret), bookHandler.Borrow)

	// Subida de portadas (requiere token)
	uploadHandler := NewUploadHandler(deps.Upload.Dir, deps.Upload.PublicURL)
	api.Post("/upload/imagen", AuthMiddleware(deps.JWTSecret), uploadHandler.UploadImage)

	// Administración (requiere Bearer Token con rol ADMIN)
	admin := api.Group("/admin", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin))

	categories := admin.Group("/categorias")
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	adminBooks := admin.Group("/libros")
	adminBookHandler := NewAdminBookHandler(deps.BookUC)
	adminBooks.Post("/", adminBookHandler.Create)
	adminBooks.Put("/:id", adminBookHandler.Update)
	adminBooks.Delete("/:id", adminBookHandler.Delete)

	loans := admin.Group("/prestamos")
	loanHandler := NewLoanHandler(deps.LoanUC, deps.ReportUC)
	loans.Get("/", loanHandler.List)
	loans.Get("/activos", loanHandler.ListActive)
	loans.Get("/multas", loanHandler.ListFined)
	loans.Get("/reporte", loanHandler.FinesReport)
	loans.Put("/actualizar-multas", loanHandler.Sweep)
	loans.Put("/:id/devolver", loanHandler.Return)
	loans.Put("/:id/pagar-multa", loanHandler.PayFine)

	users := admin.Group("/usuarios")
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
