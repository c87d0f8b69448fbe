package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/biblioteca-api/docs"
	"github.com/jhoicas/biblioteca-api/internal/application/auth"
	apploan "github.com/jhoicas/biblioteca-api/internal/application/loan"
	"github.com/jhoicas/biblioteca-api/internal/application/report"
	"github.com/jhoicas/biblioteca-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/biblioteca-api/internal/infrastructure/pdf"
	"github.com/jhoicas/biblioteca-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/biblioteca-api/internal/interfaces/http"
	"github.com/jhoicas/biblioteca-api/pkg/config"
	"github.com/jhoicas/biblioteca-api/pkg/logger"
)

// @title           Biblioteca API
// @version         1.0
// @description     Backend de gestión de biblioteca: catálogo, préstamos y multas.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	bookRepo := postgres.NewBookRepository(pool)
	loanRepo := postgres.NewLoanRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, bookRepo)
	bookUC := usecase.NewBookUseCase(bookRepo, categoryRepo, loanRepo)

	clock := apploan.SystemClock{}
	loanUC := apploan.NewLoanUseCase(txRunner, userRepo, loanRepo, clock, apploan.Config{
		PeriodDays:     cfg.Loan.PeriodDays,
		FineRatePerDay: cfg.Loan.FineRatePerDay,
	})

	// PDF: reporte de préstamos con multa para administración
	pdfGenerator := infrapdf.NewMarotoFinesReportGenerator()
	reportUC := report.NewFinesReportUseCase(loanRepo, userRepo, bookRepo, pdfGenerator, clock)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Biblioteca API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// Portadas subidas se sirven como estáticos
	app.Static(cfg.Upload.PublicURL, cfg.Upload.Dir)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		BookUC:     bookUC,
		CategoryUC: categoryUC,
		UserUC:     userUC,
		LoanUC:     loanUC,
		ReportUC:   reportUC,
		Upload:     cfg.Upload,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
