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

	"github.com/jhoicas/Embudos-api/internal/application/auth"
	apppipeline "github.com/jhoicas/Embudos-api/internal/application/pipeline"
	"github.com/jhoicas/Embudos-api/internal/application/registration"
	"github.com/jhoicas/Embudos-api/internal/application/usecase"
	"github.com/jhoicas/Embudos-api/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/Embudos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Embudos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Embudos-api/internal/interfaces/http"
	"github.com/jhoicas/Embudos-api/pkg/config"
	"github.com/jhoicas/Embudos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	accountRepo := postgres.NewAccountRepository(pool)
	businessRepo := postgres.NewBusinessRepository(pool)
	verificationRepo := postgres.NewVerificationRepository(pool)
	funnelRepo := postgres.NewFunnelRepository(pool)
	prospectRepo := postgres.NewProspectRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mailer := mail.NewSMTPSender(cfg.SMTP)

	registrationUC := registration.NewRegistrationUseCase(
		accountRepo, verificationRepo, txRunner, mailer, mailer,
		registration.JWTConfig{
			Secret:      cfg.JWT.Secret,
			Issuer:      cfg.JWT.Issuer,
			SessionDays: cfg.JWT.SessionDays,
		},
		registration.Config{
			Cooldown: time.Duration(cfg.Reg.CooldownSeconds) * time.Second,
			CodeTTL:  time.Duration(cfg.Reg.CodeTTLMinutes) * time.Minute,
		},
		log.Component("registration"),
	)

	authUC := auth.NewAuthUseCase(accountRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Tablero de pipeline: una transición en vuelo por prospecto
	board := apppipeline.NewBoard(prospectRepo)

	funnelUC := usecase.NewFunnelUseCase(funnelRepo)
	prospectUC := usecase.NewProspectUseCase(prospectRepo, funnelRepo, board)
	clientUC := usecase.NewClientUseCase(clientRepo)
	taskUC := usecase.NewTaskUseCase(taskRepo)

	// PDF: reporte de embudo por etapas
	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := usecase.NewReportUseCase(funnelRepo, prospectRepo, businessRepo, pdfGenerator)

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
		Title:    "Embudos CRM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegistrationUC: registrationUC,
		AuthUC:         authUC,
		FunnelUC:       funnelUC,
		ProspectUC:     prospectUC,
		ClientUC:       clientUC,
		TaskUC:         taskUC,
		ReportUC:       reportUC,
		JWTSecret:      cfg.JWT.Secret,
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
