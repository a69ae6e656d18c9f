package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Embudos-api/internal/application/auth"
	"github.com/jhoicas/Embudos-api/internal/application/registration"
	"github.com/jhoicas/Embudos-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegistrationUC *registration.RegistrationUseCase
	AuthUC         *auth.AuthUseCase
	FunnelUC       *usecase.FunnelUseCase
	ProspectUC     *usecase.ProspectUseCase
	ClientUC       *usecase.ClientUseCase
	TaskUC         *usecase.TaskUseCase
	ReportUC       *usecase.ReportUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth y registro por fases (público)
	authGroup := api.Group("/auth")
	registrationHandler := NewRegistrationHandler(deps.RegistrationUC)
	authGroup.Post("/initiate-registration", registrationHandler.Initiate)
	authGroup.Post("/complete-registration", registrationHandler.Complete)
	authGroup.Post("/registration-business", registrationHandler.CompleteBusiness)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas: Bearer Token + negocio adjunto (cuenta ACTIVE)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireBusiness())

	// Funnels (protegido)
	funnels := protected.Group("/funnels")
	funnelHandler := NewFunnelHandler(deps.FunnelUC)
	funnels.Post("/", funnelHandler.Create)
	funnels.Get("/", funnelHandler.List)
	funnels.Get("/:id", funnelHandler.GetByID)
	reportHandler := NewReportHandler(deps.ReportUC)
	funnels.Get("/:id/report.pdf", reportHandler.FunnelPDF)

	// Prospects + tablero (protegido)
	prospects := protected.Group("/prospects")
	prospectHandler := NewProspectHandler(deps.ProspectUC)
	prospects.Post("/", prospectHandler.Create)
	prospects.Get("/", prospectHandler.ListByFunnel)
	prospects.Get("/:id", prospectHandler.GetByID)
	prospects.Put("/:id", prospectHandler.Update)
	prospects.Put("/:id/stage", prospectHandler.MoveStage)
	prospects.Post("/:id/drag", prospectHandler.Drag)

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Tasks (protegido)
	tasks := protected.Group("/tasks")
	taskHandler := NewTaskHandler(deps.TaskUC)
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/", taskHandler.List)
	tasks.Get("/:id", taskHandler.GetByID)
	tasks.Put("/:id", taskHandler.Update)
	tasks.Put("/:id/status", taskHandler.UpdateStatus)
}
