package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/jobboard-api/internal/application/auth"
	"github.com/jhoicas/jobboard-api/internal/application/dto"
	"github.com/jhoicas/jobboard-api/internal/application/intake"
	"github.com/jhoicas/jobboard-api/internal/application/usecase"
	"github.com/jhoicas/jobboard-api/pkg/config"
	"github.com/jhoicas/jobboard-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC   *auth.AuthUseCase
	JobUC    *usecase.JobUseCase
	IntakeUC *intake.IntakeUseCase
	UserUC   *usecase.UserUseCase
	Rate     config.RateConfig
	Log      *logger.Logger
}

// Router registra las rutas de la API bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	jobHandler := NewJobHandler(deps.JobUC, deps.Log)
	appHandler := NewApplicationHandler(deps.IntakeUC, deps.Log)
	adminHandler := NewAdminHandler(deps.UserUC, deps.Log)

	// Auth (público, con límite por IP)
	authLimit := rateLimit(deps.Rate.AuthPerMinute)
	api.Post("/auth/register", authLimit, authHandler.Register)
	api.Post("/auth/login", authLimit, authHandler.Login)

	// Catálogo público
	api.Get("/jobs", jobHandler.List)
	api.Get("/jobs/:id", jobHandler.Get)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.AuthUC, deps.Log))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/user", authHandler.Me)
	protected.Get("/user/jobs", jobHandler.Mine)

	protected.Post("/jobs", jobHandler.Create)
	protected.Put("/jobs/:id", jobHandler.Update)
	protected.Delete("/jobs/:id", jobHandler.Delete)
	protected.Post("/jobs/:id/apply", rateLimit(deps.Rate.ApplyPerMinute), appHandler.Apply)

	protected.Get("/applications", appHandler.List)
	protected.Get("/applications/:id", appHandler.Get)
	protected.Delete("/applications/:id", appHandler.Delete)
	protected.Patch("/applications/:id/status", rateLimit(deps.Rate.StatusPerMinute), appHandler.UpdateStatus)
	protected.Get("/applications/:id/resume", appHandler.Resume)

	protected.Get("/admin/users", adminHandler.ListUsers)
	protected.Patch("/admin/users/:id/role", adminHandler.UpdateRole)
}

// rateLimit límite por IP en ventana de un minuto. perMinute <= 0 desactiva el límite.
func rateLimit(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiadas solicitudes, intenta más tarde"})
		},
	})
}
