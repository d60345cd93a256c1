package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/caminhar/clinic-api/internal/api/http/handlers"
	"github.com/caminhar/clinic-api/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Patients       *handlers.PatientsHandler
	Consultations  *handlers.ConsultationsHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
	Policy         *auth.AccessPolicy
}

// RegisterRoutes wires HTTP routes. The authentication filter runs on
// every request and the access policy right after it, so route handlers
// never carry their own guards.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.AuthMiddleware.Handle)
	app.Use(cfg.Policy.Enforce())

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)

	patients := app.Group("/patients")
	patients.Get("/", cfg.Patients.List)
	patients.Post("/", cfg.Patients.Create)
	patients.Get("/:id", cfg.Patients.Get)
	patients.Put("/:id", cfg.Patients.Update)
	patients.Delete("/:id", cfg.Patients.Delete)

	consultations := app.Group("/consultations")
	consultations.Get("/", cfg.Consultations.List)
	consultations.Post("/", cfg.Consultations.Create)
	consultations.Get("/:id", cfg.Consultations.Get)
	consultations.Put("/:id", cfg.Consultations.Update)
	consultations.Delete("/:id", cfg.Consultations.Delete)

	app.Get("/dashboard/stats", cfg.Dashboard.Stats)
}
