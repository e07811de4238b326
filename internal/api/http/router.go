package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/libenaigi/CUHIRE/internal/api/http/handlers"
	"github.com/libenaigi/CUHIRE/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Jobs           *handlers.JobsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/me", cfg.Users.Me)

	jobs := app.Group("/jobs")
	jobs.Get("/", cfg.Jobs.ListJobs)
	jobs.Get("/:id", cfg.Jobs.GetJob)

	recruiter := []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireRecruiter()}
	jobs.Post("/", append(recruiter, cfg.Jobs.CreateJob)...)
	jobs.Put("/:id", append(recruiter, cfg.Jobs.UpdateJob)...)
	jobs.Delete("/:id", append(recruiter, cfg.Jobs.DeleteJob)...)
}

// NewApp builds the fiber application with global middleware and routes.
func NewApp(mw MiddlewareConfig, routes RouteConfig) *fiber.App {
	if mw.Logger == nil {
		mw.Logger = zap.NewNop()
	}
	app := fiber.New(fiber.Config{
		AppName:      "cuhire",
		ErrorHandler: ErrorHandler(mw.Logger, mw.Metrics),
	})
	RegisterMiddlewares(app, mw)
	RegisterRoutes(app, routes)
	return app
}
