package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tohally/academy-web/internal/api/http/handlers"
	"github.com/tohally/academy-web/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Pages    *handlers.PagesHandler
	Auth     *handlers.AuthHandler
	Intake   *handlers.IntakeHandler
	Students *handlers.StudentsHandler
	Sessions *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	// Every page route resolves the session cookie so templates know the
	// current administrator; only the admin panel requires one.
	app.Use(cfg.Sessions.LoadPrincipal)

	app.Get("/", cfg.Pages.Home)
	app.Get("/nosotros", cfg.Pages.About)
	app.Get("/servicios", cfg.Pages.Services)
	app.Get("/noticias", cfg.Pages.News)
	app.Get("/galeria", cfg.Pages.Gallery)

	app.Get("/contacto", cfg.Intake.ContactPage)
	app.Post("/contacto", cfg.Intake.Contact)

	app.Get("/login", cfg.Auth.LoginPage)
	app.Post("/login", cfg.Auth.Login)

	// The guard is attached per route rather than via a prefix group so
	// unmatched paths fall through to the regular 404 instead of a login
	// redirect.
	guard := cfg.Sessions.RequireSession
	app.Get("/logout", guard, cfg.Auth.Logout)
	app.Get("/movimiento", guard, cfg.Students.List)
	app.Get("/inscribir", guard, cfg.Students.EnrollForm)
	app.Post("/inscribir", guard, cfg.Students.Enroll)
	app.Get("/inscribir/:id", guard, cfg.Students.EnrollForm)
	app.Post("/inscribir/:id", guard, cfg.Students.Enroll)
	app.Post("/eliminar_alumno/:id", guard, cfg.Students.Delete)
}
