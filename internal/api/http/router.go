package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tracker-service/internal/api/http/handlers"
	"github.com/spec-kit/tracker-service/internal/auth"
	"github.com/spec-kit/tracker-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Sla            *handlers.SlaHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id/status",
		auth.RequireRole(domain.UserRoleAdmin, domain.UserRoleAgent),
		cfg.Tickets.UpdateStatus)

	sla := app.Group("/sla", cfg.AuthMiddleware.Handle)
	sla.Get("/report",
		auth.RequireRole(domain.UserRoleAdmin, domain.UserRoleAgent),
		cfg.Sla.Report)

	slaAdmin := sla.Group("", auth.RequireRole(domain.UserRoleAdmin))
	slaAdmin.Get("/config", cfg.Sla.GetConfig)
	slaAdmin.Put("/config", cfg.Sla.UpdateConfig)
	slaAdmin.Get("/policies", cfg.Sla.ListPolicies)
	slaAdmin.Put("/policies", cfg.Sla.ReplacePolicies)
}
