package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prodline/workorder-tracker/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Tickets    *handlers.TicketsHandler
	WorkOrders *handlers.WorkOrdersHandler
	Areas      *handlers.AreasHandler
	Users      *handlers.UsersHandler
}

// RegisterRoutes wires HTTP routes. Authorization is enforced per
// handler through the access guard, not by route-level middleware.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	tickets := app.Group("/tickets")
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Post("/upload", cfg.Tickets.UploadImages)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Patch("/:id", cfg.Tickets.Update)
	tickets.Delete("/:id", cfg.Tickets.Delete)

	workOrders := app.Group("/work-orders")
	workOrders.Post("/", cfg.WorkOrders.Create)
	workOrders.Get("/", cfg.WorkOrders.List)
	workOrders.Get("/:id", cfg.WorkOrders.Get)
	workOrders.Patch("/:id", cfg.WorkOrders.Update)
	workOrders.Delete("/:id", cfg.WorkOrders.Delete)

	areas := app.Group("/areas")
	areas.Post("/", cfg.Areas.Create)
	areas.Get("/", cfg.Areas.List)
	areas.Get("/:id", cfg.Areas.Get)
	areas.Patch("/:id", cfg.Areas.Update)
	areas.Delete("/:id", cfg.Areas.Delete)

	users := app.Group("/users")
	users.Get("/", cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)
	users.Patch("/:id/role", cfg.Users.UpdateRole)
	users.Patch("/:id/access", cfg.Users.UpdateAccess)
	users.Patch("/:id", cfg.Users.UpdateProfile)
	users.Delete("/:id", cfg.Users.Delete)
}
