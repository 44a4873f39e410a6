package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/prodline/workorder-tracker/internal/persistence"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    *persistence.Postgres
	redis       *persistence.Redis
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, postgres *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, postgres: postgres, redis: redis}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	if h.postgres != nil && h.postgres.Pool != nil {
		if err := h.postgres.Pool.Ping(ctx); err != nil {
			depStatus["postgres"] = "unreachable"
			ready = false
		} else {
			depStatus["postgres"] = "ok"
		}
	} else {
		depStatus["postgres"] = "not configured"
		ready = false
	}

	if err := h.redis.Ping(ctx); err != nil {
		depStatus["redis"] = "unreachable"
	} else {
		depStatus["redis"] = "ok"
	}

	status := http.StatusOK
	overall := "ready"
	if !ready {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{
		"status":       overall,
		"service":      h.serviceName,
		"version":      h.version,
		"dependencies": depStatus,
	})
}
