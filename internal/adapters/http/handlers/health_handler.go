package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"starwash-api/internal/config"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// Root handles the root endpoint
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":    "StarWash API",
		"version": "1.0",
		"status":  "running",
	})
}

// HealthCheck reports process and database health
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	dbStatus := "up"
	if err := config.HealthCheck(); err != nil {
		dbStatus = "down"
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"database": dbStatus,
		"uptime":   time.Since(h.startedAt).String(),
	})
}
