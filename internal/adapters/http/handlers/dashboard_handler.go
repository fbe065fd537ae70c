package handlers

import (
	"github.com/gofiber/fiber/v2"

	"starwash-api/internal/core/services"
	"starwash-api/internal/pkg/response"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Admin returns the admin dashboard aggregates
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetAdminDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load admin dashboard")
	}
	return response.Success(c, "", data)
}

// Staff returns the staff dashboard aggregates
func (h *DashboardHandler) Staff(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetStaffDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load staff dashboard")
	}
	return response.Success(c, "", data)
}
