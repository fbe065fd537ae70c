package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"starwash-api/internal/adapters/persistence/models"
	"starwash-api/internal/adapters/persistence/repositories"
	"starwash-api/internal/pkg/response"
)

// MasterHandler handles service-type and machine master data (Admin only)
type MasterHandler struct {
	serviceRepo repositories.ServiceRepository
	machineRepo repositories.MachineRepository
}

// NewMasterHandler creates a new master data handler
func NewMasterHandler(serviceRepo repositories.ServiceRepository, machineRepo repositories.MachineRepository) *MasterHandler {
	return &MasterHandler{
		serviceRepo: serviceRepo,
		machineRepo: machineRepo,
	}
}

// ============================================================
// Service types
// ============================================================

// ListServices lists all service types
func (h *MasterHandler) ListServices(c *fiber.Ctx) error {
	svcs, err := h.serviceRepo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list services")
	}
	return response.Success(c, "", svcs)
}

// GetService returns one service type
func (h *MasterHandler) GetService(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	svc, err := h.serviceRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Service not found")
		}
		return response.InternalServerError(c, "Failed to load service")
	}
	return response.Success(c, "", svc)
}

// CreateService creates a service type
func (h *MasterHandler) CreateService(c *fiber.Ctx) error {
	var svc models.ServiceType
	if err := c.BodyParser(&svc); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if svc.Name == "" || svc.PricePerLoad < 0 {
		return response.BadRequest(c, "Name is required and price must be non-negative")
	}

	svc.ID = 0
	svc.IsActive = true
	if err := h.serviceRepo.Create(c.Context(), &svc); err != nil {
		return response.InternalServerError(c, "Failed to create service")
	}
	return response.Created(c, "Service created", svc)
}

// UpdateService edits a service type
func (h *MasterHandler) UpdateService(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	svc, err := h.serviceRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Service not found")
		}
		return response.InternalServerError(c, "Failed to load service")
	}

	var req struct {
		Name         *string  `json:"name"`
		Description  *string  `json:"description"`
		PricePerLoad *float64 `json:"price_per_load"`
		IsActive     *bool    `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.PricePerLoad != nil {
		if *req.PricePerLoad < 0 {
			return response.BadRequest(c, "Price must be non-negative")
		}
		svc.PricePerLoad = *req.PricePerLoad
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := h.serviceRepo.Update(c.Context(), svc); err != nil {
		return response.InternalServerError(c, "Failed to update service")
	}
	return response.Success(c, "Service updated", svc)
}

// DeleteService removes a service type
func (h *MasterHandler) DeleteService(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}
	if err := h.serviceRepo.Delete(c.Context(), id); err != nil {
		return response.InternalServerError(c, "Failed to delete service")
	}
	return response.Success(c, "Service deleted", nil)
}

// ============================================================
// Machines
// ============================================================

// ListMachines lists all machines
func (h *MasterHandler) ListMachines(c *fiber.Ctx) error {
	machines, err := h.machineRepo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list machines")
	}
	return response.Success(c, "", machines)
}

// CreateMachine registers a machine
func (h *MasterHandler) CreateMachine(c *fiber.Ctx) error {
	var m models.Machine
	if err := c.BodyParser(&m); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if m.Name == "" || (m.Type != "Washer" && m.Type != "Dryer") {
		return response.BadRequest(c, "Name is required and type must be Washer or Dryer")
	}
	if m.Status == "" {
		m.Status = models.MachineAvailable
	}

	m.ID = 0
	if err := h.machineRepo.Create(c.Context(), &m); err != nil {
		return response.InternalServerError(c, "Failed to create machine")
	}
	return response.Created(c, "Machine created", m)
}

// UpdateMachine edits a machine (name, capacity, status)
func (h *MasterHandler) UpdateMachine(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	m, err := h.machineRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Machine not found")
		}
		return response.InternalServerError(c, "Failed to load machine")
	}

	var req struct {
		Name       *string  `json:"name"`
		CapacityKg *float64 `json:"capacity_kg"`
		Status     *string  `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.CapacityKg != nil {
		m.CapacityKg = *req.CapacityKg
	}
	if req.Status != nil {
		switch *req.Status {
		case models.MachineAvailable, models.MachineInUse, models.MachineMaintenance:
			m.Status = *req.Status
		default:
			return response.BadRequest(c, "Invalid machine status")
		}
	}

	if err := h.machineRepo.Update(c.Context(), m); err != nil {
		return response.InternalServerError(c, "Failed to update machine")
	}
	return response.Success(c, "Machine updated", m)
}

// DeleteMachine removes a machine
func (h *MasterHandler) DeleteMachine(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}
	if err := h.machineRepo.Delete(c.Context(), id); err != nil {
		return response.InternalServerError(c, "Failed to delete machine")
	}
	return response.Success(c, "Machine deleted", nil)
}
