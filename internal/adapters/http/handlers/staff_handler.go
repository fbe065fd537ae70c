package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"starwash-api/internal/core/domain"
	"starwash-api/internal/core/services"
	"starwash-api/internal/pkg/pagination"
	"starwash-api/internal/pkg/response"
)

// StaffHandler handles staff account management endpoints (Admin only)
type StaffHandler struct {
	staffService *services.StaffService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffService *services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// List lists staff accounts with pagination
func (h *StaffHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, total, err := h.staffService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list staff")
	}

	return c.JSON(pagination.NewResponse(users, params, total))
}

// Get returns one staff account
func (h *StaffHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	user, err := h.staffService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "Staff account not found")
		}
		return response.InternalServerError(c, "Failed to load staff account")
	}

	return response.Success(c, "", user)
}

// Create creates a staff or admin account
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var req services.CreateStaffInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return response.BadRequest(c, "Username and password are required")
	}

	user, err := h.staffService.Create(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRole):
			return response.BadRequest(c, "Role must be ADMIN or STAFF")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Password must be at least 8 characters")
		case errors.Is(err, domain.ErrUserAlreadyExists):
			return response.Conflict(c, "Username already exists")
		default:
			return response.InternalServerError(c, "Failed to create staff account")
		}
	}

	return response.Created(c, "Staff account created", user)
}

// Update applies partial changes to an account
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	var req services.UpdateStaffInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.staffService.Update(c.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "Staff account not found")
		case errors.Is(err, domain.ErrInvalidRole):
			return response.BadRequest(c, "Role must be ADMIN or STAFF")
		default:
			return response.InternalServerError(c, "Failed to update staff account")
		}
	}

	return response.Success(c, "Staff account updated", user)
}

// ResetPassword sets a new password for an account
func (h *StaffHandler) ResetPassword(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.staffService.ResetPassword(c.Context(), id, req.Password); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "Staff account not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Password must be at least 8 characters")
		default:
			return response.InternalServerError(c, "Failed to reset password")
		}
	}

	return response.Success(c, "Password reset", nil)
}

// Delete soft deletes an account
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.staffService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "Staff account not found")
		}
		return response.InternalServerError(c, "Failed to delete staff account")
	}

	return response.Success(c, "Staff account deleted", nil)
}

// parseID reads the :id route parameter
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
