package handlers

import (
	"github.com/gofiber/fiber/v2"

	"starwash-api/internal/adapters/persistence/repositories"
	"starwash-api/internal/pkg/response"
)

// SettingsHandler handles shop settings endpoints
type SettingsHandler struct {
	settingsRepo repositories.SettingsRepository
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsRepo repositories.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{settingsRepo: settingsRepo}
}

// Get returns the shop settings
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	s, err := h.settingsRepo.Get(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load settings")
	}
	return response.Success(c, "", s)
}

// Update edits the shop settings (Admin only)
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	s, err := h.settingsRepo.Get(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load settings")
	}

	var req struct {
		ShopName         *string `json:"shop_name"`
		Address          *string `json:"address"`
		Phone            *string `json:"phone"`
		ReceiptFooter    *string `json:"receipt_footer"`
		TrackingBaseURL  *string `json:"tracking_base_url"`
		PickupExpireDays *int    `json:"pickup_expire_days"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.ShopName != nil {
		s.ShopName = *req.ShopName
	}
	if req.Address != nil {
		s.Address = *req.Address
	}
	if req.Phone != nil {
		s.Phone = *req.Phone
	}
	if req.ReceiptFooter != nil {
		s.ReceiptFooter = *req.ReceiptFooter
	}
	if req.TrackingBaseURL != nil {
		s.TrackingBaseURL = *req.TrackingBaseURL
	}
	if req.PickupExpireDays != nil {
		if *req.PickupExpireDays < 1 {
			return response.BadRequest(c, "Pickup expiry must be at least 1 day")
		}
		s.PickupExpireDays = *req.PickupExpireDays
	}

	if err := h.settingsRepo.Update(c.Context(), s); err != nil {
		return response.InternalServerError(c, "Failed to update settings")
	}
	return response.Success(c, "Settings updated", s)
}
