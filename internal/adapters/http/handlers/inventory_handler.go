package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"starwash-api/internal/adapters/persistence/models"
	"starwash-api/internal/adapters/persistence/repositories"
	"starwash-api/internal/core/domain"
	"starwash-api/internal/pkg/response"
)

// InventoryHandler handles consumable stock endpoints
type InventoryHandler struct {
	inventoryRepo repositories.InventoryRepository
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryRepo repositories.InventoryRepository) *InventoryHandler {
	return &InventoryHandler{inventoryRepo: inventoryRepo}
}

// inventoryItemView decorates an item with its low-stock flag
type inventoryItemView struct {
	*models.InventoryItem
	LowStock bool `json:"low_stock"`
}

// List lists all inventory items
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	items, err := h.inventoryRepo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list inventory")
	}

	views := make([]inventoryItemView, 0, len(items))
	for _, item := range items {
		views = append(views, inventoryItemView{InventoryItem: item, LowStock: item.IsLowStock()})
	}

	return response.Success(c, "", views)
}

// Get returns one inventory item
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	item, err := h.inventoryRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Inventory item not found")
		}
		return response.InternalServerError(c, "Failed to load inventory item")
	}

	return response.Success(c, "", inventoryItemView{InventoryItem: item, LowStock: item.IsLowStock()})
}

// Create adds an inventory item
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var item models.InventoryItem
	if err := c.BodyParser(&item); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if item.Name == "" || item.Quantity < 0 || item.UnitPrice < 0 {
		return response.BadRequest(c, "Name is required; quantity and price must be non-negative")
	}
	if item.Kind == "" {
		item.Kind = models.ItemKindSupply
	}

	item.ID = 0
	if err := h.inventoryRepo.Create(c.Context(), &item); err != nil {
		return response.InternalServerError(c, "Failed to create inventory item")
	}

	return response.Created(c, "Inventory item created", item)
}

// Update edits an inventory item
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	item, err := h.inventoryRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Inventory item not found")
		}
		return response.InternalServerError(c, "Failed to load inventory item")
	}

	var req models.InventoryItem
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Kind != "" {
		item.Kind = req.Kind
	}
	if req.Unit != "" {
		item.Unit = req.Unit
	}
	if req.UnitPrice >= 0 {
		item.UnitPrice = req.UnitPrice
	}
	if req.LowThreshold >= 0 {
		item.LowThreshold = req.LowThreshold
	}

	if err := h.inventoryRepo.Update(c.Context(), item); err != nil {
		return response.InternalServerError(c, "Failed to update inventory item")
	}

	return response.Success(c, "Inventory item updated", item)
}

// Restock adjusts stock by a delta (positive restock, negative correction)
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.BodyParser(&req); err != nil || req.Delta == 0 {
		return response.BadRequest(c, "Non-zero delta is required")
	}

	if err := h.inventoryRepo.AdjustQuantity(c.Context(), id, req.Delta); err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return response.UnprocessableEntity(c, "Stock cannot go below zero")
		}
		return response.InternalServerError(c, "Failed to adjust stock")
	}

	item, err := h.inventoryRepo.GetByID(c.Context(), id)
	if err != nil {
		return response.InternalServerError(c, "Failed to load inventory item")
	}

	return response.Success(c, "Stock adjusted", inventoryItemView{InventoryItem: item, LowStock: item.IsLowStock()})
}

// Delete removes an inventory item
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.inventoryRepo.Delete(c.Context(), id); err != nil {
		return response.InternalServerError(c, "Failed to delete inventory item")
	}

	return response.Success(c, "Inventory item deleted", nil)
}
