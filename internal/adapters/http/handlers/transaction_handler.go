package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"starwash-api/internal/core/domain"
	"starwash-api/internal/core/services"
	"starwash-api/internal/pkg/pagination"
	"starwash-api/internal/pkg/response"
)

// TransactionHandler handles laundry order endpoints
type TransactionHandler struct {
	txService      *services.TransactionService
	receiptService *services.ReceiptService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(txService *services.TransactionService, receiptService *services.ReceiptService) *TransactionHandler {
	return &TransactionHandler{
		txService:      txService,
		receiptService: receiptService,
	}
}

// List lists orders newest first with pagination
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	txs, total, err := h.txService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list transactions")
	}

	return c.JSON(pagination.NewResponse(txs, params, total))
}

// Get returns one order
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	tx, err := h.txService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return response.NotFound(c, "Transaction not found")
		}
		return response.InternalServerError(c, "Failed to load transaction")
	}

	return response.Success(c, "", tx)
}

// Create registers a new laundry order
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var req services.CreateTransactionInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if userID, ok := c.Locals("userID").(uint); ok {
		req.CreatedBy = userID
	}

	tx, err := h.txService.Create(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Customer name, a valid service and at least one load are required")
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Service type not found")
		case errors.Is(err, domain.ErrInsufficientStock):
			return response.UnprocessableEntity(c, "Not enough consumable stock")
		default:
			return response.InternalServerError(c, "Failed to create transaction")
		}
	}

	return response.Created(c, "Transaction created", tx)
}

// Update applies field corrections to an order
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	var req services.UpdateTransactionInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tx, err := h.txService.Update(c.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTransactionNotFound):
			return response.NotFound(c, "Transaction not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid field values")
		default:
			return response.InternalServerError(c, "Failed to update transaction")
		}
	}

	return response.Success(c, "Transaction updated", tx)
}

// Advance moves an order one step along the laundry flow
func (h *TransactionHandler) Advance(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	tx, err := h.txService.AdvanceStatus(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTransactionNotFound):
			return response.NotFound(c, "Transaction not found")
		case errors.Is(err, domain.ErrFlowFinished):
			return response.UnprocessableEntity(c, "Laundry is already done")
		default:
			return response.InternalServerError(c, "Failed to advance status")
		}
	}

	return response.Success(c, "Status advanced", tx)
}

// Pay settles an unpaid order
func (h *TransactionHandler) Pay(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	var req struct {
		AmountGiven float64 `json:"amount_given"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tx, err := h.txService.MarkPaid(c.Context(), id, req.AmountGiven)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTransactionNotFound):
			return response.NotFound(c, "Transaction not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Amount given is less than the price")
		default:
			return response.InternalServerError(c, "Failed to record payment")
		}
	}

	return response.Success(c, "Payment recorded", tx)
}

// Claim hands the laundry over to the customer
func (h *TransactionHandler) Claim(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	tx, err := h.txService.Claim(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTransactionNotFound):
			return response.NotFound(c, "Transaction not found")
		case errors.Is(err, domain.ErrAlreadyClaimed):
			return response.Conflict(c, "Laundry already claimed")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.UnprocessableEntity(c, "Order must be done and paid before pickup")
		default:
			return response.InternalServerError(c, "Failed to claim laundry")
		}
	}

	return response.Success(c, "Laundry claimed", tx)
}

// Delete soft deletes an order (Admin only)
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.txService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return response.NotFound(c, "Transaction not found")
		}
		return response.InternalServerError(c, "Failed to delete transaction")
	}

	return response.Success(c, "Transaction deleted", nil)
}

// Receipt returns the printable receipt payload for an order
func (h *TransactionHandler) Receipt(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	receipt, err := h.receiptService.Build(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return response.NotFound(c, "Transaction not found")
		}
		return response.InternalServerError(c, "Failed to build receipt")
	}

	return response.Success(c, "", receipt)
}

// QRCode returns a PNG QR code pointing at the public tracking page
func (h *TransactionHandler) QRCode(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	png, err := h.receiptService.QRCode(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return response.NotFound(c, "Transaction not found")
		}
		return response.InternalServerError(c, "Failed to render QR code")
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}
