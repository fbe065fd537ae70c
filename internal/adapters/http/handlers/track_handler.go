package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"starwash-api/internal/core/domain"
	"starwash-api/internal/core/services"
	"starwash-api/internal/pkg/response"
)

// TrackHandler handles the public order-tracking endpoint backing the
// customer landing page. No auth; it only ever reveals progress, never
// customer details or amounts.
type TrackHandler struct {
	txService *services.TransactionService
}

// NewTrackHandler creates a new track handler
func NewTrackHandler(txService *services.TransactionService) *TrackHandler {
	return &TrackHandler{txService: txService}
}

// trackView is the public projection of an order
type trackView struct {
	InvoiceNo     string                 `json:"invoice_no"`
	LaundryStatus string                 `json:"laundry_status"`
	PickupStatus  string                 `json:"pickup_status"`
	Flow          []domain.LaundryStatus `json:"flow"`
	Step          int                    `json:"step"`
}

// Track returns the laundry progress for an invoice number
func (h *TrackHandler) Track(c *fiber.Ctx) error {
	invoiceNo := strings.TrimSpace(c.Params("invoice"))
	if invoiceNo == "" {
		return response.BadRequest(c, "Invoice number is required")
	}

	tx, err := h.txService.GetByInvoice(c.Context(), invoiceNo)
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			return response.NotFound(c, "Invoice not found")
		}
		return response.InternalServerError(c, "Failed to track order")
	}

	return response.Success(c, "", trackView{
		InvoiceNo:     tx.InvoiceNo,
		LaundryStatus: tx.LaundryStatus,
		PickupStatus:  tx.PickupStatus,
		Flow:          domain.LaundryFlow,
		Step:          domain.FlowIndex(domain.LaundryStatus(tx.LaundryStatus)),
	})
}
