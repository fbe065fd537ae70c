package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"starwash-api/internal/adapters/persistence/models"
	"starwash-api/internal/adapters/persistence/repositories"
	"starwash-api/internal/core/domain"
)

// TransactionService handles laundry order business logic
type TransactionService struct {
	txRepo        repositories.TransactionRepository
	serviceRepo   repositories.ServiceRepository
	inventoryRepo repositories.InventoryRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	txRepo repositories.TransactionRepository,
	serviceRepo repositories.ServiceRepository,
	inventoryRepo repositories.InventoryRepository,
) *TransactionService {
	return &TransactionService{
		txRepo:        txRepo,
		serviceRepo:   serviceRepo,
		inventoryRepo: inventoryRepo,
	}
}

// CreateTransactionInput represents new order input. AmountGiven absent or
// zero means the order is left Unpaid; Change always defaults to 0 and is
// recomputed here, never trusted from the caller.
type CreateTransactionInput struct {
	CustomerName string  `json:"customer_name"`
	ServiceID    uint    `json:"service_id"`
	Loads        int     `json:"loads"`
	DetergentQty int     `json:"detergent_qty"`
	SoftenerQty  int     `json:"softener_qty"`
	AmountGiven  float64 `json:"amount_given"`
	CreatedBy    uint    `json:"-"`
}

// UpdateTransactionInput represents field corrections. Nil fields are untouched.
type UpdateTransactionInput struct {
	CustomerName *string `json:"customer_name"`
	Loads        *int    `json:"loads"`
}

// Create prices a new order, consumes consumable stock and stores it
func (s *TransactionService) Create(ctx context.Context, input *CreateTransactionInput) (*models.Transaction, error) {
	if strings.TrimSpace(input.CustomerName) == "" || input.Loads < 1 {
		return nil, domain.ErrInvalidInput
	}
	if input.DetergentQty < 0 || input.SoftenerQty < 0 || input.AmountGiven < 0 {
		return nil, domain.ErrInvalidInput
	}

	// 1. Resolve the service type and base price
	svc, err := s.serviceRepo.GetByID(ctx, input.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if !svc.IsActive {
		return nil, domain.ErrInvalidInput
	}

	price := svc.PricePerLoad * float64(input.Loads)

	// 2. Price and consume consumables
	if input.DetergentQty > 0 {
		p, err := s.consume(ctx, models.ItemKindDetergent, input.DetergentQty)
		if err != nil {
			return nil, err
		}
		price += p
	}
	if input.SoftenerQty > 0 {
		p, err := s.consume(ctx, models.ItemKindSoftener, input.SoftenerQty)
		if err != nil {
			return nil, err
		}
		price += p
	}

	// 3. Settle payment
	paymentStatus := domain.PaymentUnpaid
	change := 0.0
	if input.AmountGiven >= price && input.AmountGiven > 0 {
		paymentStatus = domain.PaymentPaid
		change = input.AmountGiven - price
	}

	tx := &models.Transaction{
		InvoiceNo:     newInvoiceNo(),
		CustomerName:  strings.TrimSpace(input.CustomerName),
		ServiceType:   svc.Name,
		Loads:         input.Loads,
		DetergentQty:  input.DetergentQty,
		SoftenerQty:   input.SoftenerQty,
		Price:         price,
		AmountGiven:   input.AmountGiven,
		Change:        change,
		PaymentStatus: string(paymentStatus),
		LaundryStatus: string(domain.LaundryPending),
		PickupStatus:  string(domain.PickupUnclaimed),
		CreatedBy:     input.CreatedBy,
	}

	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	log.Printf("✅ Transaction created: %s (%s, %d loads, %.2f)",
		tx.InvoiceNo, tx.CustomerName, tx.Loads, tx.Price)
	return tx, nil
}

// consume decrements stock for a consumable kind and returns its line price.
func (s *TransactionService) consume(ctx context.Context, kind string, qty int) (float64, error) {
	item, err := s.inventoryRepo.GetByKind(ctx, kind)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrInsufficientStock
		}
		return 0, err
	}
	if err := s.inventoryRepo.AdjustQuantity(ctx, item.ID, -qty); err != nil {
		return 0, err
	}
	return item.UnitPrice * float64(qty), nil
}

// Get returns one order by ID
func (s *TransactionService) Get(ctx context.Context, id uint) (*models.Transaction, error) {
	tx, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return tx, nil
}

// GetByInvoice returns one order by invoice number
func (s *TransactionService) GetByInvoice(ctx context.Context, invoiceNo string) (*models.Transaction, error) {
	tx, err := s.txRepo.GetByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return tx, nil
}

// List lists orders newest first
func (s *TransactionService) List(ctx context.Context, offset, limit int) ([]*models.Transaction, int64, error) {
	return s.txRepo.List(ctx, offset, limit)
}

// Update applies field corrections. Loads changes reprice the base service
// portion; consumable lines stay as sold.
func (s *TransactionService) Update(ctx context.Context, id uint, input *UpdateTransactionInput) (*models.Transaction, error) {
	tx, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CustomerName != nil {
		name := strings.TrimSpace(*input.CustomerName)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		tx.CustomerName = name
	}
	if input.Loads != nil {
		if *input.Loads < 1 {
			return nil, domain.ErrInvalidInput
		}
		svc, err := s.serviceRepo.GetByName(ctx, tx.ServiceType)
		if err != nil {
			return nil, err
		}
		tx.Price += svc.PricePerLoad * float64(*input.Loads-tx.Loads)
		tx.Loads = *input.Loads
	}

	if err := s.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// AdvanceStatus walks the order one step along the laundry flow
func (s *TransactionService) AdvanceStatus(ctx context.Context, id uint) (*models.Transaction, error) {
	tx, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next, ok := domain.NextLaundryStatus(domain.LaundryStatus(tx.LaundryStatus))
	if !ok {
		return nil, domain.ErrFlowFinished
	}
	tx.LaundryStatus = string(next)

	if err := s.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}
	log.Printf("✅ Transaction %s advanced to %s", tx.InvoiceNo, next)
	return tx, nil
}

// MarkPaid settles an unpaid order. A zero amountGiven records an exact
// payment (change 0, the stated defaulting rule).
func (s *TransactionService) MarkPaid(ctx context.Context, id uint, amountGiven float64) (*models.Transaction, error) {
	tx, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if amountGiven == 0 {
		amountGiven = tx.Price
	}
	if amountGiven < tx.Price {
		return nil, domain.ErrInvalidInput
	}

	tx.AmountGiven = amountGiven
	tx.Change = amountGiven - tx.Price
	tx.PaymentStatus = string(domain.PaymentPaid)

	if err := s.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Claim hands the laundry over. Only finished, paid orders can be claimed.
func (s *TransactionService) Claim(ctx context.Context, id uint) (*models.Transaction, error) {
	tx, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if domain.PickupStatus(tx.PickupStatus) == domain.PickupClaimed {
		return nil, domain.ErrAlreadyClaimed
	}
	if domain.LaundryStatus(tx.LaundryStatus) != domain.LaundryDone ||
		domain.PaymentStatus(tx.PaymentStatus) != domain.PaymentPaid {
		return nil, domain.ErrInvalidInput
	}

	tx.PickupStatus = string(domain.PickupClaimed)
	if err := s.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}
	log.Printf("✅ Transaction %s claimed", tx.InvoiceNo)
	return tx, nil
}

// Delete soft deletes an order
func (s *TransactionService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.txRepo.Delete(ctx, id)
}

// ExpireUnclaimed marks finished orders untouched for expireDays as Expired
func (s *TransactionService) ExpireUnclaimed(ctx context.Context, expireDays int) (int64, error) {
	if expireDays < 1 {
		expireDays = 1
	}
	cutoff := time.Now().AddDate(0, 0, -expireDays)
	return s.txRepo.MarkExpired(ctx, cutoff)
}

// newInvoiceNo builds a short printable invoice number. The uuid fragment
// keeps it unique without a counter table.
func newInvoiceNo() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return fmt.Sprintf("SW-%s-%s", time.Now().Format("20060102"), id[:8])
}
