package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"starwash-api/internal/adapters/persistence/models"
	"starwash-api/internal/core/domain"
)

// transactionRepository implements TransactionRepository
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).First(&tx, id).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).Where("invoice_no = ?", invoiceNo).First(&tx).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

// Delete soft deletes a transaction
func (r *transactionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Transaction{}, id).Error
}

// List lists transactions newest first with pagination. Search and status
// narrowing happen client-side in the table engine; the API hands out the
// window the terminal asked for.
func (r *transactionRepository) List(ctx context.Context, offset, limit int) ([]*models.Transaction, int64, error) {
	var txs []*models.Transaction
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Transaction{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&txs).Error

	return txs, total, err
}

func (r *transactionRepository) ListSince(ctx context.Context, since time.Time) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Find(&txs).Error
	return txs, err
}

// MarkExpired flips Done + Unclaimed orders updated before the cutoff to
// Expired and returns how many rows changed.
func (r *transactionRepository) MarkExpired(ctx context.Context, doneBefore time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("laundry_status = ? AND pickup_status = ? AND updated_at < ?",
			string(domain.LaundryDone), string(domain.PickupUnclaimed), doneBefore).
		Update("pickup_status", string(domain.PickupExpired))
	return res.RowsAffected, res.Error
}
