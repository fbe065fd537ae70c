package repositories

import (
	"context"

	"gorm.io/gorm"

	"starwash-api/internal/adapters/persistence/models"
	"starwash-api/internal/core/domain"
)

// inventoryRepository implements InventoryRepository
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *inventoryRepository) GetByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetByKind returns the first active item of a kind (Detergent, Softener).
func (r *inventoryRepository) GetByKind(ctx context.Context, kind string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.WithContext(ctx).Where("kind = ?", kind).Order("id").First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) Update(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *inventoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.InventoryItem{}, id).Error
}

func (r *inventoryRepository) List(ctx context.Context) ([]*models.InventoryItem, error) {
	var items []*models.InventoryItem
	err := r.db.WithContext(ctx).Order("name").Find(&items).Error
	return items, err
}

// AdjustQuantity changes stock by delta atomically. Negative deltas that
// would push stock below zero fail with ErrInsufficientStock.
func (r *inventoryRepository) AdjustQuantity(ctx context.Context, id uint, delta int) error {
	res := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}
