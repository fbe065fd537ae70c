package repositories

import (
	"context"
	"time"

	"starwash-api/internal/adapters/persistence/models"
)

// UserRepository defines user data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// AuthSessionRepository defines issued-token tracking
type AuthSessionRepository interface {
	Create(ctx context.Context, session *models.AuthSession) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.AuthSession, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// TransactionRepository defines laundry order data access
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id uint) (*models.Transaction, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*models.Transaction, error)
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Transaction, int64, error)
	ListSince(ctx context.Context, since time.Time) ([]*models.Transaction, error)
	MarkExpired(ctx context.Context, doneBefore time.Time) (int64, error)
}

// InventoryRepository defines consumable stock data access
type InventoryRepository interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	GetByID(ctx context.Context, id uint) (*models.InventoryItem, error)
	GetByKind(ctx context.Context, kind string) (*models.InventoryItem, error)
	Update(ctx context.Context, item *models.InventoryItem) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.InventoryItem, error)
	AdjustQuantity(ctx context.Context, id uint, delta int) error
}

// ServiceRepository defines service-type master data access
type ServiceRepository interface {
	Create(ctx context.Context, svc *models.ServiceType) error
	GetByID(ctx context.Context, id uint) (*models.ServiceType, error)
	GetByName(ctx context.Context, name string) (*models.ServiceType, error)
	Update(ctx context.Context, svc *models.ServiceType) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.ServiceType, error)
}

// MachineRepository defines machine master data access
type MachineRepository interface {
	Create(ctx context.Context, m *models.Machine) error
	GetByID(ctx context.Context, id uint) (*models.Machine, error)
	Update(ctx context.Context, m *models.Machine) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Machine, error)
}

// SettingsRepository defines shop settings access (single row)
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, s *models.Settings) error
}
