package models

import (
	"time"

	"gorm.io/gorm"

	"starwash-api/internal/core/domain"
)

// User represents users table (shop staff and admins)
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	FullName  string         `gorm:"size:100" json:"full_name"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'STAFF'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// AuthSession represents auth_sessions table. One row per issued access
// token, kept so logout can revoke server-side.
type AuthSession struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (AuthSession) TableName() string {
	return "auth_sessions"
}

func (s *AuthSession) IsRevoked() bool {
	return s.RevokedAt != nil
}

func (s *AuthSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Transaction represents transactions table (laundry orders)
type Transaction struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	InvoiceNo     string         `gorm:"uniqueIndex;size:40;not null" json:"invoice_no"`
	CustomerName  string         `gorm:"size:100;not null;index" json:"customer_name"`
	ServiceType   string         `gorm:"size:50;not null" json:"service_type"`
	Loads         int            `gorm:"not null" json:"loads"`
	DetergentQty  int            `gorm:"default:0" json:"detergent_qty"`
	SoftenerQty   int            `gorm:"default:0" json:"softener_qty"`
	Price         float64        `gorm:"type:decimal(10,2);not null" json:"price"`
	AmountGiven   float64        `gorm:"type:decimal(10,2);default:0" json:"amount_given"`
	Change        float64        `gorm:"type:decimal(10,2);default:0" json:"change"`
	PaymentStatus string         `gorm:"size:20;default:'Unpaid';index" json:"payment_status"`
	LaundryStatus string         `gorm:"size:20;default:'Pending';index" json:"laundry_status"`
	PickupStatus  string         `gorm:"size:20;default:'Unclaimed';index" json:"pickup_status"`
	CreatedBy     uint           `gorm:"index" json:"created_by"`
	CreatedAt     time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// ToDomain converts the row to the domain record used by the table engine.
func (t *Transaction) ToDomain() domain.Transaction {
	return domain.Transaction{
		ID:            t.ID,
		InvoiceNo:     t.InvoiceNo,
		CustomerName:  t.CustomerName,
		ServiceType:   t.ServiceType,
		Loads:         t.Loads,
		DetergentQty:  t.DetergentQty,
		SoftenerQty:   t.SoftenerQty,
		Price:         t.Price,
		AmountGiven:   t.AmountGiven,
		Change:        t.Change,
		PaymentStatus: domain.PaymentStatus(t.PaymentStatus),
		LaundryStatus: domain.LaundryStatus(t.LaundryStatus),
		PickupStatus:  domain.PickupStatus(t.PickupStatus),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// ServiceType represents service_types table (Wash & Dry, Full Service, ...)
type ServiceType struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"uniqueIndex;size:50;not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	PricePerLoad float64        `gorm:"type:decimal(10,2);not null" json:"price_per_load"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ServiceType) TableName() string {
	return "service_types"
}

// Inventory item kinds
const (
	ItemKindDetergent = "Detergent"
	ItemKindSoftener  = "Softener"
	ItemKindSupply    = "Supply"
)

// InventoryItem represents inventory_items table (consumables sold per order)
type InventoryItem struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"uniqueIndex;size:50;not null" json:"name"`
	Kind         string         `gorm:"size:20;default:'Supply';index" json:"kind"`
	Quantity     int            `gorm:"default:0" json:"quantity"`
	Unit         string         `gorm:"size:20" json:"unit"`
	UnitPrice    float64        `gorm:"type:decimal(10,2);default:0" json:"unit_price"`
	LowThreshold int            `gorm:"default:10" json:"low_threshold"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

// IsLowStock reports whether quantity fell to or below the threshold.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.LowThreshold
}

// Machine statuses
const (
	MachineAvailable   = "Available"
	MachineInUse       = "In Use"
	MachineMaintenance = "Maintenance"
)

// Machine represents machines table (washers and dryers)
type Machine struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"uniqueIndex;size:50;not null" json:"name"`
	Type       string         `gorm:"size:20;not null" json:"type"` // Washer | Dryer
	CapacityKg float64        `gorm:"type:decimal(5,1);default:8" json:"capacity_kg"`
	Status     string         `gorm:"size:20;default:'Available'" json:"status"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Machine) TableName() string {
	return "machines"
}

// Settings represents the single shop settings row (id = 1)
type Settings struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ShopName         string    `gorm:"size:100;default:'StarWash Laundry'" json:"shop_name"`
	Address          string    `gorm:"size:255" json:"address"`
	Phone            string    `gorm:"size:30" json:"phone"`
	ReceiptFooter    string    `gorm:"size:255" json:"receipt_footer"`
	TrackingBaseURL  string    `gorm:"size:255" json:"tracking_base_url"`
	PickupExpireDays int       `gorm:"default:30" json:"pickup_expire_days"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Settings) TableName() string {
	return "settings"
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&AuthSession{},
		&ServiceType{},
		&InventoryItem{},
		&Machine{},
		&Transaction{},
		&Settings{},
	)
}
