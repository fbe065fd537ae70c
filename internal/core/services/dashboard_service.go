package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"starwash-api/internal/adapters/persistence/models"
	"starwash-api/internal/adapters/persistence/repositories"
	"starwash-api/internal/core/domain"
)

// DashboardService handles dashboard aggregation
type DashboardService struct {
	db     *gorm.DB
	txRepo repositories.TransactionRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB, txRepo repositories.TransactionRepository) *DashboardService {
	return &DashboardService{db: db, txRepo: txRepo}
}

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// Income
	IncomeToday     float64 `json:"income_today"`
	IncomeThisMonth float64 `json:"income_this_month"`
	UnpaidAmount    float64 `json:"unpaid_amount"`

	// Orders
	TotalTransactions   int64 `json:"total_transactions"`
	TransactionsToday   int64 `json:"transactions_today"`
	PendingTransactions int64 `json:"pending_transactions"`
	UnclaimedDone       int64 `json:"unclaimed_done"`
	ExpiredPickups      int64 `json:"expired_pickups"`

	// Staff
	TotalStaff  int64 `json:"total_staff"`
	ActiveStaff int64 `json:"active_staff"`

	// Shop
	LowStockItems   []LowStockItem       `json:"low_stock_items"`
	MachinesInUse   int64                `json:"machines_in_use"`
	TotalMachines   int64                `json:"total_machines"`
	RecentOrders    []TransactionSummary `json:"recent_orders"`
	StatusBreakdown []StatusCount        `json:"status_breakdown"`
}

// StaffDashboardData represents staff dashboard data
type StaffDashboardData struct {
	TransactionsToday int64                `json:"transactions_today"`
	PendingToday      int64                `json:"pending_today"`
	WashingNow        int64                `json:"washing_now"`
	ReadyForPickup    int64                `json:"ready_for_pickup"`
	UnpaidToday       int64                `json:"unpaid_today"`
	RecentOrders      []TransactionSummary `json:"recent_orders"`
}

// TransactionSummary represents an order line on a dashboard card
type TransactionSummary struct {
	ID            uint      `json:"id"`
	InvoiceNo     string    `json:"invoice_no"`
	CustomerName  string    `json:"customer_name"`
	ServiceType   string    `json:"service_type"`
	Price         float64   `json:"price"`
	LaundryStatus string    `json:"laundry_status"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}

// StatusCount is one slice of the laundry-status chart
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// LowStockItem flags a consumable at or below its threshold
type LowStockItem struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// GetAdminDashboard returns the admin dashboard aggregates
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}
	startOfDay := startOfToday()
	startOfMonth := time.Date(startOfDay.Year(), startOfDay.Month(), 1, 0, 0, 0, 0, startOfDay.Location())

	// Income
	s.db.WithContext(ctx).Table("transactions").
		Where("payment_status = ? AND created_at >= ? AND deleted_at IS NULL", string(domain.PaymentPaid), startOfDay).
		Select("COALESCE(SUM(price), 0)").
		Scan(&data.IncomeToday)

	s.db.WithContext(ctx).Table("transactions").
		Where("payment_status = ? AND created_at >= ? AND deleted_at IS NULL", string(domain.PaymentPaid), startOfMonth).
		Select("COALESCE(SUM(price), 0)").
		Scan(&data.IncomeThisMonth)

	s.db.WithContext(ctx).Table("transactions").
		Where("payment_status = ? AND deleted_at IS NULL", string(domain.PaymentUnpaid)).
		Select("COALESCE(SUM(price), 0)").
		Scan(&data.UnpaidAmount)

	// Order counts
	s.db.WithContext(ctx).Table("transactions").
		Where("deleted_at IS NULL").Count(&data.TotalTransactions)
	s.db.WithContext(ctx).Table("transactions").
		Where("created_at >= ? AND deleted_at IS NULL", startOfDay).Count(&data.TransactionsToday)
	s.db.WithContext(ctx).Table("transactions").
		Where("laundry_status = ? AND deleted_at IS NULL", string(domain.LaundryPending)).Count(&data.PendingTransactions)
	s.db.WithContext(ctx).Table("transactions").
		Where("laundry_status = ? AND pickup_status = ? AND deleted_at IS NULL",
			string(domain.LaundryDone), string(domain.PickupUnclaimed)).
		Count(&data.UnclaimedDone)
	s.db.WithContext(ctx).Table("transactions").
		Where("pickup_status = ? AND deleted_at IS NULL", string(domain.PickupExpired)).Count(&data.ExpiredPickups)

	// Staff counts
	s.db.WithContext(ctx).Table("users").
		Where("deleted_at IS NULL").Count(&data.TotalStaff)
	s.db.WithContext(ctx).Table("users").
		Where("is_active = ? AND deleted_at IS NULL", true).Count(&data.ActiveStaff)

	// Machines
	s.db.WithContext(ctx).Table("machines").
		Where("deleted_at IS NULL").Count(&data.TotalMachines)
	s.db.WithContext(ctx).Table("machines").
		Where("status = ? AND deleted_at IS NULL", "In Use").Count(&data.MachinesInUse)

	// Low stock
	s.db.WithContext(ctx).Table("inventory_items").
		Where("quantity <= low_threshold AND deleted_at IS NULL").
		Select("id, name, quantity").
		Order("quantity").
		Scan(&data.LowStockItems)

	// Status breakdown for the chart
	s.db.WithContext(ctx).Table("transactions").
		Where("deleted_at IS NULL").
		Select("laundry_status AS status, COUNT(*) AS count").
		Group("laundry_status").
		Scan(&data.StatusBreakdown)

	// Recent orders
	s.db.WithContext(ctx).Table("transactions").
		Where("deleted_at IS NULL").
		Select("id, invoice_no, customer_name, service_type, price, laundry_status, payment_status, created_at").
		Order("created_at DESC").
		Limit(10).
		Scan(&data.RecentOrders)

	return data, nil
}

// GetStaffDashboard returns the staff dashboard aggregates. Today's counters
// come from a single day-window query folded in memory; only the two counters
// that span older days still hit the database.
func (s *DashboardService) GetStaffDashboard(ctx context.Context) (*StaffDashboardData, error) {
	today, err := s.txRepo.ListSince(ctx, startOfToday())
	if err != nil {
		return nil, err
	}
	data := SummarizeToday(today)

	s.db.WithContext(ctx).Table("transactions").
		Where("laundry_status IN ? AND deleted_at IS NULL",
			[]string{string(domain.LaundryWashing), string(domain.LaundryDrying), string(domain.LaundryFolding)}).
		Count(&data.WashingNow)
	s.db.WithContext(ctx).Table("transactions").
		Where("laundry_status = ? AND pickup_status = ? AND deleted_at IS NULL",
			string(domain.LaundryDone), string(domain.PickupUnclaimed)).
		Count(&data.ReadyForPickup)

	return data, nil
}

// SummarizeToday folds one day's orders into the staff dashboard counters.
// Rows arrive newest first; the recent list keeps the top five.
func SummarizeToday(rows []*models.Transaction) *StaffDashboardData {
	data := &StaffDashboardData{TransactionsToday: int64(len(rows))}
	for _, tx := range rows {
		if tx.LaundryStatus == string(domain.LaundryPending) {
			data.PendingToday++
		}
		if tx.PaymentStatus == string(domain.PaymentUnpaid) {
			data.UnpaidToday++
		}
		if len(data.RecentOrders) < 5 {
			data.RecentOrders = append(data.RecentOrders, TransactionSummary{
				ID:            tx.ID,
				InvoiceNo:     tx.InvoiceNo,
				CustomerName:  tx.CustomerName,
				ServiceType:   tx.ServiceType,
				Price:         tx.Price,
				LaundryStatus: tx.LaundryStatus,
				PaymentStatus: tx.PaymentStatus,
				CreatedAt:     tx.CreatedAt,
			})
		}
	}
	return data
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
