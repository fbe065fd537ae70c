package domain

import (
	"strings"
	"time"
)

// Role represents user role in the system
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
)

// NormalizeRole maps a free-form role string to the closed Role set.
// Older records mix casing ("admin", "Admin"), so the boundary folds it once.
func NormalizeRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleStaff:
		return RoleStaff, true
	}
	return "", false
}

// PaymentStatus of a transaction
type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "Paid"
	PaymentUnpaid PaymentStatus = "Unpaid"
)

// LaundryStatus of a transaction
type LaundryStatus string

const (
	LaundryPending LaundryStatus = "Pending"
	LaundryWashing LaundryStatus = "Washing"
	LaundryDrying  LaundryStatus = "Drying"
	LaundryFolding LaundryStatus = "Folding"
	LaundryDone    LaundryStatus = "Done"
)

// LaundryFlow is the fixed processing order. Status transitions walk this
// slice by index; there are no branches.
var LaundryFlow = []LaundryStatus{
	LaundryPending,
	LaundryWashing,
	LaundryDrying,
	LaundryFolding,
	LaundryDone,
}

// FlowIndex returns the position of a status in the flow, or -1.
func FlowIndex(s LaundryStatus) int {
	for i, step := range LaundryFlow {
		if step == s {
			return i
		}
	}
	return -1
}

// NextLaundryStatus returns the status following s in the flow.
// The final status has no successor.
func NextLaundryStatus(s LaundryStatus) (LaundryStatus, bool) {
	i := FlowIndex(s)
	if i < 0 || i >= len(LaundryFlow)-1 {
		return "", false
	}
	return LaundryFlow[i+1], true
}

// PickupStatus of a finished transaction
type PickupStatus string

const (
	PickupUnclaimed PickupStatus = "Unclaimed"
	PickupClaimed   PickupStatus = "Claimed"
	PickupExpired   PickupStatus = "Expired"
)

// User represents a user in the domain layer
type User struct {
	ID        uint
	Username  string
	FullName  string
	Password  string // Hashed
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Transaction represents a laundry order in the domain layer
type Transaction struct {
	ID            uint
	InvoiceNo     string
	CustomerName  string
	ServiceType   string
	Loads         int
	DetergentQty  int
	SoftenerQty   int
	Price         float64
	AmountGiven   float64
	Change        float64
	PaymentStatus PaymentStatus
	LaundryStatus LaundryStatus
	PickupStatus  PickupStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AuthSession represents an issued credential tracked for revocation
type AuthSession struct {
	ID        uint
	UserID    uint
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}
