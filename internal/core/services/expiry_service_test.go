package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starwash-api/internal/adapters/persistence/models"
	"starwash-api/internal/core/domain"
	"starwash-api/internal/core/services"
)

func TestExpiryService_Sweep(t *testing.T) {
	txSvc, txRepo, _ := newFixture()
	txRepo.expired = 3
	settings := &fakeSettingsRepo{settings: models.Settings{ID: 1, PickupExpireDays: 14}}
	sessions := &fakeSessionRepo{}

	svc := services.NewExpiryService(txSvc, settings, sessions)
	svc.Sweep(context.Background())

	// Cutoff honors the configured retention window
	wantCutoff := time.Now().AddDate(0, 0, -14)
	assert.WithinDuration(t, wantCutoff, txRepo.expiredCutoff, time.Minute)

	assert.Equal(t, 1, sessions.expiredSweeps, "stale auth sessions are pruned in the same pass")
}

func TestExpiryService_SweepDefaultsRetention(t *testing.T) {
	txSvc, txRepo, _ := newFixture()
	settings := &fakeSettingsRepo{settings: models.Settings{ID: 1, PickupExpireDays: 0}}

	svc := services.NewExpiryService(txSvc, settings, &fakeSessionRepo{})
	svc.Sweep(context.Background())

	// A zero or negative setting clamps to one day instead of expiring
	// everything finished today
	wantCutoff := time.Now().AddDate(0, 0, -1)
	assert.WithinDuration(t, wantCutoff, txRepo.expiredCutoff, time.Minute)
}

func TestSummarizeToday(t *testing.T) {
	base := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	rows := []*models.Transaction{
		{ID: 7, InvoiceNo: "SW-7", CustomerName: "Gina", LaundryStatus: string(domain.LaundryPending), PaymentStatus: string(domain.PaymentUnpaid), CreatedAt: base.Add(6 * time.Hour)},
		{ID: 6, InvoiceNo: "SW-6", LaundryStatus: string(domain.LaundryWashing), PaymentStatus: string(domain.PaymentPaid), CreatedAt: base.Add(5 * time.Hour)},
		{ID: 5, InvoiceNo: "SW-5", LaundryStatus: string(domain.LaundryPending), PaymentStatus: string(domain.PaymentPaid), CreatedAt: base.Add(4 * time.Hour)},
		{ID: 4, InvoiceNo: "SW-4", LaundryStatus: string(domain.LaundryDone), PaymentStatus: string(domain.PaymentUnpaid), CreatedAt: base.Add(3 * time.Hour)},
		{ID: 3, InvoiceNo: "SW-3", LaundryStatus: string(domain.LaundryDrying), PaymentStatus: string(domain.PaymentPaid), CreatedAt: base.Add(2 * time.Hour)},
		{ID: 2, InvoiceNo: "SW-2", LaundryStatus: string(domain.LaundryFolding), PaymentStatus: string(domain.PaymentPaid), CreatedAt: base.Add(time.Hour)},
		{ID: 1, InvoiceNo: "SW-1", LaundryStatus: string(domain.LaundryDone), PaymentStatus: string(domain.PaymentPaid), CreatedAt: base},
	}

	data := services.SummarizeToday(rows)

	assert.Equal(t, int64(7), data.TransactionsToday)
	assert.Equal(t, int64(2), data.PendingToday)
	assert.Equal(t, int64(2), data.UnpaidToday)

	// Recent list keeps the newest five in arrival order
	require.Len(t, data.RecentOrders, 5)
	assert.Equal(t, "SW-7", data.RecentOrders[0].InvoiceNo)
	assert.Equal(t, "SW-3", data.RecentOrders[4].InvoiceNo)
}

func TestSummarizeToday_Empty(t *testing.T) {
	data := services.SummarizeToday(nil)
	assert.Zero(t, data.TransactionsToday)
	assert.Empty(t, data.RecentOrders)
}
