package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"starwash-api/internal/adapters/persistence/repositories"
)

// ExpiryService runs the nightly job that marks finished, never-collected
// laundry as Expired once it sat past the configured number of days, and
// prunes auth sessions whose tokens can no longer validate anyway.
type ExpiryService struct {
	txService    *TransactionService
	settingsRepo repositories.SettingsRepository
	sessionRepo  repositories.AuthSessionRepository
	cron         *cron.Cron
}

// NewExpiryService creates a new expiry service
func NewExpiryService(
	txService *TransactionService,
	settingsRepo repositories.SettingsRepository,
	sessionRepo repositories.AuthSessionRepository,
) *ExpiryService {
	return &ExpiryService{
		txService:    txService,
		settingsRepo: settingsRepo,
		sessionRepo:  sessionRepo,
		cron:         cron.New(),
	}
}

// Start schedules the nightly sweep (00:05 shop time)
func (s *ExpiryService) Start() {
	_, err := s.cron.AddFunc("5 0 * * *", s.runOnce)
	if err != nil {
		log.Printf("❌ Failed to schedule pickup expiry job: %v", err)
		return
	}
	s.cron.Start()
	log.Println("🚀 Pickup expiry job scheduled (daily 00:05)")
}

// Stop stops the scheduler and waits for a running sweep to finish
func (s *ExpiryService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Pickup expiry job stopped")
}

func (s *ExpiryService) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.Sweep(ctx)
}

// Sweep runs one pass of the nightly job
func (s *ExpiryService) Sweep(ctx context.Context) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		log.Printf("❌ Pickup expiry: failed to load settings: %v", err)
		return
	}

	n, err := s.txService.ExpireUnclaimed(ctx, settings.PickupExpireDays)
	if err != nil {
		log.Printf("❌ Pickup expiry sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("✅ Pickup expiry: %d order(s) marked Expired", n)
	}

	// Revocation rows for tokens past their JWT expiry are dead weight
	if err := s.sessionRepo.DeleteExpired(ctx); err != nil {
		log.Printf("⚠️ Auth session cleanup failed: %v", err)
	}
}
