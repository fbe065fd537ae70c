package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"starwash-api/internal/adapters/persistence/models"
)

// authSessionRepository implements AuthSessionRepository
type authSessionRepository struct {
	db *gorm.DB
}

// NewAuthSessionRepository creates a new auth session repository
func NewAuthSessionRepository(db *gorm.DB) AuthSessionRepository {
	return &authSessionRepository{db: db}
}

func (r *authSessionRepository) Create(ctx context.Context, session *models.AuthSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *authSessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.AuthSession, error) {
	var session models.AuthSession
	err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// RevokeByTokenHash marks one session revoked. Missing rows are not an
// error: logout is best-effort.
func (r *authSessionRepository) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.AuthSession{}).
		Where("token_hash = ? AND revoked_at IS NULL", tokenHash).
		Update("revoked_at", &now).Error
}

func (r *authSessionRepository) RevokeAllByUserID(ctx context.Context, userID uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.AuthSession{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", &now).Error
}

// DeleteExpired removes sessions past their expiry.
func (r *authSessionRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.AuthSession{}).Error
}
