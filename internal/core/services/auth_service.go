package services

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"starwash-api/internal/adapters/persistence/models"
	"starwash-api/internal/adapters/persistence/repositories"
	"starwash-api/internal/config"
	"starwash-api/internal/core/domain"
	"starwash-api/internal/pkg/jwt"
	"starwash-api/internal/pkg/password"
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.AuthSessionRepository
	cfg         *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.AuthSessionRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User  *models.UserResponse `json:"user"`
	Token string               `json:"token"`
}

// Login authenticates a user and issues an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find user by username
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 3. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Normalize role before it goes into a token claim
	role, ok := domain.NormalizeRole(user.Role)
	if !ok {
		return nil, domain.ErrInvalidRole
	}

	// 5. Generate access token
	token, err := jwt.GenerateAccessToken(user.ID, user.Username, string(role), s.cfg.JWT.Secret, s.cfg.JWT.TokenHours)
	if err != nil {
		return nil, err
	}

	// 6. Track the issued token so logout can revoke it
	session := &models.AuthSession{
		UserID:    user.ID,
		TokenHash: password.HashToken(token),
		ExpiresAt: time.Now().Add(time.Duration(s.cfg.JWT.TokenHours) * time.Hour),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s [%s]", user.Username, role)

	resp := user.ToResponse()
	resp.Role = string(role)
	return &AuthResponse{User: resp, Token: token}, nil
}

// Me resolves the current user from validated token claims
func (s *AuthService) Me(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	resp := user.ToResponse()
	if role, ok := domain.NormalizeRole(user.Role); ok {
		resp.Role = string(role)
	}
	return resp, nil
}

// Logout revokes the presented token. Best-effort: an already revoked or
// unknown token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessionRepo.RevokeByTokenHash(ctx, password.HashToken(token)); err != nil {
		return err
	}
	log.Printf("✅ User logged out")
	return nil
}

// LogoutAll revokes every tracked session for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	if err := s.sessionRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}
	log.Printf("✅ All sessions revoked for user ID: %d", userID)
	return nil
}

// ValidateAccessToken validates an access token
func (s *AuthService) ValidateAccessToken(accessToken string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(accessToken, s.cfg.JWT.Secret)
}
