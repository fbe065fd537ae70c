package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"starwash-api/internal/adapters/persistence/models"
	"starwash-api/internal/adapters/persistence/repositories"
	"starwash-api/internal/core/domain"
	"starwash-api/internal/pkg/password"
)

// StaffService handles staff account management (Admin only surface)
type StaffService struct {
	userRepo repositories.UserRepository
}

// NewStaffService creates a new staff service
func NewStaffService(userRepo repositories.UserRepository) *StaffService {
	return &StaffService{userRepo: userRepo}
}

// CreateStaffInput represents account creation input
type CreateStaffInput struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateStaffInput represents account update input. Nil fields are untouched.
type UpdateStaffInput struct {
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// Create creates a staff or admin account
func (s *StaffService) Create(ctx context.Context, input *CreateStaffInput) (*models.UserResponse, error) {
	role, ok := domain.NormalizeRole(input.Role)
	if !ok {
		return nil, domain.ErrInvalidRole
	}
	if !password.ValidatePassword(input.Password) {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: strings.TrimSpace(input.Username),
		FullName: strings.TrimSpace(input.FullName),
		Password: hashed,
		Role:     string(role),
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Staff account created: %s [%s]", user.Username, role)
	return user.ToResponse(), nil
}

// Get returns one account
func (s *StaffService) Get(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// List lists accounts with pagination
func (s *StaffService) List(ctx context.Context, offset, limit int) ([]*models.UserResponse, int64, error) {
	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse())
	}
	return out, total, nil
}

// Update applies partial changes to an account
func (s *StaffService) Update(ctx context.Context, id uint, input *UpdateStaffInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Role != nil {
		role, ok := domain.NormalizeRole(*input.Role)
		if !ok {
			return nil, domain.ErrInvalidRole
		}
		user.Role = string(role)
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// ResetPassword sets a new password for an account
func (s *StaffService) ResetPassword(ctx context.Context, id uint, newPassword string) error {
	if !password.ValidatePassword(newPassword) {
		return domain.ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	return s.userRepo.Update(ctx, user)
}

// Delete soft deletes an account
func (s *StaffService) Delete(ctx context.Context, id uint) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return s.userRepo.Delete(ctx, id)
}
