package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"starwash-api/internal/adapters/persistence/models"
)

// serviceRepository implements ServiceRepository
type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service-type repository
func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, svc *models.ServiceType) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func (r *serviceRepository) GetByID(ctx context.Context, id uint) (*models.ServiceType, error) {
	var svc models.ServiceType
	err := r.db.WithContext(ctx).First(&svc, id).Error
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *serviceRepository) GetByName(ctx context.Context, name string) (*models.ServiceType, error) {
	var svc models.ServiceType
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&svc).Error
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *serviceRepository) Update(ctx context.Context, svc *models.ServiceType) error {
	return r.db.WithContext(ctx).Save(svc).Error
}

func (r *serviceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ServiceType{}, id).Error
}

func (r *serviceRepository) List(ctx context.Context) ([]*models.ServiceType, error) {
	var svcs []*models.ServiceType
	err := r.db.WithContext(ctx).Order("name").Find(&svcs).Error
	return svcs, err
}

// machineRepository implements MachineRepository
type machineRepository struct {
	db *gorm.DB
}

// NewMachineRepository creates a new machine repository
func NewMachineRepository(db *gorm.DB) MachineRepository {
	return &machineRepository{db: db}
}

func (r *machineRepository) Create(ctx context.Context, m *models.Machine) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *machineRepository) GetByID(ctx context.Context, id uint) (*models.Machine, error) {
	var m models.Machine
	err := r.db.WithContext(ctx).First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *machineRepository) Update(ctx context.Context, m *models.Machine) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *machineRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Machine{}, id).Error
}

func (r *machineRepository) List(ctx context.Context) ([]*models.Machine, error) {
	var machines []*models.Machine
	err := r.db.WithContext(ctx).Order("name").Find(&machines).Error
	return machines, err
}

// settingsRepository implements SettingsRepository
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the settings row, creating the default one if absent.
func (r *settingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var s models.Settings
	err := r.db.WithContext(ctx).First(&s, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = models.Settings{ID: 1}
		if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
			return nil, err
		}
		return &s, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) Update(ctx context.Context, s *models.Settings) error {
	s.ID = 1
	return r.db.WithContext(ctx).Save(s).Error
}
