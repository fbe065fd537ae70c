package config

import (
	"log"

	"gorm.io/gorm"

	"starwash-api/internal/adapters/persistence/models"
	"starwash-api/internal/core/domain"
	"starwash-api/internal/pkg/password"
)

// SeedData seeds the admin account, service types, machines, consumables
// and the settings row on first run. Existing rows are left alone.
func SeedData(db *gorm.DB, cfg *Config) error {
	if err := seedAdmin(db, cfg); err != nil {
		return err
	}
	if err := seedServices(db); err != nil {
		return err
	}
	if err := seedInventory(db); err != nil {
		return err
	}
	if err := seedMachines(db); err != nil {
		return err
	}
	return seedSettings(db)
}

func seedAdmin(db *gorm.DB, cfg *Config) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", string(domain.RoleAdmin)).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := password.Hash(cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: cfg.Seed.AdminUsername,
		FullName: "Shop Administrator",
		Password: hashed,
		Role:     string(domain.RoleAdmin),
		IsActive: true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded admin account: %s", admin.Username)
	return nil
}

func seedServices(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.ServiceType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	services := []models.ServiceType{
		{Name: "Wash Only", Description: "Machine wash, customer dries", PricePerLoad: 60, IsActive: true},
		{Name: "Dry Only", Description: "Dryer cycle only", PricePerLoad: 55, IsActive: true},
		{Name: "Wash & Dry", Description: "Full machine cycle", PricePerLoad: 110, IsActive: true},
		{Name: "Full Service", Description: "Wash, dry and fold by staff", PricePerLoad: 150, IsActive: true},
	}
	if err := db.Create(&services).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d service types", len(services))
	return nil
}

func seedInventory(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.InventoryItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items := []models.InventoryItem{
		{Name: "Detergent Sachet", Kind: models.ItemKindDetergent, Quantity: 200, Unit: "pc", UnitPrice: 15, LowThreshold: 20},
		{Name: "Fabric Softener Sachet", Kind: models.ItemKindSoftener, Quantity: 200, Unit: "pc", UnitPrice: 12, LowThreshold: 20},
		{Name: "Laundry Bag", Kind: models.ItemKindSupply, Quantity: 100, Unit: "pc", UnitPrice: 0, LowThreshold: 10},
	}
	if err := db.Create(&items).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d inventory items", len(items))
	return nil
}

func seedMachines(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Machine{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	machines := []models.Machine{
		{Name: "Washer 1", Type: "Washer", CapacityKg: 8, Status: models.MachineAvailable},
		{Name: "Washer 2", Type: "Washer", CapacityKg: 8, Status: models.MachineAvailable},
		{Name: "Washer 3", Type: "Washer", CapacityKg: 10.5, Status: models.MachineAvailable},
		{Name: "Dryer 1", Type: "Dryer", CapacityKg: 8, Status: models.MachineAvailable},
		{Name: "Dryer 2", Type: "Dryer", CapacityKg: 10.5, Status: models.MachineAvailable},
	}
	if err := db.Create(&machines).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d machines", len(machines))
	return nil
}

func seedSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Settings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	settings := &models.Settings{
		ID:               1,
		ShopName:         "StarWash Laundry",
		ReceiptFooter:    "Thank you! Please keep this receipt for pickup.",
		PickupExpireDays: 30,
	}
	if err := db.Create(settings).Error; err != nil {
		return err
	}

	log.Println("✅ Seeded shop settings")
	return nil
}
