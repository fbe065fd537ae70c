package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"starwash-api/internal/adapters/http/middleware"
	"starwash-api/internal/adapters/http/routes"
	"starwash-api/internal/adapters/persistence/models"
	"starwash-api/internal/adapters/persistence/repositories"
	"starwash-api/internal/config"
	"starwash-api/internal/core/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed admin account, services, machines and settings
	if err := config.SeedData(db, cfg); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Start the nightly pickup-expiry job
	txService := services.NewTransactionService(
		repositories.NewTransactionRepository(db),
		repositories.NewServiceRepository(db),
		repositories.NewInventoryRepository(db),
	)
	expiryService := services.NewExpiryService(
		txService,
		repositories.NewSettingsRepository(db),
		repositories.NewAuthSessionRepository(db),
	)
	expiryService.Start()
	defer expiryService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "StarWash API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
