package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"starwash-api/internal/adapters/http/handlers"
	"starwash-api/internal/adapters/http/middleware"
	"starwash-api/internal/adapters/persistence/repositories"
	"starwash-api/internal/config"
	"starwash-api/internal/core/services"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewAuthSessionRepository(db)
	txRepo := repositories.NewTransactionRepository(db)
	inventoryRepo := repositories.NewInventoryRepository(db)
	serviceRepo := repositories.NewServiceRepository(db)
	machineRepo := repositories.NewMachineRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, sessionRepo, cfg)
	staffService := services.NewStaffService(userRepo)
	txService := services.NewTransactionService(txRepo, serviceRepo, inventoryRepo)
	receiptService := services.NewReceiptService(txService, settingsRepo)
	dashboardService := services.NewDashboardService(db, txRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	staffHandler := handlers.NewStaffHandler(staffService)
	txHandler := handlers.NewTransactionHandler(txService, receiptService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryRepo)
	masterHandler := handlers.NewMasterHandler(serviceRepo, machineRepo)
	settingsHandler := handlers.NewSettingsHandler(settingsRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	trackHandler := handlers.NewTrackHandler(txService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Auth routes (the terminal talks to these before it has a session)
	app.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	app.Post("/logout", authHandler.Logout)
	app.Get("/me", middleware.AuthMiddleware(cfg, sessionRepo), authHandler.Me)
	app.Post("/logout-all", middleware.AuthMiddleware(cfg, sessionRepo), authHandler.LogoutAll)

	api := app.Group("/api")

	// Public order tracking (customer landing page)
	api.Get("/track/:invoice", trackHandler.Track)

	// Dashboards
	dashboard := api.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware(cfg, sessionRepo))
	dashboard.Get("/admin", middleware.AdminOnly(), dashboardHandler.Admin)
	dashboard.Get("/staff", middleware.StaffOrAdmin(), dashboardHandler.Staff)

	// Transactions (Staff and Admin)
	tx := api.Group("/transactions")
	tx.Use(middleware.AuthMiddleware(cfg, sessionRepo))
	tx.Use(middleware.StaffOrAdmin())
	tx.Get("/", txHandler.List)
	tx.Post("/", txHandler.Create)
	tx.Get("/:id", txHandler.Get)
	tx.Put("/:id", txHandler.Update)
	tx.Put("/:id/advance", txHandler.Advance)
	tx.Put("/:id/pay", txHandler.Pay)
	tx.Put("/:id/claim", txHandler.Claim)
	tx.Get("/:id/receipt", txHandler.Receipt)
	tx.Get("/:id/qr", txHandler.QRCode)
	tx.Delete("/:id", middleware.AdminOnly(), txHandler.Delete)

	// Inventory (Staff can view and restock, Admin manages)
	inventory := api.Group("/inventory")
	inventory.Use(middleware.AuthMiddleware(cfg, sessionRepo))
	inventory.Get("/", middleware.StaffOrAdmin(), inventoryHandler.List)
	inventory.Get("/:id", middleware.StaffOrAdmin(), inventoryHandler.Get)
	inventory.Put("/:id/restock", middleware.StaffOrAdmin(), inventoryHandler.Restock)
	inventory.Post("/", middleware.AdminOnly(), inventoryHandler.Create)
	inventory.Put("/:id", middleware.AdminOnly(), inventoryHandler.Update)
	inventory.Delete("/:id", middleware.AdminOnly(), inventoryHandler.Delete)

	// Staff accounts (Admin only)
	staff := api.Group("/staff")
	staff.Use(middleware.AuthMiddleware(cfg, sessionRepo))
	staff.Use(middleware.AdminOnly())
	staff.Get("/", staffHandler.List)
	staff.Post("/", staffHandler.Create)
	staff.Get("/:id", staffHandler.Get)
	staff.Put("/:id", staffHandler.Update)
	staff.Put("/:id/password", staffHandler.ResetPassword)
	staff.Delete("/:id", staffHandler.Delete)

	// Service types (Staff read, Admin write)
	servicesGroup := api.Group("/services")
	servicesGroup.Use(middleware.AuthMiddleware(cfg, sessionRepo))
	servicesGroup.Get("/", middleware.StaffOrAdmin(), masterHandler.ListServices)
	servicesGroup.Get("/:id", middleware.StaffOrAdmin(), masterHandler.GetService)
	servicesGroup.Post("/", middleware.AdminOnly(), masterHandler.CreateService)
	servicesGroup.Put("/:id", middleware.AdminOnly(), masterHandler.UpdateService)
	servicesGroup.Delete("/:id", middleware.AdminOnly(), masterHandler.DeleteService)

	// Machines (Staff read and status flips, Admin manages)
	machines := api.Group("/machines")
	machines.Use(middleware.AuthMiddleware(cfg, sessionRepo))
	machines.Get("/", middleware.StaffOrAdmin(), masterHandler.ListMachines)
	machines.Put("/:id", middleware.StaffOrAdmin(), masterHandler.UpdateMachine)
	machines.Post("/", middleware.AdminOnly(), masterHandler.CreateMachine)
	machines.Delete("/:id", middleware.AdminOnly(), masterHandler.DeleteMachine)

	// Settings (Staff read, Admin write)
	settings := api.Group("/settings")
	settings.Use(middleware.AuthMiddleware(cfg, sessionRepo))
	settings.Get("/", middleware.StaffOrAdmin(), settingsHandler.Get)
	settings.Put("/", middleware.AdminOnly(), settingsHandler.Update)
}
