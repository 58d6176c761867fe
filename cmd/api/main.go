package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Innie12/Inventory-Management-System/internal/config"
	"github.com/Innie12/Inventory-Management-System/internal/handler"
	"github.com/Innie12/Inventory-Management-System/internal/middleware"
	"github.com/Innie12/Inventory-Management-System/internal/model"
	"github.com/Innie12/Inventory-Management-System/internal/repository"
	"github.com/Innie12/Inventory-Management-System/internal/service"
	"github.com/Innie12/Inventory-Management-System/internal/ws"
	"github.com/Innie12/Inventory-Management-System/pkg/database"
	"github.com/Innie12/Inventory-Management-System/pkg/logger"
	"github.com/Innie12/Inventory-Management-System/pkg/sms"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()

	zlog := logger.Must(logger.New())
	defer zlog.Sync()

	// 2. Setup Database
	db := database.ConnectDB(cfg.DatabaseURL)
	// Auto Migrate (use a dedicated migration tool in production)
	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Supplier{},
		&model.Product{},
		&model.InventoryTransaction{},
		&model.Notification{},
		&model.AuditLog{},
	); err != nil {
		zlog.Fatal("auto migrate failed", zap.Error(err))
	}

	// 3. Seed default admin user
	seedAdmin(db, zlog)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	userRepo := repository.NewUserRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	smsSender := sms.NewSender(sms.Config{
		AccountSID: cfg.TwilioAccountSID,
		AuthToken:  cfg.TwilioAuthToken,
		FromNumber: cfg.TwilioFromNumber,
	}, zlog.Named("sms"))

	auditService := service.NewAuditService(auditRepo, zlog.Named("audit"))
	authService := service.NewAuthService(userRepo, smsSender, cfg.OTPExpiry, cfg.PhoneRegion, zlog.Named("auth"))
	catalogService := service.NewCatalogService(productRepo, categoryRepo, supplierRepo, zlog.Named("catalog"))
	stockService := service.NewStockService(db, productRepo, userRepo, txRepo, wsHub, zlog.Named("stock"))
	notificationService := service.NewNotificationService(notificationRepo)
	dashService := service.NewDashboardService(productRepo, txRepo)
	userService := service.NewUserService(userRepo, zlog.Named("users"))
	reportService := service.NewReportService(productRepo, txRepo, service.Letterhead{
		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		CompanyPhone:   cfg.CompanyPhone,
	}, cfg.DefaultCurrency)

	authHandler := handler.NewAuthHandler(authService, auditService)
	productHandler := handler.NewProductHandler(catalogService, stockService, auditService, cfg.ItemsPerPage)
	categoryHandler := handler.NewCategoryHandler(catalogService, auditService)
	supplierHandler := handler.NewSupplierHandler(catalogService, auditService)
	notificationHandler := handler.NewNotificationHandler(notificationService, cfg.ItemsPerPage)
	dashHandler := handler.NewDashboardHandler(dashService)
	userHandler := handler.NewUserHandler(userService, auditService)
	reportHandler := handler.NewReportHandler(reportService, auditService)
	auditHandler := handler.NewAuditHandler(auditService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Inventory Management System v1.0",
	})

	// Middleware
	app.Use(fiberlogger.New()) // Logging request
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/verify-otp", authHandler.VerifyOTP)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))
	admin := middleware.RequireAdmin()

	protected.Get("/auth/me", authHandler.Me)

	// Dashboard
	protected.Get("/dashboard", dashHandler.Overview)

	// Products & stock ledger
	protected.Get("/products", productHandler.List)
	protected.Get("/products/quick-search", productHandler.QuickSearch)
	protected.Get("/products/low-stock", productHandler.LowStock)
	protected.Get("/products/suggest-category", productHandler.SuggestCategory)
	protected.Post("/products", productHandler.Create)
	protected.Get("/products/:id", productHandler.Get)
	protected.Put("/products/:id", productHandler.Update)
	protected.Delete("/products/:id", admin, productHandler.Delete)
	protected.Post("/products/:id/adjust", productHandler.Adjust)
	protected.Get("/products/:id/transactions", productHandler.History)
	protected.Get("/transactions", productHandler.Transactions)

	// Categories
	protected.Get("/categories", categoryHandler.List)
	protected.Post("/categories", categoryHandler.Create)
	protected.Put("/categories/:id", categoryHandler.Update)
	protected.Delete("/categories/:id", admin, categoryHandler.Delete)

	// Suppliers
	protected.Get("/suppliers", supplierHandler.List)
	protected.Post("/suppliers", supplierHandler.Create)
	protected.Put("/suppliers/:id", supplierHandler.Update)
	protected.Delete("/suppliers/:id", admin, supplierHandler.Delete)

	// Notifications
	protected.Get("/notifications", notificationHandler.List)
	protected.Get("/notifications/unread-count", notificationHandler.UnreadCount)
	protected.Put("/notifications/read-all", notificationHandler.MarkAllRead)
	protected.Put("/notifications/:id/read", notificationHandler.MarkRead)

	// Reports
	protected.Get("/reports/inventory.pdf", reportHandler.InventoryPDF)
	protected.Get("/reports/inventory.xlsx", reportHandler.InventoryExcel)
	protected.Get("/reports/low-stock.pdf", reportHandler.LowStockPDF)
	protected.Get("/reports/transactions.pdf", reportHandler.TransactionsPDF)

	// Profile & preferences
	protected.Put("/profile", userHandler.UpdateProfile)
	protected.Put("/profile/preferences", userHandler.UpdatePreferences)
	protected.Put("/profile/password", userHandler.ChangePassword)

	// User management (admin only)
	protected.Get("/users", admin, userHandler.List)
	protected.Get("/users/:id", admin, userHandler.Get)
	protected.Put("/users/:id/role", admin, userHandler.SetRole)
	protected.Put("/users/:id/active", admin, userHandler.SetActive)

	// Audit trail (admin only)
	protected.Get("/audit-logs", admin, auditHandler.List)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}
	zlog.Info("server exited")
}

// seedAdmin creates the default admin account on first boot so the system is
// reachable before any users exist.
func seedAdmin(db *gorm.DB, zlog *zap.Logger) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByUsername("admin"); err == nil {
		return
	}

	admin := &model.User{
		Username:   "admin",
		Email:      "admin@example.com",
		Phone:      "+630000000000",
		FullName:   "System Administrator",
		Role:       model.RoleAdmin,
		IsActive:   true,
		IsVerified: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword("admin123"); err != nil {
		zlog.Warn("failed to hash admin password", zap.Error(err))
		return
	}
	if err := userRepo.Create(admin); err != nil {
		zlog.Warn("failed to create admin user", zap.Error(err))
		return
	}
	zlog.Info("admin user created", zap.String("username", "admin"))
}
