package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-mrp-api/internal/client"
	"go-mrp-api/internal/handler"
	"go-mrp-api/internal/middleware"
	"go-mrp-api/internal/model"
	"go-mrp-api/internal/repository"
	"go-mrp-api/internal/service"
	"go-mrp-api/internal/ws"
	"go-mrp-api/pkg/config"
	"go-mrp-api/pkg/database"
	"go-mrp-api/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env (.env is optional; deployments inject env vars directly)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	// 2. Setup Database
	db := database.ConnectDB(cfg.DB)
	// Auto Migrate (use a dedicated migration tool for production schemas)
	if err := db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.InventoryLog{},
		&model.Order{},
		&model.OrderItem{},
		&model.ProductionJob{},
		&model.WorkOrder{},
		&model.BOM{},
		&model.BOMItem{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto migration failed")
	}

	// 3. Seed default admin user
	seedAdmin(db, log)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub(log)
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	logRepo := repository.NewInventoryLogRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	jobRepo := repository.NewProductionJobRepo(db)
	userRepo := repository.NewUserRepo(db)
	workOrderRepo := repository.NewWorkOrderRepo(db)
	bomRepo := repository.NewBOMRepo(db)

	riskPredictor := client.NewHTTPRiskPredictor(cfg.Risk.URL, time.Duration(cfg.Risk.TimeoutSeconds)*time.Second)

	invService := service.NewInventoryService(productRepo, logRepo, db, wsHub, log)
	orderService := service.NewOrderService(orderRepo, productRepo, userRepo, jobRepo, db, log)
	prodService := service.NewProductionService(jobRepo, productRepo, orderRepo, invService, db, wsHub, log)
	dashService := service.NewDashboardService(logRepo, productRepo, cfg.Inventory.LowStockThreshold)
	workOrderService := service.NewWorkOrderService(workOrderRepo, productRepo, riskPredictor, wsHub, log)
	bomService := service.NewBOMService(bomRepo, productRepo)
	authService := service.NewAuthService(userRepo, cfg.JWT)
	userService := service.NewUserService(userRepo)

	invHandler := handler.NewInventoryHandler(invService)
	orderHandler := handler.NewOrderHandler(orderService)
	prodHandler := handler.NewProductionHandler(prodService)
	dashHandler := handler.NewDashboardHandler(dashService)
	workOrderHandler := handler.NewWorkOrderHandler(workOrderService)
	bomHandler := handler.NewBOMHandler(bomService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})

	// Middleware
	app.Use(fiberlogger.New()) // Logging request
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", middleware.RequireAuth(cfg.JWT.Secret), authHandler.ResetPassword)
	auth.Get("/me", middleware.RequireAuth(cfg.JWT.Secret), authHandler.Me)

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth(cfg.JWT.Secret))

	manager := middleware.RequireRole(model.RoleManager, model.RoleAdmin)
	supervisor := middleware.RequireRole(model.RoleSupervisor, model.RoleManager, model.RoleAdmin)

	// Dashboard Routes (authenticated users can view)
	protected.Get("/dashboard/stats", dashHandler.GetStats)
	protected.Get("/dashboard/stock-movement", dashHandler.GetStockMovement)
	protected.Get("/dashboard/low-stock", dashHandler.GetLowStock)

	// Product Routes
	protected.Get("/products", invHandler.GetProducts)
	protected.Get("/products/:id", invHandler.GetProduct)
	protected.Post("/products", supervisor, invHandler.CreateProduct)
	protected.Put("/products/:id", supervisor, invHandler.UpdateProduct)
	protected.Post("/products/:id/adjust-stock", manager, invHandler.AdjustStock)
	protected.Delete("/products/:id", manager, invHandler.DeleteProduct)
	protected.Get("/products/:id/logs", invHandler.GetProductLogs)

	// Inventory Log Routes (immutable audit trail, read only)
	protected.Get("/inventory-logs", invHandler.GetInventoryLogs)

	// Order Routes
	protected.Get("/orders", orderHandler.GetOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)
	protected.Post("/orders", orderHandler.CreateOrder)
	protected.Put("/orders/:id/status", orderHandler.UpdateStatus)
	protected.Delete("/orders/:id", manager, orderHandler.DeleteOrder)
	protected.Get("/customers/:customerId/orders", orderHandler.GetOrdersByCustomer)
	protected.Get("/orders/:orderId/jobs", prodHandler.GetJobsByOrder)

	// Production Job Routes
	protected.Get("/production-jobs", prodHandler.GetJobs)
	protected.Get("/production-jobs/:id", prodHandler.GetJob)
	protected.Post("/production-jobs", supervisor, prodHandler.CreateJob)
	protected.Post("/production-jobs/:id/start", supervisor, prodHandler.StartJob)
	protected.Post("/production-jobs/:id/complete", supervisor, prodHandler.CompleteJob)
	protected.Post("/production-jobs/:id/fail", supervisor, prodHandler.FailJob)
	protected.Put("/production-jobs/:id/status", manager, prodHandler.SetJobStatus)
	protected.Delete("/production-jobs/:id", manager, prodHandler.DeleteJob)

	// Work Order Routes
	protected.Get("/work-orders", workOrderHandler.GetWorkOrders)
	protected.Get("/work-orders/:id", workOrderHandler.GetWorkOrder)
	protected.Post("/work-orders", supervisor, workOrderHandler.CreateWorkOrder)
	protected.Put("/work-orders/:id", supervisor, workOrderHandler.UpdateWorkOrder)
	protected.Delete("/work-orders/:id", manager, workOrderHandler.DeleteWorkOrder)

	// BOM Routes
	protected.Get("/boms", bomHandler.GetBOMs)
	protected.Get("/boms/:id", bomHandler.GetBOM)
	protected.Get("/products/:productId/boms", bomHandler.GetBOMsByProduct)
	protected.Post("/boms", supervisor, bomHandler.CreateBOM)
	protected.Put("/boms/:id", supervisor, bomHandler.UpdateBOM)
	protected.Post("/boms/:id/release", manager, bomHandler.ReleaseBOM)
	protected.Delete("/boms/:id", manager, bomHandler.DeleteBOM)

	// User Management Routes
	protected.Get("/users", manager, userHandler.GetUsers)
	protected.Get("/users/:id", manager, userHandler.GetUser)
	protected.Post("/users", manager, userHandler.CreateUser)
	protected.Put("/users/:id", manager, userHandler.UpdateUser)
	protected.Delete("/users/:id", manager, userHandler.DeleteUser)

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
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("starting HTTP server")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// seedAdmin creates the default admin account if it doesn't exist yet.
func seedAdmin(db *gorm.DB, log zerolog.Logger) {
	userRepo := repository.NewUserRepo(db)

	if existing, err := userRepo.FindByUsername("admin"); err == nil && existing != nil {
		return
	}

	admin := &model.User{
		Username: "admin",
		Email:    "admin@example.com",
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	password := os.Getenv("ADMIN_DEFAULT_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	if err := admin.SetPassword(password); err != nil {
		log.Warn().Err(err).Msg("failed to hash admin password")
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Warn().Err(err).Msg("failed to create admin user")
		return
	}

	log.Info().Str("username", "admin").Msg("admin user created")
}
