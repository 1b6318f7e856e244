package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/techfix/workshop-api/internal/application/service"
	"github.com/techfix/workshop-api/internal/config"
	"github.com/techfix/workshop-api/internal/infrastructure/database"
	"github.com/techfix/workshop-api/internal/infrastructure/repository"
	"github.com/techfix/workshop-api/internal/presentation/http/handler"
	"github.com/techfix/workshop-api/internal/presentation/http/routes"
	"github.com/techfix/workshop-api/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize logger
	var logger *zap.Logger
	var err error
	if cfg.App.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(db)
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewServiceOrderRepository(db)
	itemRepo := repository.NewOrderItemRepository(db)
	entryRepo := repository.NewFinancialEntryRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services. The finance service doubles as the completion
	// hook that records income when an order transitions to Completed.
	authService := service.NewAuthService(userRepo, accountRepo, jwtManager)
	accountService := service.NewAccountService(accountRepo)
	customerService := service.NewCustomerService(customerRepo)
	productService := service.NewProductService(productRepo)
	financeService := service.NewFinanceService(entryRepo, logger)
	orderService := service.NewOrderService(orderRepo, itemRepo, productRepo, customerRepo, entryRepo, financeService)
	printService := service.NewPrintService(orderRepo, accountRepo)
	dashboardService := service.NewDashboardService(orderRepo, entryRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Account:   handler.NewAccountHandler(accountService),
		Customer:  handler.NewCustomerHandler(customerService),
		Product:   handler.NewProductHandler(productService),
		Order:     handler.NewOrderHandler(orderService, printService),
		Finance:   handler.NewFinanceHandler(financeService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Logger:          logger,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("starting server",
		zap.String("service", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", port),
	)

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
