package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/techfix/workshop-api/internal/config"
	domainRepo "github.com/techfix/workshop-api/internal/domain/repository"
	"github.com/techfix/workshop-api/internal/presentation/http/handler"
	"github.com/techfix/workshop-api/internal/presentation/http/middleware"
	"github.com/techfix/workshop-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Account   *handler.AccountHandler
	Customer  *handler.CustomerHandler
	Product   *handler.ProductHandler
	Order     *handler.OrderHandler
	Finance   *handler.FinanceHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Logger          *zap.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewAccountRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Shop profile
	protected.GET("/account", h.Account.Get)
	protected.PUT("/account", h.Account.Update)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)

	registerCustomerRoutes(protected, h)
	registerProductRoutes(protected, h)
	registerOrderRoutes(protected, h, deps)
	registerFinanceRoutes(protected, h)
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		// Order creation uses idempotency middleware so a retried submit
		// replays the original response instead of allocating a new number
		orders.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id", h.Order.Update)
		orders.DELETE("/:id", h.Order.Delete)
		orders.GET("/:id/print", h.Order.Print)
		orders.POST("/:id/line-items", h.Order.AddLineItem)
	}

	lineItems := protected.Group("/line-items")
	{
		lineItems.PUT("/:id", h.Order.UpdateLineItem)
		lineItems.DELETE("/:id", h.Order.RemoveLineItem)
	}
}

func registerFinanceRoutes(protected *gin.RouterGroup, h *Handlers) {
	entries := protected.Group("/financial-entries")
	{
		entries.GET("", h.Finance.List)
		entries.POST("", h.Finance.Create)
		entries.GET("/summary", h.Finance.Summary)
		entries.GET("/:id", h.Finance.Get)
		entries.PUT("/:id", h.Finance.Update)
		entries.POST("/:id/pay", h.Finance.Pay)
		entries.DELETE("/:id", h.Finance.Delete)
	}
}
