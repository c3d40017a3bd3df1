package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sanjeev1695/billing-software/internal/api/handlers"
	"github.com/Sanjeev1695/billing-software/internal/api/middleware"
	"github.com/Sanjeev1695/billing-software/internal/config"
	"github.com/Sanjeev1695/billing-software/internal/services"
)

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client) *gin.Engine {
	// Initialize services needed by API handlers
	itemService := services.NewItemService(db, cfg, rdb)
	billService := services.NewBillService(db, cfg)
	creditService := services.NewCreditService(db)
	analyticsService := services.NewAnalyticsService(db)

	r := gin.Default()

	// Initialize Middleware
	rateLimiter := middleware.NewRateLimiterMiddleware(cfg)

	// Apply global middleware first (order matters)
	r.Use(middleware.CORSMiddleware())
	r.Use(rateLimiter.Limit())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg)
	itemHandler := handlers.NewItemHandler(itemService)
	billHandler := handlers.NewBillHandler(billService)
	creditHandler := handlers.NewCreditHandler(creditService)
	statsHandler := handlers.NewStatsHandler(analyticsService)

	apiGroup := r.Group("/api")
	{
		// Public routes (rate limiting already applied globally)
		apiGroup.POST("/auth/login", authHandler.Login)

		// Authenticated routes
		authRequired := apiGroup.Group("/")
		authRequired.Use(middleware.AuthMiddleware(cfg.JwtSecret))
		{
			authRequired.GET("/auth/verify", authHandler.Verify)

			authRequired.POST("/items", itemHandler.CreateItem)
			authRequired.GET("/items", itemHandler.ListItems)
			authRequired.GET("/items/search/:query", itemHandler.SearchItems)
			authRequired.PUT("/items/:id", itemHandler.UpdateItem)
			authRequired.DELETE("/items/:id", itemHandler.DeleteItem)

			// today-stats is registered before :id so the literal segment wins
			authRequired.GET("/bills/today-stats", statsHandler.TodayStats)
			authRequired.POST("/bills", billHandler.CreateBill)
			authRequired.GET("/bills", billHandler.ListBills)
			authRequired.GET("/bills/:id", billHandler.GetBill)
			authRequired.PUT("/bills/:id", billHandler.UpdateBill)
			authRequired.DELETE("/bills/:id", billHandler.DeleteBill)
			authRequired.POST("/bills/:id/payments", creditHandler.ApplyPayment)

			authRequired.GET("/credit/customers", creditHandler.ListCreditCustomers)
			authRequired.GET("/credit/customers/:phone/payments", creditHandler.ListPayments)

			authRequired.GET("/stats/period", statsHandler.PeriodStats)
			authRequired.GET("/stats/top-items", statsHandler.TopItems)
		}
	}

	return r
}
