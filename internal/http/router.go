package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/luxtick-backend/internal/http/handlers"
)

const tracingServiceName = "luxtick-api"

type RouterConfig struct {
	AllowOrigins []string

	HealthHandler       *httpH.HealthHandler
	ProductHandler      *httpH.ProductHandler
	CategoryHandler     *httpH.CategoryHandler
	PurchaseHandler     *httpH.PurchaseHandler
	ShoppingListHandler *httpH.ShoppingListHandler
	AnalyticsHandler    *httpH.AnalyticsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	// A no-op when no tracer provider is installed.
	r.Use(otelgin.Middleware(tracingServiceName))

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Products
		if cfg.ProductHandler != nil {
			api.POST("/products/resolve", cfg.ProductHandler.ResolveProduct)
			api.GET("/products", cfg.ProductHandler.GetProducts)
			api.GET("/products/matches", cfg.ProductHandler.FindMatches)
		}

		// Categories
		if cfg.CategoryHandler != nil {
			api.GET("/categories", cfg.CategoryHandler.ListCategories)
		}

		// Purchases
		if cfg.PurchaseHandler != nil {
			api.POST("/purchases", cfg.PurchaseHandler.RecordPurchase)
			api.GET("/purchases", cfg.PurchaseHandler.ListPurchases)
			api.GET("/purchases/search", cfg.PurchaseHandler.SearchPurchases)
		}

		// Shopping lists
		if cfg.ShoppingListHandler != nil {
			api.POST("/shopping-lists", cfg.ShoppingListHandler.CreateList)
			api.GET("/shopping-lists", cfg.ShoppingListHandler.ListByUser)
			api.POST("/shopping-lists/:id/items", cfg.ShoppingListHandler.AddItems)
			api.POST("/shopping-list-items/:id/check", cfg.ShoppingListHandler.CheckOffItem)
		}

		// Analytics
		if cfg.AnalyticsHandler != nil {
			api.GET("/analytics/summary", cfg.AnalyticsHandler.SpendingSummary)
			api.GET("/analytics/frequent", cfg.AnalyticsHandler.FrequentPurchases)
			api.GET("/analytics/prices", cfg.AnalyticsHandler.ComparePrices)
		}
	}

	return r
}
