package app

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/luxtick-backend/internal/http"
	httpH "github.com/yungbote/luxtick-backend/internal/http/handlers"
	"github.com/yungbote/luxtick-backend/internal/platform/logger"
)

type Handlers struct {
	Health       *httpH.HealthHandler
	Product      *httpH.ProductHandler
	Category     *httpH.CategoryHandler
	Purchase     *httpH.PurchaseHandler
	ShoppingList *httpH.ShoppingListHandler
	Analytics    *httpH.AnalyticsHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:       httpH.NewHealthHandler(),
		Product:      httpH.NewProductHandler(log, db, serviceset.Resolver, serviceset.Query, serviceset.Intelligence),
		Category:     httpH.NewCategoryHandler(log, serviceset.Taxonomy),
		Purchase:     httpH.NewPurchaseHandler(log, serviceset.Purchase),
		ShoppingList: httpH.NewShoppingListHandler(log, serviceset.ShoppingList),
		Analytics:    httpH.NewAnalyticsHandler(log, serviceset.Analytics),
	}
}

func wireRouter(cfg Config, handlerset Handlers) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		AllowOrigins:        cfg.AllowOrigins,
		HealthHandler:       handlerset.Health,
		ProductHandler:      handlerset.Product,
		CategoryHandler:     handlerset.Category,
		PurchaseHandler:     handlerset.Purchase,
		ShoppingListHandler: handlerset.ShoppingList,
		AnalyticsHandler:    handlerset.Analytics,
	})
}
