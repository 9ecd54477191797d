package app

import (
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/luxtick-backend/internal/clients/openai"
	"github.com/yungbote/luxtick-backend/internal/platform/envutil"
	"github.com/yungbote/luxtick-backend/internal/platform/logger"
	"github.com/yungbote/luxtick-backend/internal/services"
)

type Services struct {
	Taxonomy     services.TaxonomyService
	Intelligence services.ItemIntelligenceService
	Resolver     services.ProductResolver
	Query        services.ProductQueryService
	Purchase     services.PurchaseService
	ShoppingList services.ShoppingListService
	Analytics    services.AnalyticsService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) Services {
	log.Info("Wiring services...")

	taxonomy := services.NewTaxonomyService(db, log, reposet.Category,
		services.LoadDefaultTree(cfg.TaxonomyConfigPath, log))

	var ai services.AIClient
	enabled := cfg.IntelligenceEnabled
	// Test keys get the identity fallback instead of real model calls.
	if strings.HasPrefix(envutil.String("OPENAI_API_KEY", ""), "test-") {
		log.Info("Test OpenAI key detected, item intelligence disabled")
		enabled = false
	}
	if enabled {
		client, err := openai.NewClient(log)
		if err != nil {
			log.Warn("OpenAI client unavailable, item intelligence disabled", "error", err)
			enabled = false
		} else {
			ai = client
		}
	}
	intelligence := services.NewItemIntelligenceService(log, ai, taxonomy, enabled)

	resolver := services.NewProductResolver(db, log, reposet.Product, taxonomy)
	query := services.NewProductQueryService(db, log, reposet.Product)
	purchase := services.NewPurchaseService(db, log, reposet.Store, reposet.Receipt,
		reposet.ReceiptItem, resolver, intelligence)
	shoppingList := services.NewShoppingListService(db, log, reposet.ShoppingList,
		reposet.ShoppingListItem, resolver, intelligence)
	analytics := services.NewAnalyticsService(db, log, reposet.Analytics, query)

	return Services{
		Taxonomy:     taxonomy,
		Intelligence: intelligence,
		Resolver:     resolver,
		Query:        query,
		Purchase:     purchase,
		ShoppingList: shoppingList,
		Analytics:    analytics,
	}
}
