package app

import (
	"strings"

	"github.com/yungbote/luxtick-backend/internal/platform/envutil"
)

type Config struct {
	Port                string
	AllowOrigins        []string
	TaxonomyConfigPath  string
	IntelligenceEnabled bool
}

func LoadConfig() Config {
	origins := strings.Split(envutil.String("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return Config{
		Port:                envutil.String("PORT", "8080"),
		AllowOrigins:        origins,
		TaxonomyConfigPath:  envutil.String("TAXONOMY_CONFIG_PATH", "configs/taxonomy.yaml"),
		IntelligenceEnabled: envutil.Bool("ITEM_INTELLIGENCE_ENABLED", true),
	}
}
