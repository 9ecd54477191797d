package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/luxtick-backend/internal/platform/logger"
)

// ItemIntelligence is the per-name suggestion produced by the item
// intelligence model: an English canonical name, English aliases, a category
// path and a confidence in [0,1]. It is ephemeral and consumed once during
// resolution.
type ItemIntelligence struct {
	SourceName    string   `json:"source_name"`
	CanonicalName string   `json:"canonical_name_en"`
	Aliases       []string `json:"aliases_en"`
	CategoryPath  string   `json:"category_path_en"`
	Confidence    float64  `json:"confidence"`
}

// AIClient is the slice of the LLM client the intelligence service needs.
type AIClient interface {
	GenerateJSON(ctx context.Context, system string, user string) (map[string]any, error)
}

type ItemIntelligenceService interface {
	// EnrichItems returns intelligence keyed by the original raw name. Every
	// requested non-blank name is guaranteed an entry; when intelligence is
	// disabled or the model call fails, the entry is the identity fallback (title-cased
	// name, the name itself as sole alias, FallbackCategoryPath, zero
	// confidence). This method never returns an error to its caller.
	EnrichItems(ctx context.Context, rawNames []string) map[string]ItemIntelligence
}

const (
	maxHintAliases = 20
	maxAliasLength = 255

	enrichBatchSize   = 25
	enrichConcurrency = 4
)

const intelligencePrompt = `You are a grocery item normalization and categorization engine.
Given a list of raw purchase item names (possibly multilingual and noisy receipt text),
return a JSON object that maps each item into English canonical product intelligence.

Rules:
1) Canonical names MUST be in English.
2) Aliases MUST be in English and concise. Include the source-language alias only if useful.
3) Category path MUST be in English and use this format exactly: "Root > Subcategory".
4) Keep semantics faithful (e.g., "pechuga de pollo" -> "Chicken Breast").
5) Do not invent brands or quantities not present in the item.
6) If uncertain, use lower confidence and choose "Other > Uncategorized".
7) Output ONLY valid JSON with this shape:
   {"items": [{"source_name": "...", "canonical_name_en": "...", "aliases_en": ["..."], "category_path_en": "...", "confidence": 0.0}]}`

type itemIntelligenceService struct {
	log      *logger.Logger
	ai       AIClient
	taxonomy TaxonomyService
	enabled  bool
}

func NewItemIntelligenceService(
	baseLog *logger.Logger,
	ai AIClient,
	taxonomy TaxonomyService,
	enabled bool,
) ItemIntelligenceService {
	serviceLog := baseLog.With("service", "ItemIntelligenceService")
	return &itemIntelligenceService{
		log:      serviceLog,
		ai:       ai,
		taxonomy: taxonomy,
		enabled:  enabled,
	}
}

func (iis *itemIntelligenceService) EnrichItems(ctx context.Context, rawNames []string) map[string]ItemIntelligence {
	cleaned := make([]string, 0, len(rawNames))
	for _, name := range rawNames {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return map[string]ItemIntelligence{}
	}

	if !iis.enabled || iis.ai == nil {
		return fallbackMap(cleaned)
	}

	mapped := make(map[string]ItemIntelligence, len(cleaned))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for start := 0; start < len(cleaned); start += enrichBatchSize {
		end := start + enrichBatchSize
		if end > len(cleaned) {
			end = len(cleaned)
		}
		batch := cleaned[start:end]
		g.Go(func() error {
			payload, err := iis.callModel(gctx, batch)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			for _, item := range payload {
				normalized := normalizeIntelligence(item)
				if normalized.SourceName == "" {
					continue
				}
				mapped[normalized.SourceName] = normalized
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		iis.log.Warn("Item intelligence call failed, using fallback mapping", "error", err)
	}

	// Every source item gets an entry even when the model skipped it.
	for _, name := range cleaned {
		if _, ok := mapped[name]; !ok {
			mapped[name] = identityFallback(name)
		}
	}
	return mapped
}

func (iis *itemIntelligenceService) callModel(ctx context.Context, names []string) ([]ItemIntelligence, error) {
	userPayload, err := json.Marshal(map[string]any{"items": names})
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}

	system := intelligencePrompt
	if paths := iis.taxonomy.DefaultPaths(); len(paths) > 0 {
		system = fmt.Sprintf("%s\n\nUse one of these category paths when possible: %s",
			intelligencePrompt, strings.Join(paths, ", "))
	}

	raw, err := iis.ai.GenerateJSON(ctx, system, string(userPayload))
	if err != nil {
		return nil, err
	}

	// Round-trip through JSON to decode the loosely typed response.
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("re-encode intelligence response: %w", err)
	}
	var decoded struct {
		Items []ItemIntelligence `json:"items"`
	}
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		return nil, fmt.Errorf("decode intelligence response: %w", err)
	}
	return decoded.Items, nil
}

// normalizeIntelligence enforces the intelligence contract on one item: title-cased
// canonical name, trimmed bounded aliases with the canonical name included,
// a non-empty category path and a confidence clamped to [0,1].
func normalizeIntelligence(item ItemIntelligence) ItemIntelligence {
	source := strings.TrimSpace(item.SourceName)

	canonical := strings.TrimSpace(item.CanonicalName)
	if canonical == "" {
		canonical = source
	}
	canonical = TitleCaseName(canonical)

	aliases := make([]string, 0, len(item.Aliases)+1)
	for _, alias := range item.Aliases {
		trimmed := strings.TrimSpace(alias)
		if trimmed == "" || len(trimmed) > maxAliasLength {
			continue
		}
		aliases = append(aliases, trimmed)
	}
	if !containsFold(aliases, canonical) {
		aliases = append(aliases, canonical)
	}
	if len(aliases) > maxHintAliases {
		aliases = aliases[:maxHintAliases]
	}

	path := strings.TrimSpace(item.CategoryPath)
	if path == "" {
		path = FallbackCategoryPath
	}

	confidence := item.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return ItemIntelligence{
		SourceName:    source,
		CanonicalName: canonical,
		Aliases:       aliases,
		CategoryPath:  path,
		Confidence:    confidence,
	}
}

func fallbackMap(names []string) map[string]ItemIntelligence {
	out := make(map[string]ItemIntelligence, len(names))
	for _, name := range names {
		out[name] = identityFallback(name)
	}
	return out
}

func identityFallback(name string) ItemIntelligence {
	return ItemIntelligence{
		SourceName:    name,
		CanonicalName: TitleCaseName(name),
		Aliases:       []string{name},
		CategoryPath:  FallbackCategoryPath,
		Confidence:    0,
	}
}

func containsFold(values []string, needle string) bool {
	for _, v := range values {
		if strings.EqualFold(v, needle) {
			return true
		}
	}
	return false
}
