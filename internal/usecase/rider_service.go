package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/riderbuilder/backend/internal/domain"
)

// ConfidenceParser is the optional secondary capability of a parser. The
// heuristic parser implements it; a future model-based parser may not.
type ConfidenceParser interface {
	ParseWithConfidence(ctx context.Context, text string) (*domain.Rider, *domain.RiderConfidence, error)
}

// RiderServiceConfig holds configuration for the rider service
type RiderServiceConfig struct {
	CacheTTL           time.Duration
	DefaultLimit       int
	EnableDebugLogging bool
}

// RiderService orchestrates parsing, recommendation, celebrity matching and
// cart analysis on top of the pure core. It owns the only stateful pieces:
// the parse cache and the catalog repositories.
type RiderService struct {
	parser      domain.RiderParser
	scoring     *ScoringService
	products    domain.ProductRepository
	celebrities domain.CelebrityRepository
	cache       domain.RiderCache
	cacheTTL    time.Duration
	debug       bool
}

// NewRiderService creates a rider service with dependencies
func NewRiderService(
	parser domain.RiderParser,
	products domain.ProductRepository,
	celebrities domain.CelebrityRepository,
	cache domain.RiderCache,
	config RiderServiceConfig,
) *RiderService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &RiderService{
		parser:      parser,
		scoring:     NewScoringService(ScoringConfig{DefaultLimit: config.DefaultLimit, EnableDebugLogging: config.EnableDebugLogging}),
		products:    products,
		celebrities: celebrities,
		cache:       cache,
		cacheTTL:    cacheTTL,
		debug:       config.EnableDebugLogging,
	}
}

// ParseRider parses rider text, serving repeat inputs from the cache.
// Parsing is deterministic, so the cache key is the normalized text and a
// hit is indistinguishable from a fresh parse apart from RawText casing,
// which is restored from the actual request.
func (s *RiderService) ParseRider(ctx context.Context, text string) (*domain.Rider, error) {
	if text == "" {
		return nil, domain.ErrInvalidRequest
	}

	cacheKey := riderCacheKey(text)

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != nil {
		result := *cached
		result.RawText = text
		if s.debug {
			log.Printf("[RIDER] Cache hit for key %q", cacheKey)
		}
		return &result, nil
	}

	rider, err := s.parser.Parse(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("parse rider: %w", err)
	}

	if err := s.cache.Set(ctx, cacheKey, rider, s.cacheTTL); err != nil && s.debug {
		log.Printf("[RIDER] Cache set failed for key %q: %v", cacheKey, err)
	}

	return rider, nil
}

// ParseRiderWithConfidence parses rider text and returns per-field
// confidence estimates. Confidence is nil when the configured parser does
// not support estimation.
func (s *RiderService) ParseRiderWithConfidence(ctx context.Context, text string) (*domain.Rider, *domain.RiderConfidence, error) {
	if text == "" {
		return nil, nil, domain.ErrInvalidRequest
	}

	if cp, ok := s.parser.(ConfidenceParser); ok {
		return cp.ParseWithConfidence(ctx, text)
	}

	rider, err := s.ParseRider(ctx, text)
	return rider, nil, err
}

// RecommendForRider ranks the whole catalog against a pre-built rider.
func (s *RiderService) RecommendForRider(ctx context.Context, rider *domain.Rider, limit int) ([]domain.ProductRecommendation, error) {
	if rider == nil {
		return nil, domain.ErrInvalidRequest
	}

	products, err := s.products.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if len(products) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	return s.scoring.Recommend(products, rider, limit), nil
}

// RecommendFromText is the end-to-end flow: parse the text, then rank the
// catalog against the result.
func (s *RiderService) RecommendFromText(ctx context.Context, text string, limit int) (*domain.Rider, []domain.ProductRecommendation, error) {
	rider, err := s.ParseRider(ctx, text)
	if err != nil {
		return nil, nil, err
	}

	recommendations, err := s.RecommendForRider(ctx, rider, limit)
	if err != nil {
		return nil, nil, err
	}

	return rider, recommendations, nil
}

// Celebrities lists all reference rider profiles.
func (s *RiderService) Celebrities(ctx context.Context) ([]domain.CelebrityRider, error) {
	return s.celebrities.All(ctx)
}

// Celebrity returns one reference profile by ID.
func (s *RiderService) Celebrity(ctx context.Context, id string) (*domain.CelebrityRider, error) {
	return s.celebrities.GetByID(ctx, id)
}

// MatchCelebrity scores the user's rider against one reference profile.
func (s *RiderService) MatchCelebrity(ctx context.Context, celebrityID string, rider *domain.Rider) (*domain.MatchScore, *domain.CelebrityRider, error) {
	if rider == nil {
		return nil, nil, domain.ErrInvalidRequest
	}

	celebrity, err := s.celebrities.GetByID(ctx, celebrityID)
	if err != nil {
		return nil, nil, err
	}

	score := s.scoring.MatchRiders(rider, &celebrity.ParsedRider)
	return &score, celebrity, nil
}

// CartBalance resolves the cart items against the catalog, expands
// quantities, and computes the bucket percentages. Unknown product IDs are
// an error rather than being silently dropped. A missing quantity counts
// as one.
func (s *RiderService) CartBalance(ctx context.Context, items []domain.CartItem) (*domain.CartBalance, error) {
	expanded := make([]domain.Product, 0, len(items))
	for _, item := range items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("cart item %q: %w", item.ProductID, err)
		}

		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		for i := 0; i < quantity; i++ {
			expanded = append(expanded, *product)
		}
	}

	balance := s.scoring.CartBalance(expanded)
	return &balance, nil
}

// riderCacheKey builds the cache key from the normalized text so that
// inputs differing only in case, accents or spacing share an entry.
func riderCacheKey(text string) string {
	return "rider:" + NormalizeText(text)
}
