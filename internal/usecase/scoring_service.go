package usecase

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/riderbuilder/backend/internal/domain"
)

// Product scoring weights. The allergen penalty is sized to push any
// realistic positive score to the clamped floor, so conflicting products
// drop out without a separate filter step.
const (
	weightFestivalFit       = 5
	weightPreferenceMatch   = 15
	weightCategoryWanted    = 20
	weightVibeMatch         = 10
	penaltyAllergenConflict = 100
	penaltyBudgetMismatch   = 5
)

// Rider similarity weights. The flat baseline guarantees a non-zero match
// for any pair of riders.
const (
	similarityWeightPreference = 0.35
	similarityWeightCategory   = 0.25
	similarityWeightVibe       = 0.20
	similarityWeightAllergen   = 0.10
	similarityBaseline         = 20
)

// Festival-fit ratings at or above this get their own recommendation reason.
const festivalFitCalloutMin = 4

// Cart balance bucket membership by category. A product can land in several
// buckets or none, so the percentages are independent.
var (
	snackCategories = []domain.ProductCategory{
		domain.CategorySnacks, domain.CategoryCandy, domain.CategoryChocolate,
	}
	drinkCategories = []domain.ProductCategory{
		domain.CategoryEnergyDrink, domain.CategoryCoffee, domain.CategoryNonAlcohol,
		domain.CategorySportsDrink, domain.CategoryTea, domain.CategoryWater,
	}
	proteinCategories = []domain.ProductCategory{
		domain.CategoryProteinBar, domain.CategoryDairy,
	}
	vegCategories = []domain.ProductCategory{
		domain.CategoryFruit, domain.CategoryVego,
	}
)

// proteinTag also counts a product into the protein bucket regardless of
// its category.
const proteinTag = "protein"

// ScoringConfig holds configuration for the scoring service
type ScoringConfig struct {
	DefaultLimit       int
	EnableDebugLogging bool
}

// ScoringService ranks catalog products against a rider, compares riders to
// reference profiles, and analyzes cart composition. All methods are pure
// functions of their inputs.
type ScoringService struct {
	defaultLimit       int
	enableDebugLogging bool
}

// NewScoringService creates a scoring service with the given configuration
func NewScoringService(config ScoringConfig) *ScoringService {
	limit := config.DefaultLimit
	if limit <= 0 {
		limit = 10
	}

	return &ScoringService{
		defaultLimit:       limit,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// ScoreProduct computes the match score between one product and one rider.
// Additive scoring with a hard allergen penalty, clamped at zero. All tag
// vocabulary is folded through NormalizeText before comparison so catalog
// data written with Swedish diacritics matches the parser's folded tags.
func (s *ScoringService) ScoreProduct(product domain.Product, rider *domain.Rider) int {
	tags := foldList(product.Tags)
	category := NormalizeText(string(product.Category))

	score := product.FestivalFit * weightFestivalFit

	score += countPreferenceMatches(tags, category, rider.Preferences) * weightPreferenceMatch

	if containsString(foldList(rider.CategoriesWanted), category) {
		score += weightCategoryWanted
	}

	score += countVibeMatches(tags, rider.VibeTags) * weightVibeMatch

	if hasAllergenConflict(product.Allergens, rider.AllergensAvoid) {
		score -= penaltyAllergenConflict
	}

	if rider.BudgetTier.Valid() {
		tierDiff := product.PriceTier - int(rider.BudgetTier)
		if tierDiff < 0 {
			tierDiff = -tierDiff
		}
		score -= tierDiff * penaltyBudgetMismatch
	}

	if score < 0 {
		score = 0
	}
	return score
}

// Recommend scores every product in the catalog, drops non-positive scores,
// and returns recommendations sorted by descending score. The sort is
// stable, so catalog order breaks ties. A limit <= 0 falls back to the
// configured default.
func (s *ScoringService) Recommend(products []domain.Product, rider *domain.Rider, limit int) []domain.ProductRecommendation {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	recommendations := make([]domain.ProductRecommendation, 0, len(products))
	for _, product := range products {
		score := s.ScoreProduct(product, rider)
		if score <= 0 {
			continue
		}
		recommendations = append(recommendations, domain.ProductRecommendation{
			Product: product,
			Score:   score,
			Reasons: matchReasons(product, rider),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	if len(recommendations) > limit {
		recommendations = recommendations[:limit]
	}

	if s.enableDebugLogging {
		log.Printf("[SCORE] Recommended %d of %d products (limit %d)", len(recommendations), len(products), limit)
	}

	return recommendations
}

// MatchRiders compares the user's rider against a reference rider along four
// overlap dimensions and returns the weighted total. Every sub-score and
// the total are within [0,100]; the baseline keeps the total above zero for
// any pair, including two empty riders.
func (s *ScoringService) MatchRiders(user, reference *domain.Rider) domain.MatchScore {
	preferenceMatch := overlapRatio(user.Preferences, reference.Preferences)
	allergenOverlap := overlapRatio(user.AllergensAvoid, reference.AllergensAvoid)
	categoryMatch := overlapRatio(user.CategoriesWanted, reference.CategoriesWanted)
	vibeMatch := overlapRatio(user.VibeTags, reference.VibeTags)

	total := int(math.Round(
		preferenceMatch*similarityWeightPreference +
			categoryMatch*similarityWeightCategory +
			vibeMatch*similarityWeightVibe +
			(100-allergenOverlap)*similarityWeightAllergen +
			similarityBaseline))
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}

	return domain.MatchScore{
		Total:            total,
		PreferenceMatch:  int(math.Round(preferenceMatch)),
		AllergenConflict: int(math.Round(allergenOverlap)),
		CategoryMatch:    int(math.Round(categoryMatch)),
		VibeMatch:        int(math.Round(vibeMatch)),
	}
}

// CartBalance computes the categorical composition of a selected product
// multiset (quantities already expanded into repeated entries). An empty
// cart yields all zeroes rather than a division error.
func (s *ScoringService) CartBalance(products []domain.Product) domain.CartBalance {
	total := len(products)
	if total == 0 {
		total = 1
	}

	var snacks, drinks, protein, veg int
	for _, p := range products {
		if containsCategory(snackCategories, p.Category) {
			snacks++
		}
		if containsCategory(drinkCategories, p.Category) {
			drinks++
		}
		if containsCategory(proteinCategories, p.Category) || containsString(foldList(p.Tags), proteinTag) {
			protein++
		}
		if containsCategory(vegCategories, p.Category) {
			veg++
		}
	}

	return domain.CartBalance{
		Snacks:  percentage(snacks, total),
		Drinks:  percentage(drinks, total),
		Protein: percentage(protein, total),
		Veg:     percentage(veg, total),
	}
}

// matchReasons generates the ordered justification list for a recommended
// product. The fallback keeps the list non-empty.
func matchReasons(product domain.Product, rider *domain.Rider) []string {
	var reasons []string

	tags := foldList(product.Tags)
	category := NormalizeText(string(product.Category))

	var matchedPrefs []string
	for _, pref := range rider.Preferences {
		if containsString(tags, NormalizeText(pref)) {
			matchedPrefs = append(matchedPrefs, pref)
		}
	}
	if len(matchedPrefs) > 0 {
		reasons = append(reasons, fmt.Sprintf("Matchar: %s", strings.Join(matchedPrefs, ", ")))
	}

	if containsString(foldList(rider.CategoriesWanted), category) {
		reasons = append(reasons, fmt.Sprintf("Kategori: %s", product.Category))
	}

	var matchedVibes []string
	for _, vibe := range rider.VibeTags {
		if anyTagContains(tags, NormalizeText(vibe)) {
			matchedVibes = append(matchedVibes, vibe)
		}
	}
	if len(matchedVibes) > 0 {
		reasons = append(reasons, fmt.Sprintf("Vibe: %s", strings.Join(matchedVibes, ", ")))
	}

	if product.FestivalFit >= festivalFitCalloutMin {
		reasons = append(reasons, "Perfekt för festival")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Bra allmänt val")
	}

	return reasons
}

// countPreferenceMatches counts rider preferences matching the product by
// exact tag membership, category equality, or tag substring containment.
// tags and category must already be folded.
func countPreferenceMatches(tags []string, category string, preferences []string) int {
	count := 0
	for _, pref := range preferences {
		folded := NormalizeText(pref)
		if containsString(tags, folded) ||
			category == folded ||
			anyTagContains(tags, folded) {
			count++
		}
	}
	return count
}

// countVibeMatches counts vibe tags found as a substring of any product tag.
// tags must already be folded.
func countVibeMatches(tags, vibes []string) int {
	count := 0
	for _, vibe := range vibes {
		if anyTagContains(tags, NormalizeText(vibe)) {
			count++
		}
	}
	return count
}

// hasAllergenConflict reports whether any product allergen overlaps any
// avoided allergen by bidirectional substring containment, so "nötter" and
// "jordnötter" conflict in either direction regardless of spelling.
func hasAllergenConflict(productAllergens, avoided []string) bool {
	for _, allergen := range foldList(productAllergens) {
		for _, avoid := range foldList(avoided) {
			if strings.Contains(allergen, avoid) || strings.Contains(avoid, allergen) {
				return true
			}
		}
	}
	return false
}

// overlapRatio returns min(100, 100*|intersection|/max(|user|,1)). The
// denominator is the user's list, so it measures how much of the user's
// profile the reference covers. Both lists are folded before intersecting.
func overlapRatio(user, reference []string) float64 {
	folded := foldList(reference)
	common := 0
	for _, item := range user {
		if containsString(folded, NormalizeText(item)) {
			common++
		}
	}

	denom := len(user)
	if denom < 1 {
		denom = 1
	}

	ratio := float64(common) / float64(denom) * 100
	if ratio > 100 {
		ratio = 100
	}
	return ratio
}

// foldList normalizes every item through NormalizeText.
func foldList(items []string) []string {
	folded := make([]string, len(items))
	for i, item := range items {
		folded[i] = NormalizeText(item)
	}
	return folded
}

func percentage(count, total int) int {
	return int(math.Round(float64(count) / float64(total) * 100))
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func containsCategory(list []domain.ProductCategory, c domain.ProductCategory) bool {
	for _, item := range list {
		if item == c {
			return true
		}
	}
	return false
}

func anyTagContains(tags []string, substr string) bool {
	for _, tag := range tags {
		if strings.Contains(tag, substr) {
			return true
		}
	}
	return false
}
