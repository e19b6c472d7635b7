package usecase

import (
	"context"
	"log"
	"sort"
	"strconv"

	"github.com/riderbuilder/backend/internal/domain"
)

// People counts outside (0, maxPeopleCount) are discarded as noise.
const maxPeopleCount = 100

// Per-field confidence heuristics
const (
	peopleExplicitConfidence = 0.95 // digit plus a person unit ("5 personer")
	peopleDigitConfidence    = 0.70 // some digit present
	peopleFallbackConfidence = 0.50 // inferred without any digit

	budgetBaseConfidence = 0.40
	budgetPerMention     = 0.20
	budgetMaxConfidence  = 0.90

	listBaseConfidence = 0.30
	listPerItem        = 0.10
	listMaxConfidence  = 0.95

	allergyContextBoost = 0.15
)

// Overall confidence weights per field; they sum to 1.0.
const (
	overallWeightPeople      = 0.15
	overallWeightBudget      = 0.10
	overallWeightPreferences = 0.25
	overallWeightAllergens   = 0.20
	overallWeightCategories  = 0.20
	overallWeightVibe        = 0.10
)

// ParserConfig holds configuration for the heuristic parser
type ParserConfig struct {
	EnableDebugLogging bool
}

// HeuristicRiderParser extracts structured rider data from free text using
// the pattern library. It is the only production domain.RiderParser today;
// the interface exists so a model-based parser can replace it without
// touching the scoring code.
type HeuristicRiderParser struct {
	enableDebugLogging bool
}

var _ domain.RiderParser = (*HeuristicRiderParser)(nil)

// NewHeuristicRiderParser creates a parser with the given configuration
func NewHeuristicRiderParser(config ParserConfig) *HeuristicRiderParser {
	return &HeuristicRiderParser{
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Parse extracts a Rider from free text. Parsing is total and deterministic:
// text with no recognized vocabulary yields a valid record with empty
// fields, never an error.
func (p *HeuristicRiderParser) Parse(ctx context.Context, text string) (*domain.Rider, error) {
	normalized := NormalizeText(text)

	rider := &domain.Rider{
		PeopleCount:      extractPeopleCount(normalized),
		BudgetTier:       extractBudgetTier(normalized),
		Preferences:      extractWeightedTags(normalized, preferencePatterns),
		AllergensAvoid:   extractAllergens(normalized),
		CategoriesWanted: extractWeightedTags(normalized, categoryPatterns),
		VibeTags:         extractWeightedTags(normalized, vibePatterns),
		RawText:          text,
	}

	if p.enableDebugLogging {
		log.Printf("[PARSE] %q -> people=%d budget=%s prefs=%v allergens=%v categories=%v vibes=%v",
			normalized, rider.PeopleCount, rider.BudgetTier,
			rider.Preferences, rider.AllergensAvoid, rider.CategoriesWanted, rider.VibeTags)
	}

	return rider, nil
}

// ParseWithConfidence parses the text and additionally estimates per-field
// confidence scores in [0,1]. The overall score is a fixed weighted average
// across the six fields.
func (p *HeuristicRiderParser) ParseWithConfidence(ctx context.Context, text string) (*domain.Rider, *domain.RiderConfidence, error) {
	rider, err := p.Parse(ctx, text)
	if err != nil {
		return nil, nil, err
	}

	normalized := NormalizeText(text)

	confidence := &domain.RiderConfidence{
		PeopleCount: peopleConfidence(normalized, rider.PeopleCount),
		BudgetTier:  budgetConfidence(normalized, rider.BudgetTier),
		Preferences: listConfidence(len(rider.Preferences)),
		Allergens:   allergenConfidence(normalized, len(rider.AllergensAvoid)),
		Categories:  listConfidence(len(rider.CategoriesWanted)),
		Vibe:        listConfidence(len(rider.VibeTags)),
	}

	confidence.Overall = confidence.PeopleCount*overallWeightPeople +
		confidence.BudgetTier*overallWeightBudget +
		confidence.Preferences*overallWeightPreferences +
		confidence.Allergens*overallWeightAllergens +
		confidence.Categories*overallWeightCategories +
		confidence.Vibe*overallWeightVibe

	return rider, confidence, nil
}

// extractPeopleCount tries the ordered people patterns and returns the first
// count in (0, maxPeopleCount), or 0 when nothing matches. Patterns do not
// accumulate; the first hit wins.
func extractPeopleCount(text string) int {
	for _, pp := range peopleCountPatterns {
		match := pp.pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		count, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if pp.plusOne {
			// "mig och 3 vanner" means the speaker plus three
			count++
		}
		if count > 0 && count < maxPeopleCount {
			return count
		}
	}

	if soloPattern.MatchString(text) {
		return 1
	}

	return 0
}

// extractBudgetTier counts each tier's vocabulary occurrences and returns
// the tier with the strictly highest count. Ties fall back to the declared
// table order (Low > High > Medium). All-zero counts yield the zero value.
func extractBudgetTier(text string) domain.BudgetTier {
	best := domain.BudgetTier(0)
	bestCount := 0

	for _, bp := range budgetPatterns {
		count := len(bp.pattern.FindAllString(text, -1))
		if count > bestCount {
			bestCount = count
			best = bp.tier
		}
	}

	return best
}

// extractWeightedTags accumulates occurrences*weight per tag and returns
// tags with positive score sorted by descending score. The stable sort
// keeps table order on equal scores.
func extractWeightedTags(text string, table []tagPattern) []string {
	type scored struct {
		tag   string
		score float64
	}

	var hits []scored
	for _, tp := range table {
		count := len(tp.pattern.FindAllString(text, -1))
		if count == 0 {
			continue
		}
		hits = append(hits, scored{tag: tp.tag, score: float64(count) * tp.weight})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	tags := make([]string, 0, len(hits))
	for _, h := range hits {
		tags = append(tags, h.tag)
	}
	return tags
}

// extractAllergens runs a presence test per allergen in table order. Repeat
// mentions do not change the result, so no weights are accumulated.
func extractAllergens(text string) []string {
	allergens := make([]string, 0, 2)
	for _, tp := range allergenPatterns {
		if tp.pattern.MatchString(text) {
			allergens = append(allergens, tp.tag)
		}
	}
	return allergens
}

func peopleConfidence(text string, count int) float64 {
	if count == 0 {
		return 0
	}
	if explicitPeopleRegex.MatchString(text) {
		return peopleExplicitConfidence
	}
	if anyDigitRegex.MatchString(text) {
		return peopleDigitConfidence
	}
	return peopleFallbackConfidence
}

func budgetConfidence(text string, tier domain.BudgetTier) float64 {
	if !tier.Valid() {
		return 0
	}
	mentions := len(budgetMentionRegex.FindAllString(text, -1))
	conf := budgetBaseConfidence + float64(mentions)*budgetPerMention
	if conf > budgetMaxConfidence {
		conf = budgetMaxConfidence
	}
	return conf
}

func listConfidence(n int) float64 {
	if n == 0 {
		return 0
	}
	conf := listBaseConfidence + float64(n)*listPerItem
	if conf > listMaxConfidence {
		conf = listMaxConfidence
	}
	return conf
}

// allergenConfidence is the list confidence with a boost when the text also
// carries generic allergy vocabulary ("allergisk", "undvik", ...), which
// makes a mention much more likely to be a true avoidance flag rather than
// a passing preference.
func allergenConfidence(text string, n int) float64 {
	conf := listConfidence(n)
	if conf > 0 && allergyContextRegex.MatchString(text) {
		conf += allergyContextBoost
		if conf > listMaxConfidence {
			conf = listMaxConfidence
		}
	}
	return conf
}
