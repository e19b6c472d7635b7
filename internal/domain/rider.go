package domain

// BudgetTier is a coarse three-level spending preference.
type BudgetTier int

const (
	BudgetLow    BudgetTier = 1
	BudgetMedium BudgetTier = 2
	BudgetHigh   BudgetTier = 3
)

// String returns the tier name, or "unknown" for the zero value.
func (t BudgetTier) String() string {
	switch t {
	case BudgetLow:
		return "low"
	case BudgetMedium:
		return "medium"
	case BudgetHigh:
		return "high"
	}
	return "unknown"
}

// Valid reports whether the tier is one of the three declared levels.
func (t BudgetTier) Valid() bool {
	return t >= BudgetLow && t <= BudgetHigh
}

// Rider is the structured result of parsing a free-text rider description.
// A zero PeopleCount or BudgetTier means the field was absent from the text.
// Tag slices are de-duplicated and, when produced by the parser, ordered by
// descending match weight.
type Rider struct {
	PeopleCount      int        `json:"peopleCount,omitempty"`
	BudgetTier       BudgetTier `json:"budgetTier,omitempty"`
	Preferences      []string   `json:"preferences"`
	AllergensAvoid   []string   `json:"allergensAvoid"`
	CategoriesWanted []string   `json:"categoriesWanted"`
	VibeTags         []string   `json:"vibeTags"`
	RawText          string     `json:"rawText,omitempty"`
}

// RiderConfidence holds per-field confidence scores in [0,1] for a parsed
// rider, plus a weighted overall score.
type RiderConfidence struct {
	PeopleCount float64 `json:"peopleCount"`
	BudgetTier  float64 `json:"budgetTier"`
	Preferences float64 `json:"preferences"`
	Allergens   float64 `json:"allergens"`
	Categories  float64 `json:"categories"`
	Vibe        float64 `json:"vibe"`
	Overall     float64 `json:"overall"`
}

// MatchScore is the result of comparing two riders. All fields are in
// [0,100]. AllergenConflict is the overlap ratio of the two avoidance
// lists - a similarity measure, not a hazard flag; the name is kept for
// wire compatibility with existing clients.
type MatchScore struct {
	Total            int `json:"total"`
	PreferenceMatch  int `json:"preferenceMatch"`
	AllergenConflict int `json:"allergenConflict"`
	CategoryMatch    int `json:"categoryMatch"`
	VibeMatch        int `json:"vibeMatch"`
}

// ProductRecommendation pairs a product with its match score and the
// human-readable reasons it was recommended. Reasons is never empty.
type ProductRecommendation struct {
	Product Product  `json:"product"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// CartItem is one selected product with a quantity.
type CartItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// CartBalance is the categorical composition of a selected set of products,
// as percentages. A product may fall into zero or several buckets, so the
// four values need not sum to 100.
type CartBalance struct {
	Snacks  int `json:"snacks"`
	Drinks  int `json:"drinks"`
	Protein int `json:"protein"`
	Veg     int `json:"veg"`
}
