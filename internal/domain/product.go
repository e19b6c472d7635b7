package domain

// ProductCategory is one of the fixed catalog categories. Category names are
// Swedish because the catalog dataset is.
type ProductCategory string

const (
	CategoryEnergyDrink ProductCategory = "energidryck"
	CategoryCoffee      ProductCategory = "kaffe"
	CategoryNonAlcohol  ProductCategory = "alkoholfritt"
	CategorySnacks      ProductCategory = "snacks"
	CategoryProteinBar  ProductCategory = "proteinbar"
	CategoryFruit       ProductCategory = "frukt"
	CategoryVego        ProductCategory = "vego"
	CategoryGlutenFree  ProductCategory = "glutenfritt"
	CategoryDairy       ProductCategory = "mejeri"
	CategoryCandy       ProductCategory = "godis"
	CategorySportsDrink ProductCategory = "sportdryck"
	CategoryTea         ProductCategory = "te"
	CategoryWater       ProductCategory = "vatten"
	CategoryChocolate   ProductCategory = "choklad"
)

// AllCategories lists every known category in declaration order.
var AllCategories = []ProductCategory{
	CategoryEnergyDrink, CategoryCoffee, CategoryNonAlcohol, CategorySnacks,
	CategoryProteinBar, CategoryFruit, CategoryVego, CategoryGlutenFree,
	CategoryDairy, CategoryCandy, CategorySportsDrink, CategoryTea,
	CategoryWater, CategoryChocolate,
}

// KnownCategory reports whether c is one of the fixed catalog categories.
func KnownCategory(c ProductCategory) bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Product is one catalog entry. Catalog data is read-only input; products
// are never mutated by the core.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Category    ProductCategory `json:"category"`
	Tags        []string        `json:"tags"`
	Allergens   []string        `json:"allergens"`
	PriceTier   int             `json:"priceTier"`   // 1..3
	FestivalFit int             `json:"festivalFit"` // 1..5
	Image       string          `json:"image,omitempty"`
	Description string          `json:"description,omitempty"`
}
