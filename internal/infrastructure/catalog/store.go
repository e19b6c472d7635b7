package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/riderbuilder/backend/internal/domain"
)

// Store serves the static product and celebrity-rider datasets from memory.
// Both files are loaded and validated once at startup; the datasets are
// read-only afterwards, so no locking is needed.
type Store struct {
	products     []domain.Product
	productsByID map[string]domain.Product
	celebrities  []domain.CelebrityRider
	celebsByID   map[string]domain.CelebrityRider
}

// NewStore loads the product and celebrity datasets from the given JSON
// files. Either path may be empty, leaving that dataset empty; a present
// but malformed file is a startup error.
func NewStore(productsPath, celebritiesPath string) (*Store, error) {
	s := &Store{
		productsByID: make(map[string]domain.Product),
		celebsByID:   make(map[string]domain.CelebrityRider),
	}

	if productsPath != "" {
		products, err := loadProducts(productsPath)
		if err != nil {
			return nil, fmt.Errorf("load products from %s: %w", productsPath, err)
		}
		s.products = products
		for _, p := range products {
			s.productsByID[p.ID] = p
		}
		log.Printf("[CATALOG] Loaded %d products from %s", len(products), productsPath)
	}

	if celebritiesPath != "" {
		celebrities, err := loadCelebrities(celebritiesPath)
		if err != nil {
			return nil, fmt.Errorf("load celebrities from %s: %w", celebritiesPath, err)
		}
		s.celebrities = celebrities
		for _, c := range celebrities {
			s.celebsByID[c.ID] = c
		}
		log.Printf("[CATALOG] Loaded %d celebrity riders from %s", len(celebrities), celebritiesPath)
	}

	return s, nil
}

// Products returns a ProductRepository view of the store.
func (s *Store) Products() domain.ProductRepository { return (*productRepo)(s) }

// Celebrities returns a CelebrityRepository view of the store.
func (s *Store) Celebrities() domain.CelebrityRepository { return (*celebrityRepo)(s) }

type productRepo Store

// All returns the catalog in file order. Callers receive a copy so the
// stored slice stays immutable.
func (r *productRepo) All(ctx context.Context) ([]domain.Product, error) {
	products := make([]domain.Product, len(r.products))
	copy(products, r.products)
	return products, nil
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	product, ok := r.productsByID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &product, nil
}

type celebrityRepo Store

func (r *celebrityRepo) All(ctx context.Context) ([]domain.CelebrityRider, error) {
	celebrities := make([]domain.CelebrityRider, len(r.celebrities))
	copy(celebrities, r.celebrities)
	return celebrities, nil
}

func (r *celebrityRepo) GetByID(ctx context.Context, id string) (*domain.CelebrityRider, error) {
	celebrity, ok := r.celebsByID[id]
	if !ok {
		return nil, domain.ErrCelebrityNotFound
	}
	return &celebrity, nil
}

func loadProducts(path string) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalogData, err)
	}

	for i, p := range products {
		if err := validateProduct(p); err != nil {
			return nil, fmt.Errorf("product %d (%s): %w", i, p.ID, err)
		}
	}

	return products, nil
}

func loadCelebrities(path string) ([]domain.CelebrityRider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var celebrities []domain.CelebrityRider
	if err := json.Unmarshal(data, &celebrities); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalogData, err)
	}

	for i, c := range celebrities {
		if c.ID == "" {
			return nil, fmt.Errorf("%w: celebrity %d has empty id", domain.ErrInvalidCatalogData, i)
		}
	}

	return celebrities, nil
}

// validateProduct enforces the catalog record bounds: a known category, a
// price tier in 1..3, and a festival-fit rating in 1..5.
func validateProduct(p domain.Product) error {
	if p.ID == "" {
		return fmt.Errorf("%w: empty id", domain.ErrInvalidCatalogData)
	}
	if !domain.KnownCategory(p.Category) {
		return fmt.Errorf("%w: unknown category %q", domain.ErrInvalidCatalogData, p.Category)
	}
	if p.PriceTier < 1 || p.PriceTier > 3 {
		return fmt.Errorf("%w: price tier %d out of range", domain.ErrInvalidCatalogData, p.PriceTier)
	}
	if p.FestivalFit < 1 || p.FestivalFit > 5 {
		return fmt.Errorf("%w: festival fit %d out of range", domain.ErrInvalidCatalogData, p.FestivalFit)
	}
	return nil
}
