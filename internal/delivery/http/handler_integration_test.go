package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/riderbuilder/backend/config"
	"github.com/riderbuilder/backend/internal/domain"
	"github.com/riderbuilder/backend/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	os.Exit(m.Run())
}

type stubProductRepo struct {
	products []domain.Product
}

func (r *stubProductRepo) All(ctx context.Context) ([]domain.Product, error) {
	return r.products, nil
}

func (r *stubProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

type stubCelebrityRepo struct {
	celebrities []domain.CelebrityRider
}

func (r *stubCelebrityRepo) All(ctx context.Context) ([]domain.CelebrityRider, error) {
	return r.celebrities, nil
}

func (r *stubCelebrityRepo) GetByID(ctx context.Context, id string) (*domain.CelebrityRider, error) {
	for _, c := range r.celebrities {
		if c.ID == id {
			celebrity := c
			return &celebrity, nil
		}
	}
	return nil, domain.ErrCelebrityNotFound
}

type stubRiderCache struct {
	entries map[string]domain.Rider
}

func (c *stubRiderCache) Get(ctx context.Context, key string) (*domain.Rider, error) {
	rider, ok := c.entries[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return &rider, nil
}

func (c *stubRiderCache) Set(ctx context.Context, key string, rider *domain.Rider, ttl time.Duration) error {
	c.entries[key] = *rider
	return nil
}

func (c *stubRiderCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: "coffee-1", Name: "Bryggkaffe", Category: domain.CategoryCoffee, Tags: []string{"eko"}, FestivalFit: 4, PriceTier: 2},
		{ID: "nuts-1", Name: "Nötmix", Category: domain.CategorySnacks, Allergens: []string{"nötter"}, FestivalFit: 5, PriceTier: 1},
		{ID: "water-1", Name: "Källvatten", Category: domain.CategoryWater, FestivalFit: 3, PriceTier: 1},
	}
}

func testCelebrities() []domain.CelebrityRider {
	return []domain.CelebrityRider{
		{
			ID:     "fest-general",
			Name:   "Festgeneralen",
			Handle: "@festgeneralen",
			ParsedRider: domain.Rider{
				Preferences:      []string{"energi"},
				AllergensAvoid:   []string{},
				CategoriesWanted: []string{"kaffe"},
				VibeTags:         []string{"festlig"},
			},
		},
	}
}

// setupTestRouter creates a test router backed by an in-memory catalog
func setupTestRouter(products []domain.Product) *gin.Engine {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Recommend: config.RecommendConfig{DefaultLimit: 10},
		// rate limiting off so tests can hammer the router
		RateLimit: config.RateLimitConfig{PerIPRPS: 0},
	}

	parser := usecase.NewHeuristicRiderParser(usecase.ParserConfig{})
	service := usecase.NewRiderService(
		parser,
		&stubProductRepo{products: products},
		&stubCelebrityRepo{celebrities: testCelebrities()},
		&stubRiderCache{entries: make(map[string]domain.Rider)},
		usecase.RiderServiceConfig{},
	)

	return SetupRouter(cfg, NewHandler(service))
}

func postJSON(router *gin.Engine, path, payload string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	return response
}

// TestHealthCheckEndpoint tests the health check endpoint
func TestHealthCheckEndpoint(t *testing.T) {
	router := setupTestRouter(testProducts())

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
	}

	response := decodeBody(t, w)
	if response["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", response["status"])
	}
	if response["service"] != "riderbuilder-backend" {
		t.Errorf("service = %v, want riderbuilder-backend", response["service"])
	}
}

// TestParseRiderEndpoint tests POST /api/v1/rider/parse
func TestParseRiderEndpoint(t *testing.T) {
	t.Run("parses rider text", func(t *testing.T) {
		router := setupTestRouter(testProducts())

		w := postJSON(router, "/api/v1/rider/parse",
			`{"text":"Vi är 5 personer, vegan, nötallergi"}`)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
		}

		response := decodeBody(t, w)
		rider, ok := response["rider"].(map[string]interface{})
		if !ok {
			t.Fatalf("rider missing from response: %v", response)
		}
		if rider["peopleCount"] != float64(5) {
			t.Errorf("peopleCount = %v, want 5", rider["peopleCount"])
		}
		preferences, _ := rider["preferences"].([]interface{})
		if len(preferences) == 0 || preferences[0] != "vegan" {
			t.Errorf("preferences = %v, want [vegan]", rider["preferences"])
		}
		allergens, _ := rider["allergensAvoid"].([]interface{})
		if len(allergens) == 0 || allergens[0] != "notter" {
			t.Errorf("allergensAvoid = %v, want [notter]", rider["allergensAvoid"])
		}
	})

	t.Run("includes confidence when requested", func(t *testing.T) {
		router := setupTestRouter(testProducts())

		w := postJSON(router, "/api/v1/rider/parse",
			`{"text":"Vi är 5 personer","withConfidence":true}`)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		response := decodeBody(t, w)
		confidence, ok := response["confidence"].(map[string]interface{})
		if !ok {
			t.Fatalf("confidence missing from response: %v", response)
		}
		if confidence["peopleCount"] != 0.95 {
			t.Errorf("confidence.peopleCount = %v, want 0.95", confidence["peopleCount"])
		}
	})

	t.Run("rejects missing text", func(t *testing.T) {
		router := setupTestRouter(testProducts())

		w := postJSON(router, "/api/v1/rider/parse", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

// TestRecommendationsEndpoint tests POST /api/v1/recommendations
func TestRecommendationsEndpoint(t *testing.T) {
	t.Run("recommends from text", func(t *testing.T) {
		router := setupTestRouter(testProducts())

		w := postJSON(router, "/api/v1/recommendations",
			`{"text":"kaffe till alla, nötallergi"}`)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
		}

		response := decodeBody(t, w)
		recommendations, ok := response["recommendations"].([]interface{})
		if !ok || len(recommendations) == 0 {
			t.Fatalf("recommendations missing or empty: %v", response)
		}

		first := recommendations[0].(map[string]interface{})
		product := first["product"].(map[string]interface{})
		if product["id"] != "coffee-1" {
			t.Errorf("best product = %v, want coffee-1", product["id"])
		}
		for _, item := range recommendations {
			rec := item.(map[string]interface{})
			if rec["product"].(map[string]interface{})["id"] == "nuts-1" {
				t.Error("allergen-conflicting product was recommended")
			}
		}
	})

	t.Run("recommends from a parsed rider", func(t *testing.T) {
		router := setupTestRouter(testProducts())

		w := postJSON(router, "/api/v1/recommendations",
			`{"rider":{"preferences":["eko"],"allergensAvoid":[],"categoriesWanted":["kaffe"],"vibeTags":[]},"limit":1}`)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		response := decodeBody(t, w)
		recommendations, _ := response["recommendations"].([]interface{})
		if len(recommendations) != 1 {
			t.Fatalf("got %d recommendations, want 1", len(recommendations))
		}
	})

	t.Run("rejects a body with neither text nor rider", func(t *testing.T) {
		router := setupTestRouter(testProducts())

		w := postJSON(router, "/api/v1/recommendations", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("reports an empty catalog", func(t *testing.T) {
		router := setupTestRouter(nil)

		w := postJSON(router, "/api/v1/recommendations", `{"text":"kaffe"}`)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusServiceUnavailable)
		}
	})
}

// TestCelebrityEndpoints tests the celebrity listing, lookup and match routes
func TestCelebrityEndpoints(t *testing.T) {
	t.Run("lists profiles", func(t *testing.T) {
		router := setupTestRouter(testProducts())

		req, _ := http.NewRequest("GET", "/api/v1/celebrities", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		response := decodeBody(t, w)
		celebrities, _ := response["celebrities"].([]interface{})
		if len(celebrities) != 1 {
			t.Errorf("got %d celebrities, want 1", len(celebrities))
		}
	})

	t.Run("returns one profile", func(t *testing.T) {
		router := setupTestRouter(testProducts())

		req, _ := http.NewRequest("GET", "/api/v1/celebrities/fest-general", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		response := decodeBody(t, w)
		celebrity, _ := response["celebrity"].(map[string]interface{})
		if celebrity["name"] != "Festgeneralen" {
			t.Errorf("name = %v, want Festgeneralen", celebrity["name"])
		}
	})

	t.Run("unknown profile is 404", func(t *testing.T) {
		router := setupTestRouter(testProducts())

		req, _ := http.NewRequest("GET", "/api/v1/celebrities/nobody", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("matches rider text against a profile", func(t *testing.T) {
		router := setupTestRouter(testProducts())

		w := postJSON(router, "/api/v1/celebrities/fest-general/match",
			`{"text":"energi och kaffe, festlig stämning"}`)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
		}

		response := decodeBody(t, w)
		match, ok := response["match"].(map[string]interface{})
		if !ok {
			t.Fatalf("match missing from response: %v", response)
		}
		total, _ := match["total"].(float64)
		if total < 0 || total > 100 {
			t.Errorf("total = %v, want within [0,100]", match["total"])
		}
	})

	t.Run("match rejects empty body", func(t *testing.T) {
		router := setupTestRouter(testProducts())

		w := postJSON(router, "/api/v1/celebrities/fest-general/match", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("match against unknown profile is 404", func(t *testing.T) {
		router := setupTestRouter(testProducts())

		w := postJSON(router, "/api/v1/celebrities/nobody/match", `{"text":"kaffe"}`)
		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}

// TestCartBalanceEndpoint tests POST /api/v1/cart/balance
func TestCartBalanceEndpoint(t *testing.T) {
	t.Run("computes bucket percentages", func(t *testing.T) {
		router := setupTestRouter(testProducts())

		w := postJSON(router, "/api/v1/cart/balance",
			`{"items":[{"productId":"nuts-1","quantity":2},{"productId":"coffee-1","quantity":1}]}`)

		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
		}

		response := decodeBody(t, w)
		balance, ok := response["balance"].(map[string]interface{})
		if !ok {
			t.Fatalf("balance missing from response: %v", response)
		}
		if balance["snacks"] != float64(67) {
			t.Errorf("snacks = %v, want 67", balance["snacks"])
		}
		if balance["drinks"] != float64(33) {
			t.Errorf("drinks = %v, want 33", balance["drinks"])
		}
	})

	t.Run("unknown product is 404", func(t *testing.T) {
		router := setupTestRouter(testProducts())

		w := postJSON(router, "/api/v1/cart/balance",
			`{"items":[{"productId":"ghost","quantity":1}]}`)
		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("rejects missing items", func(t *testing.T) {
		router := setupTestRouter(testProducts())

		w := postJSON(router, "/api/v1/cart/balance", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}
