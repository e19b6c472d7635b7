package main

import (
	"fmt"
	"log"
	"os"

	"github.com/riderbuilder/backend/config"
	httpDelivery "github.com/riderbuilder/backend/internal/delivery/http"
	"github.com/riderbuilder/backend/internal/infrastructure/cache"
	"github.com/riderbuilder/backend/internal/infrastructure/catalog"
	"github.com/riderbuilder/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Rider Builder Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Load the static datasets
	store, err := catalog.NewStore(cfg.Catalog.ProductsPath, cfg.Catalog.CelebritiesPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	riderCache := cache.NewMemoryRiderCache()
	log.Printf("Parse cache TTL: %s", cfg.Cache.TTL)

	// Enable debug mode in development environment
	debug := cfg.Parser.EnableDebugLogging || cfg.Server.Environment == "development"
	if debug {
		log.Printf("Parser debug logging enabled")
	}

	parser := usecase.NewHeuristicRiderParser(usecase.ParserConfig{
		EnableDebugLogging: debug,
	})

	// Initialize usecase layer
	riderService := usecase.NewRiderService(
		parser,
		store.Products(),
		store.Celebrities(),
		riderCache,
		usecase.RiderServiceConfig{
			CacheTTL:           cfg.Cache.TTL,
			DefaultLimit:       cfg.Recommend.DefaultLimit,
			EnableDebugLogging: debug,
		},
	)

	log.Printf("Recommendations: default limit=%d", cfg.Recommend.DefaultLimit)
	log.Printf("Rate limit: %.1f req/s per IP (burst %d)", cfg.RateLimit.PerIPRPS, cfg.RateLimit.Burst)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(riderService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
