package domain

import "errors"

var (
	// ErrProductNotFound is returned when a product ID is not in the catalog
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrCelebrityNotFound is returned when a celebrity rider ID is unknown
	ErrCelebrityNotFound = errors.New("celebrity rider not found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrEmptyCatalog is returned when the product catalog contains no products
	ErrEmptyCatalog = errors.New("product catalog is empty")

	// ErrInvalidCatalogData is returned when a catalog record fails validation
	ErrInvalidCatalogData = errors.New("invalid catalog data")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
