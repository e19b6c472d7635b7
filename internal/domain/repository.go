package domain

import (
	"context"
	"time"
)

// RiderParser turns a free-text rider description into a structured Rider.
// Parsing is total: malformed or empty text yields a valid, mostly-empty
// record, never an error. The context and error are part of the contract so
// a remote model-based implementation can slot in later.
type RiderParser interface {
	Parse(ctx context.Context, text string) (*Rider, error)
}

// ProductRepository provides read access to the static product catalog.
type ProductRepository interface {
	All(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
}

// CelebrityRepository provides read access to the reference rider profiles.
type CelebrityRepository interface {
	All(ctx context.Context) ([]CelebrityRider, error)
	GetByID(ctx context.Context, id string) (*CelebrityRider, error)
}

// RiderCache caches parse results keyed by normalized input text. Parsing is
// deterministic, so cached records are interchangeable with fresh ones.
type RiderCache interface {
	Get(ctx context.Context, key string) (*Rider, error)
	Set(ctx context.Context, key string, rider *Rider, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
