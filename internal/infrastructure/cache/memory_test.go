package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riderbuilder/backend/internal/domain"
)

func sampleRider() *domain.Rider {
	return &domain.Rider{
		PeopleCount:      4,
		BudgetTier:       domain.BudgetMedium,
		Preferences:      []string{"vegan"},
		AllergensAvoid:   []string{"notter"},
		CategoriesWanted: []string{"kaffe"},
		VibeTags:         []string{"lugn"},
		RawText:          "vi är 4, vegan, nötallergi, kaffe och lugn stämning",
	}
}

func TestMemoryRiderCacheSetGet(t *testing.T) {
	c := NewMemoryRiderCache()
	ctx := context.Background()

	err := c.Set(ctx, "rider:a", sampleRider(), time.Minute)
	require.NoError(t, err)

	got, err := c.Get(ctx, "rider:a")
	require.NoError(t, err)
	assert.Equal(t, 4, got.PeopleCount)
	assert.Equal(t, []string{"vegan"}, got.Preferences)
}

func TestMemoryRiderCacheMiss(t *testing.T) {
	c := NewMemoryRiderCache()

	_, err := c.Get(context.Background(), "rider:absent")
	assert.True(t, errors.Is(err, domain.ErrCacheMiss))
}

func TestMemoryRiderCacheExpiration(t *testing.T) {
	c := NewMemoryRiderCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "rider:a", sampleRider(), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := c.Get(ctx, "rider:a")
	assert.True(t, errors.Is(err, domain.ErrCacheMiss))
}

func TestMemoryRiderCacheDelete(t *testing.T) {
	c := NewMemoryRiderCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "rider:a", sampleRider(), time.Minute))
	require.NoError(t, c.Delete(ctx, "rider:a"))

	_, err := c.Get(ctx, "rider:a")
	assert.True(t, errors.Is(err, domain.ErrCacheMiss))
}

func TestMemoryRiderCacheSizeAndClear(t *testing.T) {
	c := NewMemoryRiderCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "rider:a", sampleRider(), time.Minute))
	require.NoError(t, c.Set(ctx, "rider:b", sampleRider(), time.Minute))
	assert.Equal(t, 2, c.Size())

	c.Clear()
	assert.Equal(t, 0, c.Size())
}

func TestMemoryRiderCacheNilRider(t *testing.T) {
	c := NewMemoryRiderCache()

	err := c.Set(context.Background(), "rider:a", nil, time.Minute)
	assert.True(t, errors.Is(err, domain.ErrInvalidRequest))
}

func TestMemoryRiderCacheValueIsolation(t *testing.T) {
	c := NewMemoryRiderCache()
	ctx := context.Background()

	original := sampleRider()
	require.NoError(t, c.Set(ctx, "rider:a", original, time.Minute))

	// mutating the returned copy must not affect the cached record
	first, err := c.Get(ctx, "rider:a")
	require.NoError(t, err)
	first.PeopleCount = 99

	second, err := c.Get(ctx, "rider:a")
	require.NoError(t, err)
	assert.Equal(t, 4, second.PeopleCount)
}
