package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/car-rental/internal/config"
	"github.com/magabrotheeeer/car-rental/internal/models"
)

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)

	cars := []models.Car{
		{ID: "s1", Name: "Honda City", Type: models.CarTypeSedan, AvailableQty: 3},
	}
	require.NoError(t, cache.Set(CatalogKey, cars, time.Hour))

	var got []models.Car
	found, err := cache.Get(CatalogKey, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cars, got)
}

func TestGet_Miss(t *testing.T) {
	cache := setupTestCache(t)

	var got []models.Car
	found, err := cache.Get(CatalogKey, &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)

	require.NoError(t, cache.Set(CatalogKey, []models.Car{{ID: "s1"}}, time.Hour))
	require.NoError(t, cache.Invalidate(CatalogKey))

	var got []models.Car
	found, err := cache.Get(CatalogKey, &got)
	require.NoError(t, err)
	assert.False(t, found)
}
