package geocode

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eviction-cares/internal/models"
)

func setupTestCache(t *testing.T) (*miniredis.Miniredis, *Cache) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewCache(client, time.Hour, zap.NewNop())
}

func TestCacheStoreAndLookup(t *testing.T) {
	mr, cache := setupTestCache(t)
	ctx := context.Background()

	in := []BatchInput{
		{ID: "A1", Street: "123 n main st", State: "GA"},
		{ID: "B2", Street: "9 nowhere ln", State: "GA"},
	}
	cache.Store(ctx, in, []BatchResult{
		{ID: "A1", MatchStatus: StatusMatch, Location: &models.Point{Lon: -84.1, Lat: 33.1}},
		{ID: "B2", MatchStatus: StatusNoMatch},
	})
	assert.True(t, mr.Exists("geocode:123 n main st||ga|"))
	assert.Equal(t, time.Hour, mr.TTL("geocode:123 n main st||ga|"))

	// Same address under a new case id and different spacing/case.
	next := []BatchInput{
		{ID: "Z9", Street: "123  N Main St", State: "ga"},
		{ID: "C3", Street: "7 pine rd", State: "GA"},
	}
	hits, misses := cache.Lookup(ctx, next)
	require.Contains(t, hits, "Z9")
	assert.Equal(t, StatusMatch, hits["Z9"].MatchStatus)
	assert.Equal(t, -84.1, hits["Z9"].Location.Lon)
	assert.Equal(t, []BatchInput{next[1]}, misses)
}

func TestNilCache(t *testing.T) {
	var cache *Cache
	in := inputs("1 main st")
	hits, misses := cache.Lookup(context.Background(), in)
	assert.Empty(t, hits)
	assert.Equal(t, in, misses)
	cache.Store(context.Background(), in, []BatchResult{{ID: "case-0", MatchStatus: StatusMatch}})
}

func TestCacheUnavailableFallsBackToRequests(t *testing.T) {
	mr, cache := setupTestCache(t)
	mr.Close()

	hits, misses := cache.Lookup(context.Background(), inputs("1 main st"))
	assert.Empty(t, hits)
	assert.Len(t, misses, 1)
}

func TestGeocodeAllUsesCache(t *testing.T) {
	_, cache := setupTestCache(t)
	census := newFakeCensus()
	srv := httptest.NewServer(census)
	defer srv.Close()

	client := NewClient(testOptions(srv.URL), cache, zap.NewNop())
	first, err := client.GeocodeAll(context.Background(), inputs("1 main st", "2 nowhere ln"))
	require.NoError(t, err)
	assert.Len(t, first.Results, 1)
	assert.Equal(t, 1, census.requests)

	second, err := client.GeocodeAll(context.Background(), inputs("1 main st", "2 nowhere ln", "3 main st"))
	require.NoError(t, err)
	assert.Equal(t, 2, second.CacheHits)
	assert.Equal(t, 1, second.Requests)
	assert.Equal(t, []string{"case-0", "case-2"}, ids(second.Results))
	assert.Equal(t, 2, census.requests)
}
