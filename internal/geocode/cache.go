package geocode

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/eviction-cares/internal/models"
)

const cacheKeyPrefix = "geocode:"

// Cache remembers geocoder answers by request line so re-uploaded addresses
// are not sent again. A nil *Cache is valid and caches nothing. Redis errors
// are logged and otherwise ignored.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

type cachedResult struct {
	Status   string        `json:"status"`
	Location *models.Point `json:"location,omitempty"`
}

// NewCache creates a cache over a redis client
func NewCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, logger: logger}
}

func cacheKey(in BatchInput) string {
	parts := []string{in.Street, in.City, in.State, in.Zip}
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.Join(strings.Fields(p), " "))
	}
	return cacheKeyPrefix + strings.Join(parts, "|")
}

// Lookup returns cached results keyed by input id, and the inputs that
// still need a request.
func (c *Cache) Lookup(ctx context.Context, inputs []BatchInput) (map[string]BatchResult, []BatchInput) {
	if c == nil || len(inputs) == 0 {
		return nil, inputs
	}

	keys := make([]string, len(inputs))
	for i, in := range inputs {
		keys[i] = cacheKey(in)
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		c.logger.Warn("geocode cache lookup failed", zap.Error(err))
		return nil, inputs
	}

	hits := make(map[string]BatchResult)
	var misses []BatchInput
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			misses = append(misses, inputs[i])
			continue
		}
		var cr cachedResult
		if err := json.Unmarshal([]byte(s), &cr); err != nil {
			misses = append(misses, inputs[i])
			continue
		}
		hits[inputs[i].ID] = BatchResult{ID: inputs[i].ID, MatchStatus: cr.Status, Location: cr.Location}
	}
	return hits, misses
}

// Store records the results of one chunk
func (c *Cache) Store(ctx context.Context, inputs []BatchInput, results []BatchResult) {
	if c == nil || len(results) == 0 {
		return
	}

	byID := make(map[string]BatchInput, len(inputs))
	for _, in := range inputs {
		byID[in.ID] = in
	}

	pipe := c.client.Pipeline()
	for _, res := range results {
		in, ok := byID[res.ID]
		if !ok {
			continue
		}
		data, err := json.Marshal(cachedResult{Status: res.MatchStatus, Location: res.Location})
		if err != nil {
			continue
		}
		pipe.Set(ctx, cacheKey(in), data, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("geocode cache store failed", zap.Error(err))
	}
}
