package enrichment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"edupath/internal/platform/metrics"
	"edupath/internal/platform/redis"
	studentModel "edupath/internal/student/models"
)

const (
	cacheKeyPrefix = "edupath:enrich:"
	cacheTTL       = time.Hour
)

// Cache stores generated content in Redis keyed by content kind, profile
// hash, and language, so students with identical profiles share entries. A
// nil Cache disables caching.
type Cache struct {
	client  *redis.Client
	metrics *metrics.Metrics
}

// NewCache creates a content cache. Returns nil when Redis is not
// configured.
func NewCache(client *redis.Client, m *metrics.Metrics) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client, metrics: m}
}

// Key builds the cache key for one kind of content.
func Key(kind string, profile *studentModel.Profile, language string) string {
	return cacheKeyPrefix + kind + ":" + hashProfile(profile) + ":" + language
}

// hashProfile digests the profile fields that influence generated content.
func hashProfile(profile *studentModel.Profile) string {
	h := sha256.New()
	fmt.Fprint(h, string(profile.ExamSystem), "|")
	fmt.Fprint(h, strings.Join(profile.Interests, ","), "|")
	fmt.Fprint(h, strings.Join(profile.CareerPreferences, ","))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Get returns the cached content, or "" on miss. Cache errors count as
// misses; enrichment never fails on the cache.
func (c *Cache) Get(ctx context.Context, key string) string {
	if c == nil {
		return ""
	}
	content, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if c.metrics != nil && errors.Is(err, goredis.Nil) {
			c.metrics.EnrichmentCacheMisses.Inc()
		}
		return ""
	}
	if c.metrics != nil {
		c.metrics.EnrichmentCacheHits.Inc()
	}
	return content
}

// Set stores content with the standard TTL, best effort.
func (c *Cache) Set(ctx context.Context, key, content string) {
	if c == nil || content == "" {
		return
	}
	_ = c.client.Set(ctx, key, content, cacheTTL).Err()
}
