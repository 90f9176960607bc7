package utils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"hotel-management-backend/config"
)

// GenerateQueryKey builds a deterministic cache key for a filtered list
// query: resource type prefix plus a sha256 of the sorted parameters.
func GenerateQueryKey(resourceType string, filters map[string]string, page, pageSize int) string {
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	query := fmt.Sprintf("resource=%s&page=%d&page_size=%d", resourceType, page, pageSize)
	for _, k := range keys {
		query += fmt.Sprintf("&%s=%s", k, filters[k])
	}

	hash := sha256.Sum256([]byte(query))
	return fmt.Sprintf("%s:%s", resourceType, hex.EncodeToString(hash[:]))
}

// QueryCache caches serialized filtered-query responses in Redis and drops
// them wholesale when the underlying rows mutate.
type QueryCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewQueryCache(client *redis.Client) *QueryCache {
	return &QueryCache{Client: client, TTL: 5 * time.Minute}
}

func (qc *QueryCache) Get(ctx context.Context, key string) (string, bool) {
	if qc == nil || qc.Client == nil {
		return "", false
	}
	value, err := qc.Client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

func (qc *QueryCache) Set(ctx context.Context, key, value string) {
	if qc == nil || qc.Client == nil {
		return
	}
	if err := qc.Client.Set(ctx, key, value, qc.TTL).Err(); err != nil {
		config.Logger.Warn("Failed to cache query result", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateAsync drops every cached key for the resource type without
// blocking the mutating request. SCAN rather than KEYS, as in production.
func (qc *QueryCache) InvalidateAsync(resourceType string) {
	if qc == nil || qc.Client == nil {
		return
	}
	go func() {
		ctx := context.Background()
		pattern := fmt.Sprintf("%s:*", resourceType)
		iter := qc.Client.Scan(ctx, 0, pattern, 0).Iterator()
		for iter.Next(ctx) {
			if err := qc.Client.Del(ctx, iter.Val()).Err(); err != nil {
				config.Logger.Warn("Cache invalidation failed",
					zap.String("key", iter.Val()), zap.Error(err))
			}
		}
		if err := iter.Err(); err != nil {
			config.Logger.Warn("Cache invalidation scan failed",
				zap.String("pattern", pattern), zap.Error(err))
		}
	}()
}
