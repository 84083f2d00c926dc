package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kirillkom/ats-resume-analyzer/internal/core/domain"
)

const keyPrefix = "resume:analysis:"

// Cache stores serialized analysis results in Redis with a server-side
// TTL, so multiple API/worker replicas share one memoization layer.
// Backend failures degrade to cache misses: the analysis pipeline must
// stay available when Redis is down.
type Cache struct {
	client *redis.Client
}

func New(addr, password string, db int) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Cache{client: client}, nil
}

func (c *Cache) Get(ctx context.Context, fingerprint string) (*domain.AnalysisResult, bool) {
	raw, err := c.client.Get(ctx, keyPrefix+fingerprint).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("result_cache_get_failed", "fingerprint", fingerprint, "error", err)
		}
		return nil, false
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		slog.Warn("result_cache_decode_failed", "fingerprint", fingerprint, "error", err)
		return nil, false
	}
	return &result, true
}

func (c *Cache) Set(ctx context.Context, fingerprint string, result *domain.AnalysisResult, ttl time.Duration) {
	if result == nil || ttl <= 0 {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		slog.Warn("result_cache_encode_failed", "fingerprint", fingerprint, "error", err)
		return
	}
	if err := c.client.Set(ctx, keyPrefix+fingerprint, raw, ttl).Err(); err != nil {
		slog.Warn("result_cache_set_failed", "fingerprint", fingerprint, "error", err)
	}
}

func (c *Cache) Close() error {
	return c.client.Close()
}
