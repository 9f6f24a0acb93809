package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lumina-health/platform/pkg/common/logger"
	"github.com/lumina-health/platform/pkg/common/models"
	"github.com/redis/go-redis/v9"
)

// ResultCache caches assembled results for terminal sessions. A miss (or
// any cache error) just falls through to the store.
type ResultCache interface {
	Get(ctx context.Context, sessionID uuid.UUID) (*models.AnalysisResults, bool)
	Set(ctx context.Context, results *models.AnalysisResults)
}

type RedisResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisResultCache(client *redis.Client, ttl time.Duration) *RedisResultCache {
	return &RedisResultCache{client: client, ttl: ttl}
}

func cacheKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("analysis:results:%s", sessionID)
}

func (c *RedisResultCache) Get(ctx context.Context, sessionID uuid.UUID) (*models.AnalysisResults, bool) {
	payload, err := c.client.Get(ctx, cacheKey(sessionID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.WithError(err).Warn("result cache read failed")
		}
		return nil, false
	}

	var results models.AnalysisResults
	if err := json.Unmarshal(payload, &results); err != nil {
		logger.Log.WithError(err).Warn("result cache payload corrupt")
		return nil, false
	}
	return &results, true
}

func (c *RedisResultCache) Set(ctx context.Context, results *models.AnalysisResults) {
	payload, err := json.Marshal(results)
	if err != nil {
		logger.Log.WithError(err).Warn("result cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, cacheKey(results.Session.ID), payload, c.ttl).Err(); err != nil {
		logger.Log.WithError(err).Warn("result cache write failed")
	}
}
