package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/let-tech/applicant-dashboard-api/pkg/errors"
)

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type cacheMetrics interface {
	RecordCacheOperation(hit bool, duration time.Duration)
	ObserveCacheWrite(duration time.Duration)
}

// CacheService is a JSON-serializing layer over Redis. All operations are
// best effort: a cache failure never fails the request that triggered it.
type CacheService struct {
	store   cacheStore
	metrics cacheMetrics
	ttl     time.Duration
	logger  *zap.Logger
}

func NewCacheService(store cacheStore, metrics cacheMetrics, ttl time.Duration, logger *zap.Logger) *CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CacheService{store: store, metrics: metrics, ttl: ttl, logger: logger}
}

// GetJSON loads a cached value into dest. It reports whether the key was found.
func (s *CacheService) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if s == nil || s.store == nil {
		return false
	}
	start := time.Now()
	raw, err := s.store.Get(ctx, key)
	hit := err == nil
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit, time.Since(start))
	}
	if err != nil {
		if !errors.Is(err, apperrors.ErrCacheMiss) {
			s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.logger.Warn("cache payload corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// SetJSON stores a value under key with the configured TTL.
func (s *CacheService) SetJSON(ctx context.Context, key string, value interface{}) {
	if s == nil || s.store == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	start := time.Now()
	if err := s.store.Set(ctx, key, string(raw), s.ttl); err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		return
	}
	if s.metrics != nil {
		s.metrics.ObserveCacheWrite(time.Since(start))
	}
}

// Invalidate removes every key matching pattern.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
	}
}
