package quotecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	stdErrors "errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/speedy-van/speedy-van-sub008/internal/pricing"
	"github.com/speedy-van/speedy-van-sub008/pkg/logger"
	"github.com/speedy-van/speedy-van-sub008/pkg/metrics"
)

// Cache is the slice of the redis client the memoizer needs. A miss is
// signalled with redis.Nil.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	QuoteKey(hash string) string
}

// Memoizer caches identical quote requests for a short TTL. Pricing is
// deterministic for a given rate table, so a cached result is as good as a
// recomputed one until the rates change; the TTL bounds how long a stale
// table can echo. Cache failures never fail the quote.
type Memoizer struct {
	inner   pricing.Calculator
	cache   Cache
	ttl     time.Duration
	logg    *logger.Logger
	metrics *metrics.QuoteMetrics
}

func New(inner pricing.Calculator, cache Cache, ttl time.Duration, logg *logger.Logger, qm *metrics.QuoteMetrics) *Memoizer {
	return &Memoizer{
		inner:   inner,
		cache:   cache,
		ttl:     ttl,
		logg:    logg,
		metrics: qm,
	}
}

// Calculate serves from cache when possible, otherwise delegates and stores
// the fresh result.
func (m *Memoizer) Calculate(ctx context.Context, req pricing.QuoteRequest) (*pricing.QuoteResult, error) {
	if m.cache == nil || m.ttl <= 0 {
		return m.inner.Calculate(ctx, req)
	}

	fingerprint, err := Fingerprint(req)
	if err != nil {
		return m.inner.Calculate(ctx, req)
	}
	key := m.cache.QuoteKey(fingerprint)

	if payload, err := m.cache.Get(ctx, key); err == nil {
		var cached pricing.QuoteResult
		if err := json.Unmarshal([]byte(payload), &cached); err == nil {
			m.metrics.IncCacheHit()
			return &cached, nil
		}
		m.warn(ctx, "dropping undecodable cached quote")
	} else if !stdErrors.Is(err, goredis.Nil) {
		m.warn(ctx, "quote cache read failed")
	}

	result, err := m.inner.Calculate(ctx, req)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(result); err == nil {
		if err := m.cache.Set(ctx, key, payload, m.ttl); err != nil {
			m.warn(ctx, "quote cache write failed")
		}
	}
	return result, nil
}

func (m *Memoizer) warn(ctx context.Context, msg string) {
	if m.logg != nil {
		m.logg.Warn(ctx, msg)
	}
}

// Fingerprint derives a stable cache key from the request payload.
func Fingerprint(req pricing.QuoteRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
