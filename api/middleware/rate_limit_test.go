package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLimiterStore struct {
	counts map[string]int64
	err    error
}

func newFakeLimiterStore() *fakeLimiterStore {
	return &fakeLimiterStore{counts: map[string]int64{}}
}

func (f *fakeLimiterStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeLimiterStore) RateLimitKey(scope string) string {
	return "sv:rate_limit:" + scope
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(handler http.Handler, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quote", nil)
	req.Header.Set("X-Forwarded-For", ip)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitBlocksAboveLimit(t *testing.T) {
	t.Parallel()

	store := newFakeLimiterStore()
	policy := NewRateLimitPolicy("quote", time.Minute, 2)
	handler := RateLimit(policy, store, nil)(okHandler())

	require.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1").Code)
	require.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "10.0.0.1").Code)
}

func TestRateLimitCountsPerIP(t *testing.T) {
	t.Parallel()

	store := newFakeLimiterStore()
	policy := NewRateLimitPolicy("quote", time.Minute, 1)
	handler := RateLimit(policy, store, nil)(okHandler())

	require.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1").Code)
	require.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.2").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "10.0.0.1").Code)
}

func TestRateLimitFailsOpenOnStoreErrors(t *testing.T) {
	t.Parallel()

	store := newFakeLimiterStore()
	store.err = fmt.Errorf("redis down")
	policy := NewRateLimitPolicy("quote", time.Minute, 1)
	handler := RateLimit(policy, store, nil)(okHandler())

	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1").Code)
}

func TestRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	t.Parallel()

	store := newFakeLimiterStore()
	policy := NewRateLimitPolicy("quote", 0, 0)
	handler := RateLimit(policy, store, nil)(okHandler())

	for i := 0; i < 10; i++ {
		require.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1").Code)
	}
	assert.Empty(t, store.counts)
}

func TestRateLimitNilStorePassesThrough(t *testing.T) {
	t.Parallel()

	policy := NewRateLimitPolicy("quote", time.Minute, 1)
	handler := RateLimit(policy, nil, nil)(okHandler())

	require.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1").Code)
	require.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1").Code)
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.10:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", clientIP(req))

	req.Header.Del("X-Forwarded-For")
	req.Header.Set("X-Real-IP", "198.51.100.4")
	assert.Equal(t, "198.51.100.4", clientIP(req))

	req.Header.Del("X-Real-IP")
	assert.Equal(t, "192.168.1.10", clientIP(req))
}
