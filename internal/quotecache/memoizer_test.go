package quotecache

import (
	"context"
	"fmt"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedy-van/speedy-van-sub008/internal/pricing"
)

type countingCalculator struct {
	calls int
}

func (c *countingCalculator) Calculate(_ context.Context, req pricing.QuoteRequest) (*pricing.QuoteResult, error) {
	c.calls++
	return &pricing.QuoteResult{
		Total: decimal.NewFromFloat(req.DistanceMiles * 10),
	}, nil
}

type fakeCache struct {
	entries  map[string]string
	getErr   error
	setErr   error
	setCalls int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	value, ok := f.entries[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	switch typed := value.(type) {
	case string:
		f.entries[key] = typed
	case []byte:
		f.entries[key] = string(typed)
	default:
		return fmt.Errorf("unexpected value type %T", value)
	}
	return nil
}

func (f *fakeCache) QuoteKey(hash string) string {
	return "sv:quote:" + hash
}

func sampleRequest(miles float64) pricing.QuoteRequest {
	return pricing.QuoteRequest{
		Items:         []pricing.Item{{ID: "box", Quantity: 1, Volume: 0.1, Weight: 3}},
		ServiceType:   pricing.ServiceManAndVan,
		DistanceMiles: miles,
		Date:          time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC),
	}
}

func TestMemoizerServesRepeatRequestsFromCache(t *testing.T) {
	t.Parallel()

	inner := &countingCalculator{}
	cache := newFakeCache()
	memo := New(inner, cache, time.Minute, nil, nil)
	ctx := context.Background()

	first, err := memo.Calculate(ctx, sampleRequest(10))
	require.NoError(t, err)
	second, err := memo.Calculate(ctx, sampleRequest(10))
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.True(t, first.Total.Equal(second.Total))
}

func TestMemoizerDistinguishesRequests(t *testing.T) {
	t.Parallel()

	inner := &countingCalculator{}
	memo := New(inner, newFakeCache(), time.Minute, nil, nil)
	ctx := context.Background()

	_, err := memo.Calculate(ctx, sampleRequest(10))
	require.NoError(t, err)
	_, err = memo.Calculate(ctx, sampleRequest(20))
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestMemoizerSurvivesCacheFailures(t *testing.T) {
	t.Parallel()

	inner := &countingCalculator{}
	cache := newFakeCache()
	cache.getErr = fmt.Errorf("redis down")
	cache.setErr = fmt.Errorf("redis down")
	memo := New(inner, cache, time.Minute, nil, nil)

	result, err := memo.Calculate(context.Background(), sampleRequest(10))
	require.NoError(t, err)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 1, inner.calls)
}

func TestMemoizerWithoutCachePassesThrough(t *testing.T) {
	t.Parallel()

	inner := &countingCalculator{}
	memo := New(inner, nil, time.Minute, nil, nil)

	_, err := memo.Calculate(context.Background(), sampleRequest(10))
	require.NoError(t, err)
	_, err = memo.Calculate(context.Background(), sampleRequest(10))
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestFingerprintIsStableAndSensitive(t *testing.T) {
	t.Parallel()

	first, err := Fingerprint(sampleRequest(10))
	require.NoError(t, err)
	repeat, err := Fingerprint(sampleRequest(10))
	require.NoError(t, err)
	other, err := Fingerprint(sampleRequest(11))
	require.NoError(t, err)

	assert.Equal(t, first, repeat)
	assert.NotEqual(t, first, other)
	assert.Len(t, first, 64)
}
