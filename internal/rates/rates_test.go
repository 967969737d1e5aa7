package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"harustay/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ratesServer(t *testing.T, hits *atomic.Int64, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRateCaching(t *testing.T) {
	var hits atomic.Int64
	srv := ratesServer(t, &hits, `{"rates":{"KRW":1350.5}}`)

	logger := zerolog.Nop()
	svc := NewService(config.RatesConfig{URL: srv.URL, TTLSeconds: 3600}, &logger)

	current := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return current })

	ctx := context.Background()

	rate, err := svc.Rate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1350.5, rate)
	assert.Equal(t, int64(1), hits.Load())

	// Within the TTL the cached value is served without a fetch.
	current = current.Add(30 * time.Minute)
	rate, err = svc.Rate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1350.5, rate)
	assert.Equal(t, int64(1), hits.Load())

	// Past the TTL the rate is refetched.
	current = current.Add(31 * time.Minute)
	_, err = svc.Rate(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load())
}

func TestRateServesStaleOnFetchFailure(t *testing.T) {
	var hits atomic.Int64
	srv := ratesServer(t, &hits, `{"rates":{"KRW":1350.5}}`)

	logger := zerolog.Nop()
	svc := NewService(config.RatesConfig{URL: srv.URL, TTLSeconds: 60}, &logger)

	current := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return current })

	ctx := context.Background()
	_, err := svc.Rate(ctx)
	require.NoError(t, err)

	// The endpoint goes away; the stale value still wins over the fallback.
	srv.Close()
	current = current.Add(2 * time.Minute)

	rate, err := svc.Rate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1350.5, rate)
}

func TestRateFallback(t *testing.T) {
	logger := zerolog.Nop()
	svc := NewService(config.RatesConfig{
		URL:          "http://127.0.0.1:1/unreachable",
		TTLSeconds:   60,
		FallbackRate: 1300,
	}, &logger)

	rate, err := svc.Rate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(1300), rate)
}

func TestRateRejectsBadPayload(t *testing.T) {
	var hits atomic.Int64
	srv := ratesServer(t, &hits, `{"rates":{}}`)

	logger := zerolog.Nop()
	svc := NewService(config.RatesConfig{URL: srv.URL, TTLSeconds: 60}, &logger)

	_, err := svc.Rate(context.Background())
	assert.Error(t, err)
}
