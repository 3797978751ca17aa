package network_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"market-pulse/src/helpers"
	"market-pulse/src/logger"
	"market-pulse/src/models"
	"market-pulse/src/network"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(retries int) *models.MConfig {
	return &models.MConfig{
		LogLevel: "ERROR",
		Network: models.MNetworkConfig{
			RequestTimeout:     2,
			MaxRetries:         retries,
			RetryBackoffMs:     1,
			ConcurrentRequests: 4,
			UserAgent:          "market-pulse-test/1.0",
		},
	}
}

func newManager(cfg *models.MConfig) *network.AsyncNetworkManager {
	return network.NewAsyncNetworkManager(cfg, logger.NewLogger(cfg, "NetworkTest"))
}

func TestGetRetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "market-pulse-test/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "1d", r.URL.Query().Get("range"))
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	body, err := newManager(testConfig(2)).Get(t.Context(), srv.URL, map[string]string{"range": "1d"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.EqualValues(t, 3, calls.Load())
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newManager(testConfig(3)).Get(t.Context(), srv.URL, nil)
	require.Error(t, err)

	var te *helpers.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusNotFound, te.StatusCode)
	assert.EqualValues(t, 1, calls.Load())
}

func TestGetExhaustsRetries(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newManager(testConfig(1)).Get(t.Context(), srv.URL, nil)
	require.Error(t, err)
	assert.True(t, helpers.IsProviderError(err))
	assert.EqualValues(t, 2, calls.Load())
}

func TestGetHonoursContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	_, err := newManager(testConfig(0)).Get(ctx, srv.URL, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestTokenBucketLimitsBurst(t *testing.T) {
	t.Parallel()

	tb := network.NewTokenBucket(20, 1)
	require.NotNil(t, tb)

	start := time.Now()
	for range 3 {
		require.NoError(t, tb.Wait(t.Context()))
	}
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)

	assert.Nil(t, network.NewTokenBucket(0, 5))
	var disabled *network.TokenBucket
	assert.NoError(t, disabled.Wait(t.Context()))
}
