package httputil_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-hackathon-tracker/internal/common/httputil"
	"github.com/central-university-dev/go-hackathon-tracker/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		ExternalRequestTimeout:     2 * time.Second,
		RetryCount:                 0,
		RetryBackoff:               50 * time.Millisecond,
		RetryableStatusCodes:       []int{500, 502, 503, 504},
		CBSlidingWindowSize:        100,
		CBMinimumRequiredCalls:     100,
		CBFailureRateThreshold:     100,
		CBPermittedCallsInHalfOpen: 1,
		CBWaitDurationInOpenState:  10 * time.Second,
	}
}

func TestResilientClient_NoRetryByDefault(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var requestCount int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := httputil.NewResilientClient(testConfig(), logger, "no_retry")

	_, err := client.R().Post(server.URL + "/sendMessage")

	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requestCount), "Без RETRY_COUNT запрос не должен повторяться")
}

func TestResilientClient_RetryWhenConfigured(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var requestCount int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&requestCount, 1) <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("success"))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.RetryCount = 3

	client := httputil.NewResilientClient(cfg, logger, "retry")

	resp, err := client.R().Get(server.URL + "/getMe")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, int32(3), atomic.LoadInt32(&requestCount), "Должно быть 3 запроса: 2 неудачных + 1 успешный")
}

func TestResilientClient_ClientErrorsPassThrough(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer server.Close()

	client := httputil.NewResilientClient(testConfig(), logger, "client_errors")

	resp, err := client.R().Post(server.URL + "/sendMessage")

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), "chat not found")
}

func TestResilientClient_CircuitBreakerOpens(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var requestCount int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&requestCount, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.CBSlidingWindowSize = 1
	cfg.CBMinimumRequiredCalls = 1
	cfg.CBWaitDurationInOpenState = 2 * time.Second

	client := httputil.NewResilientClient(cfg, logger, "breaker")

	_, err := client.R().Get(server.URL + "/getMe")
	require.Error(t, err)

	start := time.Now()
	_, err = client.R().Get(server.URL + "/getMe")
	duration := time.Since(start)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.Less(t, duration, 200*time.Millisecond, "Circuit breaker должен отвечать быстро")
	assert.Equal(t, int32(1), atomic.LoadInt32(&requestCount))
}
