package httputil

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/central-university-dev/go-hackathon-tracker/internal/config"
	domainerrors "github.com/central-university-dev/go-hackathon-tracker/internal/domain/errors"
)

// NewResilientClient создаёт resty-клиент с таймаутом, circuit breaker'ом и
// повторами по кодам из конфигурации. При RetryCount == 0 повторов нет.
func NewResilientClient(cfg *config.Config, logger *slog.Logger, serviceName string) *resty.Client {
	client := resty.New()

	client.SetTimeout(cfg.ExternalRequestTimeout)

	if cfg.RetryCount > 0 {
		client.SetRetryCount(cfg.RetryCount)
		client.SetRetryWaitTime(cfg.RetryBackoff)
		client.SetRetryMaxWaitTime(cfg.RetryBackoff * 5)
		client.AddRetryCondition(retryCondition(cfg.RetryableStatusCodes))
	}

	client.SetTransport(&CircuitBreakerTransport{
		breaker:     gobreaker.NewCircuitBreaker(breakerSettings(cfg, logger, serviceName)),
		next:        http.DefaultTransport,
		logger:      logger,
		serviceName: serviceName,
	})

	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		if resp.Request.Attempt > 1 {
			logger.Info("Повторный HTTP запрос",
				"service", serviceName,
				"attempt", resp.Request.Attempt,
				"status", resp.StatusCode(),
			)
		}

		return nil
	})

	return client
}

func retryCondition(statusCodes []int) resty.RetryConditionFunc {
	return func(r *resty.Response, err error) bool {
		if err != nil {
			return !errors.Is(err, gobreaker.ErrOpenState)
		}

		for _, status := range statusCodes {
			if r.StatusCode() == status {
				return true
			}
		}

		return false
	}
}

func breakerSettings(cfg *config.Config, logger *slog.Logger, serviceName string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        serviceName + "_circuit_breaker",
		MaxRequests: uint32(cfg.CBPermittedCallsInHalfOpen), //nolint:gosec // G115: Значение из конфига
		Interval:    time.Duration(cfg.CBSlidingWindowSize) * time.Second,
		Timeout:     cfg.CBWaitDurationInOpenState,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests == 0 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.Requests >= uint32(cfg.CBMinimumRequiredCalls) && //nolint:gosec // G115: Значение из конфига
				failureRatio >= float64(cfg.CBFailureRateThreshold)/100.0
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Изменение состояния circuit breaker",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}
}

// CircuitBreakerTransport считает отказом сетевую ошибку и ответ 5xx.
// Ответы 4xx проходят без изменений: Telegram сообщает о своих ошибках именно так.
type CircuitBreakerTransport struct {
	breaker     *gobreaker.CircuitBreaker
	next        http.RoundTripper
	logger      *slog.Logger
	serviceName string
}

func (t *CircuitBreakerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	result, err := t.breaker.Execute(func() (interface{}, error) {
		resp, err := t.next.RoundTrip(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			return nil, &domainerrors.HTTPError{StatusCode: resp.StatusCode}
		}

		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			t.logger.Warn("Circuit breaker открыт, запрос не выполнен",
				"service", t.serviceName,
				"host", req.URL.Host,
			)
		}

		return nil, err
	}

	return result.(*http.Response), nil
}
