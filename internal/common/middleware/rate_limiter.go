package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/central-university-dev/go-hackathon-tracker/internal/common/metrics"
)

const (
	BucketAPI      = "api"
	BucketDelivery = "delivery"

	deliveryPathPrefix = "/api/telegram"
	clientExpiration   = time.Hour
	cleanupInterval    = 10 * time.Minute
)

type bucketLimit struct {
	rate  rate.Limit
	burst int
}

func newBucketLimit(requests int, window time.Duration) bucketLimit {
	if window <= 0 {
		window = time.Minute
	}

	return bucketLimit{
		rate:  rate.Limit(float64(requests) / window.Seconds()),
		burst: requests,
	}
}

// retryAfter возвращает паузу в секундах до появления следующего токена.
func (l bucketLimit) retryAfter() int {
	if l.rate <= 0 {
		return 1
	}

	seconds := int(1 / float64(l.rate))
	if seconds < 1 {
		return 1
	}

	return seconds
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterMiddleware ограничивает запросы по IP клиента. Запросы,
// которые отправляют сообщения в Telegram (/api/telegram...), считаются
// в отдельной, более строгой корзине: иначе участников можно заспамить
// повторными ручными рассылками.
type RateLimiterMiddleware struct {
	clients map[string]*clientLimiter
	mu      sync.Mutex
	limits  map[string]bucketLimit
	logger  *slog.Logger
}

type RateLimiterOption func(*RateLimiterMiddleware)

// WithDeliveryLimit задаёт лимит для эндпоинтов рассылки и проверки бота.
// Без этой опции они делят общий лимит API.
func WithDeliveryLimit(requests int, window time.Duration) RateLimiterOption {
	return func(m *RateLimiterMiddleware) {
		if requests > 0 {
			m.limits[BucketDelivery] = newBucketLimit(requests, window)
		}
	}
}

func NewRateLimiterMiddleware(
	ctx context.Context,
	requests int,
	window time.Duration,
	logger *slog.Logger,
	opts ...RateLimiterOption,
) *RateLimiterMiddleware {
	m := &RateLimiterMiddleware{
		clients: make(map[string]*clientLimiter),
		limits: map[string]bucketLimit{
			BucketAPI: newBucketLimit(requests, window),
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(m)
	}

	go m.cleanupClients(ctx)

	return m
}

// bucketFor относит запрос к корзине лимита.
func (m *RateLimiterMiddleware) bucketFor(r *http.Request) string {
	if _, ok := m.limits[BucketDelivery]; ok && strings.HasPrefix(r.URL.Path, deliveryPathPrefix) {
		return BucketDelivery
	}

	return BucketAPI
}

func (m *RateLimiterMiddleware) getClientLimiter(ip, bucket string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := bucket + "|" + ip

	client, exists := m.clients[key]
	if !exists {
		limit := m.limits[bucket]
		client = &clientLimiter{limiter: rate.NewLimiter(limit.rate, limit.burst)}
		m.clients[key] = client
	}

	client.lastSeen = time.Now()

	return client.limiter
}

func (m *RateLimiterMiddleware) cleanupClients(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			for key, client := range m.clients {
				if time.Since(client.lastSeen) > clientExpiration {
					delete(m.clients, key)
				}
			}
			m.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

func (m *RateLimiterMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		bucket := m.bucketFor(r)

		if m.getClientLimiter(ip, bucket).Allow() {
			next.ServeHTTP(w, r)
			return
		}

		limit := m.limits[bucket]

		metrics.RecordRateLimited(bucket)
		m.logger.Warn("Превышен лимит запросов", "ip", ip, "bucket", bucket, "path", r.URL.Path)

		w.Header().Set("Retry-After", strconv.Itoa(limit.retryAfter()))
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit.burst))
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"Rate limit exceeded"}`))
	})
}
