package redis

import (
	"context"
	"log/slog"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/go-faster/errors"
	"github.com/go-redis/redis/v8"

	"github.com/central-university-dev/go-hackathon-tracker/internal/config"
	domainerrors "github.com/central-university-dev/go-hackathon-tracker/internal/domain/errors"
)

const maxUpdateAttempts = 10

type Store struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

func NewStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	attempts := cfg.StartupConnectAttempts
	if attempts <= 0 {
		attempts = 1
	}

	err := retry.Do(
		func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			return client.Ping(pingCtx).Err()
		},
		retry.Attempts(uint(attempts)), //nolint:gosec // G115: Значение из конфига
		retry.Delay(time.Second),
		retry.MaxDelay(10*time.Second),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("Redis недоступен, повторяем подключение", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "ошибка при подключении к Redis")
	}

	logger.Info("Соединение с Redis успешно установлено", "addr", cfg.RedisURL)

	return &Store{
		client: client,
		prefix: cfg.RedisKeyPrefix,
		logger: logger,
	}, nil
}

func (s *Store) key(name string) string {
	if s.prefix == "" {
		return name
	}

	return s.prefix + ":" + name
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, errors.Wrapf(err, "ошибка при чтении ключа %s из Redis", key)
	}

	return data, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return errors.Wrapf(err, "ошибка при записи ключа %s в Redis", key)
	}

	return nil
}

// Update использует WATCH: если ключ изменился между чтением и EXEC,
// транзакция отбрасывается и fn вызывается заново на свежих данных.
func (s *Store) Update(ctx context.Context, key string, fn func(current []byte, found bool) ([]byte, error)) error {
	fullKey := s.key(key)

	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, fullKey).Bytes()

		found := true

		if err != nil {
			if !errors.Is(err, redis.Nil) {
				return errors.Wrapf(err, "ошибка при чтении ключа %s из Redis", key)
			}

			found = false
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, fullKey, next, 0)
			return nil
		})

		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, fullKey)
		if err == nil {
			return nil
		}

		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}

		s.logger.Debug("Конфликт при обновлении коллекции", "key", key, "attempt", attempt+1)
	}

	return &domainerrors.ErrConcurrentUpdate{Key: key}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
