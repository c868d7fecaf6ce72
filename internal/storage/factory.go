package storage

import (
	"context"
	"log/slog"

	"github.com/central-university-dev/go-hackathon-tracker/internal/config"
	"github.com/central-university-dev/go-hackathon-tracker/internal/database"
	domainerrors "github.com/central-university-dev/go-hackathon-tracker/internal/domain/errors"
	"github.com/central-university-dev/go-hackathon-tracker/internal/storage/memory"
	"github.com/central-university-dev/go-hackathon-tracker/internal/storage/postgres"
	"github.com/central-university-dev/go-hackathon-tracker/internal/storage/redis"
	"github.com/central-university-dev/go-hackathon-tracker/pkg/txs"
)

// NewKV выбирает хранилище по STORAGE_BACKEND.
func NewKV(ctx context.Context, cfg *config.Config, logger *slog.Logger) (KV, error) {
	switch cfg.StorageBackend {
	case config.RedisStorage:
		logger.Info("Используется хранилище Redis", "addr", cfg.RedisURL, "prefix", cfg.RedisKeyPrefix)

		store, err := redis.NewStore(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}

		return store, nil
	case config.PostgresStorage:
		logger.Info("Используется хранилище PostgreSQL")

		db, err := database.NewPostgresDB(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}

		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, err
		}

		return postgres.NewStore(db, txs.NewTxManager(db.Pool, logger), logger), nil
	case config.MemoryStorage:
		logger.Warn("Используется хранилище в памяти, данные не переживут перезапуск")
		return memory.NewStore(), nil
	default:
		return nil, &domainerrors.ErrUnknownStorageBackend{Backend: string(cfg.StorageBackend)}
	}
}
