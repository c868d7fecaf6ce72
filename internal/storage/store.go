package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/central-university-dev/go-hackathon-tracker/internal/common/metrics"
	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
)

const (
	KeyHackathons = "hackathons"
	KeyMembers    = "members"
	KeySettings   = "settings"
)

// KV хранит коллекции целиком как JSON-документы под фиксированными ключами.
// Update применяет fn атомарно относительно других Update того же ключа.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Update(ctx context.Context, key string, fn func(current []byte, found bool) ([]byte, error)) error
	Ping(ctx context.Context) error
	Close() error
}

type CollectionStore struct {
	kv     KV
	logger *slog.Logger
}

func NewCollectionStore(kv KV, logger *slog.Logger) *CollectionStore {
	return &CollectionStore{
		kv:     kv,
		logger: logger,
	}
}

func (s *CollectionStore) Hackathons(ctx context.Context) ([]models.Hackathon, error) {
	hackathons, err := load(ctx, s, KeyHackathons, []models.Hackathon{})
	if hackathons == nil {
		hackathons = []models.Hackathon{}
	}

	return hackathons, err
}

func (s *CollectionStore) Members(ctx context.Context) ([]models.Member, error) {
	members, err := load(ctx, s, KeyMembers, []models.Member{})
	if members == nil {
		members = []models.Member{}
	}

	return members, err
}

func (s *CollectionStore) Settings(ctx context.Context) (models.Settings, error) {
	return load(ctx, s, KeySettings, models.DefaultSettings())
}

func (s *CollectionStore) UpdateHackathons(ctx context.Context, fn func([]models.Hackathon) ([]models.Hackathon, error)) error {
	return update(ctx, s, KeyHackathons, []models.Hackathon{}, fn)
}

func (s *CollectionStore) UpdateMembers(ctx context.Context, fn func([]models.Member) ([]models.Member, error)) error {
	return update(ctx, s, KeyMembers, []models.Member{}, fn)
}

func (s *CollectionStore) SaveSettings(ctx context.Context, settings models.Settings) error {
	start := time.Now()

	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("ошибка при сериализации настроек: %w", err)
	}

	err = s.kv.Set(ctx, KeySettings, data)
	observe("save_"+KeySettings, start, err)

	if err != nil {
		s.logger.Error("Ошибка при сохранении настроек", "error", err)
		return err
	}

	return nil
}

func (s *CollectionStore) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

func (s *CollectionStore) Close() error {
	return s.kv.Close()
}

func load[T any](ctx context.Context, s *CollectionStore, key string, empty T) (T, error) {
	start := time.Now()

	data, found, err := s.kv.Get(ctx, key)
	observe("load_"+key, start, err)

	if err != nil {
		s.logger.Error("Ошибка при чтении коллекции", "key", key, "error", err)
		return empty, err
	}

	if !found {
		return empty, nil
	}

	value, err := decode(data, empty)
	if err != nil {
		s.logger.Error("Ошибка при десериализации коллекции", "key", key, "error", err)
		return empty, err
	}

	return value, nil
}

func update[T any](ctx context.Context, s *CollectionStore, key string, empty T, fn func(T) (T, error)) error {
	start := time.Now()

	err := s.kv.Update(ctx, key, func(current []byte, found bool) ([]byte, error) {
		value := empty

		if found {
			decoded, err := decode(current, empty)
			if err != nil {
				return nil, err
			}

			value = decoded
		}

		next, err := fn(value)
		if err != nil {
			return nil, err
		}

		return json.Marshal(next)
	})
	observe("update_"+key, start, err)

	return err
}

// decode начинает с empty, чтобы отсутствующие в документе поля получили
// значения по умолчанию.
func decode[T any](data []byte, empty T) (T, error) {
	value := empty

	if err := json.Unmarshal(data, &value); err != nil {
		return empty, fmt.Errorf("ошибка при десериализации данных: %w", err)
	}

	return value, nil
}

func observe(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	metrics.RecordStoreOperation(operation, status, time.Since(start))
}
