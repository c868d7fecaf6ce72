package service

import (
	"context"
	"log/slog"

	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
)

type SettingsInput struct {
	TelegramBotToken *string `json:"telegramBotToken"`
	NotifyDaysBefore *int    `json:"notifyDaysBefore"`
}

type SettingsService struct {
	store  Store
	logger *slog.Logger
}

func NewSettingsService(store Store, logger *slog.Logger) *SettingsService {
	return &SettingsService{
		store:  store,
		logger: logger,
	}
}

func (s *SettingsService) Get(ctx context.Context) (models.Settings, error) {
	return s.store.Settings(ctx)
}

// Save обновляет только переданные поля; notifyDaysBefore <= 0
// сохраняется как есть и при рассылке заменяется значением по умолчанию.
func (s *SettingsService) Save(ctx context.Context, input SettingsInput) (models.Settings, error) {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return models.Settings{}, err
	}

	setString(&settings.TelegramBotToken, input.TelegramBotToken)

	if input.NotifyDaysBefore != nil {
		settings.NotifyDaysBefore = *input.NotifyDaysBefore
	}

	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return models.Settings{}, err
	}

	s.logger.Info("Настройки сохранены",
		"tokenConfigured", settings.TelegramBotToken != "",
		"notifyDaysBefore", settings.NotifyDaysBefore,
	)

	return settings, nil
}
