package models

import "strings"

const DefaultNotifyDaysBefore = 3

type Settings struct {
	TelegramBotToken string `json:"telegramBotToken"`
	NotifyDaysBefore int    `json:"notifyDaysBefore"`
}

func DefaultSettings() Settings {
	return Settings{
		TelegramBotToken: "",
		NotifyDaysBefore: DefaultNotifyDaysBefore,
	}
}

// ReminderWindow возвращает окно напоминаний в днях, нулевое или
// отрицательное значение заменяется значением по умолчанию.
func (s Settings) ReminderWindow() int {
	if s.NotifyDaysBefore <= 0 {
		return DefaultNotifyDaysBefore
	}

	return s.NotifyDaysBefore
}

func (s Settings) BotToken(fallback string) string {
	if token := strings.TrimSpace(s.TelegramBotToken); token != "" {
		return token
	}

	return strings.TrimSpace(fallback)
}
