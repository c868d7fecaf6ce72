package bot

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ChatIDBot отвечает участникам их chat id, чтобы его можно было
// указать в настройках команды.
type ChatIDBot struct {
	api      *tgbotapi.BotAPI
	logger   *slog.Logger
	stopOnce sync.Once
	done     chan struct{}
}

// NewChatIDBot подключается к Bot API; apiURL задаёт базовый адрес,
// например https://api.telegram.org.
func NewChatIDBot(token, apiURL string, logger *slog.Logger) (*ChatIDBot, error) {
	endpoint := strings.TrimRight(apiURL, "/") + "/bot%s/%s"

	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения бота: %w", err)
	}

	return &ChatIDBot{
		api:    api,
		logger: logger,
		done:   make(chan struct{}),
	}, nil
}

func (b *ChatIDBot) Username() string {
	return b.api.Self.UserName
}

// Start читает обновления long polling до отмены ctx или вызова Stop.
func (b *ChatIDBot) Start(ctx context.Context) {
	b.logger.Info("Запуск бота для получения chat id", "username", b.Username())

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	go func() {
		for {
			select {
			case <-ctx.Done():
				b.Stop()
				return
			case <-b.done:
				return
			case update, ok := <-updates:
				if !ok {
					return
				}

				b.handle(update)
			}
		}
	}()
}

func (b *ChatIDBot) Stop() {
	b.stopOnce.Do(func() {
		b.logger.Info("Остановка бота для получения chat id")
		b.api.StopReceivingUpdates()
		close(b.done)
	})
}

func (b *ChatIDBot) handle(update tgbotapi.Update) {
	text := Reply(update.Message)
	if text == "" {
		return
	}

	chatID := update.Message.Chat.ID

	b.logger.Info("Запрос chat id", "chat_id", chatID, "command", update.Message.Command())

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Ошибка при отправке chat id", "chat_id", chatID, "error", err)
	}
}

// Reply возвращает ответ на команду /start или /id; для остальных
// сообщений ответа нет.
func Reply(message *tgbotapi.Message) string {
	if message == nil || message.Chat == nil || !message.IsCommand() {
		return ""
	}

	switch message.Command() {
	case "start", "id":
	default:
		return ""
	}

	name := "there"
	if message.From != nil && message.From.FirstName != "" {
		name = message.From.FirstName
	}

	return strings.Join([]string{
		fmt.Sprintf("👋 Hi %s!", html.EscapeString(name)),
		"",
		fmt.Sprintf("Your Chat ID is: <code>%d</code>", message.Chat.ID),
		"",
		"Add it in Settings → Team Members to receive hackathon deadline reminders.",
	}, "\n")
}
