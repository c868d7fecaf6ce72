package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/go-resty/resty/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/central-university-dev/go-hackathon-tracker/internal/common/httputil"
	"github.com/central-university-dev/go-hackathon-tracker/internal/config"
	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/clients"
)

const unreachableReason = "Network error: could not reach Telegram API"

var tokenPattern = regexp.MustCompile(`bot\d+:[A-Za-z0-9_-]+`)

// Client ходит в Bot API напрямую через resty, чтобы токен можно было
// менять на каждый вызов: он берётся из настроек, а не из конфигурации.
type Client struct {
	http    *resty.Client
	baseURL string
	limiter *rate.Limiter
	tracer  trace.Tracer
	logger  *slog.Logger
}

var _ clients.Messenger = (*Client)(nil)

func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	baseURL := strings.TrimRight(cfg.TelegramAPIURL, "/")
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}

	limit := rate.Inf
	if cfg.TelegramRateLimit > 0 {
		limit = rate.Limit(cfg.TelegramRateLimit)
	}

	return &Client{
		http:    httputil.NewResilientClient(cfg, logger, "telegram"),
		baseURL: baseURL,
		limiter: rate.NewLimiter(limit, 1),
		tracer:  otel.Tracer("hackathon-tracker/telegram"),
		logger:  logger,
	}
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

func (c *Client) VerifyCredential(ctx context.Context, token string) (clients.BotIdentity, error) {
	ctx, span := c.tracer.Start(ctx, "telegram.getMe")
	defer span.End()

	var apiResp tgbotapi.APIResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&apiResp).
		SetError(&apiResp).
		Get(c.methodURL(token, "getMe"))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")

		c.logger.Warn("Не удалось проверить токен бота", "error", Sanitize(err.Error(), token))

		return clients.BotIdentity{Valid: false, Error: unreachableReason}, nil
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))

	if !apiResp.Ok {
		span.SetStatus(codes.Error, "rejected")

		return clients.BotIdentity{Valid: false, Error: describe(apiResp)}, nil
	}

	var user tgbotapi.User
	if err := json.Unmarshal(apiResp.Result, &user); err != nil {
		return clients.BotIdentity{}, fmt.Errorf("некорректный ответ getMe: %w", err)
	}

	return clients.BotIdentity{
		Valid:     true,
		FirstName: user.FirstName,
		Username:  user.UserName,
	}, nil
}

func (c *Client) Deliver(ctx context.Context, token, chatID, text string) (clients.DeliveryResult, error) {
	ctx, span := c.tracer.Start(ctx, "telegram.sendMessage")
	defer span.End()

	if err := c.limiter.Wait(ctx); err != nil {
		return clients.DeliveryResult{}, err
	}

	var apiResp tgbotapi.APIResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(sendMessageRequest{
			ChatID:                chatID,
			Text:                  text,
			ParseMode:             tgbotapi.ModeHTML,
			DisableWebPagePreview: true,
		}).
		SetResult(&apiResp).
		SetError(&apiResp).
		Post(c.methodURL(token, "sendMessage"))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")

		return clients.DeliveryResult{}, errors.New(Sanitize(err.Error(), token))
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))

	if !apiResp.Ok {
		span.SetStatus(codes.Error, "rejected")

		return clients.DeliveryResult{OK: false, Error: describe(apiResp)}, nil
	}

	return clients.DeliveryResult{OK: true}, nil
}

func (c *Client) methodURL(token, method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, token, method)
}

func describe(apiResp tgbotapi.APIResponse) string {
	if apiResp.Description != "" {
		return apiResp.Description
	}

	return "Unknown error"
}

// Sanitize убирает токен бота из текста ошибки: URL запроса попадает в сообщения net/http.
func Sanitize(text, token string) string {
	if token != "" {
		text = strings.ReplaceAll(text, token, "<token>")
	}

	return tokenPattern.ReplaceAllString(text, "bot<token>")
}
