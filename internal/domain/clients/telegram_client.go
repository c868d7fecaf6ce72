package clients

import (
	"context"
)

// Messenger описывает внешний API бота. Ошибки, о которых сообщил сам API,
// возвращаются в результате; error означает только сбой транспорта.
type Messenger interface {
	VerifyCredential(ctx context.Context, token string) (BotIdentity, error)

	Deliver(ctx context.Context, token, chatID, text string) (DeliveryResult, error)
}

type BotIdentity struct {
	Valid     bool
	FirstName string
	Username  string
	Error     string
}

type DeliveryResult struct {
	OK    bool
	Error string
}
