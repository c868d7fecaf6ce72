package models

import "strings"

const DefaultMemberRole = "Member"

type Member struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	TelegramChatID string `json:"telegramChatId"`
	Email          string `json:"email"`
	Role           string `json:"role"`
}

// ChatAddress возвращает адрес доставки без пробелов; пустая строка означает,
// что участник недоступен для уведомлений.
func (m Member) ChatAddress() string {
	return strings.TrimSpace(m.TelegramChatID)
}

func (m Member) Reachable() bool {
	return m.ChatAddress() != ""
}
