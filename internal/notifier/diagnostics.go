package notifier

import (
	"fmt"
	"strings"
)

// FailureContext описывает неудачную доставку для подбора подсказки.
type FailureContext struct {
	Description string
	MemberName  string
	ChatID      string
	BotUsername string
}

type diagnostic struct {
	matches func(fc FailureContext) bool
	explain func(fc FailureContext) string
}

func containsFold(substr string) func(fc FailureContext) bool {
	return func(fc FailureContext) bool {
		return strings.Contains(strings.ToLower(fc.Description), substr)
	}
}

// Правила проверяются по порядку, срабатывает первое подходящее.
var diagnostics = []diagnostic{
	{
		matches: containsFold("chat not found"),
		explain: func(fc FailureContext) string {
			return fmt.Sprintf(
				"The Chat ID %q is invalid. Make sure %s has started a conversation with the bot first "+
					"by opening %s on Telegram and pressing \"Start\". Then use @userinfobot to get the correct Chat ID.",
				fc.ChatID, fc.MemberName, botHandle(fc.BotUsername),
			)
		},
	},
	{
		matches: containsFold("blocked"),
		explain: func(fc FailureContext) string {
			return fmt.Sprintf("%s has blocked the bot. They need to unblock %s on Telegram.",
				fc.MemberName, botHandle(fc.BotUsername))
		},
	},
	{
		matches: containsFold("deactivated"),
		explain: func(FailureContext) string {
			return "The Telegram account associated with this Chat ID is deactivated."
		},
	},
	{
		matches: func(fc FailureContext) bool {
			return strings.TrimSpace(fc.ChatID) == "" || containsFold("chat_id is empty")(fc)
		},
		explain: func(fc FailureContext) string {
			return fmt.Sprintf("%s has no Telegram Chat ID configured.", fc.MemberName)
		},
	},
}

// Explain переводит текст ошибки Bot API в подсказку для пользователя.
// Неизвестные ошибки возвращаются без изменений.
func Explain(fc FailureContext) string {
	for _, d := range diagnostics {
		if d.matches(fc) {
			return d.explain(fc)
		}
	}

	if fc.Description == "" {
		return "Unknown error"
	}

	return fc.Description
}

func botHandle(username string) string {
	if username == "" {
		return "the bot"
	}

	return "@" + username
}
