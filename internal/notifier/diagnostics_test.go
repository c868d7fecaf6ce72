package notifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/central-university-dev/go-hackathon-tracker/internal/notifier"
)

func TestExplain(t *testing.T) {
	tests := []struct {
		name        string
		description string
		chatID      string
		want        string
	}{
		{
			name:        "chat not found",
			description: "Bad Request: Chat Not Found",
			chatID:      "42",
			want: `The Chat ID "42" is invalid. Make sure Alice has started a conversation with the bot first ` +
				`by opening @tracker_bot on Telegram and pressing "Start". Then use @userinfobot to get the correct Chat ID.`,
		},
		{
			name:        "blocked",
			description: "Forbidden: bot was blocked by the user",
			chatID:      "42",
			want:        "Alice has blocked the bot. They need to unblock @tracker_bot on Telegram.",
		},
		{
			name:        "deactivated",
			description: "Forbidden: user is deactivated",
			chatID:      "42",
			want:        "The Telegram account associated with this Chat ID is deactivated.",
		},
		{
			name:        "empty chat id reported",
			description: "Bad Request: chat_id is empty",
			chatID:      "42",
			want:        "Alice has no Telegram Chat ID configured.",
		},
		{
			name:        "blank address",
			description: "Bad Request: message text is empty",
			chatID:      " ",
			want:        "Alice has no Telegram Chat ID configured.",
		},
		{
			name:        "unknown error passes through",
			description: "Too Many Requests: retry after 5",
			chatID:      "42",
			want:        "Too Many Requests: retry after 5",
		},
		{
			name:        "first rule wins",
			description: "chat not found, bot was blocked",
			chatID:      "42",
			want: `The Chat ID "42" is invalid. Make sure Alice has started a conversation with the bot first ` +
				`by opening @tracker_bot on Telegram and pressing "Start". Then use @userinfobot to get the correct Chat ID.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := notifier.Explain(notifier.FailureContext{
				Description: tt.description,
				MemberName:  "Alice",
				ChatID:      tt.chatID,
				BotUsername: "tracker_bot",
			})

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExplain_UnknownBot(t *testing.T) {
	got := notifier.Explain(notifier.FailureContext{
		Description: "Forbidden: bot was blocked by the user",
		MemberName:  "Bob",
		ChatID:      "7",
	})

	assert.Equal(t, "Bob has blocked the bot. They need to unblock the bot on Telegram.", got)
}
