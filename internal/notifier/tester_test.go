package notifier_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/clients"
	clientmocks "github.com/central-university-dev/go-hackathon-tracker/internal/domain/clients/mocks"
	domainerrors "github.com/central-university-dev/go-hackathon-tracker/internal/domain/errors"
	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
)

func TestVerifyToken(t *testing.T) {
	store := setupStore(t, withToken(), nil, nil)
	messenger := clientmocks.NewMessenger(t)
	validBot(messenger)

	check, err := newNotifier(store, messenger).VerifyToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Tracker", check.BotName)
	assert.Equal(t, "tracker_bot", check.BotUsername)
	assert.Equal(t, `✅ Bot "Tracker" (@tracker_bot) is connected and working!`, check.Message)
}

func TestTestMember(t *testing.T) {
	members := []models.Member{
		{ID: "m1", Name: "Alice", TelegramChatID: "111"},
		{ID: "m2", Name: "Bob"},
		{ID: "m3", Name: "Carol", TelegramChatID: "333"},
	}

	t.Run("success", func(t *testing.T) {
		store := setupStore(t, withToken(), nil, members)
		messenger := clientmocks.NewMessenger(t)
		validBot(messenger)
		messenger.On("Deliver", mock.Anything, token, "111", mock.MatchedBy(func(text string) bool {
			return strings.Contains(text, "Hey Alice!") && strings.Contains(text, "<code>111</code>")
		})).Return(clients.DeliveryResult{OK: true}, nil).Once()

		message, err := newNotifier(store, messenger).TestMember(context.Background(), "m1")

		require.NoError(t, err)
		assert.Equal(t, "✅ Test message sent to Alice successfully!", message)
	})

	t.Run("unknown member", func(t *testing.T) {
		store := setupStore(t, withToken(), nil, members)

		_, err := newNotifier(store, clientmocks.NewMessenger(t)).TestMember(context.Background(), "nope")

		assert.ErrorIs(t, err, &domainerrors.ErrMemberNotFound{})
	})

	t.Run("no chat id", func(t *testing.T) {
		store := setupStore(t, withToken(), nil, members)

		_, err := newNotifier(store, clientmocks.NewMessenger(t)).TestMember(context.Background(), "m2")

		var noChat *domainerrors.ErrNoChatAddress
		require.ErrorAs(t, err, &noChat)
		assert.Equal(t, "Bob has no Telegram Chat ID configured. Please add their Chat ID first.", err.Error())
	})

	t.Run("rejected", func(t *testing.T) {
		store := setupStore(t, withToken(), nil, members)
		messenger := clientmocks.NewMessenger(t)
		validBot(messenger)
		messenger.On("Deliver", mock.Anything, token, "333", mock.Anything).
			Return(clients.DeliveryResult{OK: false, Error: "Forbidden: user is deactivated"}, nil)

		_, err := newNotifier(store, messenger).TestMember(context.Background(), "m3")

		var failed *domainerrors.ErrDeliveryFailed
		require.ErrorAs(t, err, &failed)
		assert.Equal(t, "❌ Failed to send to Carol: The Telegram account associated with this Chat ID is deactivated.", err.Error())
	})
}

func TestTestAll(t *testing.T) {
	t.Run("partial failure", func(t *testing.T) {
		store := setupStore(t, withToken(), nil, []models.Member{
			{ID: "m1", Name: "Alice", TelegramChatID: "111"},
			{ID: "m2", Name: "Bob"},
			{ID: "m3", Name: "Carol", TelegramChatID: "333"},
		})

		messenger := clientmocks.NewMessenger(t)
		validBot(messenger)
		messenger.On("Deliver", mock.Anything, token, "111", mock.Anything).
			Return(clients.DeliveryResult{OK: true}, nil)
		messenger.On("Deliver", mock.Anything, token, "333", mock.Anything).
			Return(clients.DeliveryResult{OK: false, Error: "Bad Request: chat not found"}, nil)

		report, err := newNotifier(store, messenger).TestAll(context.Background())

		require.NoError(t, err)
		assert.False(t, report.Success)
		assert.Equal(t, "Sent 1/2 test messages (1 failed)", report.Message)
		assert.Equal(t, "tracker_bot", report.BotUsername)
		require.Len(t, report.Results, 2)
		assert.Equal(t, models.TestOutcome{Name: "Alice", Success: true}, report.Results[0])
		assert.Equal(t, "Carol", report.Results[1].Name)
		assert.Contains(t, report.Results[1].Error, "@userinfobot")
	})

	t.Run("nobody configured", func(t *testing.T) {
		store := setupStore(t, withToken(), nil, []models.Member{{ID: "m1", Name: "Alice"}})
		messenger := clientmocks.NewMessenger(t)
		validBot(messenger)

		_, err := newNotifier(store, messenger).TestAll(context.Background())

		var none *domainerrors.ErrNoReachableMembers
		require.ErrorAs(t, err, &none)
	})
}
