package notifier

import (
	"context"
	"fmt"
	"html"
	"strings"

	domainerrors "github.com/central-university-dev/go-hackathon-tracker/internal/domain/errors"
	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
)

// VerifyToken проверяет текущий токен бота без отправки сообщений.
func (n *Notifier) VerifyToken(ctx context.Context) (*models.BotCheck, error) {
	settings, err := n.store.Settings(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении настроек: %w", err)
	}

	_, identity, err := n.authorize(ctx, settings)
	if err != nil {
		return nil, err
	}

	return &models.BotCheck{
		BotName:     identity.FirstName,
		BotUsername: identity.Username,
		Message: fmt.Sprintf("✅ Bot %q (@%s) is connected and working!",
			identity.FirstName, identity.Username),
	}, nil
}

// TestMember отправляет пробное сообщение одному участнику.
func (n *Notifier) TestMember(ctx context.Context, memberID string) (string, error) {
	settings, err := n.store.Settings(ctx)
	if err != nil {
		return "", fmt.Errorf("ошибка при чтении настроек: %w", err)
	}

	if settings.BotToken(n.fallbackToken) == "" {
		return "", &domainerrors.ErrMissingCredential{}
	}

	members, err := n.store.Members(ctx)
	if err != nil {
		return "", fmt.Errorf("ошибка при чтении участников: %w", err)
	}

	var member *models.Member

	for i := range members {
		if members[i].ID == memberID {
			member = &members[i]
			break
		}
	}

	if member == nil {
		return "", &domainerrors.ErrMemberNotFound{ID: memberID}
	}

	if !member.Reachable() {
		return "", &domainerrors.ErrNoChatAddress{MemberName: member.Name}
	}

	token, identity, err := n.authorize(ctx, settings)
	if err != nil {
		return "", err
	}

	text := strings.Join([]string{
		"<b>🔔 Test Notification</b>",
		"",
		fmt.Sprintf("Hey %s! This is a test message from Hackathon Tracker.", html.EscapeString(member.Name)),
		"",
		"✅ Your Telegram notifications are working correctly!",
		fmt.Sprintf("📱 Chat ID: <code>%s</code>", html.EscapeString(member.ChatAddress())),
		"🤖 Bot: @" + identity.Username,
	}, "\n")

	outcome := n.deliver(ctx, token, identity.Username, delivery{member: *member, text: text})
	if !outcome.Success {
		return "", &domainerrors.ErrDeliveryFailed{MemberName: member.Name, Reason: outcome.Error}
	}

	return fmt.Sprintf("✅ Test message sent to %s successfully!", member.Name), nil
}

// TestAll отправляет пробное сообщение каждому участнику с настроенным чатом.
func (n *Notifier) TestAll(ctx context.Context) (*models.TestReport, error) {
	settings, err := n.store.Settings(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении настроек: %w", err)
	}

	token, identity, err := n.authorize(ctx, settings)
	if err != nil {
		return nil, err
	}

	members, err := n.store.Members(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении участников: %w", err)
	}

	configured := make([]models.Member, 0, len(members))

	for _, member := range members {
		if member.Reachable() {
			configured = append(configured, member)
		}
	}

	if len(configured) == 0 {
		return nil, &domainerrors.ErrNoReachableMembers{}
	}

	deliveries := make([]delivery, 0, len(configured))
	slots := make([]int, 0, len(configured))

	for i, member := range configured {
		deliveries = append(deliveries, delivery{
			member: member,
			text: strings.Join([]string{
				"<b>🔔 Test Notification</b>",
				"",
				fmt.Sprintf("Hey %s! This is a test from Hackathon Tracker.", html.EscapeString(member.Name)),
				"✅ Your notifications are working!",
			}, "\n"),
		})
		slots = append(slots, i)
	}

	outcomes := make([]models.Outcome, len(configured))
	n.deliverAll(ctx, token, identity.Username, deliveries, slots, outcomes)

	report := &models.TestReport{
		Results:     make([]models.TestOutcome, 0, len(outcomes)),
		BotUsername: identity.Username,
	}

	failed := 0

	for _, outcome := range outcomes {
		if !outcome.Success {
			failed++
		}

		report.Results = append(report.Results, models.TestOutcome{
			Name:    outcome.Member,
			Success: outcome.Success,
			Error:   outcome.Error,
		})
	}

	report.Success = failed == 0
	report.Message = fmt.Sprintf("Sent %d/%d test messages", len(configured)-failed, len(configured))

	if failed > 0 {
		report.Message += fmt.Sprintf(" (%d failed)", failed)
	}

	return report, nil
}
