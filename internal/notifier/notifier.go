package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/central-university-dev/go-hackathon-tracker/internal/common/dates"
	"github.com/central-university-dev/go-hackathon-tracker/internal/common/metrics"
	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/clients"
	domainerrors "github.com/central-university-dev/go-hackathon-tracker/internal/domain/errors"
	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
)

const noRecipientsError = "no assigned members have a chat address configured"

// publishTimeout ограничивает публикацию отчёта: рассылка уже завершена,
// и недоступная Kafka не должна задерживать ответ.
const publishTimeout = 5 * time.Second

type Store interface {
	Hackathons(ctx context.Context) ([]models.Hackathon, error)
	Members(ctx context.Context) ([]models.Member, error)
	Settings(ctx context.Context) (models.Settings, error)
}

type Publisher interface {
	Publish(ctx context.Context, event models.ReportEvent) error
}

type Notifier struct {
	store         Store
	messenger     clients.Messenger
	publisher     Publisher
	logger        *slog.Logger
	tracer        trace.Tracer
	now           func() time.Time
	location      *time.Location
	fallbackToken string
	workers       int
}

type Option func(*Notifier)

func WithClock(now func() time.Time) Option {
	return func(n *Notifier) { n.now = now }
}

func WithLocation(loc *time.Location) Option {
	return func(n *Notifier) {
		if loc != nil {
			n.location = loc
		}
	}
}

// WithFallbackToken задаёт токен из окружения, если в настройках он пуст.
func WithFallbackToken(token string) Option {
	return func(n *Notifier) { n.fallbackToken = token }
}

func WithDeliveryWorkers(workers int) Option {
	return func(n *Notifier) {
		if workers > 0 {
			n.workers = workers
		}
	}
}

func WithPublisher(publisher Publisher) Option {
	return func(n *Notifier) { n.publisher = publisher }
}

func New(store Store, messenger clients.Messenger, logger *slog.Logger, opts ...Option) *Notifier {
	n := &Notifier{
		store:     store,
		messenger: messenger,
		logger:    logger,
		tracer:    otel.Tracer("hackathon-tracker/notifier"),
		now:       time.Now,
		location:  time.UTC,
		workers:   1,
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Notify рассылает напоминания. Пустой hackathonID означает обход всех
// хакатонов с дедлайном в окне напоминаний, иначе уведомление только по нему.
func (n *Notifier) Notify(ctx context.Context, hackathonID string) (*models.Report, error) {
	trigger := models.TriggerFor(hackathonID)
	started := time.Now()

	ctx, span := n.tracer.Start(ctx, "notifier.Notify", trace.WithAttributes(
		attribute.String("trigger", string(trigger)),
		attribute.String("hackathon.id", hackathonID),
	))
	defer span.End()

	report, err := n.run(ctx, hackathonID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.RecordNotifyRun(string(trigger), "error", time.Since(started))

		n.logger.Warn("Рассылка уведомлений не выполнена", "trigger", trigger, "hackathonID", hackathonID, "error", err)

		return nil, err
	}

	outcome := "completed"
	if report.HackathonsNotified == 0 || len(report.Results) == 0 {
		outcome = "no_targets"
	}

	metrics.RecordNotifyRun(string(trigger), outcome, time.Since(started))
	span.SetAttributes(
		attribute.Int("hackathons.notified", report.HackathonsNotified),
		attribute.Int("deliveries.failed", report.Failed()),
	)

	n.logger.Info("Рассылка уведомлений завершена",
		"trigger", trigger,
		"hackathons", report.HackathonsNotified,
		"sent", report.Succeeded(),
		"failed", report.Failed(),
	)

	n.publish(ctx, models.ReportEvent{
		Trigger:     trigger,
		HackathonID: hackathonID,
		GeneratedAt: n.now(),
		Report:      report,
	})

	return report, nil
}

type delivery struct {
	hackathon string
	member    models.Member
	text      string
}

func (n *Notifier) run(ctx context.Context, hackathonID string) (*models.Report, error) {
	settings, err := n.store.Settings(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении настроек: %w", err)
	}

	token, identity, err := n.authorize(ctx, settings)
	if err != nil {
		return nil, err
	}

	hackathons, err := n.store.Hackathons(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении хакатонов: %w", err)
	}

	members, err := n.store.Members(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении участников: %w", err)
	}

	now := n.now()

	var digests []Digest

	if hackathonID != "" {
		digest, err := n.target(hackathons, hackathonID, now)
		if err != nil {
			return nil, err
		}

		digests = []Digest{digest}
	} else {
		digests = n.due(hackathons, now, settings.ReminderWindow())
	}

	botName := identity.FirstName
	if botName == "" {
		botName = identity.Username
	}

	if len(digests) == 0 {
		window := settings.ReminderWindow()

		return emptyReport(botName, fmt.Sprintf("No hackathons have a deadline within the next %d %s",
			window, plural(window, "day", "days"))), nil
	}

	if !anyReachable(members) {
		return emptyReport(botName, (&domainerrors.ErrNoReachableMembers{}).Error()), nil
	}

	var (
		results    []models.Outcome
		deliveries []delivery
		slots      []int
	)

	for _, digest := range digests {
		text := BuildMessage(digest)
		recipients := Recipients(digest.Hackathon, members)

		if len(recipients) == 0 {
			results = append(results, models.Outcome{
				Hackathon: digest.Hackathon.Name,
				Member:    models.NoRecipientsMember,
				Success:   false,
				Error:     noRecipientsError,
			})

			continue
		}

		for _, member := range recipients {
			slots = append(slots, len(results))
			deliveries = append(deliveries, delivery{hackathon: digest.Hackathon.Name, member: member, text: text})
			results = append(results, models.Outcome{})
		}
	}

	n.deliverAll(ctx, token, identity.Username, deliveries, slots, results)

	report := &models.Report{
		HackathonsNotified: len(digests),
		Results:            results,
		BotName:            botName,
	}
	report.Message = summarize(report.Succeeded(), report.Failed())

	return report, nil
}

// authorize проверяет токен до любой отправки: с заведомо неверным
// токеном рассылка не начинается.
func (n *Notifier) authorize(ctx context.Context, settings models.Settings) (string, clients.BotIdentity, error) {
	token := settings.BotToken(n.fallbackToken)
	if token == "" {
		return "", clients.BotIdentity{}, &domainerrors.ErrMissingCredential{}
	}

	identity, err := n.messenger.VerifyCredential(ctx, token)
	if err != nil {
		return "", clients.BotIdentity{}, &domainerrors.ErrInvalidCredential{
			Reason: "Network error: could not reach Telegram API",
			Cause:  err,
		}
	}

	if !identity.Valid {
		reason := identity.Error
		if reason == "" {
			reason = "Unknown error"
		}

		return "", clients.BotIdentity{}, &domainerrors.ErrInvalidCredential{Reason: reason}
	}

	return token, identity, nil
}

func (n *Notifier) target(hackathons []models.Hackathon, id string, now time.Time) (Digest, error) {
	for _, h := range hackathons {
		if h.ID != id {
			continue
		}

		return n.digest(h, now)
	}

	return Digest{}, &domainerrors.ErrHackathonNotFound{ID: id}
}

func (n *Notifier) due(hackathons []models.Hackathon, now time.Time, window int) []Digest {
	digests := make([]Digest, 0)

	for _, h := range hackathons {
		digest, err := n.digest(h, now)
		if err != nil {
			n.logger.Warn("Хакатон пропущен: некорректная дата", "hackathonID", h.ID, "error", err)
			continue
		}

		if digest.Status == models.StatusCompleted {
			continue
		}

		if digest.DaysLeft < 0 || digest.DaysLeft > window {
			continue
		}

		digests = append(digests, digest)
	}

	return digests
}

func (n *Notifier) digest(h models.Hackathon, now time.Time) (Digest, error) {
	deadline, err := dates.Parse(h.Deadline, n.location)
	if err != nil {
		return Digest{}, &domainerrors.ErrInvalidValue{FieldName: "deadline", Value: h.Deadline}
	}

	start, err := dates.Parse(h.StartDate, n.location)
	if err != nil {
		return Digest{}, &domainerrors.ErrInvalidValue{FieldName: "startDate", Value: h.StartDate}
	}

	end, err := dates.Parse(h.EndDate, n.location)
	if err != nil {
		return Digest{}, &domainerrors.ErrInvalidValue{FieldName: "endDate", Value: h.EndDate}
	}

	return Digest{
		Hackathon: h,
		Deadline:  deadline,
		DaysLeft:  dates.DaysUntil(deadline, now, n.location),
		Status:    dates.StatusAt(now, start, end),
	}, nil
}

// Recipients возвращает участников хакатона с настроенным чатом.
// Пустой MemberIDs означает всю команду.
func Recipients(h models.Hackathon, members []models.Member) []models.Member {
	assigned := make(map[string]struct{}, len(h.MemberIDs))
	for _, id := range h.MemberIDs {
		assigned[id] = struct{}{}
	}

	recipients := make([]models.Member, 0, len(members))

	for _, member := range members {
		if len(assigned) > 0 {
			if _, ok := assigned[member.ID]; !ok {
				continue
			}
		}

		if member.Reachable() {
			recipients = append(recipients, member)
		}
	}

	return recipients
}

// deliverAll отправляет сообщения не более чем в n.workers потоков и
// пишет каждый исход в заранее отведённую ячейку results.
func (n *Notifier) deliverAll(ctx context.Context, token, botUsername string, deliveries []delivery, slots []int, results []models.Outcome) {
	var g errgroup.Group

	g.SetLimit(n.workers)

	for i, d := range deliveries {
		slot := slots[i]

		g.Go(func() error {
			results[slot] = n.deliver(ctx, token, botUsername, d)
			return nil
		})
	}

	_ = g.Wait()
}

func (n *Notifier) deliver(ctx context.Context, token, botUsername string, d delivery) models.Outcome {
	outcome := models.Outcome{
		Hackathon: d.hackathon,
		Member:    d.member.Name,
	}

	chatID := d.member.ChatAddress()

	result, err := n.messenger.Deliver(ctx, token, chatID, d.text)

	switch {
	case err != nil:
		outcome.Error = maskToken(err.Error(), token)
		metrics.RecordDelivery("error")

		n.logger.Warn("Ошибка транспорта при отправке уведомления",
			"hackathon", d.hackathon,
			"member", d.member.Name,
			"error", outcome.Error,
		)
	case !result.OK:
		outcome.Error = Explain(FailureContext{
			Description: result.Error,
			MemberName:  d.member.Name,
			ChatID:      chatID,
			BotUsername: botUsername,
		})
		metrics.RecordDelivery("rejected")

		n.logger.Info("Telegram отклонил уведомление",
			"hackathon", d.hackathon,
			"member", d.member.Name,
			"reason", result.Error,
		)
	default:
		outcome.Success = true
		metrics.RecordDelivery("sent")
	}

	return outcome
}

func (n *Notifier) publish(ctx context.Context, event models.ReportEvent) {
	if n.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.Error("Ошибка при публикации отчёта о рассылке", "trigger", event.Trigger, "error", err)
	}
}

func anyReachable(members []models.Member) bool {
	for _, member := range members {
		if member.Reachable() {
			return true
		}
	}

	return false
}

func emptyReport(botName, info string) *models.Report {
	return &models.Report{
		Message:            summarize(0, 0),
		HackathonsNotified: 0,
		Results:            []models.Outcome{},
		BotName:            botName,
		Info:               info,
	}
}

func summarize(sent, failed int) string {
	return fmt.Sprintf("Sent %d %s (%d failed)", sent, plural(sent, "notification", "notifications"), failed)
}

func plural(count int, one, many string) string {
	if count == 1 {
		return one
	}

	return many
}

func maskToken(text, token string) string {
	if token == "" {
		return text
	}

	return strings.ReplaceAll(text, token, "<token>")
}
