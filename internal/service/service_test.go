package service_test

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/central-university-dev/go-hackathon-tracker/internal/domain/errors"
	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
	"github.com/central-university-dev/go-hackathon-tracker/internal/service"
	"github.com/central-university-dev/go-hackathon-tracker/internal/storage"
	"github.com/central-university-dev/go-hackathon-tracker/internal/storage/memory"
)

var fixedNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

func newStore() *storage.CollectionStore {
	return storage.NewCollectionStore(memory.NewStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newHackathonService(store service.Store, now *time.Time) *service.HackathonService {
	return service.NewHackathonService(store, time.UTC, func() time.Time { return *now },
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHackathonService_CreateDefaults(t *testing.T) {
	now := fixedNow
	svc := newHackathonService(newStore(), &now)

	created, err := svc.Create(context.Background(), service.HackathonInput{
		Name:     ptr("HackMIT"),
		Deadline: ptr("2025-03-12T18:00"),
	})

	require.NoError(t, err)
	_, err = uuid.Parse(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "HackMIT", created.Name)
	assert.Equal(t, models.PriorityMedium, created.Priority)
	assert.Equal(t, []string{}, created.MemberIDs)
	assert.Equal(t, []string{}, created.Tags)
	assert.Equal(t, []models.Resource{}, created.Resources)
	assert.Equal(t, "2025-03-10T12:00:00.000Z", created.CreatedAt)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestHackathonService_Validation(t *testing.T) {
	now := fixedNow
	svc := newHackathonService(newStore(), &now)

	_, err := svc.Create(context.Background(), service.HackathonInput{Priority: ptr(models.Priority("urgent"))})

	var invalid *domainerrors.ErrInvalidValue
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "priority", invalid.FieldName)

	_, err = svc.Create(context.Background(), service.HackathonInput{StartDate: ptr("tomorrow")})
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "startDate", invalid.FieldName)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestHackathonService_UpdateMergesFields(t *testing.T) {
	now := fixedNow
	svc := newHackathonService(newStore(), &now)
	ctx := context.Background()

	created, err := svc.Create(ctx, service.HackathonInput{
		Name:     ptr("HackMIT"),
		TeamName: ptr("Null Pointers"),
		Tags:     ptr([]string{"ai"}),
	})
	require.NoError(t, err)

	now = fixedNow.Add(time.Hour)

	updated, err := svc.Update(ctx, created.ID, service.HackathonInput{
		Priority:  ptr(models.PriorityHigh),
		Resources: ptr([]models.Resource{{Name: "Slides", URL: "https://slides.example.com"}}),
	})
	require.NoError(t, err)

	assert.Equal(t, "HackMIT", updated.Name)
	assert.Equal(t, "Null Pointers", updated.TeamName)
	assert.Equal(t, []string{"ai"}, updated.Tags)
	assert.Equal(t, models.PriorityHigh, updated.Priority)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "2025-03-10T13:00:00.000Z", updated.UpdatedAt)
	require.Len(t, updated.Resources, 1)
	assert.NotEmpty(t, updated.Resources[0].ID)
	assert.Equal(t, models.ResourceLink, updated.Resources[0].Type)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, fetched)
}

func TestHackathonService_NotFound(t *testing.T) {
	now := fixedNow
	svc := newHackathonService(newStore(), &now)
	ctx := context.Background()

	_, err := svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, &domainerrors.ErrHackathonNotFound{})

	_, err = svc.Update(ctx, "missing", service.HackathonInput{Name: ptr("x")})
	assert.ErrorIs(t, err, &domainerrors.ErrHackathonNotFound{})

	err = svc.Delete(ctx, "missing")
	assert.ErrorIs(t, err, &domainerrors.ErrHackathonNotFound{})
}

func TestHackathonService_Delete(t *testing.T) {
	now := fixedNow
	svc := newHackathonService(newStore(), &now)
	ctx := context.Background()

	first, err := svc.Create(ctx, service.HackathonInput{Name: ptr("first")})
	require.NoError(t, err)

	second, err := svc.Create(ctx, service.HackathonInput{Name: ptr("second")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, first.ID))

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, second.ID, all[0].ID)
}

func TestHackathonService_Calendar(t *testing.T) {
	now := fixedNow
	svc := newHackathonService(newStore(), &now)
	ctx := context.Background()

	created, err := svc.Create(ctx, service.HackathonInput{
		Name:        ptr("HackMIT"),
		Description: ptr("Build things"),
		Link:        ptr("https://hackmit.org"),
		StartDate:   ptr("2025-03-14T09:00:00Z"),
		EndDate:     ptr("2025-03-16T18:00:00Z"),
		Deadline:    ptr("2025-03-16T12:00:00Z"),
	})
	require.NoError(t, err)

	links, err := svc.Calendar(ctx, created.ID)
	require.NoError(t, err)

	event, err := url.Parse(links.EventURL)
	require.NoError(t, err)
	assert.Equal(t, "calendar.google.com", event.Host)
	assert.Equal(t, "TEMPLATE", event.Query().Get("action"))
	assert.Equal(t, "HackMIT", event.Query().Get("text"))
	assert.Equal(t, "20250314T090000Z/20250316T180000Z", event.Query().Get("dates"))
	assert.Equal(t, "Build things\nHackathon: https://hackmit.org", event.Query().Get("details"))

	reminder, err := url.Parse(links.ReminderURL)
	require.NoError(t, err)
	assert.Equal(t, "⏰ HackMIT — Deadline Countdown", reminder.Query().Get("text"))
	assert.Equal(t, "20250313T120000Z/20250316T120000Z", reminder.Query().Get("dates"))
	assert.Equal(t, "⚠️ DEADLINE: Mar 16, 2025\n\nBuild things\n\nLink: https://hackmit.org", reminder.Query().Get("details"))
	assert.Equal(t, "true", reminder.Query().Get("sf"))
}

func TestHackathonService_CalendarNeedsDates(t *testing.T) {
	now := fixedNow
	svc := newHackathonService(newStore(), &now)
	ctx := context.Background()

	created, err := svc.Create(ctx, service.HackathonInput{Name: ptr("No dates")})
	require.NoError(t, err)

	_, err = svc.Calendar(ctx, created.ID)
	assert.ErrorIs(t, err, &domainerrors.ErrInvalidValue{})
}

func TestMemberService(t *testing.T) {
	svc := service.NewMemberService(newStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	created, err := svc.Create(ctx, service.MemberInput{Name: ptr("Alice"), Role: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultMemberRole, created.Role)
	assert.False(t, created.Reachable())

	updated, err := svc.Update(ctx, created.ID, service.MemberInput{TelegramChatID: ptr("111")})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "111", updated.TelegramChatID)

	_, err = svc.Update(ctx, "missing", service.MemberInput{})
	assert.ErrorIs(t, err, &domainerrors.ErrMemberNotFound{})

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), &domainerrors.ErrMemberNotFound{})

	members, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestSettingsService(t *testing.T) {
	svc := service.NewSettingsService(newStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	settings, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Settings{TelegramBotToken: "", NotifyDaysBefore: 3}, settings)

	saved, err := svc.Save(ctx, service.SettingsInput{TelegramBotToken: ptr("123:abc")})
	require.NoError(t, err)
	assert.Equal(t, models.Settings{TelegramBotToken: "123:abc", NotifyDaysBefore: 3}, saved)

	saved, err = svc.Save(ctx, service.SettingsInput{NotifyDaysBefore: ptr(7)})
	require.NoError(t, err)
	assert.Equal(t, "123:abc", saved.TelegramBotToken)
	assert.Equal(t, 7, saved.NotifyDaysBefore)
}
