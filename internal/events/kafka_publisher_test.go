package events_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
	"github.com/central-university-dev/go-hackathon-tracker/internal/events"
)

func TestKafkaReportPublisher_Publish(t *testing.T) {
	if testing.Short() {
		t.Skip("Пропускаем интеграционный тест в режиме short")
	}

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "Не удалось запустить контейнер Kafka")

	t.Cleanup(func() {
		termCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		_ = container.Terminate(termCtx)
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)

	topic := fmt.Sprintf("test-notification-reports-%d", time.Now().UnixNano())

	publisher := events.NewKafkaReportPublisher(brokers, topic, logger)
	t.Cleanup(func() { _ = publisher.Close() })

	event := models.ReportEvent{
		Trigger:     models.TriggerTargeted,
		HackathonID: "h1",
		GeneratedAt: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC),
		Report: &models.Report{
			Message:            "Sent 1 notification (0 failed)",
			HackathonsNotified: 1,
			Results:            []models.Outcome{{Hackathon: "HackMIT", Member: "Alice", Success: true}},
			BotName:            "Tracker",
		},
	}

	publishCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	// Топик создаётся автоматически первой записью, брокеру нужно время на выбор лидера.
	require.Eventually(t, func() bool {
		return publisher.Publish(publishCtx, event) == nil
	}, 60*time.Second, time.Second)

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   brokers,
		Topic:     topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	defer reader.Close()

	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	defer readCancel()

	msg, err := reader.ReadMessage(readCtx)
	require.NoError(t, err)

	assert.Equal(t, "targeted:h1", string(msg.Key))

	var got models.ReportEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, event.Trigger, got.Trigger)
	assert.Equal(t, event.HackathonID, got.HackathonID)
	assert.True(t, event.GeneratedAt.Equal(got.GeneratedAt))
	assert.Equal(t, event.Report, got.Report)
}
