package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
)

// KafkaReportPublisher публикует отчёты о рассылках для внешнего аудита.
type KafkaReportPublisher struct {
	producer *kafka.Writer
	topic    string
	logger   *slog.Logger
}

func NewKafkaReportPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaReportPublisher {
	producer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Logger:                 kafka.LoggerFunc(logger.Debug),
		ErrorLogger:            kafka.LoggerFunc(logger.Error),
	}

	return &KafkaReportPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

func (p *KafkaReportPublisher) Publish(ctx context.Context, event models.ReportEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("ошибка при сериализации отчёта: %w", err)
	}

	key := string(event.Trigger)
	if event.HackathonID != "" {
		key += ":" + event.HackathonID
	}

	err = p.producer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  event.GeneratedAt,
	})
	if err != nil {
		return fmt.Errorf("ошибка при отправке отчёта в Kafka: %w", err)
	}

	p.logger.Debug("Отчёт о рассылке опубликован", "topic", p.topic, "key", key)

	return nil
}

func (p *KafkaReportPublisher) Close() error {
	return p.producer.Close()
}
