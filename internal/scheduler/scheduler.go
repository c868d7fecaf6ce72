package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/central-university-dev/go-hackathon-tracker/internal/domain/models"
)

type Notifier interface {
	Notify(ctx context.Context, hackathonID string) (*models.Report, error)
}

// Scheduler запускает плановую проверку дедлайнов по cron-выражению.
type Scheduler struct {
	scheduler *gocron.Scheduler
	job       *gocron.Job
	notifier  Notifier
	logger    *slog.Logger
	schedule  string
	timeout   time.Duration
}

func NewScheduler(
	notifier Notifier,
	schedule string,
	location *time.Location,
	timeout time.Duration,
	logger *slog.Logger,
) *Scheduler {
	if location == nil {
		location = time.UTC
	}

	scheduler := gocron.NewScheduler(location)
	scheduler.SingletonModeAll()

	return &Scheduler{
		scheduler: scheduler,
		notifier:  notifier,
		logger:    logger,
		schedule:  schedule,
		timeout:   timeout,
	}
}

func (s *Scheduler) Start() error {
	s.logger.Info("Запуск планировщика",
		"schedule", s.schedule,
		"location", s.scheduler.Location().String(),
	)

	job, err := s.scheduler.Cron(s.schedule).Do(func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		return fmt.Errorf("ошибка при настройке планировщика: %w", err)
	}

	s.job = job
	s.scheduler.StartAsync()

	s.logger.Info("Следующая проверка дедлайнов", "nextRun", job.NextRun())

	return nil
}

// NextRun возвращает время следующего запуска; до Start это нулевое время.
func (s *Scheduler) NextRun() time.Time {
	if s.job == nil {
		return time.Time{}
	}

	return s.job.NextRun()
}

// RunOnce выполняет одну проверку дедлайнов. Ошибки только логируются,
// следующий запуск произойдёт по расписанию.
func (s *Scheduler) RunOnce(ctx context.Context) {
	if s.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.logger.Info("Запуск плановой проверки дедлайнов")

	report, err := s.notifier.Notify(ctx, "")
	if err != nil {
		s.logger.Error("Ошибка при плановой проверке дедлайнов",
			"error", err,
		)

		return
	}

	s.logger.Info("Плановая проверка завершена",
		"message", report.Message,
		"info", report.Info,
		"hackathons", report.HackathonsNotified,
		"sent", report.Succeeded(),
		"failed", report.Failed(),
	)
}

func (s *Scheduler) Stop() {
	s.logger.Info("Остановка планировщика")
	s.scheduler.Stop()
}
