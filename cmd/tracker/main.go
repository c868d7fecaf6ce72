package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/multierr"

	"github.com/central-university-dev/go-hackathon-tracker/internal/api/handlers"
	"github.com/central-university-dev/go-hackathon-tracker/internal/bot"
	"github.com/central-university-dev/go-hackathon-tracker/internal/common/metrics"
	"github.com/central-university-dev/go-hackathon-tracker/internal/common/middleware"
	"github.com/central-university-dev/go-hackathon-tracker/internal/config"
	"github.com/central-university-dev/go-hackathon-tracker/internal/events"
	"github.com/central-university-dev/go-hackathon-tracker/internal/notifier"
	"github.com/central-university-dev/go-hackathon-tracker/internal/scheduler"
	"github.com/central-university-dev/go-hackathon-tracker/internal/service"
	"github.com/central-university-dev/go-hackathon-tracker/internal/storage"
	"github.com/central-university-dev/go-hackathon-tracker/internal/telegram"
	"github.com/central-university-dev/go-hackathon-tracker/pkg"
)

const serviceName = "hackathon_tracker"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка запуска сервиса: %v\n", err)
		os.Exit(1)
	}
}

//nolint:funlen // Длина функции обусловлена необходимостью последовательной инициализации всех компонентов.
func run() error {
	cfg := config.LoadConfig()

	appLogger := pkg.NewLogger(os.Stdout, cfg.LogLevel)

	// Ошибка в TIMEZONE незаметно сдвинула бы и дни до дедлайна, и час рассылки.
	location, err := cfg.Location()
	if err != nil {
		appLogger.Error("Некорректный часовой пояс", "timezone", cfg.Timezone, "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var closers []io.Closer

	kv, err := storage.NewKV(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Ошибка при подключении к хранилищу",
			"backend", cfg.StorageBackend,
			"error", err,
		)

		return fmt.Errorf("ошибка подключения к хранилищу: %w", err)
	}

	store := storage.NewCollectionStore(kv, appLogger)
	closers = append(closers, store)

	opts := []notifier.Option{
		notifier.WithLocation(location),
		notifier.WithFallbackToken(cfg.TelegramBotToken),
		notifier.WithDeliveryWorkers(cfg.NotifyDeliveryWorkers),
	}

	if cfg.ReportsEnabled {
		publisher := events.NewKafkaReportPublisher(cfg.KafkaBrokerList(), cfg.TopicNotificationReports, appLogger)
		closers = append(closers, publisher)
		opts = append(opts, notifier.WithPublisher(publisher))

		appLogger.Info("Публикация отчётов включена",
			"brokers", cfg.KafkaBrokers,
			"topic", cfg.TopicNotificationReports,
		)
	}

	deadlineNotifier := notifier.New(store, telegram.NewClient(cfg, appLogger), appLogger, opts...)

	router := handlers.NewRouter(
		service.NewHackathonService(store, location, time.Now, appLogger),
		service.NewMemberService(store, appLogger),
		service.NewSettingsService(store, appLogger),
		deadlineNotifier,
		cfg.NotifyTimeout,
		appLogger,
	)

	rateLimiter := middleware.NewRateLimiterMiddleware(ctx, cfg.RateLimitRequests, cfg.RateLimitWindow, appLogger,
		middleware.WithDeliveryLimit(cfg.RateLimitDeliveryRequests, cfg.RateLimitDeliveryWindow),
	)
	metricsMiddleware := middleware.NewMetricsMiddleware(serviceName)

	httpServer := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.HTTPServerPort),
		Handler:           metricsMiddleware.Middleware(rateLimiter.Middleware(router)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsServer := metrics.NewMetricsServer(cfg.MetricsPort, store.Ping, appLogger)

	go func() {
		if err := metricsServer.Start(ctx); err != nil {
			appLogger.Error("Ошибка сервера метрик", "error", err)
		}
	}()

	var deadlineScheduler *scheduler.Scheduler

	if cfg.NotifySchedulerEnabled {
		deadlineScheduler = scheduler.NewScheduler(deadlineNotifier, cfg.NotifySchedule, location, cfg.NotifyTimeout, appLogger)

		if err := deadlineScheduler.Start(); err != nil {
			_ = closeAll(closers)
			return err
		}
	} else {
		appLogger.Info("Плановая проверка дедлайнов отключена в конфигурации")
	}

	var chatIDBot *bot.ChatIDBot

	if cfg.ChatIDBotEnabled {
		chatIDBot, err = startChatIDBot(ctx, cfg, appLogger)
		if err != nil {
			appLogger.Warn("Продолжаем без бота для получения chat id", "error", err)
		}
	}

	serverErr := make(chan error, 1)

	go func() {
		appLogger.Info("Запуск HTTP сервера трекера",
			"port", cfg.HTTPServerPort,
		)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		appLogger.Info("Получен сигнал завершения")
	case err = <-serverErr:
		appLogger.Error("Ошибка при запуске HTTP сервера", "error", err)
	}

	if deadlineScheduler != nil {
		deadlineScheduler.Stop()
	}

	if chatIDBot != nil {
		chatIDBot.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	shutdownErr := multierr.Combine(
		httpServer.Shutdown(shutdownCtx),
		closeAll(closers),
	)
	if shutdownErr != nil {
		appLogger.Error("Ошибка при остановке сервиса", "error", shutdownErr)
	} else {
		appLogger.Info("Сервис успешно остановлен")
	}

	return multierr.Append(err, shutdownErr)
}

func startChatIDBot(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*bot.ChatIDBot, error) {
	if cfg.TelegramBotToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN не задан")
	}

	chatIDBot, err := bot.NewChatIDBot(cfg.TelegramBotToken, cfg.TelegramAPIURL, logger)
	if err != nil {
		return nil, err
	}

	chatIDBot.Start(ctx)

	return chatIDBot, nil
}

func closeAll(closers []io.Closer) error {
	var err error

	for i := len(closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, closers[i].Close())
	}

	return err
}
