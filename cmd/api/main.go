package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"harustay/internal/api"
	"harustay/internal/config"
	"harustay/internal/database"
	"harustay/internal/domain"
	"harustay/internal/events"
	"harustay/internal/export"
	"harustay/internal/google"
	"harustay/internal/logging"
	"harustay/internal/metrics"
	"harustay/internal/models"
	"harustay/internal/notify"
	"harustay/internal/rates"
	"harustay/internal/repository"
	"harustay/internal/service"
	"harustay/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}
	logger := logging.Component(baseLogger, "api-main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := initDatabase(ctx, cfg, baseLogger)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, sessionRepo := initSessions(ctx, cfg, baseLogger)
	if redisClient != nil {
		defer repository.Close(redisClient)
	}

	eventBus := events.NewEventBus()
	initTelegramNotifier(cfg, eventBus, baseLogger)

	sheetsWorker := initSheetsWorker(ctx, cfg, db, redisClient, baseLogger)

	metrics.Register()
	startMetricsServer(cfg, &logger)

	sessionTTL := time.Duration(cfg.Admin.SessionTTLSeconds) * time.Second
	sessionLogger := logging.Component(baseLogger, "sessions")
	sessions := service.NewSessionService(sessionRepo, cfg.Admin.PasswordHash, sessionTTL, &sessionLogger)

	roomLogger := logging.Component(baseLogger, "rooms")
	rooms := service.NewRoomService(db, &roomLogger)
	if err := rooms.Refresh(ctx); err != nil {
		return err
	}

	reservationLogger := logging.Component(baseLogger, "reservations")
	var syncWorker domain.SyncWorker
	if sheetsWorker != nil {
		syncWorker = sheetsWorker
	}
	reservations := service.NewReservationService(db, eventBus, syncWorker, &reservationLogger)

	availabilityLogger := logging.Component(baseLogger, "availability")
	availability := service.NewAvailabilityService(db, &availabilityLogger)

	var ratesService *rates.Service
	if cfg.Rates.URL != "" {
		ratesLogger := logging.Component(baseLogger, "rates")
		ratesService = rates.NewService(cfg.Rates, &ratesLogger)
	}

	exportLogger := logging.Component(baseLogger, "export")
	exporter := export.NewExcelExporter(db, cfg.Exports.Path, &exportLogger)

	httpLogger := logging.Component(baseLogger, "http")
	server := api.NewHTTPServer(cfg.Server, api.Deps{
		Rooms:        rooms,
		Reservations: reservations,
		Availability: availability,
		Sessions:     sessions,
		Repo:         db,
		Rates:        ratesService,
		Exporter:     exporter,
	}, &httpLogger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("HTTP server error")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP shutdown error")
	}

	logger.Info().Msg("shutdown complete")
	return nil
}

func initDatabase(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*database.DB, error) {
	db, err := database.NewDB(cfg.Database.Path, logger)
	if err != nil {
		return nil, err
	}
	if err := db.SeedRooms(ctx, cfg.Rooms); err != nil {
		return nil, fmt.Errorf("failed to seed rooms: %w", err)
	}
	return db, nil
}

func initSessions(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*redis.Client, *repository.FailoverSessionRepository) {
	ttl := time.Duration(cfg.Admin.SessionTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Duration(models.DefaultSessionTTL) * time.Second
	}

	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisClient = repository.NewRedisClient(cfg.Redis)
		if errPing := repository.Ping(ctx, redisClient); errPing != nil {
			log := logging.Component(logger, "redis")
			log.Warn().Err(errPing).Msg("Redis unavailable")
		}
	}

	primary := repository.NewRedisSessionRepository(redisClient, ttl)
	fallback := repository.NewMemorySessionRepository(ttl)
	failoverLogger := logging.Component(logger, "sessions-failover")
	return redisClient, repository.NewFailoverSessionRepository(primary, fallback, &failoverLogger)
}

func initTelegramNotifier(cfg *config.Config, bus *events.EventBus, logger *zerolog.Logger) {
	if cfg.Telegram.BotToken == "" || cfg.Telegram.AdminChatID == 0 {
		return
	}

	notifyLogger := logging.Component(logger, "telegram")
	notifier, err := notify.NewTelegramNotifier(cfg.Telegram, &notifyLogger)
	if err != nil {
		notifyLogger.Warn().Err(err).Msg("telegram notifier disabled")
		return
	}
	notifier.SubscribeTo(bus)
	notifyLogger.Info().Msg("telegram notifier enabled")
}

func initSheetsWorker(ctx context.Context, cfg *config.Config, db *database.DB, redisClient *redis.Client, logger *zerolog.Logger) *worker.SheetsWorker {
	if cfg.Google.CredentialsFile == "" || cfg.Google.ReservationsSpreadSheetID == "" {
		return nil
	}

	sheetsLogger := logging.Component(logger, "sheets")
	sheetsService, err := google.NewSheetsService(cfg.Google.CredentialsFile, cfg.Google.ReservationsSpreadSheetID)
	if err != nil {
		sheetsLogger.Warn().Err(err).Msg("sheets sync disabled")
		return nil
	}
	if err := sheetsService.TestConnection(ctx); err != nil {
		sheetsLogger.Warn().Err(err).Msg("sheets connection test failed, sync disabled")
		return nil
	}

	workerLogger := logging.Component(logger, "sheets-worker")
	retryPolicy := worker.RetryPolicy{MaxRetries: 5, InitialDelay: 2 * time.Second, MaxDelay: time.Minute, BackoffFactor: 2}
	sheetsWorker := worker.NewSheetsWorker(db, sheetsService, redisClient, retryPolicy, &workerLogger)
	go sheetsWorker.Start(ctx)
	return sheetsWorker
}

func startMetricsServer(cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", cfg.Monitoring.PrometheusPort)

	go func() {
		logger.Info().Str("addr", addr).Msg("metrics server listening")
		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()
}
