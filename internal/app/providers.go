package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"courier-agent/internal/gateway/kafka/session_events"
	"courier-agent/internal/gateway/rest/tracking"
	"courier-agent/internal/handlers/tasks/session_state"
	"courier-agent/internal/handlers/tasks/system_metrics"
	"courier-agent/internal/pkg/config"
	"courier-agent/internal/pkg/httpclient"
	"courier-agent/internal/pkg/kafka"
	metrics_system "courier-agent/internal/pkg/metrics"
	"courier-agent/internal/pkg/postgres"
	"courier-agent/internal/pkg/redis"
	"courier-agent/internal/pkg/sqlite"
	"courier-agent/internal/repository/migrations"
	sessionRepo "courier-agent/internal/repository/session"
	"courier-agent/internal/service/controller"
	"courier-agent/internal/service/reporter"
	sessionService "courier-agent/internal/service/session"
	"courier-agent/pkg/background"
	"courier-agent/pkg/logger"
	"courier-agent/pkg/querier"
	"courier-agent/pkg/tx"
	"github.com/jackc/pgx/v5/stdlib"
)

type Observers []controller.Observer

func provideSessionStore(ctx context.Context, log logger.Logger, cfg *config.Config) (sessionService.Store, func(), error) {
	storeLog := log.With(logger.NewField("store", cfg.SessionStore.Driver))

	switch cfg.SessionStore.Driver {
	case config.StoreDriverSQLite:
		db, err := sqlite.Open(ctx, storeLog, &cfg.SessionStore)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := db.Close(); err != nil {
				storeLog.Error("failed to close sqlite", logger.NewField("error", err))
			}
		}

		version, err := migrations.Up(ctx, db, migrations.DialectSQLite)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("sqlite migrations: %w", err)
		}
		storeLog.Info("session schema is up to date", logger.NewField("version", version))

		return sessionRepo.NewSQLiteStore(db), cleanup, nil

	case config.StoreDriverPostgres:
		pool, err := postgres.NewConnPool(ctx, storeLog, &cfg.Database)
		if err != nil {
			return nil, nil, err
		}

		// goose работает через database/sql, поверх того же пула
		db := stdlib.OpenDBFromPool(pool)
		cleanup := func() {
			if err := db.Close(); err != nil {
				storeLog.Error("failed to close postgres sql.DB", logger.NewField("error", err))
			}
			pool.Close()
		}

		version, err := migrations.Up(ctx, db, migrations.DialectPostgres)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("postgres migrations: %w", err)
		}
		storeLog.Info("session schema is up to date", logger.NewField("version", version))

		store := sessionRepo.NewPostgresStore(
			querier.New(pool),
			tx.New(pool),
			cfg.Device.ID,
		)
		return store, cleanup, nil

	case config.StoreDriverRedis:
		client, err := redis.NewClient(ctx, storeLog, &cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				storeLog.Error("failed to close redis client", logger.NewField("error", err))
			}
		}
		return sessionRepo.NewRedisStore(client, cfg.Device.ID), cleanup, nil
	}

	return nil, nil, fmt.Errorf("session store driver %q is not supported", cfg.SessionStore.Driver)
}

func provideHTTPClient(cfg *config.Config) *http.Client {
	return httpclient.New(&cfg.TrackingAPI)
}

func provideTrackingGateway(cfg *config.Config, client *http.Client) *tracking.Gateway {
	return tracking.New(cfg.TrackingAPI.BaseURL, client)
}

func provideSessionManager(
	ctx context.Context,
	log logger.Logger,
	gateway sessionService.Gateway,
	store sessionService.Store,
) (*sessionService.Manager, error) {
	return sessionService.New(ctx, gateway, store, log.With(logger.NewField("component", "session")), time.Now)
}

func provideReporter(
	cfg *config.Config,
	log logger.Logger,
	gateway reporter.Gateway,
	session reporter.Session,
) (*reporter.Reporter, func()) {
	r := reporter.New(
		reporter.Config{
			BufferSize:        cfg.Reporter.BufferSize,
			MinDistanceMeters: cfg.Reporter.MinDistanceMeters,
			MinInterval:       cfg.Reporter.MinInterval,
			RetryMaxElapsed:   cfg.Reporter.RetryMaxElapsed,
		},
		gateway,
		session,
		log.With(logger.NewField("component", "reporter")),
	)
	return r, r.Stop
}

// provideObservers: без KAFKA_BROKERS события никуда не уходят, изменения видны только в логах контроллера.
func provideObservers(ctx context.Context, log logger.Logger, cfg *config.Config) (Observers, func(), error) {
	if !cfg.Kafka.Enabled() {
		return nil, func() {}, nil
	}

	producer, err := kafka.NewProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	cleanup := func() {
		if err := producer.Close(); err != nil {
			log.Error("failed to close kafka producer", logger.NewField("error", err))
		}
	}

	publisher := session_events.NewPublisher(producer, cfg.Kafka.Topic, cfg.Device.ID)
	return Observers{publisher}, cleanup, nil
}

func provideController(
	ctx context.Context,
	log logger.Logger,
	manager controller.SessionManager,
	locationReporter controller.LocationReporter,
	observers Observers,
) *controller.Controller {
	c := controller.New(ctx, manager, locationReporter, log.With(logger.NewField("component", "controller")), time.Now)
	for _, observer := range observers {
		c.Subscribe(observer)
	}
	return c
}

func provideSystemMetricsTask(cfg *config.Config, log logger.Logger) *system_metrics.SystemMetrics {
	return system_metrics.NewSystemMetrics(log, metrics_system.NewSystemCollector(), cfg.Tasks.SystemMetricsInterval)
}

func provideSessionStateTask(cfg *config.Config, c session_state.Controller) *session_state.SessionStateExporter {
	return session_state.NewSessionStateExporter(c, cfg.Tasks.SystemMetricsInterval)
}

func provideTaskList(
	systemMetricsTask *system_metrics.SystemMetrics,
	sessionStateTask *session_state.SessionStateExporter,
) []background.Task {
	return []background.Task{
		systemMetricsTask,
		sessionStateTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, func(), error) {
	worker, err := background.New(ctx, log, tasks)
	if err != nil {
		return nil, nil, fmt.Errorf("background workers: %w", err)
	}
	return worker, worker.Stop, nil
}
