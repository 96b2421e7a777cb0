package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	application "courier-agent/internal/app"
	"courier-agent/internal/handlers/rest/courier_delete"
	"courier-agent/internal/handlers/rest/courier_post"
	"courier-agent/internal/handlers/rest/healthcheck_head"
	"courier-agent/internal/handlers/rest/location_post"
	"courier-agent/internal/handlers/rest/order_complete_post"
	"courier-agent/internal/handlers/rest/order_post"
	"courier-agent/internal/handlers/rest/ping_get"
	"courier-agent/internal/handlers/rest/session_get"
	"courier-agent/internal/handlers/rest/tracking_put"
	"courier-agent/internal/pkg/config"
	"courier-agent/internal/pkg/dotenv"
	"courier-agent/internal/pkg/middlewares/graceful_shutdown"
	"courier-agent/internal/pkg/middlewares/metrics"
	"courier-agent/internal/pkg/middlewares/rate_limiter"
	"courier-agent/internal/pkg/middlewares/timeout"
	"courier-agent/pkg/logger"
	"courier-agent/pkg/logger/zap_adapter"
	"courier-agent/pkg/token_bucket"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// уровень логов приходит из конфига, поэтому до логгера ошибки идут в stdlog
	if err := dotenv.Load(); err != nil {
		stdlog.Fatalf("failed to load env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("load config: %v", err)
	}

	zapLogger, err := zap_adapter.NewZapAdapter(cfg.Logger.Level)
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With(
		logger.NewField("device_id", cfg.Device.ID),
	)

	mainLog.Info("starting courier-agent",
		logger.NewField("store", cfg.SessionStore.Driver),
		logger.NewField("tracking_api", cfg.TrackingAPI.BaseURL),
		logger.NewField("kafka_enabled", cfg.Kafka.Enabled()),
	)

	err = run(context.Background(), cfg, mainLog)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // shutdownCtx и ongoingCtx намеренно наследуются от context.Background()
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 2 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// appCtx переживает сигнал: на нем работает репортер, его останавливает cleanup
	appCtx, cancelApp := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelApp()

	agent, cleanup, err := application.InitializeApplication(appCtx, log, cfg)
	if err != nil {
		return fmt.Errorf("application: %w", err)
	}
	defer cleanup()

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, agent, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		log.Info("control API starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf("localhost:%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			log.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				pprofServerErr <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // при выключенном pprof канал nil и кейс никогда не сработает
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	log.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var pprofShutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		pprofShutdownErr = pprofServer.Shutdown(shutdownCtx)
		if pprofShutdownErr != nil {
			log.Error("pprof server shutdown error", logger.NewField("error", pprofShutdownErr))
		}
	}

	stopOngoingGracefully()
	if err != nil || pprofShutdownErr != nil {
		log.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	// репортер бросает недоставленные точки, in-flight запрос отменяется
	cancelApp()

	log.Info("Agent stopped")
	return nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	agent *application.Application,
	cfg config.HTTPServer,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))
	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.RateLimiterQPS, float64(cfg.RateLimiterBurst))))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods(http.MethodHead)
	router.Handle("/ping", ping_get.New(log)).Methods(http.MethodGet)

	c := agent.Controller
	router.Handle("/session", session_get.New(log, c)).Methods(http.MethodGet)
	router.Handle("/courier", courier_post.New(log, c)).Methods(http.MethodPost)
	router.Handle("/courier", courier_delete.New(log, c)).Methods(http.MethodDelete)
	router.Handle("/tracking", tracking_put.New(log, c)).Methods(http.MethodPut)
	router.Handle("/location", location_post.New(log, c)).Methods(http.MethodPost)
	router.Handle("/order", order_post.New(log, c)).Methods(http.MethodPost)
	router.Handle("/order/complete", order_complete_post.New(log, c)).Methods(http.MethodPost)

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods(http.MethodHead)
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
