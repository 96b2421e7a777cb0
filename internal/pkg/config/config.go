package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"

	defaultLogLevel              = "info"
	defaultSQLitePath            = "courier-session.db"
	defaultSystemMetricsInterval = 15 * time.Second
	defaultKafkaTopic            = "courier-session-events"
)

type (
	Tasks struct {
		SystemMetricsInterval time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware rate limiter capacity
		RateLimiterBurst int           // middleware rate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
	}

	Logger struct {
		Level string
	}

	Device struct {
		ID string
	}

	TrackingAPI struct {
		BaseURL            string
		Timeout            time.Duration // 0 - таймаут транспорта по умолчанию
		InsecureSkipVerify bool
	}

	SessionStore struct {
		Driver     string
		SQLitePath string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Reporter struct {
		BufferSize        int
		MinDistanceMeters float64
		MinInterval       time.Duration
		RetryMaxElapsed   time.Duration
	}

	// Kafka выключена, пока не заданы брокеры
	Kafka struct {
		Brokers string
		Topic   string
		Sarama  Sarama
	}

	Sarama struct {
		Version string
	}

	Config struct {
		Tasks        Tasks
		Server       HTTPServer
		Logger       Logger
		Device       Device
		TrackingAPI  TrackingAPI
		SessionStore SessionStore
		Database     Database
		Redis        Redis
		Reporter     Reporter
		Kafka        Kafka
	}
)

func (k Kafka) Enabled() bool {
	return k.Brokers != ""
}

func (k Kafka) BrokerList() []string {
	var brokers []string
	for _, broker := range strings.Split(k.Brokers, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	systemMetricsInterval, err := osGetEnvDuration("BACKGROUND_SYSTEM_METRICS_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	trackingTimeout, err := osGetEnvDuration("TRACKING_API_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	insecureSkipVerify, err := osGetBool("TRACKING_API_INSECURE_SKIP_VERIFY")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	redisDB, err := osGetInt("REDIS_DB")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	reporterBufferSize, err := osGetInt("REPORTER_BUFFER_SIZE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	reporterMinDistance, err := osGetFloat("REPORTER_MIN_DISTANCE_METERS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	reporterMinInterval, err := osGetEnvDuration("REPORTER_MIN_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	reporterRetryMaxElapsed, err := osGetEnvDuration("REPORTER_RETRY_MAX_ELAPSED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if systemMetricsInterval == 0 {
		systemMetricsInterval = defaultSystemMetricsInterval
	}

	return &Config{
		Tasks: Tasks{
			SystemMetricsInterval: systemMetricsInterval,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Logger: Logger{
			Level: osGetOrDefault("LOG_LEVEL", defaultLogLevel),
		},
		Device: Device{
			// без DEVICE_ID каждый запуск - новое устройство, для redis/postgres его стоит задать
			ID: osGetOrDefault("DEVICE_ID", uuid.NewString()),
		},
		TrackingAPI: TrackingAPI{
			BaseURL:            os.Getenv("TRACKING_API_BASE_URL"),
			Timeout:            trackingTimeout,
			InsecureSkipVerify: insecureSkipVerify,
		},
		SessionStore: SessionStore{
			Driver:     osGetOrDefault("SESSION_STORE_DRIVER", StoreDriverSQLite),
			SQLitePath: osGetOrDefault("SQLITE_PATH", defaultSQLitePath),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		},
		Redis: Redis{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Reporter: Reporter{
			BufferSize:        reporterBufferSize,
			MinDistanceMeters: reporterMinDistance,
			MinInterval:       reporterMinInterval,
			RetryMaxElapsed:   reporterRetryMaxElapsed,
		},
		Kafka: Kafka{
			Brokers: os.Getenv("KAFKA_BROKERS"),
			Topic:   osGetOrDefault("KAFKA_TOPIC", defaultKafkaTopic),
			Sarama: Sarama{
				Version: os.Getenv("KAFKA_SARAMA_VERSION"),
			},
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if err := validateTrackingAPI(cfg.TrackingAPI); err != nil {
		return err
	}

	if err := validateSessionStore(cfg); err != nil {
		return err
	}

	if cfg.Reporter.BufferSize < 0 {
		return errors.New("REPORTER_BUFFER_SIZE must not be negative")
	}
	if cfg.Reporter.MinDistanceMeters < 0 || cfg.Reporter.MinInterval < 0 || cfg.Reporter.RetryMaxElapsed < 0 {
		return errors.New("REPORTER_* thresholds must not be negative")
	}

	if cfg.Kafka.Enabled() {
		if len(cfg.Kafka.BrokerList()) == 0 {
			return errors.New("KAFKA_BROKERS has no broker addresses")
		}
		if cfg.Kafka.Topic == "" {
			return errors.New("KAFKA_TOPIC is required")
		}
		if cfg.Kafka.Sarama.Version == "" {
			return errors.New("KAFKA_SARAMA_VERSION is required")
		}
	}

	return nil
}

func validateTrackingAPI(api TrackingAPI) error {
	if api.BaseURL == "" {
		return errors.New("TRACKING_API_BASE_URL is required")
	}

	u, err := url.Parse(api.BaseURL)
	if err != nil {
		return fmt.Errorf("TRACKING_API_BASE_URL is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("TRACKING_API_BASE_URL must be http(s), got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("TRACKING_API_BASE_URL has no host")
	}
	if api.Timeout < 0 {
		return errors.New("TRACKING_API_TIMEOUT must not be negative")
	}
	return nil
}

func validateSessionStore(cfg *Config) error {
	switch cfg.SessionStore.Driver {
	case StoreDriverSQLite:
		if cfg.SessionStore.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required")
		}
	case StoreDriverPostgres:
		if cfg.Database.Host == "" {
			return errors.New("POSTGRES_HOST is required")
		}
		if cfg.Database.Port == "" {
			return errors.New("POSTGRES_PORT is required")
		}
		if cfg.Database.User == "" {
			return errors.New("POSTGRES_USER is required")
		}
		if cfg.Database.Password == "" {
			return errors.New("POSTGRES_PASSWORD is required")
		}
		if cfg.Database.DBName == "" {
			return errors.New("POSTGRES_DB is required")
		}
		if cfg.Database.SSLMode == "" {
			return errors.New("POSTGRES_SSLMODE is required")
		}
	case StoreDriverRedis:
		if cfg.Redis.Addr == "" {
			return errors.New("REDIS_ADDR is required")
		}
	default:
		return fmt.Errorf("SESSION_STORE_DRIVER %q is not supported", cfg.SessionStore.Driver)
	}
	return nil
}

func osGetOrDefault(s, def string) string {
	if val := os.Getenv(s); val != "" {
		return val
	}
	return def
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetFloat(s string) (float64, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
